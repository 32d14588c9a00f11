package population_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/YashJagani/citypop/internal/population"
	"github.com/YashJagani/citypop/internal/series"
)

func TestLoadFileAPIResponse(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "kcw.json")
	content := `{"error":false,"msg":"ok","data":{"city":"KCW","country":"Canada","populationCounts":[
		{"year":"2011","value":"477,160","sex":"Both Sexes","reliabilty":"Final figure, complete"},
		{"year":"2006","value":"451235","sex":"Both Sexes","reliabilty":"Final figure, complete"}]}}`
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	entries, err := population.LoadFile(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s := series.Normalize(entries, 2001, 2011)
	if s.Len() != 2 || s[0].Year != 2006 || s[1].Value != 477160 {
		t.Fatalf("unexpected series: %v", s)
	}
}

func TestDecodeJSONShapes(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want int
	}{
		{"array", `[{"year":"2005","value":"1"},{"year":2006,"value":2}]`, 2},
		{"counts", `{"populationCounts":[{"year":"2005","value":"1"}]}`, 1},
		{"empty counts", `{"data":{"populationCounts":[]}}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := population.DecodeJSON(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("expected %d entries, got %d", tt.want, len(got))
			}
		})
	}
	if _, err := population.DecodeJSON(strings.NewReader(`{"error":true}`)); !errors.Is(err, population.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if _, err := population.DecodeJSON(strings.NewReader("  ")); err == nil {
		t.Fatalf("expected error for empty document")
	}
}

func TestLoadFileCSV(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "counts.csv")
	content := "Year,Population,Note\n" +
		"2005,\"100,000\",census\n" +
		"2005,999,revised\n" +
		"2010,\"110,000\",census\n"
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	entries, err := population.LoadFile(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	s := series.Normalize(entries, 2001, 2011)
	if s.String() != "[2005:100000 2010:110000]" {
		t.Fatalf("series = %s", s)
	}
}

func TestDecodeCSVMissingColumns(t *testing.T) {
	_, err := population.DecodeCSV(strings.NewReader("when,count\n2005,1\n"), ',')
	if err == nil || !strings.Contains(err.Error(), "need year and value") {
		t.Fatalf("expected header error, got %v", err)
	}
	if _, err := population.DecodeCSV(strings.NewReader(""), ','); !errors.Is(err, population.ErrNoData) {
		t.Fatalf("expected ErrNoData for empty csv, got %v", err)
	}
}
