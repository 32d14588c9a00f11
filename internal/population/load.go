package population

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/YashJagani/citypop/internal/series"
)

// LoadFile reads population records saved on disk. Files ending in .csv (or
// .tsv) need a header naming "year" and "value" columns; anything else is
// decoded as JSON.
func LoadFile(path string) ([]series.RawEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return DecodeCSV(f, ',')
	case ".tsv":
		return DecodeCSV(f, '\t')
	}
	return DecodeJSON(f)
}

// DecodeJSON accepts a full API response, its data object, or a bare array
// of {year, value} records.
func DecodeJSON(r io.Reader) ([]series.RawEntry, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, errors.New("decode input: empty document")
	}
	if b[0] == '[' {
		var out []series.RawEntry
		if err := json.Unmarshal(b, &out); err != nil {
			return nil, fmt.Errorf("decode input: %w", err)
		}
		return out, nil
	}
	var doc struct {
		Data   *CityPopulation `json:"data"`
		Counts []Count         `json:"populationCounts"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}
	switch {
	case doc.Data != nil && doc.Data.Counts != nil:
		return doc.Data.Entries(), nil
	case doc.Counts != nil:
		p := CityPopulation{Counts: doc.Counts}
		return p.Entries(), nil
	}
	return nil, ErrNoData
}

// DecodeCSV reads delimited records with a header row.
func DecodeCSV(r io.Reader, delim rune) ([]series.RawEntry, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoData
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	yearIdx, valueIdx := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.Trim(h, "\"\ufeff"))) {
		case "year":
			yearIdx = i
		case "value", "population":
			valueIdx = i
		}
	}
	if yearIdx < 0 || valueIdx < 0 {
		return nil, fmt.Errorf("read header: need year and value columns, got %v", header)
	}
	var out []series.RawEntry
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		var e series.RawEntry
		if yearIdx < len(rec) {
			e.Year = rec[yearIdx]
		}
		if valueIdx < len(rec) {
			e.Value = rec[valueIdx]
		}
		out = append(out, e)
	}
	return out, nil
}
