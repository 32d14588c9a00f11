package series

import (
	"encoding/json"
	"reflect"
	"testing"
)

func entries(pairs ...string) []RawEntry {
	out := make([]RawEntry, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, RawEntry{Year: pairs[i], Value: pairs[i+1]})
	}
	return out
}

func TestNormalizeFirstSeenWins(t *testing.T) {
	got := Normalize(entries("2005", "10", "2005", "20"), 2000, 2011)
	want := Series{{Year: 2005, Value: 10}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestNormalizeRangeFilter(t *testing.T) {
	in := entries("1999", "1", "2001", "2", "2005", "3", "2011", "4", "2012", "5")
	got := Normalize(in, 2001, 2011).Years()
	want := []int{2001, 2005, 2011}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("years = %v, want %v", got, want)
	}
}

func TestNormalizeSortsAscending(t *testing.T) {
	in := entries("2011", "477160", "2001", "414284", "2006", "451235", "2003", "420000")
	s := Normalize(in, 2001, 2011)
	if s.Len() != 4 {
		t.Fatalf("expected 4 observations, got %d", s.Len())
	}
	for i := 1; i < s.Len(); i++ {
		if s[i].Year <= s[i-1].Year {
			t.Fatalf("years not strictly increasing at %d: %v", i, s)
		}
	}
	if s[0].Value != 414284 || s[3].Value != 477160 {
		t.Fatalf("values moved with their years incorrectly: %v", s)
	}
}

func TestNormalizeEndToEnd(t *testing.T) {
	in := entries("2005", "100,000", "2005", "999", "2010", "110,000")
	got := Normalize(in, 2001, 2011)
	want := Series{{Year: 2005, Value: 100000}, {Year: 2010, Value: 110000}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if labels := got.Labels(); !reflect.DeepEqual(labels, []string{"2005", "2010"}) {
		t.Fatalf("labels = %v", labels)
	}
}

func TestNormalizeSkipsMalformed(t *testing.T) {
	in := entries(
		"2002", "",
		"abc", "100",
		"2003", "n/a",
		"2004", "12.5",
		"2004", "1,200",
		"2005", "NaN",
		"2006", "Inf",
	)
	got := Normalize(in, 2001, 2011)
	want := Series{{Year: 2004, Value: 1200}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	got := Normalize(nil, 2001, 2011)
	if got == nil {
		t.Fatalf("expected empty non-nil series")
	}
	if got.Len() != 0 {
		t.Fatalf("expected empty series, got %v", got)
	}
	if got := Normalize(entries("2005", "1"), 2011, 2001); got.Len() != 0 {
		t.Fatalf("inverted bounds should select nothing, got %v", got)
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	in := entries("2008", "5", "2002", "7", "2008", "9", "2001", "1")
	a := Normalize(in, 2001, 2011)
	b := Normalize(in, 2001, 2011)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("normalize not deterministic: %v vs %v", a, b)
	}
	if in[0].Value != "5" || in[2].Value != "9" {
		t.Fatalf("input mutated: %v", in)
	}
}

func TestOptionsNormalize(t *testing.T) {
	opt := DefaultOptions()
	if opt.MinYear != 2001 || opt.MaxYear != 2011 {
		t.Fatalf("unexpected defaults: %+v", opt)
	}
	got := opt.Normalize(entries("2000", "1", "2001", "2"))
	if got.Len() != 1 || got[0].Year != 2001 {
		t.Fatalf("got %v", got)
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"477160", 477160, true},
		{" 477,160 ", 477160, true},
		{"1 234 567", 1234567, true},
		{"1 234", 1234, true},
		{"1234.0", 1234, true},
		{"-15", -15, true},
		{"12.5", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
		{"+Inf", 0, false},
		{"twelve", 0, false},
		{"0x1p4", 0, false},
		{"1_000", 0, false},
		{"1e3", 0, false},
		{"2.005e3", 0, false},
		{"0x7D5", 0, false},
		{"1234.", 0, false},
		{"+2005.00", 2005, true},
		{"-", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseInt(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("ParseInt(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRawEntryUnmarshalFlexible(t *testing.T) {
	payload := `[{"year":"2005","value":"100,000"},{"year":2006,"value":101000},{"year":null,"value":"5"},{"value":"7"}]`
	var got []RawEntry
	if err := json.Unmarshal([]byte(payload), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []RawEntry{
		{Year: "2005", Value: "100,000"},
		{Year: "2006", Value: "101000"},
		{Year: "", Value: "5"},
		{Year: "", Value: "7"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	s := Normalize(got, 2001, 2011)
	if s.Len() != 2 {
		t.Fatalf("expected 2 observations, got %v", s)
	}
}

func TestTransitions(t *testing.T) {
	s := Series{{2001, 100}, {2002, 90}, {2003, 90}, {2004, 120}}
	tr := s.Transitions()
	if len(tr) != 3 {
		t.Fatalf("expected 3 transitions, got %d", len(tr))
	}
	wantDelta := []int64{-10, 0, 30}
	wantDir := []Direction{Decrease, Increase, Increase}
	for i := range tr {
		if tr[i].Delta != wantDelta[i] || tr[i].Direction != wantDir[i] {
			t.Fatalf("transition %d = %+v", i, tr[i])
		}
	}
	if tr[0].From.Year != 2001 || tr[0].To.Year != 2002 {
		t.Fatalf("wrong endpoints: %+v", tr[0])
	}
	if got := (Series{{2001, 1}}).Transitions(); got != nil {
		t.Fatalf("single observation should have no transitions, got %v", got)
	}
}

func TestAccessors(t *testing.T) {
	s := Series{{2001, 10}, {2002, 20}}
	if !reflect.DeepEqual(s.Values(), []int64{10, 20}) {
		t.Fatalf("values = %v", s.Values())
	}
	if !reflect.DeepEqual(s.Floats(), []float64{10, 20}) {
		t.Fatalf("floats = %v", s.Floats())
	}
	if s.String() != "[2001:10 2002:20]" {
		t.Fatalf("string = %q", s.String())
	}
}

func TestNormalizeRejectsNonDecimalSpellings(t *testing.T) {
	got := Normalize([]RawEntry{
		{Year: "2.005e3", Value: "0x1p20"},
		{Year: "2006", Value: "1_000"},
		{Year: "2007", Value: "1e3"},
	}, 2001, 2011)
	if got == nil || got.Len() != 0 {
		t.Fatalf("expected empty series, got %v", got)
	}
}
