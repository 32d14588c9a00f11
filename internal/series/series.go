// Package series turns raw population records into a clean, year-ordered series.
package series

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// RawEntry is one population record as delivered by the API. Both fields are
// kept as text; the API sends strings but older dumps carry JSON numbers.
type RawEntry struct {
	Year  string `json:"year" yaml:"year"`
	Value string `json:"value" yaml:"value"`
}

// UnmarshalJSON accepts strings, numbers and null for either field.
func (e *RawEntry) UnmarshalJSON(b []byte) error {
	var raw struct {
		Year  json.RawMessage `json:"year"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	e.Year = flexString(raw.Year)
	e.Value = flexString(raw.Value)
	return nil
}

func flexString(m json.RawMessage) string {
	m = bytes.TrimSpace(m)
	if len(m) == 0 || bytes.Equal(m, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(m, &s); err == nil {
		return s
	}
	// numbers, booleans and objects keep their literal text; only numbers will parse later
	return string(m)
}

// Observation is a parsed (year, population) pair.
type Observation struct {
	Year  int   `json:"year" yaml:"year"`
	Value int64 `json:"value" yaml:"value"`
}

// Series holds observations with unique years in ascending order.
type Series []Observation

// Options holds the inclusive year bounds applied by Normalize.
type Options struct {
	MinYear int
	MaxYear int
}

// DefaultOptions returns the 2001-2011 window used by every chart.
func DefaultOptions() Options {
	return Options{MinYear: 2001, MaxYear: 2011}
}

// Normalize applies the receiver's bounds.
func (o Options) Normalize(entries []RawEntry) Series {
	return Normalize(entries, o.MinYear, o.MaxYear)
}

// Normalize parses, range-filters, dedupes and sorts raw entries.
//
// Entries whose year or value cannot be parsed are skipped. When several
// entries share a year the one seen first in the input wins. The result is
// never nil; an empty input yields an empty Series.
func Normalize(entries []RawEntry, minYear, maxYear int) Series {
	out := make(Series, 0, len(entries))
	seen := make(map[int]struct{}, len(entries))
	for _, e := range entries {
		obs, ok := ParseEntry(e)
		if !ok {
			continue
		}
		if obs.Year < minYear || obs.Year > maxYear {
			continue
		}
		if _, dup := seen[obs.Year]; dup {
			continue
		}
		seen[obs.Year] = struct{}{}
		out = append(out, obs)
	}
	// years are unique, so stability does not matter
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// ParseEntry parses both fields of e. It reports false if either is malformed.
func ParseEntry(e RawEntry) (Observation, bool) {
	y, ok := ParseInt(e.Year)
	if !ok || y < math.MinInt32 || y > math.MaxInt32 {
		return Observation{}, false
	}
	v, ok := ParseInt(e.Value)
	if !ok {
		return Observation{}, false
	}
	return Observation{Year: int(y), Value: v}, true
}

// ParseInt parses a decimal integer, dropping thousands separators.
// Integral spellings such as "1234.0" are accepted; fractions, exponents,
// hex, digit underscores and non-numeric text are rejected.
func ParseInt(s string) (int64, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.ReplaceAll(raw, "\u00A0", "")
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.ReplaceAll(raw, " ", "")
	if raw == "" {
		return 0, false
	}
	// only a zero fraction may follow the digits
	if whole, frac, found := strings.Cut(raw, "."); found {
		if frac == "" || strings.Trim(frac, "0") != "" {
			return 0, false
		}
		raw = whole
	}
	if !isDecimal(raw) {
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// isDecimal reports whether s is an optional sign followed by ASCII digits.
func isDecimal(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Len returns the number of observations.
func (s Series) Len() int { return len(s) }

// Years returns the years in order.
func (s Series) Years() []int {
	out := make([]int, len(s))
	for i, o := range s {
		out[i] = o.Year
	}
	return out
}

// Labels returns the years formatted as chart labels.
func (s Series) Labels() []string {
	out := make([]string, len(s))
	for i, o := range s {
		out[i] = strconv.Itoa(o.Year)
	}
	return out
}

// Values returns the population counts in year order.
func (s Series) Values() []int64 {
	out := make([]int64, len(s))
	for i, o := range s {
		out[i] = o.Value
	}
	return out
}

// Floats returns the population counts as float64.
func (s Series) Floats() []float64 {
	out := make([]float64, len(s))
	for i, o := range s {
		out[i] = float64(o.Value)
	}
	return out
}

// Direction of a change between two consecutive observations.
type Direction string

const (
	Increase Direction = "increase"
	Decrease Direction = "decrease"
)

// Transition describes the change from one observation to the next.
type Transition struct {
	From      Observation `json:"from" yaml:"from"`
	To        Observation `json:"to" yaml:"to"`
	Delta     int64       `json:"delta" yaml:"delta"`
	Direction Direction   `json:"direction" yaml:"direction"`
}

// Transitions returns the change between each pair of consecutive
// observations. A zero delta counts as an increase.
func (s Series) Transitions() []Transition {
	if len(s) < 2 {
		return nil
	}
	out := make([]Transition, 0, len(s)-1)
	for i := 0; i+1 < len(s); i++ {
		d := s[i+1].Value - s[i].Value
		dir := Increase
		if d < 0 {
			dir = Decrease
		}
		out = append(out, Transition{From: s[i], To: s[i+1], Delta: d, Direction: dir})
	}
	return out
}

// String renders the series compactly, e.g. "[2005:100000 2010:110000]".
func (s Series) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, o := range s {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d:%d", o.Year, o.Value)
	}
	b.WriteByte(']')
	return b.String()
}
