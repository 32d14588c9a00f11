package distribution

import (
	"fmt"
	"sort"

	"github.com/YashJagani/citypop/internal/series"
)

// Group is every observed value for one year.
type Group struct {
	Year   int       `json:"year" yaml:"year"`
	Values []float64 `json:"values" yaml:"values"`
}

// YearSummary is the box-plot statistics for one year. Synthetic is true when
// the summary was computed over ExpandSingletonForDisplay output rather than
// real observations; N is the number of real observations behind it.
type YearSummary struct {
	Year      int     `json:"year" yaml:"year"`
	Summary   Summary `json:"summary" yaml:"summary"`
	N         int     `json:"n" yaml:"n"`
	Synthetic bool    `json:"synthetic" yaml:"synthetic"`
}

// GroupByYear collects every parseable entry within [minYear, maxYear] by
// year. Unlike series.Normalize it keeps duplicates, so years reported more
// than once get a real distribution. Groups are ordered by year and values
// keep their input order.
func GroupByYear(entries []series.RawEntry, minYear, maxYear int) []Group {
	idx := map[int]int{}
	var out []Group
	for _, e := range entries {
		obs, ok := series.ParseEntry(e)
		if !ok || obs.Year < minYear || obs.Year > maxYear {
			continue
		}
		i, ok := idx[obs.Year]
		if !ok {
			i = len(out)
			idx[obs.Year] = i
			out = append(out, Group{Year: obs.Year})
		}
		out[i].Values = append(out[i].Values, float64(obs.Value))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// SummarizeGroups summarizes each group in order. A group holding a single
// value is expanded for display first and its result is marked Synthetic.
func SummarizeGroups(groups []Group) ([]YearSummary, error) {
	out := make([]YearSummary, 0, len(groups))
	for _, g := range groups {
		values := g.Values
		synthetic := false
		if len(values) == 1 {
			values = ExpandSingletonForDisplay(values[0])
			synthetic = true
		}
		sum, err := Summarize(values)
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", g.Year, err)
		}
		out = append(out, YearSummary{Year: g.Year, Summary: sum, N: len(g.Values), Synthetic: synthetic})
	}
	return out, nil
}

// SummarizeSeries builds one synthetic summary per observation of a
// normalized series.
func SummarizeSeries(s series.Series) ([]YearSummary, error) {
	groups := make([]Group, len(s))
	for i, o := range s {
		groups[i] = Group{Year: o.Year, Values: []float64{float64(o.Value)}}
	}
	return SummarizeGroups(groups)
}
