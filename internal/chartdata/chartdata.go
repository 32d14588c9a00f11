// Package chartdata turns a normalized series or its box-plot summaries into
// the finished values a chart renderer needs. Nothing here draws.
package chartdata

import (
	"errors"
	"fmt"

	"github.com/YashJagani/citypop/internal/distribution"
	"github.com/YashJagani/citypop/internal/series"
)

// ErrTooFewNodes is returned by Sankey when fewer than two years survive
// normalization.
var ErrTooFewNodes = errors.New("need at least 2 years of data")

// Kinds lists every chart kind the CLI can emit.
var Kinds = []string{"bar", "line", "pie", "doughnut", "polar", "radar", "lollipop", "bubble", "stacked", "sankey", "boxplot"}

// CategoricalKinds share the labels/data shape produced by Categorical.
var CategoricalKinds = map[string]bool{
	"bar": true, "line": true, "pie": true, "doughnut": true,
	"polar": true, "radar": true, "lollipop": true,
}

// Title builds the chart heading, e.g. "Population of Waterloo (2001-2011)".
// An empty series gets no year range.
func Title(city string, s series.Series) string {
	if s.Len() == 0 {
		return fmt.Sprintf("Population of %s", city)
	}
	return fmt.Sprintf("Population of %s (%d-%d)", city, s[0].Year, s[len(s)-1].Year)
}

// CategoricalData is one value per year label.
type CategoricalData struct {
	Title  string   `json:"title" yaml:"title"`
	Labels []string `json:"labels" yaml:"labels"`
	Data   []int64  `json:"data" yaml:"data"`
}

func Categorical(city string, s series.Series) CategoricalData {
	return CategoricalData{Title: Title(city, s), Labels: s.Labels(), Data: s.Values()}
}

// BubblePoint is one bubble; the radius grows with the year index.
type BubblePoint struct {
	X int   `json:"x" yaml:"x"`
	Y int64 `json:"y" yaml:"y"`
	R int   `json:"r" yaml:"r"`
}

type BubbleData struct {
	Title  string        `json:"title" yaml:"title"`
	Points []BubblePoint `json:"points" yaml:"points"`
}

const bubbleBaseRadius = 10

func Bubble(city string, s series.Series) BubbleData {
	pts := make([]BubblePoint, 0, len(s))
	for i, o := range s {
		pts = append(pts, BubblePoint{X: o.Year, Y: o.Value, R: bubbleBaseRadius + i})
	}
	return BubbleData{Title: Title(city, s), Points: pts}
}

// Share is a named fraction of the total, in percent.
type Share struct {
	Label   string `json:"label" yaml:"label"`
	Percent int    `json:"percent" yaml:"percent"`
}

// DefaultShares are illustrative age-group splits, not census figures.
var DefaultShares = []Share{
	{Label: "Working Age", Percent: 50},
	{Label: "Children", Percent: 30},
	{Label: "Seniors", Percent: 20},
}

type StackedDataset struct {
	Label string    `json:"label" yaml:"label"`
	Data  []float64 `json:"data" yaml:"data"`
}

// StackedData splits every year across shares. Estimated is always true
// because the shares are not observed values.
type StackedData struct {
	Title     string           `json:"title" yaml:"title"`
	Labels    []string         `json:"labels" yaml:"labels"`
	Datasets  []StackedDataset `json:"datasets" yaml:"datasets"`
	Estimated bool             `json:"estimated" yaml:"estimated"`
}

// Stacked splits s by shares. A nil shares uses DefaultShares.
func Stacked(city string, s series.Series, shares []Share) StackedData {
	if shares == nil {
		shares = DefaultShares
	}
	out := StackedData{Title: Title(city, s), Labels: s.Labels(), Estimated: true}
	for _, sh := range shares {
		ds := StackedDataset{Label: fmt.Sprintf("%s (%d%%)", sh.Label, sh.Percent), Data: make([]float64, 0, len(s))}
		for _, o := range s {
			ds.Data = append(ds.Data, float64(o.Value)*float64(sh.Percent)/100)
		}
		out.Datasets = append(out.Datasets, ds)
	}
	return out
}

type SankeyNode struct {
	ID    int    `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Value int64  `json:"value" yaml:"value"`
}

// SankeyLink joins consecutive years. Value is the absolute change.
type SankeyLink struct {
	Source    int              `json:"source" yaml:"source"`
	Target    int              `json:"target" yaml:"target"`
	Value     int64            `json:"value" yaml:"value"`
	Direction series.Direction `json:"direction" yaml:"direction"`
}

type SankeyData struct {
	Title string       `json:"title" yaml:"title"`
	Nodes []SankeyNode `json:"nodes" yaml:"nodes"`
	Links []SankeyLink `json:"links" yaml:"links"`
}

func Sankey(city string, s series.Series) (SankeyData, error) {
	if s.Len() < 2 {
		return SankeyData{}, fmt.Errorf("sankey for %s: %w (got %d)", city, ErrTooFewNodes, s.Len())
	}
	out := SankeyData{Title: Title(city, s)}
	for i, o := range s {
		out.Nodes = append(out.Nodes, SankeyNode{ID: i, Name: fmt.Sprint(o.Year), Value: o.Value})
	}
	for i, tr := range s.Transitions() {
		v := tr.Delta
		if v < 0 {
			v = -v
		}
		out.Links = append(out.Links, SankeyLink{Source: i, Target: i + 1, Value: v, Direction: tr.Direction})
	}
	return out, nil
}

type BoxPlotData struct {
	Title     string                 `json:"title" yaml:"title"`
	Labels    []string               `json:"labels" yaml:"labels"`
	Summaries []distribution.Summary `json:"summaries" yaml:"summaries"`
	Synthetic []bool                 `json:"synthetic" yaml:"synthetic"`
}

// BoxPlot lays out per-year summaries in year order, as produced by
// distribution.SummarizeGroups.
func BoxPlot(city string, ys []distribution.YearSummary) BoxPlotData {
	out := BoxPlotData{
		Labels:    make([]string, 0, len(ys)),
		Summaries: make([]distribution.Summary, 0, len(ys)),
		Synthetic: make([]bool, 0, len(ys)),
	}
	for _, y := range ys {
		out.Labels = append(out.Labels, fmt.Sprint(y.Year))
		out.Summaries = append(out.Summaries, y.Summary)
		out.Synthetic = append(out.Synthetic, y.Synthetic)
	}
	out.Title = fmt.Sprintf("Population of %s", city)
	if len(ys) > 0 {
		out.Title = fmt.Sprintf("Population of %s (%d-%d)", city, ys[0].Year, ys[len(ys)-1].Year)
	}
	return out
}
