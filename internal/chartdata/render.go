package chartdata

import (
	"fmt"
	"io"
	"strings"

	"github.com/YashJagani/citypop/internal/series"
	"github.com/YashJagani/citypop/internal/utils"
	"github.com/aclements/go-moremath/stats"
	"gopkg.in/yaml.v3"
)

// Markdowner is implemented by every dataset that has a plain-text report.
type Markdowner interface {
	Markdown() string
}

// Render writes v to w as json, yaml, or markdown. Markdown requires v to
// implement Markdowner.
func Render(w io.Writer, format string, v any) error {
	var b []byte
	switch strings.ToLower(format) {
	case "json":
		pj, err := utils.PrettyJSON(v)
		if err != nil {
			return err
		}
		b = append(pj, '\n')
	case "yaml":
		y, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		b = y
	case "markdown", "md", "":
		m, ok := v.(Markdowner)
		if !ok {
			return fmt.Errorf("markdown output not supported for %T", v)
		}
		b = []byte(m.Markdown())
	default:
		return fmt.Errorf("unknown format %q (use markdown|json|yaml)", format)
	}
	_, err := w.Write(b)
	return err
}

// SeriesReport is the normalized series with its year-over-year changes.
type SeriesReport struct {
	City        string              `json:"city" yaml:"city"`
	Series      series.Series       `json:"series" yaml:"series"`
	Transitions []series.Transition `json:"transitions,omitempty" yaml:"transitions,omitempty"`
	Mean        float64             `json:"mean" yaml:"mean"`
}

func NewSeriesReport(city string, s series.Series) SeriesReport {
	r := SeriesReport{City: city, Series: s, Transitions: s.Transitions()}
	if s.Len() > 0 {
		r.Mean = stats.Mean(s.Floats())
	}
	return r
}

func (r SeriesReport) Markdown() string {
	var b strings.Builder
	b.WriteString("[POPULATION SERIES]\n")
	b.WriteString(fmt.Sprintf("City: %s\n", r.City))
	b.WriteString(fmt.Sprintf("Years: %d\n", r.Series.Len()))
	if r.Series.Len() == 0 {
		b.WriteString("No observations in range.\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("Mean: %.0f\n\n", r.Mean))
	b.WriteString("[OBSERVATIONS]\n")
	for _, o := range r.Series {
		b.WriteString(fmt.Sprintf("- %d: %d\n", o.Year, o.Value))
	}
	if len(r.Transitions) > 0 {
		b.WriteString("\n[CHANGES]\n")
		for _, t := range r.Transitions {
			b.WriteString(fmt.Sprintf("- %d -> %d: %+d (%s)\n", t.From.Year, t.To.Year, t.Delta, t.Direction))
		}
	}
	return b.String()
}

func (d CategoricalData) Markdown() string {
	var b strings.Builder
	b.WriteString("[CHART DATA]\n")
	b.WriteString(fmt.Sprintf("Title: %s\n\n", d.Title))
	for i, l := range d.Labels {
		b.WriteString(fmt.Sprintf("- %s: %d\n", l, d.Data[i]))
	}
	return b.String()
}

func (d BubbleData) Markdown() string {
	var b strings.Builder
	b.WriteString("[BUBBLE DATA]\n")
	b.WriteString(fmt.Sprintf("Title: %s\n\n", d.Title))
	for _, p := range d.Points {
		b.WriteString(fmt.Sprintf("- x=%d y=%d r=%d\n", p.X, p.Y, p.R))
	}
	return b.String()
}

func (d StackedData) Markdown() string {
	var b strings.Builder
	b.WriteString("[STACKED DATA]\n")
	b.WriteString(fmt.Sprintf("Title: %s\n", d.Title))
	if d.Estimated {
		b.WriteString("Note: shares are estimates, not observed values\n")
	}
	b.WriteString("\n")
	for _, ds := range d.Datasets {
		b.WriteString(fmt.Sprintf("%s\n", ds.Label))
		for i, v := range ds.Data {
			b.WriteString(fmt.Sprintf("- %s: %.1f\n", d.Labels[i], v))
		}
	}
	return b.String()
}

func (d SankeyData) Markdown() string {
	var b strings.Builder
	b.WriteString("[SANKEY DATA]\n")
	b.WriteString(fmt.Sprintf("Title: %s\n\n", d.Title))
	b.WriteString("[NODES]\n")
	for _, n := range d.Nodes {
		b.WriteString(fmt.Sprintf("- %d %s: %d\n", n.ID, n.Name, n.Value))
	}
	b.WriteString("\n[LINKS]\n")
	for _, l := range d.Links {
		b.WriteString(fmt.Sprintf("- %s -> %s: %d (%s)\n", d.Nodes[l.Source].Name, d.Nodes[l.Target].Name, l.Value, l.Direction))
	}
	return b.String()
}

func (d BoxPlotData) Markdown() string {
	var b strings.Builder
	b.WriteString("[BOX PLOT]\n")
	b.WriteString(fmt.Sprintf("Title: %s\n\n", d.Title))
	for i, s := range d.Summaries {
		b.WriteString(fmt.Sprintf("- %s: min %.4g, q1 %.4g, median %.4g, q3 %.4g, max %.4g", d.Labels[i], s.Min, s.Q1, s.Median, s.Q3, s.Max))
		if d.Synthetic[i] {
			b.WriteString(" (synthetic)")
		}
		b.WriteString("\n")
	}
	return b.String()
}
