// Package distribution computes box-and-whisker statistics for population samples.
package distribution

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// ErrInvalidInput reports a sample a five-number summary cannot be computed over.
var ErrInvalidInput = errors.New("invalid input")

// WhiskerCoef is the IQR multiple used for the whisker fences.
const WhiskerCoef = 1.5

// Summary is a five-number summary with whiskers clamped to the sample range.
type Summary struct {
	Min    float64 `json:"min" yaml:"min"`
	Q1     float64 `json:"q1" yaml:"q1"`
	Median float64 `json:"median" yaml:"median"`
	Q3     float64 `json:"q3" yaml:"q3"`
	Max    float64 `json:"max" yaml:"max"`
}

// IQR returns the interquartile range.
func (s Summary) IQR() float64 { return s.Q3 - s.Q1 }

// Summarize computes the five-number summary of values.
//
// Quartiles use linear interpolation between closest ranks (R-7). The whisker
// ends are the 1.5*IQR fences, pulled in to the sample's actual extremes.
// values is not modified. An empty sample, or one containing NaN or Inf,
// fails with ErrInvalidInput.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, fmt.Errorf("summarize: empty sample: %w", ErrInvalidInput)
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	for i, v := range sorted {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Summary{}, fmt.Errorf("summarize: value %d is not finite: %w", i, ErrInvalidInput)
		}
	}
	sort.Float64s(sorted)

	q1 := Quantile(sorted, 0.25)
	median := Quantile(sorted, 0.5)
	q3 := Quantile(sorted, 0.75)
	iqr := q3 - q1
	lo, hi := stats.Bounds(sorted)

	return Summary{
		Min:    math.Max(q1-WhiskerCoef*iqr, lo),
		Q1:     q1,
		Median: median,
		Q3:     q3,
		Max:    math.Min(q3+WhiskerCoef*iqr, hi),
	}, nil
}

// Quantile returns the p-quantile of an ascending sample using R-7 linear
// interpolation. It returns 0 for an empty sample.
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo] + w*(sorted[hi]-sorted[lo])
}

// singletonPermille are the display offsets around a lone value: -5%, -2.5%, 0, +2.5%, +5%.
var singletonPermille = [...]float64{950, 975, 1000, 1025, 1050}

// ExpandSingletonForDisplay fabricates a five-point sample around v so a year
// with a single observation can still be drawn as a box. The spread is
// synthetic and says nothing about real variation; results built from it
// must be flagged as such.
func ExpandSingletonForDisplay(v float64) []float64 {
	out := make([]float64, len(singletonPermille))
	for i, pm := range singletonPermille {
		out[i] = v * pm / 1000
	}
	return out
}
