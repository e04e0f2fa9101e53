// internal/stats/stats.go
// Package stats reduces measurement samples to the numbers that are plotted
// and tabulated.
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"golang.org/x/perf/benchmath"
	"golang.org/x/perf/benchunit"
)

var (
	ErrNoSamples        = errors.New("no samples")
	ErrUnknownStatistic = errors.New("unknown statistic")
	ErrUnknownUnit      = errors.New("unknown time unit")
)

// Summary is a central value with its confidence interval, all in nanoseconds.
type Summary struct {
	Center   float64
	Lo       float64
	Hi       float64
	N        int
	Warnings []error
}

// Summarize reduces samples using statistic ("median", "mean" or "min").
func Summarize(samples []float64, statistic string, confidence float64) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, ErrNoSamples
	}
	values := append([]float64(nil), samples...)

	switch statistic {
	case "median", "":
		thresholds := benchmath.DefaultThresholds
		sample := benchmath.NewSample(values, &thresholds)
		s := benchmath.AssumeNothing.Summary(sample, confidence)
		warnings := append(append([]error(nil), sample.Warnings...), s.Warnings...)
		lo, hi := s.Lo, s.Hi
		// Too few samples for the requested confidence yields an unbounded interval.
		if math.IsInf(lo, 0) || math.IsNaN(lo) || math.IsInf(hi, 0) || math.IsNaN(hi) {
			lo, hi = s.Center, s.Center
		}
		return Summary{Center: s.Center, Lo: lo, Hi: hi, N: len(values), Warnings: warnings}, nil
	case "mean":
		return meanSummary(values, confidence), nil
	case "min":
		sort.Float64s(values)
		return Summary{Center: values[0], Lo: values[0], Hi: values[0], N: len(values)}, nil
	default:
		return Summary{}, fmt.Errorf("%w: %q", ErrUnknownStatistic, statistic)
	}
}

// meanSummary uses a normal approximation for the interval of the mean.
func meanSummary(values []float64, confidence float64) Summary {
	n := float64(len(values))
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n
	if len(values) == 1 {
		return Summary{Center: mean, Lo: mean, Hi: mean, N: 1}
	}

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	stddev := math.Sqrt(sq / (n - 1))
	z := math.Sqrt2 * math.Erfinv(confidence)
	half := z * stddev / math.Sqrt(n)
	return Summary{Center: mean, Lo: mean - half, Hi: mean + half, N: len(values)}
}

// Comparison is the outcome of a Mann-Whitney U test between two samples.
type Comparison struct {
	P           float64
	Alpha       float64
	N1, N2      int
	Delta       string
	Significant bool
	Warnings    []error
}

// Compare tests whether other differs from base. Delta is the change of the
// median, or "~" when the difference is not significant.
func Compare(base, other []float64) (Comparison, error) {
	if len(base) == 0 || len(other) == 0 {
		return Comparison{}, ErrNoSamples
	}
	thresholds := benchmath.DefaultThresholds
	a := benchmath.NewSample(append([]float64(nil), base...), &thresholds)
	b := benchmath.NewSample(append([]float64(nil), other...), &thresholds)

	c := benchmath.AssumeNothing.Compare(a, b)
	sa := benchmath.AssumeNothing.Summary(a, 0.95)
	sb := benchmath.AssumeNothing.Summary(b, 0.95)

	return Comparison{
		P:           c.P,
		Alpha:       c.Alpha,
		N1:          c.N1,
		N2:          c.N2,
		Delta:       c.FormatDelta(sa.Center, sb.Center),
		Significant: c.P <= c.Alpha,
		Warnings:    c.Warnings,
	}, nil
}

// Unit is a display unit for nanosecond values.
type Unit struct {
	Name  string
	Label string
	Ns    float64
}

var units = []Unit{
	{Name: "ns", Label: "ns", Ns: 1},
	{Name: "us", Label: "µs", Ns: 1e3},
	{Name: "ms", Label: "ms", Ns: 1e6},
	{Name: "s", Label: "s", Ns: 1e9},
}

// PickUnit resolves name, choosing for "auto" the largest unit that keeps
// maxNs at or above one.
func PickUnit(name string, maxNs float64) (Unit, error) {
	if name == "auto" || name == "" {
		picked := units[0]
		for _, u := range units {
			if maxNs/u.Ns >= 1 {
				picked = u
			}
		}
		return picked, nil
	}
	for _, u := range units {
		if u.Name == name {
			return u, nil
		}
	}
	return Unit{}, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
}

// Convert scales a nanosecond value into u.
func (u Unit) Convert(ns float64) float64 {
	return ns / u.Ns
}

// FormatDuration renders ns with an SI prefix, e.g. "1.234ms".
func FormatDuration(ns float64) string {
	return benchunit.Scale(ns/1e9, benchunit.Decimal) + "s"
}
