// Package stats keeps running statistics over game results without holding
// on to every sample.
package stats

import (
	"fmt"
	"math"
)

const Epsilon = 1e-6

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic is a running mean and variance (Welford's algorithm), plus the
// extremes seen so far.
type Statistic struct {
	n    int
	last float64
	min  float64
	max  float64
	mean float64
	m2   float64
}

func (s *Statistic) Push(val float64) {
	s.last = val
	s.n++
	if s.n == 1 {
		s.mean, s.min, s.max = val, val, val
		s.m2 = 0
		return
	}
	delta := val - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (val - s.mean)
	s.min = math.Min(s.min, val)
	s.max = math.Max(s.max, val)
}

func (s *Statistic) Mean() float64 {
	return s.mean
}

// Variance is the sample variance; zero until there are two samples.
func (s *Statistic) Variance() float64 {
	if s.n <= 1 {
		return 0
	}
	return s.m2 / float64(s.n-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistic) StandardError() float64 {
	if s.n == 0 {
		return 0
	}
	return math.Sqrt(s.Variance() / float64(s.n))
}

// ConfidenceInterval returns the half-width of the given two-tailed
// confidence interval (0 to 100 percent) around the mean.
func (s *Statistic) ConfidenceInterval(pct float64) float64 {
	return ZVal(pct) * s.StandardError()
}

func (s *Statistic) Last() float64 { return s.last }
func (s *Statistic) Min() float64  { return s.min }
func (s *Statistic) Max() float64  { return s.max }
func (s *Statistic) Count() int    { return s.n }

func (s *Statistic) String() string {
	if s.n == 0 {
		return "no samples"
	}
	return fmt.Sprintf("n=%d mean=%.2f±%.2f stdev=%.2f min=%g max=%g",
		s.n, s.mean, s.ConfidenceInterval(95), s.Stdev(), s.min, s.max)
}
