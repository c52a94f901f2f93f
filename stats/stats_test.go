package stats

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores   []int
		mean     float64
		stdev    float64
		min, max float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638, 10, 23},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891, 10, 124},
		{[]int{1}, 1, 0, 1, 1},
		{[]int{}, 0, 0, 0, 0},
		{[]int{1, 1}, 1, 0, 1, 1},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, score := range c.scores {
			s.Push(float64(score))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.Equal(s.Min(), c.min)
		is.Equal(s.Max(), c.max)
		is.Equal(s.Count(), len(c.scores))
	}
}

func TestZVal(t *testing.T) {
	assert.InDelta(t, 1.959964, ZVal(95), 1e-5)
	assert.InDelta(t, 2.575829, ZVal(99), 1e-5)
	assert.InDelta(t, 0, ZVal(0), 1e-9)
}

func TestConfidenceInterval(t *testing.T) {
	s := &Statistic{}
	assert.Equal(t, 0.0, s.ConfidenceInterval(95))
	assert.Equal(t, "no samples", s.String())
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		s.Push(v)
	}
	assert.InDelta(t, ZVal(95)*s.Stdev()/2.8284271247, s.ConfidenceInterval(95), 1e-9)
	assert.Contains(t, s.String(), "n=8 mean=5.00")
}
