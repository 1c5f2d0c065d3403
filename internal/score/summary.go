package score

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	Hits  int
	Mean  time.Duration // Positive when hitting late on average
	Stdev time.Duration
}

func Summarize(offsets []time.Duration) Summary {
	s := Summary{Hits: len(offsets)}
	if len(offsets) == 0 {
		return s
	}
	xs := make([]float64, len(offsets))
	for i, o := range offsets {
		xs[i] = float64(o)
	}
	if len(xs) == 1 {
		s.Mean = offsets[0]
		return s
	}
	mean, std := stat.MeanStdDev(xs, nil)
	s.Mean = time.Duration(mean)
	s.Stdev = time.Duration(std)
	return s
}
