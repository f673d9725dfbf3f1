package tide

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds descriptive statistics for a tidal height series
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Range  float64 `json:"range"`
}

// Summarize computes statistics over heights. An empty series yields a zero
// Summary.
func Summarize(heights []float64) Summary {
	if len(heights) == 0 {
		return Summary{}
	}

	s := Summary{
		Count: len(heights),
		Min:   floats.Min(heights),
		Max:   floats.Max(heights),
	}
	s.Range = s.Max - s.Min

	if len(heights) == 1 {
		s.Mean = heights[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(heights, nil)

	return s
}
