package tide

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Height returns the tidal height of f at time t in seconds:
// Re(A·e^{iωt}).
func Height(f Frequency, t float64) float64 {
	// Re((a+ib)(cos θ + i sin θ)) = a cos θ - b sin θ
	a, b := real(f.complexAmplitude), imag(f.complexAmplitude)
	theta := f.angular * t
	return a*math.Cos(theta) - b*math.Sin(theta)
}

// Heights evaluates Height at every time in ts. The result has the same
// length as ts.
func Heights(f Frequency, ts []float64) []float64 {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = Height(f, t)
	}
	return out
}

// HeightsVec evaluates Height over a gonum vector of times
func HeightsVec(f Frequency, ts mat.Vector) *mat.VecDense {
	n := ts.Len()
	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		out.SetVec(i, Height(f, ts.AtVec(i)))
	}
	return out
}

// Constituents is a set of tidal constituents whose heights superpose
type Constituents []Frequency

// Height returns the summed height of all constituents at time t
func (c Constituents) Height(t float64) float64 {
	var h float64
	for _, f := range c {
		h += Height(f, t)
	}
	return h
}

// Heights evaluates the summed height at every time in ts
func (c Constituents) Heights(ts []float64) []float64 {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = c.Height(t)
	}
	return out
}

// TimeAxis returns count uniformly spaced times in seconds, starting at start
// and spaced step seconds apart.
func TimeAxis(start, step float64, count int) []float64 {
	if count <= 0 {
		return []float64{}
	}
	ts := make([]float64, count)
	for i := range ts {
		ts[i] = start + float64(i)*step
	}
	return ts
}
