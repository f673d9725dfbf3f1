// Package tide describes single tidal constituents by period, amplitude and
// phase, and reconstructs the time-domain tidal height from them.
//
// The height of a constituent at time t (seconds) is Re(A·e^{iωt}), where A is
// the complex amplitude amplitude·e^{i·phase} and ω = 2π/(period·3600).
package tide

import (
	"math"
	"math/cmplx"
)

// SecondsPerHour converts periods given in hours to seconds
const SecondsPerHour = 60 * 60

// Frequency is a single tidal constituent. A zero period describes a steady,
// non-oscillating component. Two Frequency values built from the same period,
// amplitude and phase compare equal with ==.
type Frequency struct {
	periodH   float64 // hours
	amplitude float64 // meters
	phase     float64 // radians

	complexAmplitude complex128
	angular          float64
	hz               float64
}

// New creates a constituent. No validation is performed; negative periods
// and amplitudes are accepted as given.
func New(periodH, amplitude, phase float64) Frequency {
	return Frequency{
		periodH:          periodH,
		amplitude:        amplitude,
		phase:            phase,
		complexAmplitude: complex(amplitude*math.Cos(phase), amplitude*math.Sin(phase)),
		angular:          angularFrequency(periodH),
		hz:               frequency(periodH),
	}
}

func angularFrequency(periodH float64) float64 {
	if periodH == 0 {
		return 0
	}
	return 2 * math.Pi / (periodH * SecondsPerHour)
}

func frequency(periodH float64) float64 {
	if periodH == 0 {
		return 0
	}
	return 1 / (periodH * SecondsPerHour)
}

// FromComplexAmplitude reconstructs a constituent from its complex amplitude.
// The amplitude is |z| carrying the sign of Re(z) and the phase is
// atan(Im(z)/Re(z)), so the phase stays within [-π/2, π/2] and a negative real
// part is expressed through a negative amplitude. When Re(z) is zero the
// amplitude collapses to zero whatever the magnitude of z. A zero z yields a
// zero phase.
//
// Use FromComplexAmplitudePolar for the conventional magnitude and phase.
func FromComplexAmplitude(z complex128, periodH float64) Frequency {
	re, im := real(z), imag(z)
	amplitude := sign(re) * cmplx.Abs(z)

	var phase float64
	if re != 0 || im != 0 {
		phase = math.Atan(im / re)
	}
	return New(periodH, amplitude, phase)
}

// FromComplexAmplitudePolar reconstructs a constituent with a non-negative
// amplitude |z| and a phase atan2(Im z, Re z) in [-π, π].
func FromComplexAmplitudePolar(z complex128, periodH float64) Frequency {
	return New(periodH, cmplx.Abs(z), cmplx.Phase(z))
}

// sign mirrors numpy's sign: -1, 0 or +1, and NaN for NaN
func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	case x == 0:
		return 0
	default:
		return math.NaN()
	}
}

// PeriodH returns the period in hours
func (f Frequency) PeriodH() float64 { return f.periodH }

// Amplitude returns the amplitude in meters
func (f Frequency) Amplitude() float64 { return f.amplitude }

// Phase returns the phase in radians
func (f Frequency) Phase() float64 { return f.phase }

// ComplexAmplitude returns amplitude·(cos phase + i·sin phase)
func (f Frequency) ComplexAmplitude() complex128 {
	return f.complexAmplitude
}

// AngularFrequency returns ω in rad/s, or 0 for a zero period
func (f Frequency) AngularFrequency() float64 {
	return f.angular
}

// Hz returns the ordinary frequency in 1/s, or 0 for a zero period
func (f Frequency) Hz() float64 {
	return f.hz
}

// IsSteady reports whether the constituent does not oscillate
func (f Frequency) IsSteady() bool {
	return f.periodH == 0
}
