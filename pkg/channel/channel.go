// Package channel derives the physical parameters of a tidal channel from its
// geometry and flow characteristics: the frictionless shallow-water wave speed,
// the linearized bottom-friction factor and the effective along-channel
// diffusion coefficient.
package channel

import (
	"errors"
	"fmt"
	"math"
)

// Gravity is the gravitational acceleration in m/s²
const Gravity = 9.81

// Diffusion prefactor bounds. The prefactor depends on the channel's
// empirical data and must lie in [MinDiffusionPrefactor, MaxDiffusionPrefactor].
const (
	DefaultDiffusionPrefactor = 0.0125
	MinDiffusionPrefactor     = 0.005
	MaxDiffusionPrefactor     = 0.020
)

// ErrDiffusionPrefactorOutOfRange is wrapped by the ValidationError returned
// when the diffusion prefactor lies outside its allowed range.
var ErrDiffusionPrefactorOutOfRange = errors.New("diffusion prefactor out of range")

// ValidationError reports a constructor argument that failed validation
type ValidationError struct {
	Field string
	Value float64
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Properties holds the physical parameters of a single channel together with
// the quantities derived from them. A Properties value is immutable.
type Properties struct {
	width                  float64 // w (m)
	height                 float64 // tidally averaged depth h (m)
	length                 float64 // (m)
	tidalAveragedFlow      float64 // phi_0 (m³/s)
	dragCoefficient        float64 // c_d
	tidalVelocityAmplitude float64 // U (m/s)
	diffusionPrefactor     float64

	waveVelocity         float64
	frictionFactor       float64
	diffusionCoefficient float64
}

// Derived bundles the quantities computed from a channel's parameters
type Derived struct {
	FrictionlessWaveVelocity      float64
	FrictionFactor                float64
	EffectiveDiffusionCoefficient float64
}

// New creates channel properties using DefaultDiffusionPrefactor.
func New(width, height, length, tidalAveragedFlow, dragCoefficient, tidalVelocityAmplitude float64) (Properties, error) {
	return NewWithPrefactor(width, height, length, tidalAveragedFlow, dragCoefficient, tidalVelocityAmplitude, DefaultDiffusionPrefactor)
}

// NewWithPrefactor creates channel properties with an explicit diffusion
// prefactor. The prefactor is the only validated argument; a zero or negative
// height or drag coefficient is accepted and yields non-finite derived values.
func NewWithPrefactor(width, height, length, tidalAveragedFlow, dragCoefficient, tidalVelocityAmplitude, diffusionPrefactor float64) (Properties, error) {
	if err := validatePrefactor(diffusionPrefactor); err != nil {
		return Properties{}, err
	}

	p := Properties{
		width:                  width,
		height:                 height,
		length:                 length,
		tidalAveragedFlow:      tidalAveragedFlow,
		dragCoefficient:        dragCoefficient,
		tidalVelocityAmplitude: tidalVelocityAmplitude,
		diffusionPrefactor:     diffusionPrefactor,
	}
	p.waveVelocity = frictionlessWaveVelocity(height)
	p.frictionFactor = frictionFactor(dragCoefficient, height, tidalVelocityAmplitude)
	p.diffusionCoefficient = effectiveDiffusionCoefficient(diffusionPrefactor, width, tidalVelocityAmplitude, dragCoefficient, height)

	return p, nil
}

// validatePrefactor rejects NaN as well as values outside the inclusive range
func validatePrefactor(prefactor float64) error {
	if !(prefactor >= MinDiffusionPrefactor && prefactor <= MaxDiffusionPrefactor) {
		return &ValidationError{
			Field: "diffusion_prefactor",
			Value: prefactor,
			Err:   fmt.Errorf("%w: must be between %v and %v", ErrDiffusionPrefactorOutOfRange, MinDiffusionPrefactor, MaxDiffusionPrefactor),
		}
	}
	return nil
}

// frictionlessWaveVelocity is the shallow-water gravity wave speed sqrt(g*h)
func frictionlessWaveVelocity(height float64) float64 {
	return math.Sqrt(Gravity * height)
}

// frictionFactor is the linearized bottom friction r = (c_d/h) * 8U/(3π).
// U is taken as the characteristic tidal velocity amplitude as given.
func frictionFactor(drag, height, velocityAmplitude float64) float64 {
	return (drag / height) * (8 * velocityAmplitude / (3 * math.Pi))
}

// effectiveDiffusionCoefficient computes 𝔻 = prefactor * w²U / (sqrt(c_d) * h)
func effectiveDiffusionCoefficient(prefactor, width, velocityAmplitude, drag, height float64) float64 {
	return prefactor * (width * width * velocityAmplitude) / (math.Sqrt(drag) * height)
}

func (p Properties) Width() float64                  { return p.width }
func (p Properties) Height() float64                 { return p.height }
func (p Properties) Length() float64                 { return p.length }
func (p Properties) TidalAveragedFlow() float64      { return p.tidalAveragedFlow }
func (p Properties) DragCoefficient() float64        { return p.dragCoefficient }
func (p Properties) TidalVelocityAmplitude() float64 { return p.tidalVelocityAmplitude }
func (p Properties) DiffusionPrefactor() float64     { return p.diffusionPrefactor }

// FrictionlessWaveVelocity returns the wave velocity of the eta/phi wave
// without friction, in m/s.
func (p Properties) FrictionlessWaveVelocity() float64 {
	return p.waveVelocity
}

// FrictionFactor returns the linearized friction factor r in 1/s.
func (p Properties) FrictionFactor() float64 {
	return p.frictionFactor
}

// EffectiveDiffusionCoefficient returns the along-channel dispersion
// coefficient in m²/s.
func (p Properties) EffectiveDiffusionCoefficient() float64 {
	return p.diffusionCoefficient
}

// Describe returns all derived quantities at once
func (p Properties) Describe() Derived {
	return Derived{
		FrictionlessWaveVelocity:      p.waveVelocity,
		FrictionFactor:                p.frictionFactor,
		EffectiveDiffusionCoefficient: p.diffusionCoefficient,
	}
}

// Hazards lists parameters that will make the derived quantities non-finite
// or physically meaningless. Construction never fails on these.
func (p Properties) Hazards() []string {
	var hazards []string
	if !(p.height > 0) {
		hazards = append(hazards, fmt.Sprintf("height %v is not positive", p.height))
	}
	if !(p.dragCoefficient > 0) {
		hazards = append(hazards, fmt.Sprintf("drag_coefficient %v is not positive", p.dragCoefficient))
	}
	if !(p.width > 0) {
		hazards = append(hazards, fmt.Sprintf("width %v is not positive", p.width))
	}
	return hazards
}

// String lists every constructor field by name. It is meant for logs and
// debugging, not for parsing.
func (p Properties) String() string {
	return fmt.Sprintf("ChannelProperties(width=%v, height=%v, length=%v, tidal_averaged_flow=%v, drag_coefficient=%v, tidal_velocity_amplitude=%v, diffusion_prefactor=%v)",
		p.width, p.height, p.length, p.tidalAveragedFlow, p.dragCoefficient, p.tidalVelocityAmplitude, p.diffusionPrefactor)
}
