// Package report evaluates a loaded configuration and renders the derived
// channel quantities and tidal height series.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/chrissnell/tidalchannel/pkg/config"
	"github.com/chrissnell/tidalchannel/pkg/tide"
)

// Report is the evaluated form of a configuration
type Report struct {
	Channels     []ChannelReport     `json:"channels"`
	Constituents []ConstituentReport `json:"constituents"`
	Series       SeriesReport        `json:"series"`
}

type ChannelReport struct {
	Name                          string   `json:"name"`
	Properties                    string   `json:"properties"`
	FrictionlessWaveVelocity      Number   `json:"frictionless_wave_velocity"`
	FrictionFactor                Number   `json:"friction_factor"`
	EffectiveDiffusionCoefficient Number   `json:"effective_diffusion_coefficient"`
	Hazards                       []string `json:"hazards,omitempty"`
}

// Number is a float64 that encodes NaN and ±Inf as JSON null
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

func numbers(xs []float64) []Number {
	if xs == nil {
		return nil
	}
	out := make([]Number, len(xs))
	for i, x := range xs {
		out[i] = Number(x)
	}
	return out
}

type ConstituentReport struct {
	Name             string `json:"name"`
	PeriodH          Number `json:"period_h"`
	Amplitude        Number `json:"amplitude"`
	Phase            Number `json:"phase"`
	AngularFrequency Number `json:"angular_frequency"`
	Frequency        Number `json:"frequency"`
}

type SeriesReport struct {
	Times   []Number      `json:"times,omitempty"`
	Heights []Number      `json:"heights,omitempty"`
	Summary SummaryReport `json:"summary"`
}

// SummaryReport mirrors tide.Summary with non-finite values encoded as null
type SummaryReport struct {
	Count  int    `json:"count"`
	Mean   Number `json:"mean"`
	StdDev Number `json:"std_dev"`
	Min    Number `json:"min"`
	Max    Number `json:"max"`
	Range  Number `json:"range"`
}

func newSummaryReport(s tide.Summary) SummaryReport {
	return SummaryReport{
		Count:  s.Count,
		Mean:   Number(s.Mean),
		StdDev: Number(s.StdDev),
		Min:    Number(s.Min),
		Max:    Number(s.Max),
		Range:  Number(s.Range),
	}
}

// Build evaluates every channel and the superposed constituents over the
// configured time axis. Series times and heights are only kept when
// withSeries is set.
func Build(cfg *config.ConfigData, withSeries bool) (*Report, error) {
	channels, err := cfg.BuildChannels()
	if err != nil {
		return nil, err
	}

	r := &Report{
		Channels:     make([]ChannelReport, len(channels)),
		Constituents: make([]ConstituentReport, len(cfg.Constituents)),
	}

	for i, p := range channels {
		d := p.Describe()
		r.Channels[i] = ChannelReport{
			Name:                          cfg.Channels[i].Name,
			Properties:                    p.String(),
			FrictionlessWaveVelocity:      Number(d.FrictionlessWaveVelocity),
			FrictionFactor:                Number(d.FrictionFactor),
			EffectiveDiffusionCoefficient: Number(d.EffectiveDiffusionCoefficient),
			Hazards:                       p.Hazards(),
		}
	}

	constituents := cfg.BuildConstituents()
	for i, f := range constituents {
		r.Constituents[i] = ConstituentReport{
			Name:             cfg.Constituents[i].Name,
			PeriodH:          Number(f.PeriodH()),
			Amplitude:        Number(f.Amplitude()),
			Phase:            Number(f.Phase()),
			AngularFrequency: Number(f.AngularFrequency()),
			Frequency:        Number(f.Hz()),
		}
	}

	times := cfg.Series.TimeAxis()
	heights := constituents.Heights(times)
	r.Series.Summary = newSummaryReport(tide.Summarize(heights))
	if withSeries {
		r.Series.Times = numbers(times)
		r.Series.Heights = numbers(heights)
	}

	return r, nil
}

// WriteJSON writes the report as indented JSON
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText writes a human-readable summary of the report
func (r *Report) WriteText(w io.Writer) error {
	ew := &errWriter{w: w}

	ew.printf("Channels (%d):\n", len(r.Channels))
	for _, c := range r.Channels {
		ew.printf("  %s\n", c.Name)
		ew.printf("    %s\n", c.Properties)
		ew.printf("    Wave velocity:         %.4f m/s\n", float64(c.FrictionlessWaveVelocity))
		ew.printf("    Friction factor:       %.6g 1/s\n", float64(c.FrictionFactor))
		ew.printf("    Diffusion coefficient: %.4f m²/s\n", float64(c.EffectiveDiffusionCoefficient))
		for _, h := range c.Hazards {
			ew.printf("    Warning: %s\n", h)
		}
	}

	ew.printf("\nConstituents (%d):\n", len(r.Constituents))
	for _, c := range r.Constituents {
		ew.printf("  %-6s period %.4f h  amplitude %.4f m  phase %.4f rad  ω %.6g rad/s\n",
			c.Name, float64(c.PeriodH), float64(c.Amplitude), float64(c.Phase), float64(c.AngularFrequency))
	}

	s := r.Series.Summary
	ew.printf("\nTidal height over %d samples:\n", s.Count)
	ew.printf("  Mean:  %.4f m\n", float64(s.Mean))
	ew.printf("  Std:   %.4f m\n", float64(s.StdDev))
	ew.printf("  Min:   %.4f m\n", float64(s.Min))
	ew.printf("  Max:   %.4f m\n", float64(s.Max))
	ew.printf("  Range: %.4f m\n", float64(s.Range))

	return ew.err
}

// errWriter keeps the first write error and skips later writes
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
