// Package config loads channel and tidal constituent definitions from YAML
// files or SQLite databases.
package config

import (
	"fmt"

	"github.com/chrissnell/tidalchannel/pkg/channel"
	"github.com/chrissnell/tidalchannel/pkg/tide"
)

// Series defaults: one day at ten-minute resolution
const (
	DefaultStepSeconds = 600
	DefaultCount       = 145
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetChannels() ([]ChannelData, error)
	GetConstituents() ([]ConstituentData, error)
	GetSeries() (*SeriesData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Channels     []ChannelData     `json:"channels"`
	Constituents []ConstituentData `json:"constituents"`
	Series       SeriesData        `json:"series"`
}

// ChannelData holds the physical parameters of one channel. A nil
// DiffusionPrefactor selects channel.DefaultDiffusionPrefactor.
type ChannelData struct {
	Name                   string   `json:"name"`
	Width                  float64  `json:"width"`
	Height                 float64  `json:"height"`
	Length                 float64  `json:"length"`
	TidalAveragedFlow      float64  `json:"tidal_averaged_flow"`
	DragCoefficient        float64  `json:"drag_coefficient"`
	TidalVelocityAmplitude float64  `json:"tidal_velocity_amplitude"`
	DiffusionPrefactor     *float64 `json:"diffusion_prefactor,omitempty"`
}

// ConstituentData describes one tidal constituent. Phase is in radians.
type ConstituentData struct {
	Name      string  `json:"name"`
	PeriodH   float64 `json:"period_h"`
	Amplitude float64 `json:"amplitude"`
	Phase     float64 `json:"phase"`
}

// SeriesData defines the time axis on which tidal heights are evaluated
type SeriesData struct {
	StartSeconds float64 `json:"start_seconds"`
	StepSeconds  float64 `json:"step_seconds"`
	Count        int     `json:"count"`
}

// withDefaults fills in an unset step or count. Zero counts as unset, so a
// configured count of 0 yields DefaultCount samples rather than none.
func (s SeriesData) withDefaults() SeriesData {
	if s.StepSeconds == 0 {
		s.StepSeconds = DefaultStepSeconds
	}
	if s.Count == 0 {
		s.Count = DefaultCount
	}
	return s
}

// TimeAxis returns the series' evaluation times in seconds
func (s SeriesData) TimeAxis() []float64 {
	return tide.TimeAxis(s.StartSeconds, s.StepSeconds, s.Count)
}

// Build creates the channel properties described by c
func (c ChannelData) Build() (channel.Properties, error) {
	prefactor := channel.DefaultDiffusionPrefactor
	if c.DiffusionPrefactor != nil {
		prefactor = *c.DiffusionPrefactor
	}
	return channel.NewWithPrefactor(c.Width, c.Height, c.Length, c.TidalAveragedFlow,
		c.DragCoefficient, c.TidalVelocityAmplitude, prefactor)
}

// Build creates the tidal constituent described by c
func (c ConstituentData) Build() tide.Frequency {
	return tide.New(c.PeriodH, c.Amplitude, c.Phase)
}

// BuildChannels creates channel properties for every configured channel, in
// order. The first invalid channel aborts the build.
func (cd *ConfigData) BuildChannels() ([]channel.Properties, error) {
	channels := make([]channel.Properties, 0, len(cd.Channels))
	for _, c := range cd.Channels {
		p, err := c.Build()
		if err != nil {
			return nil, fmt.Errorf("channel %q: %w", c.Name, err)
		}
		channels = append(channels, p)
	}
	return channels, nil
}

// BuildConstituents creates the configured tidal constituents
func (cd *ConfigData) BuildConstituents() tide.Constituents {
	constituents := make(tide.Constituents, 0, len(cd.Constituents))
	for _, c := range cd.Constituents {
		constituents = append(constituents, c.Build())
	}
	return constituents
}
