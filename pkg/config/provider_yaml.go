package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	config, err := parseYAML(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", y.filename, err)
	}

	y.config = config
	return config, nil
}

// parseYAML converts the YAML document into our internal format
func parseYAML(data []byte) (*ConfigData, error) {
	var yamlConfig struct {
		Channels     []ChannelYAML     `yaml:"channels"`
		Constituents []ConstituentYAML `yaml:"constituents"`
		Series       SeriesYAML        `yaml:"series,omitempty"`
	}

	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return nil, err
	}

	config := &ConfigData{
		Channels:     make([]ChannelData, len(yamlConfig.Channels)),
		Constituents: make([]ConstituentData, len(yamlConfig.Constituents)),
	}

	for i, c := range yamlConfig.Channels {
		if c.Name == "" {
			return nil, fmt.Errorf("channel %d has no name", i)
		}
		config.Channels[i] = ChannelData{
			Name:                   c.Name,
			Width:                  c.Width,
			Height:                 c.Height,
			Length:                 c.Length,
			TidalAveragedFlow:      c.TidalAveragedFlow,
			DragCoefficient:        c.DragCoefficient,
			TidalVelocityAmplitude: c.TidalVelocityAmplitude,
			DiffusionPrefactor:     c.DiffusionPrefactor,
		}
	}

	for i, c := range yamlConfig.Constituents {
		config.Constituents[i] = ConstituentData{
			Name:      c.Name,
			PeriodH:   c.PeriodH,
			Amplitude: c.Amplitude,
			Phase:     c.Phase,
		}
	}

	config.Series = SeriesData{
		StartSeconds: yamlConfig.Series.StartSeconds,
		StepSeconds:  yamlConfig.Series.StepSeconds,
		Count:        yamlConfig.Series.Count,
	}.withDefaults()

	return config, nil
}

func (y *YAMLProvider) load() (*ConfigData, error) {
	if y.config == nil {
		return y.LoadConfig()
	}
	return y.config, nil
}

// GetChannels returns channel configurations
func (y *YAMLProvider) GetChannels() ([]ChannelData, error) {
	config, err := y.load()
	if err != nil {
		return nil, err
	}
	return config.Channels, nil
}

// GetConstituents returns tidal constituent configurations
func (y *YAMLProvider) GetConstituents() ([]ConstituentData, error) {
	config, err := y.load()
	if err != nil {
		return nil, err
	}
	return config.Constituents, nil
}

// GetSeries returns the time series configuration
func (y *YAMLProvider) GetSeries() (*SeriesData, error) {
	config, err := y.load()
	if err != nil {
		return nil, err
	}
	return &config.Series, nil
}

// IsReadOnly returns true since YAML files are read-only through this interface
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}

// YAML-specific structs with YAML tags
type ChannelYAML struct {
	Name                   string   `yaml:"name"`
	Width                  float64  `yaml:"width"`
	Height                 float64  `yaml:"height"`
	Length                 float64  `yaml:"length"`
	TidalAveragedFlow      float64  `yaml:"tidal-averaged-flow,omitempty"`
	DragCoefficient        float64  `yaml:"drag-coefficient"`
	TidalVelocityAmplitude float64  `yaml:"tidal-velocity-amplitude"`
	DiffusionPrefactor     *float64 `yaml:"diffusion-prefactor,omitempty"`
}

type ConstituentYAML struct {
	Name      string  `yaml:"name"`
	PeriodH   float64 `yaml:"period-hours"`
	Amplitude float64 `yaml:"amplitude"`
	Phase     float64 `yaml:"phase,omitempty"`
}

type SeriesYAML struct {
	StartSeconds float64 `yaml:"start-seconds,omitempty"`
	StepSeconds  float64 `yaml:"step-seconds,omitempty"`
	Count        int     `yaml:"count,omitempty"`
}
