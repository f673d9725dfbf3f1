package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/chrissnell/tidalchannel/pkg/channel"
)

const sampleYAML = `
channels:
  - name: western-scheldt
    width: 2000
    height: 12
    length: 60000
    tidal-averaged-flow: 120
    drag-coefficient: 0.0025
    tidal-velocity-amplitude: 1
    diffusion-prefactor: 0.01
  - name: side-channel
    width: 300
    height: 4
    length: 8000
    drag-coefficient: 0.003
    tidal-velocity-amplitude: 0.6
constituents:
  - name: Z0
    period-hours: 0
    amplitude: 0.1
  - name: M2
    period-hours: 12.42
    amplitude: 1.75
    phase: 0.3
series:
  step-seconds: 1800
  count: 49
`

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestYAMLProviderLoadConfig(t *testing.T) {
	p := NewYAMLProvider(writeYAML(t, sampleYAML))
	defer p.Close()

	cfg, err := p.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if len(cfg.Channels) != 2 {
		t.Fatalf("got %d channels, expected 2", len(cfg.Channels))
	}
	ws := cfg.Channels[0]
	if ws.Name != "western-scheldt" || ws.Width != 2000 || ws.TidalAveragedFlow != 120 {
		t.Errorf("unexpected first channel: %+v", ws)
	}
	if ws.DiffusionPrefactor == nil || *ws.DiffusionPrefactor != 0.01 {
		t.Errorf("DiffusionPrefactor = %v, expected 0.01", ws.DiffusionPrefactor)
	}
	if cfg.Channels[1].DiffusionPrefactor != nil {
		t.Errorf("second channel should use the default prefactor")
	}

	if len(cfg.Constituents) != 2 || cfg.Constituents[1].PeriodH != 12.42 || cfg.Constituents[1].Phase != 0.3 {
		t.Errorf("unexpected constituents: %+v", cfg.Constituents)
	}

	if cfg.Series.StepSeconds != 1800 || cfg.Series.Count != 49 || cfg.Series.StartSeconds != 0 {
		t.Errorf("unexpected series: %+v", cfg.Series)
	}

	if !p.IsReadOnly() {
		t.Error("YAML provider should be read-only")
	}
}

func TestYAMLProviderSections(t *testing.T) {
	p := NewYAMLProvider(writeYAML(t, sampleYAML))

	channels, err := p.GetChannels()
	if err != nil || len(channels) != 2 {
		t.Fatalf("GetChannels = %v, %v", channels, err)
	}
	constituents, err := p.GetConstituents()
	if err != nil || len(constituents) != 2 {
		t.Fatalf("GetConstituents = %v, %v", constituents, err)
	}
	series, err := p.GetSeries()
	if err != nil || series.Count != 49 {
		t.Fatalf("GetSeries = %v, %v", series, err)
	}
}

func TestYAMLProviderErrors(t *testing.T) {
	if _, err := NewYAMLProvider(filepath.Join(t.TempDir(), "missing.yaml")).LoadConfig(); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := NewYAMLProvider(writeYAML(t, "channels: [")).LoadConfig(); err == nil {
		t.Error("expected error for malformed YAML")
	}
	if _, err := NewYAMLProvider(writeYAML(t, "channels:\n  - width: 10\n")).LoadConfig(); err == nil {
		t.Error("expected error for unnamed channel")
	}
}

func TestSeriesDefaults(t *testing.T) {
	cfg, err := NewYAMLProvider(writeYAML(t, "channels: []\n")).LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Series.StepSeconds != DefaultStepSeconds || cfg.Series.Count != DefaultCount {
		t.Errorf("series = %+v, expected defaults", cfg.Series)
	}

	axis := cfg.Series.TimeAxis()
	if len(axis) != DefaultCount || axis[1]-axis[0] != DefaultStepSeconds {
		t.Errorf("unexpected time axis of length %d", len(axis))
	}

	// an explicit zero is treated as unset
	cfg, err = NewYAMLProvider(writeYAML(t, "series:\n  step-seconds: 0\n  count: 0\n")).LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Series.StepSeconds != DefaultStepSeconds || cfg.Series.Count != DefaultCount {
		t.Errorf("series = %+v, expected defaults for explicit zeros", cfg.Series)
	}
}

func TestBuildChannels(t *testing.T) {
	cfg, err := NewYAMLProvider(writeYAML(t, sampleYAML)).LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	channels, err := cfg.BuildChannels()
	if err != nil {
		t.Fatalf("BuildChannels: %v", err)
	}
	if len(channels) != 2 {
		t.Fatalf("got %d channels, expected 2", len(channels))
	}
	if channels[0].DiffusionPrefactor() != 0.01 {
		t.Errorf("DiffusionPrefactor = %v, expected 0.01", channels[0].DiffusionPrefactor())
	}
	if channels[1].DiffusionPrefactor() != channel.DefaultDiffusionPrefactor {
		t.Errorf("DiffusionPrefactor = %v, expected default", channels[1].DiffusionPrefactor())
	}
	if math.Abs(channels[0].FrictionlessWaveVelocity()-math.Sqrt(9.81*12)) > 1e-9 {
		t.Errorf("FrictionlessWaveVelocity = %v", channels[0].FrictionlessWaveVelocity())
	}

	bad := 0.5
	cfg.Channels[1].DiffusionPrefactor = &bad
	_, err = cfg.BuildChannels()
	if !errors.Is(err, channel.ErrDiffusionPrefactorOutOfRange) {
		t.Errorf("BuildChannels error = %v, expected prefactor range error", err)
	}
}

func TestBuildConstituents(t *testing.T) {
	cfg, err := NewYAMLProvider(writeYAML(t, sampleYAML)).LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	c := cfg.BuildConstituents()
	if len(c) != 2 {
		t.Fatalf("got %d constituents, expected 2", len(c))
	}
	if !c[0].IsSteady() {
		t.Error("Z0 should be steady")
	}
	// mean level plus M2 at t=0
	expected := 0.1 + 1.75*math.Cos(0.3)
	if got := c.Height(0); math.Abs(got-expected) > 1e-9 {
		t.Errorf("Height(0) = %v, expected %v", got, expected)
	}
}

func TestSQLiteProviderRoundTrip(t *testing.T) {
	yamlCfg, err := NewYAMLProvider(writeYAML(t, sampleYAML)).LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	dbPath := filepath.Join(t.TempDir(), "config.db")
	p, err := NewSQLiteProvider(dbPath, nil)
	if err != nil {
		t.Fatalf("NewSQLiteProvider: %v", err)
	}
	if p.IsReadOnly() {
		t.Error("SQLite provider should be writable")
	}

	if err := p.SaveConfig(yamlCfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// reopening must not re-run migrations destructively
	p, err = NewSQLiteProvider(dbPath, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer p.Close()

	cfg, err := p.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if len(cfg.Channels) != 2 {
		t.Fatalf("got %d channels, expected 2", len(cfg.Channels))
	}
	// channels keep their YAML order, which is not alphabetical here
	ws := cfg.Channels[0]
	if ws.Name != "western-scheldt" || ws.DiffusionPrefactor == nil || *ws.DiffusionPrefactor != 0.01 {
		t.Errorf("unexpected first channel: %+v", ws)
	}
	if cfg.Channels[1].Name != "side-channel" || cfg.Channels[1].DiffusionPrefactor != nil {
		t.Errorf("unexpected second channel: %+v", cfg.Channels[1])
	}

	if len(cfg.Constituents) != 2 || cfg.Constituents[0].Name != "Z0" || cfg.Constituents[1].Name != "M2" {
		t.Errorf("constituent order not preserved: %+v", cfg.Constituents)
	}
	if cfg.Series != yamlCfg.Series {
		t.Errorf("series = %+v, expected %+v", cfg.Series, yamlCfg.Series)
	}
}

func TestSQLiteProviderChannelEdits(t *testing.T) {
	p, err := NewSQLiteProvider(filepath.Join(t.TempDir(), "config.db"), nil)
	if err != nil {
		t.Fatalf("NewSQLiteProvider: %v", err)
	}
	defer p.Close()

	series, err := p.GetSeries()
	if err != nil {
		t.Fatalf("GetSeries: %v", err)
	}
	if series.Count != DefaultCount || series.StepSeconds != DefaultStepSeconds {
		t.Errorf("empty database series = %+v, expected defaults", series)
	}

	c := &ChannelData{Name: "inlet", Width: 50, Height: 3, Length: 500, DragCoefficient: 0.002, TidalVelocityAmplitude: 0.4}
	if err := p.AddChannel(c); err != nil {
		t.Fatalf("AddChannel: %v", err)
	}
	if err := p.AddChannel(c); err == nil {
		t.Error("expected error adding a duplicate channel")
	}

	if err := p.AddChannel(&ChannelData{Name: "bay", Width: 80, Height: 2, Length: 900, DragCoefficient: 0.002, TidalVelocityAmplitude: 0.3}); err != nil {
		t.Fatalf("AddChannel: %v", err)
	}

	channels, err := p.GetChannels()
	if err != nil || len(channels) != 2 || channels[0].Name != "inlet" || channels[1].Name != "bay" {
		t.Fatalf("GetChannels = %+v, %v", channels, err)
	}

	if err := p.DeleteChannel("inlet"); err != nil {
		t.Fatalf("DeleteChannel: %v", err)
	}
	if err := p.DeleteChannel("inlet"); err == nil {
		t.Error("expected error deleting a missing channel")
	}
}

func TestCompare(t *testing.T) {
	base, err := NewYAMLProvider(writeYAML(t, sampleYAML)).LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	same, err := NewYAMLProvider(writeYAML(t, sampleYAML)).LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if diffs := Compare(base, same); len(diffs) != 0 {
		t.Errorf("identical configs differ: %v", diffs)
	}

	prefactor := 0.02
	same.Channels[0].Height = 13
	same.Channels[1].DiffusionPrefactor = &prefactor
	same.Constituents = same.Constituents[:1]
	same.Series.Count = 10

	diffs := Compare(base, same)
	expected := []string{
		"channel 0 (western-scheldt): height 12 != 13",
		"channel 1 (side-channel): diffusion_prefactor set on one side only",
		"constituent count: 2 != 1",
		"series: count 49 != 10",
	}
	if len(diffs) != len(expected) {
		t.Fatalf("diffs = %q, expected %q", diffs, expected)
	}
	for i := range expected {
		if diffs[i] != expected[i] {
			t.Errorf("diff %d = %q, expected %q", i, diffs[i], expected[i])
		}
	}
}

func TestCompareYAMLAgainstSQLite(t *testing.T) {
	yamlCfg, err := NewYAMLProvider(writeYAML(t, sampleYAML)).LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	p, err := NewSQLiteProvider(filepath.Join(t.TempDir(), "config.db"), nil)
	if err != nil {
		t.Fatalf("NewSQLiteProvider: %v", err)
	}
	defer p.Close()

	if err := p.SaveConfig(yamlCfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	sqliteCfg, err := p.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if diffs := Compare(yamlCfg, sqliteCfg); len(diffs) != 0 {
		t.Errorf("converted config differs: %v", diffs)
	}
}
