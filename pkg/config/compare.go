package config

import (
	"fmt"
	"math"
)

// floatTolerance absorbs REAL round-off between backends
const floatTolerance = 0.000001

// Compare lists the differences between two configurations, typically the
// same configuration loaded from YAML and from SQLite. Channels and
// constituents are compared position by position.
func Compare(a, b *ConfigData) []string {
	var diffs []string

	if len(a.Channels) != len(b.Channels) {
		diffs = append(diffs, fmt.Sprintf("channel count: %d != %d", len(a.Channels), len(b.Channels)))
	}
	for i := 0; i < len(a.Channels) && i < len(b.Channels); i++ {
		for _, d := range compareChannels(a.Channels[i], b.Channels[i]) {
			diffs = append(diffs, fmt.Sprintf("channel %d (%s): %s", i, a.Channels[i].Name, d))
		}
	}

	if len(a.Constituents) != len(b.Constituents) {
		diffs = append(diffs, fmt.Sprintf("constituent count: %d != %d", len(a.Constituents), len(b.Constituents)))
	}
	for i := 0; i < len(a.Constituents) && i < len(b.Constituents); i++ {
		ca, cb := a.Constituents[i], b.Constituents[i]
		if ca.Name != cb.Name {
			diffs = append(diffs, fmt.Sprintf("constituent %d: name %q != %q", i, ca.Name, cb.Name))
		}
		diffs = appendFloatDiff(diffs, fmt.Sprintf("constituent %d (%s): period_h", i, ca.Name), ca.PeriodH, cb.PeriodH)
		diffs = appendFloatDiff(diffs, fmt.Sprintf("constituent %d (%s): amplitude", i, ca.Name), ca.Amplitude, cb.Amplitude)
		diffs = appendFloatDiff(diffs, fmt.Sprintf("constituent %d (%s): phase", i, ca.Name), ca.Phase, cb.Phase)
	}

	diffs = appendFloatDiff(diffs, "series: start_seconds", a.Series.StartSeconds, b.Series.StartSeconds)
	diffs = appendFloatDiff(diffs, "series: step_seconds", a.Series.StepSeconds, b.Series.StepSeconds)
	if a.Series.Count != b.Series.Count {
		diffs = append(diffs, fmt.Sprintf("series: count %d != %d", a.Series.Count, b.Series.Count))
	}

	return diffs
}

func compareChannels(a, b ChannelData) []string {
	var diffs []string
	if a.Name != b.Name {
		diffs = append(diffs, fmt.Sprintf("name %q != %q", a.Name, b.Name))
	}
	diffs = appendFloatDiff(diffs, "width", a.Width, b.Width)
	diffs = appendFloatDiff(diffs, "height", a.Height, b.Height)
	diffs = appendFloatDiff(diffs, "length", a.Length, b.Length)
	diffs = appendFloatDiff(diffs, "tidal_averaged_flow", a.TidalAveragedFlow, b.TidalAveragedFlow)
	diffs = appendFloatDiff(diffs, "drag_coefficient", a.DragCoefficient, b.DragCoefficient)
	diffs = appendFloatDiff(diffs, "tidal_velocity_amplitude", a.TidalVelocityAmplitude, b.TidalVelocityAmplitude)

	switch {
	case (a.DiffusionPrefactor == nil) != (b.DiffusionPrefactor == nil):
		diffs = append(diffs, "diffusion_prefactor set on one side only")
	case a.DiffusionPrefactor != nil:
		diffs = appendFloatDiff(diffs, "diffusion_prefactor", *a.DiffusionPrefactor, *b.DiffusionPrefactor)
	}
	return diffs
}

func appendFloatDiff(diffs []string, field string, a, b float64) []string {
	if math.Abs(a-b) < floatTolerance || (math.IsNaN(a) && math.IsNaN(b)) || a == b {
		return diffs
	}
	return append(diffs, fmt.Sprintf("%s %v != %v", field, a, b))
}
