package sim

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadProfile(t *testing.T) {
	path := writeProfile(t, `
cpr: 2048
axes: 1
hz: 10
quantize: true
axis1:
  start: 45
  segments:
    - rate: 1.0
      duration: 30s
    - rate: -2.0
`)

	p, err := LoadProfile(path)
	require.NoError(t, err)

	assert.Equal(t, 2048, p.CPR)
	assert.Equal(t, 1, p.Axes)
	assert.Equal(t, 10, p.Hz)
	assert.True(t, p.Quantize)
	assert.Equal(t, 45.0, p.Axis1.Start)
	require.Len(t, p.Axis1.Segments, 2)
	assert.Equal(t, 1.0, p.Axis1.Segments[0].Rate)
	assert.Equal(t, "30s", p.Axis1.Segments[0].Duration)
}

func TestLoadProfile_MissingFile(t *testing.T) {
	_, err := LoadProfile("no-such-profile.yaml")
	require.Error(t, err)
}

func TestLoadProfile_BadYAML(t *testing.T) {
	path := writeProfile(t, "axis1: [not a mapping")
	_, err := LoadProfile(path)
	require.Error(t, err)
}

func TestProfile_ToConfig_SegmentContinuity(t *testing.T) {
	p := &Profile{
		Axes: 1,
		Axis1: AxisProfile{
			Start: 10.0,
			Segments: []SegmentSpec{
				{Rate: 10.0, Duration: "10s"},
				{Rate: 0.0},
			},
		},
	}

	cfg, err := p.ToConfig()
	require.NoError(t, err)

	traj := cfg.Axis1
	assert.InDelta(t, 10.0, traj.AngleAt(0), 1e-9)
	assert.InDelta(t, 60.0, traj.AngleAt(5), 1e-9)
	// Second segment holds the angle the first one reached.
	assert.InDelta(t, 110.0, traj.AngleAt(10), 1e-9)
	assert.InDelta(t, 110.0, traj.AngleAt(100), 1e-9)
}

func TestProfile_ToConfig_OscillationSegment(t *testing.T) {
	p := &Profile{
		Axis1: AxisProfile{
			Start: 90.0,
			Segments: []SegmentSpec{
				{Amplitude: 10.0, Period: "4s"},
			},
		},
	}

	cfg, err := p.ToConfig()
	require.NoError(t, err)

	traj := cfg.Axis1
	assert.InDelta(t, 90.0, traj.AngleAt(0), 1e-9)
	assert.InDelta(t, 100.0, traj.AngleAt(1), 1e-9) // quarter period peak
	assert.InDelta(t, 80.0, traj.AngleAt(3), 1e-9)  // trough
}

func TestProfile_ToConfig_WrapsAngles(t *testing.T) {
	p := &Profile{
		Axis1: AxisProfile{
			Start:    350.0,
			Segments: []SegmentSpec{{Rate: 10.0}},
		},
	}

	cfg, err := p.ToConfig()
	require.NoError(t, err)

	got := cfg.Axis1.AngleAt(2) // 350 + 20 wraps to 10
	assert.InDelta(t, 10.0, got, 1e-9)
	assert.True(t, got >= 0 && got < 360)
}

func TestProfile_ToConfig_EmptySegmentsHold(t *testing.T) {
	p := &Profile{Axis1: AxisProfile{Start: 45.0}}

	cfg, err := p.ToConfig()
	require.NoError(t, err)

	for _, tm := range []float64{0, 10, 1000} {
		assert.InDelta(t, 45.0, cfg.Axis1.AngleAt(tm), 1e-9)
	}
}

func TestProfile_ToConfig_Errors(t *testing.T) {
	tests := []struct {
		name     string
		segments []SegmentSpec
	}{
		{
			"missing duration mid-list",
			[]SegmentSpec{{Rate: 1.0}, {Rate: 2.0, Duration: "5s"}},
		},
		{
			"bad duration",
			[]SegmentSpec{{Rate: 1.0, Duration: "5 parsecs"}},
		},
		{
			"negative duration",
			[]SegmentSpec{{Rate: 1.0, Duration: "-5s"}},
		},
		{
			"amplitude without period",
			[]SegmentSpec{{Amplitude: 10.0}},
		},
		{
			"bad period",
			[]SegmentSpec{{Amplitude: 10.0, Period: "often"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Profile{Axis1: AxisProfile{Segments: tt.segments}}
			_, err := p.ToConfig()
			require.Error(t, err)
		})
	}
}

func TestProfile_EndToEnd(t *testing.T) {
	// A profile-driven generation run: rotate a quarter revolution per
	// sample, confirm the full-revolution index property survives the
	// profile layer.
	p := &Profile{
		CPR:  1,
		Axes: 1,
		Hz:   1,
		Axis1: AxisProfile{
			Segments: []SegmentSpec{{Rate: 90.0}},
		},
	}

	cfg, err := p.ToConfig()
	require.NoError(t, err)

	samples := Generate(cfg, 5)
	require.Len(t, samples, 5)
	assert.Equal(t, 1, samples[0].Frame.Index)
	assert.Equal(t, 0, samples[1].Frame.Index)
	assert.Equal(t, 1, samples[4].Frame.Index)
	assert.True(t, math.Abs(samples[4].Angle1) < 1e-9)
}
