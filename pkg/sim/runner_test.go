package sim

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexwhite-1/MDE4806-S26-14/pkg/quadrature"
)

func TestGenerate_SampleCount(t *testing.T) {
	samples := Generate(Config{CPR: 4096, Axes: 1, Hz: 20, Axis1: ConstantRate{Rate: 1.0}}, 40)

	require.Len(t, samples, 40)
	assert.Equal(t, 0.0, samples[0].Time)
	assert.InDelta(t, 1.95, samples[39].Time, 1e-9) // 39 steps at 50 ms
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := Config{CPR: 4096, Axes: 2, Hz: 20}
	a := Generate(cfg, 100)
	b := Generate(cfg, 100)

	assert.Equal(t, a, b)
}

func TestGenerate_Defaults(t *testing.T) {
	samples := Generate(Config{}, 1)

	require.Len(t, samples, 1)
	s := samples[0]
	assert.Equal(t, 2, s.Axes)
	assert.InDelta(t, 0.0, s.Angle1, 1e-9)  // default axis 1 starts at 0
	assert.InDelta(t, 90.0, s.Angle2, 1e-9) // default axis 2 starts at 90
}

func TestGenerate_IndexOncePerRevolution(t *testing.T) {
	// 90 deg/sec sampled at 1 Hz with CPR 1: one count per sample, a full
	// revolution every 4 samples.
	cfg := Config{CPR: 1, Axes: 1, Hz: 1, Axis1: ConstantRate{Rate: 90.0}}
	samples := Generate(cfg, 8)

	var pulses int
	for _, s := range samples {
		if s.Frame.Index == 1 {
			pulses++
		}
	}
	assert.Equal(t, 2, pulses, "expected one index pulse per revolution")
	assert.Equal(t, 1, samples[0].Frame.Index)
	assert.Equal(t, 1, samples[4].Frame.Index)
}

func TestSample_CSV(t *testing.T) {
	single := Sample{Angle1: 12.3456, Frame: quadrature.Frame{Axis1A: 1}, Axes: 1}
	assert.Equal(t, "1,0,0", single.CSV(false))
	assert.Equal(t, "1,0,0,12.3456", single.CSV(true))
	assert.Equal(t, 2, strings.Count(single.CSV(false), ","))
	assert.Equal(t, 3, strings.Count(single.CSV(true), ","))

	dual := Sample{Angle1: 1.0, Angle2: 2.0, Frame: quadrature.Frame{Axis1B: 1, Index: 1}, Axes: 2}
	assert.Equal(t, 4, strings.Count(dual.CSV(false), ","))
	assert.Equal(t, 6, strings.Count(dual.CSV(true), ","))
	assert.Equal(t, "0,1,0,0,1,1.0000,2.0000", dual.CSV(true))
}

func TestRunner_StreamsSamples(t *testing.T) {
	r := NewRunner(Config{CPR: 4096, Axes: 1, Hz: 200, Axis1: ConstantRate{Rate: 45.0}})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- r.Start(ctx) }()

	var got []Sample
	deadline := time.After(5 * time.Second)
	for len(got) < 3 {
		select {
		case s := <-r.Samples():
			got = append(got, s)
		case <-deadline:
			t.Fatal("timed out waiting for samples")
		}
	}

	cancel()
	require.ErrorIs(t, <-errCh, context.Canceled)

	for _, s := range got {
		assert.Equal(t, 1, s.Axes)
		assert.GreaterOrEqual(t, s.Angle1, 0.0)
		assert.Less(t, s.Angle1, 360.0)
	}
}

func TestRunner_Logs(t *testing.T) {
	r := NewRunner(Config{CPR: 4096, Axes: 2, Hz: 100})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go r.Start(ctx)

	select {
	case msg := <-r.Logs():
		assert.Contains(t, msg, "Calibrated")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for log message")
	}
}

func TestRunner_StartTwice(t *testing.T) {
	r := NewRunner(Config{Hz: 100})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go r.Start(ctx)

	// Wait until the loop is up before the second start attempt.
	select {
	case <-r.Samples():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for first sample")
	}

	err := r.Start(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")
}

func TestRunner_Accessors(t *testing.T) {
	r := NewRunner(Config{Axes: 1, Hz: 50})
	assert.Equal(t, 50, r.Hz())
	assert.Equal(t, 1, r.Axes())

	defaults := NewRunner(Config{})
	assert.Equal(t, 20, defaults.Hz())
	assert.Equal(t, 2, defaults.Axes())
}
