package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alexwhite-1/MDE4806-S26-14/pkg/quadrature"
)

// Config holds configuration for sample generation.
type Config struct {
	CPR      int        // cycles per revolution, default 4096
	Axes     int        // 1 or 2, default 2
	Hz       int        // sample rate, default 20 (display-friendly)
	Axis1    Trajectory // default: steady 1 deg/sec from 0
	Axis2    Trajectory // default: steady 10 deg/sec from 90
	Quantize bool       // snap angles to the encoder's minimum step
}

func (c Config) withDefaults() Config {
	if c.CPR == 0 {
		c.CPR = quadrature.DefaultCPR
	}
	if c.Axes == 0 {
		c.Axes = 2
	}
	if c.Hz <= 0 {
		c.Hz = 20
	}
	if c.Axis1 == nil {
		c.Axis1 = ConstantRate{Rate: 1.0}
	}
	if c.Axis2 == nil {
		c.Axis2 = ConstantRate{Rate: 10.0, Offset: 90.0}
	}
	return c
}

func (c Config) angles(t float64) (a1, a2 float64) {
	a1 = c.Axis1.AngleAt(t)
	a2 = c.Axis2.AngleAt(t)
	if c.Quantize {
		a1 = QuantizeAngle(a1, c.CPR)
		a2 = QuantizeAngle(a2, c.CPR)
	}
	return a1, a2
}

// Sample is one emitted snapshot: the quadrature frame plus the driving
// angles that produced it.
type Sample struct {
	Time   float64 // seconds since calibration
	Angle1 float64
	Angle2 float64
	Frame  quadrature.Frame
	Axes   int
}

// CSV renders the sample. Without angles it is the plain frame form; with
// angles it matches the display tooling's input format:
// "A,B,Index,Angle" for one axis, "A1,B1,A2,B2,Index,Angle1,Angle2" for two.
func (s Sample) CSV(withAngles bool) string {
	if !withAngles {
		return s.Frame.CSV(s.Axes)
	}
	if s.Axes == 1 {
		return fmt.Sprintf("%s,%.4f", s.Frame.CSV(1), s.Angle1)
	}
	return fmt.Sprintf("%s,%.4f,%.4f", s.Frame.CSV(2), s.Angle1, s.Angle2)
}

// Generate produces n samples synchronously: calibrate at t=0, then sample
// the trajectories at the configured rate. Deterministic for a given
// config, which is what the CSV tooling and golden tests rely on.
func Generate(cfg Config, n int) []Sample {
	cfg = cfg.withDefaults()

	out := quadrature.NewOutput(cfg.CPR, cfg.Axes)
	a1, a2 := cfg.angles(0)
	out.Initialize(a1, a2)

	dt := 1.0 / float64(cfg.Hz)
	samples := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		t := float64(i) * dt
		a1, a2 = cfg.angles(t)
		out.Update(a1, a2)
		samples = append(samples, Sample{
			Time:   t,
			Angle1: a1,
			Angle2: a2,
			Frame:  out.Frame(),
			Axes:   out.NumAxes(),
		})
	}
	return samples
}

// Runner drives an Output from trajectories in real time and publishes
// samples on a channel. One Runner owns its Output; callers consume
// Samples() and Logs() only.
type Runner struct {
	cfg Config
	out *quadrature.Output

	mu        sync.Mutex
	running   bool
	sampleCh  chan Sample
	logCh     chan string
	lastIndex int
}

// NewRunner creates a runner for the given config.
func NewRunner(cfg Config) *Runner {
	cfg = cfg.withDefaults()
	return &Runner{
		cfg:      cfg,
		out:      quadrature.NewOutput(cfg.CPR, cfg.Axes),
		sampleCh: make(chan Sample, 1),
		logCh:    make(chan string, 10),
	}
}

// Samples returns the channel on which generated samples are published.
// Only the most recent sample is retained if the consumer falls behind.
func (r *Runner) Samples() <-chan Sample {
	return r.sampleCh
}

// Logs returns a channel of human-readable progress messages.
func (r *Runner) Logs() <-chan string {
	return r.logCh
}

// Hz returns the sample rate.
func (r *Runner) Hz() int {
	return r.cfg.Hz
}

// Axes returns the active axis count.
func (r *Runner) Axes() int {
	return r.cfg.Axes
}

func (r *Runner) log(format string, args ...any) {
	msg := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	select {
	case r.logCh <- msg:
	default:
		// Drop if channel full
	}
}

// Start calibrates the output and runs the sample loop until the context is
// cancelled.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return fmt.Errorf("already running")
	}
	r.running = true
	r.mu.Unlock()

	a1, a2 := r.cfg.angles(0)
	r.out.Initialize(a1, a2)
	r.lastIndex = r.out.Frame().Index
	if r.cfg.Axes == 1 {
		r.log("Calibrated axis 1 at %.4f deg (CPR %d)", a1, r.out.CPR(0))
	} else {
		r.log("Calibrated axes at %.4f / %.4f deg (CPR %d)", a1, a2, r.out.CPR(0))
	}
	r.log("Sampling at %d Hz", r.cfg.Hz)

	ticker := time.NewTicker(time.Second / time.Duration(r.cfg.Hz))
	defer ticker.Stop()

	dt := 1.0 / float64(r.cfg.Hz)
	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			r.mu.Lock()
			r.running = false
			r.mu.Unlock()
			r.log("Stopped")
			return ctx.Err()
		case <-ticker.C:
			r.step(float64(i) * dt)
		}
	}
}

func (r *Runner) step(t float64) {
	a1, a2 := r.cfg.angles(t)
	r.out.Update(a1, a2)
	frame := r.out.Frame()

	if frame.Index == 1 && r.lastIndex == 0 {
		r.log("Index pulse at t=%.2fs", t)
	}
	r.lastIndex = frame.Index

	r.sendSample(Sample{
		Time:   t,
		Angle1: a1,
		Angle2: a2,
		Frame:  frame,
		Axes:   r.out.NumAxes(),
	})
}

func (r *Runner) sendSample(s Sample) {
	select {
	case r.sampleCh <- s:
	default:
		// Drop old sample if channel full, replace with new
		select {
		case <-r.sampleCh:
		default:
		}
		r.sampleCh <- s
	}
}
