// Package sim drives the quadrature core with synthetic angle trajectories,
// standing in for the inclinometer's real angle pipeline during development
// and demos.
package sim

import "math"

// Trajectory supplies the absolute angle of one axis at a point in time.
// Implementations return degrees wrapped into [0, 360).
type Trajectory interface {
	AngleAt(t float64) float64 // t is seconds since calibration
}

// ConstantRate rotates steadily at Rate degrees per second, starting from
// Offset. Negative rates rotate backward.
type ConstantRate struct {
	Rate   float64
	Offset float64
}

func (c ConstantRate) AngleAt(t float64) float64 {
	return wrapAngle(c.Offset + c.Rate*t)
}

// Hold keeps the axis stationary at a fixed angle.
type Hold struct {
	Angle float64
}

func (h Hold) AngleAt(t float64) float64 {
	return wrapAngle(h.Angle)
}

// Oscillation sweeps sinusoidally around Center with the given Amplitude
// (degrees) and Period (seconds). It starts at Center moving forward, so it
// exercises direction reversals twice per period.
type Oscillation struct {
	Center    float64
	Amplitude float64
	Period    float64
}

func (o Oscillation) AngleAt(t float64) float64 {
	if o.Period <= 0 {
		return wrapAngle(o.Center)
	}
	return wrapAngle(o.Center + o.Amplitude*math.Sin(2*math.Pi*t/o.Period))
}

// QuantizeAngle snaps an angle to the encoder's minimum step for the given
// resolution, 360/(4*cpr) degrees. The real sensor pipeline reports angles
// already quantized to what the quadrature output can represent; enabling
// this makes the simulated angle stream match.
func QuantizeAngle(angle float64, cpr int) float64 {
	step := 360.0 / float64(4*cpr)
	return wrapAngle(math.Round(angle/step) * step)
}

// wrapAngle reduces an angle into [0, 360).
func wrapAngle(angle float64) float64 {
	m := math.Mod(angle, 360.0)
	if m < 0 {
		m += 360.0
	}
	return m
}
