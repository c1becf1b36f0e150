// Package quadrature converts absolute angle readings into the quadrature
// channel states a rotary encoder would emit.
//
// The quadrature signal carries only relative motion: each state change on
// the A/B pair encodes one position step, and direction is encoded by which
// channel leads. The absolute angle is therefore established exactly once,
// by calibration, and everything after that is delta tracking. The package
// does not know or care how an angle is measured, only that it is supplied
// with one.
package quadrature

import "math"

const (
	// DefaultCPR is the default encoder resolution in cycles per revolution.
	DefaultCPR = 4096

	// MinCPR and MaxCPR bound the configurable resolution. At MaxCPR one
	// quadrature state change corresponds to 0.01 degree.
	MinCPR = 1
	MaxCPR = 9000

	degreesPerRevolution = 360.0

	// angleTolerance absorbs floating-point noise in "is this angle at the
	// reference position" comparisons. Never compare against 0.0 or 360.0
	// exactly.
	angleTolerance = 0.001
)

// Pattern returns the quadrature channel pair (a, b) for a position count.
// Positions cycle through four states in a Gray-code-like sequence, so
// consecutive positions always differ in exactly one channel, and channel A
// leads channel B by 90 degrees of phase for increasing position.
func Pattern(position int) (a, b int) {
	switch ((position % 4) + 4) % 4 {
	case 0:
		return 0, 0
	case 1:
		return 1, 0
	case 2:
		return 1, 1
	default:
		return 0, 1
	}
}

// axisState holds the signal state for a single encoder axis. The position
// count is the authoritative location within the quadrature cycle; the
// channel values are always derived from it, never set independently.
type axisState struct {
	cpr             int
	positionsPerRev int
	startingAngle   float64
	previousAngle   float64
	positionCount   int
	channelA        int
	channelB        int
	index           int
	calibrated      bool
}

func newAxisState(cpr int) axisState {
	c := clampCPR(cpr)
	return axisState{
		cpr:             c,
		positionsPerRev: 4 * c,
	}
}

func clampCPR(cpr int) int {
	if cpr < MinCPR {
		return MinCPR
	}
	if cpr > MaxCPR {
		return MaxCPR
	}
	return cpr
}

// setCPR installs a new resolution. The existing position count is not
// rescaled; a resolution change invalidates the old position mapping, so
// the count resets to zero.
func (ax *axisState) setCPR(cpr int) {
	ax.cpr = clampCPR(cpr)
	ax.positionsPerRev = 4 * ax.cpr
	ax.positionCount = 0
}

// positionChange converts a normalized angle difference (degrees, within
// (-180, 180]) to encoder counts, rounding to the nearest count with ties
// away from zero.
func (ax *axisState) positionChange(angleDiff float64) int {
	return int(math.Round(angleDiff / degreesPerRevolution * float64(ax.positionsPerRev)))
}

// calibrate arms the axis at the given starting angle. Channels start low
// and the index is asserted only if the angle is at the physical reference,
// not at the calibration angle itself: an inclinometer calibrated away from
// zero starts with index low.
func (ax *axisState) calibrate(angle float64) {
	ax.startingAngle = angle
	ax.previousAngle = angle
	ax.positionCount = 0
	ax.channelA = 0
	ax.channelB = 0
	ax.calibrated = true
	if nearReference(angle) {
		ax.index = 1
	} else {
		ax.index = 0
	}
}

// update advances the axis to a new absolute angle reading.
func (ax *axisState) update(angle float64) {
	// Shortest-path assumption: true motion between samples never exceeds
	// half a revolution, so a wrap like 350->10 is always read as +20, never
	// -340. Inherited sampling-rate assumption; rotation faster than 180
	// degrees per sample is mis-tracked.
	diff := angle - ax.previousAngle
	for diff > 180.0 {
		diff -= degreesPerRevolution
	}
	for diff < -180.0 {
		diff += degreesPerRevolution
	}

	ax.positionCount += ax.positionChange(diff)
	for ax.positionCount < 0 {
		ax.positionCount += ax.positionsPerRev
	}
	ax.positionCount %= ax.positionsPerRev

	ax.channelA, ax.channelB = Pattern(ax.positionCount)

	if ax.positionCount == 0 {
		ax.index = 1
	} else {
		ax.index = 0
	}

	// Secondary correction from the absolute angle: if the reading says we
	// are at the physical zero and the channels agree (both low), force the
	// count back to zero. Accumulated rounding can drift the count away from
	// exactly 0 over many revolutions; this re-synchronizes the index pulse
	// to the true reference.
	ax.resetIndex(angle)

	ax.previousAngle = angle
}

// resetIndex applies the index correction check alone: assert the index and
// zero the count only when the absolute angle is at the reference position
// and both channels are currently low.
func (ax *axisState) resetIndex(angle float64) {
	if nearReference(angle) && ax.channelA == 0 && ax.channelB == 0 {
		ax.index = 1
		ax.positionCount = 0
	}
}

// nearReference reports whether an angle is effectively at the encoder's
// physical zero. The comparison is modulo one revolution, so 0, 360 and any
// other full turn all count.
func nearReference(angle float64) bool {
	m := math.Abs(math.Mod(angle, degreesPerRevolution))
	return m < angleTolerance || m > degreesPerRevolution-angleTolerance
}
