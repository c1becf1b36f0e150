package quadrature

import "fmt"

// Output manages quadrature signal generation for up to two encoder axes
// (e.g. the two tilt axes of the inclinometer). Axis indices are 0 and 1.
//
// All configuration is clamped rather than rejected and all queries on an
// invalid axis return a neutral zero value: callers are test harnesses, not
// untrusted input, so the failure mode everywhere is a silent no-op.
//
// Output is not safe for concurrent use; drive it from a single control
// loop. The two axes share no state, so independent loops per axis need no
// further coordination if each owns its own Output.
type Output struct {
	axis1   axisState
	axis2   axisState
	numAxes int
}

// Frame is one formatted snapshot of the combined signal state. In
// single-axis mode the axis-2 channels are forced low and Index carries
// axis 1 alone; in dual-axis mode Index is the OR of both index flags.
type Frame struct {
	Axis1A int
	Axis1B int
	Axis2A int
	Axis2B int
	Index  int
}

// CSV renders the frame in the wire-log format consumed by the display and
// decoder tooling: "A,B,Index" for a single axis, "A1,B1,A2,B2,Index" for
// two.
func (f Frame) CSV(numAxes int) string {
	if numAxes == 1 {
		return fmt.Sprintf("%d,%d,%d", f.Axis1A, f.Axis1B, f.Index)
	}
	return fmt.Sprintf("%d,%d,%d,%d,%d", f.Axis1A, f.Axis1B, f.Axis2A, f.Axis2B, f.Index)
}

// NewOutput creates an Output with the given resolution (cycles per
// revolution, clamped to [MinCPR, MaxCPR]) applied to both axes, and the
// given axis count (clamped to 1 or 2). Both axes start uncalibrated.
func NewOutput(cpr, numAxes int) *Output {
	return &Output{
		axis1:   newAxisState(cpr),
		axis2:   newAxisState(cpr),
		numAxes: clampNumAxes(numAxes),
	}
}

func clampNumAxes(n int) int {
	if n < 1 {
		return 1
	}
	if n > 2 {
		return 2
	}
	return n
}

// Initialize calibrates the axes at their starting angles (degrees). Axis 1
// is always calibrated; axis 2 only in dual-axis mode, so its angle is
// ignored otherwise. Calling Initialize again re-arms the axes at the new
// angles. Updates have no effect until this has been called.
func (o *Output) Initialize(angleAxis1, angleAxis2 float64) {
	o.axis1.calibrate(angleAxis1)
	if o.numAxes == 2 {
		o.axis2.calibrate(angleAxis2)
	}
}

// Update feeds one new absolute angle sample (degrees) per axis. The whole
// call is a no-op unless every active axis has been calibrated.
func (o *Output) Update(angleAxis1, angleAxis2 float64) {
	if !o.axis1.calibrated || (o.numAxes == 2 && !o.axis2.calibrated) {
		return
	}
	o.axis1.update(angleAxis1)
	if o.numAxes == 2 {
		o.axis2.update(angleAxis2)
	}
}

// ResetIndex forces the index correction check for one axis: if the current
// angle is at the reference position and the axis channels are both low,
// the index asserts and the position count re-zeroes. Lets a caller home an
// axis deterministically without a full update. Ignored for an inactive or
// invalid axis.
func (o *Output) ResetIndex(axis int, currentAngle float64) {
	switch axis {
	case 0:
		o.axis1.resetIndex(currentAngle)
	case 1:
		if o.numAxes == 2 {
			o.axis2.resetIndex(currentAngle)
		}
	}
}

// ChannelA returns the channel A state (0 or 1) for the given axis.
func (o *Output) ChannelA(axis int) int {
	if ax := o.axisFor(axis); ax != nil {
		return ax.channelA
	}
	return 0
}

// ChannelB returns the channel B state (0 or 1) for the given axis.
func (o *Output) ChannelB(axis int) int {
	if ax := o.axisFor(axis); ax != nil {
		return ax.channelB
	}
	return 0
}

// Index returns the index pulse state (0 or 1) for the given axis.
func (o *Output) Index(axis int) int {
	if ax := o.axisFor(axis); ax != nil {
		return ax.index
	}
	return 0
}

// CPR returns the configured resolution for the given axis.
func (o *Output) CPR(axis int) int {
	if ax := o.axisFor(axis); ax != nil {
		return ax.cpr
	}
	return 0
}

// PositionCount returns the axis position within the quadrature cycle, in
// [0, 4*CPR).
func (o *Output) PositionCount(axis int) int {
	if ax := o.axisFor(axis); ax != nil {
		return ax.positionCount
	}
	return 0
}

// SetCPR sets the resolution for both axes, clamped to [MinCPR, MaxCPR].
// Position counts reset to zero; the old counts are meaningless under the
// new mapping.
func (o *Output) SetCPR(cpr int) {
	o.axis1.setCPR(cpr)
	o.axis2.setCPR(cpr)
}

// SetCPRAxis sets the resolution for a single axis. The two axes may run at
// different resolutions.
func (o *Output) SetCPRAxis(axis, cpr int) {
	if ax := o.axisFor(axis); ax != nil {
		ax.setCPR(cpr)
	}
}

// Calibrated reports whether both axes have been calibrated.
func (o *Output) Calibrated() bool {
	return o.axis1.calibrated && o.axis2.calibrated
}

// CalibratedAxis reports whether the given axis has been calibrated.
func (o *Output) CalibratedAxis(axis int) bool {
	if ax := o.axisFor(axis); ax != nil {
		return ax.calibrated
	}
	return false
}

// SetNumAxes switches between single and dual axis operation (clamped to
// 1 or 2). Switching does not destroy the unused axis's state; the axis is
// simply excluded from updates and aggregated output.
func (o *Output) SetNumAxes(n int) {
	o.numAxes = clampNumAxes(n)
}

// NumAxes returns the active axis count.
func (o *Output) NumAxes() int {
	return o.numAxes
}

// Frame returns the combined signal state as a structured record.
func (o *Output) Frame() Frame {
	f := Frame{
		Axis1A: o.axis1.channelA,
		Axis1B: o.axis1.channelB,
		Index:  o.axis1.index,
	}
	if o.numAxes == 2 {
		f.Axis2A = o.axis2.channelA
		f.Axis2B = o.axis2.channelB
		f.Index |= o.axis2.index
	}
	return f
}

// CSV returns the combined signal state in textual form; see Frame.CSV.
func (o *Output) CSV() string {
	return o.Frame().CSV(o.numAxes)
}

func (o *Output) axisFor(axis int) *axisState {
	switch axis {
	case 0:
		return &o.axis1
	case 1:
		return &o.axis2
	default:
		return nil
	}
}
