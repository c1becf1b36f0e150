// Package quadsim simulates the quadrature-encoded position output of the
// S26-14 dual-axis inclinometer.
//
// Given a stream of absolute angle readings (degrees, one per axis), it
// produces the two-phase quadrature signal pair (channel A, channel B) plus
// a once-per-revolution index pulse, exactly as the encoder hardware would
// emit them over GPIO. It exists so that the downstream motion-control
// firmware and the quadrature decoder can be developed and tested without
// the physical PCB.
//
// # Installation
//
//	go install github.com/alexwhite-1/MDE4806-S26-14/cmd/quadsim@latest
//
// # Usage
//
// Create a configuration file (quadsim.json):
//
//	quadsim setup
//
// Stream simulated quadrature output as CSV:
//
//	quadsim run
//
// Watch the signals live as waveforms:
//
//	quadsim display
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/quadsim: CLI with setup, run and display commands
//   - pkg/quadrature: the angle-to-quadrature state machine
//   - pkg/sim: angle trajectory generation and the sample runner
package quadsim
