package sim

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Profile is a scripted test scenario loaded from YAML: simulator settings
// plus a piecewise trajectory per axis. Profiles let a motion sequence be
// checked into the repo and replayed exactly, e.g.:
//
//	cpr: 4096
//	axes: 1
//	hz: 20
//	axis1:
//	  start: 45
//	  segments:
//	    - rate: 1.0
//	      duration: 30s
//	    - amplitude: 10
//	      period: 4s
//	      duration: 20s
//	    - rate: -2.0
type Profile struct {
	CPR      int         `yaml:"cpr"`
	Axes     int         `yaml:"axes"`
	Hz       int         `yaml:"hz"`
	Quantize bool        `yaml:"quantize"`
	Axis1    AxisProfile `yaml:"axis1"`
	Axis2    AxisProfile `yaml:"axis2"`
}

// AxisProfile is one axis's scripted motion: a starting angle and a list of
// segments played in order. The final segment (or any segment without a
// duration) runs until the simulation stops.
type AxisProfile struct {
	Start    float64       `yaml:"start"`
	Segments []SegmentSpec `yaml:"segments"`
}

// SegmentSpec is one piece of scripted motion. A segment either rotates
// steadily (rate, degrees per second; zero holds position) or oscillates
// around its entry angle (amplitude in degrees with a period). Durations
// and periods use Go duration syntax ("30s", "1m").
type SegmentSpec struct {
	Rate      float64 `yaml:"rate"`
	Amplitude float64 `yaml:"amplitude"`
	Period    string  `yaml:"period"`
	Duration  string  `yaml:"duration"`
}

// LoadProfile loads a scenario profile from a YAML file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile YAML: %w", err)
	}
	return &p, nil
}

// ToConfig builds a runnable Config from the profile.
func (p *Profile) ToConfig() (Config, error) {
	axis1, err := p.Axis1.trajectory()
	if err != nil {
		return Config{}, fmt.Errorf("axis1: %w", err)
	}
	axis2, err := p.Axis2.trajectory()
	if err != nil {
		return Config{}, fmt.Errorf("axis2: %w", err)
	}
	return Config{
		CPR:      p.CPR,
		Axes:     p.Axes,
		Hz:       p.Hz,
		Axis1:    axis1,
		Axis2:    axis2,
		Quantize: p.Quantize,
	}, nil
}

func (a *AxisProfile) trajectory() (Trajectory, error) {
	if len(a.Segments) == 0 {
		return Hold{Angle: a.Start}, nil
	}

	segs := make([]builtSegment, len(a.Segments))
	start := 0.0
	entry := a.Start
	for i, spec := range a.Segments {
		seg := builtSegment{start: start, entry: entry, rate: spec.Rate}

		if spec.Amplitude != 0 {
			if spec.Period == "" {
				return nil, fmt.Errorf("segment %d: amplitude requires a period", i+1)
			}
			period, err := time.ParseDuration(spec.Period)
			if err != nil {
				return nil, fmt.Errorf("segment %d: period: %w", i+1, err)
			}
			if period <= 0 {
				return nil, fmt.Errorf("segment %d: period must be positive", i+1)
			}
			seg.amplitude = spec.Amplitude
			seg.period = period.Seconds()
		}

		if spec.Duration != "" {
			dur, err := time.ParseDuration(spec.Duration)
			if err != nil {
				return nil, fmt.Errorf("segment %d: duration: %w", i+1, err)
			}
			if dur <= 0 {
				return nil, fmt.Errorf("segment %d: duration must be positive", i+1)
			}
			seg.duration = dur.Seconds()
		} else if i != len(a.Segments)-1 {
			return nil, fmt.Errorf("segment %d: only the last segment may omit duration", i+1)
		}

		segs[i] = seg
		start += seg.duration
		// The next segment picks up where this one left off, keeping the
		// angle continuous across the boundary.
		entry = seg.valueAt(seg.duration)
	}

	return Segments{segs: segs}, nil
}

// Segments is a piecewise trajectory built from a profile. Segment entry
// angles are chained so the motion is continuous.
type Segments struct {
	segs []builtSegment
}

type builtSegment struct {
	start     float64 // seconds since calibration
	duration  float64 // 0 = runs forever
	entry     float64 // angle at segment start, before wrapping
	rate      float64
	amplitude float64
	period    float64
}

func (s Segments) AngleAt(t float64) float64 {
	for i, seg := range s.segs {
		last := i == len(s.segs)-1
		if last || seg.duration == 0 || t < seg.start+seg.duration {
			return wrapAngle(seg.valueAt(t - seg.start))
		}
	}
	return 0
}

func (seg builtSegment) valueAt(local float64) float64 {
	if local < 0 {
		local = 0
	}
	if seg.period > 0 {
		return seg.entry + seg.amplitude*math.Sin(2*math.Pi*local/seg.period)
	}
	return seg.entry + seg.rate*local
}
