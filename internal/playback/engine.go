package playback

import (
	"fmt"
	"math"

	"github.com/san-kum/rideview/internal/telemetry"
	"github.com/san-kum/rideview/internal/vehicle"
)

// OverrunPolicy selects what happens when the frame counter runs past the
// last source row.
type OverrunPolicy int

const (
	// Hold keeps returning the final row, matching the original viewer.
	Hold OverrunPolicy = iota
	// Loop restarts playback from row 0.
	Loop
	// Stop returns the final row with Frame.Done set so the host loop can
	// stop ticking.
	Stop
)

func ParsePolicy(s string) (OverrunPolicy, error) {
	switch s {
	case "", "hold":
		return Hold, nil
	case "loop":
		return Loop, nil
	case "stop":
		return Stop, nil
	}
	return Hold, fmt.Errorf("playback: unknown overrun policy %q", s)
}

// Loader resolves a vehicle name to its telemetry series. Injected so the
// engine stays independent of the on-disk layout.
type Loader func(vehicle string) (*telemetry.Series, error)

// Options are the fixed per-session constants of the engine. Display and
// simulation timing are set at construction and never change while a
// session runs.
type Options struct {
	DisplayPeriod    float64 // seconds per display frame, e.g. 1/30
	SimStep          float64 // seconds between source rows, e.g. 0.001
	GroundOffset     float64 // vertical clearance added to body and wheels [m]
	WheelRadius      float64 // [m]
	CameraHalfWidth  float64 // horizontal half extent of the viewport [m]
	CameraYMin       float64
	CameraYMax       float64
	BrakingThreshold float64 // accel below this counts as braking [m/s^2]
	Policy           OverrunPolicy
}

// Engine maps a fixed-step simulation record onto a fixed-rate display
// loop. It owns all mutable playback state; Tick and SwitchVehicle must
// not be called concurrently.
type Engine struct {
	opts    Options
	stride  int
	reg     *vehicle.Registry
	load    Loader
	profile vehicle.Profile
	series  *telemetry.Series
	frame   int
	done    bool
}

// New validates the timing configuration and computes the stride: the
// number of source rows advanced per display frame,
// round(DisplayPeriod/SimStep). Rounding rather than truncating keeps the
// effective playback rate closest to real time (1/60 over 0.001 gives
// 16.67, played back as 17). A display rate faster than the source
// sampling would need a stride below 1 and is rejected.
func New(opts Options, reg *vehicle.Registry, load Loader) (*Engine, error) {
	if opts.DisplayPeriod <= 0 {
		return nil, fmt.Errorf("playback: display period must be positive, got %f", opts.DisplayPeriod)
	}
	if opts.SimStep <= 0 {
		return nil, fmt.Errorf("playback: simulation step must be positive, got %f", opts.SimStep)
	}
	stride := int(math.Round(opts.DisplayPeriod / opts.SimStep))
	if stride < 1 {
		return nil, fmt.Errorf("playback: display period %.4fs shorter than simulation step %.4fs", opts.DisplayPeriod, opts.SimStep)
	}
	return &Engine{opts: opts, stride: stride, reg: reg, load: load}, nil
}

func (e *Engine) Stride() int { return e.stride }

func (e *Engine) Vehicle() vehicle.Profile { return e.profile }

// Series returns the active series, nil before the first switch.
func (e *Engine) Series() *telemetry.Series { return e.series }

// Reset replaces the active series and rewinds the frame counter. Nothing
// from the previous session survives.
func (e *Engine) Reset(p vehicle.Profile, s *telemetry.Series) {
	e.profile = p
	e.series = s
	e.frame = 0
	e.done = false
}

// SwitchVehicle loads the named vehicle's record and, only on success,
// swaps it in and rewinds. On failure the active series and frame counter
// are untouched and the error is surfaced to the caller.
func (e *Engine) SwitchVehicle(name string) error {
	p, err := e.reg.Get(name)
	if err != nil {
		return err
	}
	s, err := e.load(name)
	if err != nil {
		return fmt.Errorf("switch to %s: %w", name, err)
	}
	e.Reset(p, s)
	return nil
}

// Tick produces the render state for the current frame and advances the
// frame counter (push-style fixed-rate loop: one Tick per display period).
func (e *Engine) Tick() Frame {
	if e.series == nil || e.series.Len() == 0 {
		return Frame{Empty: true}
	}

	last := e.series.Len() - 1
	idx := e.frame * e.stride
	if idx > last {
		switch e.opts.Policy {
		case Loop:
			e.frame = 0
			idx = 0
		case Stop:
			idx = last
			e.done = true
		default:
			idx = last
		}
	}

	f := e.render(idx)
	f.Done = e.done
	e.frame++
	return f
}

// render computes the rigid-body layout for one source row. Pitch rotates
// the body via independent vertical offsets at the axle attachment points,
// a small-angle approximation, not a full rotation.
func (e *Engine) render(idx int) Frame {
	row, err := e.series.Row(idx)
	if err != nil {
		return Frame{Empty: true}
	}
	accel, err := e.series.Acceleration(idx)
	if err != nil {
		return Frame{Empty: true}
	}

	l1 := e.profile.FrontOffset
	l2 := e.profile.RearOffset
	sin := math.Sin(row.Pitch)
	xFront := row.X + l1
	xRear := row.X - l2
	yFront := row.BodyHeight + l1*sin + e.opts.GroundOffset
	yRear := row.BodyHeight - l2*sin + e.opts.GroundOffset
	pitchDeg := row.Pitch * 180 / math.Pi

	return Frame{
		Body:        Segment{A: Point{xRear, yRear}, B: Point{xFront, yFront}},
		FrontStrut:  Segment{A: Point{xFront, row.FrontUnsprung}, B: Point{xFront, yFront}},
		RearStrut:   Segment{A: Point{xRear, row.RearUnsprung}, B: Point{xRear, yRear}},
		FrontWheel:  Point{xFront, row.FrontUnsprung + e.opts.GroundOffset},
		RearWheel:   Point{xRear, row.RearUnsprung + e.opts.GroundOffset},
		WheelRadius: e.opts.WheelRadius,
		Camera: Viewport{
			XMin: row.X - e.opts.CameraHalfWidth,
			XMax: row.X + e.opts.CameraHalfWidth,
			YMin: e.opts.CameraYMin,
			YMax: e.opts.CameraYMax,
		},
		// Row 0 has no defined acceleration and never counts as braking.
		Braking:  idx > 0 && accel < e.opts.BrakingThreshold,
		Pointer:  Point{row.Time, pitchDeg},
		Vehicle:  e.profile.Name,
		Time:     row.Time,
		SpeedKPH: row.Speed * 3.6,
		PitchDeg: pitchDeg,
	}
}
