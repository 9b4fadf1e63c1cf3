package playback

import "fmt"

type Point struct {
	X, Y float64
}

type Segment struct {
	A, B Point
}

// Viewport is the camera window in world coordinates.
type Viewport struct {
	XMin, XMax float64
	YMin, YMax float64
}

func (v Viewport) Width() float64  { return v.XMax - v.XMin }
func (v Viewport) Height() float64 { return v.YMax - v.YMin }

// Frame is the render state for one display tick: rigid-body placement of
// the four car sub-parts, the tracking camera window, the braking flag and
// the strip-chart pointer. A frame has no identity beyond the tick that
// produced it.
type Frame struct {
	Body        Segment
	FrontStrut  Segment
	RearStrut   Segment
	FrontWheel  Point
	RearWheel   Point
	WheelRadius float64

	Camera  Viewport
	Braking bool

	// Pointer is the chart pointer position: (time [s], pitch [deg]).
	Pointer Point

	Vehicle  string
	Time     float64
	SpeedKPH float64
	PitchDeg float64

	// Empty marks the neutral frame produced when no rows are loaded.
	Empty bool
	// Done is set once the stop overrun policy has exhausted the series.
	Done bool
}

// Summary returns the info-box text shown next to the animation.
func (f Frame) Summary() string {
	if f.Empty {
		return ""
	}
	return fmt.Sprintf("Model: %s\nTime: %.2fs\nSpeed: %.1f km/h\nPitch: %.2f deg",
		f.Vehicle, f.Time, f.SpeedKPH, f.PitchDeg)
}
