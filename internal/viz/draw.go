package viz

import (
	"github.com/san-kum/rideview/internal/playback"
)

// scene maps world coordinates onto the canvas sub-pixel grid through a
// camera viewport, y axis pointing up.
type scene struct {
	canvas *Canvas
	vp     playback.Viewport
	w, h   int
}

func newScene(c *Canvas, vp playback.Viewport) scene {
	return scene{canvas: c, vp: vp, w: c.PixelWidth(), h: c.PixelHeight()}
}

func (s scene) pixel(p playback.Point) (int, int) {
	px := int((p.X - s.vp.XMin) / s.vp.Width() * float64(s.w-1))
	py := int((p.Y - s.vp.YMin) / s.vp.Height() * float64(s.h-1))
	return px, s.h - 1 - py
}

func (s scene) segment(seg playback.Segment) {
	x0, y0 := s.pixel(seg.A)
	x1, y1 := s.pixel(seg.B)
	s.canvas.Line(x0, y0, x1, y1)
}

// Draw renders one playback frame onto the canvas: ground line, body,
// struts and wheels. An empty frame leaves the canvas blank.
func Draw(c *Canvas, f playback.Frame) {
	c.Clear()
	if f.Empty {
		return
	}
	s := newScene(c, f.Camera)

	if f.Camera.YMin <= 0 && f.Camera.YMax >= 0 {
		_, gy := s.pixel(playback.Point{X: f.Camera.XMin, Y: 0})
		c.Line(0, gy, s.w-1, gy)
	}

	s.segment(f.Body)
	s.segment(f.FrontStrut)
	s.segment(f.RearStrut)

	// Radius in horizontal sub-pixels; vertical distortion from the cell
	// aspect is accepted, terminals are not square anyway.
	r := int(f.WheelRadius / f.Camera.Width() * float64(s.w-1))
	for _, w := range []playback.Point{f.FrontWheel, f.RearWheel} {
		cx, cy := s.pixel(w)
		c.Circle(cx, cy, r)
	}
}
