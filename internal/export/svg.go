package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/rideview/internal/viz"
)

// SVG renders a braille canvas as an SVG dot grid, one circle per lit
// sub-pixel. scale is the edge length of one sub-pixel in SVG units.
func SVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	w := float64(canvas.PixelWidth()) * scale
	h := float64(canvas.PixelHeight()) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, w, h, w, h))

	dotRadius := scale * 0.4
	for y := 0; y < canvas.PixelHeight(); y++ {
		for x := 0; x < canvas.PixelWidth(); x++ {
			if !canvas.Lit(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// WriteSVG writes the canvas to path as SVG.
func WriteSVG(path string, canvas *viz.Canvas, scale float64) error {
	return os.WriteFile(path, []byte(SVG(canvas, scale)), 0644)
}
