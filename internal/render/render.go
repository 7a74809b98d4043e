// Package render draws radar frames into images.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/genradar/genradar/pkg/core"
)

var (
	bgColor    = color.RGBA{R: 0x0a, G: 0x0a, B: 0x1a, A: 0xff}
	discColor  = color.RGBA{R: 0x10, G: 0x28, B: 0x18, A: 0xff}
	rimColor   = color.RGBA{R: 0x3c, G: 0xc8, B: 0x64, A: 0xff}
	ringColor  = color.RGBA{R: 0x1e, G: 0x64, B: 0x32, A: 0xff}
	northColor = color.RGBA{R: 0xff, G: 0x40, B: 0x40, A: 0xff}
)

// Frame is one radar image. Points and Screen are parallel: Screen[i] is
// where Points[i] lands, as returned by a view's Points and ScreenPoints.
type Frame struct {
	Viewport core.Viewport
	Points   []core.Point
	Screen   []core.ScreenPoint
	// OffsetDegrees rotates the north tick; 0 is north-up.
	OffsetDegrees float64
	// Scale converts logical pixels to image pixels, like a display density. <= 0 means 1.
	Scale float64
}

// RenderFrame draws the radar disc, range rings, a north tick and every point.
func RenderFrame(f Frame) (*image.RGBA, error) {
	if err := f.Viewport.Validate(); err != nil {
		return nil, err
	}
	if len(f.Points) != len(f.Screen) {
		return nil, fmt.Errorf("frame has %d points but %d screen points", len(f.Points), len(f.Screen))
	}
	scale := f.Scale
	if scale <= 0 {
		scale = 1
	}

	width := int(math.Ceil(float64(f.Viewport.Width) * scale))
	height := int(math.Ceil(float64(f.Viewport.Height) * scale))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, bgColor)
		}
	}

	vcx, vcy := f.Viewport.Center()
	cx, cy := float64(vcx)*scale, float64(vcy)*scale
	radius := float64(f.Viewport.Radius()) * scale

	fillCircle(img, cx, cy, radius, discColor)
	for _, frac := range []float64{1.0 / 3, 2.0 / 3} {
		strokeCircle(img, cx, cy, radius*frac, ringColor)
	}
	strokeCircle(img, cx, cy, radius-0.5, rimColor)

	// north sits at -offset on screen
	theta := -f.OffsetDegrees * math.Pi / 180
	nx, ny := cx+(radius-3*scale)*math.Sin(theta), cy-(radius-3*scale)*math.Cos(theta)
	fillCircle(img, nx, ny, 2*scale, northColor)

	for i, sp := range f.Screen {
		p := f.Points[i]
		c := p.Color()
		if !sp.Visible || c.A == 0 {
			continue
		}
		r := math.Max(float64(p.Radius())*scale, 1)
		fillCircle(img, float64(sp.X)*scale, float64(sp.Y)*scale, r, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	}

	return img, nil
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// fillCircle draws a filled circle on the image.
func fillCircle(img *image.RGBA, cx, cy, radius float64, col color.RGBA) {
	plot(img, cx, cy, radius, col, func(d2 float64) bool { return d2 <= radius*radius })
}

// strokeCircle draws a one pixel ring.
func strokeCircle(img *image.RGBA, cx, cy, radius float64, col color.RGBA) {
	inner := math.Max(radius-1, 0)
	plot(img, cx, cy, radius, col, func(d2 float64) bool {
		return d2 <= radius*radius && d2 >= inner*inner
	})
}

func plot(img *image.RGBA, cx, cy, radius float64, col color.RGBA, inside func(d2 float64) bool) {
	bounds := img.Bounds()
	minX := int(math.Floor(cx - radius))
	maxX := int(math.Ceil(cx + radius))
	minY := int(math.Floor(cy - radius))
	maxY := int(math.Ceil(cy + radius))

	for y := minY; y <= maxY; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		dy := float64(y) + 0.5 - cy
		for x := minX; x <= maxX; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			dx := float64(x) + 0.5 - cx
			if inside(dx*dx + dy*dy) {
				img.SetRGBA(x, y, col)
			}
		}
	}
}
