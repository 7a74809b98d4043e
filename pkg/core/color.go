// pkg/core/color.go
package core

import "fmt"

// Color is a plain RGBA value with 8 bits per channel.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Named colors, matching the ARGB constants of the Android platform.
var (
	Transparent = Color{}
	Black       = Color{A: 0xff}
	White       = Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Red         = Color{R: 0xff, A: 0xff}
	Green       = Color{G: 0xff, A: 0xff}
	Blue        = Color{B: 0xff, A: 0xff}
)

// ColorFromARGB unpacks a 0xAARRGGBB value.
func ColorFromARGB(argb uint32) Color {
	return Color{
		A: uint8(argb >> 24),
		R: uint8(argb >> 16),
		G: uint8(argb >> 8),
		B: uint8(argb),
	}
}

// ARGB packs the color as 0xAARRGGBB.
func (c Color) ARGB() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func (c Color) String() string {
	return fmt.Sprintf("#%08x", c.ARGB())
}
