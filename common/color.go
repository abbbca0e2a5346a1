package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Srgba is an 8-bit per channel color in the sRGB color space with linear alpha.
type Srgba struct {
	R, G, B, A uint8
}

var (
	// Black is opaque black.
	Black = Srgba{0, 0, 0, 255}
	// White is opaque white.
	White = Srgba{255, 255, 255, 255}
	// Red is opaque red.
	Red = Srgba{255, 0, 0, 255}
	// Green is opaque green.
	Green = Srgba{0, 255, 0, 255}
	// Blue is opaque blue.
	Blue = Srgba{0, 0, 255, 255}
)

// NewSrgbaOpaque returns a fully opaque color.
func NewSrgbaOpaque(r, g, b uint8) Srgba {
	return Srgba{r, g, b, 255}
}

// ToLinear converts the color to linear RGB in [0, 1] with alpha unchanged.
// This is the representation every color uniform and vertex color attribute uses.
//
// Returns:
//   - mgl32.Vec4: linear (r, g, b, a)
func (c Srgba) ToLinear() mgl32.Vec4 {
	return mgl32.Vec4{
		srgbToLinear(c.R),
		srgbToLinear(c.G),
		srgbToLinear(c.B),
		float32(c.A) / 255,
	}
}

// IsTransparent reports whether the alpha channel is below fully opaque.
func (c Srgba) IsTransparent() bool {
	return c.A < 255
}

func srgbToLinear(v uint8) float32 {
	c := float32(v) / 255
	if c <= 0.04045 {
		return c / 12.92
	}
	return math32.Pow((c+0.055)/1.055, 2.4)
}

// SrgbaSliceToLinear converts a slice of colors with ToLinear.
func SrgbaSliceToLinear(colors []Srgba) []mgl32.Vec4 {
	out := make([]mgl32.Vec4, len(colors))
	for i, c := range colors {
		out[i] = c.ToLinear()
	}
	return out
}
