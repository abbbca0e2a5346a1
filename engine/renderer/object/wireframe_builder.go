package object

import "github.com/Carmen-Shannon/oxy-draw/common"

type wireframeConfig struct {
	color     common.Srgba
	lineWidth float32
}

// WireframeBuilderOption is a functional option applied to a wireframe during construction via NewWireframe.
type WireframeBuilderOption func(*wireframeConfig)

// WithColor sets the line color.
//
// Parameters:
//   - color: the sRGB line color
//
// Returns:
//   - WireframeBuilderOption: a function that applies the color option to a wireframe
func WithColor(color common.Srgba) WireframeBuilderOption {
	return func(c *wireframeConfig) {
		c.color = color
	}
}

// WithLineWidth sets the line width in pixels.
//
// Parameters:
//   - width: the line width
//
// Returns:
//   - WireframeBuilderOption: a function that applies the line width option to a wireframe
func WithLineWidth(width float32) WireframeBuilderOption {
	return func(c *wireframeConfig) {
		c.lineWidth = width
	}
}
