package geometry

import "github.com/Carmen-Shannon/oxy-draw/common"

// LinesBuilderOption configures the data of a line list before it is uploaded.
type LinesBuilderOption func(*linesSource)

// WithLineColors is an option builder that sets one sRGB color per vertex.
//
// Parameters:
//   - colors: the vertex colors, as many as there are positions
//
// Returns:
//   - LinesBuilderOption: a function that applies the colors option
func WithLineColors(colors []common.Srgba) LinesBuilderOption {
	return func(s *linesSource) {
		s.colors = colors
	}
}

// WithLineIndices is an option builder that draws the positions through an index buffer,
// two indices per segment.
func WithLineIndices(indices []uint32) LinesBuilderOption {
	return func(s *linesSource) {
		s.indices = indices
	}
}

// WithLinesLabel is an option builder that sets the label prefix of the GPU buffers.
func WithLinesLabel(label string) LinesBuilderOption {
	return func(s *linesSource) {
		s.label = label
	}
}
