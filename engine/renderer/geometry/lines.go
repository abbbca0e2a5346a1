package geometry

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/camera"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// Lines is a line list: every pair of vertices, or every pair of indices when indices are given,
// is one segment. Lines can only supply per-vertex colors to a fragment stage.
type Lines struct {
	transformState

	positions gpu.VertexBuffer
	colors    gpu.VertexBuffer
	indices   gpu.ElementBuffer
}

// linesSource is the CPU data gathered by the builder options.
type linesSource struct {
	label   string
	colors  []common.Srgba
	indices []uint32
}

// NewLines validates the line data and uploads it.
//
// Parameters:
//   - ctx: the GPU context the buffers are created in
//   - positions: the vertex positions
//   - opts: optional colors and indices
//
// Returns:
//   - *Lines: the uploaded line list with an identity transformation
//   - error: ErrOddLineVertexCount, ErrInvalidIndices, ErrAttributeLength, or an allocation error
func NewLines(ctx gpu.Context, positions []mgl32.Vec3, opts ...LinesBuilderOption) (*Lines, error) {
	src := &linesSource{label: "lines"}
	for _, opt := range opts {
		opt(src)
	}
	if err := src.validate(positions); err != nil {
		return nil, err
	}

	l := &Lines{transformState: newTransformState(common.ComputeAABB(positions))}
	var err error
	if l.positions, err = gpu.NewVec3Buffer(ctx, src.label+"_positions", positions); err != nil {
		return nil, err
	}
	if len(src.colors) > 0 {
		if l.colors, err = gpu.NewVec4Buffer(ctx, src.label+"_colors", common.SrgbaSliceToLinear(src.colors)); err != nil {
			l.Release()
			return nil, err
		}
	}
	if src.indices != nil {
		if l.indices, err = ctx.NewElementBuffer(src.label+"_indices", src.indices); err != nil {
			l.Release()
			return nil, err
		}
	}
	return l, nil
}

func (s *linesSource) validate(positions []mgl32.Vec3) error {
	n := len(positions)
	if n == 0 {
		return ErrNoPositions
	}
	if s.indices == nil {
		if n%2 != 0 {
			return fmt.Errorf("%w: got %d", ErrOddLineVertexCount, n)
		}
	} else {
		if len(s.indices) == 0 || len(s.indices)%2 != 0 {
			return fmt.Errorf("%w: %d indices do not form segments", ErrInvalidIndices, len(s.indices))
		}
		for i, idx := range s.indices {
			if int(idx) >= n {
				return fmt.Errorf("%w: index %d at %d is out of range for %d vertices", ErrInvalidIndices, idx, i, n)
			}
		}
	}
	if len(s.colors) != 0 && len(s.colors) != n {
		return fmt.Errorf("%w: %d colors for %d vertices", ErrAttributeLength, len(s.colors), n)
	}
	return nil
}

// HasColors reports whether the lines carry per-vertex colors.
func (l *Lines) HasColors() bool {
	return l.colors != nil
}

// VertexCount returns the number of vertices in the position buffer.
func (l *Lines) VertexCount() uint32 {
	return l.positions.Count()
}

func (l *Lines) provides() shader.FragmentAttributes {
	return shader.FragmentAttributes{Color: l.colors != nil}
}

func (l *Lines) VertexShaderSource(required shader.FragmentAttributes) string {
	src := shader.LinesSource
	if required.Color && l.colors != nil {
		src = shader.DefineLine(shader.DefineVertexColors) + src
	}
	return src
}

func (l *Lines) VertexType() gpu.VertexType {
	return gpu.Lines
}

func (l *Lines) ID(required shader.FragmentAttributes) ID {
	return ID{Kind: KindLines, Required: required, Provided: required.Intersect(l.provides())}
}

func (l *Lines) Draw(viewer camera.Viewer, program gpu.Program, states gpu.RenderStates, attributes shader.FragmentAttributes) error {
	if _, err := l.useTransformUniforms(program, viewer.ViewProjection()); err != nil {
		return err
	}
	if err := program.UseVertexAttribute("position", l.positions); err != nil {
		return err
	}
	if attributes.Color && l.colors != nil {
		if err := program.UseVertexAttribute("color", l.colors); err != nil {
			return err
		}
	}
	if l.indices != nil {
		return program.DrawElements(states, viewer.Viewport(), gpu.Lines, l.indices)
	}
	return program.DrawArrays(states, viewer.Viewport(), gpu.Lines, l.positions.Count())
}

// Release releases the buffers. Calling it again is a no-op.
func (l *Lines) Release() {
	if l.positions != nil {
		l.positions.Release()
		l.positions = nil
	}
	if l.colors != nil {
		l.colors.Release()
		l.colors = nil
	}
	if l.indices != nil {
		l.indices.Release()
		l.indices = nil
	}
}
