package geometry

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/camera"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allAttributeSets() []shader.FragmentAttributes {
	out := make([]shader.FragmentAttributes, 0, 16)
	for bits := 0; bits < 16; bits++ {
		out = append(out, shader.FragmentAttributes{
			Normal:   bits&1 != 0,
			Tangents: bits&2 != 0,
			UV:       bits&4 != 0,
			Color:    bits&8 != 0,
		})
	}
	return out
}

func triangle() *CpuMesh {
	return &CpuMesh{
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2},
	}
}

func assertVec3Near(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], 1e-5, "component %d of %v vs %v", i, want, got)
	}
}

func TestTransformationComposition(t *testing.T) {
	ctx := gputest.NewContext()
	l, err := NewLines(ctx, []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}})
	require.NoError(t, err)

	base := mgl32.Translate3D(1, 2, 3)
	l.SetTransformation(base)
	l.Animate(4)
	assert.Equal(t, base, l.CurrentTransformation())

	animation := func(time float32) mgl32.Mat4 { return mgl32.HomogRotate3DY(time) }
	l.SetAnimation(animation)
	l.Animate(0.5)
	assert.Equal(t, base.Mul4(animation(0.5)), l.CurrentTransformation())

	l.Animate(0.5)
	assert.Equal(t, base.Mul4(animation(0.5)), l.CurrentTransformation())

	moved := mgl32.Scale3D(2, 2, 2)
	l.SetTransformation(moved)
	assert.Equal(t, moved.Mul4(animation(0.5)), l.CurrentTransformation())

	l.SetAnimation(nil)
	assert.Equal(t, moved, l.CurrentTransformation())
}

func TestAABBFollowsTransformation(t *testing.T) {
	ctx := gputest.NewContext()
	m, err := NewMesh(ctx, NewCubeMesh())
	require.NoError(t, err)

	tests := []struct {
		name     string
		t        mgl32.Mat4
		min, max mgl32.Vec3
	}{
		{"identity", mgl32.Ident4(), mgl32.Vec3{-0.5, -0.5, -0.5}, mgl32.Vec3{0.5, 0.5, 0.5}},
		{"translation", mgl32.Translate3D(1, 2, 3), mgl32.Vec3{0.5, 1.5, 2.5}, mgl32.Vec3{1.5, 2.5, 3.5}},
		{"non-uniform scale", mgl32.Scale3D(2, 1, 4), mgl32.Vec3{-1, -0.5, -2}, mgl32.Vec3{1, 0.5, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.SetTransformation(tt.t)
			box := m.AABB()
			assertVec3Near(t, tt.min, box.Min())
			assertVec3Near(t, tt.max, box.Max())
		})
	}

	m.SetTransformation(mgl32.Ident4())
	m.SetAnimation(func(float32) mgl32.Mat4 { return mgl32.Translate3D(0, 10, 0) })
	m.Animate(1)
	assertVec3Near(t, mgl32.Vec3{-0.5, 9.5, -0.5}, m.AABB().Min())
}

func TestIDInjective(t *testing.T) {
	ctx := gputest.NewContext()
	full := NewCubeMesh()
	full.Colors = make([]common.Srgba, len(full.Positions))

	lines, err := NewLines(ctx, []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}}, WithLineColors([]common.Srgba{common.Red, common.Blue}))
	require.NoError(t, err)
	mesh, err := NewMesh(ctx, full)
	require.NoError(t, err)
	instanced, err := NewInstancedMesh(ctx, full, Instances{Transformations: []mgl32.Mat4{mgl32.Ident4()}})
	require.NoError(t, err)
	quad, err := NewScreenQuad(ctx)
	require.NoError(t, err)

	skinnedData := NewCubeMesh()
	skinnedData.Joints = make([][4]uint32, len(skinnedData.Positions))
	skinnedData.Weights = make([]mgl32.Vec4, len(skinnedData.Positions))
	skinned, err := NewSkinnedMesh(ctx, skinnedData)
	require.NoError(t, err)

	seen := make(map[ID]string)
	for _, g := range []Geometry{lines, mesh, instanced, quad, skinned} {
		for _, attrs := range allAttributeSets() {
			id := g.ID(attrs)
			prev, dup := seen[id]
			require.False(t, dup, "%s collides with %s", id, prev)
			seen[id] = id.String()
		}
	}
	assert.Len(t, seen, 5*16)

	require.NoError(t, instanced.SetInstances(Instances{
		Transformations: []mgl32.Mat4{mgl32.Ident4()},
		Colors:          []common.Srgba{common.Green},
	}))
	_, dup := seen[instanced.ID(shader.FragmentAttributesNone)]
	assert.False(t, dup)
}

func TestIDDeterminesSource(t *testing.T) {
	ctx := gputest.NewContext()
	plain, err := NewLines(ctx, []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}})
	require.NoError(t, err)
	colored, err := NewLines(ctx, []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}},
		WithLineColors([]common.Srgba{common.Red, common.Red, common.Blue, common.Blue}))
	require.NoError(t, err)

	withColor := shader.FragmentAttributes{Color: true}
	assert.Equal(t, plain.ID(shader.FragmentAttributesNone), colored.ID(shader.FragmentAttributesNone))
	assert.Equal(t, plain.VertexShaderSource(shader.FragmentAttributesNone), colored.VertexShaderSource(shader.FragmentAttributesNone))

	assert.NotEqual(t, plain.ID(withColor), colored.ID(withColor))
	assert.NotContains(t, plain.VertexShaderSource(withColor), shader.DefineLine(shader.DefineVertexColors))
	assert.Contains(t, colored.VertexShaderSource(withColor), shader.DefineLine(shader.DefineVertexColors))
}

func TestNewLinesValidation(t *testing.T) {
	ctx := gputest.NewContext()
	three := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}

	_, err := NewLines(ctx, three)
	assert.ErrorIs(t, err, ErrOddLineVertexCount)

	_, err = NewLines(ctx, nil)
	assert.ErrorIs(t, err, ErrNoPositions)

	_, err = NewLines(ctx, three, WithLineIndices([]uint32{0, 1, 1, 2}))
	assert.NoError(t, err)

	_, err = NewLines(ctx, three, WithLineIndices([]uint32{}))
	assert.ErrorIs(t, err, ErrInvalidIndices)

	_, err = NewLines(ctx, three, WithLineIndices([]uint32{0, 3}))
	assert.ErrorIs(t, err, ErrInvalidIndices)

	_, err = NewLines(ctx, three[:2], WithLineColors([]common.Srgba{common.Red}))
	assert.ErrorIs(t, err, ErrAttributeLength)
}

func TestCpuMeshValidate(t *testing.T) {
	tests := []struct {
		name string
		mesh CpuMesh
		want error
	}{
		{"valid", *triangle(), nil},
		{"no positions", CpuMesh{}, ErrNoPositions},
		{"partial triangle", CpuMesh{Positions: triangle().Positions, Indices: []uint32{0, 1}}, ErrInvalidIndices},
		{"empty indices", CpuMesh{Positions: triangle().Positions, Indices: []uint32{}}, ErrInvalidIndices},
		{"index out of range", CpuMesh{Positions: triangle().Positions, Indices: []uint32{0, 1, 3}}, ErrInvalidIndices},
		{"unindexed remainder", CpuMesh{Positions: triangle().Positions[:2]}, ErrInvalidIndices},
		{"short normals", CpuMesh{Positions: triangle().Positions, Normals: []mgl32.Vec3{{0, 0, 1}}}, ErrAttributeLength},
		{"joints without weights", CpuMesh{Positions: triangle().Positions, Joints: make([][4]uint32, 3)}, ErrAttributeLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mesh.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestComputeNormals(t *testing.T) {
	m := triangle()
	m.ComputeNormals()
	require.Len(t, m.Normals, 3)
	for _, n := range m.Normals {
		assertVec3Near(t, mgl32.Vec3{0, 0, 1}, n)
	}
}

func TestLinesDraw(t *testing.T) {
	ctx := gputest.NewContext()
	l, err := NewLines(ctx, []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}},
		WithLineIndices([]uint32{0, 1, 1, 2}),
		WithLineColors([]common.Srgba{common.Red, common.Green, common.Blue}))
	require.NoError(t, err)
	plane := common.NewClipPlane(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 1})
	l.SetClipPlane(&plane)

	attrs := shader.FragmentAttributes{Color: true}
	processed, err := shader.NewPreProcessor().Process(l.VertexShaderSource(attrs) + "\n" + shader.ColorMaterialSource)
	require.NoError(t, err)
	program, err := ctx.CompileProgram(l.ID(attrs).String(), processed)
	require.NoError(t, err)
	require.NoError(t, program.UseUniform("surfaceColor", mgl32.Vec4{1, 1, 1, 1}))
	require.NoError(t, program.UseUniform("toneMappingType", uint32(0)))
	require.NoError(t, program.UseUniform("colorMappingType", uint32(0)))

	target, err := ctx.NewRenderTarget(8, 8)
	require.NoError(t, err)
	viewer := camera.NewCamera(camera.WithViewport(target.Viewport()))
	require.NoError(t, ctx.BeginFrame(target, common.ClearNone()))
	require.NoError(t, l.Draw(viewer, program, gpu.DefaultRenderStates(), attrs))
	require.NoError(t, ctx.EndFrame())

	draws := ctx.Draws()
	require.Len(t, draws, 1)
	assert.True(t, draws[0].Indexed)
	assert.Equal(t, uint32(4), draws[0].Count)
	assert.Equal(t, gpu.Lines, draws[0].VertexType)

	clip, ok := program.(*gputest.Program).Uniform("clipPlane")
	require.True(t, ok)
	want, err := gpu.EncodeUniform(mgl32.Vec4{0, 0, 1, -5}, "vec4<f32>")
	require.NoError(t, err)
	assert.Equal(t, want, clip)
}

func TestInstancedMesh(t *testing.T) {
	ctx := gputest.NewContext()
	m, err := NewInstancedMesh(ctx, NewCubeMesh(), Instances{
		Transformations: []mgl32.Mat4{mgl32.Translate3D(-2, 0, 0), mgl32.Translate3D(2, 0, 0)},
	})
	require.NoError(t, err)
	assert.Equal(t, uint32(2), m.InstanceCount())
	assertVec3Near(t, mgl32.Vec3{-2.5, -0.5, -0.5}, m.AABB().Min())
	assertVec3Near(t, mgl32.Vec3{2.5, 0.5, 0.5}, m.AABB().Max())

	err = m.SetInstances(Instances{Transformations: []mgl32.Mat4{mgl32.Ident4()}, Colors: []common.Srgba{common.Red, common.Red}})
	assert.ErrorIs(t, err, ErrAttributeLength)
	assert.Equal(t, uint32(2), m.InstanceCount())

	attrs := shader.FragmentAttributes{Normal: true}
	processed, err := shader.NewPreProcessor().Process(m.VertexShaderSource(attrs) + "\n" + shader.ColorMaterialSource)
	require.NoError(t, err)
	program, err := ctx.CompileProgram("instanced", processed)
	require.NoError(t, err)
	require.NoError(t, program.UseUniform("surfaceColor", mgl32.Vec4{1, 1, 1, 1}))
	require.NoError(t, program.UseUniform("toneMappingType", uint32(0)))
	require.NoError(t, program.UseUniform("colorMappingType", uint32(0)))

	target, err := ctx.NewRenderTarget(8, 8)
	require.NoError(t, err)
	require.NoError(t, ctx.BeginFrame(target, common.ClearNone()))
	require.NoError(t, m.Draw(camera.NewCamera(), program, gpu.DefaultRenderStates(), attrs))
	require.NoError(t, ctx.EndFrame())

	draws := ctx.Draws()
	require.Len(t, draws, 1)
	assert.Equal(t, uint32(2), draws[0].Instances)
	assert.Equal(t, uint32(36), draws[0].Count)
}

func TestSkinnedMeshJoints(t *testing.T) {
	ctx := gputest.NewContext()
	data := NewCubeMesh()
	data.Joints = make([][4]uint32, len(data.Positions))
	data.Weights = make([]mgl32.Vec4, len(data.Positions))
	m, err := NewSkinnedMesh(ctx, data)
	require.NoError(t, err)

	assert.ErrorIs(t, m.SetJointTransforms(make([]mgl32.Mat4, MaxJoints+1)), ErrTooManyJoints)

	m.SetJointAnimation(func(time float32) []mgl32.Mat4 {
		return []mgl32.Mat4{mgl32.Translate3D(time, 0, 0)}
	})
	m.Animate(3)
	joints := m.JointTransforms()
	require.Len(t, joints, MaxJoints)
	assert.Equal(t, mgl32.Translate3D(3, 0, 0), joints[0])
	assert.Equal(t, mgl32.Ident4(), joints[1])

	data.Joints[0] = [4]uint32{MaxJoints, 0, 0, 0}
	_, err = NewSkinnedMesh(ctx, data)
	assert.ErrorIs(t, err, ErrTooManyJoints)
}

func TestReleaseFreesBuffers(t *testing.T) {
	ctx := gputest.NewContext()
	m, err := NewMesh(ctx, NewCubeMesh())
	require.NoError(t, err)
	assert.Equal(t, 5, ctx.LiveResources())
	m.Release()
	assert.Equal(t, 0, ctx.LiveResources())
	m.Release()
	assert.Equal(t, 0, ctx.LiveResources())
}

func TestLinesReleaseTwice(t *testing.T) {
	ctx := gputest.NewContext()
	l, err := NewLines(ctx, []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}},
		WithLineColors([]common.Srgba{common.Red, common.Blue}),
		WithLineIndices([]uint32{0, 1}))
	require.NoError(t, err)
	assert.Equal(t, 3, ctx.LiveResources())

	l.Release()
	assert.Equal(t, 0, ctx.LiveResources())
	l.Release()
	assert.Equal(t, 0, ctx.LiveResources())
}
