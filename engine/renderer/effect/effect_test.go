package effect

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/camera"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/geometry"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inputs struct {
	single *ColorTexture
	array  *ColorTexture
	depth  *DepthTexture
	target gpu.RenderTarget
}

func newInputs(t *testing.T, ctx *gputest.Context) inputs {
	t.Helper()
	source, err := ctx.NewRenderTarget(4, 4)
	require.NoError(t, err)
	single, err := NewColorTexture(source.ColorTexture())
	require.NoError(t, err)
	depth, err := NewDepthTexture(source.DepthTexture())
	require.NoError(t, err)

	layered, err := ctx.NewTexture2D(gpu.TextureDescriptor{Label: "accumulation", Width: 4, Height: 4, Layers: 2, Format: gpu.TextureFormatRGBA16Float}, nil)
	require.NoError(t, err)
	array, err := NewColorTexture(layered)
	require.NoError(t, err)

	target, err := ctx.NewRenderTarget(4, 4)
	require.NoError(t, err)
	return inputs{single: single, array: array, depth: depth, target: target}
}

func TestOitResolveRenderStates(t *testing.T) {
	states := NewOitResolveEffect().RenderStates()
	assert.Equal(t, wgpu.BlendOperationAdd, states.Blend.RGBEquation)
	assert.Equal(t, wgpu.BlendOperationAdd, states.Blend.AlphaEquation)
	assert.Equal(t, wgpu.BlendFactorOneMinusSrcAlpha, states.Blend.SourceRGBMultiplier)
	assert.Equal(t, wgpu.BlendFactorOneMinusSrcAlpha, states.Blend.SourceAlphaMultiplier)
	assert.Equal(t, wgpu.BlendFactorSrcAlpha, states.Blend.DestinationRGBMultiplier)
	assert.Equal(t, wgpu.BlendFactorSrcAlpha, states.Blend.DestinationAlphaMultiplier)
	assert.True(t, states.Blend.Enabled)
	assert.Equal(t, wgpu.CompareFunctionAlways, states.DepthTest)
	assert.Equal(t, wgpu.CullModeNone, states.Cull)
	assert.False(t, states.WriteMask.Depth)
	assert.Equal(t, gpu.WriteMaskColor, states.WriteMask)
	assert.Equal(t, float32(1), states.LineWidth)
}

func TestIDInjective(t *testing.T) {
	ctx := gputest.NewContext()
	in := newInputs(t, ctx)

	seen := make(map[ID]bool)
	for _, e := range []Effect{NewOitResolveEffect(), NewCopyEffect()} {
		for _, color := range []*ColorTexture{nil, in.single, in.array} {
			for _, depth := range []*DepthTexture{nil, in.depth} {
				id := e.ID(color, depth)
				require.False(t, seen[id], "duplicate %s", id)
				seen[id] = true
			}
		}
	}
	assert.Len(t, seen, 12)
}

func TestFragmentSourceOrder(t *testing.T) {
	ctx := gputest.NewContext()
	in := newInputs(t, ctx)

	src := NewOitResolveEffect().FragmentShaderSource(nil, in.single, in.depth)
	order := []string{
		shader.IncludeLine(shader.SnippetColorTextureSingle),
		shader.IncludeLine(shader.SnippetDepthTexture),
		shader.IncludeLine(shader.SnippetToneMapping),
		shader.IncludeLine(shader.SnippetColorMapping),
		"fn fs_main",
	}
	last := -1
	for _, part := range order {
		idx := strings.Index(src, part)
		require.GreaterOrEqual(t, idx, 0, "missing %q", part)
		assert.Greater(t, idx, last, "%q out of order", part)
		last = idx
	}

	plain := NewOitResolveEffect().FragmentShaderSource(nil, nil, nil)
	assert.NotContains(t, plain, shader.SnippetColorTextureSingle)
	assert.NotContains(t, plain, shader.SnippetDepthTexture)
}

func TestInputTextureFormats(t *testing.T) {
	ctx := gputest.NewContext()
	target, err := ctx.NewRenderTarget(2, 2)
	require.NoError(t, err)

	_, err = NewColorTexture(target.DepthTexture())
	assert.ErrorIs(t, err, ErrTextureFormat)
	_, err = NewDepthTexture(target.ColorTexture())
	assert.ErrorIs(t, err, ErrTextureFormat)

	in := newInputs(t, ctx)
	assert.Equal(t, ColorTextureSingle, in.single.Kind())
	assert.Equal(t, ColorTextureArray, in.array.Kind())
}

func TestEffectsDrawOverScreenQuad(t *testing.T) {
	ctx := gputest.NewContext()
	in := newInputs(t, ctx)
	quad, err := geometry.NewScreenQuad(ctx)
	require.NoError(t, err)
	viewer := camera.NewCamera(camera.WithViewport(in.target.Viewport()))

	tests := []struct {
		name   string
		effect Effect
		color  *ColorTexture
		depth  *DepthTexture
	}{
		{"oit single", NewOitResolveEffect(), in.single, nil},
		{"oit array", NewOitResolveEffect(), in.array, nil},
		{"oit no input", NewOitResolveEffect(), nil, nil},
		{"copy color and depth", NewCopyEffect(), in.single, in.depth},
		{"copy depth", NewCopyEffect(), nil, in.depth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := tt.effect.FragmentAttributes()
			src := quad.VertexShaderSource(attrs) + "\n" + tt.effect.FragmentShaderSource(nil, tt.color, tt.depth)
			processed, err := shader.NewPreProcessor().Process(src)
			require.NoError(t, err)
			program, err := ctx.CompileProgram(tt.effect.ID(tt.color, tt.depth).String(), processed)
			require.NoError(t, err)

			require.NoError(t, ctx.BeginFrame(in.target, common.ClearNone()))
			require.NoError(t, tt.effect.UseUniforms(program, viewer, nil, tt.color, tt.depth))
			require.NoError(t, quad.Draw(viewer, program, tt.effect.RenderStates(), attrs))
			require.NoError(t, ctx.EndFrame())
		})
	}
	assert.Len(t, ctx.Draws(), len(tests))
}

func TestEffectsRespectClipPlane(t *testing.T) {
	ctx := gputest.NewContext()
	in := newInputs(t, ctx)
	quad, err := geometry.NewScreenQuad(ctx)
	require.NoError(t, err)
	plane := common.NewClipPlaneFromDistance(mgl32.Vec3{1, 0, 0}, 0.5)
	quad.SetClipPlane(&plane)
	viewer := camera.NewCamera(camera.WithViewport(in.target.Viewport()))
	want, err := gpu.EncodeUniform(mgl32.Vec4{1, 0, 0, 0.5}, "vec4<f32>")
	require.NoError(t, err)

	for _, effect := range []Effect{NewCopyEffect(), NewOitResolveEffect()} {
		attrs := effect.FragmentAttributes()
		src := quad.VertexShaderSource(attrs) + "\n" + effect.FragmentShaderSource(nil, in.single, nil)
		processed, err := shader.NewPreProcessor().Process(src)
		require.NoError(t, err)
		body := processed[strings.Index(processed, "fn fs_main"):]
		assert.Contains(t, body, "is_clipped(in.world_position)")

		program, err := ctx.CompileProgram(effect.ID(in.single, nil).String(), processed)
		require.NoError(t, err)
		require.NoError(t, ctx.BeginFrame(in.target, common.ClearNone()))
		require.NoError(t, effect.UseUniforms(program, viewer, nil, in.single, nil))
		require.NoError(t, quad.Draw(viewer, program, effect.RenderStates(), attrs))
		require.NoError(t, ctx.EndFrame())

		clip, ok := program.(*gputest.Program).Uniform("clipPlane")
		require.True(t, ok)
		assert.Equal(t, want, clip)
	}
}
