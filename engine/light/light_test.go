package light

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileLit(t *testing.T, lights []Light) *gputest.Program {
	t.Helper()
	src := shader.MeshSource + "\n" + shader.PhysicalMaterialSource + "\n" + FragmentSource(lights)
	processed, err := shader.NewPreProcessor().Process(src)
	require.NoError(t, err)
	p, err := gputest.NewContext().CompileProgram("lit", processed)
	require.NoError(t, err)
	return p.(*gputest.Program)
}

func TestNewLightDefaults(t *testing.T) {
	l := NewLight(LightTypePoint)
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, l.Direction())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, l.Color())
	assert.Equal(t, float32(1), l.Intensity())
	assert.Equal(t, float32(10), l.Range())
	assert.True(t, l.Enabled())
	assert.Greater(t, l.InnerCone(), l.OuterCone())
}

func TestConstructors(t *testing.T) {
	d := NewDirectionalLight(2, mgl32.Vec3{0, 0, -5}, WithColor(mgl32.Vec3{1, 0, 0}))
	assert.Equal(t, LightTypeDirectional, d.Type())
	assert.InDelta(t, -1, d.Direction().Z(), 1e-6)
	assert.Equal(t, float32(2), d.Intensity())
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, d.Color())

	s := NewSpotLight(1, mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, -1, 0}, WithSpotCone(10, 20))
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, s.Position())
	assert.InDelta(t, 0.98481, s.InnerCone(), 1e-4)
	assert.InDelta(t, 0.93969, s.OuterCone(), 1e-4)

	a := NewAmbientLight(0.5, WithSrgbColor(common.White))
	assert.Equal(t, LightTypeAmbient, a.Type())
	assert.InDelta(t, 1, a.Color().X(), 1e-6)
}

func TestID(t *testing.T) {
	lights := []Light{
		NewAmbientLight(0.2),
		NewDirectionalLight(1, mgl32.Vec3{0, -1, 0}),
		NewPointLight(1, mgl32.Vec3{}),
		NewSpotLight(1, mgl32.Vec3{}, mgl32.Vec3{0, -1, 0}),
	}
	assert.Equal(t, "adps", ID(lights))
	assert.Equal(t, "", ID(nil))

	lights[1].SetEnabled(false)
	lights[2].SetIntensity(7)
	assert.Equal(t, "adps", ID(lights))
}

func TestFragmentSourceCompiles(t *testing.T) {
	lights := []Light{
		NewAmbientLight(0.2),
		NewDirectionalLight(1, mgl32.Vec3{0, -1, 0}),
		NewPointLight(1, mgl32.Vec3{0, 2, 0}),
		NewSpotLight(1, mgl32.Vec3{0, 2, 0}, mgl32.Vec3{0, -1, 0}),
	}
	p := compileLit(t, lights)

	for _, name := range []string{"light0Color", "light1Direction", "light2Position", "light2Range", "light3InnerCone", "light3OuterCone"} {
		assert.True(t, p.RequiresUniform(name), name)
	}
	assert.Contains(t, p.Source, "fn calculate_lighting3(surface: Surface) -> vec3<f32>")
	assert.Contains(t, p.Source, "color = color + calculate_lighting3(surface);")
	require.NoError(t, UseUniforms(p, lights))

	raw, ok := p.Uniform("light1Direction")
	require.True(t, ok)
	want, err := gpu.EncodeUniform(mgl32.Vec3{0, -1, 0}, "vec3<f32>")
	require.NoError(t, err)
	assert.Equal(t, want[:12], raw[:12])
}

func TestDisabledLightPushesBlack(t *testing.T) {
	l := NewDirectionalLight(3, mgl32.Vec3{0, -1, 0}, WithEnabled(false))
	p := compileLit(t, []Light{l})
	require.NoError(t, UseUniforms(p, []Light{l}))

	raw, ok := p.Uniform("light0Color")
	require.True(t, ok)
	zero, err := gpu.EncodeUniform(mgl32.Vec3{}, "vec3<f32>")
	require.NoError(t, err)
	assert.Equal(t, zero[:12], raw[:12])

	l.SetEnabled(true)
	require.NoError(t, UseUniforms(p, []Light{l}))
	raw, _ = p.Uniform("light0Color")
	lit, err := gpu.EncodeUniform(mgl32.Vec3{3, 3, 3}, "vec3<f32>")
	require.NoError(t, err)
	assert.Equal(t, lit[:12], raw[:12])
}

func TestUseUniformsWrongProgram(t *testing.T) {
	p := compileLit(t, nil)
	err := UseUniforms(p, []Light{NewAmbientLight(1)})
	assert.ErrorIs(t, err, gpu.ErrUnknownUniform)
}
