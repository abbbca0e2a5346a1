package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clipDepth(c Camera, p mgl32.Vec3) float32 {
	v := c.ViewProjection().Mul4x1(p.Vec4(1))
	return v.Z() / v.W()
}

func TestCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, c.Position())
	assert.Equal(t, ProjectionPerspective, c.ProjectionType())
	assert.Equal(t, ToneMappingNone, c.ToneMapping())
	assert.Equal(t, ColorMappingComputeToSrgb, c.ColorMapping())
	assert.True(t, c.ViewProjection().ApproxEqual(c.Projection().Mul4(c.View())))
}

func TestCameraDepthRange(t *testing.T) {
	c := NewCamera(
		WithPosition(mgl32.Vec3{0, 0, 0}),
		WithTarget(mgl32.Vec3{0, 0, -1}),
		WithNear(1),
		WithFar(10),
		WithViewport(common.NewViewportAtOrigin(800, 600)),
	)
	assert.InDelta(t, 0, clipDepth(c, mgl32.Vec3{0, 0, -1}), 1e-5)
	assert.InDelta(t, 1, clipDepth(c, mgl32.Vec3{0, 0, -10}), 1e-5)

	c.SetOrthographic(4, 1, 10)
	assert.Equal(t, ProjectionOrthographic, c.ProjectionType())
	assert.InDelta(t, 0, clipDepth(c, mgl32.Vec3{0, 0, -1}), 1e-5)
	assert.InDelta(t, 1, clipDepth(c, mgl32.Vec3{0, 0, -10}), 1e-5)
}

func TestCameraSetViewRecomputes(t *testing.T) {
	c := NewCamera()
	before := c.View()
	c.SetView(mgl32.Vec3{3, 0, 0}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	assert.False(t, before.ApproxEqual(c.View()))

	eye := c.View().Mul4x1(mgl32.Vec4{3, 0, 0, 1})
	assert.InDelta(t, 0, eye.Vec3().Len(), 1e-5)
}

func TestToneMappingApply(t *testing.T) {
	assert.InDelta(t, 0.5, ToneMappingReinhard.Apply(mgl32.Vec3{1, 1, 1}).X(), 1e-6)
	assert.Equal(t, mgl32.Vec3{2, 3, 4}, ToneMappingNone.Apply(mgl32.Vec3{2, 3, 4}))
	assert.LessOrEqual(t, ToneMappingAces.Apply(mgl32.Vec3{100, 0, 0}).X(), float32(1))
}

func TestColorMappingApply(t *testing.T) {
	out := ColorMappingComputeToSrgb.Apply(mgl32.Vec3{0, 1, 0.5})
	assert.InDelta(t, 0, out.X(), 1e-6)
	assert.InDelta(t, 1, out.Y(), 1e-5)
	assert.InDelta(t, 0.7354, out.Z(), 1e-3)
}

func TestParseMappings(t *testing.T) {
	tm, err := ParseToneMapping("ACES")
	require.NoError(t, err)
	assert.Equal(t, ToneMappingAces, tm)
	_, err = ParseToneMapping("bogus")
	assert.Error(t, err)

	cm, err := ParseColorMapping("none")
	require.NoError(t, err)
	assert.Equal(t, ColorMappingNone, cm)
	_, err = ParseColorMapping("bogus")
	assert.Error(t, err)
}

func TestOrbitControl(t *testing.T) {
	oc := NewOrbitControl(WithOrbitRadius(5), WithOrbitAngles(0, 0), WithRadiusLimits(1, 8))
	assertVec3(t, mgl32.Vec3{0, 0, 5}, oc.Position())

	oc.Rotate(math32.Pi/2, 0)
	assertVec3(t, mgl32.Vec3{5, 0, 0}, oc.Position())

	oc.Rotate(0, 10)
	assert.Less(t, oc.Elevation(), float32(math32.Pi/2))

	oc.Zoom(100)
	assert.Equal(t, float32(1), oc.Radius())
	oc.Zoom(-100)
	assert.Equal(t, float32(8), oc.Radius())

	cam := NewCamera()
	oc.Apply(cam)
	assertVec3(t, oc.Position(), cam.Position())
	assert.Equal(t, oc.Target(), cam.Target())
}

func TestOrbitControlPan(t *testing.T) {
	oc := NewOrbitControl(WithOrbitRadius(5), WithOrbitAngles(0, 0))
	oc.Pan(2, 1)
	assertVec3(t, mgl32.Vec3{2, 1, 0}, oc.Target())
	assertVec3(t, mgl32.Vec3{2, 1, 5}, oc.Position())
}

func assertVec3(t *testing.T, expected, actual mgl32.Vec3) {
	t.Helper()
	assert.InDeltaSlice(t, expected[:], actual[:], 1e-5)
}
