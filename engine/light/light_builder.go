package light

import (
	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - position: the position
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(position mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = position
	}
}

// WithDirection is an option builder that sets the direction of the light.
// The direction is normalized before storing.
//
// Parameters:
//   - direction: the direction the light travels in
//
// Returns:
//   - LightBuilderOption: a function that applies the direction option to a lightImpl
func WithDirection(direction mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.direction = normalize(direction)
	}
}

// WithColor is an option builder that sets the linear RGB color of the light.
func WithColor(color mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = color
	}
}

// WithSrgbColor is an option builder that sets the color from an sRGB value.
//
// Parameters:
//   - color: the sRGB color, alpha is ignored
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithSrgbColor(color common.Srgba) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = color.ToLinear().Vec3()
	}
}

// WithIntensity is an option builder that sets the scalar intensity multiplier.
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithRange is an option builder that sets the distance at which point and spot lights fade out.
//
// Parameters:
//   - lightRange: the range value, zero for unbounded inverse square falloff
//
// Returns:
//   - LightBuilderOption: a function that applies the range option to a lightImpl
func WithRange(lightRange float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.lightRange = lightRange
	}
}

// WithSpotCone is an option builder that sets the inner and outer cone half-angles
// for spot lights. Angles are specified in degrees and converted to cosines internally,
// which is the format the shader compares against.
//
// Parameters:
//   - innerDeg: inner cone half-angle in degrees
//   - outerDeg: outer cone half-angle in degrees
//
// Returns:
//   - LightBuilderOption: a function that applies the spot cone option to a lightImpl
func WithSpotCone(innerDeg, outerDeg float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.innerCone = cosDeg(innerDeg)
		l.outerCone = cosDeg(outerDeg)
	}
}

// WithEnabled is an option builder that sets whether the light contributes to shading.
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}

// normalize returns a unit vector, or the zero vector for zero input.
func normalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return mgl32.Vec3{}
	}
	return v.Normalize()
}

// cosDeg converts an angle in degrees to the cosine of that angle.
func cosDeg(deg float32) float32 {
	return math32.Cos(deg * math32.Pi / 180)
}
