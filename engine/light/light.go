package light

import (
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient lights every surface equally regardless of position and orientation.
	LightTypeAmbient LightType = iota

	// LightTypeDirectional represents a light with no position, only direction.
	// Used for large distant sources like the sun. No distance attenuation.
	LightTypeDirectional

	// LightTypePoint emits in all directions from a position and attenuates with distance
	// up to a configurable range.
	LightTypePoint

	// LightTypeSpot emits in a cone from a position along a direction. Attenuates with both
	// distance and angle from the cone axis, controlled by inner and outer cone angles.
	LightTypeSpot
)

// Tag returns the one letter discriminator of the light type used in program keys.
func (t LightType) Tag() string {
	switch t {
	case LightTypeAmbient:
		return "a"
	case LightTypeDirectional:
		return "d"
	case LightTypePoint:
		return "p"
	case LightTypeSpot:
		return "s"
	}
	return "?"
}

func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	}
	return "unknown"
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType  LightType
	position   mgl32.Vec3
	direction  mgl32.Vec3
	color      mgl32.Vec3
	intensity  float32
	lightRange float32
	innerCone  float32 // stored as cos(angle in radians)
	outerCone  float32 // stored as cos(angle in radians)
	enabled    bool
}

// Light is a light source forwarded to materials. Its shader text depends only on its type
// and its index in the light list; every other property is a uniform.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for ambient and directional lights.
	Position() mgl32.Vec3

	// Direction returns the normalized direction the light travels in.
	// Meaningless for ambient and point lights.
	Direction() mgl32.Vec3

	// Color returns the linear RGB color of the light.
	Color() mgl32.Vec3

	// Intensity returns the scalar intensity multiplier for the light.
	Intensity() float32

	// Range returns the distance at which point and spot lights fade to zero.
	// Zero means inverse square falloff without a cutoff.
	Range() float32

	// InnerCone returns the cosine of the inner cone half-angle for spot lights.
	InnerCone() float32

	// OuterCone returns the cosine of the outer cone half-angle for spot lights.
	OuterCone() float32

	// Enabled returns whether this light contributes to shading.
	// A disabled light keeps its shader code and pushes black.
	Enabled() bool

	SetPosition(position mgl32.Vec3)

	// SetDirection sets the direction of the light and normalizes it.
	SetDirection(direction mgl32.Vec3)

	SetColor(color mgl32.Vec3)
	SetIntensity(intensity float32)
	SetRange(lightRange float32)

	// SetSpotCone sets the inner and outer cone half-angles for spot lights.
	// Angles are specified in degrees and stored internally as cosines.
	//
	// Parameters:
	//   - innerDeg: inner cone half-angle in degrees
	//   - outerDeg: outer cone half-angle in degrees
	SetSpotCone(innerDeg, outerDeg float32)

	SetEnabled(enabled bool)

	// ShaderSource returns the WGSL declaring the uniforms of the light at index and the
	// function calculate_lighting<index>(surface: Surface) -> vec3<f32>.
	//
	// Parameters:
	//   - index: the position of the light in the light list
	//
	// Returns:
	//   - string: annotated WGSL for the pre-processor
	ShaderSource(index int) string

	// UseUniforms pushes the light's uniforms for the given index into the program.
	//
	// Parameters:
	//   - program: a program compiled from a source containing ShaderSource(index)
	//   - index: the position of the light in the light list
	//
	// Returns:
	//   - error: any error returned by the program
	UseUniforms(program gpu.Program, index int) error
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:  lightType,
		position:   mgl32.Vec3{0, 0, 0},
		direction:  mgl32.Vec3{0, -1, 0},
		color:      mgl32.Vec3{1, 1, 1},
		intensity:  1.0,
		lightRange: 10.0,
		innerCone:  cosDeg(25),
		outerCone:  cosDeg(35),
		enabled:    true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewAmbientLight creates an ambient light.
func NewAmbientLight(intensity float32, opts ...LightBuilderOption) Light {
	return NewLight(LightTypeAmbient, append([]LightBuilderOption{WithIntensity(intensity)}, opts...)...)
}

// NewDirectionalLight creates a directional light shining along direction.
func NewDirectionalLight(intensity float32, direction mgl32.Vec3, opts ...LightBuilderOption) Light {
	return NewLight(LightTypeDirectional, append([]LightBuilderOption{WithIntensity(intensity), WithDirection(direction)}, opts...)...)
}

// NewPointLight creates a point light at position.
func NewPointLight(intensity float32, position mgl32.Vec3, opts ...LightBuilderOption) Light {
	return NewLight(LightTypePoint, append([]LightBuilderOption{WithIntensity(intensity), WithPosition(position)}, opts...)...)
}

// NewSpotLight creates a spot light at position shining along direction.
func NewSpotLight(intensity float32, position, direction mgl32.Vec3, opts ...LightBuilderOption) Light {
	return NewLight(LightTypeSpot, append([]LightBuilderOption{WithIntensity(intensity), WithPosition(position), WithDirection(direction)}, opts...)...)
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	return l.direction
}

func (l *lightImpl) Color() mgl32.Vec3 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) InnerCone() float32 {
	return l.innerCone
}

func (l *lightImpl) OuterCone() float32 {
	return l.outerCone
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(position mgl32.Vec3) {
	l.position = position
}

func (l *lightImpl) SetDirection(direction mgl32.Vec3) {
	l.direction = normalize(direction)
}

func (l *lightImpl) SetColor(color mgl32.Vec3) {
	l.color = color
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetRange(lightRange float32) {
	l.lightRange = lightRange
}

func (l *lightImpl) SetSpotCone(innerDeg, outerDeg float32) {
	l.innerCone = cosDeg(innerDeg)
	l.outerCone = cosDeg(outerDeg)
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

// radiance is the color pushed to the shader: color scaled by intensity, black when disabled.
func (l *lightImpl) radiance() mgl32.Vec3 {
	if !l.enabled {
		return mgl32.Vec3{}
	}
	return l.color.Mul(l.intensity)
}

// ID returns the ordered type tags of lights. Two light lists with equal IDs produce the same shader text.
//
// Parameters:
//   - lights: the light list
//
// Returns:
//   - string: one Tag per light, in order
func ID(lights []Light) string {
	id := make([]byte, 0, len(lights))
	for _, l := range lights {
		id = append(id, l.Type().Tag()...)
	}
	return string(id)
}
