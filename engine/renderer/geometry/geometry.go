// Package geometry holds the drawable shapes: line lists, triangle meshes and their instanced and
// skinned variants, and the full-screen quad used by screen effects. A geometry owns its vertex and
// index buffers and its transformation; it contributes the vertex stage of a program and binds its
// buffers when drawn.
package geometry

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/camera"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// Construction errors.
var (
	ErrOddLineVertexCount = errors.New("geometry: line list needs an even number of vertices")
	ErrInvalidIndices     = errors.New("geometry: invalid indices")
	ErrAttributeLength    = errors.New("geometry: attribute length does not match the vertex count")
	ErrTooManyJoints      = errors.New("geometry: too many joint transforms")
	ErrNoPositions        = errors.New("geometry: no positions")
)

// Kind identifies a geometry variant.
type Kind uint8

const (
	KindLines Kind = iota + 1
	KindMesh
	KindInstancedMesh
	KindSkinnedMesh
	KindScreenQuad
)

func (k Kind) String() string {
	switch k {
	case KindLines:
		return "lines"
	case KindMesh:
		return "mesh"
	case KindInstancedMesh:
		return "instanced_mesh"
	case KindSkinnedMesh:
		return "skinned_mesh"
	case KindScreenQuad:
		return "screen_quad"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Features are variant specific switches that change the vertex stage.
type Features struct {
	InstanceColors bool
}

// ID identifies the vertex stage a geometry produces for a set of required attributes.
// Two geometries with equal IDs produce identical vertex shader source.
type ID struct {
	Kind Kind

	// Required is the attribute set the fragment stage asked for.
	Required shader.FragmentAttributes

	// Provided is the part of Required the geometry actually supplies.
	Provided shader.FragmentAttributes

	Features Features
}

func (id ID) String() string {
	s := fmt.Sprintf("%s[req=%s,prov=%s", id.Kind, id.Required, id.Provided)
	if id.Features.InstanceColors {
		s += ",instance_colors"
	}
	return s + "]"
}

// Geometry is a drawable shape.
type Geometry interface {
	// AABB returns the bounding box of the geometry under its current transformation.
	//
	// Returns:
	//   - common.AxisAlignedBoundingBox: the world space bounds
	AABB() common.AxisAlignedBoundingBox

	// Animate evaluates the animation function, if any, at the given time.
	// The current transformation becomes Transformation() * animation(time).
	//
	// Parameters:
	//   - time: the animation time, usually seconds since start
	Animate(time float32)

	// VertexShaderSource returns the annotated WGSL of the vertex stage. Feature blocks are switched on
	// only for attributes that are both required and supplied by the geometry.
	//
	// Parameters:
	//   - required: the attributes the fragment stage reads
	//
	// Returns:
	//   - string: annotated WGSL with a vs_main entry point
	VertexShaderSource(required shader.FragmentAttributes) string

	// VertexType returns the primitive topology the geometry is drawn with.
	VertexType() gpu.VertexType

	// ID returns the identity of the vertex stage for the required attributes.
	//
	// Parameters:
	//   - required: the attributes the fragment stage reads
	//
	// Returns:
	//   - ID: a comparable key, equal exactly when the vertex source is equal
	ID(required shader.FragmentAttributes) ID

	// Draw pushes the geometry's uniforms, binds its buffers and issues the draw call.
	// The program must have been compiled from VertexShaderSource(attributes).
	//
	// Parameters:
	//   - viewer: supplies the view projection matrix and the viewport
	//   - program: the compiled program
	//   - states: the render states of the material or effect
	//   - attributes: the attributes the fragment stage reads
	//
	// Returns:
	//   - error: a contract error from the program, or a draw error from the GPU layer
	Draw(viewer camera.Viewer, program gpu.Program, states gpu.RenderStates, attributes shader.FragmentAttributes) error

	// SetClipPlane sets the plane fragments on the negative side of are discarded by. Nil removes it.
	SetClipPlane(plane *common.ClipPlane)

	// ClipPlane returns the clip plane, or nil.
	ClipPlane() *common.ClipPlane

	// Transformation returns the local to world transformation.
	Transformation() mgl32.Mat4

	// SetTransformation sets the local to world transformation. An animation is applied before it.
	SetTransformation(transformation mgl32.Mat4)

	// SetAnimation sets the function evaluated by Animate. Nil removes it.
	SetAnimation(animation func(time float32) mgl32.Mat4)

	// Release frees the GPU buffers owned by the geometry.
	Release()
}

var (
	_ Geometry = &Lines{}
	_ Geometry = &Mesh{}
	_ Geometry = &InstancedMesh{}
	_ Geometry = &SkinnedMesh{}
	_ Geometry = &ScreenQuad{}
)
