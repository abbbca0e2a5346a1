package geometry

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/camera"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxJoints is the size of the joint transform array in the skinned vertex stage.
const MaxJoints = 64

// SkinnedMesh is a mesh deformed by up to MaxJoints joint transforms, blended per vertex by
// four joint indices and weights.
type SkinnedMesh struct {
	transformState
	base *baseMesh

	joints  gpu.VertexBuffer
	weights gpu.VertexBuffer

	jointMu         *sync.Mutex
	jointTransforms []mgl32.Mat4
	jointAnimation  func(time float32) []mgl32.Mat4
}

// NewSkinnedMesh validates and uploads a mesh with joints and weights. Every joint transform
// starts as the identity.
//
// Parameters:
//   - ctx: the GPU context the buffers are created in
//   - cpu: the mesh data, Joints and Weights must be set
//
// Returns:
//   - *SkinnedMesh: the uploaded mesh
//   - error: a validation error or an allocation error from the GPU layer
func NewSkinnedMesh(ctx gpu.Context, cpu *CpuMesh) (*SkinnedMesh, error) {
	if err := cpu.Validate(); err != nil {
		return nil, err
	}
	if len(cpu.Joints) == 0 {
		return nil, fmt.Errorf("%w: skinned mesh without joints and weights", ErrAttributeLength)
	}
	for i, j := range cpu.Joints {
		for _, idx := range j {
			if idx >= MaxJoints {
				return nil, fmt.Errorf("%w: vertex %d references joint %d", ErrTooManyJoints, i, idx)
			}
		}
	}

	base, err := newBaseMesh(ctx, "skinned_mesh", cpu)
	if err != nil {
		return nil, err
	}
	m := &SkinnedMesh{
		transformState:  newTransformState(cpu.ComputeAABB()),
		base:            base,
		jointMu:         &sync.Mutex{},
		jointTransforms: identityJoints(),
	}
	if m.joints, err = gpu.NewUVec4Buffer(ctx, "skinned_mesh_joints", cpu.Joints); err != nil {
		m.Release()
		return nil, err
	}
	if m.weights, err = gpu.NewVec4Buffer(ctx, "skinned_mesh_weights", cpu.Weights); err != nil {
		m.Release()
		return nil, err
	}
	return m, nil
}

func identityJoints() []mgl32.Mat4 {
	joints := make([]mgl32.Mat4, MaxJoints)
	for i := range joints {
		joints[i] = mgl32.Ident4()
	}
	return joints
}

// SetJointTransforms replaces the joint transforms. Joints not covered by transforms keep the identity.
//
// Parameters:
//   - transforms: at most MaxJoints matrices, indexed by joint
//
// Returns:
//   - error: ErrTooManyJoints when more than MaxJoints are given
func (m *SkinnedMesh) SetJointTransforms(transforms []mgl32.Mat4) error {
	if len(transforms) > MaxJoints {
		return fmt.Errorf("%w: %d > %d", ErrTooManyJoints, len(transforms), MaxJoints)
	}
	joints := identityJoints()
	copy(joints, transforms)

	m.jointMu.Lock()
	defer m.jointMu.Unlock()
	m.jointTransforms = joints
	return nil
}

// JointTransforms returns a copy of the joint transforms.
func (m *SkinnedMesh) JointTransforms() []mgl32.Mat4 {
	m.jointMu.Lock()
	defer m.jointMu.Unlock()
	return append([]mgl32.Mat4(nil), m.jointTransforms...)
}

// SetJointAnimation sets a function evaluated by Animate that returns the joint transforms at a time.
// Results longer than MaxJoints are truncated.
func (m *SkinnedMesh) SetJointAnimation(animation func(time float32) []mgl32.Mat4) {
	m.jointMu.Lock()
	defer m.jointMu.Unlock()
	m.jointAnimation = animation
}

// Animate evaluates both the transformation animation and the joint animation.
func (m *SkinnedMesh) Animate(time float32) {
	m.transformState.Animate(time)

	m.jointMu.Lock()
	animation := m.jointAnimation
	m.jointMu.Unlock()
	if animation == nil {
		return
	}
	transforms := animation(time)
	if len(transforms) > MaxJoints {
		transforms = transforms[:MaxJoints]
	}
	_ = m.SetJointTransforms(transforms)
}

func (m *SkinnedMesh) VertexShaderSource(required shader.FragmentAttributes) string {
	return required.Intersect(m.base.provides()).Defines() + shader.SkinnedMeshSource
}

func (m *SkinnedMesh) VertexType() gpu.VertexType {
	return gpu.Triangles
}

func (m *SkinnedMesh) ID(required shader.FragmentAttributes) ID {
	return ID{Kind: KindSkinnedMesh, Required: required, Provided: required.Intersect(m.base.provides())}
}

func (m *SkinnedMesh) Draw(viewer camera.Viewer, program gpu.Program, states gpu.RenderStates, attributes shader.FragmentAttributes) error {
	provided := attributes.Intersect(m.base.provides())
	model, err := m.useTransformUniforms(program, viewer.ViewProjection())
	if err != nil {
		return err
	}
	if provided.Normal || provided.Tangents {
		if err := program.UseUniform("normalMatrix", common.NormalMatrix(model)); err != nil {
			return err
		}
	}
	if err := program.UseUniform("jointTransforms", m.JointTransforms()); err != nil {
		return err
	}
	if err := m.base.useAttributes(program, provided); err != nil {
		return err
	}
	if err := program.UseVertexAttribute("joints", m.joints); err != nil {
		return err
	}
	if err := program.UseVertexAttribute("weights", m.weights); err != nil {
		return err
	}
	return m.base.draw(program, states, viewer.Viewport(), 0)
}

func (m *SkinnedMesh) Release() {
	m.base.release()
	if m.joints != nil {
		m.joints.Release()
		m.joints = nil
	}
	if m.weights != nil {
		m.weights.Release()
		m.weights = nil
	}
}
