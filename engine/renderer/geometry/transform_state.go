package geometry

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// transformState is the transformation, animation and clip plane shared by every geometry.
// The current transformation is always the base transformation times the animation evaluated
// at the last Animate time, or the base transformation when no animation is set.
type transformState struct {
	mu *sync.Mutex

	transformation mgl32.Mat4
	current        mgl32.Mat4
	animation      func(time float32) mgl32.Mat4
	time           float32

	clipPlane *common.ClipPlane
	localAABB common.AxisAlignedBoundingBox
}

func newTransformState(localAABB common.AxisAlignedBoundingBox) transformState {
	return transformState{
		mu:             &sync.Mutex{},
		transformation: mgl32.Ident4(),
		current:        mgl32.Ident4(),
		localAABB:      localAABB,
	}
}

// update recomputes the current transformation. Caller holds mu.
func (s *transformState) update() {
	if s.animation == nil {
		s.current = s.transformation
		return
	}
	s.current = s.transformation.Mul4(s.animation(s.time))
}

func (s *transformState) Transformation() mgl32.Mat4 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transformation
}

func (s *transformState) SetTransformation(transformation mgl32.Mat4) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transformation = transformation
	s.update()
}

func (s *transformState) SetAnimation(animation func(time float32) mgl32.Mat4) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.animation = animation
	s.update()
}

// CurrentTransformation returns the transformation the geometry is drawn with.
func (s *transformState) CurrentTransformation() mgl32.Mat4 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *transformState) Animate(time float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.time = time
	if s.animation != nil {
		s.update()
	}
}

func (s *transformState) AABB() common.AxisAlignedBoundingBox {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.localAABB.Transformed(s.current)
}

func (s *transformState) SetClipPlane(plane *common.ClipPlane) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if plane == nil {
		s.clipPlane = nil
		return
	}
	p := *plane
	s.clipPlane = &p
}

func (s *transformState) ClipPlane() *common.ClipPlane {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clipPlane == nil {
		return nil
	}
	p := *s.clipPlane
	return &p
}

// clipPlaneVec4 returns the plane as pushed to the shader; the zero vector never clips.
func (s *transformState) clipPlaneVec4() mgl32.Vec4 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clipPlane == nil {
		return mgl32.Vec4{}
	}
	return s.clipPlane.AsVec4()
}

// useTransformUniforms pushes the uniforms every vertex stage built on the mesh or lines sources declares.
func (s *transformState) useTransformUniforms(program gpu.Program, viewProjection mgl32.Mat4) (mgl32.Mat4, error) {
	model := s.CurrentTransformation()
	if err := program.UseUniform("viewProjection", viewProjection); err != nil {
		return model, err
	}
	if err := program.UseUniform("modelMatrix", model); err != nil {
		return model, err
	}
	return model, program.UseUniform("clipPlane", s.clipPlaneVec4())
}
