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

// defineInstanceColors switches on the per-instance color attribute of the instanced vertex stage.
const defineInstanceColors = "USE_INSTANCE_COLORS"

// Instances are the per-instance data of an InstancedMesh.
type Instances struct {
	// Transformations holds one local transformation per instance, applied before the mesh transformation.
	Transformations []mgl32.Mat4

	// Colors is empty or holds one color per instance, multiplied with the vertex color.
	Colors []common.Srgba
}

// Count returns the number of instances.
func (i Instances) Count() int {
	return len(i.Transformations)
}

// Validate checks that the colors match the transformations.
func (i Instances) Validate() error {
	if len(i.Colors) != 0 && len(i.Colors) != len(i.Transformations) {
		return fmt.Errorf("%w: %d instance colors for %d instances", ErrAttributeLength, len(i.Colors), len(i.Transformations))
	}
	return nil
}

// InstancedMesh draws one mesh many times with a transformation and optional color per instance.
type InstancedMesh struct {
	transformState

	ctx  gpu.Context
	base *baseMesh

	instanceMu *sync.Mutex
	count      uint32
	columns    [4]gpu.VertexBuffer
	colors     gpu.VertexBuffer
	meshAABB   common.AxisAlignedBoundingBox
}

// NewInstancedMesh validates and uploads the mesh and its instances.
//
// Parameters:
//   - ctx: the GPU context the buffers are created in
//   - cpu: the mesh data
//   - instances: the per-instance data
//
// Returns:
//   - *InstancedMesh: the uploaded mesh
//   - error: a validation error or an allocation error from the GPU layer
func NewInstancedMesh(ctx gpu.Context, cpu *CpuMesh, instances Instances) (*InstancedMesh, error) {
	if err := cpu.Validate(); err != nil {
		return nil, err
	}
	if err := instances.Validate(); err != nil {
		return nil, err
	}
	base, err := newBaseMesh(ctx, "instanced_mesh", cpu)
	if err != nil {
		return nil, err
	}
	m := &InstancedMesh{
		transformState: newTransformState(common.EmptyAABB()),
		ctx:            ctx,
		base:           base,
		instanceMu:     &sync.Mutex{},
		meshAABB:       cpu.ComputeAABB(),
	}
	if err := m.SetInstances(instances); err != nil {
		base.release()
		return nil, err
	}
	return m, nil
}

// SetInstances replaces the per-instance data. Switching between colored and uncolored
// instances changes the ID and so the program used.
//
// Parameters:
//   - instances: the new per-instance data
//
// Returns:
//   - error: a validation error or an allocation error; the previous instances stay on error
func (m *InstancedMesh) SetInstances(instances Instances) error {
	if err := instances.Validate(); err != nil {
		return err
	}

	var columns [4]gpu.VertexBuffer
	var colors gpu.VertexBuffer
	if instances.Count() > 0 {
		var err error
		if columns, err = gpu.NewMat4ColumnBuffers(m.ctx, "instance", instances.Transformations); err != nil {
			return err
		}
		if len(instances.Colors) > 0 {
			if colors, err = gpu.NewVec4Buffer(m.ctx, "instance_colors", common.SrgbaSliceToLinear(instances.Colors)); err != nil {
				releaseColumns(columns)
				return err
			}
		}
	}

	bounds := common.EmptyAABB()
	for _, t := range instances.Transformations {
		bounds.ExpandWithAABB(m.meshAABB.Transformed(t))
	}

	m.instanceMu.Lock()
	oldColumns, oldColors := m.columns, m.colors
	m.columns, m.colors = columns, colors
	m.count = uint32(instances.Count())
	m.instanceMu.Unlock()

	m.mu.Lock()
	m.localAABB = bounds
	m.mu.Unlock()

	releaseColumns(oldColumns)
	if oldColors != nil {
		oldColors.Release()
	}
	return nil
}

// InstanceCount returns the number of instances drawn.
func (m *InstancedMesh) InstanceCount() uint32 {
	m.instanceMu.Lock()
	defer m.instanceMu.Unlock()
	return m.count
}

func (m *InstancedMesh) features() Features {
	m.instanceMu.Lock()
	defer m.instanceMu.Unlock()
	return Features{InstanceColors: m.colors != nil}
}

func (m *InstancedMesh) VertexShaderSource(required shader.FragmentAttributes) string {
	src := required.Intersect(m.base.provides()).Defines()
	if m.features().InstanceColors {
		src += shader.DefineLine(defineInstanceColors)
	}
	return src + shader.InstancedMeshSource
}

func (m *InstancedMesh) VertexType() gpu.VertexType {
	return gpu.Triangles
}

func (m *InstancedMesh) ID(required shader.FragmentAttributes) ID {
	return ID{
		Kind:     KindInstancedMesh,
		Required: required,
		Provided: required.Intersect(m.base.provides()),
		Features: m.features(),
	}
}

// Draw draws every instance in one call. With no instances nothing is drawn.
func (m *InstancedMesh) Draw(viewer camera.Viewer, program gpu.Program, states gpu.RenderStates, attributes shader.FragmentAttributes) error {
	m.instanceMu.Lock()
	count, columns, colors := m.count, m.columns, m.colors
	m.instanceMu.Unlock()
	if count == 0 {
		return nil
	}

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
	if err := m.base.useAttributes(program, provided); err != nil {
		return err
	}
	for i, col := range columns {
		if err := program.UseInstanceAttribute(fmt.Sprintf("instance_column%d", i), col); err != nil {
			return err
		}
	}
	if colors != nil {
		if err := program.UseInstanceAttribute("instance_color", colors); err != nil {
			return err
		}
	}
	return m.base.draw(program, states, viewer.Viewport(), count)
}

func (m *InstancedMesh) Release() {
	m.base.release()
	m.instanceMu.Lock()
	defer m.instanceMu.Unlock()
	releaseColumns(m.columns)
	m.columns = [4]gpu.VertexBuffer{}
	if m.colors != nil {
		m.colors.Release()
		m.colors = nil
	}
	m.count = 0
}

func releaseColumns(columns [4]gpu.VertexBuffer) {
	for _, c := range columns {
		if c != nil {
			c.Release()
		}
	}
}
