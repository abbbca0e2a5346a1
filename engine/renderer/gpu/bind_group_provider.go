package gpu

import (
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider owns the binding resources of one WebGPU program: a bind group layout per
// group, the uniform buffer backing the uniform block, and the sampler shared by its textures.
// Bind groups are built per draw from whatever textures are bound at that moment.
type bindGroupProvider struct {
	label string

	// layouts is indexed by group. Groups the program does not use hold an empty layout.
	layouts     []*wgpu.BindGroupLayout
	descriptors []wgpu.BindGroupLayoutDescriptor

	uniformBuffer *wgpu.Buffer
	sampler       *wgpu.Sampler
}

// SamplerOptions configures the sampler shared by a program's textures. Zero fields select
// linear filtering with clamped addressing.
type SamplerOptions struct {
	AddressMode   wgpu.AddressMode
	MagFilter     wgpu.FilterMode
	MinFilter     wgpu.FilterMode
	MipmapFilter  wgpu.MipmapFilterMode
	MaxAnisotropy uint16
}

func newBindGroupProvider(device *wgpu.Device, label string, layouts map[uint32]wgpu.BindGroupLayoutDescriptor, uniformBlockSize uint64, samplerOptions SamplerOptions) (*bindGroupProvider, error) {
	p := &bindGroupProvider{label: label}

	groups := make([]uint32, 0, len(layouts))
	maxGroup := -1
	for g := range layouts {
		groups = append(groups, g)
		if int(g) > maxGroup {
			maxGroup = int(g)
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i] < groups[j] })

	p.descriptors = make([]wgpu.BindGroupLayoutDescriptor, maxGroup+1)
	p.layouts = make([]*wgpu.BindGroupLayout, maxGroup+1)
	for g := 0; g <= maxGroup; g++ {
		desc, ok := layouts[uint32(g)]
		if !ok {
			desc = wgpu.BindGroupLayoutDescriptor{Label: fmt.Sprintf("%s Empty Group %d", label, g)}
		}
		layout, err := device.CreateBindGroupLayout(&desc)
		if err != nil {
			p.Release()
			return nil, fmt.Errorf("%w: bind group layout %d of %s: %v", ErrResourceAllocation, g, label, err)
		}
		p.descriptors[g] = desc
		p.layouts[g] = layout
	}

	if uniformBlockSize > 0 {
		buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: label + " Uniform Buffer",
			Size:  roundUp16(uniformBlockSize),
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			p.Release()
			return nil, fmt.Errorf("%w: uniform buffer of %s: %v", ErrResourceAllocation, label, err)
		}
		p.uniformBuffer = buf
	}

	samp, err := device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         label + " Sampler",
		AddressModeU:  common.Coalesce(samplerOptions.AddressMode, wgpu.AddressModeClampToEdge),
		AddressModeV:  common.Coalesce(samplerOptions.AddressMode, wgpu.AddressModeClampToEdge),
		AddressModeW:  common.Coalesce(samplerOptions.AddressMode, wgpu.AddressModeClampToEdge),
		MagFilter:     common.Coalesce(samplerOptions.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(samplerOptions.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  common.Coalesce(samplerOptions.MipmapFilter, wgpu.MipmapFilterModeLinear),
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: common.Coalesce(samplerOptions.MaxAnisotropy, 1),
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("%w: sampler of %s: %v", ErrResourceAllocation, label, err)
	}
	p.sampler = samp

	return p, nil
}

// BindGroups creates one bind group per layout for the current state. The caller releases them
// once the draw using them was submitted.
func (p *bindGroupProvider) BindGroups(device *wgpu.Device, state *ProgramState) ([]*wgpu.BindGroup, error) {
	byBinding := make(map[uint32]string)
	for _, t := range state.Reflection().Textures {
		byBinding[t.Binding] = t.Name
	}

	groups := make([]*wgpu.BindGroup, 0, len(p.layouts))
	for g, desc := range p.descriptors {
		entries := make([]wgpu.BindGroupEntry, len(desc.Entries))
		for i, entry := range desc.Entries {
			isTexture := entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined
			isSampler := entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined

			switch {
			case isTexture:
				name := byBinding[entry.Binding]
				tex, ok := state.Texture(name).(*wgpuTexture)
				if !ok {
					releaseBindGroups(groups)
					return nil, fmt.Errorf("%w: texture %q in %s", ErrForeignResource, name, p.label)
				}
				entries[i] = wgpu.BindGroupEntry{
					Binding:     entry.Binding,
					TextureView: tex.view,
				}
			case isSampler:
				entries[i] = wgpu.BindGroupEntry{
					Binding: entry.Binding,
					Sampler: p.sampler,
				}
			default:
				entries[i] = wgpu.BindGroupEntry{
					Binding: entry.Binding,
					Buffer:  p.uniformBuffer,
					Offset:  0,
					Size:    wgpu.WholeSize,
				}
			}
		}

		bindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:   fmt.Sprintf("%s Bind Group %d", p.label, g),
			Layout:  p.layouts[g],
			Entries: entries,
		})
		if err != nil {
			releaseBindGroups(groups)
			return nil, fmt.Errorf("%w: bind group %d of %s: %v", ErrResourceAllocation, g, p.label, err)
		}
		groups = append(groups, bindGroup)
	}
	return groups, nil
}

// Layouts returns the bind group layouts indexed by group.
func (p *bindGroupProvider) Layouts() []*wgpu.BindGroupLayout {
	return p.layouts
}

// UniformBuffer returns the buffer backing the uniform block, nil when the program has none.
func (p *bindGroupProvider) UniformBuffer() *wgpu.Buffer {
	return p.uniformBuffer
}

// Release releases every GPU resource held by the provider.
func (p *bindGroupProvider) Release() {
	for i, l := range p.layouts {
		if l != nil {
			l.Release()
			p.layouts[i] = nil
		}
	}
	if p.uniformBuffer != nil {
		p.uniformBuffer.Release()
		p.uniformBuffer = nil
	}
	if p.sampler != nil {
		p.sampler.Release()
		p.sampler = nil
	}
}

func releaseBindGroups(groups []*wgpu.BindGroup) {
	for _, g := range groups {
		g.Release()
	}
}

func roundUp16(n uint64) uint64 {
	return (n + 15) &^ 15
}
