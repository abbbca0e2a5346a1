package gpu

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuVertexBuffer struct {
	buffer *wgpu.Buffer
	format wgpu.VertexFormat
	count  uint32
}

var _ VertexBuffer = &wgpuVertexBuffer{}

func (b *wgpuVertexBuffer) Format() wgpu.VertexFormat {
	return b.format
}

func (b *wgpuVertexBuffer) Count() uint32 {
	return b.count
}

func (b *wgpuVertexBuffer) Release() {
	if b.buffer != nil {
		b.buffer.Release()
		b.buffer = nil
	}
}

type wgpuElementBuffer struct {
	buffer *wgpu.Buffer
	count  uint32
}

var _ ElementBuffer = &wgpuElementBuffer{}

func (b *wgpuElementBuffer) Count() uint32 {
	return b.count
}

func (b *wgpuElementBuffer) Release() {
	if b.buffer != nil {
		b.buffer.Release()
		b.buffer = nil
	}
}

type wgpuTexture struct {
	desc    TextureDescriptor
	texture *wgpu.Texture

	// view is a 2D view for single layer textures and a 2D array view otherwise.
	view *wgpu.TextureView
}

var _ Texture = &wgpuTexture{}

func (t *wgpuTexture) Width() uint32 {
	return t.desc.Width
}

func (t *wgpuTexture) Height() uint32 {
	return t.desc.Height
}

func (t *wgpuTexture) Layers() uint32 {
	return t.desc.Layers
}

func (t *wgpuTexture) Format() TextureFormat {
	return t.desc.Format
}

func (t *wgpuTexture) Release() {
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}

type wgpuRenderTarget struct {
	color *wgpuTexture
	depth *wgpuTexture
}

var _ RenderTarget = &wgpuRenderTarget{}

func (r *wgpuRenderTarget) Width() uint32 {
	return r.color.Width()
}

func (r *wgpuRenderTarget) Height() uint32 {
	return r.color.Height()
}

func (r *wgpuRenderTarget) Viewport() common.Viewport {
	return common.NewViewportAtOrigin(r.Width(), r.Height())
}

func (r *wgpuRenderTarget) ColorTexture() Texture {
	return r.color
}

func (r *wgpuRenderTarget) DepthTexture() Texture {
	return r.depth
}

func (r *wgpuRenderTarget) Release() {
	r.color.Release()
	r.depth.Release()
}

func (c *wgpuContext) NewVertexBuffer(label string, format wgpu.VertexFormat, data []byte, count uint32) (VertexBuffer, error) {
	buf, err := c.createBuffer(label+" Vertex Buffer", wgpu.BufferUsageVertex, data)
	if err != nil {
		return nil, err
	}
	return &wgpuVertexBuffer{buffer: buf, format: format, count: count}, nil
}

func (c *wgpuContext) NewElementBuffer(label string, indices []uint32) (ElementBuffer, error) {
	buf, err := c.createBuffer(label+" Index Buffer", wgpu.BufferUsageIndex, common.SliceToBytes(indices))
	if err != nil {
		return nil, err
	}
	return &wgpuElementBuffer{buffer: buf, count: uint32(len(indices))}, nil
}

// createBuffer allocates a buffer padded to 4 bytes and uploads data through the queue.
func (c *wgpuContext) createBuffer(label string, usage wgpu.BufferUsage, data []byte) (*wgpu.Buffer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	size := uint64(len(data)+3) &^ 3
	if size == 0 {
		size = 4
	}
	buf, err := c.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             size,
		Usage:            usage | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrResourceAllocation, label, err)
	}
	if len(data) > 0 {
		padded := data
		if uint64(len(data)) != size {
			padded = make([]byte, size)
			copy(padded, data)
		}
		c.queue.WriteBuffer(buf, 0, padded)
	}
	return buf, nil
}

func (c *wgpuContext) NewTexture2D(desc TextureDescriptor, data []byte) (Texture, error) {
	usage := wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst
	return c.createTexture(desc, usage, data)
}

func (c *wgpuContext) createTexture(desc TextureDescriptor, usage wgpu.TextureUsage, data []byte) (*wgpuTexture, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	desc.Layers = common.Coalesce(desc.Layers, 1)
	if desc.Width == 0 || desc.Height == 0 {
		return nil, fmt.Errorf("%w: %s: zero sized texture", ErrResourceAllocation, desc.Label)
	}

	tex, err := c.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     desc.Label,
		Usage:     usage,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              desc.Width,
			Height:             desc.Height,
			DepthOrArrayLayers: desc.Layers,
		},
		Format:        desc.Format.WGPU(),
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrResourceAllocation, desc.Label, err)
	}

	if len(data) > 0 {
		rowBytes := desc.Width * desc.Format.BytesPerTexel()
		if want := int(rowBytes * desc.Height * desc.Layers); len(data) != want {
			tex.Release()
			return nil, fmt.Errorf("%w: %s: got %d bytes of texel data, want %d", ErrResourceAllocation, desc.Label, len(data), want)
		}
		c.queue.WriteTexture(
			&wgpu.ImageCopyTexture{
				Texture:  tex,
				MipLevel: 0,
				Origin:   wgpu.Origin3D{},
				Aspect:   wgpu.TextureAspectAll,
			},
			data,
			&wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  rowBytes,
				RowsPerImage: desc.Height,
			},
			&wgpu.Extent3D{
				Width:              desc.Width,
				Height:             desc.Height,
				DepthOrArrayLayers: desc.Layers,
			},
		)
	}

	dimension := wgpu.TextureViewDimension2D
	if desc.Layers > 1 {
		dimension = wgpu.TextureViewDimension2DArray
	}
	view, err := tex.CreateView(&wgpu.TextureViewDescriptor{
		Label:           desc.Label + " View",
		Format:          desc.Format.WGPU(),
		Dimension:       dimension,
		BaseMipLevel:    0,
		MipLevelCount:   1,
		BaseArrayLayer:  0,
		ArrayLayerCount: desc.Layers,
		Aspect:          wgpu.TextureAspectAll,
	})
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("%w: %s view: %v", ErrResourceAllocation, desc.Label, err)
	}

	return &wgpuTexture{desc: desc, texture: tex, view: view}, nil
}

func (c *wgpuContext) NewRenderTarget(width, height uint32) (RenderTarget, error) {
	usage := wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopySrc
	color, err := c.createTexture(TextureDescriptor{
		Label:  "Render Target Color",
		Width:  width,
		Height: height,
		Format: TextureFormatRGBA8,
	}, usage, nil)
	if err != nil {
		return nil, err
	}
	depth, err := c.createTexture(TextureDescriptor{
		Label:  "Render Target Depth",
		Width:  width,
		Height: height,
		Format: TextureFormatDepth32,
	}, wgpu.TextureUsageRenderAttachment|wgpu.TextureUsageTextureBinding, nil)
	if err != nil {
		color.Release()
		return nil, err
	}
	return &wgpuRenderTarget{color: color, depth: depth}, nil
}
