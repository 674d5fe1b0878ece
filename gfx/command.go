package gfx

import (
	"github.com/cockroachdb/errors"
)

// DrawInfo describes a single draw. Its encoded size in an indirect buffer is DrawInfoSize.
type DrawInfo struct {
	VertexCount   uint32
	FirstVertex   uint32
	IndexCount    uint32
	FirstIndex    uint32
	VertexOffset  int32
	InstanceCount uint32
	FirstInstance uint32
}

// IsIndexed returns true when the draw reads from an index buffer
func (i *DrawInfo) IsIndexed() bool {
	return i.IndexCount > 0
}

type DispatchInfo struct {
	GroupCountX uint32
	GroupCountY uint32
	GroupCountZ uint32

	IndirectBuffer Buffer
	IndirectOffset uint32
}

func (i *DispatchInfo) Validate(caps *DeviceCaps) error {
	if i.IndirectBuffer != nil {
		info := i.IndirectBuffer.Info()
		if info.Usage&BufferUsageIndirect == 0 {
			return errors.Wrapf(ErrInvalidUsageCombination, "dispatch indirect buffer has usage %s", info.Usage)
		}
		if uint64(i.IndirectOffset)+12 > uint64(info.Size) {
			return errors.Newf("dispatch indirect offset %d does not leave room for a dispatch in a buffer of %d bytes", i.IndirectOffset, info.Size)
		}
		return nil
	}

	if caps == nil {
		return nil
	}

	limit := caps.MaxComputeWorkGroupCount
	if (limit.X != 0 && i.GroupCountX > limit.X) ||
		(limit.Y != 0 && i.GroupCountY > limit.Y) ||
		(limit.Z != 0 && i.GroupCountZ > limit.Z) {
		return errors.Wrapf(ErrCapacityExceeded, "dispatch of (%d, %d, %d) groups exceeds the device limit of (%d, %d, %d)",
			i.GroupCountX, i.GroupCountY, i.GroupCountZ, limit.X, limit.Y, limit.Z)
	}

	return nil
}

// IndirectBuffer is the CPU-side contents of an indirect draw buffer
type IndirectBuffer struct {
	Draws []DrawInfo
}

// Bytes returns the number of bytes the draws occupy on the device
func (b *IndirectBuffer) Bytes() uint32 {
	return uint32(len(b.Draws)) * DrawInfoSize
}

type InputAssemblerInfo struct {
	Attributes     []Attribute
	VertexBuffers  []Buffer
	IndexBuffer    Buffer
	IndirectBuffer Buffer
}

func (i *InputAssemblerInfo) Validate() error {
	if len(i.VertexBuffers) == 0 {
		return errors.New("an input assembler must have at least one vertex buffer")
	}

	for index, buffer := range i.VertexBuffers {
		if buffer == nil {
			return errors.Newf("vertex buffer %d is nil", index)
		}
		info := buffer.Info()
		if info.Usage&BufferUsageVertex == 0 {
			return errors.Wrapf(ErrInvalidUsageCombination, "vertex buffer %d has usage %s", index, info.Usage)
		}
	}

	for _, attribute := range i.Attributes {
		if attribute.Stream >= uint32(len(i.VertexBuffers)) {
			return errors.Newf("attribute %s reads from stream %d, but there are only %d vertex buffers", attribute.Name, attribute.Stream, len(i.VertexBuffers))
		}
		if attribute.Format.IsCompressed() || attribute.Format.IsDepthStencil() {
			return errors.Wrapf(ErrInvalidUsageCombination, "attribute %s cannot use format %s", attribute.Name, attribute.Format)
		}
		_, err := FormatInfoOf(attribute.Format)
		if err != nil {
			return errors.Wrapf(err, "attribute %s", attribute.Name)
		}
	}

	if i.IndexBuffer != nil {
		info := i.IndexBuffer.Info()
		if info.Usage&BufferUsageIndex == 0 {
			return errors.Wrapf(ErrInvalidUsageCombination, "index buffer has usage %s", info.Usage)
		}
	}

	if i.IndirectBuffer != nil {
		info := i.IndirectBuffer.Info()
		if info.Usage&BufferUsageIndirect == 0 {
			return errors.Wrapf(ErrInvalidUsageCombination, "indirect buffer has usage %s", info.Usage)
		}
	}

	return nil
}

// VertexStride returns the number of bytes one vertex occupies in a stream
func (i *InputAssemblerInfo) VertexStride(stream uint32) (int, error) {
	var stride int
	for _, attribute := range i.Attributes {
		if attribute.Stream != stream {
			continue
		}
		size, err := attribute.Format.Size()
		if err != nil {
			return 0, errors.Wrapf(err, "attribute %s", attribute.Name)
		}
		stride += size
	}
	return stride, nil
}
