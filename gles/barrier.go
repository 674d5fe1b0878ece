package gles

import (
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/hal/gfx"
)

// MemoryBarrierBits are the bits passed to glMemoryBarrier and glMemoryBarrierByRegion. Values
// match the GL enumerants.
type MemoryBarrierBits int32

var memoryBarrierBitsMapping = common.NewFlagStringMapping[MemoryBarrierBits]()

func (f MemoryBarrierBits) Register(str string) {
	memoryBarrierBitsMapping.Register(f, str)
}
func (f MemoryBarrierBits) String() string {
	if f == MemoryBarrierAll {
		return "All"
	}
	return memoryBarrierBitsMapping.FlagsToString(f)
}

const MemoryBarrierNone MemoryBarrierBits = 0

const (
	MemoryBarrierVertexAttribArray MemoryBarrierBits = 1 << iota
	MemoryBarrierElementArray
	MemoryBarrierUniform
	MemoryBarrierTextureFetch
	_
	MemoryBarrierShaderImageAccess
	MemoryBarrierCommand
	MemoryBarrierPixelBuffer
	MemoryBarrierTextureUpdate
	MemoryBarrierBufferUpdate
	MemoryBarrierFramebuffer
	MemoryBarrierTransformFeedback
	MemoryBarrierAtomicCounter
	MemoryBarrierShaderStorage
)

// MemoryBarrierAll is GL_ALL_BARRIER_BITS
const MemoryBarrierAll MemoryBarrierBits = -1

// MemoryBarrierRegionBits are the only bits glMemoryBarrierByRegion accepts
const MemoryBarrierRegionBits = MemoryBarrierUniform | MemoryBarrierTextureFetch | MemoryBarrierShaderImageAccess |
	MemoryBarrierFramebuffer | MemoryBarrierAtomicCounter | MemoryBarrierShaderStorage

func init() {
	MemoryBarrierVertexAttribArray.Register("VertexAttribArray")
	MemoryBarrierElementArray.Register("ElementArray")
	MemoryBarrierUniform.Register("Uniform")
	MemoryBarrierTextureFetch.Register("TextureFetch")
	MemoryBarrierShaderImageAccess.Register("ShaderImageAccess")
	MemoryBarrierCommand.Register("Command")
	MemoryBarrierPixelBuffer.Register("PixelBuffer")
	MemoryBarrierTextureUpdate.Register("TextureUpdate")
	MemoryBarrierBufferUpdate.Register("BufferUpdate")
	MemoryBarrierFramebuffer.Register("Framebuffer")
	MemoryBarrierTransformFeedback.Register("TransformFeedback")
	MemoryBarrierAtomicCounter.Register("AtomicCounter")
	MemoryBarrierShaderStorage.Register("ShaderStorage")
}

// GLBits returns the value to pass to GL
func (f MemoryBarrierBits) GLBits() uint32 {
	return uint32(f)
}

type consumerBits struct {
	bits     MemoryBarrierBits
	byRegion bool
}

// Indexed by the access that consumes data written before the barrier
var consumerBarrierBits = [gfx.AccessTypeCount]consumerBits{
	gfx.AccessTypeIndirectBuffer:                                {MemoryBarrierCommand, false},
	gfx.AccessTypeIndexBuffer:                                   {MemoryBarrierElementArray, false},
	gfx.AccessTypeVertexBuffer:                                  {MemoryBarrierVertexAttribArray, false},
	gfx.AccessTypeVertexShaderReadUniformBuffer:                 {MemoryBarrierUniform, false},
	gfx.AccessTypeVertexShaderReadTexture:                       {MemoryBarrierTextureFetch | MemoryBarrierShaderImageAccess, false},
	gfx.AccessTypeVertexShaderReadOther:                         {MemoryBarrierShaderStorage, false},
	gfx.AccessTypeFragmentShaderReadUniformBuffer:               {MemoryBarrierUniform, true},
	gfx.AccessTypeFragmentShaderReadTexture:                     {MemoryBarrierTextureFetch | MemoryBarrierShaderImageAccess, true},
	gfx.AccessTypeFragmentShaderReadColorInputAttachment:        {MemoryBarrierTextureFetch | MemoryBarrierFramebuffer, true},
	gfx.AccessTypeFragmentShaderReadDepthStencilInputAttachment: {MemoryBarrierTextureFetch | MemoryBarrierFramebuffer, true},
	gfx.AccessTypeFragmentShaderReadOther:                       {MemoryBarrierShaderStorage, true},
	gfx.AccessTypeColorAttachmentRead:                           {MemoryBarrierFramebuffer, true},
	gfx.AccessTypeDepthStencilAttachmentRead:                    {MemoryBarrierFramebuffer, true},
	gfx.AccessTypeComputeShaderReadUniformBuffer:                {MemoryBarrierUniform, false},
	gfx.AccessTypeComputeShaderReadTexture:                      {MemoryBarrierTextureFetch | MemoryBarrierShaderImageAccess, false},
	gfx.AccessTypeComputeShaderReadOther:                        {MemoryBarrierShaderStorage, false},
	gfx.AccessTypeTransferRead:                                  {MemoryBarrierFramebuffer | MemoryBarrierTextureUpdate | MemoryBarrierBufferUpdate | MemoryBarrierPixelBuffer, false},
	gfx.AccessTypeHostRead:                                      {MemoryBarrierBufferUpdate, false},
	gfx.AccessTypePresent:                                       {MemoryBarrierFramebuffer, false},
	gfx.AccessTypeVertexShaderWrite:                             {MemoryBarrierShaderImageAccess | MemoryBarrierShaderStorage, false},
	gfx.AccessTypeFragmentShaderWrite:                           {MemoryBarrierShaderImageAccess | MemoryBarrierShaderStorage, true},
	gfx.AccessTypeColorAttachmentWrite:                          {MemoryBarrierFramebuffer, true},
	gfx.AccessTypeDepthStencilAttachmentWrite:                   {MemoryBarrierFramebuffer, true},
	gfx.AccessTypeComputeShaderWrite:                            {MemoryBarrierShaderImageAccess | MemoryBarrierShaderStorage, false},
	gfx.AccessTypeTransferWrite:                                 {MemoryBarrierFramebuffer | MemoryBarrierTextureUpdate | MemoryBarrierBufferUpdate | MemoryBarrierPixelBuffer, false},
}

// Barrier is the GL emulation of a barrier: the bits for glMemoryBarrier and the bits for
// glMemoryBarrierByRegion. Either may be empty, in which case no call is needed.
type Barrier struct {
	Bits         MemoryBarrierBits
	BitsByRegion MemoryBarrierBits
}

// IsEmpty returns true when the barrier needs no GL call at all
func (b Barrier) IsEmpty() bool {
	return b.Bits == MemoryBarrierNone && b.BitsByRegion == MemoryBarrierNone
}

// IsFullDrain returns true when the barrier waits for every outstanding write
func (b Barrier) IsFullDrain() bool {
	return b.Bits == MemoryBarrierAll
}

// GL orders attachment, transfer and host-visible writes implicitly. Only shader stores need an
// explicit barrier before other stages can observe them.
func hasIncoherentWrite(prev gfx.AccessTypeList) bool {
	for _, access := range prev {
		switch access {
		case gfx.AccessTypeVertexShaderWrite, gfx.AccessTypeFragmentShaderWrite, gfx.AccessTypeComputeShaderWrite:
			return true
		}
	}
	return false
}

func translate(prev, next gfx.AccessTypeList) Barrier {
	// Host writes to mapped memory can feed any consumer
	if prev.Contains(gfx.AccessTypeHostWrite) {
		return Barrier{Bits: MemoryBarrierAll}
	}

	if !hasIncoherentWrite(prev) {
		return Barrier{}
	}

	var barrier Barrier
	for _, access := range next {
		if !access.IsValid() {
			continue
		}
		consumer := consumerBarrierBits[access]
		if consumer.byRegion {
			barrier.BitsByRegion |= consumer.bits
		} else {
			barrier.Bits |= consumer.bits
		}
	}

	barrier.BitsByRegion &^= barrier.Bits
	return barrier
}

// TranslateGlobalBarrier returns the glMemoryBarrier calls that emulate a global barrier
func TranslateGlobalBarrier(barrier *gfx.GlobalBarrier) Barrier {
	return translate(barrier.PrevAccesses(), barrier.NextAccesses())
}

// TranslateTextureBarrier returns the glMemoryBarrier calls that emulate a texture barrier. GL
// has no image layouts or queue ownership, so only the access lists matter.
func TranslateTextureBarrier(barrier *gfx.TextureBarrier) Barrier {
	return translate(barrier.PrevAccesses(), barrier.NextAccesses())
}
