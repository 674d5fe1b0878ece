package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/khr_swapchain"
	"github.com/vkngwrapper/hal/gfx"
)

// AccessInfo is the Vulkan rendition of a single gfx.AccessType. ImageLayout is only meaningful
// for textures; buffer accesses leave it at ImageLayoutUndefined.
type AccessInfo struct {
	StageMask   core1_0.PipelineStageFlags
	AccessMask  core1_0.AccessFlags
	ImageLayout core1_0.ImageLayout
}

const fragmentTests = core1_0.PipelineStageEarlyFragmentTests | core1_0.PipelineStageLateFragmentTests

var accessInfos = [gfx.AccessTypeCount]AccessInfo{
	gfx.AccessTypeNone: {
		ImageLayout: core1_0.ImageLayoutUndefined,
	},
	gfx.AccessTypeIndirectBuffer: {
		StageMask:   core1_0.PipelineStageDrawIndirect,
		AccessMask:  core1_0.AccessIndirectCommandRead,
		ImageLayout: core1_0.ImageLayoutUndefined,
	},
	gfx.AccessTypeIndexBuffer: {
		StageMask:   core1_0.PipelineStageVertexInput,
		AccessMask:  core1_0.AccessIndexRead,
		ImageLayout: core1_0.ImageLayoutUndefined,
	},
	gfx.AccessTypeVertexBuffer: {
		StageMask:   core1_0.PipelineStageVertexInput,
		AccessMask:  core1_0.AccessVertexAttributeRead,
		ImageLayout: core1_0.ImageLayoutUndefined,
	},
	gfx.AccessTypeVertexShaderReadUniformBuffer: {
		StageMask:   core1_0.PipelineStageVertexShader,
		AccessMask:  core1_0.AccessUniformRead,
		ImageLayout: core1_0.ImageLayoutUndefined,
	},
	gfx.AccessTypeVertexShaderReadTexture: {
		StageMask:   core1_0.PipelineStageVertexShader,
		AccessMask:  core1_0.AccessShaderRead,
		ImageLayout: core1_0.ImageLayoutShaderReadOnlyOptimal,
	},
	gfx.AccessTypeVertexShaderReadOther: {
		StageMask:   core1_0.PipelineStageVertexShader,
		AccessMask:  core1_0.AccessShaderRead,
		ImageLayout: core1_0.ImageLayoutGeneral,
	},
	gfx.AccessTypeFragmentShaderReadUniformBuffer: {
		StageMask:   core1_0.PipelineStageFragmentShader,
		AccessMask:  core1_0.AccessUniformRead,
		ImageLayout: core1_0.ImageLayoutUndefined,
	},
	gfx.AccessTypeFragmentShaderReadTexture: {
		StageMask:   core1_0.PipelineStageFragmentShader,
		AccessMask:  core1_0.AccessShaderRead,
		ImageLayout: core1_0.ImageLayoutShaderReadOnlyOptimal,
	},
	gfx.AccessTypeFragmentShaderReadColorInputAttachment: {
		StageMask:   core1_0.PipelineStageFragmentShader,
		AccessMask:  core1_0.AccessInputAttachmentRead,
		ImageLayout: core1_0.ImageLayoutShaderReadOnlyOptimal,
	},
	gfx.AccessTypeFragmentShaderReadDepthStencilInputAttachment: {
		StageMask:   core1_0.PipelineStageFragmentShader,
		AccessMask:  core1_0.AccessInputAttachmentRead,
		ImageLayout: core1_0.ImageLayoutDepthStencilReadOnlyOptimal,
	},
	gfx.AccessTypeFragmentShaderReadOther: {
		StageMask:   core1_0.PipelineStageFragmentShader,
		AccessMask:  core1_0.AccessShaderRead,
		ImageLayout: core1_0.ImageLayoutGeneral,
	},
	gfx.AccessTypeColorAttachmentRead: {
		StageMask:   core1_0.PipelineStageColorAttachmentOutput,
		AccessMask:  core1_0.AccessColorAttachmentRead,
		ImageLayout: core1_0.ImageLayoutColorAttachmentOptimal,
	},
	gfx.AccessTypeDepthStencilAttachmentRead: {
		StageMask:   fragmentTests,
		AccessMask:  core1_0.AccessDepthStencilAttachmentRead,
		ImageLayout: core1_0.ImageLayoutDepthStencilReadOnlyOptimal,
	},
	gfx.AccessTypeComputeShaderReadUniformBuffer: {
		StageMask:   core1_0.PipelineStageComputeShader,
		AccessMask:  core1_0.AccessUniformRead,
		ImageLayout: core1_0.ImageLayoutUndefined,
	},
	gfx.AccessTypeComputeShaderReadTexture: {
		StageMask:   core1_0.PipelineStageComputeShader,
		AccessMask:  core1_0.AccessShaderRead,
		ImageLayout: core1_0.ImageLayoutShaderReadOnlyOptimal,
	},
	gfx.AccessTypeComputeShaderReadOther: {
		StageMask:   core1_0.PipelineStageComputeShader,
		AccessMask:  core1_0.AccessShaderRead,
		ImageLayout: core1_0.ImageLayoutGeneral,
	},
	gfx.AccessTypeTransferRead: {
		StageMask:   core1_0.PipelineStageTransfer,
		AccessMask:  core1_0.AccessTransferRead,
		ImageLayout: core1_0.ImageLayoutTransferSrcOptimal,
	},
	gfx.AccessTypeHostRead: {
		StageMask:   core1_0.PipelineStageHost,
		AccessMask:  core1_0.AccessHostRead,
		ImageLayout: core1_0.ImageLayoutGeneral,
	},
	// Presentation is ordered by the swapchain's semaphores, so it contributes no stage or access
	gfx.AccessTypePresent: {
		ImageLayout: khr_swapchain.ImageLayoutPresentSrc,
	},
	gfx.AccessTypeVertexShaderWrite: {
		StageMask:   core1_0.PipelineStageVertexShader,
		AccessMask:  core1_0.AccessShaderWrite,
		ImageLayout: core1_0.ImageLayoutGeneral,
	},
	gfx.AccessTypeFragmentShaderWrite: {
		StageMask:   core1_0.PipelineStageFragmentShader,
		AccessMask:  core1_0.AccessShaderWrite,
		ImageLayout: core1_0.ImageLayoutGeneral,
	},
	gfx.AccessTypeColorAttachmentWrite: {
		StageMask:   core1_0.PipelineStageColorAttachmentOutput,
		AccessMask:  core1_0.AccessColorAttachmentWrite,
		ImageLayout: core1_0.ImageLayoutColorAttachmentOptimal,
	},
	gfx.AccessTypeDepthStencilAttachmentWrite: {
		StageMask:   fragmentTests,
		AccessMask:  core1_0.AccessDepthStencilAttachmentWrite,
		ImageLayout: core1_0.ImageLayoutDepthStencilAttachmentOptimal,
	},
	gfx.AccessTypeComputeShaderWrite: {
		StageMask:   core1_0.PipelineStageComputeShader,
		AccessMask:  core1_0.AccessShaderWrite,
		ImageLayout: core1_0.ImageLayoutGeneral,
	},
	gfx.AccessTypeTransferWrite: {
		StageMask:   core1_0.PipelineStageTransfer,
		AccessMask:  core1_0.AccessTransferWrite,
		ImageLayout: core1_0.ImageLayoutTransferDstOptimal,
	},
	gfx.AccessTypeHostPreinitialized: {
		StageMask:   core1_0.PipelineStageHost,
		AccessMask:  core1_0.AccessHostWrite,
		ImageLayout: core1_0.ImageLayoutPreInitialized,
	},
	gfx.AccessTypeHostWrite: {
		StageMask:   core1_0.PipelineStageHost,
		AccessMask:  core1_0.AccessHostWrite,
		ImageLayout: core1_0.ImageLayoutGeneral,
	},
}

// AccessInfoOf returns the stage, access and layout a gfx.AccessType corresponds to.
// gfx.AccessTypeNone maps to an empty mask in the undefined layout.
func AccessInfoOf(access gfx.AccessType) (AccessInfo, error) {
	if access != gfx.AccessTypeNone && !access.IsValid() {
		return AccessInfo{}, errors.Newf("access type %d is not valid", access)
	}
	return accessInfos[access], nil
}
