package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/hal/gfx"
)

// CapsFromProperties fills a gfx.DeviceCaps from a physical device's limits. Vulkan clip space
// runs from 0 to 1 in depth and points Y down.
func CapsFromProperties(properties *core1_0.PhysicalDeviceProperties) (gfx.DeviceCaps, error) {
	if properties.Limits == nil {
		return gfx.DeviceCaps{}, errors.New("physical device properties did not include limits")
	}
	limits := properties.Limits

	caps := gfx.DeviceCaps{
		MaxVertexAttributes:            uint32(limits.MaxVertexInputAttributes),
		MaxVertexUniformVectors:        uint32(limits.MaxUniformBufferRange) / 16,
		MaxFragmentUniformVectors:      uint32(limits.MaxUniformBufferRange) / 16,
		MaxTextureUnits:                uint32(limits.MaxPerStageDescriptorSampledImages),
		MaxImageUnits:                  uint32(limits.MaxPerStageDescriptorStorageImages),
		MaxVertexTextureUnits:          uint32(limits.MaxPerStageDescriptorSampledImages),
		MaxColorRenderTargets:          uint32(limits.MaxColorAttachments),
		MaxShaderStorageBufferBindings: uint32(limits.MaxPerStageDescriptorStorageBuffers),
		MaxShaderStorageBlockSize:      uint32(limits.MaxStorageBufferRange),
		MaxUniformBufferBindings:       uint32(limits.MaxPerStageDescriptorUniformBuffers),
		MaxUniformBlockSize:            uint32(limits.MaxUniformBufferRange),
		MaxTextureSize:                 uint32(limits.MaxImageDimension2D),
		MaxCubeMapTextureSize:          uint32(limits.MaxImageDimensionCube),
		UBOOffsetAlignment:             uint32(limits.MinUniformBufferOffsetAlignment),
		DepthBits:                      24,
		StencilBits:                    8,
		MaxComputeSharedMemorySize:     uint32(limits.MaxComputeSharedMemorySize),
		MaxComputeWorkGroupInvocations: uint32(limits.MaxComputeWorkGroupInvocations),
		MaxComputeWorkGroupSize: gfx.Size{
			X: uint32(limits.MaxComputeWorkGroupSize[0]),
			Y: uint32(limits.MaxComputeWorkGroupSize[1]),
			Z: uint32(limits.MaxComputeWorkGroupSize[2]),
		},
		MaxComputeWorkGroupCount: gfx.Size{
			X: uint32(limits.MaxComputeWorkGroupCount[0]),
			Y: uint32(limits.MaxComputeWorkGroupCount[1]),
			Z: uint32(limits.MaxComputeWorkGroupCount[2]),
		},

		ClipSpaceMinZ:    0,
		ScreenSpaceSignY: -1,
		UVSpaceSignY:     1,
	}

	err := caps.Validate()
	if err != nil {
		return gfx.DeviceCaps{}, err
	}
	return caps, nil
}
