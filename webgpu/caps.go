package webgpu

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/vkngwrapper/hal/gfx"
)

func clampUint32(value uint64) uint32 {
	return uint32(min(value, math.MaxUint32))
}

// CapsFromLimits fills a gfx.DeviceCaps from an adapter's limits. WebGPU clip space runs from 0
// to 1 in depth, and framebuffer and texture coordinates both start at the top left.
func CapsFromLimits(limits *gputypes.Limits) (gfx.DeviceCaps, error) {
	if limits == nil {
		return gfx.DeviceCaps{}, errors.New("adapter limits were nil")
	}

	uniformBlockSize := clampUint32(limits.MaxUniformBufferBindingSize)
	caps := gfx.DeviceCaps{
		MaxVertexAttributes:            limits.MaxVertexAttributes,
		MaxVertexUniformVectors:        uniformBlockSize / 16,
		MaxFragmentUniformVectors:      uniformBlockSize / 16,
		MaxTextureUnits:                limits.MaxSampledTexturesPerShaderStage,
		MaxImageUnits:                  limits.MaxStorageTexturesPerShaderStage,
		MaxVertexTextureUnits:          limits.MaxSampledTexturesPerShaderStage,
		MaxColorRenderTargets:          limits.MaxColorAttachments,
		MaxShaderStorageBufferBindings: limits.MaxStorageBuffersPerShaderStage,
		MaxShaderStorageBlockSize:      clampUint32(limits.MaxStorageBufferBindingSize),
		MaxUniformBufferBindings:       limits.MaxUniformBuffersPerShaderStage,
		MaxUniformBlockSize:            uniformBlockSize,
		MaxTextureSize:                 limits.MaxTextureDimension2D,
		MaxCubeMapTextureSize:          limits.MaxTextureDimension2D,
		UBOOffsetAlignment:             limits.MinUniformBufferOffsetAlignment,
		DepthBits:                      24,
		StencilBits:                    8,
		MaxComputeSharedMemorySize:     limits.MaxComputeWorkgroupStorageSize,
		MaxComputeWorkGroupInvocations: limits.MaxComputeInvocationsPerWorkgroup,
		MaxComputeWorkGroupSize: gfx.Size{
			X: limits.MaxComputeWorkgroupSizeX,
			Y: limits.MaxComputeWorkgroupSizeY,
			Z: limits.MaxComputeWorkgroupSizeZ,
		},
		MaxComputeWorkGroupCount: gfx.Size{
			X: limits.MaxComputeWorkgroupsPerDimension,
			Y: limits.MaxComputeWorkgroupsPerDimension,
			Z: limits.MaxComputeWorkgroupsPerDimension,
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
