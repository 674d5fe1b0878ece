package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/hal/gfx"
)

var descriptorTypes = map[gfx.DescriptorType]core1_0.DescriptorType{
	gfx.DescriptorTypeUniformBuffer:        core1_0.DescriptorTypeUniformBuffer,
	gfx.DescriptorTypeDynamicUniformBuffer: core1_0.DescriptorTypeUniformBufferDynamic,
	gfx.DescriptorTypeStorageBuffer:        core1_0.DescriptorTypeStorageBuffer,
	gfx.DescriptorTypeDynamicStorageBuffer: core1_0.DescriptorTypeStorageBufferDynamic,
	gfx.DescriptorTypeSamplerTexture:       core1_0.DescriptorTypeCombinedImageSampler,
	gfx.DescriptorTypeSampler:              core1_0.DescriptorTypeSampler,
	gfx.DescriptorTypeTexture:              core1_0.DescriptorTypeSampledImage,
	gfx.DescriptorTypeStorageImage:         core1_0.DescriptorTypeStorageImage,
	gfx.DescriptorTypeInputAttachment:      core1_0.DescriptorTypeInputAttachment,
}

// DescriptorTypeOf converts a single descriptor type
func DescriptorTypeOf(descriptorType gfx.DescriptorType) (core1_0.DescriptorType, error) {
	vkType, ok := descriptorTypes[descriptorType]
	if !ok {
		return 0, errors.Newf("descriptor type %s has no single Vulkan equivalent", descriptorType)
	}
	return vkType, nil
}

var shaderStages = []struct {
	stage   gfx.ShaderStageFlags
	vkStage core1_0.ShaderStageFlags
}{
	{gfx.ShaderStageVertex, core1_0.StageVertex},
	{gfx.ShaderStageControl, core1_0.StageTessellationControl},
	{gfx.ShaderStageEvaluation, core1_0.StageTessellationEvaluation},
	{gfx.ShaderStageGeometry, core1_0.StageGeometry},
	{gfx.ShaderStageFragment, core1_0.StageFragment},
	{gfx.ShaderStageCompute, core1_0.StageCompute},
}

func ShaderStagesOf(stages gfx.ShaderStageFlags) core1_0.ShaderStageFlags {
	var vkStages core1_0.ShaderStageFlags
	for _, mapping := range shaderStages {
		if stages&mapping.stage != 0 {
			vkStages |= mapping.vkStage
		}
	}
	return vkStages
}

var bufferUsages = []struct {
	usage   gfx.BufferUsage
	vkUsage core1_0.BufferUsageFlags
}{
	{gfx.BufferUsageTransferSrc, core1_0.BufferUsageTransferSrc},
	{gfx.BufferUsageTransferDst, core1_0.BufferUsageTransferDst},
	{gfx.BufferUsageIndex, core1_0.BufferUsageIndexBuffer},
	{gfx.BufferUsageVertex, core1_0.BufferUsageVertexBuffer},
	{gfx.BufferUsageUniform, core1_0.BufferUsageUniformBuffer},
	{gfx.BufferUsageStorage, core1_0.BufferUsageStorageBuffer},
	{gfx.BufferUsageIndirect, core1_0.BufferUsageIndirectBuffer},
}

// BufferUsageOf converts buffer usage flags. Buffers are always created as transfer
// destinations so their contents can be updated from staging memory.
func BufferUsageOf(usage gfx.BufferUsage) core1_0.BufferUsageFlags {
	vkUsage := core1_0.BufferUsageTransferDst
	for _, mapping := range bufferUsages {
		if usage&mapping.usage != 0 {
			vkUsage |= mapping.vkUsage
		}
	}
	return vkUsage
}

var imageUsages = []struct {
	usage   gfx.TextureUsage
	vkUsage core1_0.ImageUsageFlags
}{
	{gfx.TextureUsageTransferSrc, core1_0.ImageUsageTransferSrc},
	{gfx.TextureUsageTransferDst, core1_0.ImageUsageTransferDst},
	{gfx.TextureUsageSampled, core1_0.ImageUsageSampled},
	{gfx.TextureUsageStorage, core1_0.ImageUsageStorage},
	{gfx.TextureUsageColorAttachment, core1_0.ImageUsageColorAttachment},
	{gfx.TextureUsageDepthStencilAttachment, core1_0.ImageUsageDepthStencilAttachment},
	{gfx.TextureUsageTransientAttachment, core1_0.ImageUsageTransientAttachment},
	{gfx.TextureUsageInputAttachment, core1_0.ImageUsageInputAttachment},
}

func ImageUsageOf(usage gfx.TextureUsage) core1_0.ImageUsageFlags {
	var vkUsage core1_0.ImageUsageFlags
	for _, mapping := range imageUsages {
		if usage&mapping.usage != 0 {
			vkUsage |= mapping.vkUsage
		}
	}
	return vkUsage
}

// MemoryPropertiesOf returns the memory properties a resource with the provided memory usage
// requires. Host-visible memory is always coherent so mapped writes need no flush.
func MemoryPropertiesOf(usage gfx.MemoryUsage) core1_0.MemoryPropertyFlags {
	var properties core1_0.MemoryPropertyFlags
	if usage&gfx.MemoryUsageDevice != 0 {
		properties |= core1_0.MemoryPropertyDeviceLocal
	}
	if usage&gfx.MemoryUsageHost != 0 {
		properties |= core1_0.MemoryPropertyHostVisible | core1_0.MemoryPropertyHostCoherent
	}
	return properties
}

// SamplerState holds the Vulkan enumerants a gfx.SamplerInfo translates to
type SamplerState struct {
	MinFilter        core1_0.Filter
	MagFilter        core1_0.Filter
	MipmapMode       core1_0.SamplerMipmapMode
	AddressModeU     core1_0.SamplerAddressMode
	AddressModeV     core1_0.SamplerAddressMode
	AddressModeW     core1_0.SamplerAddressMode
	AnisotropyEnable bool
	MaxAnisotropy    float32
	CompareEnable    bool
	CompareOp        core1_0.CompareOp
	MipLodBias       float32
	MinLod           float32
	MaxLod           float32
}

var addressModes = map[gfx.Address]core1_0.SamplerAddressMode{
	gfx.AddressWrap:   core1_0.SamplerAddressModeRepeat,
	gfx.AddressMirror: core1_0.SamplerAddressModeMirroredRepeat,
	gfx.AddressClamp:  core1_0.SamplerAddressModeClampToEdge,
	gfx.AddressBorder: core1_0.SamplerAddressModeClampToBorder,
}

var compareOps = map[gfx.ComparisonFunc]core1_0.CompareOp{
	gfx.ComparisonFuncNever:        core1_0.CompareOpNever,
	gfx.ComparisonFuncLess:         core1_0.CompareOpLess,
	gfx.ComparisonFuncEqual:        core1_0.CompareOpEqual,
	gfx.ComparisonFuncLessEqual:    core1_0.CompareOpLessOrEqual,
	gfx.ComparisonFuncGreater:      core1_0.CompareOpGreater,
	gfx.ComparisonFuncNotEqual:     core1_0.CompareOpNotEqual,
	gfx.ComparisonFuncGreaterEqual: core1_0.CompareOpGreaterOrEqual,
	gfx.ComparisonFuncAlways:       core1_0.CompareOpAlways,
}

func filterOf(filter gfx.Filter) core1_0.Filter {
	if filter == gfx.FilterPoint {
		return core1_0.FilterNearest
	}
	return core1_0.FilterLinear
}

// SamplerStateOf validates a sampler info and converts it
func SamplerStateOf(info *gfx.SamplerInfo) (SamplerState, error) {
	err := info.Validate()
	if err != nil {
		return SamplerState{}, err
	}

	state := SamplerState{
		MinFilter:  filterOf(info.MinFilter),
		MagFilter:  filterOf(info.MagFilter),
		MipmapMode: core1_0.SamplerMipmapModeLinear,
		CompareOp:  compareOps[info.CmpFunc],
		MipLodBias: info.MipLODBias,
		MinLod:     float32(info.MinLOD),
		MaxLod:     float32(info.MaxLOD),
	}

	for _, address := range []struct {
		address gfx.Address
		target  *core1_0.SamplerAddressMode
	}{
		{info.AddressU, &state.AddressModeU},
		{info.AddressV, &state.AddressModeV},
		{info.AddressW, &state.AddressModeW},
	} {
		mode, ok := addressModes[address.address]
		if !ok {
			return SamplerState{}, errors.Newf("sampler address mode %s has no Vulkan equivalent", address.address)
		}
		*address.target = mode
	}

	switch info.MipFilter {
	case gfx.FilterNone:
		state.MipmapMode = core1_0.SamplerMipmapModeNearest
		state.MaxLod = 0.25
	case gfx.FilterPoint:
		state.MipmapMode = core1_0.SamplerMipmapModeNearest
	}

	if info.MinFilter == gfx.FilterAnisotropic || info.MagFilter == gfx.FilterAnisotropic {
		state.AnisotropyEnable = true
		state.MaxAnisotropy = float32(info.MaxAnisotropy)
	}
	state.CompareEnable = info.CmpFunc != gfx.ComparisonFuncNever

	return state, nil
}
