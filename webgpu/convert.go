package webgpu

import (
	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/vkngwrapper/hal/gfx"
)

var bufferUsages = []struct {
	usage    gfx.BufferUsage
	gpuUsage gputypes.BufferUsage
}{
	{gfx.BufferUsageTransferSrc, gputypes.BufferUsageCopySrc},
	{gfx.BufferUsageTransferDst, gputypes.BufferUsageCopyDst},
	{gfx.BufferUsageIndex, gputypes.BufferUsageIndex},
	{gfx.BufferUsageVertex, gputypes.BufferUsageVertex},
	{gfx.BufferUsageUniform, gputypes.BufferUsageUniform},
	{gfx.BufferUsageStorage, gputypes.BufferUsageStorage},
	{gfx.BufferUsageIndirect, gputypes.BufferUsageIndirect},
}

// BufferUsageOf converts buffer usage flags. Buffers always accept copies so their contents
// can be written through the queue.
func BufferUsageOf(usage gfx.BufferUsage) gputypes.BufferUsage {
	gpuUsage := gputypes.BufferUsageCopyDst
	for _, mapping := range bufferUsages {
		if usage&mapping.usage != 0 {
			gpuUsage |= mapping.gpuUsage
		}
	}
	return gpuUsage
}

// TextureUsageOf converts texture usage flags. Input attachments are read as ordinary
// textures, so they need both attachment and binding usage.
func TextureUsageOf(usage gfx.TextureUsage) gputypes.TextureUsage {
	var gpuUsage gputypes.TextureUsage
	if usage&gfx.TextureUsageTransferSrc != 0 {
		gpuUsage |= gputypes.TextureUsageCopySrc
	}
	if usage&gfx.TextureUsageTransferDst != 0 {
		gpuUsage |= gputypes.TextureUsageCopyDst
	}
	if usage&(gfx.TextureUsageSampled|gfx.TextureUsageInputAttachment) != 0 {
		gpuUsage |= gputypes.TextureUsageTextureBinding
	}
	if usage&gfx.TextureUsageStorage != 0 {
		gpuUsage |= gputypes.TextureUsageStorageBinding
	}
	if usage&(gfx.TextureUsageColorAttachment|gfx.TextureUsageDepthStencilAttachment|
		gfx.TextureUsageTransientAttachment|gfx.TextureUsageInputAttachment) != 0 {
		gpuUsage |= gputypes.TextureUsageRenderAttachment
	}
	return gpuUsage
}

// ShaderStagesOf converts stage flags. WebGPU has no tessellation or geometry stages.
func ShaderStagesOf(stages gfx.ShaderStageFlags) (gputypes.ShaderStages, error) {
	unsupported := stages &^ (gfx.ShaderStageVertex | gfx.ShaderStageFragment | gfx.ShaderStageCompute)
	if unsupported != 0 {
		return gputypes.ShaderStageNone, errors.Newf("shader stages %s have no WebGPU equivalent", unsupported)
	}

	gpuStages := gputypes.ShaderStageNone
	if stages&gfx.ShaderStageVertex != 0 {
		gpuStages |= gputypes.ShaderStageVertex
	}
	if stages&gfx.ShaderStageFragment != 0 {
		gpuStages |= gputypes.ShaderStageFragment
	}
	if stages&gfx.ShaderStageCompute != 0 {
		gpuStages |= gputypes.ShaderStageCompute
	}
	return gpuStages, nil
}

// TextureDescriptorOf validates a texture info and converts it
func TextureDescriptorOf(info *gfx.TextureInfo) (gputypes.TextureDescriptor, error) {
	err := info.Validate()
	if err != nil {
		return gputypes.TextureDescriptor{}, err
	}

	format, err := TextureFormatOf(info.Format)
	if err != nil {
		return gputypes.TextureDescriptor{}, err
	}

	descriptor := gputypes.TextureDescriptor{
		Size: gputypes.Extent3D{
			Width:              info.Width,
			Height:             info.Height,
			DepthOrArrayLayers: info.LayerCount,
		},
		MipLevelCount: info.LevelCount,
		SampleCount:   uint32(info.Samples.Samples()),
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         TextureUsageOf(info.Usage),
	}

	switch info.Type {
	case gfx.TextureType1D, gfx.TextureType1DArray:
		descriptor.Dimension = gputypes.TextureDimension1D
	case gfx.TextureType3D:
		descriptor.Dimension = gputypes.TextureDimension3D
		descriptor.Size.DepthOrArrayLayers = info.Depth
	}

	return descriptor, nil
}

var addressModes = map[gfx.Address]gputypes.AddressMode{
	gfx.AddressWrap:   gputypes.AddressModeRepeat,
	gfx.AddressMirror: gputypes.AddressModeMirrorRepeat,
	gfx.AddressClamp:  gputypes.AddressModeClampToEdge,
}

var compareFunctions = map[gfx.ComparisonFunc]gputypes.CompareFunction{
	gfx.ComparisonFuncLess:         gputypes.CompareFunctionLess,
	gfx.ComparisonFuncEqual:        gputypes.CompareFunctionEqual,
	gfx.ComparisonFuncLessEqual:    gputypes.CompareFunctionLessEqual,
	gfx.ComparisonFuncGreater:      gputypes.CompareFunctionGreater,
	gfx.ComparisonFuncNotEqual:     gputypes.CompareFunctionNotEqual,
	gfx.ComparisonFuncGreaterEqual: gputypes.CompareFunctionGreaterEqual,
	gfx.ComparisonFuncAlways:       gputypes.CompareFunctionAlways,
}

func filterModeOf(filter gfx.Filter) gputypes.FilterMode {
	if filter == gfx.FilterPoint {
		return gputypes.FilterModeNearest
	}
	return gputypes.FilterModeLinear
}

// SamplerDescriptorOf validates a sampler info and converts it. WebGPU cannot sample a border
// color, so AddressBorder is rejected. ComparisonFuncNever disables comparison.
func SamplerDescriptorOf(info *gfx.SamplerInfo) (gputypes.SamplerDescriptor, error) {
	err := info.Validate()
	if err != nil {
		return gputypes.SamplerDescriptor{}, err
	}

	descriptor := gputypes.SamplerDescriptor{
		MinFilter:     filterModeOf(info.MinFilter),
		MagFilter:     filterModeOf(info.MagFilter),
		MipmapFilter:  gputypes.MipmapFilterModeLinear,
		LodMinClamp:   float32(info.MinLOD),
		LodMaxClamp:   float32(info.MaxLOD),
		Compare:       compareFunctions[info.CmpFunc],
		MaxAnisotropy: 1,
	}

	for _, address := range []struct {
		address gfx.Address
		target  *gputypes.AddressMode
	}{
		{info.AddressU, &descriptor.AddressModeU},
		{info.AddressV, &descriptor.AddressModeV},
		{info.AddressW, &descriptor.AddressModeW},
	} {
		mode, ok := addressModes[address.address]
		if !ok {
			return gputypes.SamplerDescriptor{}, errors.Newf("sampler address mode %s has no WebGPU equivalent", address.address)
		}
		*address.target = mode
	}

	switch info.MipFilter {
	case gfx.FilterNone:
		descriptor.MipmapFilter = gputypes.MipmapFilterModeNearest
		descriptor.LodMaxClamp = descriptor.LodMinClamp
	case gfx.FilterPoint:
		descriptor.MipmapFilter = gputypes.MipmapFilterModeNearest
	}

	// WebGPU requires every filter to be linear when anisotropy is enabled
	if info.MinFilter == gfx.FilterAnisotropic || info.MagFilter == gfx.FilterAnisotropic {
		descriptor.MinFilter = gputypes.FilterModeLinear
		descriptor.MagFilter = gputypes.FilterModeLinear
		descriptor.MipmapFilter = gputypes.MipmapFilterModeLinear
		descriptor.MaxAnisotropy = uint16(max(info.MaxAnisotropy, 1))
	}

	return descriptor, nil
}
