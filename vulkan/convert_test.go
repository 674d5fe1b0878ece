package vulkan

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/hal/gfx"
)

func TestFormatOfComplete(t *testing.T) {
	for format := gfx.FormatUnknown + 1; format < gfx.FormatCount; format++ {
		vkFormat, err := FormatOf(format)
		require.NoError(t, err, format.String())
		require.NotEqual(t, core1_0.FormatUndefined, vkFormat, format.String())
	}
}

func TestFormatOf(t *testing.T) {
	vkFormat, err := FormatOf(gfx.FormatRGBA8)
	require.NoError(t, err)
	require.Equal(t, core1_0.Format(37), vkFormat)

	vkFormat, err = FormatOf(gfx.FormatD24S8)
	require.NoError(t, err)
	require.Equal(t, core1_0.Format(129), vkFormat)

	compressed := map[gfx.Format]core1_0.Format{
		gfx.FormatBC1Alpha:     133,
		gfx.FormatBC1SRGBAlpha: 134,
		gfx.FormatBC4SNorm:     140,
		gfx.FormatBC5SNorm:     142,
	}
	for format, expected := range compressed {
		vkFormat, err = FormatOf(format)
		require.NoError(t, err, format.String())
		require.Equal(t, expected, vkFormat, format.String())
	}

	_, err = FormatOf(gfx.FormatUnknown)
	require.ErrorIs(t, err, gfx.ErrInvalidFormat)
}

func TestDescriptorTypeOf(t *testing.T) {
	testCases := map[gfx.DescriptorType]core1_0.DescriptorType{
		gfx.DescriptorTypeUniformBuffer:        core1_0.DescriptorTypeUniformBuffer,
		gfx.DescriptorTypeDynamicStorageBuffer: core1_0.DescriptorTypeStorageBufferDynamic,
		gfx.DescriptorTypeSamplerTexture:       core1_0.DescriptorTypeCombinedImageSampler,
		gfx.DescriptorTypeTexture:              core1_0.DescriptorTypeSampledImage,
		gfx.DescriptorTypeInputAttachment:      core1_0.DescriptorTypeInputAttachment,
	}

	for descriptorType, expected := range testCases {
		t.Run(descriptorType.String(), func(t *testing.T) {
			vkType, err := DescriptorTypeOf(descriptorType)
			require.NoError(t, err)
			require.Equal(t, expected, vkType)
		})
	}

	_, err := DescriptorTypeOf(gfx.DescriptorTypeUniformBuffer | gfx.DescriptorTypeSampler)
	require.Error(t, err)
}

func TestFlagConversions(t *testing.T) {
	require.Equal(t, core1_0.StageVertex|core1_0.StageFragment,
		ShaderStagesOf(gfx.ShaderStageVertex|gfx.ShaderStageFragment))
	require.Equal(t, core1_0.ShaderStageFlags(0), ShaderStagesOf(gfx.ShaderStageNone))

	require.Equal(t, core1_0.BufferUsageTransferDst|core1_0.BufferUsageUniformBuffer,
		BufferUsageOf(gfx.BufferUsageUniform))
	require.Equal(t, core1_0.BufferUsageTransferDst|core1_0.BufferUsageVertexBuffer|core1_0.BufferUsageIndirectBuffer,
		BufferUsageOf(gfx.BufferUsageVertex|gfx.BufferUsageIndirect))

	require.Equal(t, core1_0.ImageUsageSampled|core1_0.ImageUsageColorAttachment,
		ImageUsageOf(gfx.TextureUsageSampled|gfx.TextureUsageColorAttachment))

	require.Equal(t, core1_0.MemoryPropertyDeviceLocal, MemoryPropertiesOf(gfx.MemoryUsageDevice))
	require.Equal(t, core1_0.MemoryPropertyHostVisible|core1_0.MemoryPropertyHostCoherent, MemoryPropertiesOf(gfx.MemoryUsageHost))
}

func TestSamplerStateOf(t *testing.T) {
	info := gfx.DefaultSamplerInfo()
	info.AddressU = gfx.AddressClamp
	info.AddressV = gfx.AddressMirror
	info.AddressW = gfx.AddressBorder

	state, err := SamplerStateOf(&info)
	require.NoError(t, err)
	require.Equal(t, core1_0.FilterLinear, state.MinFilter)
	require.Equal(t, core1_0.SamplerMipmapModeNearest, state.MipmapMode)
	require.Equal(t, float32(0.25), state.MaxLod)
	require.Equal(t, core1_0.SamplerAddressModeClampToEdge, state.AddressModeU)
	require.Equal(t, core1_0.SamplerAddressModeMirroredRepeat, state.AddressModeV)
	require.Equal(t, core1_0.SamplerAddressModeClampToBorder, state.AddressModeW)
	require.False(t, state.AnisotropyEnable)
	require.False(t, state.CompareEnable)

	info = gfx.DefaultSamplerInfo()
	info.MinFilter = gfx.FilterAnisotropic
	info.MagFilter = gfx.FilterPoint
	info.MipFilter = gfx.FilterLinear
	info.MaxAnisotropy = 8
	info.CmpFunc = gfx.ComparisonFuncLessEqual

	state, err = SamplerStateOf(&info)
	require.NoError(t, err)
	require.Equal(t, core1_0.FilterNearest, state.MagFilter)
	require.Equal(t, core1_0.SamplerMipmapModeLinear, state.MipmapMode)
	require.Equal(t, float32(1000), state.MaxLod)
	require.True(t, state.AnisotropyEnable)
	require.Equal(t, float32(8), state.MaxAnisotropy)
	require.True(t, state.CompareEnable)
	require.Equal(t, core1_0.CompareOpLessOrEqual, state.CompareOp)

	info.MipFilter = gfx.FilterAnisotropic
	_, err = SamplerStateOf(&info)
	require.ErrorIs(t, err, gfx.ErrInvalidUsageCombination)
}
