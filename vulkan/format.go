package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/hal/gfx"
)

// Values are VkFormat enumerants. Luminance and alpha formats are stored in red and green
// channels and are swizzled when sampled.
var formats = map[gfx.Format]core1_0.Format{
	gfx.FormatA8:  9,  // R8_UNORM
	gfx.FormatL8:  9,  // R8_UNORM
	gfx.FormatLA8: 16, // R8G8_UNORM

	gfx.FormatR8:    9,   // R8_UNORM
	gfx.FormatR8SN:  10,  // R8_SNORM
	gfx.FormatR8UI:  13,  // R8_UINT
	gfx.FormatR8I:   14,  // R8_SINT
	gfx.FormatR16F:  76,  // R16_SFLOAT
	gfx.FormatR16UI: 74,  // R16_UINT
	gfx.FormatR16I:  75,  // R16_SINT
	gfx.FormatR32F:  100, // R32_SFLOAT
	gfx.FormatR32UI: 98,  // R32_UINT
	gfx.FormatR32I:  99,  // R32_SINT

	gfx.FormatRG8:    16,  // R8G8_UNORM
	gfx.FormatRG8SN:  17,  // R8G8_SNORM
	gfx.FormatRG8UI:  20,  // R8G8_UINT
	gfx.FormatRG8I:   21,  // R8G8_SINT
	gfx.FormatRG16F:  83,  // R16G16_SFLOAT
	gfx.FormatRG16UI: 81,  // R16G16_UINT
	gfx.FormatRG16I:  82,  // R16G16_SINT
	gfx.FormatRG32F:  103, // R32G32_SFLOAT
	gfx.FormatRG32UI: 101, // R32G32_UINT
	gfx.FormatRG32I:  102, // R32G32_SINT

	gfx.FormatRGB8:    23,  // R8G8B8_UNORM
	gfx.FormatSRGB8:   29,  // R8G8B8_SRGB
	gfx.FormatRGB8SN:  24,  // R8G8B8_SNORM
	gfx.FormatRGB8UI:  27,  // R8G8B8_UINT
	gfx.FormatRGB8I:   28,  // R8G8B8_SINT
	gfx.FormatRGB16F:  90,  // R16G16B16_SFLOAT
	gfx.FormatRGB16UI: 88,  // R16G16B16_UINT
	gfx.FormatRGB16I:  89,  // R16G16B16_SINT
	gfx.FormatRGB32F:  106, // R32G32B32_SFLOAT
	gfx.FormatRGB32UI: 104, // R32G32B32_UINT
	gfx.FormatRGB32I:  105, // R32G32B32_SINT

	gfx.FormatRGBA8:    37,  // R8G8B8A8_UNORM
	gfx.FormatBGRA8:    44,  // B8G8R8A8_UNORM
	gfx.FormatSRGB8A8:  43,  // R8G8B8A8_SRGB
	gfx.FormatRGBA8SN:  38,  // R8G8B8A8_SNORM
	gfx.FormatRGBA8UI:  41,  // R8G8B8A8_UINT
	gfx.FormatRGBA8I:   42,  // R8G8B8A8_SINT
	gfx.FormatRGBA16F:  97,  // R16G16B16A16_SFLOAT
	gfx.FormatRGBA16UI: 95,  // R16G16B16A16_UINT
	gfx.FormatRGBA16I:  96,  // R16G16B16A16_SINT
	gfx.FormatRGBA32F:  109, // R32G32B32A32_SFLOAT
	gfx.FormatRGBA32UI: 107, // R32G32B32A32_UINT
	gfx.FormatRGBA32I:  108, // R32G32B32A32_SINT

	gfx.FormatR5G6B5:     4,   // R5G6B5_UNORM_PACK16
	gfx.FormatR11G11B10F: 122, // B10G11R11_UFLOAT_PACK32
	gfx.FormatRGB5A1:     6,   // R5G5B5A1_UNORM_PACK16
	gfx.FormatRGBA4:      2,   // R4G4B4A4_UNORM_PACK16
	gfx.FormatRGB10A2:    64,  // A2B10G10R10_UNORM_PACK32
	gfx.FormatRGB10A2UI:  68,  // A2B10G10R10_UINT_PACK32
	gfx.FormatRGB9E5:     123, // E5B9G9R9_UFLOAT_PACK32

	gfx.FormatD16:    124, // D16_UNORM
	gfx.FormatD16S8:  128, // D16_UNORM_S8_UINT
	gfx.FormatD24:    125, // X8_D24_UNORM_PACK32
	gfx.FormatD24S8:  129, // D24_UNORM_S8_UINT
	gfx.FormatD32F:   126, // D32_SFLOAT
	gfx.FormatD32FS8: 130, // D32_SFLOAT_S8_UINT

	gfx.FormatBC1:          131, // BC1_RGB_UNORM_BLOCK
	gfx.FormatBC1Alpha:     133, // BC1_RGBA_UNORM_BLOCK
	gfx.FormatBC1SRGB:      132, // BC1_RGB_SRGB_BLOCK
	gfx.FormatBC1SRGBAlpha: 134, // BC1_RGBA_SRGB_BLOCK
	gfx.FormatBC2:          135, // BC2_UNORM_BLOCK
	gfx.FormatBC2SRGB:      136, // BC2_SRGB_BLOCK
	gfx.FormatBC3:          137, // BC3_UNORM_BLOCK
	gfx.FormatBC3SRGB:      138, // BC3_SRGB_BLOCK
	gfx.FormatBC4:          139, // BC4_UNORM_BLOCK
	gfx.FormatBC4SNorm:     140, // BC4_SNORM_BLOCK
	gfx.FormatBC5:          141, // BC5_UNORM_BLOCK
	gfx.FormatBC5SNorm:     142, // BC5_SNORM_BLOCK
	gfx.FormatBC6HUF16:     143, // BC6H_UFLOAT_BLOCK
	gfx.FormatBC6HSF16:     144, // BC6H_SFLOAT_BLOCK
	gfx.FormatBC7:          145, // BC7_UNORM_BLOCK
	gfx.FormatBC7SRGB:      146, // BC7_SRGB_BLOCK

	gfx.FormatETCRGB8:     147, // ETC2_R8G8B8_UNORM_BLOCK
	gfx.FormatETC2RGB8:    147, // ETC2_R8G8B8_UNORM_BLOCK
	gfx.FormatETC2SRGB8:   148, // ETC2_R8G8B8_SRGB_BLOCK
	gfx.FormatETC2RGB8A1:  149, // ETC2_R8G8B8A1_UNORM_BLOCK
	gfx.FormatETC2SRGB8A1: 150, // ETC2_R8G8B8A1_SRGB_BLOCK
	gfx.FormatETC2RGBA8:   151, // ETC2_R8G8B8A8_UNORM_BLOCK
	gfx.FormatETC2SRGB8A8: 152, // ETC2_R8G8B8A8_SRGB_BLOCK
	gfx.FormatEACR11:      153, // EAC_R11_UNORM_BLOCK
	gfx.FormatEACR11SN:    154, // EAC_R11_SNORM_BLOCK
	gfx.FormatEACRG11:     155, // EAC_R11G11_UNORM_BLOCK
	gfx.FormatEACRG11SN:   156, // EAC_R11G11_SNORM_BLOCK

	gfx.FormatPVRTCRGB2:  1000054000, // PVRTC1_2BPP_UNORM_BLOCK_IMG
	gfx.FormatPVRTCRGBA2: 1000054000, // PVRTC1_2BPP_UNORM_BLOCK_IMG
	gfx.FormatPVRTCRGB4:  1000054001, // PVRTC1_4BPP_UNORM_BLOCK_IMG
	gfx.FormatPVRTCRGBA4: 1000054001, // PVRTC1_4BPP_UNORM_BLOCK_IMG
	gfx.FormatPVRTC2Bpp2: 1000054002, // PVRTC2_2BPP_UNORM_BLOCK_IMG
	gfx.FormatPVRTC2Bpp4: 1000054003, // PVRTC2_4BPP_UNORM_BLOCK_IMG

	gfx.FormatASTCRGBA4x4:   157,
	gfx.FormatASTCRGBA5x4:   159,
	gfx.FormatASTCRGBA5x5:   161,
	gfx.FormatASTCRGBA6x5:   163,
	gfx.FormatASTCRGBA6x6:   165,
	gfx.FormatASTCRGBA8x5:   167,
	gfx.FormatASTCRGBA8x6:   169,
	gfx.FormatASTCRGBA8x8:   171,
	gfx.FormatASTCRGBA10x5:  173,
	gfx.FormatASTCRGBA10x6:  175,
	gfx.FormatASTCRGBA10x8:  177,
	gfx.FormatASTCRGBA10x10: 179,
	gfx.FormatASTCRGBA12x10: 181,
	gfx.FormatASTCRGBA12x12: 183,

	// Each SRGB ASTC enumerant directly follows its UNORM counterpart
	gfx.FormatASTCSRGBA4x4:   158,
	gfx.FormatASTCSRGBA5x4:   160,
	gfx.FormatASTCSRGBA5x5:   162,
	gfx.FormatASTCSRGBA6x5:   164,
	gfx.FormatASTCSRGBA6x6:   166,
	gfx.FormatASTCSRGBA8x5:   168,
	gfx.FormatASTCSRGBA8x6:   170,
	gfx.FormatASTCSRGBA8x8:   172,
	gfx.FormatASTCSRGBA10x5:  174,
	gfx.FormatASTCSRGBA10x6:  176,
	gfx.FormatASTCSRGBA10x8:  178,
	gfx.FormatASTCSRGBA10x10: 180,
	gfx.FormatASTCSRGBA12x10: 182,
	gfx.FormatASTCSRGBA12x12: 184,
}

// FormatOf returns the Vulkan format a gfx.Format is stored as
func FormatOf(format gfx.Format) (core1_0.Format, error) {
	vkFormat, ok := formats[format]
	if !ok {
		return core1_0.FormatUndefined, errors.Wrapf(gfx.ErrInvalidFormat, "format %s has no Vulkan equivalent", format)
	}
	return vkFormat, nil
}
