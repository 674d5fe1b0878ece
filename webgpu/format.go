package webgpu

import (
	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/vkngwrapper/hal/gfx"
)

// WebGPU has no three-channel, luminance, 4-bit packed or PVRTC formats. Those are absent from
// the table.
var textureFormats = map[gfx.Format]gputypes.TextureFormat{
	gfx.FormatR8:    gputypes.TextureFormatR8Unorm,
	gfx.FormatR8SN:  gputypes.TextureFormatR8Snorm,
	gfx.FormatR8UI:  gputypes.TextureFormatR8Uint,
	gfx.FormatR8I:   gputypes.TextureFormatR8Sint,
	gfx.FormatR16F:  gputypes.TextureFormatR16Float,
	gfx.FormatR16UI: gputypes.TextureFormatR16Uint,
	gfx.FormatR16I:  gputypes.TextureFormatR16Sint,
	gfx.FormatR32F:  gputypes.TextureFormatR32Float,
	gfx.FormatR32UI: gputypes.TextureFormatR32Uint,
	gfx.FormatR32I:  gputypes.TextureFormatR32Sint,

	gfx.FormatRG8:    gputypes.TextureFormatRG8Unorm,
	gfx.FormatRG8SN:  gputypes.TextureFormatRG8Snorm,
	gfx.FormatRG8UI:  gputypes.TextureFormatRG8Uint,
	gfx.FormatRG8I:   gputypes.TextureFormatRG8Sint,
	gfx.FormatRG16F:  gputypes.TextureFormatRG16Float,
	gfx.FormatRG16UI: gputypes.TextureFormatRG16Uint,
	gfx.FormatRG16I:  gputypes.TextureFormatRG16Sint,
	gfx.FormatRG32F:  gputypes.TextureFormatRG32Float,
	gfx.FormatRG32UI: gputypes.TextureFormatRG32Uint,
	gfx.FormatRG32I:  gputypes.TextureFormatRG32Sint,

	gfx.FormatRGBA8:    gputypes.TextureFormatRGBA8Unorm,
	gfx.FormatBGRA8:    gputypes.TextureFormatBGRA8Unorm,
	gfx.FormatSRGB8A8:  gputypes.TextureFormatRGBA8UnormSrgb,
	gfx.FormatRGBA8SN:  gputypes.TextureFormatRGBA8Snorm,
	gfx.FormatRGBA8UI:  gputypes.TextureFormatRGBA8Uint,
	gfx.FormatRGBA8I:   gputypes.TextureFormatRGBA8Sint,
	gfx.FormatRGBA16F:  gputypes.TextureFormatRGBA16Float,
	gfx.FormatRGBA16UI: gputypes.TextureFormatRGBA16Uint,
	gfx.FormatRGBA16I:  gputypes.TextureFormatRGBA16Sint,
	gfx.FormatRGBA32F:  gputypes.TextureFormatRGBA32Float,
	gfx.FormatRGBA32UI: gputypes.TextureFormatRGBA32Uint,
	gfx.FormatRGBA32I:  gputypes.TextureFormatRGBA32Sint,

	gfx.FormatR11G11B10F: gputypes.TextureFormatRG11B10Ufloat,
	gfx.FormatRGB10A2:    gputypes.TextureFormatRGB10A2Unorm,
	gfx.FormatRGB10A2UI:  gputypes.TextureFormatRGB10A2Uint,
	gfx.FormatRGB9E5:     gputypes.TextureFormatRGB9E5Ufloat,

	gfx.FormatD16:    gputypes.TextureFormatDepth16Unorm,
	gfx.FormatD24:    gputypes.TextureFormatDepth24Plus,
	gfx.FormatD24S8:  gputypes.TextureFormatDepth24PlusStencil8,
	gfx.FormatD32F:   gputypes.TextureFormatDepth32Float,
	gfx.FormatD32FS8: gputypes.TextureFormatDepth32FloatStencil8,

	gfx.FormatBC1Alpha:     gputypes.TextureFormatBC1RGBAUnorm,
	gfx.FormatBC1SRGBAlpha: gputypes.TextureFormatBC1RGBAUnormSrgb,
	gfx.FormatBC2:          gputypes.TextureFormatBC2RGBAUnorm,
	gfx.FormatBC2SRGB:      gputypes.TextureFormatBC2RGBAUnormSrgb,
	gfx.FormatBC3:          gputypes.TextureFormatBC3RGBAUnorm,
	gfx.FormatBC3SRGB:      gputypes.TextureFormatBC3RGBAUnormSrgb,
	gfx.FormatBC4:          gputypes.TextureFormatBC4RUnorm,
	gfx.FormatBC4SNorm:     gputypes.TextureFormatBC4RSnorm,
	gfx.FormatBC5:          gputypes.TextureFormatBC5RGUnorm,
	gfx.FormatBC5SNorm:     gputypes.TextureFormatBC5RGSnorm,
	gfx.FormatBC6HUF16:     gputypes.TextureFormatBC6HRGBUfloat,
	gfx.FormatBC6HSF16:     gputypes.TextureFormatBC6HRGBFloat,
	gfx.FormatBC7:          gputypes.TextureFormatBC7RGBAUnorm,
	gfx.FormatBC7SRGB:      gputypes.TextureFormatBC7RGBAUnormSrgb,

	gfx.FormatETC2RGB8:    gputypes.TextureFormatETC2RGB8Unorm,
	gfx.FormatETC2SRGB8:   gputypes.TextureFormatETC2RGB8UnormSrgb,
	gfx.FormatETC2RGB8A1:  gputypes.TextureFormatETC2RGB8A1Unorm,
	gfx.FormatETC2SRGB8A1: gputypes.TextureFormatETC2RGB8A1UnormSrgb,
	gfx.FormatETC2RGBA8:   gputypes.TextureFormatETC2RGBA8Unorm,
	gfx.FormatETC2SRGB8A8: gputypes.TextureFormatETC2RGBA8UnormSrgb,
	gfx.FormatEACR11:      gputypes.TextureFormatEACR11Unorm,
	gfx.FormatEACR11SN:    gputypes.TextureFormatEACR11Snorm,
	gfx.FormatEACRG11:     gputypes.TextureFormatEACRG11Unorm,
	gfx.FormatEACRG11SN:   gputypes.TextureFormatEACRG11Snorm,

	gfx.FormatASTCRGBA4x4:   gputypes.TextureFormatASTC4x4Unorm,
	gfx.FormatASTCRGBA5x4:   gputypes.TextureFormatASTC5x4Unorm,
	gfx.FormatASTCRGBA5x5:   gputypes.TextureFormatASTC5x5Unorm,
	gfx.FormatASTCRGBA6x5:   gputypes.TextureFormatASTC6x5Unorm,
	gfx.FormatASTCRGBA6x6:   gputypes.TextureFormatASTC6x6Unorm,
	gfx.FormatASTCRGBA8x5:   gputypes.TextureFormatASTC8x5Unorm,
	gfx.FormatASTCRGBA8x6:   gputypes.TextureFormatASTC8x6Unorm,
	gfx.FormatASTCRGBA8x8:   gputypes.TextureFormatASTC8x8Unorm,
	gfx.FormatASTCRGBA10x5:  gputypes.TextureFormatASTC10x5Unorm,
	gfx.FormatASTCRGBA10x6:  gputypes.TextureFormatASTC10x6Unorm,
	gfx.FormatASTCRGBA10x8:  gputypes.TextureFormatASTC10x8Unorm,
	gfx.FormatASTCRGBA10x10: gputypes.TextureFormatASTC10x10Unorm,
	gfx.FormatASTCRGBA12x10: gputypes.TextureFormatASTC12x10Unorm,
	gfx.FormatASTCRGBA12x12: gputypes.TextureFormatASTC12x12Unorm,

	gfx.FormatASTCSRGBA4x4:   gputypes.TextureFormatASTC4x4UnormSrgb,
	gfx.FormatASTCSRGBA5x4:   gputypes.TextureFormatASTC5x4UnormSrgb,
	gfx.FormatASTCSRGBA5x5:   gputypes.TextureFormatASTC5x5UnormSrgb,
	gfx.FormatASTCSRGBA6x5:   gputypes.TextureFormatASTC6x5UnormSrgb,
	gfx.FormatASTCSRGBA6x6:   gputypes.TextureFormatASTC6x6UnormSrgb,
	gfx.FormatASTCSRGBA8x5:   gputypes.TextureFormatASTC8x5UnormSrgb,
	gfx.FormatASTCSRGBA8x6:   gputypes.TextureFormatASTC8x6UnormSrgb,
	gfx.FormatASTCSRGBA8x8:   gputypes.TextureFormatASTC8x8UnormSrgb,
	gfx.FormatASTCSRGBA10x5:  gputypes.TextureFormatASTC10x5UnormSrgb,
	gfx.FormatASTCSRGBA10x6:  gputypes.TextureFormatASTC10x6UnormSrgb,
	gfx.FormatASTCSRGBA10x8:  gputypes.TextureFormatASTC10x8UnormSrgb,
	gfx.FormatASTCSRGBA10x10: gputypes.TextureFormatASTC10x10UnormSrgb,
	gfx.FormatASTCSRGBA12x10: gputypes.TextureFormatASTC12x10UnormSrgb,
	gfx.FormatASTCSRGBA12x12: gputypes.TextureFormatASTC12x12UnormSrgb,
}

var formatsByTextureFormat = make(map[gputypes.TextureFormat]gfx.Format, len(textureFormats))

func init() {
	for format, textureFormat := range textureFormats {
		formatsByTextureFormat[textureFormat] = format
	}
}

// TextureFormatOf returns the WebGPU texture format a gfx.Format is stored as
func TextureFormatOf(format gfx.Format) (gputypes.TextureFormat, error) {
	textureFormat, ok := textureFormats[format]
	if !ok {
		return gputypes.TextureFormatUndefined, errors.Wrapf(gfx.ErrInvalidFormat, "format %s has no WebGPU equivalent", format)
	}
	return textureFormat, nil
}

// FormatOf returns the gfx.Format a WebGPU texture format corresponds to, such as the preferred
// format of a canvas
func FormatOf(textureFormat gputypes.TextureFormat) (gfx.Format, error) {
	format, ok := formatsByTextureFormat[textureFormat]
	if !ok {
		return gfx.FormatUnknown, errors.Wrapf(gfx.ErrInvalidFormat, "texture format %s has no gfx equivalent", textureFormat)
	}
	return format, nil
}

// SampleTypeOf returns the sample type a texture of the given format is bound with
func SampleTypeOf(format gfx.Format) (gputypes.TextureSampleType, error) {
	info, err := gfx.FormatInfoOf(format)
	if err != nil {
		return gputypes.TextureSampleTypeUndefined, err
	}

	switch {
	case info.HasDepth:
		return gputypes.TextureSampleTypeDepth, nil
	case info.Type == gfx.FormatTypeUInt:
		return gputypes.TextureSampleTypeUint, nil
	case info.Type == gfx.FormatTypeInt:
		return gputypes.TextureSampleTypeSint, nil
	case format == gfx.FormatR32F || format == gfx.FormatRG32F || format == gfx.FormatRGBA32F:
		return gputypes.TextureSampleTypeUnfilterableFloat, nil
	}

	return gputypes.TextureSampleTypeFloat, nil
}
