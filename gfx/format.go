package gfx

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/hal/internal/utils"
)

// Format identifies the texel layout of a texture, texture view or vertex attribute
type Format uint32

const (
	FormatUnknown Format = iota

	FormatA8
	FormatL8
	FormatLA8

	FormatR8
	FormatR8SN
	FormatR8UI
	FormatR8I
	FormatR16F
	FormatR16UI
	FormatR16I
	FormatR32F
	FormatR32UI
	FormatR32I

	FormatRG8
	FormatRG8SN
	FormatRG8UI
	FormatRG8I
	FormatRG16F
	FormatRG16UI
	FormatRG16I
	FormatRG32F
	FormatRG32UI
	FormatRG32I

	FormatRGB8
	FormatSRGB8
	FormatRGB8SN
	FormatRGB8UI
	FormatRGB8I
	FormatRGB16F
	FormatRGB16UI
	FormatRGB16I
	FormatRGB32F
	FormatRGB32UI
	FormatRGB32I

	FormatRGBA8
	FormatBGRA8
	FormatSRGB8A8
	FormatRGBA8SN
	FormatRGBA8UI
	FormatRGBA8I
	FormatRGBA16F
	FormatRGBA16UI
	FormatRGBA16I
	FormatRGBA32F
	FormatRGBA32UI
	FormatRGBA32I

	FormatR5G6B5
	FormatR11G11B10F
	FormatRGB5A1
	FormatRGBA4
	FormatRGB10A2
	FormatRGB10A2UI
	FormatRGB9E5

	FormatD16
	FormatD16S8
	FormatD24
	FormatD24S8
	FormatD32F
	FormatD32FS8

	FormatBC1
	FormatBC1Alpha
	FormatBC1SRGB
	FormatBC1SRGBAlpha
	FormatBC2
	FormatBC2SRGB
	FormatBC3
	FormatBC3SRGB
	FormatBC4
	FormatBC4SNorm
	FormatBC5
	FormatBC5SNorm
	FormatBC6HUF16
	FormatBC6HSF16
	FormatBC7
	FormatBC7SRGB

	FormatETCRGB8
	FormatETC2RGB8
	FormatETC2SRGB8
	FormatETC2RGB8A1
	FormatETC2SRGB8A1
	FormatETC2RGBA8
	FormatETC2SRGB8A8
	FormatEACR11
	FormatEACR11SN
	FormatEACRG11
	FormatEACRG11SN

	FormatPVRTCRGB2
	FormatPVRTCRGBA2
	FormatPVRTCRGB4
	FormatPVRTCRGBA4
	FormatPVRTC2Bpp2
	FormatPVRTC2Bpp4

	FormatASTCRGBA4x4
	FormatASTCRGBA5x4
	FormatASTCRGBA5x5
	FormatASTCRGBA6x5
	FormatASTCRGBA6x6
	FormatASTCRGBA8x5
	FormatASTCRGBA8x6
	FormatASTCRGBA8x8
	FormatASTCRGBA10x5
	FormatASTCRGBA10x6
	FormatASTCRGBA10x8
	FormatASTCRGBA10x10
	FormatASTCRGBA12x10
	FormatASTCRGBA12x12

	FormatASTCSRGBA4x4
	FormatASTCSRGBA5x4
	FormatASTCSRGBA5x5
	FormatASTCSRGBA6x5
	FormatASTCSRGBA6x6
	FormatASTCSRGBA8x5
	FormatASTCSRGBA8x6
	FormatASTCSRGBA8x8
	FormatASTCSRGBA10x5
	FormatASTCSRGBA10x6
	FormatASTCSRGBA10x8
	FormatASTCSRGBA10x10
	FormatASTCSRGBA12x10
	FormatASTCSRGBA12x12

	// FormatCount is one past the last valid format
	FormatCount
)

// FormatType is the numeric interpretation of a format's channels
type FormatType int32

const (
	FormatTypeNone FormatType = iota
	FormatTypeUNorm
	FormatTypeSNorm
	FormatTypeUInt
	FormatTypeInt
	FormatTypeUFloat
	FormatTypeFloat
)

var formatTypeStrings = map[FormatType]string{
	FormatTypeNone:   "None",
	FormatTypeUNorm:  "UNorm",
	FormatTypeSNorm:  "SNorm",
	FormatTypeUInt:   "UInt",
	FormatTypeInt:    "Int",
	FormatTypeUFloat: "UFloat",
	FormatTypeFloat:  "Float",
}

func (t FormatType) String() string {
	str, ok := formatTypeStrings[t]
	if !ok {
		return "unknown FormatType"
	}
	return str
}

// FormatInfo describes the layout of a single format
type FormatInfo struct {
	Name string
	// Size is the number of bytes in a single texel, or in a single block for compressed formats
	Size  int
	Count int
	Type  FormatType

	HasAlpha     bool
	HasDepth     bool
	HasStencil   bool
	IsCompressed bool

	// BlockWidth and BlockHeight are the texel dimensions of a compression block. They are 1
	// for uncompressed formats.
	BlockWidth  int
	BlockHeight int

	// PVRTC1 surfaces are never smaller than 2x2 blocks
	minBlocksX int
	minBlocksY int
}

func color(name string, size, count int, formatType FormatType, hasAlpha bool) FormatInfo {
	return FormatInfo{
		Name:        name,
		Size:        size,
		Count:       count,
		Type:        formatType,
		HasAlpha:    hasAlpha,
		BlockWidth:  1,
		BlockHeight: 1,
		minBlocksX:  1,
		minBlocksY:  1,
	}
}

func depthStencil(name string, size, count int, formatType FormatType, hasStencil bool) FormatInfo {
	info := color(name, size, count, formatType, false)
	info.HasDepth = true
	info.HasStencil = hasStencil
	return info
}

func block(name string, blockBytes, count int, formatType FormatType, hasAlpha bool, width, height int) FormatInfo {
	return FormatInfo{
		Name:         name,
		Size:         blockBytes,
		Count:        count,
		Type:         formatType,
		HasAlpha:     hasAlpha,
		IsCompressed: true,
		BlockWidth:   width,
		BlockHeight:  height,
		minBlocksX:   1,
		minBlocksY:   1,
	}
}

func pvrtc(name string, count int, hasAlpha bool, width int) FormatInfo {
	info := block(name, 8, count, FormatTypeUNorm, hasAlpha, width, 4)
	info.minBlocksX = 2
	info.minBlocksY = 2
	return info
}

func astc(name string, width, height int) FormatInfo {
	return block(name, 16, 4, FormatTypeUNorm, true, width, height)
}

var formatInfos = [FormatCount]FormatInfo{
	FormatUnknown: {Name: "UNKNOWN"},

	FormatA8:  color("A8", 1, 1, FormatTypeUNorm, true),
	FormatL8:  color("L8", 1, 1, FormatTypeUNorm, false),
	FormatLA8: color("LA8", 1, 2, FormatTypeUNorm, true),

	FormatR8:    color("R8", 1, 1, FormatTypeUNorm, false),
	FormatR8SN:  color("R8SN", 1, 1, FormatTypeSNorm, false),
	FormatR8UI:  color("R8UI", 1, 1, FormatTypeUInt, false),
	FormatR8I:   color("R8I", 1, 1, FormatTypeInt, false),
	FormatR16F:  color("R16F", 2, 1, FormatTypeFloat, false),
	FormatR16UI: color("R16UI", 2, 1, FormatTypeUInt, false),
	FormatR16I:  color("R16I", 2, 1, FormatTypeInt, false),
	FormatR32F:  color("R32F", 4, 1, FormatTypeFloat, false),
	FormatR32UI: color("R32UI", 4, 1, FormatTypeUInt, false),
	FormatR32I:  color("R32I", 4, 1, FormatTypeInt, false),

	FormatRG8:    color("RG8", 2, 2, FormatTypeUNorm, false),
	FormatRG8SN:  color("RG8SN", 2, 2, FormatTypeSNorm, false),
	FormatRG8UI:  color("RG8UI", 2, 2, FormatTypeUInt, false),
	FormatRG8I:   color("RG8I", 2, 2, FormatTypeInt, false),
	FormatRG16F:  color("RG16F", 4, 2, FormatTypeFloat, false),
	FormatRG16UI: color("RG16UI", 4, 2, FormatTypeUInt, false),
	FormatRG16I:  color("RG16I", 4, 2, FormatTypeInt, false),
	FormatRG32F:  color("RG32F", 8, 2, FormatTypeFloat, false),
	FormatRG32UI: color("RG32UI", 8, 2, FormatTypeUInt, false),
	FormatRG32I:  color("RG32I", 8, 2, FormatTypeInt, false),

	FormatRGB8:    color("RGB8", 3, 3, FormatTypeUNorm, false),
	FormatSRGB8:   color("SRGB8", 3, 3, FormatTypeUNorm, false),
	FormatRGB8SN:  color("RGB8SN", 3, 3, FormatTypeSNorm, false),
	FormatRGB8UI:  color("RGB8UI", 3, 3, FormatTypeUInt, false),
	FormatRGB8I:   color("RGB8I", 3, 3, FormatTypeInt, false),
	FormatRGB16F:  color("RGB16F", 6, 3, FormatTypeFloat, false),
	FormatRGB16UI: color("RGB16UI", 6, 3, FormatTypeUInt, false),
	FormatRGB16I:  color("RGB16I", 6, 3, FormatTypeInt, false),
	FormatRGB32F:  color("RGB32F", 12, 3, FormatTypeFloat, false),
	FormatRGB32UI: color("RGB32UI", 12, 3, FormatTypeUInt, false),
	FormatRGB32I:  color("RGB32I", 12, 3, FormatTypeInt, false),

	FormatRGBA8:    color("RGBA8", 4, 4, FormatTypeUNorm, true),
	FormatBGRA8:    color("BGRA8", 4, 4, FormatTypeUNorm, true),
	FormatSRGB8A8:  color("SRGB8_A8", 4, 4, FormatTypeUNorm, true),
	FormatRGBA8SN:  color("RGBA8SN", 4, 4, FormatTypeSNorm, true),
	FormatRGBA8UI:  color("RGBA8UI", 4, 4, FormatTypeUInt, true),
	FormatRGBA8I:   color("RGBA8I", 4, 4, FormatTypeInt, true),
	FormatRGBA16F:  color("RGBA16F", 8, 4, FormatTypeFloat, true),
	FormatRGBA16UI: color("RGBA16UI", 8, 4, FormatTypeUInt, true),
	FormatRGBA16I:  color("RGBA16I", 8, 4, FormatTypeInt, true),
	FormatRGBA32F:  color("RGBA32F", 16, 4, FormatTypeFloat, true),
	FormatRGBA32UI: color("RGBA32UI", 16, 4, FormatTypeUInt, true),
	FormatRGBA32I:  color("RGBA32I", 16, 4, FormatTypeInt, true),

	FormatR5G6B5:     color("R5G6B5", 2, 3, FormatTypeUNorm, false),
	FormatR11G11B10F: color("R11G11B10F", 4, 3, FormatTypeFloat, false),
	FormatRGB5A1:     color("RGB5A1", 2, 4, FormatTypeUNorm, true),
	FormatRGBA4:      color("RGBA4", 2, 4, FormatTypeUNorm, true),
	FormatRGB10A2:    color("RGB10A2", 4, 4, FormatTypeUNorm, true),
	FormatRGB10A2UI:  color("RGB10A2UI", 4, 4, FormatTypeUInt, true),
	FormatRGB9E5:     color("RGB9E5", 4, 4, FormatTypeFloat, false),

	FormatD16:    depthStencil("D16", 2, 1, FormatTypeUInt, false),
	FormatD16S8:  depthStencil("D16S8", 3, 2, FormatTypeUInt, true),
	FormatD24:    depthStencil("D24", 3, 1, FormatTypeUInt, false),
	FormatD24S8:  depthStencil("D24S8", 4, 2, FormatTypeUInt, true),
	FormatD32F:   depthStencil("D32F", 4, 1, FormatTypeFloat, false),
	FormatD32FS8: depthStencil("D32F_S8", 5, 2, FormatTypeFloat, true),

	FormatBC1:          block("BC1", 8, 3, FormatTypeUNorm, false, 4, 4),
	FormatBC1Alpha:     block("BC1_ALPHA", 8, 4, FormatTypeUNorm, true, 4, 4),
	FormatBC1SRGB:      block("BC1_SRGB", 8, 3, FormatTypeUNorm, false, 4, 4),
	FormatBC1SRGBAlpha: block("BC1_SRGB_ALPHA", 8, 4, FormatTypeUNorm, true, 4, 4),
	FormatBC2:          block("BC2", 16, 4, FormatTypeUNorm, true, 4, 4),
	FormatBC2SRGB:      block("BC2_SRGB", 16, 4, FormatTypeUNorm, true, 4, 4),
	FormatBC3:          block("BC3", 16, 4, FormatTypeUNorm, true, 4, 4),
	FormatBC3SRGB:      block("BC3_SRGB", 16, 4, FormatTypeUNorm, true, 4, 4),
	FormatBC4:          block("BC4", 8, 1, FormatTypeUNorm, false, 4, 4),
	FormatBC4SNorm:     block("BC4_SNORM", 8, 1, FormatTypeSNorm, false, 4, 4),
	FormatBC5:          block("BC5", 16, 2, FormatTypeUNorm, false, 4, 4),
	FormatBC5SNorm:     block("BC5_SNORM", 16, 2, FormatTypeSNorm, false, 4, 4),
	FormatBC6HUF16:     block("BC6H_UF16", 16, 3, FormatTypeUFloat, false, 4, 4),
	FormatBC6HSF16:     block("BC6H_SF16", 16, 3, FormatTypeFloat, false, 4, 4),
	FormatBC7:          block("BC7", 16, 4, FormatTypeUNorm, true, 4, 4),
	FormatBC7SRGB:      block("BC7_SRGB", 16, 4, FormatTypeUNorm, true, 4, 4),

	FormatETCRGB8:     block("ETC_RGB8", 8, 3, FormatTypeUNorm, false, 4, 4),
	FormatETC2RGB8:    block("ETC2_RGB8", 8, 3, FormatTypeUNorm, false, 4, 4),
	FormatETC2SRGB8:   block("ETC2_SRGB8", 8, 3, FormatTypeUNorm, false, 4, 4),
	FormatETC2RGB8A1:  block("ETC2_RGB8_A1", 8, 4, FormatTypeUNorm, true, 4, 4),
	FormatETC2SRGB8A1: block("ETC2_SRGB8_A1", 8, 4, FormatTypeUNorm, true, 4, 4),
	FormatETC2RGBA8:   block("ETC2_RGBA8", 16, 4, FormatTypeUNorm, true, 4, 4),
	FormatETC2SRGB8A8: block("ETC2_SRGB8_A8", 16, 4, FormatTypeUNorm, true, 4, 4),
	FormatEACR11:      block("EAC_R11", 8, 1, FormatTypeUNorm, false, 4, 4),
	FormatEACR11SN:    block("EAC_R11SN", 8, 1, FormatTypeSNorm, false, 4, 4),
	FormatEACRG11:     block("EAC_RG11", 16, 2, FormatTypeUNorm, false, 4, 4),
	FormatEACRG11SN:   block("EAC_RG11SN", 16, 2, FormatTypeSNorm, false, 4, 4),

	FormatPVRTCRGB2:  pvrtc("PVRTC_RGB2", 3, false, 8),
	FormatPVRTCRGBA2: pvrtc("PVRTC_RGBA2", 4, true, 8),
	FormatPVRTCRGB4:  pvrtc("PVRTC_RGB4", 3, false, 4),
	FormatPVRTCRGBA4: pvrtc("PVRTC_RGBA4", 4, true, 4),
	FormatPVRTC2Bpp2: block("PVRTC2_2BPP", 8, 4, FormatTypeUNorm, true, 8, 4),
	FormatPVRTC2Bpp4: block("PVRTC2_4BPP", 8, 4, FormatTypeUNorm, true, 4, 4),

	FormatASTCRGBA4x4:   astc("ASTC_RGBA_4x4", 4, 4),
	FormatASTCRGBA5x4:   astc("ASTC_RGBA_5x4", 5, 4),
	FormatASTCRGBA5x5:   astc("ASTC_RGBA_5x5", 5, 5),
	FormatASTCRGBA6x5:   astc("ASTC_RGBA_6x5", 6, 5),
	FormatASTCRGBA6x6:   astc("ASTC_RGBA_6x6", 6, 6),
	FormatASTCRGBA8x5:   astc("ASTC_RGBA_8x5", 8, 5),
	FormatASTCRGBA8x6:   astc("ASTC_RGBA_8x6", 8, 6),
	FormatASTCRGBA8x8:   astc("ASTC_RGBA_8x8", 8, 8),
	FormatASTCRGBA10x5:  astc("ASTC_RGBA_10x5", 10, 5),
	FormatASTCRGBA10x6:  astc("ASTC_RGBA_10x6", 10, 6),
	FormatASTCRGBA10x8:  astc("ASTC_RGBA_10x8", 10, 8),
	FormatASTCRGBA10x10: astc("ASTC_RGBA_10x10", 10, 10),
	FormatASTCRGBA12x10: astc("ASTC_RGBA_12x10", 12, 10),
	FormatASTCRGBA12x12: astc("ASTC_RGBA_12x12", 12, 12),

	FormatASTCSRGBA4x4:   astc("ASTC_SRGBA_4x4", 4, 4),
	FormatASTCSRGBA5x4:   astc("ASTC_SRGBA_5x4", 5, 4),
	FormatASTCSRGBA5x5:   astc("ASTC_SRGBA_5x5", 5, 5),
	FormatASTCSRGBA6x5:   astc("ASTC_SRGBA_6x5", 6, 5),
	FormatASTCSRGBA6x6:   astc("ASTC_SRGBA_6x6", 6, 6),
	FormatASTCSRGBA8x5:   astc("ASTC_SRGBA_8x5", 8, 5),
	FormatASTCSRGBA8x6:   astc("ASTC_SRGBA_8x6", 8, 6),
	FormatASTCSRGBA8x8:   astc("ASTC_SRGBA_8x8", 8, 8),
	FormatASTCSRGBA10x5:  astc("ASTC_SRGBA_10x5", 10, 5),
	FormatASTCSRGBA10x6:  astc("ASTC_SRGBA_10x6", 10, 6),
	FormatASTCSRGBA10x8:  astc("ASTC_SRGBA_10x8", 10, 8),
	FormatASTCSRGBA10x10: astc("ASTC_SRGBA_10x10", 10, 10),
	FormatASTCSRGBA12x10: astc("ASTC_SRGBA_12x10", 12, 10),
	FormatASTCSRGBA12x12: astc("ASTC_SRGBA_12x12", 12, 12),
}

func (f Format) String() string {
	if f >= FormatCount {
		return fmt.Sprintf("unknown Format %d", uint32(f))
	}
	return formatInfos[f].Name
}

// FormatInfoOf retrieves the registry entry for a format. FormatUnknown and values outside the
// registry return ErrInvalidFormat.
func FormatInfoOf(format Format) (FormatInfo, error) {
	if format == FormatUnknown || format >= FormatCount {
		return FormatInfo{}, errors.Wrapf(ErrInvalidFormat, "format %s has no layout", format)
	}

	return formatInfos[format], nil
}

// Size is the number of bytes in a single texel of this format, or in a single block for
// compressed formats
func (f Format) Size() (int, error) {
	info, err := FormatInfoOf(f)
	if err != nil {
		return 0, err
	}

	return info.Size, nil
}

// IsDepthStencil returns true if the format has either a depth or stencil aspect
func (f Format) IsDepthStencil() bool {
	if f >= FormatCount {
		return false
	}
	return formatInfos[f].HasDepth || formatInfos[f].HasStencil
}

func (f Format) IsCompressed() bool {
	if f >= FormatCount {
		return false
	}
	return formatInfos[f].IsCompressed
}

func (f Format) IsSRGB() bool {
	if f >= FormatCount {
		return false
	}
	return strings.Contains(formatInfos[f].Name, "SRGB")
}

// FormatBlockExtent returns the texel dimensions of a single compression block. Uncompressed
// formats return 1x1.
func FormatBlockExtent(format Format) (width, height int, err error) {
	info, err := FormatInfoOf(format)
	if err != nil {
		return 0, 0, err
	}

	return info.BlockWidth, info.BlockHeight, nil
}

// FormatSize returns the number of bytes needed to store a single surface level of the provided
// dimensions. For compressed formats, width and height are rounded up to whole blocks.
func FormatSize(format Format, width, height, depth uint32) (int, error) {
	info, err := FormatInfoOf(format)
	if err != nil {
		return 0, err
	}

	return info.surfaceLevelSize(int(width), int(height), int(depth)), nil
}

func (i *FormatInfo) surfaceLevelSize(width, height, depth int) int {
	if !i.IsCompressed {
		return width * height * depth * i.Size
	}

	if width == 0 || height == 0 || depth == 0 {
		return 0
	}

	blocksX := utils.DivideRoundingUp(width, i.BlockWidth)
	blocksY := utils.DivideRoundingUp(height, i.BlockHeight)
	if blocksX < i.minBlocksX {
		blocksX = i.minBlocksX
	}
	if blocksY < i.minBlocksY {
		blocksY = i.minBlocksY
	}

	return blocksX * blocksY * depth * i.Size
}

// FormatSurfaceSize returns the number of bytes needed to store mips surface levels, starting
// at the provided dimensions. Width, height and depth are halved for each level, never dropping
// below 1. Array layers are not part of depth.
func FormatSurfaceSize(format Format, width, height, depth, mips uint32) (int, error) {
	info, err := FormatInfoOf(format)
	if err != nil {
		return 0, err
	}

	w, h, d := int(width), int(height), int(depth)
	size := 0
	for level := uint32(0); level < mips; level++ {
		size += info.surfaceLevelSize(w, h, d)
		w = max(w>>1, 1)
		h = max(h>>1, 1)
		d = max(d>>1, 1)
	}

	return size, nil
}

// WriteFormatTable emits the full format registry as a JSON array
func WriteFormatTable(writer *jwriter.Writer) {
	arrayState := writer.Array()
	defer arrayState.End()

	for format := FormatUnknown + 1; format < FormatCount; format++ {
		info := &formatInfos[format]

		obj := arrayState.Object()
		obj.Name("Name").String(info.Name)
		obj.Name("Size").Int(info.Size)
		obj.Name("Count").Int(info.Count)
		obj.Name("Type").String(info.Type.String())
		obj.Name("HasAlpha").Bool(info.HasAlpha)
		obj.Name("HasDepth").Bool(info.HasDepth)
		obj.Name("HasStencil").Bool(info.HasStencil)
		obj.Name("IsCompressed").Bool(info.IsCompressed)
		if info.IsCompressed {
			obj.Name("BlockWidth").Int(info.BlockWidth)
			obj.Name("BlockHeight").Int(info.BlockHeight)
		}
		obj.End()
	}
}
