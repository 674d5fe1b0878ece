package gfx

import (
	"math/bits"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
)

type TextureType int32

const (
	TextureType1D TextureType = iota
	TextureType2D
	TextureType3D
	TextureTypeCube
	TextureType1DArray
	TextureType2DArray
)

var textureTypeStrings = map[TextureType]string{
	TextureType1D:      "1D",
	TextureType2D:      "2D",
	TextureType3D:      "3D",
	TextureTypeCube:    "Cube",
	TextureType1DArray: "1DArray",
	TextureType2DArray: "2DArray",
}

func (t TextureType) String() string {
	str, ok := textureTypeStrings[t]
	if !ok {
		return "unknown TextureType"
	}
	return str
}

// TextureUsage indicates the ways a texture will be bound
type TextureUsage int32

var textureUsageMapping = common.NewFlagStringMapping[TextureUsage]()

func (f TextureUsage) Register(str string) {
	textureUsageMapping.Register(f, str)
}
func (f TextureUsage) String() string {
	return textureUsageMapping.FlagsToString(f)
}

const TextureUsageNone TextureUsage = 0

const (
	TextureUsageTransferSrc TextureUsage = 1 << iota
	TextureUsageTransferDst
	TextureUsageSampled
	TextureUsageStorage
	TextureUsageColorAttachment
	TextureUsageDepthStencilAttachment
	TextureUsageTransientAttachment
	TextureUsageInputAttachment
)

// TextureFlags indicate optional texture behaviors
type TextureFlags int32

var textureFlagsMapping = common.NewFlagStringMapping[TextureFlags]()

func (f TextureFlags) Register(str string) {
	textureFlagsMapping.Register(f, str)
}
func (f TextureFlags) String() string {
	return textureFlagsMapping.FlagsToString(f)
}

const TextureFlagNone TextureFlags = 0

const (
	TextureFlagGenMipmap TextureFlags = 1 << iota
	TextureFlagBackupBuffer
	TextureFlagImmutable
)

func init() {
	TextureUsageTransferSrc.Register("TransferSrc")
	TextureUsageTransferDst.Register("TransferDst")
	TextureUsageSampled.Register("Sampled")
	TextureUsageStorage.Register("Storage")
	TextureUsageColorAttachment.Register("ColorAttachment")
	TextureUsageDepthStencilAttachment.Register("DepthStencilAttachment")
	TextureUsageTransientAttachment.Register("TransientAttachment")
	TextureUsageInputAttachment.Register("InputAttachment")

	TextureFlagGenMipmap.Register("GenMipmap")
	TextureFlagBackupBuffer.Register("BackupBuffer")
	TextureFlagImmutable.Register("Immutable")
}

type SampleCount int32

const (
	SampleCountX1 SampleCount = iota
	SampleCountX2
	SampleCountX4
	SampleCountX8
	SampleCountX16
	SampleCountX32
	SampleCountX64
)

// Samples returns the number of samples per texel
func (c SampleCount) Samples() int {
	return 1 << c
}

func (c SampleCount) String() string {
	if c < SampleCountX1 || c > SampleCountX64 {
		return "unknown SampleCount"
	}
	return "X" + strconv.Itoa(c.Samples())
}

// MipLevelCount returns the number of levels in a full mip chain for the provided dimensions
func MipLevelCount(width, height, depth uint32) uint32 {
	largest := max(width, height, depth)
	if largest == 0 {
		return 0
	}
	return uint32(bits.Len32(largest))
}

type TextureInfo struct {
	Type       TextureType
	Usage      TextureUsage
	Format     Format
	Width      uint32
	Height     uint32
	Flags      TextureFlags
	LayerCount uint32
	LevelCount uint32
	Samples    SampleCount
	Depth      uint32
}

func DefaultTextureInfo() TextureInfo {
	return TextureInfo{
		Type:       TextureType2D,
		LayerCount: 1,
		LevelCount: 1,
		Samples:    SampleCountX1,
		Depth:      1,
	}
}

func (i *TextureInfo) Validate() error {
	formatInfo, err := FormatInfoOf(i.Format)
	if err != nil {
		return err
	}

	if i.Usage == TextureUsageNone {
		return errors.Wrap(ErrInvalidUsageCombination, "a texture must have at least one usage")
	}
	if i.Width == 0 || i.Height == 0 || i.Depth == 0 || i.LayerCount == 0 || i.LevelCount == 0 {
		return errors.Newf("texture dimensions must be non-zero, but were %dx%dx%d with %d layers and %d levels",
			i.Width, i.Height, i.Depth, i.LayerCount, i.LevelCount)
	}

	depthStencil := formatInfo.HasDepth || formatInfo.HasStencil
	if i.Usage&TextureUsageColorAttachment != 0 && depthStencil {
		return errors.Wrapf(ErrInvalidUsageCombination, "depth/stencil format %s cannot be used as a color attachment", i.Format)
	}
	if i.Usage&TextureUsageDepthStencilAttachment != 0 && !depthStencil {
		return errors.Wrapf(ErrInvalidUsageCombination, "color format %s cannot be used as a depth/stencil attachment", i.Format)
	}
	if i.Usage&TextureUsageColorAttachment != 0 && i.Usage&TextureUsageDepthStencilAttachment != 0 {
		return errors.Wrap(ErrInvalidUsageCombination, "a texture cannot be both a color and a depth/stencil attachment")
	}
	if formatInfo.IsCompressed && i.Usage&(TextureUsageColorAttachment|TextureUsageDepthStencilAttachment|TextureUsageStorage|TextureUsageInputAttachment) != 0 {
		return errors.Wrapf(ErrInvalidUsageCombination, "compressed format %s can only be sampled or transferred, but usage was %s", i.Format, i.Usage)
	}
	if i.Usage&TextureUsageTransientAttachment != 0 && i.Usage&(TextureUsageColorAttachment|TextureUsageDepthStencilAttachment|TextureUsageInputAttachment) == 0 {
		return errors.Wrap(ErrInvalidUsageCombination, "transient textures must also be attachments")
	}
	if i.Flags&TextureFlagGenMipmap != 0 && formatInfo.IsCompressed {
		return errors.Wrapf(ErrInvalidUsageCombination, "mipmaps cannot be generated for compressed format %s", i.Format)
	}
	if i.Samples != SampleCountX1 {
		if i.Type != TextureType2D && i.Type != TextureType2DArray {
			return errors.Wrapf(ErrInvalidUsageCombination, "multisampled textures must be 2D, but type was %s", i.Type)
		}
		if i.LevelCount != 1 {
			return errors.Wrapf(ErrInvalidUsageCombination, "multisampled textures must have a single level, but had %d", i.LevelCount)
		}
		if i.Flags&TextureFlagGenMipmap != 0 {
			return errors.Wrap(ErrInvalidUsageCombination, "mipmaps cannot be generated for multisampled textures")
		}
	}

	switch i.Type {
	case TextureType1D, TextureType1DArray:
		if i.Height != 1 || i.Depth != 1 {
			return errors.Newf("1D textures must have a height and depth of 1, but were %d and %d", i.Height, i.Depth)
		}
	case TextureType2D, TextureType2DArray:
		if i.Depth != 1 {
			return errors.Newf("2D textures must have a depth of 1, but depth was %d", i.Depth)
		}
	case TextureTypeCube:
		if i.Width != i.Height {
			return errors.Newf("cube textures must be square, but were %dx%d", i.Width, i.Height)
		}
		if i.LayerCount%6 != 0 {
			return errors.Newf("cube textures must have a multiple of 6 layers, but had %d", i.LayerCount)
		}
	case TextureType3D:
		if i.LayerCount != 1 {
			return errors.Newf("3D textures must have a single layer, but had %d", i.LayerCount)
		}
	default:
		return errors.Newf("unknown texture type %d", int32(i.Type))
	}

	if i.Type != TextureType1DArray && i.Type != TextureType2DArray && i.Type != TextureTypeCube && i.LayerCount != 1 {
		return errors.Newf("%s textures must have a single layer, but had %d", i.Type, i.LayerCount)
	}

	maxLevels := MipLevelCount(i.Width, i.Height, i.Depth)
	if i.LevelCount > maxLevels {
		return errors.Newf("a %dx%dx%d texture can have at most %d levels, but had %d", i.Width, i.Height, i.Depth, maxLevels, i.LevelCount)
	}

	return nil
}

// Size returns the number of bytes needed to store every level and layer of the texture
func (i *TextureInfo) Size() (int, error) {
	size, err := FormatSurfaceSize(i.Format, i.Width, i.Height, i.Depth, i.LevelCount)
	if err != nil {
		return 0, err
	}

	return size * int(i.LayerCount), nil
}

type TextureViewInfo struct {
	Texture    Texture
	Type       TextureType
	Format     Format
	BaseLevel  uint32
	LevelCount uint32
	BaseLayer  uint32
	LayerCount uint32
}

func DefaultTextureViewInfo() TextureViewInfo {
	return TextureViewInfo{
		Type:       TextureType2D,
		LevelCount: 1,
		LayerCount: 1,
	}
}

func (i *TextureViewInfo) Validate() error {
	if i.Texture == nil {
		return errors.New("a texture view must have a texture")
	}

	_, err := FormatInfoOf(i.Format)
	if err != nil {
		return err
	}

	textureInfo := i.Texture.Info()
	if i.BaseLevel+i.LevelCount > textureInfo.LevelCount {
		return errors.Newf("texture view levels [%d, %d) exceed the texture's %d levels", i.BaseLevel, i.BaseLevel+i.LevelCount, textureInfo.LevelCount)
	}
	if i.BaseLayer+i.LayerCount > textureInfo.LayerCount {
		return errors.Newf("texture view layers [%d, %d) exceed the texture's %d layers", i.BaseLayer, i.BaseLayer+i.LayerCount, textureInfo.LayerCount)
	}
	if i.Format.IsDepthStencil() != textureInfo.Format.IsDepthStencil() {
		return errors.Wrapf(ErrInvalidUsageCombination, "view format %s is not compatible with texture format %s", i.Format, textureInfo.Format)
	}

	return nil
}

type TextureSubresLayers struct {
	MipLevel       uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

func DefaultTextureSubresLayers() TextureSubresLayers {
	return TextureSubresLayers{LayerCount: 1}
}

type TextureSubresRange struct {
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

func DefaultTextureSubresRange() TextureSubresRange {
	return TextureSubresRange{LevelCount: 1, LayerCount: 1}
}

type TextureCopy struct {
	SrcSubres TextureSubresLayers
	SrcOffset Offset
	DstSubres TextureSubresLayers
	DstOffset Offset
	Extent    Extent
}

type TextureBlit struct {
	SrcSubres TextureSubresLayers
	SrcOffset Offset
	SrcExtent Extent
	DstSubres TextureSubresLayers
	DstOffset Offset
	DstExtent Extent
}

type BufferTextureCopy struct {
	// BuffStride is the row length of the buffer data in texels. Zero means the data is tightly
	// packed to TexExtent.Width.
	BuffStride uint32
	// BuffTexHeight is the image height of the buffer data in texels. Zero means the data is
	// tightly packed to TexExtent.Height.
	BuffTexHeight uint32
	TexOffset     Offset
	TexExtent     Extent
	TexSubres     TextureSubresLayers
}

// DataSize returns the number of buffer bytes the copy reads or writes for the provided format
func (c *BufferTextureCopy) DataSize(format Format) (int, error) {
	width := c.TexExtent.Width
	if c.BuffStride > 0 {
		width = c.BuffStride
	}
	height := c.TexExtent.Height
	if c.BuffTexHeight > 0 {
		height = c.BuffTexHeight
	}

	size, err := FormatSize(format, width, height, c.TexExtent.Depth)
	if err != nil {
		return 0, err
	}

	return size * int(c.TexSubres.LayerCount), nil
}
