package gfx

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
)

type LoadOp int32

const (
	// LoadOpLoad preserves the attachment's previous contents
	LoadOpLoad LoadOp = iota
	LoadOpClear
	// LoadOpDiscard leaves the attachment's contents undefined
	LoadOpDiscard
)

var loadOpStrings = map[LoadOp]string{
	LoadOpLoad:    "Load",
	LoadOpClear:   "Clear",
	LoadOpDiscard: "Discard",
}

func (o LoadOp) String() string {
	str, ok := loadOpStrings[o]
	if !ok {
		return "unknown LoadOp"
	}
	return str
}

type StoreOp int32

const (
	StoreOpStore StoreOp = iota
	StoreOpDiscard
)

var storeOpStrings = map[StoreOp]string{
	StoreOpStore:   "Store",
	StoreOpDiscard: "Discard",
}

func (o StoreOp) String() string {
	str, ok := storeOpStrings[o]
	if !ok {
		return "unknown StoreOp"
	}
	return str
}

// ClearFlags select the aspects of a framebuffer to clear
type ClearFlags int32

var clearFlagsMapping = common.NewFlagStringMapping[ClearFlags]()

func (f ClearFlags) Register(str string) {
	clearFlagsMapping.Register(f, str)
}
func (f ClearFlags) String() string {
	return clearFlagsMapping.FlagsToString(f)
}

const ClearFlagNone ClearFlags = 0

const (
	ClearFlagColor ClearFlags = 1 << iota
	ClearFlagDepth
	ClearFlagStencil
)

const (
	ClearFlagDepthStencil = ClearFlagDepth | ClearFlagStencil
	ClearFlagAll          = ClearFlagColor | ClearFlagDepth | ClearFlagStencil
)

func init() {
	ClearFlagColor.Register("Color")
	ClearFlagDepth.Register("Depth")
	ClearFlagStencil.Register("Stencil")
}

type ColorAttachment struct {
	Format      Format
	SampleCount SampleCount
	LoadOp      LoadOp
	StoreOp     StoreOp
	BeginAccess AccessType
	EndAccess   AccessType
}

func DefaultColorAttachment() ColorAttachment {
	return ColorAttachment{
		SampleCount: SampleCountX1,
		LoadOp:      LoadOpClear,
		StoreOp:     StoreOpStore,
		BeginAccess: AccessTypeNone,
		EndAccess:   AccessTypePresent,
	}
}

type DepthStencilAttachment struct {
	Format         Format
	SampleCount    SampleCount
	DepthLoadOp    LoadOp
	DepthStoreOp   StoreOp
	StencilLoadOp  LoadOp
	StencilStoreOp StoreOp
	BeginAccess    AccessType
	EndAccess      AccessType
}

func DefaultDepthStencilAttachment() DepthStencilAttachment {
	return DepthStencilAttachment{
		SampleCount:    SampleCountX1,
		DepthLoadOp:    LoadOpClear,
		DepthStoreOp:   StoreOpStore,
		StencilLoadOp:  LoadOpClear,
		StencilStoreOp: StoreOpStore,
		BeginAccess:    AccessTypeNone,
		EndAccess:      AccessTypeDepthStencilAttachmentWrite,
	}
}

// SubpassInfo refers to render pass attachments by index. The depth/stencil attachment's index
// is the number of color attachments.
type SubpassInfo struct {
	Inputs       []uint32
	Colors       []uint32
	Resolves     []uint32
	DepthStencil uint32
	Preserves    []uint32
}

func DefaultSubpassInfo() SubpassInfo {
	return SubpassInfo{DepthStencil: InvalidBinding}
}

type RenderPassInfo struct {
	ColorAttachments       []ColorAttachment
	DepthStencilAttachment DepthStencilAttachment
	Subpasses              []SubpassInfo
}

// HasDepthStencil returns true when the render pass declares a depth/stencil attachment
func (i *RenderPassInfo) HasDepthStencil() bool {
	return i.DepthStencilAttachment.Format != FormatUnknown
}

func (i *RenderPassInfo) Validate() error {
	if len(i.ColorAttachments) > MaxAttachments {
		return errors.Wrapf(ErrCapacityExceeded, "render pass has %d color attachments, but at most %d are supported", len(i.ColorAttachments), MaxAttachments)
	}

	for index, attachment := range i.ColorAttachments {
		if attachment.Format.IsDepthStencil() {
			return errors.Wrapf(ErrInvalidUsageCombination, "color attachment %d uses depth/stencil format %s", index, attachment.Format)
		}
		_, err := FormatInfoOf(attachment.Format)
		if err != nil {
			return errors.Wrapf(err, "color attachment %d", index)
		}
		if attachment.EndAccess == AccessTypeNone || !attachment.EndAccess.IsValid() {
			return errors.Newf("color attachment %d must declare an end access", index)
		}
	}

	if i.HasDepthStencil() {
		if !i.DepthStencilAttachment.Format.IsDepthStencil() {
			return errors.Wrapf(ErrInvalidUsageCombination, "depth/stencil attachment uses color format %s", i.DepthStencilAttachment.Format)
		}
		if !i.DepthStencilAttachment.EndAccess.IsValid() {
			return errors.New("the depth/stencil attachment must declare an end access")
		}
	}

	attachmentCount := uint32(len(i.ColorAttachments))
	depthStencilIndex := InvalidBinding
	if i.HasDepthStencil() {
		depthStencilIndex = attachmentCount
		attachmentCount++
	}

	checkIndices := func(subpass int, name string, indices []uint32) error {
		for _, index := range indices {
			if index >= attachmentCount {
				return errors.Newf("subpass %d %s refers to attachment %d, but there are only %d", subpass, name, index, attachmentCount)
			}
		}
		return nil
	}

	for subpass, info := range i.Subpasses {
		if err := checkIndices(subpass, "inputs", info.Inputs); err != nil {
			return err
		}
		if err := checkIndices(subpass, "colors", info.Colors); err != nil {
			return err
		}
		if err := checkIndices(subpass, "resolves", info.Resolves); err != nil {
			return err
		}
		if err := checkIndices(subpass, "preserves", info.Preserves); err != nil {
			return err
		}
		if len(info.Resolves) > 0 && len(info.Resolves) != len(info.Colors) {
			return errors.Newf("subpass %d has %d resolves for %d colors", subpass, len(info.Resolves), len(info.Colors))
		}
		for _, color := range info.Colors {
			if color == depthStencilIndex {
				return errors.Wrapf(ErrInvalidUsageCombination, "subpass %d uses the depth/stencil attachment as a color output", subpass)
			}
		}
		if info.DepthStencil != InvalidBinding && info.DepthStencil != depthStencilIndex {
			return errors.Newf("subpass %d depth/stencil refers to attachment %d, which is not the depth/stencil attachment", subpass, info.DepthStencil)
		}
	}

	return nil
}

type FramebufferInfo struct {
	RenderPass              RenderPass
	ColorTextures           []Texture
	DepthStencilTexture     Texture
	ColorMipmapLevels       []uint32
	DepthStencilMipmapLevel uint32
}

func (i *FramebufferInfo) Validate() error {
	if i.RenderPass == nil {
		return errors.New("a framebuffer must have a render pass")
	}

	renderPass := i.RenderPass.Info()
	if len(i.ColorTextures) != len(renderPass.ColorAttachments) {
		return errors.Newf("framebuffer has %d color textures, but its render pass has %d color attachments", len(i.ColorTextures), len(renderPass.ColorAttachments))
	}
	if len(i.ColorMipmapLevels) > 0 && len(i.ColorMipmapLevels) != len(i.ColorTextures) {
		return errors.Newf("framebuffer has %d color mipmap levels for %d color textures", len(i.ColorMipmapLevels), len(i.ColorTextures))
	}

	for index, texture := range i.ColorTextures {
		if texture == nil {
			return errors.Newf("framebuffer color texture %d is nil", index)
		}

		info := texture.Info()
		if info.Usage&TextureUsageColorAttachment == 0 {
			return errors.Wrapf(ErrInvalidUsageCombination, "framebuffer color texture %d has usage %s", index, info.Usage)
		}
		if info.Format != renderPass.ColorAttachments[index].Format {
			return errors.Newf("framebuffer color texture %d has format %s, but the render pass expects %s", index, info.Format, renderPass.ColorAttachments[index].Format)
		}
		if len(i.ColorMipmapLevels) > 0 && i.ColorMipmapLevels[index] >= info.LevelCount {
			return errors.Newf("framebuffer color texture %d has %d levels, but level %d was requested", index, info.LevelCount, i.ColorMipmapLevels[index])
		}
	}

	if renderPass.HasDepthStencil() != (i.DepthStencilTexture != nil) {
		return errors.New("a framebuffer must have a depth/stencil texture exactly when its render pass has a depth/stencil attachment")
	}

	if i.DepthStencilTexture != nil {
		info := i.DepthStencilTexture.Info()
		if info.Usage&TextureUsageDepthStencilAttachment == 0 {
			return errors.Wrapf(ErrInvalidUsageCombination, "framebuffer depth/stencil texture has usage %s", info.Usage)
		}
		if i.DepthStencilMipmapLevel >= info.LevelCount {
			return errors.Newf("framebuffer depth/stencil texture has %d levels, but level %d was requested", info.LevelCount, i.DepthStencilMipmapLevel)
		}
	}

	return nil
}
