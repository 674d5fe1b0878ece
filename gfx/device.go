package gfx

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/hal/internal/utils"
)

const (
	// MaxAttachments is the largest number of color attachments a render pass may declare
	MaxAttachments int = 4
	// InvalidBinding marks a binding or attachment index that is not in use
	InvalidBinding uint32 = 0xff
)

// API identifies a backend
type API int32

const (
	APIUnknown API = iota
	APIGLES2
	APIGLES3
	APIMetal
	APIVulkan
	APIWebGL
	APIWebGL2
	APIWebGPU
)

var apiStrings = map[API]string{
	APIUnknown: "Unknown",
	APIGLES2:   "GLES2",
	APIGLES3:   "GLES3",
	APIMetal:   "Metal",
	APIVulkan:  "Vulkan",
	APIWebGL:   "WebGL",
	APIWebGL2:  "WebGL2",
	APIWebGPU:  "WebGPU",
}

func (a API) String() string {
	str, ok := apiStrings[a]
	if !ok {
		return "unknown API"
	}
	return str
}

// NeedsBindingRemap returns true for backends that expose a flat binding space rather than
// descriptor sets
func (a API) NeedsBindingRemap() bool {
	switch a {
	case APIGLES2, APIGLES3, APIMetal, APIWebGL, APIWebGL2:
		return true
	}
	return false
}

type ObjectType int32

const (
	ObjectTypeUnknown ObjectType = iota
	ObjectTypeBuffer
	ObjectTypeTexture
	ObjectTypeRenderPass
	ObjectTypeFramebuffer
	ObjectTypeSampler
	ObjectTypeShader
	ObjectTypeDescriptorSetLayout
	ObjectTypePipelineLayout
	ObjectTypePipelineState
	ObjectTypeDescriptorSet
	ObjectTypeInputAssembler
	ObjectTypeCommandBuffer
	ObjectTypeQueue
	ObjectTypeGlobalBarrier
	ObjectTypeTextureBarrier
	ObjectTypeBufferBarrier
)

var objectTypeStrings = map[ObjectType]string{
	ObjectTypeUnknown:             "Unknown",
	ObjectTypeBuffer:              "Buffer",
	ObjectTypeTexture:             "Texture",
	ObjectTypeRenderPass:          "RenderPass",
	ObjectTypeFramebuffer:         "Framebuffer",
	ObjectTypeSampler:             "Sampler",
	ObjectTypeShader:              "Shader",
	ObjectTypeDescriptorSetLayout: "DescriptorSetLayout",
	ObjectTypePipelineLayout:      "PipelineLayout",
	ObjectTypePipelineState:       "PipelineState",
	ObjectTypeDescriptorSet:       "DescriptorSet",
	ObjectTypeInputAssembler:      "InputAssembler",
	ObjectTypeCommandBuffer:       "CommandBuffer",
	ObjectTypeQueue:               "Queue",
	ObjectTypeGlobalBarrier:       "GlobalBarrier",
	ObjectTypeTextureBarrier:      "TextureBarrier",
	ObjectTypeBufferBarrier:       "BufferBarrier",
}

func (t ObjectType) String() string {
	str, ok := objectTypeStrings[t]
	if !ok {
		return "unknown ObjectType"
	}
	return str
}

type Status int32

const (
	StatusUnready Status = iota
	StatusFailed
	StatusSuccess
)

var statusStrings = map[Status]string{
	StatusUnready: "Unready",
	StatusFailed:  "Failed",
	StatusSuccess: "Success",
}

func (s Status) String() string {
	str, ok := statusStrings[s]
	if !ok {
		return "unknown Status"
	}
	return str
}

type SurfaceTransform int32

const (
	SurfaceTransformIdentity SurfaceTransform = iota
	SurfaceTransformRotate90
	SurfaceTransformRotate180
	SurfaceTransformRotate270
)

var surfaceTransformStrings = map[SurfaceTransform]string{
	SurfaceTransformIdentity:  "Identity",
	SurfaceTransformRotate90:  "Rotate90",
	SurfaceTransformRotate180: "Rotate180",
	SurfaceTransformRotate270: "Rotate270",
}

func (t SurfaceTransform) String() string {
	str, ok := surfaceTransformStrings[t]
	if !ok {
		return "unknown SurfaceTransform"
	}
	return str
}

// Feature is an optional capability a device may report
type Feature int32

const (
	FeatureColorFloat Feature = iota
	FeatureColorHalfFloat
	FeatureTextureFloat
	FeatureTextureHalfFloat
	FeatureTextureFloatLinear
	FeatureTextureHalfFloatLinear
	FeatureFormatR11G11B10F
	FeatureFormatD16
	FeatureFormatD16S8
	FeatureFormatD24
	FeatureFormatD24S8
	FeatureFormatD32F
	FeatureFormatD32FS8
	FeatureFormatETC1
	FeatureFormatETC2
	FeatureFormatDXT
	FeatureFormatPVRTC
	FeatureFormatASTC
	FeatureFormatRGB8
	FeatureMSAA
	FeatureElementIndexUint
	FeatureInstancedArrays
	FeatureMultipleRenderTargets
	FeatureBlendMinMax
	FeatureDepthBounds
	FeatureLineWidth
	FeatureStencilWriteMask
	FeatureStencilCompareMask
	FeatureMultithreadedSubmission
	FeatureComputeShader

	FeatureCount
)

var featureStrings = map[Feature]string{
	FeatureColorFloat:              "ColorFloat",
	FeatureColorHalfFloat:          "ColorHalfFloat",
	FeatureTextureFloat:            "TextureFloat",
	FeatureTextureHalfFloat:        "TextureHalfFloat",
	FeatureTextureFloatLinear:      "TextureFloatLinear",
	FeatureTextureHalfFloatLinear:  "TextureHalfFloatLinear",
	FeatureFormatR11G11B10F:        "FormatR11G11B10F",
	FeatureFormatD16:               "FormatD16",
	FeatureFormatD16S8:             "FormatD16S8",
	FeatureFormatD24:               "FormatD24",
	FeatureFormatD24S8:             "FormatD24S8",
	FeatureFormatD32F:              "FormatD32F",
	FeatureFormatD32FS8:            "FormatD32FS8",
	FeatureFormatETC1:              "FormatETC1",
	FeatureFormatETC2:              "FormatETC2",
	FeatureFormatDXT:               "FormatDXT",
	FeatureFormatPVRTC:             "FormatPVRTC",
	FeatureFormatASTC:              "FormatASTC",
	FeatureFormatRGB8:              "FormatRGB8",
	FeatureMSAA:                    "MSAA",
	FeatureElementIndexUint:        "ElementIndexUint",
	FeatureInstancedArrays:         "InstancedArrays",
	FeatureMultipleRenderTargets:   "MultipleRenderTargets",
	FeatureBlendMinMax:             "BlendMinMax",
	FeatureDepthBounds:             "DepthBounds",
	FeatureLineWidth:               "LineWidth",
	FeatureStencilWriteMask:        "StencilWriteMask",
	FeatureStencilCompareMask:      "StencilCompareMask",
	FeatureMultithreadedSubmission: "MultithreadedSubmission",
	FeatureComputeShader:           "ComputeShader",
}

func (f Feature) String() string {
	str, ok := featureStrings[f]
	if !ok {
		return "unknown Feature"
	}
	return str
}

// FeatureSet records which features a device supports
type FeatureSet [FeatureCount]bool

func (s *FeatureSet) Has(feature Feature) bool {
	if feature < 0 || feature >= FeatureCount {
		return false
	}
	return s[feature]
}

// RequiredFeature returns the feature a device must report before textures of the provided
// format may be created, if any
func RequiredFeature(format Format) (Feature, bool) {
	switch {
	case format == FormatR11G11B10F:
		return FeatureFormatR11G11B10F, true
	case format == FormatD16:
		return FeatureFormatD16, true
	case format == FormatD16S8:
		return FeatureFormatD16S8, true
	case format == FormatD24:
		return FeatureFormatD24, true
	case format == FormatD24S8:
		return FeatureFormatD24S8, true
	case format == FormatD32F:
		return FeatureFormatD32F, true
	case format == FormatD32FS8:
		return FeatureFormatD32FS8, true
	case format == FormatRGB8:
		return FeatureFormatRGB8, true
	case format == FormatETCRGB8:
		return FeatureFormatETC1, true
	case format >= FormatETC2RGB8 && format <= FormatEACRG11SN:
		return FeatureFormatETC2, true
	case format >= FormatBC1 && format <= FormatBC7SRGB:
		return FeatureFormatDXT, true
	case format >= FormatPVRTCRGB2 && format <= FormatPVRTC2Bpp4:
		return FeatureFormatPVRTC, true
	case format >= FormatASTCRGBA4x4 && format <= FormatASTCSRGBA12x12:
		return FeatureFormatASTC, true
	}

	return 0, false
}

type QueueType int32

const (
	QueueTypeGraphics QueueType = iota
	QueueTypeCompute
	QueueTypeTransfer
)

var queueTypeStrings = map[QueueType]string{
	QueueTypeGraphics: "Graphics",
	QueueTypeCompute:  "Compute",
	QueueTypeTransfer: "Transfer",
}

func (t QueueType) String() string {
	str, ok := queueTypeStrings[t]
	if !ok {
		return "unknown QueueType"
	}
	return str
}

// QueueInfo identifies a queue. FamilyIndex is the backend's queue family, used to detect
// ownership transfers.
type QueueInfo struct {
	Type        QueueType
	FamilyIndex uint32
}

type VsyncMode int32

const (
	VsyncModeOff VsyncMode = iota
	VsyncModeOn
	VsyncModeRelaxed
	VsyncModeMailbox
	VsyncModeHalf
)

var vsyncModeStrings = map[VsyncMode]string{
	VsyncModeOff:     "Off",
	VsyncModeOn:      "On",
	VsyncModeRelaxed: "Relaxed",
	VsyncModeMailbox: "Mailbox",
	VsyncModeHalf:    "Half",
}

func (m VsyncMode) String() string {
	str, ok := vsyncModeStrings[m]
	if !ok {
		return "unknown VsyncMode"
	}
	return str
}

type Size struct {
	X, Y, Z uint32
}

// DeviceCaps holds the limits a backend reports at device initialization. A zero limit means
// the backend did not report it.
type DeviceCaps struct {
	MaxVertexAttributes            uint32
	MaxVertexUniformVectors        uint32
	MaxFragmentUniformVectors      uint32
	MaxTextureUnits                uint32
	MaxImageUnits                  uint32
	MaxVertexTextureUnits          uint32
	MaxColorRenderTargets          uint32
	MaxShaderStorageBufferBindings uint32
	MaxShaderStorageBlockSize      uint32
	MaxUniformBufferBindings       uint32
	MaxUniformBlockSize            uint32
	MaxTextureSize                 uint32
	MaxCubeMapTextureSize          uint32
	UBOOffsetAlignment             uint32
	DepthBits                      uint32
	StencilBits                    uint32
	MaxComputeSharedMemorySize     uint32
	MaxComputeWorkGroupInvocations uint32
	MaxComputeWorkGroupSize        Size
	MaxComputeWorkGroupCount       Size

	ClipSpaceMinZ    float32
	ScreenSpaceSignY float32
	UVSpaceSignY     float32
}

// DefaultDeviceCaps returns a DeviceCaps with no reported limits and GL-style clip space
// conventions
func DefaultDeviceCaps() DeviceCaps {
	return DeviceCaps{
		ClipSpaceMinZ:    -1,
		ScreenSpaceSignY: 1,
		UVSpaceSignY:     -1,
	}
}

func (c *DeviceCaps) Validate() error {
	if c.UBOOffsetAlignment != 0 {
		err := utils.CheckPow2(c.UBOOffsetAlignment, "UBOOffsetAlignment")
		if err != nil {
			return err
		}
	}

	if c.ClipSpaceMinZ != -1 && c.ClipSpaceMinZ != 0 {
		return errors.Newf("ClipSpaceMinZ must be -1 or 0, but was %f", c.ClipSpaceMinZ)
	}

	return nil
}

// BindingMappingInfo holds the per-set offsets used to flatten set-relative binding numbers
// into a backend's single binding space. The binding numbers of each descriptor class within a
// set must be contiguous, which reduces the mapping to a shift.
type BindingMappingInfo struct {
	// BufferOffsets holds one offset per set for uniform and storage buffer descriptors
	BufferOffsets []int
	// SamplerOffsets holds one offset per set for sampler, texture, image and input attachment
	// descriptors
	SamplerOffsets []int
	// FlexibleSet is the set whose offsets are computed from what the other sets consumed
	FlexibleSet uint32
}

func (i *BindingMappingInfo) Validate() error {
	if len(i.BufferOffsets) != len(i.SamplerOffsets) {
		return errors.Newf("BindingMappingInfo has %d buffer offsets but %d sampler offsets", len(i.BufferOffsets), len(i.SamplerOffsets))
	}
	if len(i.BufferOffsets) > 0 && int(i.FlexibleSet) >= len(i.BufferOffsets) {
		return errors.Newf("BindingMappingInfo flexible set %d is outside the %d sets with offsets", i.FlexibleSet, len(i.BufferOffsets))
	}
	return nil
}

// SetCount returns the number of sets the mapping covers
func (i *BindingMappingInfo) SetCount() int {
	return len(i.BufferOffsets)
}

type DeviceInfo struct {
	Width        uint32
	Height       uint32
	NativeWidth  uint32
	NativeHeight uint32

	BindingMappingInfo BindingMappingInfo
}

type MemoryStatus struct {
	BufferSize  int
	TextureSize int
}

type Offset struct {
	X, Y, Z int32
}

type Rect struct {
	X, Y          int32
	Width, Height uint32
}

func DefaultRect() Rect {
	return Rect{Width: 1, Height: 1}
}

type Extent struct {
	Width, Height, Depth uint32
}

func DefaultExtent() Extent {
	return Extent{Depth: 1}
}

type Viewport struct {
	Left, Top          int32
	Width, Height      uint32
	MinDepth, MaxDepth float32
}

func DefaultViewport() Viewport {
	return Viewport{MaxDepth: 1}
}

type Color struct {
	X, Y, Z, W float32
}
