package gfx

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
)

type PipelineBindPoint int32

const (
	PipelineBindPointGraphics PipelineBindPoint = iota
	PipelineBindPointCompute
	PipelineBindPointRayTracing
)

var pipelineBindPointStrings = map[PipelineBindPoint]string{
	PipelineBindPointGraphics:   "Graphics",
	PipelineBindPointCompute:    "Compute",
	PipelineBindPointRayTracing: "RayTracing",
}

func (p PipelineBindPoint) String() string {
	str, ok := pipelineBindPointStrings[p]
	if !ok {
		return "unknown PipelineBindPoint"
	}
	return str
}

type PrimitiveMode int32

const (
	PrimitiveModePointList PrimitiveMode = iota
	PrimitiveModeLineList
	PrimitiveModeLineStrip
	PrimitiveModeLineLoop
	PrimitiveModeLineListAdjacency
	PrimitiveModeLineStripAdjacency
	PrimitiveModeIsoLineList
	PrimitiveModeTriangleList
	PrimitiveModeTriangleStrip
	PrimitiveModeTriangleFan
	PrimitiveModeTriangleListAdjacency
	PrimitiveModeTriangleStripAdjacency
	PrimitiveModeTrianglePatchAdjacency
	PrimitiveModeQuadPatchList
)

var primitiveModeStrings = map[PrimitiveMode]string{
	PrimitiveModePointList:              "PointList",
	PrimitiveModeLineList:               "LineList",
	PrimitiveModeLineStrip:              "LineStrip",
	PrimitiveModeLineLoop:               "LineLoop",
	PrimitiveModeLineListAdjacency:      "LineListAdjacency",
	PrimitiveModeLineStripAdjacency:     "LineStripAdjacency",
	PrimitiveModeIsoLineList:            "IsoLineList",
	PrimitiveModeTriangleList:           "TriangleList",
	PrimitiveModeTriangleStrip:          "TriangleStrip",
	PrimitiveModeTriangleFan:            "TriangleFan",
	PrimitiveModeTriangleListAdjacency:  "TriangleListAdjacency",
	PrimitiveModeTriangleStripAdjacency: "TriangleStripAdjacency",
	PrimitiveModeTrianglePatchAdjacency: "TrianglePatchAdjacency",
	PrimitiveModeQuadPatchList:          "QuadPatchList",
}

func (m PrimitiveMode) String() string {
	str, ok := primitiveModeStrings[m]
	if !ok {
		return "unknown PrimitiveMode"
	}
	return str
}

// IsRaycastDetectable returns true for primitive modes made of triangles
func (m PrimitiveMode) IsRaycastDetectable() bool {
	return m >= PrimitiveModeTriangleList
}

type PolygonMode int32

const (
	PolygonModeFill PolygonMode = iota
	PolygonModePoint
	PolygonModeLine
)

type ShadeModel int32

const (
	ShadeModelGouraud ShadeModel = iota
	ShadeModelFlat
)

type CullMode int32

const (
	CullModeNone CullMode = iota
	CullModeFront
	CullModeBack
)

type StencilFace int32

const (
	StencilFaceFront StencilFace = iota
	StencilFaceBack
	StencilFaceAll
)

type StencilOp int32

const (
	StencilOpZero StencilOp = iota
	StencilOpKeep
	StencilOpReplace
	StencilOpIncr
	StencilOpDecr
	StencilOpInvert
	StencilOpIncrWrap
	StencilOpDecrWrap
)

type BlendFactor int32

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
	BlendFactorSrcAlpha
	BlendFactorDstAlpha
	BlendFactorOneMinusSrcAlpha
	BlendFactorOneMinusDstAlpha
	BlendFactorSrcColor
	BlendFactorDstColor
	BlendFactorOneMinusSrcColor
	BlendFactorOneMinusDstColor
	BlendFactorSrcAlphaSaturate
	BlendFactorConstantColor
	BlendFactorOneMinusConstantColor
	BlendFactorConstantAlpha
	BlendFactorOneMinusConstantAlpha
)

type BlendOp int32

const (
	BlendOpAdd BlendOp = iota
	BlendOpSub
	BlendOpRevSub
	BlendOpMin
	BlendOpMax
)

// ColorMask selects the channels a blend target writes
type ColorMask int32

var colorMaskMapping = common.NewFlagStringMapping[ColorMask]()

func (f ColorMask) Register(str string) {
	colorMaskMapping.Register(f, str)
}
func (f ColorMask) String() string {
	return colorMaskMapping.FlagsToString(f)
}

const ColorMaskNone ColorMask = 0

const (
	ColorMaskR ColorMask = 1 << iota
	ColorMaskG
	ColorMaskB
	ColorMaskA
)

const ColorMaskAll = ColorMaskR | ColorMaskG | ColorMaskB | ColorMaskA

// DynamicStateFlags select pipeline state that is set on the command buffer instead of baked
// into the pipeline
type DynamicStateFlags int32

var dynamicStateFlagsMapping = common.NewFlagStringMapping[DynamicStateFlags]()

func (f DynamicStateFlags) Register(str string) {
	dynamicStateFlagsMapping.Register(f, str)
}
func (f DynamicStateFlags) String() string {
	return dynamicStateFlagsMapping.FlagsToString(f)
}

const DynamicStateNone DynamicStateFlags = 0

const (
	DynamicStateViewport DynamicStateFlags = 1 << iota
	DynamicStateScissor
	DynamicStateLineWidth
	DynamicStateDepthBias
	DynamicStateBlendConstants
	DynamicStateDepthBounds
	DynamicStateStencilWriteMask
	DynamicStateStencilCompareMask
)

func init() {
	ColorMaskR.Register("R")
	ColorMaskG.Register("G")
	ColorMaskB.Register("B")
	ColorMaskA.Register("A")

	DynamicStateViewport.Register("Viewport")
	DynamicStateScissor.Register("Scissor")
	DynamicStateLineWidth.Register("LineWidth")
	DynamicStateDepthBias.Register("DepthBias")
	DynamicStateBlendConstants.Register("BlendConstants")
	DynamicStateDepthBounds.Register("DepthBounds")
	DynamicStateStencilWriteMask.Register("StencilWriteMask")
	DynamicStateStencilCompareMask.Register("StencilCompareMask")
}

// RequiredFeatures returns the device features the dynamic states depend on
func (f DynamicStateFlags) RequiredFeatures() []Feature {
	var features []Feature
	if f&DynamicStateLineWidth != 0 {
		features = append(features, FeatureLineWidth)
	}
	if f&DynamicStateDepthBounds != 0 {
		features = append(features, FeatureDepthBounds)
	}
	if f&DynamicStateStencilWriteMask != 0 {
		features = append(features, FeatureStencilWriteMask)
	}
	if f&DynamicStateStencilCompareMask != 0 {
		features = append(features, FeatureStencilCompareMask)
	}
	return features
}

type RasterizerState struct {
	IsDiscard        bool
	PolygonMode      PolygonMode
	ShadeModel       ShadeModel
	CullMode         CullMode
	IsFrontFaceCCW   bool
	DepthBiasEnabled bool
	DepthBias        float32
	DepthBiasClamp   float32
	DepthBiasSlop    float32
	IsDepthClip      bool
	IsMultisample    bool
	LineWidth        float32
}

func DefaultRasterizerState() RasterizerState {
	return RasterizerState{
		PolygonMode:    PolygonModeFill,
		ShadeModel:     ShadeModelGouraud,
		CullMode:       CullModeBack,
		IsFrontFaceCCW: true,
		IsDepthClip:    true,
		LineWidth:      1,
	}
}

// StencilState is the stencil configuration of one face
type StencilState struct {
	Test      bool
	Func      ComparisonFunc
	ReadMask  uint32
	WriteMask uint32
	FailOp    StencilOp
	ZFailOp   StencilOp
	PassOp    StencilOp
	Ref       uint32
}

func DefaultStencilState() StencilState {
	return StencilState{
		Func:      ComparisonFuncAlways,
		ReadMask:  0xffffffff,
		WriteMask: 0xffffffff,
		FailOp:    StencilOpKeep,
		ZFailOp:   StencilOpKeep,
		PassOp:    StencilOpKeep,
		Ref:       1,
	}
}

type DepthStencilState struct {
	DepthTest  bool
	DepthWrite bool
	DepthFunc  ComparisonFunc
	Front      StencilState
	Back       StencilState
}

func DefaultDepthStencilState() DepthStencilState {
	return DepthStencilState{
		DepthTest:  true,
		DepthWrite: true,
		DepthFunc:  ComparisonFuncLess,
		Front:      DefaultStencilState(),
		Back:       DefaultStencilState(),
	}
}

type BlendTarget struct {
	Blend          bool
	BlendSrc       BlendFactor
	BlendDst       BlendFactor
	BlendEq        BlendOp
	BlendSrcAlpha  BlendFactor
	BlendDstAlpha  BlendFactor
	BlendAlphaEq   BlendOp
	BlendColorMask ColorMask
}

func DefaultBlendTarget() BlendTarget {
	return BlendTarget{
		BlendSrc:       BlendFactorOne,
		BlendDst:       BlendFactorZero,
		BlendEq:        BlendOpAdd,
		BlendSrcAlpha:  BlendFactorOne,
		BlendDstAlpha:  BlendFactorZero,
		BlendAlphaEq:   BlendOpAdd,
		BlendColorMask: ColorMaskAll,
	}
}

type BlendState struct {
	IsA2C      bool
	IsIndepend bool
	BlendColor Color
	Targets    []BlendTarget
}

func DefaultBlendState() BlendState {
	return BlendState{
		Targets: []BlendTarget{DefaultBlendTarget()},
	}
}

type InputState struct {
	Attributes []Attribute
}

type PipelineStateInfo struct {
	Shader            Shader
	PipelineLayout    PipelineLayout
	RenderPass        RenderPass
	InputState        InputState
	RasterizerState   RasterizerState
	DepthStencilState DepthStencilState
	BlendState        BlendState
	Primitive         PrimitiveMode
	DynamicStates     DynamicStateFlags
	BindPoint         PipelineBindPoint
}

func DefaultPipelineStateInfo() PipelineStateInfo {
	return PipelineStateInfo{
		RasterizerState:   DefaultRasterizerState(),
		DepthStencilState: DefaultDepthStencilState(),
		BlendState:        DefaultBlendState(),
		Primitive:         PrimitiveModeTriangleList,
		BindPoint:         PipelineBindPointGraphics,
	}
}

func (i *PipelineStateInfo) Validate() error {
	if i.Shader == nil {
		return errors.New("a pipeline state must have a shader")
	}
	if i.PipelineLayout == nil {
		return errors.New("a pipeline state must have a pipeline layout")
	}

	shader := i.Shader.Info()
	computeShader := shader.StageFlags()&ShaderStageCompute != 0

	switch i.BindPoint {
	case PipelineBindPointCompute:
		if !computeShader {
			return errors.Wrapf(ErrInvalidUsageCombination, "compute pipeline uses shader %s, which has no compute stage", shader.Name)
		}
		return nil
	case PipelineBindPointGraphics:
		if computeShader {
			return errors.Wrapf(ErrInvalidUsageCombination, "graphics pipeline uses compute shader %s", shader.Name)
		}
	default:
		return errors.Newf("pipeline bind point %s is not supported", i.BindPoint)
	}

	if i.RenderPass == nil {
		return errors.New("a graphics pipeline state must have a render pass")
	}

	renderPass := i.RenderPass.Info()
	if i.BlendState.IsIndepend && len(i.BlendState.Targets) != len(renderPass.ColorAttachments) {
		return errors.Newf("independent blending needs one blend target per color attachment, but there were %d targets for %d attachments",
			len(i.BlendState.Targets), len(renderPass.ColorAttachments))
	}
	if len(i.BlendState.Targets) > len(renderPass.ColorAttachments) && len(i.BlendState.Targets) > 1 {
		return errors.Newf("pipeline has %d blend targets but its render pass has only %d color attachments",
			len(i.BlendState.Targets), len(renderPass.ColorAttachments))
	}
	if i.RasterizerState.DepthBiasEnabled && i.RasterizerState.IsDiscard {
		return errors.Wrap(ErrInvalidUsageCombination, "depth bias has no effect when rasterization is discarded")
	}

	return nil
}

type CommandBufferType int32

const (
	CommandBufferTypePrimary CommandBufferType = iota
	CommandBufferTypeSecondary
)

type CommandBufferInfo struct {
	Queue Queue
	Type  CommandBufferType
}
