package ubo

import (
	"github.com/vkngwrapper/hal/gfx"
)

// Slot offsets of the global block. Every member is a vec4 or a mat4.
const (
	GlobalTimeOffset           uint32 = 0
	GlobalScreenSizeOffset            = GlobalTimeOffset + 4
	GlobalScreenScaleOffset           = GlobalScreenSizeOffset + 4
	GlobalNativeSizeOffset            = GlobalScreenScaleOffset + 4
	GlobalMatViewOffset               = GlobalNativeSizeOffset + 4
	GlobalMatViewInvOffset            = GlobalMatViewOffset + 16
	GlobalMatProjOffset               = GlobalMatViewInvOffset + 16
	GlobalMatProjInvOffset            = GlobalMatProjOffset + 16
	GlobalMatViewProjOffset           = GlobalMatProjInvOffset + 16
	GlobalMatViewProjInvOffset        = GlobalMatViewProjOffset + 16
	GlobalCameraOffset                = GlobalMatViewProjInvOffset + 16
	GlobalExposureOffset              = GlobalCameraOffset + 4
	GlobalMainLitDirOffset            = GlobalExposureOffset + 4
	GlobalMainLitColorOffset          = GlobalMainLitDirOffset + 4
	GlobalAmbientSkyOffset            = GlobalMainLitColorOffset + 4
	GlobalAmbientGroundOffset         = GlobalAmbientSkyOffset + 4
	GlobalFogColorOffset              = GlobalAmbientGroundOffset + 4
	GlobalFogBaseOffset               = GlobalFogColorOffset + 4
	GlobalFogAddOffset                = GlobalFogBaseOffset + 4
	GlobalCount                       = GlobalFogAddOffset + 4
	GlobalSize                        = GlobalCount * slotSize
)

const (
	ShadowMatLightPlaneProjOffset uint32 = 0
	ShadowMatLightViewProjOffset         = ShadowMatLightPlaneProjOffset + 16
	ShadowColorOffset                    = ShadowMatLightViewProjOffset + 16
	ShadowCount                          = ShadowColorOffset + 4
	ShadowSize                           = ShadowCount * slotSize
)

const (
	LocalMatWorldOffset            uint32 = 0
	LocalMatWorldITOffset                 = LocalMatWorldOffset + 16
	LocalLightingMapUVParamOffset         = LocalMatWorldITOffset + 16
	LocalCount                            = LocalLightingMapUVParamOffset + 4
	LocalSize                             = LocalCount * slotSize
)

// BatchingCount is the number of world matrices in the batched local block
const BatchingCount uint32 = 10

const (
	LocalBatchedMatWorldsOffset uint32 = 0
	LocalBatchedCount                  = LocalBatchedMatWorldsOffset + 16*BatchingCount
	LocalBatchedSize                   = LocalBatchedCount * slotSize
)

// LightsPerPass is the number of lights the forward light block holds
const LightsPerPass uint32 = 1

const (
	ForwardLightPosOffset            uint32 = 0
	ForwardLightColorOffset                 = ForwardLightPosOffset + 4*LightsPerPass
	ForwardLightSizeRangeAngleOffset        = ForwardLightColorOffset + 4*LightsPerPass
	ForwardLightDirOffset                   = ForwardLightSizeRangeAngleOffset + 4*LightsPerPass
	ForwardLightCount                       = ForwardLightDirOffset + 4*LightsPerPass
	ForwardLightSize                        = ForwardLightCount * slotSize
)

const (
	SkinningTextureJointTextureInfoOffset uint32 = 0
	SkinningTextureCount                         = SkinningTextureJointTextureInfoOffset + 4
	SkinningTextureSize                          = SkinningTextureCount * slotSize
)

const (
	SkinningAnimationJointAnimInfoOffset uint32 = 0
	SkinningAnimationCount                      = SkinningAnimationJointAnimInfoOffset + 4
	SkinningAnimationSize                       = SkinningAnimationCount * slotSize
)

// JointUniformCapacity is the number of joints the uniform skinning block holds. Each joint is
// a 3x4 matrix stored as three vec4s.
const JointUniformCapacity uint32 = 30

const (
	SkinningJointsOffset uint32 = 0
	SkinningCount               = SkinningJointsOffset + 12*JointUniformCapacity
	SkinningSize                = SkinningCount * slotSize
)

// MaxMorphTargetCount is the number of morph target weights the morph block holds
const MaxMorphTargetCount uint32 = 60

// The morph weights are rounded up to whole vec4s. The displacement texture's width and height
// share the following vec4 with two padding slots.
const (
	MorphWeightsOffset                  uint32 = 0
	MorphDisplacementTextureWidthOffset        = MorphWeightsOffset + 4*((MaxMorphTargetCount+3)/4)
	MorphDisplacementTextureHeightOffset       = MorphDisplacementTextureWidthOffset + 1
	MorphCount                                 = MorphDisplacementTextureWidthOffset + 4
	MorphSize                                  = MorphCount * slotSize
)

var globalLayout = Layout{
	Name: "CCGlobal",
	Fields: []Field{
		{Name: "cc_time", Type: gfx.TypeFloat4, Count: 1, Offset: GlobalTimeOffset},
		{Name: "cc_screenSize", Type: gfx.TypeFloat4, Count: 1, Offset: GlobalScreenSizeOffset},
		{Name: "cc_screenScale", Type: gfx.TypeFloat4, Count: 1, Offset: GlobalScreenScaleOffset},
		{Name: "cc_nativeSize", Type: gfx.TypeFloat4, Count: 1, Offset: GlobalNativeSizeOffset},
		{Name: "cc_matView", Type: gfx.TypeMat4, Count: 1, Offset: GlobalMatViewOffset},
		{Name: "cc_matViewInv", Type: gfx.TypeMat4, Count: 1, Offset: GlobalMatViewInvOffset},
		{Name: "cc_matProj", Type: gfx.TypeMat4, Count: 1, Offset: GlobalMatProjOffset},
		{Name: "cc_matProjInv", Type: gfx.TypeMat4, Count: 1, Offset: GlobalMatProjInvOffset},
		{Name: "cc_matViewProj", Type: gfx.TypeMat4, Count: 1, Offset: GlobalMatViewProjOffset},
		{Name: "cc_matViewProjInv", Type: gfx.TypeMat4, Count: 1, Offset: GlobalMatViewProjInvOffset},
		{Name: "cc_cameraPos", Type: gfx.TypeFloat4, Count: 1, Offset: GlobalCameraOffset},
		{Name: "cc_exposure", Type: gfx.TypeFloat4, Count: 1, Offset: GlobalExposureOffset},
		{Name: "cc_mainLitDir", Type: gfx.TypeFloat4, Count: 1, Offset: GlobalMainLitDirOffset},
		{Name: "cc_mainLitColor", Type: gfx.TypeFloat4, Count: 1, Offset: GlobalMainLitColorOffset},
		{Name: "cc_ambientSky", Type: gfx.TypeFloat4, Count: 1, Offset: GlobalAmbientSkyOffset},
		{Name: "cc_ambientGround", Type: gfx.TypeFloat4, Count: 1, Offset: GlobalAmbientGroundOffset},
		{Name: "cc_fogColor", Type: gfx.TypeFloat4, Count: 1, Offset: GlobalFogColorOffset},
		{Name: "cc_fogBase", Type: gfx.TypeFloat4, Count: 1, Offset: GlobalFogBaseOffset},
		{Name: "cc_fogAdd", Type: gfx.TypeFloat4, Count: 1, Offset: GlobalFogAddOffset},
	},
	Count: GlobalCount,
	Size:  GlobalSize,
}

var shadowLayout = Layout{
	Name: "CCShadow",
	Fields: []Field{
		{Name: "cc_matLightPlaneProj", Type: gfx.TypeMat4, Count: 1, Offset: ShadowMatLightPlaneProjOffset},
		{Name: "cc_matLightViewProj", Type: gfx.TypeMat4, Count: 1, Offset: ShadowMatLightViewProjOffset},
		{Name: "cc_shadowColor", Type: gfx.TypeFloat4, Count: 1, Offset: ShadowColorOffset},
	},
	Count: ShadowCount,
	Size:  ShadowSize,
}

var localLayout = Layout{
	Name: "CCLocal",
	Fields: []Field{
		{Name: "cc_matWorld", Type: gfx.TypeMat4, Count: 1, Offset: LocalMatWorldOffset},
		{Name: "cc_matWorldIT", Type: gfx.TypeMat4, Count: 1, Offset: LocalMatWorldITOffset},
		{Name: "cc_lightingMapUVParam", Type: gfx.TypeFloat4, Count: 1, Offset: LocalLightingMapUVParamOffset},
	},
	Count: LocalCount,
	Size:  LocalSize,
}

var localBatchedLayout = Layout{
	Name: "CCLocalBatched",
	Fields: []Field{
		{Name: "cc_matWorlds", Type: gfx.TypeMat4, Count: BatchingCount, Offset: LocalBatchedMatWorldsOffset},
	},
	Count: LocalBatchedCount,
	Size:  LocalBatchedSize,
}

var forwardLightLayout = Layout{
	Name: "CCForwardLight",
	Fields: []Field{
		{Name: "cc_lightPos", Type: gfx.TypeFloat4, Count: LightsPerPass, Offset: ForwardLightPosOffset},
		{Name: "cc_lightColor", Type: gfx.TypeFloat4, Count: LightsPerPass, Offset: ForwardLightColorOffset},
		{Name: "cc_lightSizeRangeAngle", Type: gfx.TypeFloat4, Count: LightsPerPass, Offset: ForwardLightSizeRangeAngleOffset},
		{Name: "cc_lightDir", Type: gfx.TypeFloat4, Count: LightsPerPass, Offset: ForwardLightDirOffset},
	},
	Count: ForwardLightCount,
	Size:  ForwardLightSize,
}

var skinningTextureLayout = Layout{
	Name: "CCSkinningTexture",
	Fields: []Field{
		{Name: "cc_jointTextureInfo", Type: gfx.TypeFloat4, Count: 1, Offset: SkinningTextureJointTextureInfoOffset},
	},
	Count: SkinningTextureCount,
	Size:  SkinningTextureSize,
}

var skinningAnimationLayout = Layout{
	Name: "CCSkinningAnimation",
	Fields: []Field{
		{Name: "cc_jointAnimInfo", Type: gfx.TypeFloat4, Count: 1, Offset: SkinningAnimationJointAnimInfoOffset},
	},
	Count: SkinningAnimationCount,
	Size:  SkinningAnimationSize,
}

var skinningLayout = Layout{
	Name: "CCSkinning",
	Fields: []Field{
		{Name: "cc_joints", Type: gfx.TypeFloat4, Count: 3 * JointUniformCapacity, Offset: SkinningJointsOffset},
	},
	Count: SkinningCount,
	Size:  SkinningSize,
}

var morphLayout = Layout{
	Name: "CCMorph",
	Fields: []Field{
		{Name: "cc_displacementWeights", Type: gfx.TypeFloat4, Count: MorphDisplacementTextureWidthOffset / 4, Offset: MorphWeightsOffset},
		{Name: "cc_displacementTextureInfo", Type: gfx.TypeFloat4, Count: 1, Offset: MorphDisplacementTextureWidthOffset},
	},
	Count: MorphCount,
	Size:  MorphSize,
}

func GlobalLayout() Layout            { return globalLayout.Clone() }
func ShadowLayout() Layout            { return shadowLayout.Clone() }
func LocalLayout() Layout             { return localLayout.Clone() }
func LocalBatchedLayout() Layout      { return localBatchedLayout.Clone() }
func ForwardLightLayout() Layout      { return forwardLightLayout.Clone() }
func SkinningTextureLayout() Layout   { return skinningTextureLayout.Clone() }
func SkinningAnimationLayout() Layout { return skinningAnimationLayout.Clone() }
func SkinningLayout() Layout          { return skinningLayout.Clone() }
func MorphLayout() Layout             { return morphLayout.Clone() }

// Builtins returns a copy of every built-in block layout
func Builtins() []Layout {
	return []Layout{
		GlobalLayout(),
		ShadowLayout(),
		LocalLayout(),
		LocalBatchedLayout(),
		ForwardLightLayout(),
		SkinningTextureLayout(),
		SkinningAnimationLayout(),
		SkinningLayout(),
		MorphLayout(),
	}
}
