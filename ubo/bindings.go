package ubo

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/hal/gfx"
)

// SetIndex is the role of a descriptor set in the engine's pipeline layouts
type SetIndex uint32

const (
	SetIndexGlobal SetIndex = iota
	SetIndexMaterial
	SetIndexLocal

	SetIndexCount
)

var setIndexStrings = map[SetIndex]string{
	SetIndexGlobal:   "Global",
	SetIndexMaterial: "Material",
	SetIndexLocal:    "Local",
}

func (s SetIndex) String() string {
	str, ok := setIndexStrings[s]
	if !ok {
		return "unknown SetIndex"
	}
	return str
}

// Bindings in the global set
const (
	GlobalBindingUBOGlobal uint32 = iota
	GlobalBindingUBOShadow
	GlobalBindingSamplerEnvironment
	GlobalBindingSamplerShadowmap

	GlobalBindingCount
)

// Bindings in the local set
const (
	LocalBindingUBOLocal uint32 = iota
	LocalBindingUBOForwardLights
	LocalBindingUBOSkinningAnimation
	LocalBindingUBOSkinningTexture
	LocalBindingUBOMorph
	LocalBindingSamplerJoints
	LocalBindingSamplerMorphPosition
	LocalBindingSamplerMorphNormal
	LocalBindingSamplerMorphTangent
	LocalBindingSamplerLightingMap
	LocalBindingSamplerSprite

	LocalBindingCount
)

// LocalBindingUBOSkinning is the binding of the uniform skinning block, which takes the place of
// the skinning texture block when joints are not baked into a texture
const LocalBindingUBOSkinning = LocalBindingUBOSkinningTexture

// BlockInfo describes a built-in uniform block together with its descriptor set binding
type BlockInfo struct {
	Block   gfx.UniformBlock
	Binding gfx.DescriptorSetLayoutBinding
	Layout  Layout
}

// SamplerBinding describes a built-in combined sampler together with its descriptor set binding
type SamplerBinding struct {
	SamplerTexture gfx.UniformSamplerTexture
	Binding        gfx.DescriptorSetLayoutBinding
}

// DescriptorSetLayouts is a built-in descriptor set's layout, along with the blocks and samplers
// it holds by name
type DescriptorSetLayouts struct {
	Set      SetIndex
	Info     gfx.DescriptorSetLayoutInfo
	Blocks   map[string]BlockInfo
	Samplers map[string]SamplerBinding
}

func newBlockInfo(set SetIndex, binding uint32, stages gfx.ShaderStageFlags, layout Layout) BlockInfo {
	return BlockInfo{
		Block: layout.UniformBlock(uint32(set), binding),
		Binding: gfx.DescriptorSetLayoutBinding{
			Binding:        binding,
			DescriptorType: gfx.DescriptorTypeUniformBuffer,
			Count:          1,
			StageFlags:     stages,
		},
		Layout: layout,
	}
}

func newSamplerBinding(set SetIndex, binding uint32, stages gfx.ShaderStageFlags, name string, samplerType gfx.Type) SamplerBinding {
	return SamplerBinding{
		SamplerTexture: gfx.UniformSamplerTexture{
			Set:     uint32(set),
			Binding: binding,
			Name:    name,
			Type:    samplerType,
			Count:   1,
		},
		Binding: gfx.DescriptorSetLayoutBinding{
			Binding:        binding,
			DescriptorType: gfx.DescriptorTypeSamplerTexture,
			Count:          1,
			StageFlags:     stages,
		},
	}
}

func (l *DescriptorSetLayouts) addBlock(info BlockInfo) {
	l.Blocks[info.Layout.Name] = info
}

func (l *DescriptorSetLayouts) addSampler(info SamplerBinding) {
	l.Samplers[info.SamplerTexture.Name] = info
}

// buildInfo fills Info with one binding per binding number. Blocks that share a binding number
// contribute a single entry.
func (l *DescriptorSetLayouts) buildInfo(bindingCount uint32) error {
	bindings := make([]gfx.DescriptorSetLayoutBinding, bindingCount)
	filled := make([]bool, bindingCount)

	add := func(binding gfx.DescriptorSetLayoutBinding) {
		if filled[binding.Binding] {
			bindings[binding.Binding].StageFlags |= binding.StageFlags
			return
		}
		bindings[binding.Binding] = binding
		filled[binding.Binding] = true
	}

	for _, block := range l.Blocks {
		add(block.Binding)
	}
	for _, sampler := range l.Samplers {
		add(sampler.Binding)
	}

	for binding, ok := range filled {
		if !ok {
			return errors.Newf("%s set has no descriptor at binding %d", l.Set, binding)
		}
	}

	l.Info = gfx.DescriptorSetLayoutInfo{Bindings: bindings}
	return l.Info.Validate()
}

// GlobalSetLayout builds the layout of the per-frame descriptor set
func GlobalSetLayout() (DescriptorSetLayouts, error) {
	layouts := DescriptorSetLayouts{
		Set:      SetIndexGlobal,
		Blocks:   make(map[string]BlockInfo),
		Samplers: make(map[string]SamplerBinding),
	}

	layouts.addBlock(newBlockInfo(SetIndexGlobal, GlobalBindingUBOGlobal, gfx.ShaderStageAll, GlobalLayout()))
	layouts.addBlock(newBlockInfo(SetIndexGlobal, GlobalBindingUBOShadow, gfx.ShaderStageAll, ShadowLayout()))
	layouts.addSampler(newSamplerBinding(SetIndexGlobal, GlobalBindingSamplerEnvironment, gfx.ShaderStageFragment, "cc_environment", gfx.TypeSamplerCube))
	layouts.addSampler(newSamplerBinding(SetIndexGlobal, GlobalBindingSamplerShadowmap, gfx.ShaderStageFragment, "cc_shadowMap", gfx.TypeSampler2D))

	err := layouts.buildInfo(GlobalBindingCount)
	if err != nil {
		return DescriptorSetLayouts{}, errors.Wrap(err, "global set layout")
	}
	return layouts, nil
}

// LocalSetLayout builds the layout of the per-draw descriptor set
func LocalSetLayout() (DescriptorSetLayouts, error) {
	layouts := DescriptorSetLayouts{
		Set:      SetIndexLocal,
		Blocks:   make(map[string]BlockInfo),
		Samplers: make(map[string]SamplerBinding),
	}

	layouts.addBlock(newBlockInfo(SetIndexLocal, LocalBindingUBOLocal, gfx.ShaderStageVertex, LocalLayout()))
	layouts.addBlock(newBlockInfo(SetIndexLocal, LocalBindingUBOLocal, gfx.ShaderStageVertex, LocalBatchedLayout()))
	layouts.addBlock(newBlockInfo(SetIndexLocal, LocalBindingUBOForwardLights, gfx.ShaderStageFragment, ForwardLightLayout()))
	layouts.addBlock(newBlockInfo(SetIndexLocal, LocalBindingUBOSkinningAnimation, gfx.ShaderStageVertex, SkinningAnimationLayout()))
	layouts.addBlock(newBlockInfo(SetIndexLocal, LocalBindingUBOSkinningTexture, gfx.ShaderStageVertex, SkinningTextureLayout()))
	layouts.addBlock(newBlockInfo(SetIndexLocal, LocalBindingUBOSkinning, gfx.ShaderStageVertex, SkinningLayout()))
	layouts.addBlock(newBlockInfo(SetIndexLocal, LocalBindingUBOMorph, gfx.ShaderStageVertex, MorphLayout()))
	layouts.addSampler(newSamplerBinding(SetIndexLocal, LocalBindingSamplerJoints, gfx.ShaderStageVertex, "cc_jointTexture", gfx.TypeSampler2D))
	layouts.addSampler(newSamplerBinding(SetIndexLocal, LocalBindingSamplerMorphPosition, gfx.ShaderStageVertex, "cc_PositionDisplacements", gfx.TypeSampler2D))
	layouts.addSampler(newSamplerBinding(SetIndexLocal, LocalBindingSamplerMorphNormal, gfx.ShaderStageVertex, "cc_NormalDisplacements", gfx.TypeSampler2D))
	layouts.addSampler(newSamplerBinding(SetIndexLocal, LocalBindingSamplerMorphTangent, gfx.ShaderStageVertex, "cc_TangentDisplacements", gfx.TypeSampler2D))
	layouts.addSampler(newSamplerBinding(SetIndexLocal, LocalBindingSamplerLightingMap, gfx.ShaderStageFragment, "cc_lightingMap", gfx.TypeSampler2D))
	layouts.addSampler(newSamplerBinding(SetIndexLocal, LocalBindingSamplerSprite, gfx.ShaderStageFragment, "cc_spriteTexture", gfx.TypeSampler2D))

	err := layouts.buildInfo(LocalBindingCount)
	if err != nil {
		return DescriptorSetLayouts{}, errors.Wrap(err, "local set layout")
	}
	return layouts, nil
}
