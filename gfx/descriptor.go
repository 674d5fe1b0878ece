package gfx

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
)

// DescriptorType is a single descriptor kind. Values are distinct bits so that sets of types can
// be expressed as masks.
type DescriptorType int32

var descriptorTypeMapping = common.NewFlagStringMapping[DescriptorType]()

func (f DescriptorType) Register(str string) {
	descriptorTypeMapping.Register(f, str)
}
func (f DescriptorType) String() string {
	return descriptorTypeMapping.FlagsToString(f)
}

const DescriptorTypeUnknown DescriptorType = 0

const (
	DescriptorTypeUniformBuffer DescriptorType = 1 << iota
	DescriptorTypeDynamicUniformBuffer
	DescriptorTypeStorageBuffer
	DescriptorTypeDynamicStorageBuffer
	DescriptorTypeSamplerTexture
	DescriptorTypeSampler
	DescriptorTypeTexture
	DescriptorTypeStorageImage
	DescriptorTypeInputAttachment
)

const (
	// DescriptorBufferTypes is every descriptor type that binds a buffer
	DescriptorBufferTypes = DescriptorTypeUniformBuffer | DescriptorTypeDynamicUniformBuffer |
		DescriptorTypeStorageBuffer | DescriptorTypeDynamicStorageBuffer
	// DescriptorTextureTypes is every descriptor type that binds a texture, sampler or image
	DescriptorTextureTypes = DescriptorTypeSamplerTexture | DescriptorTypeSampler | DescriptorTypeTexture |
		DescriptorTypeStorageImage | DescriptorTypeInputAttachment
	// DescriptorDynamicTypes is every descriptor type that takes a dynamic offset at bind time
	DescriptorDynamicTypes = DescriptorTypeDynamicUniformBuffer | DescriptorTypeDynamicStorageBuffer
)

func init() {
	DescriptorTypeUniformBuffer.Register("UniformBuffer")
	DescriptorTypeDynamicUniformBuffer.Register("DynamicUniformBuffer")
	DescriptorTypeStorageBuffer.Register("StorageBuffer")
	DescriptorTypeDynamicStorageBuffer.Register("DynamicStorageBuffer")
	DescriptorTypeSamplerTexture.Register("SamplerTexture")
	DescriptorTypeSampler.Register("Sampler")
	DescriptorTypeTexture.Register("Texture")
	DescriptorTypeStorageImage.Register("StorageImage")
	DescriptorTypeInputAttachment.Register("InputAttachment")
}

// IsSingle returns true when the value holds exactly one descriptor type
func (f DescriptorType) IsSingle() bool {
	return f != DescriptorTypeUnknown && f&(f-1) == 0 && f&^(DescriptorBufferTypes|DescriptorTextureTypes) == 0
}

func (f DescriptorType) IsBuffer() bool {
	return f.IsSingle() && f&DescriptorBufferTypes != 0
}

func (f DescriptorType) IsTexture() bool {
	return f.IsSingle() && f&DescriptorTextureTypes != 0
}

func (f DescriptorType) IsDynamic() bool {
	return f.IsSingle() && f&DescriptorDynamicTypes != 0
}

// DescriptorClass groups descriptor types that share a binding space in flat-binding backends
type DescriptorClass int32

const (
	DescriptorClassBuffer DescriptorClass = iota
	DescriptorClassTexture

	DescriptorClassCount
)

var descriptorClassStrings = map[DescriptorClass]string{
	DescriptorClassBuffer:  "Buffer",
	DescriptorClassTexture: "Texture",
}

func (c DescriptorClass) String() string {
	str, ok := descriptorClassStrings[c]
	if !ok {
		return "unknown DescriptorClass"
	}
	return str
}

// Class returns the binding space a single descriptor type belongs to
func (f DescriptorType) Class() (DescriptorClass, error) {
	switch {
	case f.IsBuffer():
		return DescriptorClassBuffer, nil
	case f.IsTexture():
		return DescriptorClassTexture, nil
	}

	return 0, errors.Newf("descriptor type %s does not belong to a descriptor class", f)
}

type DescriptorSetLayoutBinding struct {
	Binding           uint32
	DescriptorType    DescriptorType
	Count             uint32
	StageFlags        ShaderStageFlags
	ImmutableSamplers []Sampler
}

func DefaultDescriptorSetLayoutBinding() DescriptorSetLayoutBinding {
	return DescriptorSetLayoutBinding{
		Binding: InvalidBinding,
	}
}

type DescriptorSetLayoutInfo struct {
	Bindings []DescriptorSetLayoutBinding
}

// ClassBindings returns the binding numbers belonging to a descriptor class, in ascending order
func (i *DescriptorSetLayoutInfo) ClassBindings(class DescriptorClass) []uint32 {
	var bindings []uint32
	for _, binding := range i.Bindings {
		bindingClass, err := binding.DescriptorType.Class()
		if err != nil || bindingClass != class {
			continue
		}
		bindings = append(bindings, binding.Binding)
	}

	sort.Slice(bindings, func(a, b int) bool {
		return bindings[a] < bindings[b]
	})
	return bindings
}

// Validate checks that each binding holds a single descriptor type, that no binding number is
// used twice, and that the binding numbers of each descriptor class are contiguous
func (i *DescriptorSetLayoutInfo) Validate() error {
	seen := make(map[uint32]int, len(i.Bindings))
	for index, binding := range i.Bindings {
		if !binding.DescriptorType.IsSingle() {
			return errors.Newf("binding %d must have exactly one descriptor type, but had %s", binding.Binding, binding.DescriptorType)
		}
		if binding.Count == 0 {
			return errors.Newf("binding %d has a descriptor count of 0", binding.Binding)
		}
		if binding.StageFlags == ShaderStageNone {
			return errors.Newf("binding %d is not visible to any shader stage", binding.Binding)
		}
		if len(binding.ImmutableSamplers) > 0 {
			if binding.DescriptorType != DescriptorTypeSampler && binding.DescriptorType != DescriptorTypeSamplerTexture {
				return errors.Wrapf(ErrInvalidUsageCombination, "binding %d has immutable samplers but is of type %s", binding.Binding, binding.DescriptorType)
			}
			if uint32(len(binding.ImmutableSamplers)) != binding.Count {
				return errors.Newf("binding %d has %d immutable samplers but a descriptor count of %d", binding.Binding, len(binding.ImmutableSamplers), binding.Count)
			}
		}

		other, duplicate := seen[binding.Binding]
		if duplicate {
			return errors.Newf("binding number %d is used by both entry %d and entry %d", binding.Binding, other, index)
		}
		seen[binding.Binding] = index
	}

	for class := DescriptorClass(0); class < DescriptorClassCount; class++ {
		bindings := i.ClassBindings(class)
		for index := 1; index < len(bindings); index++ {
			if bindings[index] != bindings[index-1]+1 {
				return errors.Wrapf(ErrNonContiguousBinding, "%s bindings jump from %d to %d", class, bindings[index-1], bindings[index])
			}
		}
	}

	return nil
}

type DescriptorSetInfo struct {
	Layout DescriptorSetLayout
}

type PipelineLayoutInfo struct {
	SetLayouts []DescriptorSetLayout
}

// SetLayoutInfos collects the info of each set layout, indexed by set
func (i *PipelineLayoutInfo) SetLayoutInfos() ([]DescriptorSetLayoutInfo, error) {
	infos := make([]DescriptorSetLayoutInfo, 0, len(i.SetLayouts))
	for set, layout := range i.SetLayouts {
		if layout == nil {
			return nil, errors.Newf("pipeline layout set %d has no layout", set)
		}
		infos = append(infos, layout.Info())
	}
	return infos, nil
}

func (i *PipelineLayoutInfo) Validate() error {
	infos, err := i.SetLayoutInfos()
	if err != nil {
		return err
	}

	for set := range infos {
		err = infos[set].Validate()
		if err != nil {
			return errors.Wrapf(err, "set %d", set)
		}
	}

	return nil
}
