package gfx

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
)

// Type is the type of a shader uniform, attribute or resource
type Type int32

const (
	TypeUnknown Type = iota
	TypeBool
	TypeBool2
	TypeBool3
	TypeBool4
	TypeInt
	TypeInt2
	TypeInt3
	TypeInt4
	TypeUInt
	TypeUInt2
	TypeUInt3
	TypeUInt4
	TypeFloat
	TypeFloat2
	TypeFloat3
	TypeFloat4
	TypeMat2
	TypeMat2x3
	TypeMat2x4
	TypeMat3x2
	TypeMat3
	TypeMat3x4
	TypeMat4x2
	TypeMat4x3
	TypeMat4

	TypeSampler1D
	TypeSampler1DArray
	TypeSampler2D
	TypeSampler2DArray
	TypeSampler3D
	TypeSamplerCube

	TypeSampler

	TypeTexture1D
	TypeTexture1DArray
	TypeTexture2D
	TypeTexture2DArray
	TypeTexture3D
	TypeTextureCube

	TypeImage1D
	TypeImage1DArray
	TypeImage2D
	TypeImage2DArray
	TypeImage3D
	TypeImageCube

	TypeSubpassInput

	TypeCount
)

type typeInfo struct {
	name string
	size int
}

var typeInfos = [TypeCount]typeInfo{
	TypeUnknown:        {"Unknown", 0},
	TypeBool:           {"Bool", 4},
	TypeBool2:          {"Bool2", 8},
	TypeBool3:          {"Bool3", 12},
	TypeBool4:          {"Bool4", 16},
	TypeInt:            {"Int", 4},
	TypeInt2:           {"Int2", 8},
	TypeInt3:           {"Int3", 12},
	TypeInt4:           {"Int4", 16},
	TypeUInt:           {"UInt", 4},
	TypeUInt2:          {"UInt2", 8},
	TypeUInt3:          {"UInt3", 12},
	TypeUInt4:          {"UInt4", 16},
	TypeFloat:          {"Float", 4},
	TypeFloat2:         {"Float2", 8},
	TypeFloat3:         {"Float3", 12},
	TypeFloat4:         {"Float4", 16},
	TypeMat2:           {"Mat2", 16},
	TypeMat2x3:         {"Mat2x3", 24},
	TypeMat2x4:         {"Mat2x4", 32},
	TypeMat3x2:         {"Mat3x2", 24},
	TypeMat3:           {"Mat3", 36},
	TypeMat3x4:         {"Mat3x4", 48},
	TypeMat4x2:         {"Mat4x2", 32},
	TypeMat4x3:         {"Mat4x3", 48},
	TypeMat4:           {"Mat4", 64},
	TypeSampler1D:      {"Sampler1D", 4},
	TypeSampler1DArray: {"Sampler1DArray", 4},
	TypeSampler2D:      {"Sampler2D", 4},
	TypeSampler2DArray: {"Sampler2DArray", 4},
	TypeSampler3D:      {"Sampler3D", 4},
	TypeSamplerCube:    {"SamplerCube", 4},
	TypeSampler:        {"Sampler", 4},
	TypeTexture1D:      {"Texture1D", 4},
	TypeTexture1DArray: {"Texture1DArray", 4},
	TypeTexture2D:      {"Texture2D", 4},
	TypeTexture2DArray: {"Texture2DArray", 4},
	TypeTexture3D:      {"Texture3D", 4},
	TypeTextureCube:    {"TextureCube", 4},
	TypeImage1D:        {"Image1D", 4},
	TypeImage1DArray:   {"Image1DArray", 4},
	TypeImage2D:        {"Image2D", 4},
	TypeImage2DArray:   {"Image2DArray", 4},
	TypeImage3D:        {"Image3D", 4},
	TypeImageCube:      {"ImageCube", 4},
	TypeSubpassInput:   {"SubpassInput", 4},
}

func (t Type) String() string {
	if t < 0 || t >= TypeCount {
		return "unknown Type"
	}
	return typeInfos[t].name
}

// Size is the number of bytes a single value of the type occupies, without padding
func (t Type) Size() int {
	if t < 0 || t >= TypeCount {
		return 0
	}
	return typeInfos[t].size
}

func (t Type) IsCombinedImageSampler() bool {
	return t >= TypeSampler1D && t <= TypeSamplerCube
}

func (t Type) IsSampledImage() bool {
	return t >= TypeTexture1D && t <= TypeTextureCube
}

func (t Type) IsStorageImage() bool {
	return t >= TypeImage1D && t <= TypeImageCube
}

// ShaderStageFlags indicate the shader stages a resource is visible to
type ShaderStageFlags int32

var shaderStageFlagsMapping = common.NewFlagStringMapping[ShaderStageFlags]()

func (f ShaderStageFlags) Register(str string) {
	shaderStageFlagsMapping.Register(f, str)
}
func (f ShaderStageFlags) String() string {
	return shaderStageFlagsMapping.FlagsToString(f)
}

const ShaderStageNone ShaderStageFlags = 0

const (
	ShaderStageVertex ShaderStageFlags = 1 << iota
	ShaderStageControl
	ShaderStageEvaluation
	ShaderStageGeometry
	ShaderStageFragment
	ShaderStageCompute
)

const ShaderStageAll ShaderStageFlags = 0x3f

func init() {
	ShaderStageVertex.Register("Vertex")
	ShaderStageControl.Register("Control")
	ShaderStageEvaluation.Register("Evaluation")
	ShaderStageGeometry.Register("Geometry")
	ShaderStageFragment.Register("Fragment")
	ShaderStageCompute.Register("Compute")
}

type Uniform struct {
	Name  string
	Type  Type
	Count uint32
}

type UniformBlock struct {
	Set     uint32
	Binding uint32
	Name    string
	Members []Uniform
	Count   uint32
}

// Size is the tightly packed size of the block's members, in bytes
func (b *UniformBlock) Size() int {
	size := 0
	for _, member := range b.Members {
		size += member.Type.Size() * int(max(member.Count, 1))
	}
	return size
}

type UniformSamplerTexture struct {
	Set     uint32
	Binding uint32
	Name    string
	Type    Type
	Count   uint32
}

type UniformSampler struct {
	Set     uint32
	Binding uint32
	Name    string
	Count   uint32
}

type UniformTexture struct {
	Set     uint32
	Binding uint32
	Name    string
	Type    Type
	Count   uint32
}

type UniformStorageImage struct {
	Set          uint32
	Binding      uint32
	Name         string
	Type         Type
	Count        uint32
	MemoryAccess MemoryAccess
}

type UniformStorageBuffer struct {
	Set          uint32
	Binding      uint32
	Name         string
	Count        uint32
	MemoryAccess MemoryAccess
}

type UniformInputAttachment struct {
	Set     uint32
	Binding uint32
	Name    string
	Count   uint32
}

type ShaderStage struct {
	Stage  ShaderStageFlags
	Source string
}

type Attribute struct {
	Name         string
	Format       Format
	IsNormalized bool
	Stream       uint32
	IsInstanced  bool
	Location     uint32
}

// ShaderInfo is the reflection data of a compiled shader
type ShaderInfo struct {
	Name            string
	Stages          []ShaderStage
	Attributes      []Attribute
	Blocks          []UniformBlock
	Buffers         []UniformStorageBuffer
	SamplerTextures []UniformSamplerTexture
	Samplers        []UniformSampler
	Textures        []UniformTexture
	Images          []UniformStorageImage
	SubpassInputs   []UniformInputAttachment
}

// StageFlags returns every stage the shader has source for
func (i *ShaderInfo) StageFlags() ShaderStageFlags {
	var flags ShaderStageFlags
	for _, stage := range i.Stages {
		flags |= stage.Stage
	}
	return flags
}

type shaderResource struct {
	set            uint32
	binding        uint32
	name           string
	descriptorType DescriptorType
	count          uint32
}

func (i *ShaderInfo) resources() []shaderResource {
	var resources []shaderResource
	for _, block := range i.Blocks {
		resources = append(resources, shaderResource{block.Set, block.Binding, block.Name, DescriptorTypeUniformBuffer, block.Count})
	}
	for _, buffer := range i.Buffers {
		resources = append(resources, shaderResource{buffer.Set, buffer.Binding, buffer.Name, DescriptorTypeStorageBuffer, buffer.Count})
	}
	for _, samplerTexture := range i.SamplerTextures {
		resources = append(resources, shaderResource{samplerTexture.Set, samplerTexture.Binding, samplerTexture.Name, DescriptorTypeSamplerTexture, samplerTexture.Count})
	}
	for _, sampler := range i.Samplers {
		resources = append(resources, shaderResource{sampler.Set, sampler.Binding, sampler.Name, DescriptorTypeSampler, sampler.Count})
	}
	for _, texture := range i.Textures {
		resources = append(resources, shaderResource{texture.Set, texture.Binding, texture.Name, DescriptorTypeTexture, texture.Count})
	}
	for _, image := range i.Images {
		resources = append(resources, shaderResource{image.Set, image.Binding, image.Name, DescriptorTypeStorageImage, image.Count})
	}
	for _, input := range i.SubpassInputs {
		resources = append(resources, shaderResource{input.Set, input.Binding, input.Name, DescriptorTypeInputAttachment, input.Count})
	}
	return resources
}

// Sets returns every descriptor set index the shader's resources use, in ascending order
func (i *ShaderInfo) Sets() []uint32 {
	seen := make(map[uint32]struct{})
	var sets []uint32
	for _, resource := range i.resources() {
		if _, ok := seen[resource.set]; ok {
			continue
		}
		seen[resource.set] = struct{}{}
		sets = append(sets, resource.set)
	}

	sort.Slice(sets, func(a, b int) bool {
		return sets[a] < sets[b]
	})
	return sets
}

// SetLayoutInfo builds the descriptor set layout the shader's resources in one set require. Each
// binding is visible to every stage the shader has.
func (i *ShaderInfo) SetLayoutInfo(set uint32) DescriptorSetLayoutInfo {
	stages := i.StageFlags()

	var info DescriptorSetLayoutInfo
	for _, resource := range i.resources() {
		if resource.set != set {
			continue
		}

		info.Bindings = append(info.Bindings, DescriptorSetLayoutBinding{
			Binding:        resource.binding,
			DescriptorType: resource.descriptorType,
			Count:          max(resource.count, 1),
			StageFlags:     stages,
		})
	}

	sort.Slice(info.Bindings, func(a, b int) bool {
		return info.Bindings[a].Binding < info.Bindings[b].Binding
	})
	return info
}

func (i *ShaderInfo) Validate() error {
	if len(i.Stages) == 0 {
		return errors.Newf("shader %s has no stages", i.Name)
	}

	var stages ShaderStageFlags
	for _, stage := range i.Stages {
		if stage.Stage == ShaderStageNone || stage.Stage&(stage.Stage-1) != 0 || stage.Stage&^ShaderStageAll != 0 {
			return errors.Newf("shader %s has a stage entry for %s, which is not a single stage", i.Name, stage.Stage)
		}
		if stages&stage.Stage != 0 {
			return errors.Newf("shader %s has more than one %s stage", i.Name, stage.Stage)
		}
		stages |= stage.Stage
	}
	if stages&ShaderStageCompute != 0 && stages != ShaderStageCompute {
		return errors.Wrapf(ErrInvalidUsageCombination, "shader %s combines a compute stage with %s", i.Name, stages&^ShaderStageCompute)
	}
	if stages&ShaderStageCompute != 0 && len(i.Attributes) > 0 {
		return errors.Wrapf(ErrInvalidUsageCombination, "compute shader %s declares vertex attributes", i.Name)
	}

	locations := make(map[uint32]string, len(i.Attributes))
	for _, attribute := range i.Attributes {
		_, err := FormatInfoOf(attribute.Format)
		if err != nil {
			return errors.Wrapf(err, "shader %s attribute %s", i.Name, attribute.Name)
		}
		if attribute.Format.IsCompressed() || attribute.Format.IsDepthStencil() {
			return errors.Wrapf(ErrInvalidUsageCombination, "shader %s attribute %s cannot use format %s", i.Name, attribute.Name, attribute.Format)
		}

		other, duplicate := locations[attribute.Location]
		if duplicate {
			return errors.Newf("shader %s attributes %s and %s share location %d", i.Name, other, attribute.Name, attribute.Location)
		}
		locations[attribute.Location] = attribute.Name
	}

	for _, set := range i.Sets() {
		layout := i.SetLayoutInfo(set)
		err := layout.Validate()
		if err != nil {
			return errors.Wrapf(err, "shader %s set %d", i.Name, set)
		}
	}

	return nil
}
