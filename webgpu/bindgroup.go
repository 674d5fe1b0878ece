package webgpu

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/vkngwrapper/hal/gfx"
)

var viewDimensions = map[gfx.Type]gputypes.TextureViewDimension{
	gfx.TypeSampler1D:      gputypes.TextureViewDimension1D,
	gfx.TypeSampler2D:      gputypes.TextureViewDimension2D,
	gfx.TypeSampler2DArray: gputypes.TextureViewDimension2DArray,
	gfx.TypeSampler3D:      gputypes.TextureViewDimension3D,
	gfx.TypeSamplerCube:    gputypes.TextureViewDimensionCube,
	gfx.TypeTexture1D:      gputypes.TextureViewDimension1D,
	gfx.TypeTexture2D:      gputypes.TextureViewDimension2D,
	gfx.TypeTexture2DArray: gputypes.TextureViewDimension2DArray,
	gfx.TypeTexture3D:      gputypes.TextureViewDimension3D,
	gfx.TypeTextureCube:    gputypes.TextureViewDimensionCube,
	gfx.TypeImage1D:        gputypes.TextureViewDimension1D,
	gfx.TypeImage2D:        gputypes.TextureViewDimension2D,
	gfx.TypeImage2DArray:   gputypes.TextureViewDimension2DArray,
	gfx.TypeImage3D:        gputypes.TextureViewDimension3D,
	gfx.TypeSubpassInput:   gputypes.TextureViewDimension2D,
}

// StorageImageFormat is the format given to storage texture entries, since shader reflection
// does not carry one
const StorageImageFormat = gputypes.TextureFormatRGBA8Unorm

// BindGroupLayout is a descriptor set layout expressed as a WebGPU bind group layout. WebGPU
// has no combined image samplers, so each one is split into a texture entry at the original
// binding and a sampler entry at a new binding past the end of the set.
type BindGroupLayout struct {
	Descriptor gputypes.BindGroupLayoutDescriptor
	// SamplerBindings maps the binding of each combined image sampler to its sampler entry
	SamplerBindings map[uint32]uint32
}

type reflectedResource struct {
	resourceType gfx.Type
	access       gfx.MemoryAccess
}

func reflectSet(shader *gfx.ShaderInfo, set uint32) map[uint32]reflectedResource {
	resources := make(map[uint32]reflectedResource)
	if shader == nil {
		return resources
	}

	for _, buffer := range shader.Buffers {
		if buffer.Set == set {
			resources[buffer.Binding] = reflectedResource{access: buffer.MemoryAccess}
		}
	}
	for _, samplerTexture := range shader.SamplerTextures {
		if samplerTexture.Set == set {
			resources[samplerTexture.Binding] = reflectedResource{resourceType: samplerTexture.Type}
		}
	}
	for _, texture := range shader.Textures {
		if texture.Set == set {
			resources[texture.Binding] = reflectedResource{resourceType: texture.Type}
		}
	}
	for _, image := range shader.Images {
		if image.Set == set {
			resources[image.Binding] = reflectedResource{resourceType: image.Type, access: image.MemoryAccess}
		}
	}
	return resources
}

func viewDimensionOf(resource reflectedResource, binding uint32) (gputypes.TextureViewDimension, error) {
	if resource.resourceType == gfx.TypeUnknown {
		return gputypes.TextureViewDimension2D, nil
	}

	dimension, ok := viewDimensions[resource.resourceType]
	if !ok {
		return gputypes.TextureViewDimensionUndefined, errors.Newf("binding %d has type %s, which has no WebGPU view dimension", binding, resource.resourceType)
	}
	return dimension, nil
}

func storageAccessOf(access gfx.MemoryAccess) gputypes.StorageTextureAccess {
	switch access {
	case gfx.MemoryAccessReadOnly:
		return gputypes.StorageTextureAccessReadOnly
	case gfx.MemoryAccessReadWrite:
		return gputypes.StorageTextureAccessReadWrite
	}
	return gputypes.StorageTextureAccessWriteOnly
}

// samplingOf picks the sample type of a texture entry and the sampler type paired with it. A
// binding without a known format samples as filterable float.
func samplingOf(formats map[uint32]gfx.Format, binding uint32) (gputypes.TextureSampleType, gputypes.SamplerBindingType, error) {
	format, ok := formats[binding]
	if !ok {
		return gputypes.TextureSampleTypeFloat, gputypes.SamplerBindingTypeFiltering, nil
	}

	sampleType, err := SampleTypeOf(format)
	if err != nil {
		return gputypes.TextureSampleTypeUndefined, gputypes.SamplerBindingTypeUndefined, errors.Wrapf(err, "binding %d", binding)
	}

	switch sampleType {
	case gputypes.TextureSampleTypeDepth:
		return sampleType, gputypes.SamplerBindingTypeComparison, nil
	case gputypes.TextureSampleTypeFloat:
		return sampleType, gputypes.SamplerBindingTypeFiltering, nil
	}
	return sampleType, gputypes.SamplerBindingTypeNonFiltering, nil
}

// BindGroupLayoutOf converts a descriptor set layout. The shader is optional: when present, its
// reflection data for the set supplies view dimensions and storage access modes, otherwise
// textures are treated as 2D and storage is treated as writable.
//
// formats optionally maps texture bindings to the format of the texture bound there. Depth
// formats get a depth sample type and a comparison sampler. Integer and unfilterable float
// formats get a non-filtering sampler. Bindings missing from formats sample as filterable float.
func BindGroupLayoutOf(info *gfx.DescriptorSetLayoutInfo, set uint32, shader *gfx.ShaderInfo, formats map[uint32]gfx.Format) (BindGroupLayout, error) {
	err := info.Validate()
	if err != nil {
		return BindGroupLayout{}, err
	}

	bindings := make([]gfx.DescriptorSetLayoutBinding, len(info.Bindings))
	copy(bindings, info.Bindings)
	sort.Slice(bindings, func(a, b int) bool {
		return bindings[a].Binding < bindings[b].Binding
	})

	var nextBinding uint32
	if len(bindings) > 0 {
		nextBinding = bindings[len(bindings)-1].Binding + 1
	}

	resources := reflectSet(shader, set)
	layout := BindGroupLayout{
		SamplerBindings: make(map[uint32]uint32),
	}
	layout.Descriptor.Entries = make([]gputypes.BindGroupLayoutEntry, 0, len(bindings))

	for _, binding := range bindings {
		if binding.Count > 1 {
			return BindGroupLayout{}, errors.Newf("binding %d is an array of %d descriptors, which WebGPU bind groups cannot express", binding.Binding, binding.Count)
		}

		visibility, err := ShaderStagesOf(binding.StageFlags)
		if err != nil {
			return BindGroupLayout{}, errors.Wrapf(err, "binding %d", binding.Binding)
		}

		entry := gputypes.BindGroupLayoutEntry{
			Binding:    binding.Binding,
			Visibility: visibility,
		}
		resource := resources[binding.Binding]
		samplerType := gputypes.SamplerBindingTypeFiltering

		switch binding.DescriptorType {
		case gfx.DescriptorTypeUniformBuffer, gfx.DescriptorTypeDynamicUniformBuffer:
			entry.Buffer = &gputypes.BufferBindingLayout{
				Type:             gputypes.BufferBindingTypeUniform,
				HasDynamicOffset: binding.DescriptorType.IsDynamic(),
			}
		case gfx.DescriptorTypeStorageBuffer, gfx.DescriptorTypeDynamicStorageBuffer:
			bufferType := gputypes.BufferBindingTypeStorage
			if resource.access == gfx.MemoryAccessReadOnly {
				bufferType = gputypes.BufferBindingTypeReadOnlyStorage
			}
			entry.Buffer = &gputypes.BufferBindingLayout{
				Type:             bufferType,
				HasDynamicOffset: binding.DescriptorType.IsDynamic(),
			}
		case gfx.DescriptorTypeSampler:
			entry.Sampler = &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering}
		case gfx.DescriptorTypeSamplerTexture, gfx.DescriptorTypeTexture, gfx.DescriptorTypeInputAttachment:
			dimension, err := viewDimensionOf(resource, binding.Binding)
			if err != nil {
				return BindGroupLayout{}, err
			}
			var sampleType gputypes.TextureSampleType
			sampleType, samplerType, err = samplingOf(formats, binding.Binding)
			if err != nil {
				return BindGroupLayout{}, err
			}
			entry.Texture = &gputypes.TextureBindingLayout{
				SampleType:    sampleType,
				ViewDimension: dimension,
			}
		case gfx.DescriptorTypeStorageImage:
			dimension, err := viewDimensionOf(resource, binding.Binding)
			if err != nil {
				return BindGroupLayout{}, err
			}
			entry.StorageTexture = &gputypes.StorageTextureBindingLayout{
				Access:        storageAccessOf(resource.access),
				Format:        StorageImageFormat,
				ViewDimension: dimension,
			}
		default:
			return BindGroupLayout{}, errors.Newf("binding %d has unknown descriptor type %s", binding.Binding, binding.DescriptorType)
		}

		layout.Descriptor.Entries = append(layout.Descriptor.Entries, entry)

		if binding.DescriptorType == gfx.DescriptorTypeSamplerTexture {
			layout.SamplerBindings[binding.Binding] = nextBinding
			layout.Descriptor.Entries = append(layout.Descriptor.Entries, gputypes.BindGroupLayoutEntry{
				Binding:    nextBinding,
				Visibility: visibility,
				Sampler:    &gputypes.SamplerBindingLayout{Type: samplerType},
			})
			nextBinding++
		}
	}

	return layout, nil
}
