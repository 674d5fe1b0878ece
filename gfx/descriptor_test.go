package gfx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func layoutBinding(binding uint32, descriptorType DescriptorType) DescriptorSetLayoutBinding {
	return DescriptorSetLayoutBinding{
		Binding:        binding,
		DescriptorType: descriptorType,
		Count:          1,
		StageFlags:     ShaderStageVertex | ShaderStageFragment,
	}
}

func TestDescriptorTypeClass(t *testing.T) {
	for _, descriptorType := range []DescriptorType{DescriptorTypeUniformBuffer, DescriptorTypeDynamicUniformBuffer,
		DescriptorTypeStorageBuffer, DescriptorTypeDynamicStorageBuffer} {
		class, err := descriptorType.Class()
		require.NoError(t, err)
		require.Equal(t, DescriptorClassBuffer, class, descriptorType.String())
	}

	for _, descriptorType := range []DescriptorType{DescriptorTypeSamplerTexture, DescriptorTypeSampler,
		DescriptorTypeTexture, DescriptorTypeStorageImage, DescriptorTypeInputAttachment} {
		class, err := descriptorType.Class()
		require.NoError(t, err)
		require.Equal(t, DescriptorClassTexture, class, descriptorType.String())
	}

	_, err := DescriptorTypeUnknown.Class()
	require.Error(t, err)
	_, err = (DescriptorTypeUniformBuffer | DescriptorTypeSampler).Class()
	require.Error(t, err)

	require.True(t, DescriptorTypeDynamicUniformBuffer.IsDynamic())
	require.False(t, DescriptorTypeUniformBuffer.IsDynamic())
}

var setLayoutTestCases = map[string]struct {
	Bindings      []DescriptorSetLayoutBinding
	IsValid       bool
	NonContiguous bool
}{
	"Empty": {IsValid: true},
	"Interleaved Classes": {
		Bindings: []DescriptorSetLayoutBinding{
			layoutBinding(0, DescriptorTypeUniformBuffer),
			layoutBinding(1, DescriptorTypeSamplerTexture),
			layoutBinding(2, DescriptorTypeUniformBuffer),
		},
		NonContiguous: true,
	},
	"Contiguous Per Class": {
		Bindings: []DescriptorSetLayoutBinding{
			layoutBinding(0, DescriptorTypeUniformBuffer),
			layoutBinding(1, DescriptorTypeStorageBuffer),
			layoutBinding(2, DescriptorTypeSamplerTexture),
			layoutBinding(3, DescriptorTypeTexture),
		},
		IsValid: true,
	},
	"Unordered": {
		Bindings: []DescriptorSetLayoutBinding{
			layoutBinding(3, DescriptorTypeSampler),
			layoutBinding(1, DescriptorTypeUniformBuffer),
			layoutBinding(2, DescriptorTypeSampler),
			layoutBinding(0, DescriptorTypeUniformBuffer),
		},
		IsValid: true,
	},
	"Gap": {
		Bindings: []DescriptorSetLayoutBinding{
			layoutBinding(0, DescriptorTypeUniformBuffer),
			layoutBinding(2, DescriptorTypeUniformBuffer),
		},
		NonContiguous: true,
	},
	"Duplicate": {
		Bindings: []DescriptorSetLayoutBinding{
			layoutBinding(0, DescriptorTypeUniformBuffer),
			layoutBinding(0, DescriptorTypeSampler),
		},
	},
	"Mixed Type": {
		Bindings: []DescriptorSetLayoutBinding{
			layoutBinding(0, DescriptorTypeUniformBuffer|DescriptorTypeStorageBuffer),
		},
	},
	"Zero Count": {
		Bindings: []DescriptorSetLayoutBinding{
			{Binding: 0, DescriptorType: DescriptorTypeUniformBuffer, StageFlags: ShaderStageVertex},
		},
	},
}

func TestDescriptorSetLayoutInfoValidate(t *testing.T) {
	for testName, testCase := range setLayoutTestCases {
		t.Run(testName, func(t *testing.T) {
			info := DescriptorSetLayoutInfo{Bindings: testCase.Bindings}
			err := info.Validate()
			if testCase.IsValid {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			if testCase.NonContiguous {
				require.ErrorIs(t, err, ErrNonContiguousBinding)
			}
		})
	}
}

func TestDescriptorSetLayoutClassBindings(t *testing.T) {
	info := DescriptorSetLayoutInfo{Bindings: setLayoutTestCases["Unordered"].Bindings}
	require.Equal(t, []uint32{0, 1}, info.ClassBindings(DescriptorClassBuffer))
	require.Equal(t, []uint32{2, 3}, info.ClassBindings(DescriptorClassTexture))
}

func TestPipelineLayoutInfoValidate(t *testing.T) {
	good := &fakeSetLayout{info: DescriptorSetLayoutInfo{Bindings: []DescriptorSetLayoutBinding{
		layoutBinding(0, DescriptorTypeUniformBuffer),
	}}}
	bad := &fakeSetLayout{info: DescriptorSetLayoutInfo{Bindings: setLayoutTestCases["Gap"].Bindings}}

	info := PipelineLayoutInfo{SetLayouts: []DescriptorSetLayout{good, good}}
	require.NoError(t, info.Validate())

	info = PipelineLayoutInfo{SetLayouts: []DescriptorSetLayout{good, bad}}
	require.ErrorIs(t, info.Validate(), ErrNonContiguousBinding)

	info = PipelineLayoutInfo{SetLayouts: []DescriptorSetLayout{good, nil}}
	require.Error(t, info.Validate())
}
