package gfx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func standardShader() ShaderInfo {
	return ShaderInfo{
		Name: "standard",
		Stages: []ShaderStage{
			{Stage: ShaderStageVertex, Source: "vs"},
			{Stage: ShaderStageFragment, Source: "fs"},
		},
		Attributes: []Attribute{
			{Name: "a_position", Format: FormatRGB32F, Location: 0},
			{Name: "a_normal", Format: FormatRGB32F, Location: 1},
			{Name: "a_texCoord", Format: FormatRG32F, Location: 2},
		},
		Blocks: []UniformBlock{
			{Set: 0, Binding: 0, Name: "CCGlobal", Members: []Uniform{{Name: "cc_time", Type: TypeFloat4, Count: 1}}, Count: 1},
			{Set: 2, Binding: 0, Name: "CCLocal", Members: []Uniform{{Name: "cc_matWorld", Type: TypeMat4, Count: 1}}, Count: 1},
			{Set: 1, Binding: 0, Name: "Constants", Members: []Uniform{
				{Name: "tilingOffset", Type: TypeFloat4, Count: 1},
				{Name: "albedo", Type: TypeFloat4, Count: 1},
			}, Count: 1},
		},
		SamplerTextures: []UniformSamplerTexture{
			{Set: 1, Binding: 1, Name: "albedoMap", Type: TypeSampler2D, Count: 1},
			{Set: 0, Binding: 1, Name: "cc_environment", Type: TypeSamplerCube, Count: 1},
		},
	}
}

func TestShaderInfoSets(t *testing.T) {
	shader := standardShader()
	require.NoError(t, shader.Validate())
	require.Equal(t, []uint32{0, 1, 2}, shader.Sets())
	require.Equal(t, ShaderStageVertex|ShaderStageFragment, shader.StageFlags())

	layout := shader.SetLayoutInfo(1)
	require.Len(t, layout.Bindings, 2)
	require.Equal(t, uint32(0), layout.Bindings[0].Binding)
	require.Equal(t, DescriptorTypeUniformBuffer, layout.Bindings[0].DescriptorType)
	require.Equal(t, uint32(1), layout.Bindings[1].Binding)
	require.Equal(t, DescriptorTypeSamplerTexture, layout.Bindings[1].DescriptorType)
	require.Equal(t, ShaderStageVertex|ShaderStageFragment, layout.Bindings[1].StageFlags)

	require.Empty(t, shader.SetLayoutInfo(3).Bindings)
}

func TestShaderInfoValidate(t *testing.T) {
	shader := standardShader()
	shader.Stages = append(shader.Stages, ShaderStage{Stage: ShaderStageCompute})
	require.ErrorIs(t, shader.Validate(), ErrInvalidUsageCombination)

	shader = standardShader()
	shader.Stages = append(shader.Stages, ShaderStage{Stage: ShaderStageVertex})
	require.Error(t, shader.Validate())

	shader = standardShader()
	shader.Attributes[1].Location = 0
	require.Error(t, shader.Validate())

	shader = standardShader()
	shader.Attributes[0].Format = FormatBC1
	require.ErrorIs(t, shader.Validate(), ErrInvalidUsageCombination)

	shader = standardShader()
	shader.SamplerTextures = append(shader.SamplerTextures, UniformSamplerTexture{Set: 1, Binding: 3, Name: "normalMap", Type: TypeSampler2D, Count: 1})
	require.ErrorIs(t, shader.Validate(), ErrNonContiguousBinding)

	shader = standardShader()
	shader.Stages = nil
	require.Error(t, shader.Validate())
}

func TestUniformBlockSize(t *testing.T) {
	block := UniformBlock{Members: []Uniform{
		{Name: "matrices", Type: TypeMat4, Count: 2},
		{Name: "color", Type: TypeFloat4},
	}}
	require.Equal(t, 64*2+16, block.Size())
}

func TestTypePredicates(t *testing.T) {
	require.Equal(t, "Mat4", TypeMat4.String())
	require.Equal(t, 64, TypeMat4.Size())
	require.True(t, TypeSampler2D.IsCombinedImageSampler())
	require.True(t, TypeTextureCube.IsSampledImage())
	require.True(t, TypeImage2D.IsStorageImage())
	require.False(t, TypeFloat.IsSampledImage())
	require.Equal(t, "unknown Type", TypeCount.String())
}
