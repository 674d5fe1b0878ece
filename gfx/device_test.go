package gfx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeviceCapsValidate(t *testing.T) {
	caps := DefaultDeviceCaps()
	require.NoError(t, caps.Validate())

	caps.UBOOffsetAlignment = 256
	require.NoError(t, caps.Validate())

	caps.UBOOffsetAlignment = 48
	require.Error(t, caps.Validate())

	caps = DefaultDeviceCaps()
	caps.ClipSpaceMinZ = 0.5
	require.Error(t, caps.Validate())
}

func TestBindingMappingInfoValidate(t *testing.T) {
	info := BindingMappingInfo{BufferOffsets: []int{0, 4}, SamplerOffsets: []int{0, 2}, FlexibleSet: 1}
	require.NoError(t, info.Validate())
	require.Equal(t, 2, info.SetCount())

	info.SamplerOffsets = []int{0}
	require.Error(t, info.Validate())

	info = BindingMappingInfo{BufferOffsets: []int{0, 4}, SamplerOffsets: []int{0, 2}, FlexibleSet: 2}
	require.Error(t, info.Validate())

	require.NoError(t, (&BindingMappingInfo{}).Validate())
}

func TestRequiredFeature(t *testing.T) {
	feature, ok := RequiredFeature(FormatBC3)
	require.True(t, ok)
	require.Equal(t, FeatureFormatDXT, feature)

	feature, ok = RequiredFeature(FormatASTCSRGBA6x6)
	require.True(t, ok)
	require.Equal(t, FeatureFormatASTC, feature)

	feature, ok = RequiredFeature(FormatEACR11)
	require.True(t, ok)
	require.Equal(t, FeatureFormatETC2, feature)

	_, ok = RequiredFeature(FormatRGBA8)
	require.False(t, ok)

	var features FeatureSet
	features[FeatureFormatDXT] = true
	require.True(t, features.Has(FeatureFormatDXT))
	require.False(t, features.Has(FeatureFormatASTC))
	require.False(t, features.Has(FeatureCount))
}

func TestAPINeedsBindingRemap(t *testing.T) {
	require.True(t, APIGLES3.NeedsBindingRemap())
	require.True(t, APIMetal.NeedsBindingRemap())
	require.False(t, APIVulkan.NeedsBindingRemap())
	require.False(t, APIWebGPU.NeedsBindingRemap())
	require.Equal(t, "unknown API", API(99).String())
}
