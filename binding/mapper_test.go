package binding

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/hal/gfx"
)

func layoutOf(types ...gfx.DescriptorType) gfx.DescriptorSetLayoutInfo {
	var info gfx.DescriptorSetLayoutInfo
	for binding, descriptorType := range types {
		info.Bindings = append(info.Bindings, gfx.DescriptorSetLayoutBinding{
			Binding:        uint32(binding),
			DescriptorType: descriptorType,
			Count:          1,
			StageFlags:     gfx.ShaderStageVertex | gfx.ShaderStageFragment,
		})
	}
	return info
}

func repeat(descriptorType gfx.DescriptorType, count int) []gfx.DescriptorType {
	types := make([]gfx.DescriptorType, count)
	for index := range types {
		types[index] = descriptorType
	}
	return types
}

func globalLayout() gfx.DescriptorSetLayoutInfo {
	return layoutOf(gfx.DescriptorTypeUniformBuffer, gfx.DescriptorTypeUniformBuffer,
		gfx.DescriptorTypeSamplerTexture, gfx.DescriptorTypeSamplerTexture)
}

func localLayout() gfx.DescriptorSetLayoutInfo {
	return layoutOf(append(repeat(gfx.DescriptorTypeUniformBuffer, 5), repeat(gfx.DescriptorTypeSamplerTexture, 6)...)...)
}

func TestMapperSlot(t *testing.T) {
	mapper, err := New(nil, gfx.DefaultDeviceCaps(), gfx.BindingMappingInfo{
		BufferOffsets:  []int{0, 4},
		SamplerOffsets: []int{0, 2},
		FlexibleSet:    1,
	}, CreateOptions{})
	require.NoError(t, err)

	slot, err := mapper.Slot(1, 1, gfx.DescriptorTypeUniformBuffer)
	require.NoError(t, err)
	require.Equal(t, 5, slot)

	slot, err = mapper.Slot(1, 1, gfx.DescriptorTypeSamplerTexture)
	require.NoError(t, err)
	require.Equal(t, 3, slot)

	slot, err = mapper.Slot(0, 3, gfx.DescriptorTypeDynamicStorageBuffer)
	require.NoError(t, err)
	require.Equal(t, 3, slot)

	_, err = mapper.Slot(2, 0, gfx.DescriptorTypeUniformBuffer)
	require.Error(t, err)

	_, err = mapper.Slot(0, 0, gfx.DescriptorTypeUnknown)
	require.Error(t, err)
}

func TestMapperNew(t *testing.T) {
	_, err := New(nil, gfx.DefaultDeviceCaps(), gfx.BindingMappingInfo{
		BufferOffsets:  []int{0, 4},
		SamplerOffsets: []int{0},
	}, CreateOptions{})
	require.Error(t, err)

	caps := gfx.DefaultDeviceCaps()
	caps.UBOOffsetAlignment = 3
	_, err = New(nil, caps, gfx.BindingMappingInfo{}, CreateOptions{})
	require.Error(t, err)

	info := gfx.BindingMappingInfo{BufferOffsets: []int{0, 4}, SamplerOffsets: []int{0, 2}, FlexibleSet: 1}
	mapper, err := New(nil, gfx.DefaultDeviceCaps(), info, CreateOptions{})
	require.NoError(t, err)
	info.BufferOffsets[1] = 100

	offset, err := mapper.Offset(1, gfx.DescriptorClassBuffer)
	require.NoError(t, err)
	require.Equal(t, 4, offset)
	require.Equal(t, []int{0, 4}, mapper.Info().BufferOffsets)
}

func TestNewMappingInfo(t *testing.T) {
	caps := gfx.DefaultDeviceCaps()
	caps.MaxUniformBufferBindings = 24
	caps.MaxTextureUnits = 16

	info, err := NewMappingInfo(caps, 1, []SetLayout{
		{Set: 2, Layout: localLayout()},
		{Set: 0, Layout: globalLayout()},
	})
	require.NoError(t, err)
	require.Equal(t, []int{0, 7, 2}, info.BufferOffsets)
	require.Equal(t, []int{-2, 8, -3}, info.SamplerOffsets)
	require.Equal(t, uint32(1), info.FlexibleSet)

	mapper, err := New(nil, caps, info, CreateOptions{})
	require.NoError(t, err)

	slot, err := mapper.Slot(0, 2, gfx.DescriptorTypeSamplerTexture)
	require.NoError(t, err)
	require.Equal(t, 0, slot)

	slot, err = mapper.Slot(2, 5, gfx.DescriptorTypeSamplerTexture)
	require.NoError(t, err)
	require.Equal(t, 2, slot)

	slot, err = mapper.Slot(1, 0, gfx.DescriptorTypeUniformBuffer)
	require.NoError(t, err)
	require.Equal(t, 7, slot)

	remaining, limited, err := mapper.FlexibleCapacity(gfx.DescriptorTypeSamplerTexture)
	require.NoError(t, err)
	require.True(t, limited)
	require.Equal(t, 8, remaining)

	_, limited, err = mapper.FlexibleCapacity(gfx.DescriptorTypeStorageImage)
	require.NoError(t, err)
	require.False(t, limited)
}

func TestNewMappingInfoCapacity(t *testing.T) {
	caps := gfx.DefaultDeviceCaps()
	caps.MaxUniformBufferBindings = 6

	_, err := NewMappingInfo(caps, 1, []SetLayout{
		{Set: 0, Layout: globalLayout()},
		{Set: 2, Layout: localLayout()},
	})
	require.ErrorIs(t, err, gfx.ErrCapacityExceeded)
}

func TestNewMappingInfoRejects(t *testing.T) {
	caps := gfx.DefaultDeviceCaps()

	_, err := NewMappingInfo(caps, 0, []SetLayout{{Set: 0, Layout: globalLayout()}})
	require.Error(t, err)

	_, err = NewMappingInfo(caps, 1, []SetLayout{{Set: 0, Layout: globalLayout()}, {Set: 0, Layout: localLayout()}})
	require.Error(t, err)

	gap := globalLayout()
	gap.Bindings[1].Binding = 5
	_, err = NewMappingInfo(caps, 1, []SetLayout{{Set: 0, Layout: gap}})
	require.ErrorIs(t, err, gfx.ErrNonContiguousBinding)
}

func TestNewMappingInfoSetBounds(t *testing.T) {
	testCases := map[string]struct {
		flexibleSet uint32
		fixed       []SetLayout
	}{
		"MaxUint32FlexibleSet": {flexibleSet: math.MaxUint32},
		"FlexibleSetPastMax":   {flexibleSet: MaxSets},
		"MaxUint32FixedSet": {
			flexibleSet: 1,
			fixed:       []SetLayout{{Set: math.MaxUint32, Layout: globalLayout()}},
		},
		"FixedSetPastMax": {
			flexibleSet: 1,
			fixed:       []SetLayout{{Set: MaxSets, Layout: globalLayout()}},
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			require.NotPanics(t, func() {
				_, err := NewMappingInfo(gfx.DefaultDeviceCaps(), testCase.flexibleSet, testCase.fixed)
				require.Error(t, err)
			})
		})
	}

	info, err := NewMappingInfo(gfx.DefaultDeviceCaps(), MaxSets-1, nil)
	require.NoError(t, err)
	require.Len(t, info.BufferOffsets, MaxSets)
}

func TestMapperStrictCaps(t *testing.T) {
	info := gfx.BindingMappingInfo{BufferOffsets: []int{0}, SamplerOffsets: []int{0}}

	lenient, err := New(nil, gfx.DefaultDeviceCaps(), info, CreateOptions{})
	require.NoError(t, err)
	_, err = lenient.Slot(0, 100, gfx.DescriptorTypeStorageImage)
	require.NoError(t, err)

	strict, err := New(nil, gfx.DefaultDeviceCaps(), info, CreateOptions{Flags: MapperCreateStrictCaps})
	require.NoError(t, err)
	_, err = strict.Slot(0, 0, gfx.DescriptorTypeStorageImage)
	require.ErrorIs(t, err, gfx.ErrCapacityExceeded)
	require.Equal(t, "MapperCreateStrictCaps", MapperCreateStrictCaps.String())
}

func TestMapperArrayCapacity(t *testing.T) {
	caps := gfx.DefaultDeviceCaps()
	caps.MaxTextureUnits = 4

	mapper, err := New(nil, caps, gfx.BindingMappingInfo{BufferOffsets: []int{0}, SamplerOffsets: []int{0}}, CreateOptions{})
	require.NoError(t, err)

	layout := layoutOf(gfx.DescriptorTypeUniformBuffer, gfx.DescriptorTypeSamplerTexture)
	layout.Bindings[1].Count = 3
	bindings, err := mapper.MapLayout(0, layout)
	require.NoError(t, err)
	require.Len(t, bindings, 2)
	require.Equal(t, 1, bindings[1].Slot)

	layout.Bindings[1].Count = 4
	_, err = mapper.MapLayout(0, layout)
	require.ErrorIs(t, err, gfx.ErrCapacityExceeded)
}

func TestMapperSlotCollision(t *testing.T) {
	mapper, err := New(nil, gfx.DefaultDeviceCaps(), gfx.BindingMappingInfo{
		BufferOffsets:  []int{0, 1},
		SamplerOffsets: []int{0, 0},
	}, CreateOptions{})
	require.NoError(t, err)

	err = mapper.ValidateSets([]SetLayout{
		{Set: 0, Layout: layoutOf(gfx.DescriptorTypeUniformBuffer, gfx.DescriptorTypeUniformBuffer)},
		{Set: 1, Layout: layoutOf(gfx.DescriptorTypeUniformBuffer)},
	})
	require.ErrorIs(t, err, ErrSlotCollision)

	array := layoutOf(gfx.DescriptorTypeSamplerTexture, gfx.DescriptorTypeSamplerTexture)
	array.Bindings[0].Count = 2
	err = mapper.ValidateSets([]SetLayout{{Set: 0, Layout: array}})
	require.ErrorIs(t, err, ErrSlotCollision)
}

func TestMapperValidatePipelineLayout(t *testing.T) {
	caps := gfx.DefaultDeviceCaps()
	caps.MaxTextureUnits = 16
	info, err := NewMappingInfo(caps, 1, []SetLayout{
		{Set: 0, Layout: globalLayout()},
		{Set: 2, Layout: localLayout()},
	})
	require.NoError(t, err)

	mapper, err := New(nil, caps, info, CreateOptions{})
	require.NoError(t, err)

	material := layoutOf(append([]gfx.DescriptorType{gfx.DescriptorTypeUniformBuffer}, repeat(gfx.DescriptorTypeSamplerTexture, 7)...)...)
	pipelineLayout := gfx.PipelineLayoutInfo{SetLayouts: []gfx.DescriptorSetLayout{
		&setLayout{info: globalLayout()},
		&setLayout{info: material},
		&setLayout{info: localLayout()},
	}}
	require.NoError(t, mapper.ValidatePipelineLayout(&pipelineLayout))

	pipelineLayout.SetLayouts[1] = &setLayout{info: layoutOf(repeat(gfx.DescriptorTypeSamplerTexture, 8)...)}
	require.NoError(t, mapper.ValidatePipelineLayout(&pipelineLayout))

	pipelineLayout.SetLayouts[1] = &setLayout{info: layoutOf(repeat(gfx.DescriptorTypeSamplerTexture, 9)...)}
	require.ErrorIs(t, mapper.ValidatePipelineLayout(&pipelineLayout), gfx.ErrCapacityExceeded)

	pipelineLayout.SetLayouts[1] = &setLayout{info: material}
	pipelineLayout.SetLayouts = append(pipelineLayout.SetLayouts, &setLayout{info: globalLayout()})
	require.Error(t, mapper.ValidatePipelineLayout(&pipelineLayout))
}

type setLayout struct {
	info gfx.DescriptorSetLayoutInfo
}

func (l *setLayout) Info() gfx.DescriptorSetLayoutInfo {
	return l.info
}

func randomLayout(rng *rand.Rand) gfx.DescriptorSetLayoutInfo {
	bufferTypes := []gfx.DescriptorType{gfx.DescriptorTypeUniformBuffer, gfx.DescriptorTypeDynamicUniformBuffer,
		gfx.DescriptorTypeStorageBuffer, gfx.DescriptorTypeDynamicStorageBuffer}
	textureTypes := []gfx.DescriptorType{gfx.DescriptorTypeSamplerTexture, gfx.DescriptorTypeSampler,
		gfx.DescriptorTypeTexture, gfx.DescriptorTypeStorageImage, gfx.DescriptorTypeInputAttachment}

	var types []gfx.DescriptorType
	for count := rng.Intn(6); count > 0; count-- {
		types = append(types, bufferTypes[rng.Intn(len(bufferTypes))])
	}
	for count := rng.Intn(6); count > 0; count-- {
		types = append(types, textureTypes[rng.Intn(len(textureTypes))])
	}
	return layoutOf(types...)
}

func TestMapperNoDuplicateSlots(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for iteration := 0; iteration < 200; iteration++ {
		setCount := uint32(rng.Intn(4) + 1)
		flexibleSet := uint32(rng.Intn(int(setCount)))

		var fixed []SetLayout
		layouts := make([]SetLayout, 0, setCount)
		for set := uint32(0); set < setCount; set++ {
			layout := SetLayout{Set: set, Layout: randomLayout(rng)}
			layouts = append(layouts, layout)
			if set != flexibleSet {
				fixed = append(fixed, layout)
			}
		}

		info, err := NewMappingInfo(gfx.DefaultDeviceCaps(), flexibleSet, fixed)
		require.NoError(t, err)

		mapper, err := New(nil, gfx.DefaultDeviceCaps(), info, CreateOptions{})
		require.NoError(t, err)
		require.NoError(t, mapper.ValidateSets(layouts))

		seen := make(map[gfx.DescriptorClass]map[int]struct{})
		for _, layout := range layouts {
			bindings, err := mapper.MapLayout(layout.Set, layout.Layout)
			require.NoError(t, err)

			for _, binding := range bindings {
				class, err := binding.DescriptorType.Class()
				require.NoError(t, err)
				if seen[class] == nil {
					seen[class] = make(map[int]struct{})
				}

				_, duplicate := seen[class][binding.Slot]
				require.False(t, duplicate, "slot %d of class %s used twice", binding.Slot, class)
				require.GreaterOrEqual(t, binding.Slot, 0)
				seen[class][binding.Slot] = struct{}{}
			}
		}
	}
}

func TestMapperPrintDetailedMap(t *testing.T) {
	mapper, err := New(nil, gfx.DefaultDeviceCaps(), gfx.BindingMappingInfo{
		BufferOffsets:  []int{0, 4},
		SamplerOffsets: []int{0, 2},
		FlexibleSet:    1,
	}, CreateOptions{})
	require.NoError(t, err)

	writer := jwriter.NewWriter()
	err = mapper.PrintDetailedMap(&writer, []SetLayout{
		{Set: 1, Layout: layoutOf(gfx.DescriptorTypeUniformBuffer, gfx.DescriptorTypeUniformBuffer)},
	})
	require.NoError(t, err)
	require.NoError(t, writer.Error())

	var detailedMap struct {
		FlexibleSet int
		Offsets     []struct {
			Set           int
			BufferOffset  int
			SamplerOffset int
		}
		Bindings []struct {
			Set     int
			Binding int
			Type    string
			Slot    int
		}
	}
	require.NoError(t, json.Unmarshal(writer.Bytes(), &detailedMap))
	require.Equal(t, 1, detailedMap.FlexibleSet)
	require.Len(t, detailedMap.Offsets, 2)
	require.Equal(t, 4, detailedMap.Offsets[1].BufferOffset)
	require.Len(t, detailedMap.Bindings, 2)
	require.Equal(t, 5, detailedMap.Bindings[1].Slot)
	require.Equal(t, "UniformBuffer", detailedMap.Bindings[1].Type)
}
