package binding

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/hal/gfx"
	"github.com/vkngwrapper/hal/internal/utils"
)

// MaxSets is the number of descriptor sets a BindingMappingInfo can address
const MaxSets = 32

// SetLayout is the layout of one descriptor set, addressed by its set index
type SetLayout struct {
	Set    uint32
	Layout gfx.DescriptorSetLayoutInfo
}

// SetLayoutsFromPipelineLayout addresses each of a pipeline layout's set layouts by its
// position in the pipeline layout
func SetLayoutsFromPipelineLayout(info *gfx.PipelineLayoutInfo) ([]SetLayout, error) {
	infos, err := info.SetLayoutInfos()
	if err != nil {
		return nil, err
	}

	layouts := make([]SetLayout, 0, len(infos))
	for set, layout := range infos {
		layouts = append(layouts, SetLayout{Set: uint32(set), Layout: layout})
	}
	return layouts, nil
}

// classSpan returns the range of binding numbers [first, end) a descriptor class occupies in a
// layout, including the trailing elements of array bindings. ok is false when the layout has no
// bindings of the class.
func classSpan(layout *gfx.DescriptorSetLayoutInfo, class gfx.DescriptorClass) (first, end uint32, ok bool) {
	for _, binding := range layout.Bindings {
		bindingClass, err := binding.DescriptorType.Class()
		if err != nil || bindingClass != class {
			continue
		}

		bindingEnd := binding.Binding + max(binding.Count, 1)
		if !ok {
			first, end, ok = binding.Binding, bindingEnd, true
			continue
		}
		first = min(first, binding.Binding)
		end = max(end, bindingEnd)
	}

	return first, end, ok
}

// NewMappingInfo builds the device's BindingMappingInfo from the layouts of the sets whose
// contents are known at device creation. Fixed sets are packed in ascending set order, each
// class starting where the previous set's left off. Sets in between that have no layout get an
// empty range. The flexible set is placed after everything the fixed sets consumed, so it
// receives all remaining capacity.
//
// Fixed layouts that do not fit within caps return gfx.ErrCapacityExceeded. A device should
// treat that as fatal.
func NewMappingInfo(caps gfx.DeviceCaps, flexibleSet uint32, fixed []SetLayout) (gfx.BindingMappingInfo, error) {
	layouts := make([]SetLayout, len(fixed))
	copy(layouts, fixed)
	sort.Slice(layouts, func(a, b int) bool {
		return layouts[a].Set < layouts[b].Set
	})

	if flexibleSet >= MaxSets {
		return gfx.BindingMappingInfo{}, errors.Newf("flexible set %d is beyond the %d sets a mapping can address", flexibleSet, MaxSets)
	}

	setCount := flexibleSet + 1
	for index, layout := range layouts {
		if layout.Set >= MaxSets {
			return gfx.BindingMappingInfo{}, errors.Newf("set %d is beyond the %d sets a mapping can address", layout.Set, MaxSets)
		}
		if layout.Set == flexibleSet {
			return gfx.BindingMappingInfo{}, errors.Newf("set %d is the flexible set and cannot have a fixed layout", layout.Set)
		}
		if index > 0 && layouts[index-1].Set == layout.Set {
			return gfx.BindingMappingInfo{}, errors.Newf("set %d has more than one fixed layout", layout.Set)
		}
		setCount = max(setCount, layout.Set+1)

		err := layout.Layout.Validate()
		if err != nil {
			return gfx.BindingMappingInfo{}, errors.Wrapf(err, "set %d", layout.Set)
		}
	}

	offsets := [gfx.DescriptorClassCount][]int{
		gfx.DescriptorClassBuffer:  make([]int, setCount),
		gfx.DescriptorClassTexture: make([]int, setCount),
	}
	var cursor [gfx.DescriptorClassCount]int

	next := 0
	for set := uint32(0); set < setCount; set++ {
		if set == flexibleSet {
			continue
		}

		var layout *gfx.DescriptorSetLayoutInfo
		if next < len(layouts) && layouts[next].Set == set {
			layout = &layouts[next].Layout
			next++
		}

		for class := gfx.DescriptorClass(0); class < gfx.DescriptorClassCount; class++ {
			offsets[class][set] = cursor[class]
			if layout == nil {
				continue
			}

			first, end, ok := classSpan(layout, class)
			if !ok {
				continue
			}
			offsets[class][set] = cursor[class] - int(first)
			cursor[class] += int(end - first)
		}
	}

	for class := gfx.DescriptorClass(0); class < gfx.DescriptorClassCount; class++ {
		offsets[class][flexibleSet] = cursor[class]
	}

	info := gfx.BindingMappingInfo{
		BufferOffsets:  offsets[gfx.DescriptorClassBuffer],
		SamplerOffsets: offsets[gfx.DescriptorClassTexture],
		FlexibleSet:    flexibleSet,
	}

	mapper, err := New(nil, caps, info, CreateOptions{})
	if err != nil {
		return gfx.BindingMappingInfo{}, err
	}

	err = mapper.ValidateSets(layouts)
	if err != nil {
		return gfx.BindingMappingInfo{}, err
	}

	utils.DebugValidate(&info)
	return info, nil
}
