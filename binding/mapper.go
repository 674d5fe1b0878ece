package binding

import (
	"io"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/hal/gfx"
	"golang.org/x/exp/slog"
)

// SlotBinding is a single layout binding resolved to its backend slot. Array bindings occupy
// Count consecutive slots starting at Slot.
type SlotBinding struct {
	Set            uint32
	Binding        uint32
	DescriptorType gfx.DescriptorType
	Count          uint32
	Slot           int
}

// Mapper flattens set-relative descriptor bindings into the single binding space of backends
// without descriptor sets. It is read-only once created and may be used from any number of
// goroutines.
type Mapper struct {
	logger *slog.Logger
	caps   gfx.DeviceCaps
	info   gfx.BindingMappingInfo
	strict bool
}

// New validates a BindingMappingInfo against the device caps and returns a Mapper for it
func New(logger *slog.Logger, caps gfx.DeviceCaps, info gfx.BindingMappingInfo, options CreateOptions) (*Mapper, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard))
	}

	err := info.Validate()
	if err == nil {
		err = caps.Validate()
	}
	if err != nil {
		logger.Error("failed to create binding mapper", slog.Any("error", err))
		return nil, err
	}

	mapper := &Mapper{
		logger: logger,
		caps:   caps,
		info: gfx.BindingMappingInfo{
			BufferOffsets:  append([]int(nil), info.BufferOffsets...),
			SamplerOffsets: append([]int(nil), info.SamplerOffsets...),
			FlexibleSet:    info.FlexibleSet,
		},
		strict: options.Flags&MapperCreateStrictCaps != 0,
	}

	logger.Debug("Mapper::New",
		slog.Int("SetCount", info.SetCount()),
		slog.Int("FlexibleSet", int(info.FlexibleSet)),
		slog.String("Flags", options.Flags.String()),
	)

	return mapper, nil
}

// Info returns a copy of the mapping the Mapper was created from
func (m *Mapper) Info() gfx.BindingMappingInfo {
	return gfx.BindingMappingInfo{
		BufferOffsets:  append([]int(nil), m.info.BufferOffsets...),
		SamplerOffsets: append([]int(nil), m.info.SamplerOffsets...),
		FlexibleSet:    m.info.FlexibleSet,
	}
}

// Offset returns the shift applied to bindings of a descriptor class in a set
func (m *Mapper) Offset(set uint32, class gfx.DescriptorClass) (int, error) {
	if int(set) >= m.info.SetCount() {
		return 0, errors.Newf("set %d is outside the %d sets the binding mapping covers", set, m.info.SetCount())
	}

	switch class {
	case gfx.DescriptorClassBuffer:
		return m.info.BufferOffsets[set], nil
	case gfx.DescriptorClassTexture:
		return m.info.SamplerOffsets[set], nil
	}

	return 0, errors.Newf("descriptor class %s has no offsets", class)
}

func (m *Mapper) checkCapacity(set, binding uint32, descriptorType gfx.DescriptorType, slot int, count uint32) error {
	kind := kindOf(descriptorType)
	capacity, limited := limit(&m.caps, kind, m.strict)
	if !limited {
		return nil
	}

	last := slot + int(max(count, 1)) - 1
	if last >= capacity {
		return errors.Wrapf(gfx.ErrCapacityExceeded, "set %d binding %d of type %s needs slot %d, but %s is %d",
			set, binding, descriptorType, last, kind, capacity)
	}

	return nil
}

func (m *Mapper) slot(set, binding uint32, descriptorType gfx.DescriptorType, count uint32) (int, error) {
	class, err := descriptorType.Class()
	if err != nil {
		return 0, err
	}

	offset, err := m.Offset(set, class)
	if err != nil {
		return 0, err
	}

	slot := int(binding) + offset
	if slot < 0 {
		return 0, errors.Wrapf(gfx.ErrNonContiguousBinding, "set %d binding %d of type %s falls below the start of the set's %s range",
			set, binding, descriptorType, class)
	}

	err = m.checkCapacity(set, binding, descriptorType, slot, count)
	if err != nil {
		return 0, err
	}

	return slot, nil
}

// Slot returns the backend slot of a single descriptor: its binding number plus the offset of
// its descriptor class in its set
func (m *Mapper) Slot(set, binding uint32, descriptorType gfx.DescriptorType) (int, error) {
	return m.slot(set, binding, descriptorType, 1)
}

// MapLayout resolves every binding of a set layout to its backend slot. The result is ordered
// by descriptor class, then by slot.
func (m *Mapper) MapLayout(set uint32, layout gfx.DescriptorSetLayoutInfo) ([]SlotBinding, error) {
	m.logger.Debug("Mapper::MapLayout", slog.Int("Set", int(set)), slog.Int("BindingCount", len(layout.Bindings)))

	err := layout.Validate()
	if err != nil {
		return nil, errors.Wrapf(err, "set %d", set)
	}

	bindings := make([]SlotBinding, 0, len(layout.Bindings))
	for _, binding := range layout.Bindings {
		slot, err := m.slot(set, binding.Binding, binding.DescriptorType, binding.Count)
		if err != nil {
			return nil, err
		}

		bindings = append(bindings, SlotBinding{
			Set:            set,
			Binding:        binding.Binding,
			DescriptorType: binding.DescriptorType,
			Count:          binding.Count,
			Slot:           slot,
		})
	}

	sort.Slice(bindings, func(a, b int) bool {
		classA, _ := bindings[a].DescriptorType.Class()
		classB, _ := bindings[b].DescriptorType.Class()
		if classA != classB {
			return classA < classB
		}
		return bindings[a].Slot < bindings[b].Slot
	})

	return bindings, nil
}

// ValidateSets maps every layout and verifies that no two descriptors of the same class share a
// backend slot and that every slot is within the device's capacity
func (m *Mapper) ValidateSets(layouts []SetLayout) error {
	m.logger.Debug("Mapper::ValidateSets", slog.Int("SetCount", len(layouts)))

	var occupied [gfx.DescriptorClassCount]*swiss.Map[int, SlotBinding]
	for class := range occupied {
		occupied[class] = swiss.NewMap[int, SlotBinding](42)
	}

	for _, layout := range layouts {
		bindings, err := m.MapLayout(layout.Set, layout.Layout)
		if err != nil {
			m.logger.Error("pipeline layout rejected", slog.Any("error", err))
			return err
		}

		for _, binding := range bindings {
			class, _ := binding.DescriptorType.Class()
			for slot := binding.Slot; slot < binding.Slot+int(max(binding.Count, 1)); slot++ {
				other, taken := occupied[class].Get(slot)
				if taken {
					err = errors.Wrapf(ErrSlotCollision, "set %d binding %d and set %d binding %d both use %s slot %d",
						other.Set, other.Binding, binding.Set, binding.Binding, class, slot)
					m.logger.Error("pipeline layout rejected", slog.Any("error", err))
					return err
				}
				occupied[class].Put(slot, binding)
			}
		}
	}

	return nil
}

// ValidatePipelineLayout checks that every set layout of a pipeline layout fits the backend's
// flat binding space. Layouts that do not fit are rejected with gfx.ErrCapacityExceeded and are
// never truncated.
func (m *Mapper) ValidatePipelineLayout(info *gfx.PipelineLayoutInfo) error {
	layouts, err := SetLayoutsFromPipelineLayout(info)
	if err != nil {
		return err
	}

	return m.ValidateSets(layouts)
}

// FlexibleCapacity returns the number of slots of a descriptor type's slot space that remain for
// the flexible set. The second return is false when the space is unlimited.
func (m *Mapper) FlexibleCapacity(descriptorType gfx.DescriptorType) (int, bool, error) {
	class, err := descriptorType.Class()
	if err != nil {
		return 0, false, err
	}

	capacity, limited := limit(&m.caps, kindOf(descriptorType), m.strict)
	if !limited {
		return 0, false, nil
	}

	offset, err := m.Offset(m.info.FlexibleSet, class)
	if err != nil {
		return 0, false, err
	}

	return max(capacity-offset, 0), true, nil
}

// PrintDetailedMap emits the offsets of every set and the slot of every binding in the provided
// layouts as JSON
func (m *Mapper) PrintDetailedMap(writer *jwriter.Writer, layouts []SetLayout) error {
	objState := writer.Object()
	defer objState.End()

	objState.Name("FlexibleSet").Int(int(m.info.FlexibleSet))

	offsetsArray := objState.Name("Offsets").Array()
	for set := 0; set < m.info.SetCount(); set++ {
		obj := offsetsArray.Object()
		obj.Name("Set").Int(set)
		obj.Name("BufferOffset").Int(m.info.BufferOffsets[set])
		obj.Name("SamplerOffset").Int(m.info.SamplerOffsets[set])
		obj.End()
	}
	offsetsArray.End()

	bindingsArray := objState.Name("Bindings").Array()
	defer bindingsArray.End()

	for _, layout := range layouts {
		bindings, err := m.MapLayout(layout.Set, layout.Layout)
		if err != nil {
			return err
		}

		for _, binding := range bindings {
			obj := bindingsArray.Object()
			obj.Name("Set").Int(int(binding.Set))
			obj.Name("Binding").Int(int(binding.Binding))
			obj.Name("Type").String(binding.DescriptorType.String())
			obj.Name("Count").Int(int(binding.Count))
			obj.Name("Slot").Int(binding.Slot)
			obj.End()
		}
	}

	return nil
}
