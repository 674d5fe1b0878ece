package binding

import (
	"github.com/vkngwrapper/hal/gfx"
)

// slotKind is a backend slot space with its own capacity. Kinds in the same descriptor class
// share offsets but are counted against separate limits.
type slotKind int

const (
	slotKindUniformBuffer slotKind = iota
	slotKindStorageBuffer
	slotKindTextureUnit
	slotKindImageUnit

	slotKindCount
)

var slotKindStrings = map[slotKind]string{
	slotKindUniformBuffer: "MaxUniformBufferBindings",
	slotKindStorageBuffer: "MaxShaderStorageBufferBindings",
	slotKindTextureUnit:   "MaxTextureUnits",
	slotKindImageUnit:     "MaxImageUnits",
}

func (k slotKind) String() string {
	return slotKindStrings[k]
}

func kindOf(descriptorType gfx.DescriptorType) slotKind {
	switch {
	case descriptorType&(gfx.DescriptorTypeUniformBuffer|gfx.DescriptorTypeDynamicUniformBuffer) != 0:
		return slotKindUniformBuffer
	case descriptorType&(gfx.DescriptorTypeStorageBuffer|gfx.DescriptorTypeDynamicStorageBuffer) != 0:
		return slotKindStorageBuffer
	case descriptorType&gfx.DescriptorTypeStorageImage != 0:
		return slotKindImageUnit
	}
	return slotKindTextureUnit
}

// limit returns the number of slots of a kind the device supports. The second return is false
// when the kind is unlimited.
func limit(caps *gfx.DeviceCaps, kind slotKind, strict bool) (int, bool) {
	var value uint32
	switch kind {
	case slotKindUniformBuffer:
		value = caps.MaxUniformBufferBindings
	case slotKindStorageBuffer:
		value = caps.MaxShaderStorageBufferBindings
	case slotKindTextureUnit:
		value = caps.MaxTextureUnits
	case slotKindImageUnit:
		value = caps.MaxImageUnits
	}

	if value == 0 && !strict {
		return 0, false
	}
	return int(value), true
}
