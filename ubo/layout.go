package ubo

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/hal/gfx"
	"github.com/vkngwrapper/hal/internal/utils"
)

// slotSize is the number of bytes in one layout slot
const slotSize = 4

// Field is a named member of a uniform block. Offset is measured in 4-byte slots from the start
// of the block.
type Field struct {
	Name   string
	Type   gfx.Type
	Count  uint32
	Offset uint32
}

// Width is the number of slots the field occupies
func (f *Field) Width() uint32 {
	return uint32(f.Type.Size()/slotSize) * max(f.Count, 1)
}

// Uniform returns the reflection form of the field
func (f *Field) Uniform() gfx.Uniform {
	return gfx.Uniform{Name: f.Name, Type: f.Type, Count: max(f.Count, 1)}
}

// Layout is the fixed binary layout of a uniform block. Count is measured in 4-byte slots and
// Size in bytes.
type Layout struct {
	Name   string
	Fields []Field
	Count  uint32
	Size   uint32
}

// Clone returns a copy of the layout that shares no memory with the original
func (l *Layout) Clone() Layout {
	clone := *l
	clone.Fields = append([]Field(nil), l.Fields...)
	return clone
}

// Validate checks the layout's internal consistency: Size is Count slots and a multiple of 16
// bytes, every field is made of whole vec4s, and fields are packed back to back in declaration
// order with no gaps or overlaps, filling exactly Count slots
func (l *Layout) Validate() error {
	if l.Size != l.Count*slotSize {
		return errors.Newf("uniform block %s has %d slots but a size of %d bytes", l.Name, l.Count, l.Size)
	}

	err := utils.CheckAligned(l.Size, 16, "uniform block "+l.Name+" size")
	if err != nil {
		return err
	}

	var cursor uint32
	for index := range l.Fields {
		field := &l.Fields[index]

		if field.Type.Size() == 0 || field.Type.Size()%16 != 0 {
			return errors.Newf("uniform block %s field %s has type %s, which is not made of whole vec4s", l.Name, field.Name, field.Type)
		}
		if field.Offset != cursor {
			return errors.Newf("uniform block %s field %s is at slot %d, but the previous field ends at slot %d", l.Name, field.Name, field.Offset, cursor)
		}
		cursor += field.Width()
	}

	if cursor != l.Count {
		return errors.Newf("uniform block %s fields fill %d slots, but the block has %d", l.Name, cursor, l.Count)
	}

	return nil
}

// CheckCaps returns gfx.ErrCapacityExceeded when the device cannot hold the block. Limits the
// device leaves at 0 are not checked.
func (l *Layout) CheckCaps(caps *gfx.DeviceCaps) error {
	if caps.MaxUniformBlockSize != 0 && l.Size > caps.MaxUniformBlockSize {
		return errors.Wrapf(gfx.ErrCapacityExceeded, "uniform block %s is %d bytes, but MaxUniformBlockSize is %d", l.Name, l.Size, caps.MaxUniformBlockSize)
	}

	vectors := l.Count / 4
	if caps.MaxVertexUniformVectors != 0 && vectors > caps.MaxVertexUniformVectors {
		return errors.Wrapf(gfx.ErrCapacityExceeded, "uniform block %s needs %d vectors, but MaxVertexUniformVectors is %d", l.Name, vectors, caps.MaxVertexUniformVectors)
	}

	return nil
}

// DynamicStride returns the distance between consecutive instances of the block in a buffer
// bound with dynamic offsets
func (l *Layout) DynamicStride(caps *gfx.DeviceCaps) int {
	if caps.UBOOffsetAlignment == 0 {
		return int(l.Size)
	}
	utils.DebugCheckPow2(caps.UBOOffsetAlignment, "UBOOffsetAlignment")
	return utils.AlignUp(int(l.Size), uint(caps.UBOOffsetAlignment))
}

// MatchDeclared compares the layout's size with the size a shader header declares for the same
// block
func (l *Layout) MatchDeclared(size uint32) error {
	if size != l.Size {
		return errors.Wrapf(gfx.ErrBinaryLayoutMismatch, "uniform block %s is %d bytes, but the shader declares %d", l.Name, l.Size, size)
	}
	return nil
}

// MatchBlock compares the layout with a uniform block reported by shader reflection. The block
// must have the same name and the same members in the same order.
func (l *Layout) MatchBlock(block *gfx.UniformBlock) error {
	if block.Name != l.Name {
		return errors.Wrapf(gfx.ErrBinaryLayoutMismatch, "uniform block %s was compared with layout %s", block.Name, l.Name)
	}
	if len(block.Members) != len(l.Fields) {
		return errors.Wrapf(gfx.ErrBinaryLayoutMismatch, "uniform block %s has %d members, but the layout has %d", l.Name, len(block.Members), len(l.Fields))
	}

	for index, member := range block.Members {
		field := &l.Fields[index]
		if member.Name != field.Name || member.Type != field.Type || max(member.Count, 1) != max(field.Count, 1) {
			return errors.Wrapf(gfx.ErrBinaryLayoutMismatch, "uniform block %s member %d is %s %s[%d], but the layout has %s %s[%d]",
				l.Name, index, member.Type, member.Name, member.Count, field.Type, field.Name, field.Count)
		}
	}

	return l.MatchDeclared(uint32(block.Size()))
}

// Field retrieves a field by name
func (l *Layout) Field(name string) (Field, error) {
	for _, field := range l.Fields {
		if field.Name == name {
			return field, nil
		}
	}
	return Field{}, errors.Newf("uniform block %s has no field %s", l.Name, name)
}

// Offset returns the slot offset of a field
func (l *Layout) Offset(name string) (uint32, error) {
	field, err := l.Field(name)
	if err != nil {
		return 0, err
	}
	return field.Offset, nil
}

// ByteOffset returns the byte offset of a field
func (l *Layout) ByteOffset(name string) (uint32, error) {
	offset, err := l.Offset(name)
	if err != nil {
		return 0, err
	}
	return offset * slotSize, nil
}

// UniformBlock returns the reflection form of the layout at a set and binding
func (l *Layout) UniformBlock(set, binding uint32) gfx.UniformBlock {
	block := gfx.UniformBlock{
		Set:     set,
		Binding: binding,
		Name:    l.Name,
		Count:   1,
	}
	for index := range l.Fields {
		block.Members = append(block.Members, l.Fields[index].Uniform())
	}
	return block
}
