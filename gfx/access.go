package gfx

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// AccessType is a single canonical way a resource may be touched by the pipeline: one stage, one
// role, one direction
type AccessType uint32

const (
	AccessTypeNone AccessType = iota

	// Read accesses
	AccessTypeIndirectBuffer
	AccessTypeIndexBuffer
	AccessTypeVertexBuffer
	AccessTypeVertexShaderReadUniformBuffer
	AccessTypeVertexShaderReadTexture
	AccessTypeVertexShaderReadOther
	AccessTypeFragmentShaderReadUniformBuffer
	AccessTypeFragmentShaderReadTexture
	AccessTypeFragmentShaderReadColorInputAttachment
	AccessTypeFragmentShaderReadDepthStencilInputAttachment
	AccessTypeFragmentShaderReadOther
	AccessTypeColorAttachmentRead
	AccessTypeDepthStencilAttachmentRead
	AccessTypeComputeShaderReadUniformBuffer
	AccessTypeComputeShaderReadTexture
	AccessTypeComputeShaderReadOther
	AccessTypeTransferRead
	AccessTypeHostRead
	AccessTypePresent

	// Write accesses
	AccessTypeVertexShaderWrite
	AccessTypeFragmentShaderWrite
	AccessTypeColorAttachmentWrite
	AccessTypeDepthStencilAttachmentWrite
	AccessTypeComputeShaderWrite
	AccessTypeTransferWrite
	AccessTypeHostPreinitialized
	AccessTypeHostWrite

	// AccessTypeCount is one past the last valid access type
	AccessTypeCount
)

const firstWriteAccessType = AccessTypeVertexShaderWrite

var accessTypeStrings = map[AccessType]string{
	AccessTypeNone:                                          "None",
	AccessTypeIndirectBuffer:                                "IndirectBuffer",
	AccessTypeIndexBuffer:                                   "IndexBuffer",
	AccessTypeVertexBuffer:                                  "VertexBuffer",
	AccessTypeVertexShaderReadUniformBuffer:                 "VertexShaderReadUniformBuffer",
	AccessTypeVertexShaderReadTexture:                       "VertexShaderReadTexture",
	AccessTypeVertexShaderReadOther:                         "VertexShaderReadOther",
	AccessTypeFragmentShaderReadUniformBuffer:               "FragmentShaderReadUniformBuffer",
	AccessTypeFragmentShaderReadTexture:                     "FragmentShaderReadTexture",
	AccessTypeFragmentShaderReadColorInputAttachment:        "FragmentShaderReadColorInputAttachment",
	AccessTypeFragmentShaderReadDepthStencilInputAttachment: "FragmentShaderReadDepthStencilInputAttachment",
	AccessTypeFragmentShaderReadOther:                       "FragmentShaderReadOther",
	AccessTypeColorAttachmentRead:                           "ColorAttachmentRead",
	AccessTypeDepthStencilAttachmentRead:                    "DepthStencilAttachmentRead",
	AccessTypeComputeShaderReadUniformBuffer:                "ComputeShaderReadUniformBuffer",
	AccessTypeComputeShaderReadTexture:                      "ComputeShaderReadTexture",
	AccessTypeComputeShaderReadOther:                        "ComputeShaderReadOther",
	AccessTypeTransferRead:                                  "TransferRead",
	AccessTypeHostRead:                                      "HostRead",
	AccessTypePresent:                                       "Present",
	AccessTypeVertexShaderWrite:                             "VertexShaderWrite",
	AccessTypeFragmentShaderWrite:                           "FragmentShaderWrite",
	AccessTypeColorAttachmentWrite:                          "ColorAttachmentWrite",
	AccessTypeDepthStencilAttachmentWrite:                   "DepthStencilAttachmentWrite",
	AccessTypeComputeShaderWrite:                            "ComputeShaderWrite",
	AccessTypeTransferWrite:                                 "TransferWrite",
	AccessTypeHostPreinitialized:                            "HostPreinitialized",
	AccessTypeHostWrite:                                     "HostWrite",
}

func (a AccessType) String() string {
	str, ok := accessTypeStrings[a]
	if !ok {
		return "unknown AccessType"
	}
	return str
}

// IsValid returns true for every defined access type other than AccessTypeNone
func (a AccessType) IsValid() bool {
	return a > AccessTypeNone && a < AccessTypeCount
}

func (a AccessType) IsRead() bool {
	return a > AccessTypeNone && a < firstWriteAccessType
}

func (a AccessType) IsWrite() bool {
	return a >= firstWriteAccessType && a < AccessTypeCount
}

// IsPseudoStage returns true for accesses performed outside the GPU pipeline: presentation and
// host access. Backends without a direct equivalent must treat these specially.
func (a AccessType) IsPseudoStage() bool {
	switch a {
	case AccessTypePresent, AccessTypeHostRead, AccessTypeHostPreinitialized, AccessTypeHostWrite:
		return true
	}
	return false
}

// ReadAccessTypes returns every read access type, in declaration order
func ReadAccessTypes() []AccessType {
	list := make([]AccessType, 0, firstWriteAccessType-1)
	for access := AccessTypeNone + 1; access < firstWriteAccessType; access++ {
		list = append(list, access)
	}
	return list
}

// WriteAccessTypes returns every write access type, in declaration order
func WriteAccessTypes() []AccessType {
	list := make([]AccessType, 0, AccessTypeCount-firstWriteAccessType)
	for access := firstWriteAccessType; access < AccessTypeCount; access++ {
		list = append(list, access)
	}
	return list
}

// AllAccessTypes returns every access type other than AccessTypeNone, in declaration order
func AllAccessTypes() []AccessType {
	return append(ReadAccessTypes(), WriteAccessTypes()...)
}

// AccessTypeList is one side of a transition. A list containing any write access is
// write-dominant: every access in it must be ordered as though it were a write.
type AccessTypeList []AccessType

func (l AccessTypeList) HasWrite() bool {
	for _, access := range l {
		if access.IsWrite() {
			return true
		}
	}
	return false
}

// IsReadOnly returns true for non-empty lists that contain no writes
func (l AccessTypeList) IsReadOnly() bool {
	return len(l) > 0 && !l.HasWrite()
}

func (l AccessTypeList) Contains(access AccessType) bool {
	for _, candidate := range l {
		if candidate == access {
			return true
		}
	}
	return false
}

// Clone returns a copy of the list that shares no memory with the original
func (l AccessTypeList) Clone() AccessTypeList {
	if l == nil {
		return nil
	}
	clone := make(AccessTypeList, len(l))
	copy(clone, l)
	return clone
}

// Validate rejects lists holding AccessTypeNone or values outside the model
func (l AccessTypeList) Validate() error {
	for index, access := range l {
		if !access.IsValid() {
			return errors.Newf("access list entry %d is %s, which cannot appear in a transition", index, access)
		}
	}
	return nil
}

func (l AccessTypeList) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for index, access := range l {
		if index > 0 {
			sb.WriteString("|")
		}
		sb.WriteString(access.String())
	}
	sb.WriteString("]")
	return sb.String()
}
