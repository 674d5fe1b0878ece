package gfx

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
)

// BufferUsage indicates the ways a buffer will be bound
type BufferUsage int32

var bufferUsageMapping = common.NewFlagStringMapping[BufferUsage]()

func (f BufferUsage) Register(str string) {
	bufferUsageMapping.Register(f, str)
}
func (f BufferUsage) String() string {
	return bufferUsageMapping.FlagsToString(f)
}

const BufferUsageNone BufferUsage = 0

const (
	BufferUsageTransferSrc BufferUsage = 1 << iota
	BufferUsageTransferDst
	BufferUsageIndex
	BufferUsageVertex
	BufferUsageUniform
	BufferUsageStorage
	BufferUsageIndirect
)

// BufferFlags indicate optional buffer behaviors
type BufferFlags int32

var bufferFlagsMapping = common.NewFlagStringMapping[BufferFlags]()

func (f BufferFlags) Register(str string) {
	bufferFlagsMapping.Register(f, str)
}
func (f BufferFlags) String() string {
	return bufferFlagsMapping.FlagsToString(f)
}

const (
	BufferFlagNone BufferFlags = 0
	// BufferFlagBackupBuffer keeps a host-side copy of the buffer contents
	BufferFlagBackupBuffer BufferFlags = 0x4
)

// MemoryAccess indicates how shaders touch a storage resource
type MemoryAccess int32

var memoryAccessMapping = common.NewFlagStringMapping[MemoryAccess]()

func (f MemoryAccess) Register(str string) {
	memoryAccessMapping.Register(f, str)
}
func (f MemoryAccess) String() string {
	return memoryAccessMapping.FlagsToString(f)
}

const (
	MemoryAccessNone      MemoryAccess = 0
	MemoryAccessReadOnly  MemoryAccess = 0x1
	MemoryAccessWriteOnly MemoryAccess = 0x2
	MemoryAccessReadWrite              = MemoryAccessReadOnly | MemoryAccessWriteOnly
)

// MemoryUsage indicates where a resource's memory should live
type MemoryUsage int32

var memoryUsageMapping = common.NewFlagStringMapping[MemoryUsage]()

func (f MemoryUsage) Register(str string) {
	memoryUsageMapping.Register(f, str)
}
func (f MemoryUsage) String() string {
	return memoryUsageMapping.FlagsToString(f)
}

const (
	MemoryUsageNone   MemoryUsage = 0
	MemoryUsageDevice MemoryUsage = 0x1
	MemoryUsageHost   MemoryUsage = 0x2
)

func init() {
	BufferUsageTransferSrc.Register("TransferSrc")
	BufferUsageTransferDst.Register("TransferDst")
	BufferUsageIndex.Register("Index")
	BufferUsageVertex.Register("Vertex")
	BufferUsageUniform.Register("Uniform")
	BufferUsageStorage.Register("Storage")
	BufferUsageIndirect.Register("Indirect")

	BufferFlagBackupBuffer.Register("BackupBuffer")

	MemoryAccessReadOnly.Register("ReadOnly")
	MemoryAccessWriteOnly.Register("WriteOnly")

	MemoryUsageDevice.Register("Device")
	MemoryUsageHost.Register("Host")
}

// DrawInfoSize is the number of bytes a single DrawInfo occupies in an indirect buffer
const DrawInfoSize uint32 = 7 * 4

type BufferInfo struct {
	Usage    BufferUsage
	MemUsage MemoryUsage
	Size     uint32
	// Stride is the size of a single element, in bytes
	Stride uint32
	Flags  BufferFlags
}

func (i *BufferInfo) Validate() error {
	if i.Usage == BufferUsageNone {
		return errors.Wrap(ErrInvalidUsageCombination, "a buffer must have at least one usage")
	}
	if i.MemUsage == MemoryUsageNone {
		return errors.Wrap(ErrInvalidUsageCombination, "a buffer must have a memory usage")
	}
	if i.Stride > i.Size {
		return errors.Newf("buffer stride %d is larger than buffer size %d", i.Stride, i.Size)
	}
	if i.Usage&BufferUsageIndex != 0 && i.Stride != 2 && i.Stride != 4 {
		return errors.Wrapf(ErrInvalidUsageCombination, "index buffers must have a stride of 2 or 4, but stride was %d", i.Stride)
	}
	if i.Usage&BufferUsageIndirect != 0 && i.Usage&^(BufferUsageIndirect|BufferUsageTransferDst) != 0 {
		return errors.Wrapf(ErrInvalidUsageCombination, "indirect buffers may only also be a transfer destination, but usage was %s", i.Usage)
	}
	if i.Usage&BufferUsageIndirect != 0 && i.Stride != 0 && i.Stride != DrawInfoSize {
		return errors.Wrapf(ErrInvalidUsageCombination, "indirect buffers must have a stride of %d, but stride was %d", DrawInfoSize, i.Stride)
	}

	return nil
}

// Count returns the number of elements the buffer holds
func (i *BufferInfo) Count() uint32 {
	if i.Stride == 0 {
		return 0
	}
	return i.Size / i.Stride
}

type BufferViewInfo struct {
	Buffer Buffer
	Offset uint32
	Range  uint32
}

func (i *BufferViewInfo) Validate() error {
	if i.Buffer == nil {
		return errors.New("a buffer view must have a buffer")
	}

	bufferInfo := i.Buffer.Info()
	if bufferInfo.Usage&(BufferUsageUniform|BufferUsageStorage) == 0 {
		return errors.Wrapf(ErrInvalidUsageCombination, "buffer views may only be created for uniform or storage buffers, but usage was %s", bufferInfo.Usage)
	}
	if uint64(i.Offset)+uint64(i.Range) > uint64(bufferInfo.Size) {
		return errors.Newf("buffer view range [%d, %d) exceeds buffer size %d", i.Offset, uint64(i.Offset)+uint64(i.Range), bufferInfo.Size)
	}

	return nil
}
