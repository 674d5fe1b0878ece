package gfx

import (
	"encoding/binary"
)

// GlobalBarrierInfo describes a memory-wide transition between two sets of accesses
type GlobalBarrierInfo struct {
	PrevAccesses AccessTypeList
	NextAccesses AccessTypeList
}

// TextureBarrierInfo describes a transition of a single texture between two sets of accesses
type TextureBarrierInfo struct {
	PrevAccesses AccessTypeList
	NextAccesses AccessTypeList

	// DiscardContents indicates that the previous contents of the texture do not need to be
	// preserved. Backends may use this to skip a layout-preserving transition.
	DiscardContents bool

	// SrcQueue and DstQueue are set together to transfer ownership of the texture between queues
	SrcQueue *QueueInfo
	DstQueue *QueueInfo
}

// GlobalBarrier is an immutable memory-wide transition. Once built, later changes to the info
// it was built from are not observed.
type GlobalBarrier struct {
	prevAccesses AccessTypeList
	nextAccesses AccessTypeList
}

// NewGlobalBarrier freezes a GlobalBarrierInfo. The access lists are not validated against any
// backend: that is the backend's responsibility.
func NewGlobalBarrier(info GlobalBarrierInfo) *GlobalBarrier {
	return &GlobalBarrier{
		prevAccesses: info.PrevAccesses.Clone(),
		nextAccesses: info.NextAccesses.Clone(),
	}
}

// PrevAccesses returns a copy of the accesses that must complete before the barrier
func (b *GlobalBarrier) PrevAccesses() AccessTypeList {
	return b.prevAccesses.Clone()
}

// NextAccesses returns a copy of the accesses that must wait on the barrier
func (b *GlobalBarrier) NextAccesses() AccessTypeList {
	return b.nextAccesses.Clone()
}

// FromUndefined returns true when the barrier has no previous accesses, meaning there is nothing
// to wait on and the prior contents are undefined
func (b *GlobalBarrier) FromUndefined() bool {
	return len(b.prevAccesses) == 0
}

// Info returns a GlobalBarrierInfo equivalent to the one used to build the barrier
func (b *GlobalBarrier) Info() GlobalBarrierInfo {
	return GlobalBarrierInfo{
		PrevAccesses: b.PrevAccesses(),
		NextAccesses: b.NextAccesses(),
	}
}

// TextureBarrier is an immutable transition for a single texture
type TextureBarrier struct {
	prevAccesses    AccessTypeList
	nextAccesses    AccessTypeList
	discardContents bool
	srcQueue        *QueueInfo
	dstQueue        *QueueInfo
}

func NewTextureBarrier(info TextureBarrierInfo) *TextureBarrier {
	barrier := &TextureBarrier{
		prevAccesses:    info.PrevAccesses.Clone(),
		nextAccesses:    info.NextAccesses.Clone(),
		discardContents: info.DiscardContents,
	}

	if info.SrcQueue != nil {
		src := *info.SrcQueue
		barrier.srcQueue = &src
	}
	if info.DstQueue != nil {
		dst := *info.DstQueue
		barrier.dstQueue = &dst
	}

	return barrier
}

func (b *TextureBarrier) PrevAccesses() AccessTypeList {
	return b.prevAccesses.Clone()
}

func (b *TextureBarrier) NextAccesses() AccessTypeList {
	return b.nextAccesses.Clone()
}

func (b *TextureBarrier) FromUndefined() bool {
	return len(b.prevAccesses) == 0
}

// DiscardContents is a hint: when true, backends may drop the texture's prior contents
func (b *TextureBarrier) DiscardContents() bool {
	return b.discardContents
}

func (b *TextureBarrier) SrcQueue() (QueueInfo, bool) {
	if b.srcQueue == nil {
		return QueueInfo{}, false
	}
	return *b.srcQueue, true
}

func (b *TextureBarrier) DstQueue() (QueueInfo, bool) {
	if b.dstQueue == nil {
		return QueueInfo{}, false
	}
	return *b.dstQueue, true
}

// OwnershipTransfer returns true when the barrier moves the texture between two different queue
// families
func (b *TextureBarrier) OwnershipTransfer() bool {
	return b.srcQueue != nil && b.dstQueue != nil && b.srcQueue.FamilyIndex != b.dstQueue.FamilyIndex
}

func (b *TextureBarrier) Info() TextureBarrierInfo {
	info := TextureBarrierInfo{
		PrevAccesses:    b.PrevAccesses(),
		NextAccesses:    b.NextAccesses(),
		DiscardContents: b.discardContents,
	}
	if src, ok := b.SrcQueue(); ok {
		info.SrcQueue = &src
	}
	if dst, ok := b.DstQueue(); ok {
		info.DstQueue = &dst
	}
	return info
}

func appendAccessKey(key []byte, list AccessTypeList) []byte {
	key = binary.AppendUvarint(key, uint64(len(list)))
	for _, access := range list {
		key = binary.AppendUvarint(key, uint64(access))
	}
	return key
}

func appendQueueKey(key []byte, queue *QueueInfo) []byte {
	if queue == nil {
		return append(key, 0)
	}
	key = append(key, 1, byte(queue.Type))
	return binary.AppendUvarint(key, uint64(queue.FamilyIndex))
}

func (i *GlobalBarrierInfo) key() string {
	key := make([]byte, 0, len(i.PrevAccesses)+len(i.NextAccesses)+2)
	key = appendAccessKey(key, i.PrevAccesses)
	key = appendAccessKey(key, i.NextAccesses)
	return string(key)
}

func (i *TextureBarrierInfo) key() string {
	key := make([]byte, 0, len(i.PrevAccesses)+len(i.NextAccesses)+8)
	key = appendAccessKey(key, i.PrevAccesses)
	key = appendAccessKey(key, i.NextAccesses)
	if i.DiscardContents {
		key = append(key, 1)
	} else {
		key = append(key, 0)
	}
	key = appendQueueKey(key, i.SrcQueue)
	key = appendQueueKey(key, i.DstQueue)
	return string(key)
}
