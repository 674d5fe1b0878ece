package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/hal/gfx"
)

// QueueFamilyIgnored marks an image barrier that does not transfer queue ownership
const QueueFamilyIgnored uint32 = ^uint32(0)

// MemoryBarrier is the Vulkan rendition of a gfx.GlobalBarrier
type MemoryBarrier struct {
	SrcStageMask  core1_0.PipelineStageFlags
	DstStageMask  core1_0.PipelineStageFlags
	SrcAccessMask core1_0.AccessFlags
	DstAccessMask core1_0.AccessFlags
}

// ImageBarrier is the Vulkan rendition of a gfx.TextureBarrier
type ImageBarrier struct {
	SrcStageMask        core1_0.PipelineStageFlags
	DstStageMask        core1_0.PipelineStageFlags
	SrcAccessMask       core1_0.AccessFlags
	DstAccessMask       core1_0.AccessFlags
	OldLayout           core1_0.ImageLayout
	NewLayout           core1_0.ImageLayout
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
}

type sideMasks struct {
	stages   core1_0.PipelineStageFlags
	accesses core1_0.AccessFlags
	layout   core1_0.ImageLayout
}

// collect merges the stages of every access in the list. Only write accesses contribute to the
// access mask when writesOnly is true. The layout is the shared layout of the accesses, or
// ImageLayoutGeneral when they disagree.
func collect(accesses gfx.AccessTypeList, writesOnly bool) (sideMasks, error) {
	masks := sideMasks{layout: core1_0.ImageLayoutUndefined}

	for index, access := range accesses {
		info, err := AccessInfoOf(access)
		if err != nil {
			return sideMasks{}, err
		}

		masks.stages |= info.StageMask
		if !writesOnly || access.IsWrite() {
			masks.accesses |= info.AccessMask
		}

		if index == 0 {
			masks.layout = info.ImageLayout
		} else if masks.layout != info.ImageLayout {
			masks.layout = core1_0.ImageLayoutGeneral
		}
	}

	return masks, nil
}

func finishStages(src, dst core1_0.PipelineStageFlags) (core1_0.PipelineStageFlags, core1_0.PipelineStageFlags) {
	if src == 0 {
		src = core1_0.PipelineStageTopOfPipe
	}
	if dst == 0 {
		dst = core1_0.PipelineStageBottomOfPipe
	}
	return src, dst
}

// TranslateGlobalBarrier builds the memory barrier for a global transition. Reads in the
// previous accesses order execution but make nothing available, so the destination access
// mask is only populated when the previous accesses included a write.
func TranslateGlobalBarrier(barrier *gfx.GlobalBarrier) (MemoryBarrier, error) {
	prev, err := collect(barrier.PrevAccesses(), true)
	if err != nil {
		return MemoryBarrier{}, errors.Wrap(err, "previous accesses")
	}

	next, err := collect(barrier.NextAccesses(), false)
	if err != nil {
		return MemoryBarrier{}, errors.Wrap(err, "next accesses")
	}

	result := MemoryBarrier{
		SrcAccessMask: prev.accesses,
	}
	if prev.accesses != 0 {
		result.DstAccessMask = next.accesses
	}
	result.SrcStageMask, result.DstStageMask = finishStages(prev.stages, next.stages)

	return result, nil
}

// TranslateTextureBarrier builds the image barrier for a texture transition. A barrier with no
// previous accesses, or one that discards contents, starts from ImageLayoutUndefined.
func TranslateTextureBarrier(barrier *gfx.TextureBarrier) (ImageBarrier, error) {
	prev, err := collect(barrier.PrevAccesses(), true)
	if err != nil {
		return ImageBarrier{}, errors.Wrap(err, "previous accesses")
	}

	next, err := collect(barrier.NextAccesses(), false)
	if err != nil {
		return ImageBarrier{}, errors.Wrap(err, "next accesses")
	}

	result := ImageBarrier{
		SrcAccessMask:       prev.accesses,
		OldLayout:           prev.layout,
		NewLayout:           next.layout,
		SrcQueueFamilyIndex: QueueFamilyIgnored,
		DstQueueFamilyIndex: QueueFamilyIgnored,
	}
	if barrier.FromUndefined() || barrier.DiscardContents() {
		result.OldLayout = core1_0.ImageLayoutUndefined
	}
	if prev.accesses != 0 || result.OldLayout != result.NewLayout {
		result.DstAccessMask = next.accesses
	}
	result.SrcStageMask, result.DstStageMask = finishStages(prev.stages, next.stages)

	if barrier.OwnershipTransfer() {
		src, _ := barrier.SrcQueue()
		dst, _ := barrier.DstQueue()
		result.SrcQueueFamilyIndex = src.FamilyIndex
		result.DstQueueFamilyIndex = dst.FamilyIndex
	}

	return result, nil
}
