package vulkan

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/khr_swapchain"
	"github.com/vkngwrapper/hal/gfx"
)

func TestTranslateGlobalBarrier(t *testing.T) {
	testCases := map[string]struct {
		Prev gfx.AccessTypeList
		Next gfx.AccessTypeList

		Expected MemoryBarrier
	}{
		"UploadThenDraw": {
			Prev: gfx.AccessTypeList{gfx.AccessTypeTransferWrite},
			Next: gfx.AccessTypeList{gfx.AccessTypeVertexBuffer, gfx.AccessTypeIndexBuffer},
			Expected: MemoryBarrier{
				SrcStageMask:  core1_0.PipelineStageTransfer,
				DstStageMask:  core1_0.PipelineStageVertexInput,
				SrcAccessMask: core1_0.AccessTransferWrite,
				DstAccessMask: core1_0.AccessVertexAttributeRead | core1_0.AccessIndexRead,
			},
		},
		"ReadAfterRead": {
			Prev: gfx.AccessTypeList{gfx.AccessTypeVertexBuffer},
			Next: gfx.AccessTypeList{gfx.AccessTypeComputeShaderReadOther},
			Expected: MemoryBarrier{
				SrcStageMask: core1_0.PipelineStageVertexInput,
				DstStageMask: core1_0.PipelineStageComputeShader,
			},
		},
		"FromNothing": {
			Next: gfx.AccessTypeList{gfx.AccessTypeComputeShaderWrite},
			Expected: MemoryBarrier{
				SrcStageMask: core1_0.PipelineStageTopOfPipe,
				DstStageMask: core1_0.PipelineStageComputeShader,
			},
		},
		"ToNothing": {
			Prev: gfx.AccessTypeList{gfx.AccessTypeComputeShaderWrite},
			Expected: MemoryBarrier{
				SrcStageMask:  core1_0.PipelineStageComputeShader,
				DstStageMask:  core1_0.PipelineStageBottomOfPipe,
				SrcAccessMask: core1_0.AccessShaderWrite,
			},
		},
		"MixedPrevious": {
			Prev: gfx.AccessTypeList{gfx.AccessTypeFragmentShaderReadOther, gfx.AccessTypeComputeShaderWrite},
			Next: gfx.AccessTypeList{gfx.AccessTypeIndirectBuffer},
			Expected: MemoryBarrier{
				SrcStageMask:  core1_0.PipelineStageFragmentShader | core1_0.PipelineStageComputeShader,
				DstStageMask:  core1_0.PipelineStageDrawIndirect,
				SrcAccessMask: core1_0.AccessShaderWrite,
				DstAccessMask: core1_0.AccessIndirectCommandRead,
			},
		},
	}

	for testName, testCase := range testCases {
		t.Run(testName, func(t *testing.T) {
			barrier := gfx.NewGlobalBarrier(gfx.GlobalBarrierInfo{
				PrevAccesses: testCase.Prev,
				NextAccesses: testCase.Next,
			})

			result, err := TranslateGlobalBarrier(barrier)
			require.NoError(t, err)
			require.Equal(t, testCase.Expected, result)
		})
	}
}

func TestTranslateGlobalBarrierInvalid(t *testing.T) {
	barrier := gfx.NewGlobalBarrier(gfx.GlobalBarrierInfo{
		PrevAccesses: gfx.AccessTypeList{gfx.AccessTypeCount},
	})

	_, err := TranslateGlobalBarrier(barrier)
	require.Error(t, err)
}

func TestTranslateTextureBarrier(t *testing.T) {
	testCases := map[string]struct {
		Info gfx.TextureBarrierInfo

		Expected ImageBarrier
	}{
		"RenderThenSample": {
			Info: gfx.TextureBarrierInfo{
				PrevAccesses: gfx.AccessTypeList{gfx.AccessTypeColorAttachmentWrite},
				NextAccesses: gfx.AccessTypeList{gfx.AccessTypeFragmentShaderReadTexture},
			},
			Expected: ImageBarrier{
				SrcStageMask:        core1_0.PipelineStageColorAttachmentOutput,
				DstStageMask:        core1_0.PipelineStageFragmentShader,
				SrcAccessMask:       core1_0.AccessColorAttachmentWrite,
				DstAccessMask:       core1_0.AccessShaderRead,
				OldLayout:           core1_0.ImageLayoutColorAttachmentOptimal,
				NewLayout:           core1_0.ImageLayoutShaderReadOnlyOptimal,
				SrcQueueFamilyIndex: QueueFamilyIgnored,
				DstQueueFamilyIndex: QueueFamilyIgnored,
			},
		},
		"FirstUpload": {
			Info: gfx.TextureBarrierInfo{
				NextAccesses: gfx.AccessTypeList{gfx.AccessTypeTransferWrite},
			},
			Expected: ImageBarrier{
				SrcStageMask:        core1_0.PipelineStageTopOfPipe,
				DstStageMask:        core1_0.PipelineStageTransfer,
				DstAccessMask:       core1_0.AccessTransferWrite,
				OldLayout:           core1_0.ImageLayoutUndefined,
				NewLayout:           core1_0.ImageLayoutTransferDstOptimal,
				SrcQueueFamilyIndex: QueueFamilyIgnored,
				DstQueueFamilyIndex: QueueFamilyIgnored,
			},
		},
		"DiscardContents": {
			Info: gfx.TextureBarrierInfo{
				PrevAccesses:    gfx.AccessTypeList{gfx.AccessTypeFragmentShaderReadTexture},
				NextAccesses:    gfx.AccessTypeList{gfx.AccessTypeColorAttachmentWrite},
				DiscardContents: true,
			},
			Expected: ImageBarrier{
				SrcStageMask:        core1_0.PipelineStageFragmentShader,
				DstStageMask:        core1_0.PipelineStageColorAttachmentOutput,
				DstAccessMask:       core1_0.AccessColorAttachmentWrite,
				OldLayout:           core1_0.ImageLayoutUndefined,
				NewLayout:           core1_0.ImageLayoutColorAttachmentOptimal,
				SrcQueueFamilyIndex: QueueFamilyIgnored,
				DstQueueFamilyIndex: QueueFamilyIgnored,
			},
		},
		"ReadToReadSameLayout": {
			Info: gfx.TextureBarrierInfo{
				PrevAccesses: gfx.AccessTypeList{gfx.AccessTypeVertexShaderReadTexture},
				NextAccesses: gfx.AccessTypeList{gfx.AccessTypeComputeShaderReadTexture},
			},
			Expected: ImageBarrier{
				SrcStageMask:        core1_0.PipelineStageVertexShader,
				DstStageMask:        core1_0.PipelineStageComputeShader,
				OldLayout:           core1_0.ImageLayoutShaderReadOnlyOptimal,
				NewLayout:           core1_0.ImageLayoutShaderReadOnlyOptimal,
				SrcQueueFamilyIndex: QueueFamilyIgnored,
				DstQueueFamilyIndex: QueueFamilyIgnored,
			},
		},
		"ReadToReadLayoutChange": {
			Info: gfx.TextureBarrierInfo{
				PrevAccesses: gfx.AccessTypeList{gfx.AccessTypeTransferRead},
				NextAccesses: gfx.AccessTypeList{gfx.AccessTypeFragmentShaderReadTexture},
			},
			Expected: ImageBarrier{
				SrcStageMask:        core1_0.PipelineStageTransfer,
				DstStageMask:        core1_0.PipelineStageFragmentShader,
				DstAccessMask:       core1_0.AccessShaderRead,
				OldLayout:           core1_0.ImageLayoutTransferSrcOptimal,
				NewLayout:           core1_0.ImageLayoutShaderReadOnlyOptimal,
				SrcQueueFamilyIndex: QueueFamilyIgnored,
				DstQueueFamilyIndex: QueueFamilyIgnored,
			},
		},
		"Present": {
			Info: gfx.TextureBarrierInfo{
				PrevAccesses: gfx.AccessTypeList{gfx.AccessTypeColorAttachmentWrite},
				NextAccesses: gfx.AccessTypeList{gfx.AccessTypePresent},
			},
			Expected: ImageBarrier{
				SrcStageMask:        core1_0.PipelineStageColorAttachmentOutput,
				DstStageMask:        core1_0.PipelineStageBottomOfPipe,
				SrcAccessMask:       core1_0.AccessColorAttachmentWrite,
				OldLayout:           core1_0.ImageLayoutColorAttachmentOptimal,
				NewLayout:           khr_swapchain.ImageLayoutPresentSrc,
				SrcQueueFamilyIndex: QueueFamilyIgnored,
				DstQueueFamilyIndex: QueueFamilyIgnored,
			},
		},
		"MixedLayoutsBecomeGeneral": {
			Info: gfx.TextureBarrierInfo{
				PrevAccesses: gfx.AccessTypeList{gfx.AccessTypeComputeShaderWrite},
				NextAccesses: gfx.AccessTypeList{gfx.AccessTypeFragmentShaderReadTexture, gfx.AccessTypeTransferRead},
			},
			Expected: ImageBarrier{
				SrcStageMask:        core1_0.PipelineStageComputeShader,
				DstStageMask:        core1_0.PipelineStageFragmentShader | core1_0.PipelineStageTransfer,
				SrcAccessMask:       core1_0.AccessShaderWrite,
				DstAccessMask:       core1_0.AccessShaderRead | core1_0.AccessTransferRead,
				OldLayout:           core1_0.ImageLayoutGeneral,
				NewLayout:           core1_0.ImageLayoutGeneral,
				SrcQueueFamilyIndex: QueueFamilyIgnored,
				DstQueueFamilyIndex: QueueFamilyIgnored,
			},
		},
	}

	for testName, testCase := range testCases {
		t.Run(testName, func(t *testing.T) {
			result, err := TranslateTextureBarrier(gfx.NewTextureBarrier(testCase.Info))
			require.NoError(t, err)
			require.Equal(t, testCase.Expected, result)
		})
	}
}

func TestTranslateTextureBarrierOwnershipTransfer(t *testing.T) {
	barrier := gfx.NewTextureBarrier(gfx.TextureBarrierInfo{
		PrevAccesses: gfx.AccessTypeList{gfx.AccessTypeComputeShaderWrite},
		NextAccesses: gfx.AccessTypeList{gfx.AccessTypeFragmentShaderReadTexture},
		SrcQueue:     &gfx.QueueInfo{Type: gfx.QueueTypeCompute, FamilyIndex: 2},
		DstQueue:     &gfx.QueueInfo{Type: gfx.QueueTypeGraphics, FamilyIndex: 0},
	})

	result, err := TranslateTextureBarrier(barrier)
	require.NoError(t, err)
	require.Equal(t, uint32(2), result.SrcQueueFamilyIndex)
	require.Equal(t, uint32(0), result.DstQueueFamilyIndex)

	sameFamily := gfx.NewTextureBarrier(gfx.TextureBarrierInfo{
		PrevAccesses: gfx.AccessTypeList{gfx.AccessTypeComputeShaderWrite},
		NextAccesses: gfx.AccessTypeList{gfx.AccessTypeFragmentShaderReadTexture},
		SrcQueue:     &gfx.QueueInfo{Type: gfx.QueueTypeCompute, FamilyIndex: 0},
		DstQueue:     &gfx.QueueInfo{Type: gfx.QueueTypeGraphics, FamilyIndex: 0},
	})

	result, err = TranslateTextureBarrier(sameFamily)
	require.NoError(t, err)
	require.Equal(t, QueueFamilyIgnored, result.SrcQueueFamilyIndex)
	require.Equal(t, QueueFamilyIgnored, result.DstQueueFamilyIndex)
}
