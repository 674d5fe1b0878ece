package gfx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var bufferValidateTestCases = map[string]struct {
	Info             BufferInfo
	IsValid          bool
	UsageCombination bool
}{
	"Vertex": {
		Info:    BufferInfo{Usage: BufferUsageVertex | BufferUsageTransferDst, MemUsage: MemoryUsageDevice, Size: 1024, Stride: 32},
		IsValid: true,
	},
	"Index 16": {
		Info:    BufferInfo{Usage: BufferUsageIndex, MemUsage: MemoryUsageDevice, Size: 64, Stride: 2},
		IsValid: true,
	},
	"Index Bad Stride": {
		Info:             BufferInfo{Usage: BufferUsageIndex, MemUsage: MemoryUsageDevice, Size: 64, Stride: 3},
		UsageCombination: true,
	},
	"Indirect": {
		Info:    BufferInfo{Usage: BufferUsageIndirect | BufferUsageTransferDst, MemUsage: MemoryUsageHost, Size: DrawInfoSize * 4, Stride: DrawInfoSize},
		IsValid: true,
	},
	"Indirect Vertex": {
		Info:             BufferInfo{Usage: BufferUsageIndirect | BufferUsageVertex, MemUsage: MemoryUsageHost, Size: 256, Stride: DrawInfoSize},
		UsageCombination: true,
	},
	"No Usage": {
		Info:             BufferInfo{MemUsage: MemoryUsageDevice, Size: 64},
		UsageCombination: true,
	},
	"No Memory Usage": {
		Info:             BufferInfo{Usage: BufferUsageUniform, Size: 64},
		UsageCombination: true,
	},
	"Stride Over Size": {
		Info: BufferInfo{Usage: BufferUsageVertex, MemUsage: MemoryUsageDevice, Size: 16, Stride: 32},
	},
}

func TestBufferInfoValidate(t *testing.T) {
	for testName, testCase := range bufferValidateTestCases {
		t.Run(testName, func(t *testing.T) {
			err := testCase.Info.Validate()
			if testCase.IsValid {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			if testCase.UsageCombination {
				require.ErrorIs(t, err, ErrInvalidUsageCombination)
			}
		})
	}
}

func TestBufferInfoCount(t *testing.T) {
	info := BufferInfo{Size: 1024, Stride: 32}
	require.Equal(t, uint32(32), info.Count())

	info.Stride = 0
	require.Equal(t, uint32(0), info.Count())
}

func TestBufferViewInfoValidate(t *testing.T) {
	buffer := &fakeBuffer{info: BufferInfo{Usage: BufferUsageUniform, MemUsage: MemoryUsageDevice, Size: 256}}

	view := BufferViewInfo{Buffer: buffer, Offset: 128, Range: 128}
	require.NoError(t, view.Validate())

	view.Range = 256
	require.Error(t, view.Validate())

	view = BufferViewInfo{Buffer: &fakeBuffer{info: BufferInfo{Usage: BufferUsageVertex, MemUsage: MemoryUsageDevice, Size: 256}}, Range: 16}
	require.ErrorIs(t, view.Validate(), ErrInvalidUsageCombination)
}

func TestBufferUsageString(t *testing.T) {
	require.Equal(t, BufferUsage(1), BufferUsageTransferSrc)
	require.Contains(t, (BufferUsageVertex | BufferUsageIndex).String(), "Vertex")
}
