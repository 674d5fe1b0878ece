package ubo

import (
	"encoding/json"
	"testing"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/hal/gfx"
	"github.com/vkngwrapper/hal/internal/utils"
)

func TestBuiltinLayouts(t *testing.T) {
	for _, layout := range Builtins() {
		t.Run(layout.Name, func(t *testing.T) {
			require.Equal(t, layout.Count*4, layout.Size)
			require.Zero(t, layout.Size%16)

			for index := 1; index < len(layout.Fields); index++ {
				require.Greater(t, layout.Fields[index].Offset, layout.Fields[index-1].Offset)
			}

			require.NoError(t, layout.Validate())
		})
	}
}

func TestBuiltinSizes(t *testing.T) {
	testCases := map[string]struct {
		Layout Layout
		Count  uint32
		Size   uint32
	}{
		"Global":            {Layout: GlobalLayout(), Count: 148, Size: 592},
		"Shadow":            {Layout: ShadowLayout(), Count: 36, Size: 144},
		"Local":             {Layout: LocalLayout(), Count: 36, Size: 144},
		"LocalBatched":      {Layout: LocalBatchedLayout(), Count: 160, Size: 640},
		"ForwardLight":      {Layout: ForwardLightLayout(), Count: 16, Size: 64},
		"SkinningTexture":   {Layout: SkinningTextureLayout(), Count: 4, Size: 16},
		"SkinningAnimation": {Layout: SkinningAnimationLayout(), Count: 4, Size: 16},
		"Skinning":          {Layout: SkinningLayout(), Count: 360, Size: 1440},
		"Morph":             {Layout: MorphLayout(), Count: 64, Size: 256},
	}

	for testName, testCase := range testCases {
		t.Run(testName, func(t *testing.T) {
			require.Equal(t, testCase.Count, testCase.Layout.Count)
			require.Equal(t, testCase.Size, testCase.Layout.Size)
		})
	}
}

func TestGlobalOffsets(t *testing.T) {
	layout := GlobalLayout()

	testCases := map[string]uint32{
		"cc_time":           0,
		"cc_screenSize":     4,
		"cc_nativeSize":     12,
		"cc_matView":        16,
		"cc_matViewInv":     32,
		"cc_matProj":        48,
		"cc_matViewProjInv": 96,
		"cc_cameraPos":      112,
		"cc_exposure":       116,
		"cc_mainLitColor":   124,
		"cc_fogAdd":         144,
	}

	for name, offset := range testCases {
		t.Run(name, func(t *testing.T) {
			actual, err := layout.Offset(name)
			require.NoError(t, err)
			require.Equal(t, offset, actual)

			bytes, err := layout.ByteOffset(name)
			require.NoError(t, err)
			require.Equal(t, offset*4, bytes)
		})
	}

	_, err := layout.Offset("cc_missing")
	require.Error(t, err)
}

func TestMorphOffsets(t *testing.T) {
	require.Equal(t, uint32(60), MorphDisplacementTextureWidthOffset)
	require.Equal(t, uint32(61), MorphDisplacementTextureHeightOffset)
	require.Equal(t, uint32(64), MorphCount)
}

func TestLayoutValidate(t *testing.T) {
	testCases := map[string]struct {
		Modify func(layout *Layout)
		Error  error
	}{
		"Valid": {
			Modify: func(layout *Layout) {},
		},
		"SizeMismatch": {
			Modify: func(layout *Layout) { layout.Size = 140 },
		},
		"NotVec4Aligned": {
			Modify: func(layout *Layout) {
				layout.Fields = append(layout.Fields, Field{Name: "extra", Type: gfx.TypeFloat, Count: 1, Offset: 36})
				layout.Count = 37
				layout.Size = 148
			},
			Error: utils.AlignmentError,
		},
		"Gap": {
			Modify: func(layout *Layout) { layout.Fields[2].Offset = 36 },
		},
		"Overlap": {
			Modify: func(layout *Layout) { layout.Fields[1].Offset = 8 },
		},
		"FieldsShort": {
			Modify: func(layout *Layout) {
				layout.Count = 40
				layout.Size = 160
			},
		},
		"ScalarField": {
			Modify: func(layout *Layout) { layout.Fields[2].Type = gfx.TypeFloat },
		},
	}

	for testName, testCase := range testCases {
		t.Run(testName, func(t *testing.T) {
			layout := LocalLayout()
			testCase.Modify(&layout)

			err := layout.Validate()
			if testName == "Valid" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			if testCase.Error != nil {
				require.ErrorIs(t, err, testCase.Error)
			}
		})
	}
}

func TestLayoutClone(t *testing.T) {
	layout := GlobalLayout()
	layout.Fields[0].Offset = 99

	require.Equal(t, uint32(0), GlobalLayout().Fields[0].Offset)
}

func TestLayoutCheckCaps(t *testing.T) {
	layout := SkinningLayout()

	caps := gfx.DefaultDeviceCaps()
	require.NoError(t, layout.CheckCaps(&caps))

	caps.MaxUniformBlockSize = 16384
	require.NoError(t, layout.CheckCaps(&caps))

	caps.MaxUniformBlockSize = 1024
	require.ErrorIs(t, layout.CheckCaps(&caps), gfx.ErrCapacityExceeded)

	caps.MaxUniformBlockSize = 0
	caps.MaxVertexUniformVectors = 64
	require.ErrorIs(t, layout.CheckCaps(&caps), gfx.ErrCapacityExceeded)
}

func TestLayoutDynamicStride(t *testing.T) {
	local := LocalLayout()
	global := GlobalLayout()

	caps := gfx.DefaultDeviceCaps()
	require.Equal(t, 144, local.DynamicStride(&caps))

	caps.UBOOffsetAlignment = 256
	require.Equal(t, 256, local.DynamicStride(&caps))
	require.Equal(t, 768, global.DynamicStride(&caps))

	caps.UBOOffsetAlignment = 16
	require.Equal(t, 592, global.DynamicStride(&caps))
}

func TestLayoutMatchDeclared(t *testing.T) {
	layout := GlobalLayout()

	require.NoError(t, layout.MatchDeclared(592))
	require.ErrorIs(t, layout.MatchDeclared(576), gfx.ErrBinaryLayoutMismatch)
}

func TestLayoutMatchBlock(t *testing.T) {
	layout := LocalLayout()

	block := layout.UniformBlock(2, LocalBindingUBOLocal)
	require.Equal(t, 144, block.Size())
	require.NoError(t, layout.MatchBlock(&block))

	renamed := layout.UniformBlock(2, LocalBindingUBOLocal)
	renamed.Members[1].Name = "cc_matWorldInv"
	require.ErrorIs(t, layout.MatchBlock(&renamed), gfx.ErrBinaryLayoutMismatch)

	truncated := layout.UniformBlock(2, LocalBindingUBOLocal)
	truncated.Members = truncated.Members[:2]
	require.ErrorIs(t, layout.MatchBlock(&truncated), gfx.ErrBinaryLayoutMismatch)

	shadow := ShadowLayout()
	other := shadow.UniformBlock(0, GlobalBindingUBOShadow)
	require.ErrorIs(t, layout.MatchBlock(&other), gfx.ErrBinaryLayoutMismatch)
}

func TestValidateBuiltins(t *testing.T) {
	require.NoError(t, ValidateBuiltins(nil))

	caps := gfx.DefaultDeviceCaps()
	caps.MaxUniformBlockSize = 16384
	caps.MaxVertexUniformVectors = 4096
	require.NoError(t, ValidateBuiltins(&caps))

	caps.MaxUniformBlockSize = 1024
	require.ErrorIs(t, ValidateBuiltins(&caps), gfx.ErrCapacityExceeded)
}

func TestMatchShader(t *testing.T) {
	layout := LocalLayout()
	local := layout.UniformBlock(2, LocalBindingUBOLocal)
	info := gfx.ShaderInfo{
		Name: "standard",
		Blocks: []gfx.UniformBlock{
			local,
			{Set: 1, Binding: 0, Name: "Constants", Count: 1, Members: []gfx.Uniform{{Name: "tint", Type: gfx.TypeFloat4, Count: 1}}},
		},
	}
	require.NoError(t, MatchShader(&info))

	info.Blocks[0].Members = append(info.Blocks[0].Members, gfx.Uniform{Name: "cc_extra", Type: gfx.TypeFloat4, Count: 1})
	require.ErrorIs(t, MatchShader(&info), gfx.ErrBinaryLayoutMismatch)
}

func TestPrintLayouts(t *testing.T) {
	writer := jwriter.NewWriter()
	err := PrintLayouts(&writer, ForwardLightLayout(), MorphLayout())
	require.NoError(t, err)

	var layouts []struct {
		Name   string
		Count  int
		Size   int
		Fields []struct {
			Name       string
			Type       string
			Count      int
			Offset     int
			ByteOffset int
		}
	}
	require.NoError(t, json.Unmarshal(writer.Bytes(), &layouts))
	require.Len(t, layouts, 2)
	require.Equal(t, "CCForwardLight", layouts[0].Name)
	require.Equal(t, 64, layouts[0].Size)
	require.Len(t, layouts[0].Fields, 4)
	require.Equal(t, 12, layouts[0].Fields[3].Offset)
	require.Equal(t, 48, layouts[0].Fields[3].ByteOffset)
	require.Equal(t, "CCMorph", layouts[1].Name)
	require.Equal(t, 15, layouts[1].Fields[0].Count)
	require.Equal(t, 240, layouts[1].Fields[1].ByteOffset)
}
