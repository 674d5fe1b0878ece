package gfx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccessTypePartition(t *testing.T) {
	reads := ReadAccessTypes()
	writes := WriteAccessTypes()
	all := AllAccessTypes()

	require.Len(t, all, int(AccessTypeCount)-1)
	require.Len(t, all, len(reads)+len(writes))

	for _, access := range reads {
		require.True(t, access.IsRead(), access.String())
		require.False(t, access.IsWrite(), access.String())
		require.True(t, access.IsValid(), access.String())
	}
	for _, access := range writes {
		require.True(t, access.IsWrite(), access.String())
		require.False(t, access.IsRead(), access.String())
		require.True(t, access.IsValid(), access.String())
	}

	require.False(t, AccessTypeNone.IsValid())
	require.False(t, AccessTypeNone.IsRead())
	require.False(t, AccessTypeNone.IsWrite())
	require.False(t, AccessTypeCount.IsValid())
	require.Equal(t, "unknown AccessType", AccessTypeCount.String())
}

func TestAccessTypeNames(t *testing.T) {
	seen := make(map[string]AccessType)
	for _, access := range AllAccessTypes() {
		name := access.String()
		require.NotEqual(t, "unknown AccessType", name)

		other, duplicate := seen[name]
		require.False(t, duplicate, "%d and %d share name %s", other, access, name)
		seen[name] = access
	}
}

func TestAccessTypePseudoStages(t *testing.T) {
	require.True(t, AccessTypePresent.IsPseudoStage())
	require.True(t, AccessTypeHostWrite.IsPseudoStage())
	require.True(t, AccessTypeHostRead.IsPseudoStage())
	require.False(t, AccessTypeVertexBuffer.IsPseudoStage())
	require.False(t, AccessTypeColorAttachmentWrite.IsPseudoStage())
}

var accessListTestCases = map[string]struct {
	List     AccessTypeList
	HasWrite bool
	ReadOnly bool
}{
	"Empty":       {List: nil, HasWrite: false, ReadOnly: false},
	"Single Read": {List: AccessTypeList{AccessTypeVertexBuffer}, HasWrite: false, ReadOnly: true},
	"Reads": {
		List:     AccessTypeList{AccessTypeVertexBuffer, AccessTypeFragmentShaderReadTexture},
		ReadOnly: true,
	},
	"Write Dominant": {
		List:     AccessTypeList{AccessTypeFragmentShaderReadTexture, AccessTypeColorAttachmentWrite},
		HasWrite: true,
	},
	"Single Write": {List: AccessTypeList{AccessTypeTransferWrite}, HasWrite: true},
}

func TestAccessTypeList(t *testing.T) {
	for testName, testCase := range accessListTestCases {
		t.Run(testName, func(t *testing.T) {
			require.Equal(t, testCase.HasWrite, testCase.List.HasWrite())
			require.Equal(t, testCase.ReadOnly, testCase.List.IsReadOnly())
			require.NoError(t, testCase.List.Validate())
		})
	}
}

func TestAccessTypeListValidate(t *testing.T) {
	require.Error(t, AccessTypeList{AccessTypeVertexBuffer, AccessTypeNone}.Validate())
	require.Error(t, AccessTypeList{AccessTypeCount}.Validate())
}

func TestAccessTypeListClone(t *testing.T) {
	list := AccessTypeList{AccessTypeIndexBuffer, AccessTypeTransferRead}
	clone := list.Clone()
	list[0] = AccessTypeHostWrite

	require.Equal(t, AccessTypeList{AccessTypeIndexBuffer, AccessTypeTransferRead}, clone)
	require.True(t, clone.Contains(AccessTypeTransferRead))
	require.False(t, clone.Contains(AccessTypeHostWrite))
	require.Nil(t, AccessTypeList(nil).Clone())
	require.Equal(t, "[IndexBuffer|TransferRead]", clone.String())
}
