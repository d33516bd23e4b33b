package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeIsFixed(t *testing.T) {
	for c := CodeInt64; c <= CodeFloat32; c++ {
		require.True(t, c.IsFixed())
	}
	require.False(t, CodeIntGroup.IsFixed())
	require.False(t, CodeFloatGroup.IsFixed())
}

func TestCodeElemSize(t *testing.T) {
	require.Equal(t, 8, CodeInt64.ElemSize())
	require.Equal(t, 8, CodeFloat64.ElemSize())
	require.Equal(t, 4, CodeInt32.ElemSize())
	require.Equal(t, 4, CodeFloat32.ElemSize())
	require.Equal(t, 2, CodeInt16.ElemSize())
	require.Equal(t, 1, CodeUint8.ElemSize())
}

func TestCodeString(t *testing.T) {
	require.Equal(t, "i64", CodeInt64.String())
	require.Equal(t, "int_group", CodeIntGroup.String())
	require.Equal(t, "float_group", CodeFloatGroup.String())
}

func TestCompressionTypeString(t *testing.T) {
	require.Equal(t, "None", CompressionNone.String())
	require.Equal(t, "Zstd", CompressionZstd.String())
	require.Equal(t, "LZ4", CompressionLZ4.String())
}
