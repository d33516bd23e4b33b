package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())
	require.Equal(t, 1024, bb.Cap())
}

func TestByteBufferWriteAndReset(t *testing.T) {
	bb := NewByteBuffer(16)
	n, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, []byte("hello"), bb.Bytes())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
}

func TestByteBufferGrow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.Grow(100)
	require.GreaterOrEqual(t, bb.Cap(), 100)
}

func TestByteBufferExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.ExtendOrGrow(10)
	require.Equal(t, 10, bb.Len())
}

func TestByteBufferSetLength(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.SetLength(5)
	require.Equal(t, 5, bb.Len())
}

func TestByteBufferPoolGetPut(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.Write([]byte("data"))
	p.Put(bb)

	bb2 := p.Get()
	require.Equal(t, 0, bb2.Len())
}

func TestByteBufferPoolDiscardsOversized(t *testing.T) {
	p := NewByteBufferPool(4, 8)

	bb := p.Get()
	bb.Grow(100)
	p.Put(bb) // should be discarded, not pooled

	bb2 := p.Get()
	require.Equal(t, 4, bb2.Cap()) // fresh default-size buffer, not the discarded oversized one
}

func TestBlockBufferPool(t *testing.T) {
	bb := GetBlockBuffer()
	require.NotNil(t, bb)
	PutBlockBuffer(bb)
}
