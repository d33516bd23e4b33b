package minnow

import (
	"testing"

	"github.com/nbodycat/minnow/errs"
	"github.com/nbodycat/minnow/format"
	"github.com/stretchr/testify/require"
)

// scenario "int_record": four i64 blocks of differing length, each its own
// fixed-size group, with magic/count and text headers written ahead of them.
func TestEndToEndIntRecord(t *testing.T) {
	mf := &memFile{}
	w, err := NewWriter(mf)
	require.NoError(t, err)

	_, err = w.Header([]byte("magic-count-placeholder"))
	require.NoError(t, err)
	_, err = w.Header([]byte("hello minnow"))
	require.NoError(t, err)

	blocks := [][]int64{{1, 2, 3, 4}, {5}, {6, 7, 8, 9}, {10, 11, 12}}
	for _, b := range blocks {
		require.NoError(t, w.FixedSizeGroup(format.CodeInt64, int64(len(b))))
		require.NoError(t, w.Data(ArrayI64(b)))
	}

	require.NoError(t, w.Close())

	r, err := NewReader(mf, mf.Len())
	require.NoError(t, err)

	require.Equal(t, int64(4), r.TotalBlocks())
	require.Equal(t, int64(4), r.TotalGroups())
	require.Equal(t, int64(2), r.TotalHeaders())

	for b, want := range blocks {
		got, err := r.Data(int64(b))
		require.NoError(t, err)
		require.Equal(t, want, got.I64)
	}

	h1, err := r.Header(1)
	require.NoError(t, err)
	require.Equal(t, "hello minnow", string(h1))
}

// scenario "group_record": one i32 group of 4 blocks and one f64 group of 2
// blocks, with a text header interleaved between them.
func TestEndToEndGroupRecord(t *testing.T) {
	mf := &memFile{}
	w, err := NewWriter(mf)
	require.NoError(t, err)

	require.NoError(t, w.FixedSizeGroup(format.CodeInt32, 5))
	arange20 := make([]int32, 20)
	for i := range arange20 {
		arange20[i] = int32(i)
	}
	for i := 0; i < 4; i++ {
		require.NoError(t, w.Data(ArrayI32(arange20[i*5:(i+1)*5])))
	}

	_, err = w.Header([]byte("between groups"))
	require.NoError(t, err)

	require.NoError(t, w.FixedSizeGroup(format.CodeFloat64, 5))
	arange10 := make([]float64, 10)
	for i := range arange10 {
		arange10[i] = float64(i) / 10
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, w.Data(ArrayF64(arange10[i*5:(i+1)*5])))
	}

	require.NoError(t, w.Close())

	r, err := NewReader(mf, mf.Len())
	require.NoError(t, err)

	require.Equal(t, int64(6), r.TotalBlocks())
	require.Equal(t, int64(2), r.TotalGroups())

	for b := 0; b < 4; b++ {
		got, err := r.Data(int64(b))
		require.NoError(t, err)
		require.Equal(t, arange20[b*5:(b+1)*5], got.I32)
	}
	for b := 0; b < 2; b++ {
		got, err := r.Data(int64(4 + b))
		require.NoError(t, err)
		require.InDeltaSlice(t, arange10[b*5:(b+1)*5], got.F64, 1e-6)
	}

	text, err := r.Header(0)
	require.NoError(t, err)
	require.Equal(t, "between groups", string(text))
}

// scenario "bit_int_record": an int_group block, a text header between it
// and the next group, two more int_group blocks wide enough to need ≥11
// bits, and a final int_group block with large negative values.
func TestEndToEndBitIntRecord(t *testing.T) {
	mf := &memFile{}
	w, err := NewWriter(mf)
	require.NoError(t, err)

	require.NoError(t, w.IntGroup())
	first := []int64{100, 200, 300}
	require.NoError(t, w.Data(ArrayI64(first)))

	_, err = w.Header([]byte("between int groups"))
	require.NoError(t, err)

	require.NoError(t, w.IntGroup())
	wide1 := []int64{0, 2047, 1024} // needs 11 bits
	wide2 := []int64{-500, 1500, 0}
	require.NoError(t, w.Data(ArrayI64(wide1)))
	require.NoError(t, w.Data(ArrayI64(wide2)))

	_, err = w.Header([]byte("before negatives"))
	require.NoError(t, err)

	require.NoError(t, w.IntGroup())
	negatives := []int64{-9000000000, -8999999999, -8999999998}
	require.NoError(t, w.Data(ArrayI64(negatives)))

	require.NoError(t, w.Close())

	r, err := NewReader(mf, mf.Len())
	require.NoError(t, err)

	got0, err := r.Data(0)
	require.NoError(t, err)
	require.Equal(t, first, got0.I64)

	got1, err := r.Data(1)
	require.NoError(t, err)
	require.Equal(t, wide1, got1.I64)

	got2, err := r.Data(2)
	require.NoError(t, err)
	require.Equal(t, wide2, got2.I64)

	got3, err := r.Data(3)
	require.NoError(t, err)
	require.Equal(t, negatives, got3.I64)
}

// scenario "q_float_record": (low,high)=(-50,100), two blocks through one
// group at dx=1.0 and three through another at dx=10.0.
func TestEndToEndQuantizedFloatRecord(t *testing.T) {
	mf := &memFile{}
	w, err := NewWriter(mf)
	require.NoError(t, err)

	const low, high = -50, 100

	require.NoError(t, w.FloatGroup(4, low, high, 1.0))
	blockA := []float32{-49.9, 0, 42.3, 99.4}
	blockB := []float32{-10, -10, 10, 10}
	require.NoError(t, w.Data(ArrayF32(blockA)))
	require.NoError(t, w.Data(ArrayF32(blockB)))

	require.NoError(t, w.FloatGroup(4, low, high, 10.0))
	blockC := []float32{-45, 0, 50, 95}
	blockD := []float32{-50, -20, 20, 60}
	blockE := []float32{0, 0, 0, 0}
	require.NoError(t, w.Data(ArrayF32(blockC)))
	require.NoError(t, w.Data(ArrayF32(blockD)))
	require.NoError(t, w.Data(ArrayF32(blockE)))

	require.NoError(t, w.Close())

	r, err := NewReader(mf, mf.Len())
	require.NoError(t, err)

	check := func(b int64, want []float32, dx float32) {
		got, err := r.Data(b)
		require.NoError(t, err)
		for i := range want {
			require.LessOrEqualf(t, absF32(got.F32[i]-want[i]), dx, "block %d elem %d", b, i)
		}
	}

	check(0, blockA, 1.0)
	check(1, blockB, 1.0)
	check(2, blockC, 10.0)
	check(3, blockD, 10.0)
	check(4, blockE, 10.0)
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// int_group opted into periodic_min semantics round-trips coordinates that
// wrap around the ring.
func TestIntGroupPeriodicMin(t *testing.T) {
	mf := &memFile{}
	w, err := NewWriter(mf)
	require.NoError(t, err)

	const pixels = 20
	require.NoError(t, w.IntGroup(WithPeriodicMin(pixels)))

	block := []int64{18, 19, 0, 1}
	require.NoError(t, w.Data(ArrayI64(block)))
	require.NoError(t, w.Close())

	r, err := NewReader(mf, mf.Len())
	require.NoError(t, err)

	got, err := r.Data(0)
	require.NoError(t, err)
	require.Equal(t, block, got.I64)
}

func TestDataIndexOutOfRange(t *testing.T) {
	mf := &memFile{}
	w, err := NewWriter(mf)
	require.NoError(t, err)
	require.NoError(t, w.FixedSizeGroup(format.CodeInt64, 2))
	require.NoError(t, w.Data(ArrayI64([]int64{1, 2})))
	require.NoError(t, w.Close())

	r, err := NewReader(mf, mf.Len())
	require.NoError(t, err)

	_, err = r.Data(5)
	require.ErrorIs(t, err, errs.ErrBlockIndexOutOfRange)
}

func TestDataWithoutOpenGroupFails(t *testing.T) {
	mf := &memFile{}
	w, err := NewWriter(mf)
	require.NoError(t, err)

	err = w.Data(ArrayI64([]int64{1}))
	require.ErrorIs(t, err, errs.ErrNoGroupOpen)
}

// TestHeaderCompressionRoundTrip exercises WithHeaderCompression across all
// three real codecs plus the uncompressed default, confirming the stored
// blob still decodes back to its original bytes regardless of codec.
func TestHeaderCompressionRoundTrip(t *testing.T) {
	text := []byte("halo catalog header blob, repeated repeated repeated for compressibility")

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		mf := &memFile{}
		w, err := NewWriter(mf, WithHeaderCompression(ct))
		require.NoError(t, err)

		_, err = w.Header(text)
		require.NoError(t, err)
		require.NoError(t, w.FixedSizeGroup(format.CodeInt64, 1))
		require.NoError(t, w.Data(ArrayI64([]int64{42})))
		require.NoError(t, w.Close())

		r, err := NewReader(mf, mf.Len())
		require.NoError(t, err)

		got, err := r.Header(0)
		require.NoError(t, err)
		require.Equal(t, text, got)
	}
}

func TestWithHeaderCompressionRejectsUnknownCodec(t *testing.T) {
	mf := &memFile{}
	_, err := NewWriter(mf, WithHeaderCompression(format.CompressionType(255)))
	require.Error(t, err)
}
