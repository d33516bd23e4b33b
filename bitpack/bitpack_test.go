package bitpack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrecisionNeeded(t *testing.T) {
	require.Equal(t, 0, PrecisionNeeded(0))
	for k := 1; k <= 64; k++ {
		max := uint64(1)<<uint(k) - 1
		require.Equalf(t, k, PrecisionNeeded(max), "k=%d", k)
	}
}

func TestBytesNeeded(t *testing.T) {
	require.Equal(t, 0, BytesNeeded(0, 100))
	require.Equal(t, 1, BytesNeeded(1, 8))
	require.Equal(t, 2, BytesNeeded(1, 9))
	require.Equal(t, 8, BytesNeeded(64, 1))
	require.Equal(t, 13, BytesNeeded(10, 10))
}

func TestPackUnpackRoundTrip(t *testing.T) {
	widths := []int{0, 1, 3, 7, 8, 11, 13, 31, 32, 63, 64}
	for _, w := range widths {
		var max uint64
		if w == 64 {
			max = ^uint64(0)
		} else {
			max = (uint64(1) << uint(w)) - 1
		}

		xs := []uint64{0, max}
		if w > 0 {
			xs = append(xs, max/2, 1)
		}

		packed := Pack(w, xs)
		got := Unpack(packed, w, len(xs))
		require.Equalf(t, xs, got, "width=%d", w)
	}
}

func TestPackWidthZero(t *testing.T) {
	require.Nil(t, Pack(0, []uint64{5, 6, 7}))
	got := Unpack(nil, 0, 3)
	require.Equal(t, []uint64{0, 0, 0}, got)
}

func TestPackEmpty(t *testing.T) {
	require.Nil(t, Pack(5, nil))
	require.Equal(t, []uint64{}, Unpack(nil, 5, 0))
}

func TestPeriodicMin(t *testing.T) {
	const pixels = 20
	cases := []struct {
		xs   []int64
		want int64
	}{
		{[]int64{0, 1, 2, 3}, 0},
		{[]int64{10, 11, 12, 13}, 10},
		{[]int64{18, 19, 0, 1}, 18},
		{[]int64{1, 0, 19, 18}, 18},
		{[]int64{1, 19, 18, 0}, 18},
	}
	for _, c := range cases {
		require.Equalf(t, c.want, PeriodicMin(c.xs, pixels), "xs=%v", c.xs)
	}
}

func TestPeriodicMinEdgeCases(t *testing.T) {
	require.Equal(t, int64(0), PeriodicMin(nil, 20))
	require.Equal(t, int64(7), PeriodicMin([]int64{7}, 20))
	require.Equal(t, int64(7), PeriodicMin([]int64{7, 7, 7}, 20))
}
