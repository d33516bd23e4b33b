package endian

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetReturnsLittleEndian(t *testing.T) {
	require.Equal(t, LittleEndian, Get())
}

func TestRoundTripUint64(t *testing.T) {
	b := make([]byte, 8)
	Get().PutUint64(b, 0x0102030405060708)
	require.Equal(t, uint64(0x0102030405060708), Get().Uint64(b))
	require.Equal(t, byte(0x08), b[0])
}
