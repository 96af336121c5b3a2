package trace

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarintRoundTrip(t *testing.T) {
	values := []int32{
		0, 1, -1, 31, 32, -32, -33, 95, 96,
		0x7F, 0x80, 0xFFF, 0x1000, 0x7FFE, 0x7FFF, 0x8000,
		1 << 20, 3 << 19, -(1 << 19), 1 << 27, 3 << 26,
		-(1 << 26), 1<<31 - 1, -(1 << 31),
	}

	for _, v := range values {
		enc := appendInt32(nil, v)
		require.NotEmpty(t, enc)
		require.LessOrEqual(t, len(enc), 5)

		data := enc
		got, err := decodeInt32(&data)
		require.NoError(t, err, "value %d", v)
		require.Equal(t, v, got)
		require.Empty(t, data, "value %d left undecoded bytes", v)
	}
}

func TestVarintUnsignedRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 0x7FFF, 0x8000, 0xFFFF, 1 << 24, 0xFFFFFFFF}

	for _, v := range values {
		enc := appendUint32(nil, v)
		data := enc
		got, err := decodeUint32(&data)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestVarintSingleByte(t *testing.T) {
	// The single-byte window is [-32, 95].
	for _, v := range []int32{-32, 0, 95} {
		require.Len(t, appendInt32(nil, v), 1, "value %d", v)
	}
	for _, v := range []int32{-33, 96} {
		require.Len(t, appendInt32(nil, v), 2, "value %d", v)
	}
}

func TestVarintTruncated(t *testing.T) {
	var empty []byte
	_, err := decodeInt32(&empty)
	require.ErrorIs(t, err, ErrTruncated)

	// Continuation bit set with nothing following.
	data := []byte{0x81}
	_, err = decodeInt32(&data)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestCRC16(t *testing.T) {
	require.Equal(t, uint16(0xFFFF), crc16(nil))

	// Same input, same checksum; different input, different checksum.
	a := crc16([]byte{0x01, 0x02, 0x03})
	require.Equal(t, a, crc16([]byte{0x01, 0x02, 0x03}))
	require.NotEqual(t, a, crc16([]byte{0x01, 0x02, 0x04}))
	require.NotEqual(t, crc16([]byte{0x00}), crc16([]byte{0xFF}))
}
