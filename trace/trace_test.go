package trace

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterDecoderRoundTrip(t *testing.T) {
	events := []Event{
		{Tick: 0, ID: 0, Pending: 0},
		{Tick: 100, ID: 1, Pending: 3},
		{Tick: 0x7FFE, ID: 7, Pending: 1},
		{Tick: 0x7FFF, ID: 0xDEAD, Pending: 5},
		{Tick: 3, ID: 0xFFFFFFFF, Pending: 255},
	}

	var w Writer
	for _, e := range events {
		require.True(t, w.Append(e))
	}

	var d Decoder
	d.Feed(w.Bytes())

	for _, want := range events {
		got, ok := d.Next()
		require.True(t, ok)
		require.Equal(t, want, got)
	}
	_, ok := d.Next()
	require.False(t, ok)
}

func TestWriterOverflowDrops(t *testing.T) {
	var w Writer
	n := 0
	for w.Append(Event{Tick: 0x7FFF, ID: 0xFFFFFFFF, Pending: 255}) {
		n++
	}
	require.Greater(t, n, 0)
	used := w.Len()

	// Once full, further appends change nothing.
	require.False(t, w.Append(Event{Tick: 1, ID: 1, Pending: 1}))
	require.Equal(t, used, w.Len())

	w.Reset()
	require.Zero(t, w.Len())
	require.True(t, w.Append(Event{Tick: 1, ID: 1, Pending: 1}))
}

func TestDecoderPartialFeeds(t *testing.T) {
	var w Writer
	require.True(t, w.Append(Event{Tick: 500, ID: 9, Pending: 2}))
	frame := w.Bytes()

	var d Decoder
	for i, b := range frame {
		d.Feed([]byte{b})
		e, ok := d.Next()
		if i < len(frame)-1 {
			require.False(t, ok, "decoded before byte %d of %d", i+1, len(frame))
		} else {
			require.True(t, ok)
			require.Equal(t, Event{Tick: 500, ID: 9, Pending: 2}, e)
		}
	}
}

func TestDecoderResyncOnGarbage(t *testing.T) {
	var w Writer
	require.True(t, w.Append(Event{Tick: 10, ID: 1, Pending: 1}))
	frame := append([]byte{0x00, 0x42, 0xFF}, w.Bytes()...)

	var d Decoder
	d.Feed(frame)
	e, ok := d.Next()
	require.True(t, ok)
	require.Equal(t, Event{Tick: 10, ID: 1, Pending: 1}, e)
}

func TestDecoderResyncOnBadCRC(t *testing.T) {
	var w Writer
	require.True(t, w.Append(Event{Tick: 10, ID: 1, Pending: 1}))
	require.True(t, w.Append(Event{Tick: 20, ID: 2, Pending: 1}))

	stream := append([]byte(nil), w.Bytes()...)
	// Corrupt a payload byte of the first frame.
	stream[3] ^= 0xFF

	var d Decoder
	d.Feed(stream)
	e, ok := d.Next()
	require.True(t, ok)
	require.Equal(t, Event{Tick: 20, ID: 2, Pending: 1}, e)
	_, ok = d.Next()
	require.False(t, ok)
}

func TestDecoderEmpty(t *testing.T) {
	var d Decoder
	_, ok := d.Next()
	require.False(t, ok)

	d.Feed(nil)
	_, ok = d.Next()
	require.False(t, ok)
}
