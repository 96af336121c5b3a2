// Package trace carries alarm firing events from a running scheduler to a
// host over a byte stream, typically USB CDC or a UART.
//
// Each firing becomes one frame:
//
//	0x7E len payload crc_hi crc_lo
//
// where payload is three varints (clock tick, alarm ID, pending count) and
// the CRC covers the payload. The Writer side is allocation-free so it can
// run from an alarm callback inside the tick critical section; the Decoder
// side is a hosted tool's concern and resynchronizes on the sync byte after
// corruption.
package trace

import "bytes"

const (
	syncByte = 0x7E

	// maxPayload bounds the len byte; three varints of at most five
	// bytes each.
	maxPayload = 15

	// writerBuf is the Writer scratch size. At the common one-byte-varint
	// case a frame is 7 bytes, so this holds a dozen or so firings
	// between flushes.
	writerBuf = 96
)

// Event is one alarm firing as seen on the wire.
type Event struct {
	Tick    uint16 // logical clock value at the firing
	ID      uint32 // caller-assigned alarm identifier
	Pending uint8  // pending-set occupancy after the firing
}

// Writer frames events into a fixed scratch buffer. Append never allocates;
// when the scratch fills, events are dropped until the owner flushes Bytes
// and calls Reset. Single producer, single consumer: the tick path appends,
// the main loop drains.
type Writer struct {
	buf [writerBuf]byte
	pos int
}

// Append frames e into the scratch buffer. It reports false, dropping the
// event, when the remaining space cannot hold the frame.
func (w *Writer) Append(e Event) bool {
	var scratch [maxPayload]byte
	p := scratch[:0]
	p = appendUint32(p, uint32(e.Tick))
	p = appendUint32(p, e.ID)
	p = appendUint32(p, uint32(e.Pending))

	need := 2 + len(p) + 2
	if w.pos+need > len(w.buf) {
		return false
	}

	crc := crc16(p)
	w.buf[w.pos] = syncByte
	w.buf[w.pos+1] = byte(len(p))
	copy(w.buf[w.pos+2:], p)
	w.buf[w.pos+2+len(p)] = byte(crc >> 8)
	w.buf[w.pos+3+len(p)] = byte(crc)
	w.pos += need
	return true
}

// Bytes returns the framed data accumulated since the last Reset.
func (w *Writer) Bytes() []byte {
	return w.buf[:w.pos]
}

// Len returns the number of buffered bytes.
func (w *Writer) Len() int {
	return w.pos
}

// Reset discards the buffered frames after the owner has written them out.
func (w *Writer) Reset() {
	w.pos = 0
}

// Decoder reassembles events from an incoming byte stream. Feed bytes in as
// they arrive, then drain Next until it reports no complete frame. Garbage
// between frames, truncated frames, and CRC failures are skipped by
// rescanning from the next sync byte.
type Decoder struct {
	buf []byte
}

// Feed appends raw stream bytes to the reassembly buffer.
func (d *Decoder) Feed(p []byte) {
	d.buf = append(d.buf, p...)
}

// Next returns the next complete, checksum-valid event, or ok=false when
// the buffer holds no complete frame yet.
func (d *Decoder) Next() (e Event, ok bool) {
	for {
		start := bytes.IndexByte(d.buf, syncByte)
		if start < 0 {
			d.buf = d.buf[:0]
			return Event{}, false
		}
		d.buf = d.buf[start:]

		if len(d.buf) < 2 {
			return Event{}, false
		}
		plen := int(d.buf[1])
		if plen > maxPayload {
			// Not a real frame header; resync past this sync byte.
			d.buf = d.buf[1:]
			continue
		}
		total := 2 + plen + 2
		if len(d.buf) < total {
			return Event{}, false
		}

		payload := d.buf[2 : 2+plen]
		want := uint16(d.buf[2+plen])<<8 | uint16(d.buf[2+plen+1])
		if crc16(payload) != want {
			d.buf = d.buf[1:]
			continue
		}

		p := payload
		tick, err1 := decodeUint32(&p)
		id, err2 := decodeUint32(&p)
		pending, err3 := decodeUint32(&p)
		d.buf = d.buf[total:]
		if err1 != nil || err2 != nil || err3 != nil || len(p) != 0 {
			// CRC-valid but malformed payload; skip the frame.
			continue
		}

		return Event{Tick: uint16(tick), ID: id, Pending: uint8(pending)}, true
	}
}
