package trace

import "errors"

// ErrTruncated is returned when a varint runs past the end of its payload.
var ErrTruncated = errors.New("trace: truncated varint")

// appendInt32 appends v in variable-length form: most-significant 7-bit
// groups first with continuation bit 0x80, a signed window test deciding
// how many groups are needed. Values in [-32, 95] fit one byte.
func appendInt32(dst []byte, v int32) []byte {
	if !(-(1<<26) <= v && v < (3<<26)) {
		dst = append(dst, byte((v>>28)&0x7F)|0x80)
	}
	if !(-(1<<19) <= v && v < (3<<19)) {
		dst = append(dst, byte((v>>21)&0x7F)|0x80)
	}
	if !(-(1<<12) <= v && v < (3<<12)) {
		dst = append(dst, byte((v>>14)&0x7F)|0x80)
	}
	if !(-(1<<5) <= v && v < (3<<5)) {
		dst = append(dst, byte((v>>7)&0x7F)|0x80)
	}
	return append(dst, byte(v&0x7F))
}

// appendUint32 appends v through the signed encoder; encode and decode
// agree on the reinterpretation so unsigned values round-trip.
func appendUint32(dst []byte, v uint32) []byte {
	return appendInt32(dst, int32(v))
}

// decodeInt32 consumes one varint from the front of *data. The first byte's
// bits 0x60 signal sign extension for small negative values.
func decodeInt32(data *[]byte) (int32, error) {
	if len(*data) == 0 {
		return 0, ErrTruncated
	}

	c := uint32((*data)[0])
	*data = (*data)[1:]

	v := c & 0x7F
	if (c & 0x60) == 0x60 {
		v |= ^uint32(0x1F)
	}

	for c&0x80 != 0 {
		if len(*data) == 0 {
			return 0, ErrTruncated
		}
		c = uint32((*data)[0])
		*data = (*data)[1:]
		v = (v << 7) | (c & 0x7F)
	}

	return int32(v), nil
}

func decodeUint32(data *[]byte) (uint32, error) {
	v, err := decodeInt32(data)
	return uint32(v), err
}
