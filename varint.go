package wire

import (
	"encoding/binary"
	"fmt"
)

// Variable-width integers use a marker scheme: values below 0xFD fit in one
// byte, larger magnitudes carry a marker byte followed by an explicit
// little-endian payload. The payload order is fixed regardless of the Config
// byte order so that VarInt streams are bit-exact across configs.
const (
	varMark16 = 0xFD
	varMark32 = 0xFE
	varMark64 = 0xFF
)

// putUvarint appends the variable-width form of v to buf (at most 9 bytes)
// and returns the number of bytes used. buf must have room for 9 bytes.
func putUvarint(buf []byte, v uint64) int {
	switch {
	case v < varMark16:
		buf[0] = byte(v)
		return 1
	case v <= 0xFFFF:
		buf[0] = varMark16
		binary.LittleEndian.PutUint16(buf[1:], uint16(v))
		return 3
	case v <= 0xFFFFFFFF:
		buf[0] = varMark32
		binary.LittleEndian.PutUint32(buf[1:], uint32(v))
		return 5
	default:
		buf[0] = varMark64
		binary.LittleEndian.PutUint64(buf[1:], v)
		return 9
	}
}

// uvarintLen reports how many bytes putUvarint will use for v.
func uvarintLen(v uint64) int {
	switch {
	case v < varMark16:
		return 1
	case v <= 0xFFFF:
		return 3
	case v <= 0xFFFFFFFF:
		return 5
	default:
		return 9
	}
}

// readUvarint pulls a variable-width unsigned integer from d, claiming each
// byte before it is read. Non-canonical forms (a wide marker carrying a
// value that fits a narrower form) are rejected so that every value has
// exactly one encoding.
func readUvarint(d Decoder) (uint64, error) {
	var buf [8]byte
	if err := d.ClaimBytes(1); err != nil {
		return 0, err
	}
	if err := d.Reader().Read(buf[:1]); err != nil {
		return 0, err
	}
	mark := buf[0]
	if mark < varMark16 {
		return uint64(mark), nil
	}

	var width int
	switch mark {
	case varMark16:
		width = 2
	case varMark32:
		width = 4
	default:
		width = 8
	}
	if err := d.ClaimBytes(uint64(width)); err != nil {
		return 0, err
	}
	if err := d.Reader().Read(buf[:width]); err != nil {
		return 0, err
	}

	var v uint64
	switch width {
	case 2:
		v = uint64(binary.LittleEndian.Uint16(buf[:2]))
		if v < varMark16 {
			return 0, fmt.Errorf("%w: non-canonical varint", ErrInvalidEncoding)
		}
	case 4:
		v = uint64(binary.LittleEndian.Uint32(buf[:4]))
		if v <= 0xFFFF {
			return 0, fmt.Errorf("%w: non-canonical varint", ErrInvalidEncoding)
		}
	default:
		v = binary.LittleEndian.Uint64(buf[:8])
		if v <= 0xFFFFFFFF {
			return 0, fmt.Errorf("%w: non-canonical varint", ErrInvalidEncoding)
		}
	}
	return v, nil
}

// getUvarint parses a variable-width unsigned integer from the front of b,
// returning the value and the number of bytes consumed. It is the slice
// counterpart of readUvarint for callers that parse headers without a
// Decoder.
func getUvarint(b []byte) (uint64, int, error) {
	if len(b) == 0 {
		return 0, 0, ErrUnexpectedEOF
	}
	mark := b[0]
	if mark < varMark16 {
		return uint64(mark), 1, nil
	}

	var width int
	switch mark {
	case varMark16:
		width = 2
	case varMark32:
		width = 4
	default:
		width = 8
	}
	if len(b) < 1+width {
		return 0, 0, ErrUnexpectedEOF
	}

	var v uint64
	var floor uint64
	switch width {
	case 2:
		v = uint64(binary.LittleEndian.Uint16(b[1:3]))
		floor = varMark16
	case 4:
		v = uint64(binary.LittleEndian.Uint32(b[1:5]))
		floor = 0x10000
	default:
		v = binary.LittleEndian.Uint64(b[1:9])
		floor = 0x100000000
	}
	if v < floor {
		return 0, 0, fmt.Errorf("%w: non-canonical varint", ErrInvalidEncoding)
	}
	return v, 1 + width, nil
}

// zigzag maps signed integers onto unsigned so that small magnitudes of
// either sign stay in the single-byte range.
func zigzag(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

// unzigzag inverts zigzag.
func unzigzag(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}
