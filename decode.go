package wire

import (
	"fmt"
	"math"
	"unicode/utf8"
	"unsafe"
)

// DecodeFunc decodes one element of type T. Container decoders take one so
// element types stay free of any interface requirement.
type DecodeFunc[T any] func(dec Decoder) (T, error)

// readFixed claims len(p) bytes and fills p from the decoder's reader.
func readFixed(dec Decoder, p []byte) error {
	if err := dec.ClaimBytes(uint64(len(p))); err != nil {
		return err
	}
	return dec.Reader().Read(p)
}

// DecodeBool reads a single byte and rejects anything but 0 or 1.
func DecodeBool(dec Decoder) (bool, error) {
	var b [1]byte
	if err := readFixed(dec, b[:]); err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: bool byte %#x", ErrInvalidEncoding, b[0])
	}
}

// DecodeUint8 reads a single byte.
func DecodeUint8(dec Decoder) (uint8, error) {
	var b [1]byte
	if err := readFixed(dec, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// DecodeInt8 reads a single byte.
func DecodeInt8(dec Decoder) (int8, error) {
	v, err := DecodeUint8(dec)
	return int8(v), err
}

// DecodeUint16 reads a uint16 per the Config integer mode.
func DecodeUint16(dec Decoder) (uint16, error) {
	if dec.Config().Ints == VarInt {
		v, err := readUvarint(dec)
		if err != nil {
			return 0, err
		}
		if v > math.MaxUint16 {
			return 0, fmt.Errorf("%w: value %d overflows uint16", ErrInvalidEncoding, v)
		}
		return uint16(v), nil
	}
	var b [2]byte
	if err := readFixed(dec, b[:]); err != nil {
		return 0, err
	}
	return dec.Config().Order.Uint16(b[:]), nil
}

// DecodeUint32 reads a uint32 per the Config integer mode.
func DecodeUint32(dec Decoder) (uint32, error) {
	if dec.Config().Ints == VarInt {
		v, err := readUvarint(dec)
		if err != nil {
			return 0, err
		}
		if v > math.MaxUint32 {
			return 0, fmt.Errorf("%w: value %d overflows uint32", ErrInvalidEncoding, v)
		}
		return uint32(v), nil
	}
	var b [4]byte
	if err := readFixed(dec, b[:]); err != nil {
		return 0, err
	}
	return dec.Config().Order.Uint32(b[:]), nil
}

// DecodeUint64 reads a uint64 per the Config integer mode.
func DecodeUint64(dec Decoder) (uint64, error) {
	if dec.Config().Ints == VarInt {
		return readUvarint(dec)
	}
	var b [8]byte
	if err := readFixed(dec, b[:]); err != nil {
		return 0, err
	}
	return dec.Config().Order.Uint64(b[:]), nil
}

// DecodeInt16 reads an int16 per the Config integer mode.
func DecodeInt16(dec Decoder) (int16, error) {
	if dec.Config().Ints == VarInt {
		v, err := readUvarint(dec)
		if err != nil {
			return 0, err
		}
		s := unzigzag(v)
		if s < math.MinInt16 || s > math.MaxInt16 {
			return 0, fmt.Errorf("%w: value %d overflows int16", ErrInvalidEncoding, s)
		}
		return int16(s), nil
	}
	var b [2]byte
	if err := readFixed(dec, b[:]); err != nil {
		return 0, err
	}
	return int16(dec.Config().Order.Uint16(b[:])), nil
}

// DecodeInt32 reads an int32 per the Config integer mode.
func DecodeInt32(dec Decoder) (int32, error) {
	if dec.Config().Ints == VarInt {
		v, err := readUvarint(dec)
		if err != nil {
			return 0, err
		}
		s := unzigzag(v)
		if s < math.MinInt32 || s > math.MaxInt32 {
			return 0, fmt.Errorf("%w: value %d overflows int32", ErrInvalidEncoding, s)
		}
		return int32(s), nil
	}
	var b [4]byte
	if err := readFixed(dec, b[:]); err != nil {
		return 0, err
	}
	return int32(dec.Config().Order.Uint32(b[:])), nil
}

// DecodeInt64 reads an int64 per the Config integer mode.
func DecodeInt64(dec Decoder) (int64, error) {
	if dec.Config().Ints == VarInt {
		v, err := readUvarint(dec)
		if err != nil {
			return 0, err
		}
		return unzigzag(v), nil
	}
	var b [8]byte
	if err := readFixed(dec, b[:]); err != nil {
		return 0, err
	}
	return int64(dec.Config().Order.Uint64(b[:])), nil
}

// DecodeFloat32 reads fixed-width IEEE 754 bits in the Config byte order.
func DecodeFloat32(dec Decoder) (float32, error) {
	var b [4]byte
	if err := readFixed(dec, b[:]); err != nil {
		return 0, err
	}
	return math.Float32frombits(dec.Config().Order.Uint32(b[:])), nil
}

// DecodeFloat64 reads fixed-width IEEE 754 bits in the Config byte order.
func DecodeFloat64(dec Decoder) (float64, error) {
	var b [8]byte
	if err := readFixed(dec, b[:]); err != nil {
		return 0, err
	}
	return math.Float64frombits(dec.Config().Order.Uint64(b[:])), nil
}

// DecodeRune reads a Unicode scalar value and rejects surrogates and
// out-of-range code points.
func DecodeRune(dec Decoder) (rune, error) {
	v, err := DecodeUint32(dec)
	if err != nil {
		return 0, err
	}
	r := rune(v)
	if v > utf8.MaxRune || !utf8.ValidRune(r) {
		return 0, fmt.Errorf("%w: %#x is not a Unicode scalar value", ErrInvalidEncoding, v)
	}
	return r, nil
}

// DecodeLen reads a container element count using the Config length
// encoding. The count is attacker-controlled: callers must pre-claim its
// cost before looping or allocating (see DecodeSeq).
func DecodeLen(dec Decoder) (int, error) {
	var v uint64
	var err error
	if dec.Config().Ints == VarInt {
		v, err = readUvarint(dec)
	} else {
		var b [8]byte
		err = readFixed(dec, b[:])
		v = dec.Config().Order.Uint64(b[:])
	}
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt {
		return 0, fmt.Errorf("%w: length %d overflows int", ErrInvalidEncoding, v)
	}
	return int(v), nil
}

// DecodeBytes reads a length prefix and returns a fresh copy of the byte
// run. The length is claimed in full before any allocation.
func DecodeBytes(dec Decoder) ([]byte, error) {
	n, err := DecodeLen(dec)
	if err != nil {
		return nil, err
	}
	if err := dec.ClaimBytes(uint64(n)); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if err := dec.Reader().Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// DecodeString reads a length-prefixed UTF-8 string, copying the bytes.
func DecodeString(dec Decoder) (string, error) {
	buf, err := DecodeBytes(dec)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", fmt.Errorf("%w: string is not valid UTF-8", ErrInvalidEncoding)
	}
	return string(buf), nil
}

// BorrowDecodeBytes reads a length-prefixed byte run as a view into the
// input buffer. The slice is valid for the buffer's lifetime and must not
// be mutated.
func BorrowDecodeBytes(dec BorrowDecoder) ([]byte, error) {
	br := dec.BorrowReader()
	if br == nil {
		return nil, ErrNotBorrowable
	}
	n, err := DecodeLen(dec)
	if err != nil {
		return nil, err
	}
	if err := dec.ClaimBytes(uint64(n)); err != nil {
		return nil, err
	}
	return br.ReadSlice(n)
}

// BorrowDecodeString reads a length-prefixed UTF-8 string without copying.
// The string aliases the input buffer, which must stay immutable for the
// string's lifetime.
func BorrowDecodeString(dec BorrowDecoder) (string, error) {
	buf, err := BorrowDecodeBytes(dec)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", fmt.Errorf("%w: string is not valid UTF-8", ErrInvalidEncoding)
	}
	if len(buf) == 0 {
		return "", nil
	}
	return unsafe.String(&buf[0], len(buf)), nil
}

// DecodeOption reads a presence discriminant and, when present, the payload.
// Absent values consume exactly one byte.
func DecodeOption[T any](dec Decoder, fn DecodeFunc[T]) (*T, error) {
	var b [1]byte
	if err := readFixed(dec, b[:]); err != nil {
		return nil, err
	}
	switch b[0] {
	case 0:
		return nil, nil
	case 1:
		v, err := fn(dec)
		if err != nil {
			return nil, err
		}
		return &v, nil
	default:
		return nil, fmt.Errorf("%w: option discriminant %#x", ErrInvalidEncoding, b[0])
	}
}

// DecodeVariant reads an enum variant index and rejects indices at or above
// variants. Pass zero to skip the range check when the caller validates.
func DecodeVariant(dec Decoder, variants uint32) (uint32, error) {
	v, err := DecodeUint32(dec)
	if err != nil {
		return 0, err
	}
	if variants > 0 && v >= variants {
		return 0, fmt.Errorf("%w: variant index %d out of range (have %d variants)", ErrInvalidEncoding, v, variants)
	}
	return v, nil
}
