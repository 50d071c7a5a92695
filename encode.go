package wire

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// EncodeFunc encodes one element of type T. Container encoders take one so
// element types stay free of any interface requirement.
type EncodeFunc[T any] func(enc Encoder, v T) error

// EncodeBool writes v as a single 0 or 1 byte.
func EncodeBool(enc Encoder, v bool) error {
	b := [1]byte{0}
	if v {
		b[0] = 1
	}
	return enc.Writer().Write(b[:])
}

// EncodeUint8 writes a single byte. Single-byte types ignore the IntMode.
func EncodeUint8(enc Encoder, v uint8) error {
	b := [1]byte{v}
	return enc.Writer().Write(b[:])
}

// EncodeInt8 writes a single byte.
func EncodeInt8(enc Encoder, v int8) error {
	return EncodeUint8(enc, uint8(v))
}

// EncodeUint16 writes v per the Config integer mode.
func EncodeUint16(enc Encoder, v uint16) error {
	if enc.Config().Ints == VarInt {
		return encodeUvarint(enc, uint64(v))
	}
	var b [2]byte
	enc.Config().Order.PutUint16(b[:], v)
	return enc.Writer().Write(b[:])
}

// EncodeUint32 writes v per the Config integer mode.
func EncodeUint32(enc Encoder, v uint32) error {
	if enc.Config().Ints == VarInt {
		return encodeUvarint(enc, uint64(v))
	}
	var b [4]byte
	enc.Config().Order.PutUint32(b[:], v)
	return enc.Writer().Write(b[:])
}

// EncodeUint64 writes v per the Config integer mode.
func EncodeUint64(enc Encoder, v uint64) error {
	if enc.Config().Ints == VarInt {
		return encodeUvarint(enc, v)
	}
	var b [8]byte
	enc.Config().Order.PutUint64(b[:], v)
	return enc.Writer().Write(b[:])
}

// EncodeInt16 writes v per the Config integer mode, zigzag-mapped when
// variable width.
func EncodeInt16(enc Encoder, v int16) error {
	if enc.Config().Ints == VarInt {
		return encodeUvarint(enc, zigzag(int64(v)))
	}
	var b [2]byte
	enc.Config().Order.PutUint16(b[:], uint16(v))
	return enc.Writer().Write(b[:])
}

// EncodeInt32 writes v per the Config integer mode, zigzag-mapped when
// variable width.
func EncodeInt32(enc Encoder, v int32) error {
	if enc.Config().Ints == VarInt {
		return encodeUvarint(enc, zigzag(int64(v)))
	}
	var b [4]byte
	enc.Config().Order.PutUint32(b[:], uint32(v))
	return enc.Writer().Write(b[:])
}

// EncodeInt64 writes v per the Config integer mode, zigzag-mapped when
// variable width.
func EncodeInt64(enc Encoder, v int64) error {
	if enc.Config().Ints == VarInt {
		return encodeUvarint(enc, zigzag(v))
	}
	var b [8]byte
	enc.Config().Order.PutUint64(b[:], uint64(v))
	return enc.Writer().Write(b[:])
}

// EncodeFloat32 writes the IEEE 754 bits at fixed width in the Config byte
// order. Floats never use variable-width encoding.
func EncodeFloat32(enc Encoder, v float32) error {
	var b [4]byte
	enc.Config().Order.PutUint32(b[:], math.Float32bits(v))
	return enc.Writer().Write(b[:])
}

// EncodeFloat64 writes the IEEE 754 bits at fixed width in the Config byte
// order.
func EncodeFloat64(enc Encoder, v float64) error {
	var b [8]byte
	enc.Config().Order.PutUint64(b[:], math.Float64bits(v))
	return enc.Writer().Write(b[:])
}

// EncodeRune writes v as its Unicode scalar value, a uint32 per the Config
// integer mode. Surrogates and out-of-range values are rejected.
func EncodeRune(enc Encoder, v rune) error {
	if !utf8.ValidRune(v) {
		return fmt.Errorf("%w: rune %#x is not a Unicode scalar value", ErrInvalidEncoding, v)
	}
	return EncodeUint32(enc, uint32(v))
}

// EncodeLen writes a container element count using the Config length
// encoding: variable-width in VarInt mode, 8-byte unsigned in FixedInt mode.
func EncodeLen(enc Encoder, n int) error {
	if enc.Config().Ints == VarInt {
		return encodeUvarint(enc, uint64(n))
	}
	var b [8]byte
	enc.Config().Order.PutUint64(b[:], uint64(n))
	return enc.Writer().Write(b[:])
}

// EncodeBytes writes a length prefix followed by the raw byte run.
func EncodeBytes(enc Encoder, v []byte) error {
	if err := EncodeLen(enc, len(v)); err != nil {
		return err
	}
	return enc.Writer().Write(v)
}

// EncodeString writes s as a length prefix followed by its UTF-8 bytes.
func EncodeString(enc Encoder, s string) error {
	if err := EncodeLen(enc, len(s)); err != nil {
		return err
	}
	return enc.Writer().Write([]byte(s))
}

// EncodeOption writes a presence discriminant (0 absent, 1 present) and, if
// v is non-nil, the payload.
func EncodeOption[T any](enc Encoder, v *T, fn EncodeFunc[T]) error {
	if v == nil {
		return EncodeUint8(enc, 0)
	}
	if err := EncodeUint8(enc, 1); err != nil {
		return err
	}
	return fn(enc, *v)
}

// EncodeVariant writes an enum variant index as a uint32 per the Config
// integer mode.
func EncodeVariant(enc Encoder, index uint32) error {
	return EncodeUint32(enc, index)
}

func encodeUvarint(enc Encoder, v uint64) error {
	var b [9]byte
	n := putUvarint(b[:], v)
	return enc.Writer().Write(b[:n])
}
