package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// label is a named byte type: same representation as byte, but deliberately
// outside the raw-run fast path, which demands the exact byte type.
type label byte

func decodeLabel(dec Decoder) (label, error) {
	v, err := DecodeUint8(dec)
	return label(v), err
}

func TestByteFastPathGate(t *testing.T) {
	assert.True(t, isByteElem[byte]())
	assert.True(t, isByteElem[uint8]())
	assert.False(t, isByteElem[label]())
	assert.False(t, isByteElem[int8]())
	assert.False(t, isByteElem[bool]())
}

func TestByteFastPathEquivalence(t *testing.T) {
	// The same wire bytes, decoded once through the raw-run fast path and
	// once element by element through the generic loop.
	data := []byte{4, 0x10, 0x20, 0x30, 0x40}

	fast, err := DecodeSeq[byte](NewDecoder(NewBytesReader(data), Standard(), nil), DecodeUint8)
	require.NoError(t, err)

	slow, err := DecodeSeq(NewDecoder(NewBytesReader(data), Standard(), nil), decodeLabel)
	require.NoError(t, err)

	require.Len(t, slow, len(fast))
	for i := range fast {
		assert.Equal(t, label(fast[i]), slow[i])
	}
}

func TestByteFastPathEncode(t *testing.T) {
	w := NewBytesWriter(0)
	require.NoError(t, EncodeSeq(NewEncoder(w, Standard(), nil), []byte{9, 8, 7}, EncodeUint8))
	assert.Equal(t, []byte{3, 9, 8, 7}, w.Bytes())
}

func TestSeqRoundTripNonBytes(t *testing.T) {
	in := []uint32{0, 1, 0xFFFF, 0xFFFFFFFF}
	for _, cfg := range []Config{Standard(), Standard().WithFixedInts()} {
		w := NewBytesWriter(0)
		require.NoError(t, EncodeSeq(NewEncoder(w, cfg, nil), in, EncodeUint32))

		out, err := DecodeSeq(NewDecoder(NewBytesReader(w.Bytes()), cfg, nil), DecodeUint32)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}

func TestMapEncodeIsDeterministic(t *testing.T) {
	m := map[string]uint16{"zeta": 1, "alpha": 2, "mid": 3}
	first, err := Encode(encodableMap(m), Standard())
	require.NoError(t, err)
	for i := 0; i < 16; i++ {
		again, err := Encode(encodableMap(m), Standard())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	// Sorted key order: alpha, mid, zeta.
	w := NewBytesWriter(0)
	require.NoError(t, EncodeMap(NewEncoder(w, Standard(), nil), m, EncodeString, EncodeUint16))
	expected := []byte{
		3,
		5, 'a', 'l', 'p', 'h', 'a', 2,
		3, 'm', 'i', 'd', 3,
		4, 'z', 'e', 't', 'a', 1,
	}
	assert.Equal(t, expected, w.Bytes())
}

// encodableMap adapts a map literal to the Encodable contract for tests.
type encodableMap map[string]uint16

func (m encodableMap) Encode(enc Encoder) error {
	return EncodeMap(enc, m, EncodeString, EncodeUint16)
}

func TestMapRoundTrip(t *testing.T) {
	in := map[string]uint16{"a": 1, "bb": 2, "": 3}
	w := NewBytesWriter(0)
	require.NoError(t, EncodeMap(NewEncoder(w, Standard(), nil), in, EncodeString, EncodeUint16))

	out, err := DecodeMap(NewDecoder(NewBytesReader(w.Bytes()), Standard(), nil), DecodeString, DecodeUint16)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestOptionDiscriminantLayout(t *testing.T) {
	// Absent: exactly one zero byte, no payload.
	w := NewBytesWriter(0)
	require.NoError(t, EncodeOption[uint32](NewEncoder(w, Standard(), nil), nil, EncodeUint32))
	require.Equal(t, []byte{0}, w.Bytes())

	r := NewBytesReader(w.Bytes())
	got, err := DecodeOption(NewDecoder(r, Standard(), nil), DecodeUint32)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 1, r.Len(), "absent option must consume only the discriminant")

	// Present: discriminant 1 followed by the payload.
	v := uint32(7)
	w.Reset()
	require.NoError(t, EncodeOption(NewEncoder(w, Standard(), nil), &v, EncodeUint32))
	require.Equal(t, []byte{1, 7}, w.Bytes())

	got, err = DecodeOption(NewDecoder(NewBytesReader(w.Bytes()), Standard(), nil), DecodeUint32)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, v, *got)
}

func TestOptionBadDiscriminant(t *testing.T) {
	_, err := DecodeOption(NewDecoder(NewBytesReader([]byte{2}), Standard(), nil), DecodeUint32)
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

// signal is a three-variant enum: Off, Dim(level int32), Color{r,g,b uint8}.
type signal struct {
	kind  uint32
	level int32
	r     uint8
	g     uint8
	b     uint8
}

const signalVariants = 3

func (v *signal) Encode(enc Encoder) error {
	if err := EncodeVariant(enc, v.kind); err != nil {
		return err
	}
	switch v.kind {
	case 0:
		return nil
	case 1:
		return EncodeInt32(enc, v.level)
	default:
		if err := EncodeUint8(enc, v.r); err != nil {
			return err
		}
		if err := EncodeUint8(enc, v.g); err != nil {
			return err
		}
		return EncodeUint8(enc, v.b)
	}
}

func (v *signal) Decode(dec Decoder) error {
	kind, err := DecodeVariant(dec, signalVariants)
	if err != nil {
		return err
	}
	v.kind = kind
	switch kind {
	case 0:
		return nil
	case 1:
		v.level, err = DecodeInt32(dec)
		return err
	default:
		if v.r, err = DecodeUint8(dec); err != nil {
			return err
		}
		if v.g, err = DecodeUint8(dec); err != nil {
			return err
		}
		v.b, err = DecodeUint8(dec)
		return err
	}
}

func TestEnumSecondVariantRoundTrip(t *testing.T) {
	in := &signal{kind: 1, level: -19}
	data, err := Encode(in, Standard())
	require.NoError(t, err)

	var out signal
	_, err = Decode(data, &out, Standard())
	require.NoError(t, err)
	assert.Equal(t, in, &out)
}

func TestEnumVariantOutOfRange(t *testing.T) {
	w := NewBytesWriter(0)
	require.NoError(t, EncodeVariant(NewEncoder(w, Standard(), nil), 5))

	var out signal
	_, err := Decode(w.Bytes(), &out, Standard())
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}
