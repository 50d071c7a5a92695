package wire

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// person is a data model bound through the visitor protocol instead of a
// Decodable implementation.
type person struct {
	ID   uint32
	Name string
	OK   bool
}

type personVisitor struct {
	UnimplementedVisitor
	p     *person
	field int
}

func (v *personVisitor) DeserializeFrom(d Deserializer) error {
	switch v.field {
	case 0:
		return d.DeserializeUint32(v)
	case 1:
		return d.DeserializeString(v)
	case 2:
		return d.DeserializeBool(v)
	default:
		return fmt.Errorf("person has 3 fields, asked for %d", v.field+1)
	}
}

func (v *personVisitor) VisitSeq(a SeqAccess) error {
	for a.Remaining() > 0 {
		if _, err := a.NextElement(v); err != nil {
			return err
		}
	}
	return nil
}

func (v *personVisitor) VisitUint(u uint64) error {
	v.p.ID = uint32(u)
	v.field++
	return nil
}

func (v *personVisitor) VisitString(s string) error {
	v.p.Name = s
	v.field++
	return nil
}

func (v *personVisitor) VisitBool(b bool) error {
	v.p.OK = b
	v.field++
	return nil
}

// encodePerson writes the same field order the visitor declares.
func encodePerson(cfg Config, p person) []byte {
	w := NewBytesWriter(0)
	enc := NewEncoder(w, cfg, nil)
	if err := EncodeUint32(enc, p.ID); err != nil {
		panic(err)
	}
	if err := EncodeString(enc, p.Name); err != nil {
		panic(err)
	}
	if err := EncodeBool(enc, p.OK); err != nil {
		panic(err)
	}
	return w.Bytes()
}

func TestBridgeDecodesStruct(t *testing.T) {
	for _, cfg := range []Config{Standard(), Standard().WithFixedInts().WithByteOrder(BE)} {
		in := person{ID: 1411, Name: "close to the edge", OK: true}
		data := encodePerson(cfg, in)

		var out person
		v := &personVisitor{p: &out}
		des := NewDeserializer(NewDecoder(NewBytesReader(data), cfg, nil))
		require.NoError(t, des.DeserializeStruct(3, v))
		assert.Equal(t, in, out)
	}
}

func TestBridgeRejectsSelfDescribingRequests(t *testing.T) {
	des := NewDeserializer(NewDecoder(NewBytesReader([]byte{1, 2, 3}), Standard(), nil))
	v := &personVisitor{p: &person{}}

	assert.ErrorIs(t, des.DeserializeAny(v), ErrUnsupported)
	assert.ErrorIs(t, des.DeserializeIdentifier(v), ErrUnsupported)
	assert.ErrorIs(t, des.DeserializeIgnoredAny(v), ErrUnsupported)
}

func TestBridgeIsNotHumanReadable(t *testing.T) {
	des := NewDeserializer(NewDecoder(NewBytesReader(nil), Standard(), nil))
	assert.False(t, des.IsHumanReadable())
}

// optionVisitor records which branch the option took.
type optionVisitor struct {
	UnimplementedVisitor
	some  bool
	value uint64
}

func (v *optionVisitor) VisitNone() error { return nil }

func (v *optionVisitor) VisitSome(d Deserializer) error {
	v.some = true
	return d.DeserializeUint32(v)
}

func (v *optionVisitor) VisitUint(u uint64) error {
	v.value = u
	return nil
}

func TestBridgeOption(t *testing.T) {
	v := &optionVisitor{}
	des := NewDeserializer(NewDecoder(NewBytesReader([]byte{0}), Standard(), nil))
	require.NoError(t, des.DeserializeOption(v))
	assert.False(t, v.some)

	v = &optionVisitor{}
	des = NewDeserializer(NewDecoder(NewBytesReader([]byte{1, 9}), Standard(), nil))
	require.NoError(t, des.DeserializeOption(v))
	assert.True(t, v.some)
	assert.EqualValues(t, 9, v.value)

	des = NewDeserializer(NewDecoder(NewBytesReader([]byte{7}), Standard(), nil))
	assert.ErrorIs(t, des.DeserializeOption(&optionVisitor{}), ErrInvalidEncoding)
}

// mapVisitor binds a map[string]uint64 through the protocol.
type mapVisitor struct {
	UnimplementedVisitor
	m       map[string]uint64
	key     string
	wantKey bool
	hints   []int
}

func (v *mapVisitor) DeserializeFrom(d Deserializer) error {
	if v.wantKey {
		return d.DeserializeString(v)
	}
	return d.DeserializeUint16(v)
}

func (v *mapVisitor) VisitMap(a MapAccess) error {
	for {
		v.hints = append(v.hints, a.Remaining())
		v.wantKey = true
		ok, err := a.NextKey(v)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		v.wantKey = false
		if err := a.NextValue(v); err != nil {
			return err
		}
	}
}

func (v *mapVisitor) VisitString(s string) error {
	v.key = s
	return nil
}

func (v *mapVisitor) VisitUint(u uint64) error {
	v.m[v.key] = u
	return nil
}

func TestBridgeMap(t *testing.T) {
	w := NewBytesWriter(0)
	in := map[string]uint16{"x": 1, "yy": 2}
	require.NoError(t, EncodeMap(NewEncoder(w, Standard(), nil), in, EncodeString, EncodeUint16))

	v := &mapVisitor{m: map[string]uint64{}}
	des := NewDeserializer(NewDecoder(NewBytesReader(w.Bytes()), Standard(), nil))
	require.NoError(t, des.DeserializeMap(v))

	assert.Equal(t, map[string]uint64{"x": 1, "yy": 2}, v.m)
	assert.Equal(t, []int{2, 1, 0}, v.hints, "remaining hint must count down to exhaustion")
}

// enumVisitor binds the signal enum from container_test through the bridge.
type enumVisitor struct {
	UnimplementedVisitor
	s signal
}

func (v *enumVisitor) DeserializeFrom(d Deserializer) error {
	return d.DeserializeInt32(v)
}

func (v *enumVisitor) VisitSeq(a SeqAccess) error {
	for a.Remaining() > 0 {
		if _, err := a.NextElement(v); err != nil {
			return err
		}
	}
	return nil
}

func (v *enumVisitor) VisitInt(i int64) error {
	v.s.level = int32(i)
	return nil
}

func (v *enumVisitor) VisitVariant(index uint32, a VariantAccess) error {
	v.s.kind = index
	switch index {
	case 0:
		return a.UnitVariant()
	case 1:
		return a.TupleVariant(1, v)
	case 2:
		return a.StructVariant(3, v)
	default:
		return fmt.Errorf("%w: variant index %d out of range (have %d variants)", ErrInvalidEncoding, index, signalVariants)
	}
}

func TestBridgeEnum(t *testing.T) {
	in := &signal{kind: 1, level: -5}
	data, err := Encode(in, Standard())
	require.NoError(t, err)

	v := &enumVisitor{}
	des := NewDeserializer(NewDecoder(NewBytesReader(data), Standard(), nil))
	require.NoError(t, des.DeserializeEnum(v))
	assert.EqualValues(t, 1, v.s.kind)
	assert.EqualValues(t, -5, v.s.level)
}

func TestBridgeEnumOutOfRange(t *testing.T) {
	w := NewBytesWriter(0)
	require.NoError(t, EncodeVariant(NewEncoder(w, Standard(), nil), 9))

	des := NewDeserializer(NewDecoder(NewBytesReader(w.Bytes()), Standard(), nil))
	err := des.DeserializeEnum(&enumVisitor{})
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestBridgeSeqBudget(t *testing.T) {
	// A declared length beyond the limit fails in the pre-claim, before any
	// element callback runs.
	w := NewBytesWriter(0)
	require.NoError(t, EncodeLen(NewEncoder(w, Standard(), nil), 5000))

	des := NewDeserializer(NewDecoder(NewBytesReader(w.Bytes()), Standard().WithLimit(64), nil))
	err := des.DeserializeSeq(&personVisitor{p: &person{}})
	assert.ErrorIs(t, err, ErrLimitExceeded)
}

func TestBridgeUnimplementedVisitor(t *testing.T) {
	des := NewDeserializer(NewDecoder(NewBytesReader([]byte{1}), Standard(), nil))
	err := des.DeserializeBool(UnimplementedVisitor{})
	assert.ErrorIs(t, err, ErrUnsupported)
}
