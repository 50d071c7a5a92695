package wire

import "fmt"

// The structured-value protocol: a data-binding layer declares the shape it
// expects (bool, seq of 3, struct of 4 fields, enum) and receives the
// decoded pieces through Visitor callbacks. Any data model written against
// this protocol rides on the codec without a dedicated Decodable
// implementation.
//
// The format is not self-describing, so shape always comes from the caller:
// requests that ask the stream what it contains (Any, Identifier,
// IgnoredAny) fail with ErrUnsupported instead of guessing.

// Deserializer is the driving side of the protocol, implemented by this
// package atop a Decoder. Each method decodes one value of the requested
// shape and delivers it to the Visitor.
type Deserializer interface {
	DeserializeBool(v Visitor) error
	DeserializeUint8(v Visitor) error
	DeserializeUint16(v Visitor) error
	DeserializeUint32(v Visitor) error
	DeserializeUint64(v Visitor) error
	DeserializeInt8(v Visitor) error
	DeserializeInt16(v Visitor) error
	DeserializeInt32(v Visitor) error
	DeserializeInt64(v Visitor) error
	DeserializeFloat32(v Visitor) error
	DeserializeFloat64(v Visitor) error
	DeserializeRune(v Visitor) error
	DeserializeString(v Visitor) error
	DeserializeBytes(v Visitor) error

	// DeserializeOption reads the presence discriminant and calls VisitNone
	// or VisitSome.
	DeserializeOption(v Visitor) error

	// DeserializeUnit consumes nothing and calls VisitUnit.
	DeserializeUnit(v Visitor) error

	// DeserializeSeq reads an element count from the stream, then visits a
	// SeqAccess over that many elements.
	DeserializeSeq(v Visitor) error

	// DeserializeTuple visits a SeqAccess over exactly n elements. The count
	// comes from the caller's declared shape, not the stream.
	DeserializeTuple(n int, v Visitor) error

	// DeserializeStruct is DeserializeTuple over a struct's field list.
	DeserializeStruct(fields int, v Visitor) error

	// DeserializeMap reads an entry count from the stream, then visits a
	// MapAccess alternating keys and values.
	DeserializeMap(v Visitor) error

	// DeserializeEnum reads a variant index, then visits it with a
	// VariantAccess for the payload.
	DeserializeEnum(v Visitor) error

	// DeserializeAny, DeserializeIdentifier and DeserializeIgnoredAny fail
	// with ErrUnsupported: the stream carries no type information to answer
	// them, and the bridge never silently skips bytes.
	DeserializeAny(v Visitor) error
	DeserializeIdentifier(v Visitor) error
	DeserializeIgnoredAny(v Visitor) error

	// IsHumanReadable reports false so data models with both a compact and
	// a textual representation pick the compact one.
	IsHumanReadable() bool
}

// Visitor is the receiving side of the protocol, implemented by the data
// model. Integer widths are collapsed onto 64-bit callbacks; the
// Deserializer has already range-checked the declared width.
//
// Embed UnimplementedVisitor to only implement the callbacks a shape needs.
type Visitor interface {
	VisitBool(v bool) error
	VisitUint(v uint64) error
	VisitInt(v int64) error
	VisitFloat(v float64) error
	VisitRune(v rune) error
	VisitString(v string) error
	VisitBytes(v []byte) error
	VisitNone() error
	VisitSome(d Deserializer) error
	VisitUnit() error
	VisitSeq(a SeqAccess) error
	VisitMap(a MapAccess) error
	VisitVariant(index uint32, a VariantAccess) error
}

// SeqAccess hands a visitor the elements of a sequence, tuple or struct
// field list one at a time.
type SeqAccess interface {
	// NextElement decodes the next element into v, or reports false when
	// the sequence is exhausted.
	NextElement(v Visitor) (bool, error)

	// Remaining returns the number of elements not yet decoded.
	Remaining() int
}

// MapAccess hands a visitor the entries of a map, key then value.
type MapAccess interface {
	// NextKey decodes the next key into v, or reports false when the map is
	// exhausted.
	NextKey(v Visitor) (bool, error)

	// NextValue decodes the value for the last key into v.
	NextValue(v Visitor) error

	// Remaining returns the number of entries not yet decoded.
	Remaining() int
}

// VariantAccess decodes the payload of the enum variant a visitor was just
// handed. Exactly one method must be called, matching the variant's shape.
type VariantAccess interface {
	// UnitVariant accepts a payload-less variant; it consumes nothing.
	UnitVariant() error

	// TupleVariant decodes n payload fields through v.
	TupleVariant(n int, v Visitor) error

	// StructVariant decodes a struct payload of the given field count
	// through v.
	StructVariant(fields int, v Visitor) error
}

// NewDeserializer adapts a Decoder to the structured-value protocol. The
// Decoder's budget, Config and Context apply to every request.
func NewDeserializer(dec Decoder) Deserializer {
	return &valueDeserializer{dec: dec}
}

type valueDeserializer struct {
	dec Decoder
}

var _ Deserializer = (*valueDeserializer)(nil)

func (d *valueDeserializer) DeserializeBool(v Visitor) error {
	b, err := DecodeBool(d.dec)
	if err != nil {
		return err
	}
	return v.VisitBool(b)
}

func (d *valueDeserializer) DeserializeUint8(v Visitor) error {
	u, err := DecodeUint8(d.dec)
	if err != nil {
		return err
	}
	return v.VisitUint(uint64(u))
}

func (d *valueDeserializer) DeserializeUint16(v Visitor) error {
	u, err := DecodeUint16(d.dec)
	if err != nil {
		return err
	}
	return v.VisitUint(uint64(u))
}

func (d *valueDeserializer) DeserializeUint32(v Visitor) error {
	u, err := DecodeUint32(d.dec)
	if err != nil {
		return err
	}
	return v.VisitUint(uint64(u))
}

func (d *valueDeserializer) DeserializeUint64(v Visitor) error {
	u, err := DecodeUint64(d.dec)
	if err != nil {
		return err
	}
	return v.VisitUint(u)
}

func (d *valueDeserializer) DeserializeInt8(v Visitor) error {
	i, err := DecodeInt8(d.dec)
	if err != nil {
		return err
	}
	return v.VisitInt(int64(i))
}

func (d *valueDeserializer) DeserializeInt16(v Visitor) error {
	i, err := DecodeInt16(d.dec)
	if err != nil {
		return err
	}
	return v.VisitInt(int64(i))
}

func (d *valueDeserializer) DeserializeInt32(v Visitor) error {
	i, err := DecodeInt32(d.dec)
	if err != nil {
		return err
	}
	return v.VisitInt(int64(i))
}

func (d *valueDeserializer) DeserializeInt64(v Visitor) error {
	i, err := DecodeInt64(d.dec)
	if err != nil {
		return err
	}
	return v.VisitInt(i)
}

func (d *valueDeserializer) DeserializeFloat32(v Visitor) error {
	f, err := DecodeFloat32(d.dec)
	if err != nil {
		return err
	}
	return v.VisitFloat(float64(f))
}

func (d *valueDeserializer) DeserializeFloat64(v Visitor) error {
	f, err := DecodeFloat64(d.dec)
	if err != nil {
		return err
	}
	return v.VisitFloat(f)
}

func (d *valueDeserializer) DeserializeRune(v Visitor) error {
	r, err := DecodeRune(d.dec)
	if err != nil {
		return err
	}
	return v.VisitRune(r)
}

func (d *valueDeserializer) DeserializeString(v Visitor) error {
	s, err := DecodeString(d.dec)
	if err != nil {
		return err
	}
	return v.VisitString(s)
}

func (d *valueDeserializer) DeserializeBytes(v Visitor) error {
	b, err := DecodeBytes(d.dec)
	if err != nil {
		return err
	}
	return v.VisitBytes(b)
}

func (d *valueDeserializer) DeserializeOption(v Visitor) error {
	var b [1]byte
	if err := readFixed(d.dec, b[:]); err != nil {
		return err
	}
	switch b[0] {
	case 0:
		return v.VisitNone()
	case 1:
		return v.VisitSome(d)
	default:
		return fmt.Errorf("%w: option discriminant %#x", ErrInvalidEncoding, b[0])
	}
}

func (d *valueDeserializer) DeserializeUnit(v Visitor) error {
	return v.VisitUnit()
}

func (d *valueDeserializer) DeserializeSeq(v Visitor) error {
	n, err := DecodeLen(d.dec)
	if err != nil {
		return err
	}
	// The bridge cannot see element footprints, so the pre-claim floors
	// each element at one byte; the refund in NextElement matches.
	if err := claimElems(d.dec, n, 1); err != nil {
		return err
	}
	return v.VisitSeq(&seqAccess{d: d, remaining: n, claimed: true})
}

func (d *valueDeserializer) DeserializeTuple(n int, v Visitor) error {
	// The count is declared by the caller, not read from the stream, so
	// there is nothing hostile to pre-claim against.
	return v.VisitSeq(&seqAccess{d: d, remaining: n})
}

func (d *valueDeserializer) DeserializeStruct(fields int, v Visitor) error {
	return d.DeserializeTuple(fields, v)
}

func (d *valueDeserializer) DeserializeMap(v Visitor) error {
	n, err := DecodeLen(d.dec)
	if err != nil {
		return err
	}
	// One-byte floor per key and per value.
	if err := claimElems(d.dec, n, 2); err != nil {
		return err
	}
	return v.VisitMap(&mapAccess{d: d, remaining: n})
}

func (d *valueDeserializer) DeserializeEnum(v Visitor) error {
	idx, err := DecodeVariant(d.dec, 0)
	if err != nil {
		return err
	}
	return v.VisitVariant(idx, &variantAccess{d: d})
}

func (d *valueDeserializer) DeserializeAny(Visitor) error {
	return fmt.Errorf("%w: the format is not self-describing, declare a shape", ErrUnsupported)
}

func (d *valueDeserializer) DeserializeIdentifier(Visitor) error {
	return fmt.Errorf("%w: the format carries no identifiers", ErrUnsupported)
}

func (d *valueDeserializer) DeserializeIgnoredAny(Visitor) error {
	return fmt.Errorf("%w: unknown bytes cannot be skipped", ErrUnsupported)
}

func (d *valueDeserializer) IsHumanReadable() bool { return false }

type seqAccess struct {
	d         *valueDeserializer
	remaining int
	claimed   bool // a stream-declared length was pre-claimed
}

func (a *seqAccess) NextElement(v Visitor) (bool, error) {
	if a.remaining == 0 {
		return false, nil
	}
	a.remaining--
	if a.claimed {
		a.d.dec.UnclaimBytes(1)
	}
	return true, a.d.next(v)
}

func (a *seqAccess) Remaining() int { return a.remaining }

type mapAccess struct {
	d         *valueDeserializer
	remaining int
}

func (a *mapAccess) NextKey(v Visitor) (bool, error) {
	if a.remaining == 0 {
		return false, nil
	}
	a.remaining--
	a.d.dec.UnclaimBytes(2)
	return true, a.d.next(v)
}

func (a *mapAccess) NextValue(v Visitor) error {
	return a.d.next(v)
}

func (a *mapAccess) Remaining() int { return a.remaining }

type variantAccess struct {
	d *valueDeserializer
}

func (a *variantAccess) UnitVariant() error { return nil }

func (a *variantAccess) TupleVariant(n int, v Visitor) error {
	return a.d.DeserializeTuple(n, v)
}

func (a *variantAccess) StructVariant(fields int, v Visitor) error {
	return a.d.DeserializeTuple(fields, v)
}

// next hands the Deserializer back to the visitor so nested shapes keep
// driving their own decode.
func (d *valueDeserializer) next(v Visitor) error {
	if s, ok := v.(SelfDeserializing); ok {
		return s.DeserializeFrom(d)
	}
	return fmt.Errorf("%w: visitor %T cannot declare a nested shape", ErrUnsupported, v)
}

// SelfDeserializing is implemented by visitors that know which Deserializer
// request matches their shape. Sequence and map access call it for each
// nested element, mirroring how the top level picks its first request.
type SelfDeserializing interface {
	DeserializeFrom(d Deserializer) error
}

// UnimplementedVisitor fails every callback with ErrUnsupported. Embed it to
// implement only the callbacks a shape can produce.
type UnimplementedVisitor struct{}

var _ Visitor = UnimplementedVisitor{}

func (UnimplementedVisitor) VisitBool(bool) error     { return visitErr("bool") }
func (UnimplementedVisitor) VisitUint(uint64) error   { return visitErr("uint") }
func (UnimplementedVisitor) VisitInt(int64) error     { return visitErr("int") }
func (UnimplementedVisitor) VisitFloat(float64) error { return visitErr("float") }
func (UnimplementedVisitor) VisitRune(rune) error     { return visitErr("rune") }
func (UnimplementedVisitor) VisitString(string) error { return visitErr("string") }
func (UnimplementedVisitor) VisitBytes([]byte) error  { return visitErr("bytes") }
func (UnimplementedVisitor) VisitNone() error         { return visitErr("none") }
func (UnimplementedVisitor) VisitSome(Deserializer) error {
	return visitErr("some")
}
func (UnimplementedVisitor) VisitUnit() error          { return visitErr("unit") }
func (UnimplementedVisitor) VisitSeq(SeqAccess) error  { return visitErr("seq") }
func (UnimplementedVisitor) VisitMap(MapAccess) error  { return visitErr("map") }
func (UnimplementedVisitor) VisitVariant(uint32, VariantAccess) error {
	return visitErr("variant")
}

func visitErr(what string) error {
	return fmt.Errorf("%w: visitor does not accept %s", ErrUnsupported, what)
}
