package wire

// Encodable is implemented by types that can write themselves to an Encoder.
// Field order is the whole contract: the format carries no names or tags, so
// Encode and Decode of one type must touch fields in the same order.
type Encodable interface {
	Encode(enc Encoder) error
}

// Decodable is implemented by types that can reconstruct themselves from a
// Decoder, in the same field order as their Encode. Implementations use a
// pointer receiver and decode in place.
type Decodable interface {
	Decode(dec Decoder) error
}

// BorrowDecodable is implemented by types that can hold views into the
// input buffer instead of copying (borrowed strings, byte slices). The
// decoded value is only valid for the lifetime of that buffer.
//
// Every Decodable already works through a BorrowDecoder since BorrowDecoder
// is a Decoder; implementing BorrowDecodable is the opt-in for the zero-copy
// discipline, never a requirement.
type BorrowDecodable interface {
	BorrowDecode(dec BorrowDecoder) error
}

// Codec aggregates both directions. A type implementing Codec round-trips
// through any Config.
type Codec interface {
	Encodable
	Decodable
}
