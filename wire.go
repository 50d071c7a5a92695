// Package wire implements a compact, schema-less binary encoding for values
// whose shape is known at compile time: RPC payloads, persisted records,
// cache entries. The format carries no field names, tags or type markers;
// a type's Encode and Decode implementations agree on field order and the
// Config pins byte order and integer widths.
//
// Decoding defends against hostile inputs with a byte budget: give the
// Config a limit and every read, including the length field of a container,
// is charged against it before anything is allocated or looped over.
//
// Two decode disciplines share one engine. Owned decode copies what it
// keeps; borrowing decode (BorrowDecode over a byte slice) lets strings and
// byte runs alias the input buffer for zero-copy reads.
package wire

import "io"

// EncodedSize runs a counting pre-pass and reports how many bytes Encode
// would produce for v under cfg.
func EncodedSize(v Encodable, cfg Config) (int, error) {
	return encodedSize(v, cfg, nil)
}

func encodedSize(v Encodable, cfg Config, ctx any) (int, error) {
	var cw CountWriter
	if err := v.Encode(NewEncoder(&cw, cfg, ctx)); err != nil {
		return 0, err
	}
	return int(cw.N), nil
}

// Encode serializes v into a freshly allocated, exactly sized buffer.
func Encode(v Encodable, cfg Config) ([]byte, error) {
	return EncodeWithContext(v, cfg, nil)
}

// EncodeWithContext is Encode with a caller-supplied Context threaded
// through the session.
func EncodeWithContext(v Encodable, cfg Config, ctx any) ([]byte, error) {
	size, err := encodedSize(v, cfg, ctx)
	if err != nil {
		return nil, err
	}
	w := NewBytesWriter(size)
	if err := v.Encode(NewEncoder(w, cfg, ctx)); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// EncodeTo serializes v to an io.Writer and returns the bytes written.
func EncodeTo(w io.Writer, v Encodable, cfg Config) (int64, error) {
	iw, err := NewIOWriter(w)
	if err != nil {
		return 0, err
	}
	if err := v.Encode(NewEncoder(iw, cfg, nil)); err != nil {
		return iw.Count(), err
	}
	return iw.Count(), nil
}

// Decode deserializes v from data through the owned discipline and returns
// the number of bytes consumed. Trailing bytes are left untouched.
func Decode(data []byte, v Decodable, cfg Config) (int, error) {
	return DecodeWithContext(data, v, cfg, nil)
}

// DecodeWithContext is Decode with a caller-supplied Context threaded
// through the session.
func DecodeWithContext(data []byte, v Decodable, cfg Config, ctx any) (int, error) {
	r := NewBytesReader(data)
	if err := v.Decode(NewDecoder(r, cfg, ctx)); err != nil {
		return r.Len(), err
	}
	return r.Len(), nil
}

// BorrowDecode deserializes v from data through the borrowing discipline:
// v may end up aliasing data, which must stay immutable for v's lifetime.
// Returns the number of bytes consumed.
func BorrowDecode(data []byte, v BorrowDecodable, cfg Config) (int, error) {
	return BorrowDecodeWithContext(data, v, cfg, nil)
}

// BorrowDecodeWithContext is BorrowDecode with a caller-supplied Context.
func BorrowDecodeWithContext(data []byte, v BorrowDecodable, cfg Config, ctx any) (int, error) {
	r := NewBytesReader(data)
	if err := v.BorrowDecode(NewBorrowDecoder(r, cfg, ctx)); err != nil {
		return r.Len(), err
	}
	return r.Len(), nil
}

// DecodeFrom deserializes v from an io.Reader and returns the bytes pulled.
// Only the owned discipline is available on a stream.
func DecodeFrom(r io.Reader, v Decodable, cfg Config) (int64, error) {
	return DecodeFromWithContext(r, v, cfg, nil)
}

// DecodeFromWithContext is DecodeFrom with a caller-supplied Context.
func DecodeFromWithContext(r io.Reader, v Decodable, cfg Config, ctx any) (int64, error) {
	ir, err := NewIOReader(r)
	if err != nil {
		return 0, err
	}
	if err := v.Decode(NewDecoder(ir, cfg, ctx)); err != nil {
		return ir.Count(), err
	}
	return ir.Count(), nil
}
