package wire

// BytesReader reads from a pre-allocated byte slice. It is the borrowing
// transport: ReadSlice returns views into the original slice, so values
// decoded through it may alias that memory.
type BytesReader struct {
	B []byte // source slice
	N int    // current read position
}

var _ BorrowReader = (*BytesReader)(nil)

// NewBytesReader creates a new BytesReader over b. The caller must not
// mutate b while borrowed values are alive.
func NewBytesReader(b []byte) *BytesReader {
	return &BytesReader{B: b}
}

// Read implements the Reader interface, copying out of the slice.
func (r *BytesReader) Read(p []byte) error {
	if len(p) > len(r.B)-r.N {
		return ErrUnexpectedEOF
	}
	copy(p, r.B[r.N:])
	r.N += len(p)
	return nil
}

// ReadSlice implements the BorrowReader interface. The returned slice
// references the original buffer; no bytes are copied.
func (r *BytesReader) ReadSlice(n int) ([]byte, error) {
	if n < 0 || n > len(r.B)-r.N {
		return nil, ErrUnexpectedEOF
	}
	b := r.B[r.N : r.N+n : r.N+n]
	r.N += n
	return b, nil
}

// Reset allows the underlying byte slice to be reused.
func (r *BytesReader) Reset() { r.N = 0 }

// Len returns the number of bytes read so far.
func (r *BytesReader) Len() int { return r.N }

// Size returns the size of the underlying byte slice.
func (r *BytesReader) Size() int { return len(r.B) }

// Available returns the number of bytes left to read.
func (r *BytesReader) Available() int {
	if n := len(r.B) - r.N; n > 0 {
		return n
	}
	return 0
}
