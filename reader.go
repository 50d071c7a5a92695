package wire

import "io"

// Reader is the pull capability a Decoder consumes: fill p entirely or fail.
// Partial reads do not exist at this layer; a source that runs dry mid-fill
// surfaces ErrUnexpectedEOF.
type Reader interface {
	// Read fills p with exactly len(p) bytes or returns an error.
	Read(p []byte) error
}

// BorrowReader is a Reader whose backing store outlives the decode, so it
// can hand out slices of the original buffer instead of copying. The
// returned slices are valid for the lifetime of that buffer and must be
// treated as read-only.
type BorrowReader interface {
	Reader

	// ReadSlice returns the next n bytes as a view into the underlying
	// buffer, advancing past them.
	ReadSlice(n int) ([]byte, error)
}

// IOReader adapts an arbitrary io.Reader to the exact-fill Reader contract.
// It owns no buffer of its own; backpressure is the source's concern, and a
// deadline-enforcing source surfaces its timeouts as read failures here.
type IOReader struct {
	r     io.Reader
	count int64 // total bytes pulled
}

var _ Reader = (*IOReader)(nil)

// NewIOReader wraps r. The returned reader must not be shared between
// concurrently running decode sessions.
func NewIOReader(r io.Reader) (*IOReader, error) {
	if r == nil {
		return nil, ErrNilIO
	}
	return &IOReader{r: r}, nil
}

// Read implements the Reader interface.
func (r *IOReader) Read(p []byte) error {
	n, err := io.ReadFull(r.r, p)
	r.count += int64(n)
	if err != nil {
		// A short fill and a clean end-of-stream are the same failure to a
		// decoder that asked for exactly len(p) bytes.
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return ErrUnexpectedEOF
		}
		return err
	}
	return nil
}

// Count returns the total bytes pulled from the underlying io.Reader.
func (r *IOReader) Count() int64 { return r.count }
