package wire

// BytesWriter appends to an in-memory byte slice, growing it as needed. It
// never fails: the only sink error an in-memory buffer can hit is running
// out of memory, which Go reports by panicking in append.
type BytesWriter struct {
	B []byte // accumulated bytes
}

var _ Writer = (*BytesWriter)(nil)

// NewBytesWriter creates a BytesWriter with the given capacity pre-allocated.
func NewBytesWriter(capacity int) *BytesWriter {
	return &BytesWriter{B: make([]byte, 0, capacity)}
}

// Write implements the Writer interface.
func (w *BytesWriter) Write(p []byte) error {
	w.B = append(w.B, p...)
	return nil
}

// Bytes returns the accumulated bytes.
func (w *BytesWriter) Bytes() []byte { return w.B }

// Len returns the number of bytes written.
func (w *BytesWriter) Len() int { return len(w.B) }

// Reset allows the underlying byte slice to be reused.
func (w *BytesWriter) Reset() { w.B = w.B[:0] }
