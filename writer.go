package wire

import (
	"fmt"
	"io"
)

// Writer is the append capability an Encoder consumes. It accepts every byte
// or fails; there are no partial writes at this layer.
type Writer interface {
	// Write appends p to the sink.
	Write(p []byte) error
}

// IOWriter adapts an arbitrary io.Writer to the Writer contract.
type IOWriter struct {
	w     io.Writer
	count int64 // total bytes accepted
}

var _ Writer = (*IOWriter)(nil)

// NewIOWriter wraps w.
func NewIOWriter(w io.Writer) (*IOWriter, error) {
	if w == nil {
		return nil, ErrNilIO
	}
	return &IOWriter{w: w}, nil
}

// Write implements the Writer interface.
func (w *IOWriter) Write(p []byte) error {
	n, err := w.w.Write(p)
	w.count += int64(n)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSinkFailed, err)
	}
	if n < len(p) {
		return fmt.Errorf("%w: %w", ErrSinkFailed, io.ErrShortWrite)
	}
	return nil
}

// Count returns the total bytes accepted by the underlying io.Writer.
func (w *IOWriter) Count() int64 { return w.count }

// CountWriter discards bytes and records how many it saw. Encoding a value
// into it is the size pre-pass that lets Encode allocate an exact buffer.
type CountWriter struct {
	N int64
}

var _ Writer = (*CountWriter)(nil)

// Write implements the Writer interface.
func (w *CountWriter) Write(p []byte) error {
	w.N += int64(len(p))
	return nil
}
