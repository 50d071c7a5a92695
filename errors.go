package wire

import "errors"

var (
	// ErrNilIO indicates that NewIOReader/NewIOWriter was called with a nil
	// io.Reader/io.Writer.
	ErrNilIO = errors.New("wire: NewIOReader/NewIOWriter called with a nil io.Reader/io.Writer")

	// ErrLimitExceeded indicates that a decode session tried to claim more
	// bytes than the Config limit allows. The whole decode is aborted; there
	// is no partial or resumable state.
	ErrLimitExceeded = errors.New("wire: decode byte limit exceeded")

	// ErrUnexpectedEOF indicates the Reader could not supply the number of
	// bytes a decode step asked for.
	ErrUnexpectedEOF = errors.New("wire: unexpected end of input")

	// ErrInvalidEncoding indicates the bytes were readable but do not form a
	// valid value: an out-of-range variant index, an invalid UTF-8 sequence,
	// an option discriminant other than 0 or 1, a malformed varint.
	ErrInvalidEncoding = errors.New("wire: invalid encoded value")

	// ErrUnsupported is returned by the structured-value bridge for requests
	// the format cannot answer: the format is not self-describing, so "any",
	// identifier and ignore requests fail instead of guessing.
	ErrUnsupported = errors.New("wire: unsupported deserialization request")

	// ErrSinkFailed indicates the Writer rejected bytes during encode. The
	// underlying sink error is wrapped alongside it.
	ErrSinkFailed = errors.New("wire: writer could not accept bytes")

	// ErrNotBorrowable indicates a borrowing decode was requested from a
	// Reader that cannot return views into its buffer.
	ErrNotBorrowable = errors.New("wire: reader does not support borrowed reads")

	// ErrBadChecksum indicates a frame payload did not match its xxhash64
	// digest.
	ErrBadChecksum = errors.New("wire: frame checksum mismatch")
)
