package wire

import "sync"

// framePool reuses decompression buffers across DecodeFrame calls. The
// decompressed payload is an intermediate (the decoded value copies what it
// keeps), so the buffer can go straight back to the pool.
var framePool = sync.Pool{
	New: func() any {
		// A 4KB default covers common record sizes without growth.
		b := make([]byte, 4096)
		return &b
	},
}
