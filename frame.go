package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/s2"
)

// A frame wraps one encoded value for storage: a cache entry or a persisted
// record that must survive outside the process that wrote it. Layout:
//
//	flags      1 byte   bit 0: payload is s2-compressed
//	rawLen     varint   encoded payload size before compression
//	storedLen  varint   bytes actually stored
//	checksum   8 bytes  xxhash64 of the encoded payload, little-endian
//	payload    storedLen bytes
//
// The header integers are always variable-width, independent of the Config,
// so a frame identifies its own extent regardless of the policy its payload
// was encoded under.
const frameCompressed = 0x01

// EncodeFrame serializes v under cfg and wraps it in a checksummed frame.
// With compress set the payload is s2-compressed, but only kept compressed
// when that actually saves space.
func EncodeFrame(v Encodable, cfg Config, compress bool) ([]byte, error) {
	payload, err := EncodeWithContext(v, cfg, nil)
	if err != nil {
		return nil, err
	}
	sum := xxhash.Sum64(payload)

	stored := payload
	flags := byte(0)
	if compress {
		if c := s2.Encode(nil, payload); len(c) < len(payload) {
			stored = c
			flags = frameCompressed
		}
	}

	var lens [18]byte
	n := putUvarint(lens[:], uint64(len(payload)))
	n += putUvarint(lens[n:], uint64(len(stored)))

	out := make([]byte, 0, 1+n+8+len(stored))
	out = append(out, flags)
	out = append(out, lens[:n]...)
	out = binary.LittleEndian.AppendUint64(out, sum)
	out = append(out, stored...)
	return out, nil
}

// DecodeFrame reads one frame from the front of data, verifies its checksum,
// and decodes the payload into v under cfg. It returns the total frame size
// so callers can walk a sequence of frames.
//
// A Config limit is applied to the declared payload size before any
// decompression, so a tiny frame cannot expand into an unbounded buffer.
func DecodeFrame(data []byte, v Decodable, cfg Config) (int, error) {
	if len(data) < 1 {
		return 0, ErrUnexpectedEOF
	}
	flags := data[0]
	if flags&^frameCompressed != 0 {
		return 0, fmt.Errorf("%w: unknown frame flags %#x", ErrInvalidEncoding, flags)
	}
	pos := 1

	rawLen, n, err := getUvarint(data[pos:])
	if err != nil {
		return 0, err
	}
	pos += n
	storedLen, n, err := getUvarint(data[pos:])
	if err != nil {
		return 0, err
	}
	pos += n

	if cfg.Limit > 0 && rawLen > cfg.Limit {
		return 0, ErrLimitExceeded
	}
	if len(data)-pos < 8 {
		return 0, ErrUnexpectedEOF
	}
	sum := binary.LittleEndian.Uint64(data[pos:])
	pos += 8
	if storedLen > uint64(len(data)-pos) {
		return 0, ErrUnexpectedEOF
	}
	stored := data[pos : pos+int(storedLen)]
	pos += int(storedLen)

	payload := stored
	if flags&frameCompressed != 0 {
		dn, err := s2.DecodedLen(stored)
		if err != nil || uint64(dn) != rawLen {
			return 0, fmt.Errorf("%w: compressed payload does not match declared size", ErrInvalidEncoding)
		}
		buf := framePool.Get().(*[]byte)
		defer framePool.Put(buf)
		if uint64(cap(*buf)) < rawLen {
			*buf = make([]byte, rawLen)
		}
		payload, err = s2.Decode((*buf)[:rawLen], stored)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
		}
	} else if uint64(len(payload)) != rawLen {
		return 0, fmt.Errorf("%w: stored payload does not match declared size", ErrInvalidEncoding)
	}

	if xxhash.Sum64(payload) != sum {
		return 0, ErrBadChecksum
	}
	if _, err := Decode(payload, v, cfg); err != nil {
		return 0, err
	}
	return pos, nil
}
