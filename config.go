package wire

import "encoding/binary"

var (
	BE = binary.BigEndian
	LE = binary.LittleEndian
)

// IntMode selects how multi-byte integers and container lengths are laid out
// on the wire.
type IntMode uint8

const (
	// VarInt encodes unsigned integers and lengths with a marker scheme:
	// values below 0xFD occupy a single byte; larger values are a marker
	// byte (0xFD, 0xFE or 0xFF) followed by an explicit little-endian
	// 2, 4 or 8 byte payload. Signed integers are zigzag-mapped to unsigned
	// first. Single-byte types (bool, uint8, int8) are always one byte.
	VarInt IntMode = iota

	// FixedInt encodes every integer at its natural width in the Config
	// byte order. Container lengths are 8-byte unsigned integers.
	FixedInt
)

// Config is the wire-format policy for one encode or decode session: byte
// order, integer width strategy and an optional decode byte budget. It is a
// plain value with no mutable state; any number of sessions may share one.
//
// The zero value is not valid; start from Standard and derive:
//
//	cfg := wire.Standard().WithByteOrder(wire.BE).WithLimit(1 << 20)
type Config struct {
	// Order is the byte order for fixed-width payloads.
	Order binary.ByteOrder

	// Ints selects fixed or variable width integer encoding.
	Ints IntMode

	// Limit caps the total bytes one decode session may commit to reading.
	// Zero means unbounded. Encoding ignores it.
	Limit uint64
}

// Standard returns the default policy: little-endian, variable-width
// integers, no decode limit.
func Standard() Config {
	return Config{Order: LE, Ints: VarInt}
}

// WithByteOrder returns a copy of the Config using the given byte order.
func (c Config) WithByteOrder(order binary.ByteOrder) Config {
	c.Order = order
	return c
}

// WithFixedInts returns a copy of the Config using fixed-width integers.
func (c Config) WithFixedInts() Config {
	c.Ints = FixedInt
	return c
}

// WithVarInts returns a copy of the Config using variable-width integers.
func (c Config) WithVarInts() Config {
	c.Ints = VarInt
	return c
}

// WithLimit returns a copy of the Config that allows a decode session to
// claim at most limit bytes. Zero removes the limit.
func (c Config) WithLimit(limit uint64) Config {
	c.Limit = limit
	return c
}

// WithNoLimit returns a copy of the Config with the decode limit removed.
func (c Config) WithNoLimit() Config {
	c.Limit = 0
	return c
}
