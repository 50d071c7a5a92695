package wire

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTripPlain(t *testing.T) {
	in := sampleRecord()
	frame, err := EncodeFrame(in, Standard(), false)
	require.NoError(t, err)
	assert.EqualValues(t, 0, frame[0])

	var out record
	n, err := DecodeFrame(frame, &out, Standard())
	require.NoError(t, err)
	assert.Equal(t, len(frame), n)
	assert.Equal(t, *in, out)
}

func TestFrameRoundTripCompressed(t *testing.T) {
	in := sampleRecord()
	in.Name = strings.Repeat("na", 512)
	in.Tags = []string{in.Name, in.Name}

	plain, err := EncodeFrame(in, Standard(), false)
	require.NoError(t, err)
	frame, err := EncodeFrame(in, Standard(), true)
	require.NoError(t, err)

	assert.EqualValues(t, frameCompressed, frame[0])
	assert.Less(t, len(frame), len(plain))

	var out record
	n, err := DecodeFrame(frame, &out, Standard())
	require.NoError(t, err)
	assert.Equal(t, len(frame), n)
	assert.Equal(t, *in, out)
}

func TestFrameCompressionNotKeptWhenLarger(t *testing.T) {
	// A few incompressible bytes: compression would only add framing.
	in := &record{ID: 7, Name: "q"}

	frame, err := EncodeFrame(in, Standard(), true)
	require.NoError(t, err)
	assert.EqualValues(t, 0, frame[0])

	var out record
	_, err = DecodeFrame(frame, &out, Standard())
	require.NoError(t, err)
	assert.Equal(t, "q", out.Name)
}

func TestFrameChecksumCorruption(t *testing.T) {
	frame, err := EncodeFrame(sampleRecord(), Standard(), false)
	require.NoError(t, err)
	frame[len(frame)-1] ^= 0x01

	var out record
	_, err = DecodeFrame(frame, &out, Standard())
	assert.ErrorIs(t, err, ErrBadChecksum)
}

func TestFrameUnknownFlags(t *testing.T) {
	frame, err := EncodeFrame(sampleRecord(), Standard(), false)
	require.NoError(t, err)
	frame[0] = 0x80

	var out record
	_, err = DecodeFrame(frame, &out, Standard())
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestFrameDeclaredSizeMismatch(t *testing.T) {
	in := &record{ID: 7, Name: "q"}
	frame, err := EncodeFrame(in, Standard(), false)
	require.NoError(t, err)
	// The payload is small, so rawLen is the single varint byte after flags.
	frame[1]++

	var out record
	_, err = DecodeFrame(frame, &out, Standard())
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestFrameLimitChecksDeclaredSizeBeforeInflating(t *testing.T) {
	in := sampleRecord()
	in.Name = strings.Repeat("x", 100000)
	frame, err := EncodeFrame(in, Standard(), true)
	require.NoError(t, err)
	require.EqualValues(t, frameCompressed, frame[0], "payload this repetitive must compress")

	var out record
	_, err = DecodeFrame(frame, &out, Standard().WithLimit(256))
	assert.ErrorIs(t, err, ErrLimitExceeded)
}

func TestFrameTruncated(t *testing.T) {
	frame, err := EncodeFrame(sampleRecord(), Standard(), false)
	require.NoError(t, err)

	var out record
	_, err = DecodeFrame(nil, &out, Standard())
	assert.ErrorIs(t, err, ErrUnexpectedEOF)

	_, err = DecodeFrame(frame[:len(frame)-3], &out, Standard())
	assert.ErrorIs(t, err, ErrUnexpectedEOF)

	_, err = DecodeFrame(frame[:4], &out, Standard())
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestFrameSequenceWalk(t *testing.T) {
	a := sampleRecord()
	b := &record{ID: 2, Name: "second"}

	fa, err := EncodeFrame(a, Standard(), false)
	require.NoError(t, err)
	fb, err := EncodeFrame(b, Standard(), true)
	require.NoError(t, err)
	stream := append(append([]byte{}, fa...), fb...)

	var out record
	n, err := DecodeFrame(stream, &out, Standard())
	require.NoError(t, err)
	assert.Equal(t, *a, out)

	out = record{}
	m, err := DecodeFrame(stream[n:], &out, Standard())
	require.NoError(t, err)
	assert.Equal(t, n+m, len(stream))
	assert.EqualValues(t, 2, out.ID)
}
