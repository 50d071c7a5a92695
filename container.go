package wire

import (
	"math"
	"slices"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Every variable-length container follows one wire protocol: an element
// count in the Config length encoding, then each element in iteration order.
// On decode the declared count is hostile until proven otherwise, so the
// cost of the whole container is pre-claimed in one check before any loop or
// allocation, at a coarse rate of one in-memory element footprint per
// element. The loop then refunds each element's share just before decoding
// it, and the element decode re-claims what it actually reads. After the
// loop the net claimed total equals the real bytes consumed.

// BorrowDecodeFunc decodes one element of type T through the borrowing
// discipline.
type BorrowDecodeFunc[T any] func(dec BorrowDecoder) (T, error)

// elemFootprint is the coarse per-element cost used for pre-claims: the
// element's in-memory size.
func elemFootprint[T any]() uint64 {
	var zero T
	return uint64(unsafe.Sizeof(zero))
}

// isByteElem reports whether T is exactly byte. Named byte types do not
// qualify: the raw-run fast path reinterprets buffers and is only taken when
// the element is bit-identical to a byte by construction.
func isByteElem[T any]() bool {
	var zero T
	_, ok := any(zero).(byte)
	return ok
}

// claimElems pre-claims n elements of the given footprint, saturating the
// product so an overflowing count*size cannot wrap past the limit check.
func claimElems(dec Decoder, n int, size uint64) error {
	total := uint64(n) * size
	if size > 0 && uint64(n) > math.MaxUint64/size {
		total = math.MaxUint64
	}
	return dec.ClaimBytes(total)
}

// EncodeSeq writes a length prefix and each element in order. Runs of plain
// bytes are written in one call instead of element by element.
func EncodeSeq[T any](enc Encoder, items []T, fn EncodeFunc[T]) error {
	if err := EncodeLen(enc, len(items)); err != nil {
		return err
	}
	if bs, ok := any(items).([]byte); ok {
		return enc.Writer().Write(bs)
	}
	for i := range items {
		if err := fn(enc, items[i]); err != nil {
			return err
		}
	}
	return nil
}

// DecodeSeq reads a length prefix and decodes that many elements through fn,
// following the claim/refund protocol. When T is exactly byte the whole run
// is read in one call; the pre-claim already equals the exact cost there, so
// nothing is refunded.
func DecodeSeq[T any](dec Decoder, fn DecodeFunc[T]) ([]T, error) {
	n, err := DecodeLen(dec)
	if err != nil {
		return nil, err
	}
	size := elemFootprint[T]()
	if err := claimElems(dec, n, size); err != nil {
		return nil, err
	}

	if isByteElem[T]() {
		buf := make([]byte, n)
		if err := dec.Reader().Read(buf); err != nil {
			return nil, err
		}
		return any(buf).([]T), nil
	}

	items := make([]T, 0, n)
	for i := 0; i < n; i++ {
		dec.UnclaimBytes(size)
		v, err := fn(dec)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

// BorrowDecodeSeq is DecodeSeq through the borrowing discipline. The byte
// fast path returns a view into the input buffer instead of a copy.
func BorrowDecodeSeq[T any](dec BorrowDecoder, fn BorrowDecodeFunc[T]) ([]T, error) {
	n, err := DecodeLen(dec)
	if err != nil {
		return nil, err
	}
	size := elemFootprint[T]()
	if err := claimElems(dec, n, size); err != nil {
		return nil, err
	}

	if isByteElem[T]() {
		br := dec.BorrowReader()
		if br == nil {
			return nil, ErrNotBorrowable
		}
		buf, err := br.ReadSlice(n)
		if err != nil {
			return nil, err
		}
		return any(buf).([]T), nil
	}

	items := make([]T, 0, n)
	for i := 0; i < n; i++ {
		dec.UnclaimBytes(size)
		v, err := fn(dec)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

// EncodeMap writes a length prefix and each key/value pair interleaved, in
// sorted key order so that equal maps produce identical bytes.
func EncodeMap[K constraints.Ordered, V any](enc Encoder, m map[K]V, kf EncodeFunc[K], vf EncodeFunc[V]) error {
	if err := EncodeLen(enc, len(m)); err != nil {
		return err
	}
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := kf(enc, k); err != nil {
			return err
		}
		if err := vf(enc, m[k]); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMap reads a length prefix and that many key/value pairs, following
// the claim/refund protocol at the pair footprint.
func DecodeMap[K comparable, V any](dec Decoder, kf DecodeFunc[K], vf DecodeFunc[V]) (map[K]V, error) {
	n, err := DecodeLen(dec)
	if err != nil {
		return nil, err
	}
	size := elemFootprint[K]() + elemFootprint[V]()
	if err := claimElems(dec, n, size); err != nil {
		return nil, err
	}

	m := make(map[K]V, n)
	for i := 0; i < n; i++ {
		dec.UnclaimBytes(size)
		k, err := kf(dec)
		if err != nil {
			return nil, err
		}
		v, err := vf(dec)
		if err != nil {
			return nil, err
		}
		m[k] = v
	}
	return m, nil
}
