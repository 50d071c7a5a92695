package wire

import "math"

// budget tracks the cumulative bytes a decode session has committed to
// reading. A hostile length field pays into the budget before any loop or
// allocation trusts it, so a tiny input cannot claim an enormous cost.
//
// The unbounded case is a distinct zero-size implementation rather than a
// flag checked on every claim, so a limit-less Config costs nothing per read.
type budget interface {
	// Claim adds n to the running total. It fails with ErrLimitExceeded if
	// the addition would overflow or push the total past the limit.
	Claim(n uint64) error

	// Unclaim subtracts n from the running total without bound checking.
	// Callers only refund amounts previously claimed and not yet spent.
	Unclaim(n uint64)
}

func newBudget(limit uint64) budget {
	if limit == 0 {
		return noBudget{}
	}
	return &limitBudget{limit: limit}
}

// noBudget is the accountant for an unbounded Config. Both operations are
// no-ops.
type noBudget struct{}

func (noBudget) Claim(uint64) error { return nil }
func (noBudget) Unclaim(uint64)     {}

// limitBudget enforces a byte ceiling. The claimed counter is monotonically
// non-decreasing except for the container protocol's refunds.
type limitBudget struct {
	limit   uint64
	claimed uint64
}

func (b *limitBudget) Claim(n uint64) error {
	if n > math.MaxUint64-b.claimed {
		return ErrLimitExceeded
	}
	if b.claimed+n > b.limit {
		return ErrLimitExceeded
	}
	b.claimed += n
	return nil
}

func (b *limitBudget) Unclaim(n uint64) {
	b.claimed -= n
}
