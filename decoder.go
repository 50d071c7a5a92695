package wire

// Decoder is the stateful driver of one decode session. It owns exactly one
// Reader, one Config and one Context, plus the running byte-budget
// accountant. A session is strictly sequential: nested values decode by
// receiving the same Decoder down the call tree, never a copy, and no two
// goroutines may touch one instance.
//
// A Decoder is built immediately before a decode, consumed by it and then
// discarded. After any failure the stream position and Context are
// unspecified; construct a fresh instance instead of reusing one.
type Decoder interface {
	// Reader gives exclusive access to the underlying byte stream.
	Reader() Reader

	// Config gives read-only access to the session policy.
	Config() Config

	// Context returns the caller-supplied value threaded through every
	// nested decode call. It defaults to nil.
	Context() any

	// ClaimBytes records that the session is about to commit to reading n
	// bytes, failing with ErrLimitExceeded past the Config limit. Every
	// primitive decode claims before it reads.
	ClaimBytes(n uint64) error

	// UnclaimBytes refunds part of an earlier claim. Only the container
	// protocol uses it, to reconcile a coarse pre-claim with the bytes each
	// element actually consumed.
	UnclaimBytes(n uint64)
}

// BorrowDecoder is a Decoder whose Reader can hand out views into the input
// buffer. Types that cannot borrow still decode through it via their owned
// path; the reverse direction does not exist.
type BorrowDecoder interface {
	Decoder

	// BorrowReader gives exclusive access to the slice-returning reader.
	BorrowReader() BorrowReader
}

type decoder struct {
	r      Reader
	br     BorrowReader // nil unless constructed as a BorrowDecoder
	cfg    Config
	ctx    any
	budget budget
}

var (
	_ Decoder       = (*decoder)(nil)
	_ BorrowDecoder = (*decoder)(nil)
)

// NewDecoder builds a Decoder for one session over r. The byte-budget
// counter starts at zero; ctx may be nil.
func NewDecoder(r Reader, cfg Config, ctx any) Decoder {
	return &decoder{r: r, cfg: cfg, ctx: ctx, budget: newBudget(cfg.Limit)}
}

// NewBorrowDecoder builds a BorrowDecoder for one session over r.
func NewBorrowDecoder(r BorrowReader, cfg Config, ctx any) BorrowDecoder {
	return &decoder{r: r, br: r, cfg: cfg, ctx: ctx, budget: newBudget(cfg.Limit)}
}

func (d *decoder) Reader() Reader             { return d.r }
func (d *decoder) Config() Config             { return d.cfg }
func (d *decoder) Context() any               { return d.ctx }
func (d *decoder) ClaimBytes(n uint64) error  { return d.budget.Claim(n) }
func (d *decoder) UnclaimBytes(n uint64)      { d.budget.Unclaim(n) }
func (d *decoder) BorrowReader() BorrowReader { return d.br }

// WithContext presents a different Context to an inner decode scope while
// delegating stream, config and budget to the outer Decoder. It is the only
// sanctioned way to change the Context type mid-decode; the outer Context is
// untouched when the inner scope returns.
func WithContext(d Decoder, ctx any) Decoder {
	if bd, ok := d.(BorrowDecoder); ok {
		return &borrowContextDecoder{contextDecoder{d: d, ctx: ctx}, bd}
	}
	return &contextDecoder{d: d, ctx: ctx}
}

type contextDecoder struct {
	d   Decoder
	ctx any
}

func (c *contextDecoder) Reader() Reader            { return c.d.Reader() }
func (c *contextDecoder) Config() Config            { return c.d.Config() }
func (c *contextDecoder) Context() any              { return c.ctx }
func (c *contextDecoder) ClaimBytes(n uint64) error { return c.d.ClaimBytes(n) }
func (c *contextDecoder) UnclaimBytes(n uint64)     { c.d.UnclaimBytes(n) }

type borrowContextDecoder struct {
	contextDecoder
	bd BorrowDecoder
}

func (c *borrowContextDecoder) BorrowReader() BorrowReader { return c.bd.BorrowReader() }
