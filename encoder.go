package wire

// Encoder is the stateful driver of one encode session: one Writer, one
// Config, one Context. Like the Decoder it is single-threaded, built per
// operation and passed down the call tree by interface value.
type Encoder interface {
	// Writer gives exclusive access to the underlying byte sink.
	Writer() Writer

	// Config gives read-only access to the session policy.
	Config() Config

	// Context returns the caller-supplied value threaded through every
	// nested encode call. It defaults to nil.
	Context() any
}

type encoder struct {
	w   Writer
	cfg Config
	ctx any
}

var _ Encoder = (*encoder)(nil)

// NewEncoder builds an Encoder for one session over w. ctx may be nil.
func NewEncoder(w Writer, cfg Config, ctx any) Encoder {
	return &encoder{w: w, cfg: cfg, ctx: ctx}
}

func (e *encoder) Writer() Writer { return e.w }
func (e *encoder) Config() Config { return e.cfg }
func (e *encoder) Context() any   { return e.ctx }

// WithEncodeContext presents a different Context to an inner encode scope
// while delegating the stream and config to the outer Encoder.
func WithEncodeContext(e Encoder, ctx any) Encoder {
	return &contextEncoder{e: e, ctx: ctx}
}

type contextEncoder struct {
	e   Encoder
	ctx any
}

func (c *contextEncoder) Writer() Writer { return c.e.Writer() }
func (c *contextEncoder) Config() Config { return c.e.Config() }
func (c *contextEncoder) Context() any   { return c.ctx }
