package wire

import "github.com/puzpuzpuz/xsync/v4"

// Interner deduplicates decoded strings. Records with recurring keys (tag
// names, enum labels, topic strings) decode into one shared string instead
// of a fresh allocation per occurrence.
//
// An Interner is safe for concurrent use, so one table can serve parallel
// decode sessions: hand it to each session as the Context.
type Interner struct {
	m *xsync.Map[string, string]
}

// NewInterner creates an empty interning table.
func NewInterner() *Interner {
	return &Interner{m: xsync.NewMap[string, string]()}
}

// Intern returns the canonical copy of s, storing s if it is the first.
func (in *Interner) Intern(s string) string {
	if v, ok := in.m.Load(s); ok {
		return v
	}
	v, _ := in.m.LoadOrStore(s, s)
	return v
}

// Len returns the number of distinct strings in the table.
func (in *Interner) Len() int { return in.m.Size() }

// DecodeInternedString decodes a string and, when the session Context is an
// *Interner, returns the table's shared copy. Without one it behaves exactly
// like DecodeString.
func DecodeInternedString(dec Decoder) (string, error) {
	s, err := DecodeString(dec)
	if err != nil {
		return "", err
	}
	if in, ok := dec.Context().(*Interner); ok {
		return in.Intern(s), nil
	}
	return s, nil
}
