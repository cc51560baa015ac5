package convert

import (
	"fmt"
	"log/slog"
)

// UTF8Policy says what happens to strings and keys which are not valid
// UTF-8.
type UTF8Policy int

const (
	// RejectInvalidUTF8 fails the conversion with node.ErrEncoding.
	RejectInvalidUTF8 UTF8Policy = iota
	// ReplaceInvalidUTF8 replaces each run of invalid bytes with U+FFFD.
	ReplaceInvalidUTF8
)

func (p UTF8Policy) String() string {
	switch p {
	case RejectInvalidUTF8:
		return "reject"
	case ReplaceInvalidUTF8:
		return "replace"
	default:
		return fmt.Sprintf("<unknown utf8 policy %d>", int(p))
	}
}

func (p UTF8Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *UTF8Policy) UnmarshalText(d []byte) error {
	switch string(d) {
	case "reject":
		*p = RejectInvalidUTF8
	case "replace", "lossy":
		*p = ReplaceInvalidUTF8
	default:
		return fmt.Errorf("unknown utf8 policy %q", d)
	}
	return nil
}

type options struct {
	utf8     UTF8Policy
	cache    bool
	maxDepth int
	log      *slog.Logger
}

type Option func(*options)

func WithInvalidUTF8(p UTF8Policy) Option {
	return func(o *options) { o.utf8 = p }
}

// WithCache controls whether each distinct reference is resolved once per
// conversion. It is on by default.
func WithCache(v bool) Option {
	return func(o *options) { o.cache = v }
}

// WithMaxDepth limits the nesting of objects and collections; deeper trees
// fail with node.ErrFormat. Zero, the default, means no limit.
func WithMaxDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}
