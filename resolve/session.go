// Package resolve turns archive references into owned nodes.
//
// A Session wraps an archive.Resolver for the duration of one conversion.
// Every node it hands out is wrapped in a Handle; releasing the handle gives
// the node back to the archive. Closing the session gives back everything
// still held, so a deferred Close covers every exit path.
//
// With caching enabled, each distinct reference is materialized once per
// session. Handles to cached nodes share the node, their Release is a no-op,
// and the nodes go back to the archive when the session closes.
package resolve

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/uyjulian/psbfile/archive"
	"github.com/uyjulian/psbfile/debug"
	"github.com/uyjulian/psbfile/node"
)

var ErrClosed = errors.New("resolve: session closed")

// Session resolves references against an archive. A Session is not safe
// for concurrent use.
type Session struct {
	r      archive.Resolver
	cache  map[node.Ref]*node.Node
	held   map[*Handle]struct{}
	stats  Stats
	closed bool
	log    *slog.Logger
}

// Stats counts the work done by a Session.
type Stats struct {
	// Resolves is the number of nodes materialized by the archive.
	Resolves int
	// Hits is the number of acquisitions served from the cache.
	Hits int
	// Held is the number of nodes currently owned by the session.
	Held int
}

type Option func(*Session)

// WithCache enables or disables the per-session node cache.
func WithCache(v bool) Option {
	return func(s *Session) {
		if v {
			s.cache = map[node.Ref]*node.Node{}
		} else {
			s.cache = nil
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

func New(r archive.Resolver, opts ...Option) *Session {
	s := &Session{
		r:    r,
		held: map[*Handle]struct{}{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Acquire resolves ref and returns a handle owning the resulting node.
func (s *Session) Acquire(ref node.Ref) (*Handle, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if s.cache != nil {
		if n, ok := s.cache[ref]; ok {
			s.stats.Hits++
			return &Handle{ref: ref, n: n}, nil
		}
	}
	n, err := s.r.Resolve(ref)
	if err != nil {
		if !errors.Is(err, node.ErrFormat) {
			err = fmt.Errorf("%w: %w", node.ErrFormat, err)
		}
		return nil, fmt.Errorf("resolving ref %d: %w", ref, err)
	}
	if n == nil {
		return nil, fmt.Errorf("%w: ref %d resolved to nothing", node.ErrFormat, ref)
	}
	s.stats.Resolves++
	if debug.Resolve() {
		debug.Logf("resolved ref %d: %v\n", ref, n)
	}
	if s.log != nil {
		s.log.Debug("resolved", "ref", ref, "type", n.Type)
	}
	if s.cache != nil {
		s.cache[ref] = n
		return &Handle{ref: ref, n: n}, nil
	}
	h := &Handle{s: s, ref: ref, n: n}
	s.held[h] = struct{}{}
	return h, nil
}

// Stats returns the session's counters.
func (s *Session) Stats() Stats {
	res := s.stats
	res.Held = len(s.held) + len(s.cache)
	return res
}

// Close releases every node the session still holds. Close is idempotent;
// the session cannot be used afterwards.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for h := range s.held {
		h.release()
	}
	for ref, n := range s.cache {
		s.r.Release(n)
		delete(s.cache, ref)
	}
	if s.log != nil {
		s.log.Debug("session closed", "resolves", s.stats.Resolves, "hits", s.stats.Hits)
	}
}

// Handle owns one resolved node until released.
type Handle struct {
	s   *Session
	ref node.Ref
	n   *node.Node
}

// Node returns the resolved node, or nil once the handle has been released.
func (h *Handle) Node() *node.Node {
	return h.n
}

func (h *Handle) Ref() node.Ref {
	return h.ref
}

// Release gives the node back. It is safe to call more than once.
func (h *Handle) Release() {
	if h == nil || h.s == nil {
		return
	}
	h.release()
}

func (h *Handle) release() {
	if h.n == nil {
		return
	}
	h.s.r.Release(h.n)
	delete(h.s.held, h)
	h.n = nil
}
