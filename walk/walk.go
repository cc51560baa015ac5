// Package walk traverses a tree of archive nodes depth first, resolving
// references on the way.
//
// The traversal keeps its own stack instead of recursing, so the depth of
// the tree is bounded by memory, not by the goroutine stack. Each resolved
// child is released as soon as its subtree has been visited, and every node
// still held is released when Walk returns, whether it succeeds or not.
package walk

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/uyjulian/psbfile/debug"
	"github.com/uyjulian/psbfile/node"
	"github.com/uyjulian/psbfile/resolve"
)

// Visitor receives the nodes of a tree in depth first order.
//
// Objects nodes produce BeginObjects, then Key followed by the value for
// each entry, then EndObjects. Collection nodes produce BeginCollection, the
// elements, then EndCollection. Every other node produces one Leaf call.
//
// Nodes passed to a Visitor are only valid until the call returns.
type Visitor interface {
	Leaf(t node.Type, n *node.Node) error
	BeginObjects(n *node.Node) error
	Key(key string) error
	EndObjects() error
	BeginCollection(n *node.Node) error
	EndCollection() error
}

type Option func(*walker)

// WithMaxDepth limits the nesting of objects and collections. Zero means no
// limit.
func WithMaxDepth(n int) Option {
	return func(w *walker) { w.maxDepth = n }
}

type frame struct {
	n    *node.Node
	t    node.Type
	h    *resolve.Handle
	pos  int
	next int
}

type walker struct {
	s        *resolve.Session
	v        Visitor
	stack    []frame
	active   map[node.Ref]int
	maxDepth int
}

// Walk visits root and everything reachable from it. root is not released.
// Errors are annotated with the path of the node at which they occurred.
func Walk(root *node.Node, s *resolve.Session, v Visitor, opts ...Option) error {
	w := &walker{
		s:      s,
		v:      v,
		active: map[node.Ref]int{},
	}
	for _, opt := range opts {
		opt(w)
	}
	defer w.unwind()

	if err := w.visit(root, nil, -1); err != nil {
		return w.wrap(-1, err)
	}
	for len(w.stack) > 0 {
		top := &w.stack[len(w.stack)-1]
		if top.next == len(top.n.Refs) {
			if err := w.end(top.t); err != nil {
				return w.wrap(-1, err)
			}
			w.pop()
			continue
		}
		i := top.next
		top.next++
		if top.t == node.ObjectsType {
			if err := w.v.Key(top.n.Keys[i]); err != nil {
				return w.wrap(i, err)
			}
		}
		ref := top.n.Refs[i]
		if w.active[ref] > 0 {
			return w.wrap(i, fmt.Errorf("%w: reference cycle through ref %d", node.ErrFormat, ref))
		}
		h, err := w.s.Acquire(ref)
		if err != nil {
			return w.wrap(i, err)
		}
		if err := w.visit(h.Node(), h, i); err != nil {
			h.Release()
			return w.wrap(i, err)
		}
	}
	return nil
}

// visit hands a leaf to the visitor and releases it, or opens a container
// and pushes it, transferring ownership of h to the stack.
func (w *walker) visit(n *node.Node, h *resolve.Handle, pos int) error {
	t, err := node.Classify(n)
	if err != nil {
		return err
	}
	if debug.Walk() {
		debug.Logf("walk depth %d: %v\n", len(w.stack), n)
	}
	if t.IsLeaf() {
		err := w.v.Leaf(t, n)
		h.Release()
		return err
	}
	if w.maxDepth > 0 && len(w.stack) >= w.maxDepth {
		return fmt.Errorf("%w: nesting deeper than %d", node.ErrFormat, w.maxDepth)
	}
	switch t {
	case node.ObjectsType:
		err = w.v.BeginObjects(n)
	case node.CollectionType:
		err = w.v.BeginCollection(n)
	}
	if err != nil {
		return err
	}
	w.stack = append(w.stack, frame{n: n, t: t, h: h, pos: pos})
	if h != nil {
		w.active[h.Ref()]++
	}
	return nil
}

func (w *walker) end(t node.Type) error {
	if t == node.ObjectsType {
		return w.v.EndObjects()
	}
	return w.v.EndCollection()
}

func (w *walker) pop() {
	n := len(w.stack)
	top := &w.stack[n-1]
	if top.h != nil {
		ref := top.h.Ref()
		if w.active[ref]--; w.active[ref] == 0 {
			delete(w.active, ref)
		}
		top.h.Release()
	}
	w.stack[n-1] = frame{}
	w.stack = w.stack[:n-1]
}

func (w *walker) unwind() {
	for len(w.stack) > 0 {
		w.pop()
	}
}

// wrap annotates err with the path of child of the top frame, or of the top
// frame itself when child is negative.
func (w *walker) wrap(child int, err error) error {
	return fmt.Errorf("%s: %w", w.path(child), err)
}

func (w *walker) path(child int) string {
	buf := &strings.Builder{}
	buf.WriteByte('$')
	for i := 1; i < len(w.stack); i++ {
		writeSegment(buf, &w.stack[i-1], w.stack[i].pos)
	}
	if child >= 0 && len(w.stack) > 0 {
		writeSegment(buf, &w.stack[len(w.stack)-1], child)
	}
	return buf.String()
}

func writeSegment(buf *strings.Builder, parent *frame, pos int) {
	if parent.t != node.ObjectsType {
		buf.WriteByte('[')
		buf.WriteString(strconv.Itoa(pos))
		buf.WriteByte(']')
		return
	}
	key := parent.n.Keys[pos]
	if isPlainKey(key) {
		buf.WriteByte('.')
		buf.WriteString(key)
		return
	}
	buf.WriteByte('[')
	buf.WriteString(strconv.Quote(key))
	buf.WriteByte(']')
}

func isPlainKey(k string) bool {
	if k == "" {
		return false
	}
	for i, r := range k {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return true
}
