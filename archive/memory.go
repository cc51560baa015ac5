package archive

import (
	"fmt"
	"sync"

	"github.com/uyjulian/psbfile/node"
)

// Memory is a Reader over an in-memory node table, where a Ref is an index
// into the table. Resolve hands out copies, so callers may not change the
// table through the nodes they get.
//
// Memory tracks outstanding nodes so leaks can be detected. It is safe for
// concurrent use.
type Memory struct {
	root  *node.Node
	nodes []*node.Node

	mu       sync.Mutex
	out      map[*node.Node]struct{}
	resolves int
	strays   int
}

func NewMemory(root *node.Node, nodes []*node.Node) *Memory {
	return &Memory{
		root:  root,
		nodes: nodes,
		out:   map[*node.Node]struct{}{},
	}
}

func (m *Memory) Root() *node.Node {
	return m.root
}

// Len returns the number of nodes in the table.
func (m *Memory) Len() int {
	return len(m.nodes)
}

func (m *Memory) Resolve(ref node.Ref) (*node.Node, error) {
	if int(ref) >= len(m.nodes) || m.nodes[ref] == nil {
		return nil, fmt.Errorf("%w: ref %d out of range (%d nodes)", node.ErrFormat, ref, len(m.nodes))
	}
	res := m.nodes[ref].Clone()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.out[res] = struct{}{}
	m.resolves++
	return res, nil
}

// Release returns a node obtained from Resolve. Releasing anything else,
// including the root, is counted as a stray and otherwise ignored.
func (m *Memory) Release(n *node.Node) {
	if n == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.out[n]; !ok {
		m.strays++
		return
	}
	delete(m.out, n)
	n.Reset()
}

// Live returns the number of resolved nodes not yet released.
func (m *Memory) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.out)
}

// Resolves returns the number of successful Resolve calls.
func (m *Memory) Resolves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolves
}

// Strays returns the number of Release calls for nodes Memory did not hand
// out or had already taken back.
func (m *Memory) Strays() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.strays
}

// Builder accumulates a node table for a Memory reader.
type Builder struct {
	nodes []*node.Node
}

// Add appends n to the table and returns its Ref.
func (b *Builder) Add(n *node.Node) node.Ref {
	b.nodes = append(b.nodes, n)
	return node.Ref(len(b.nodes) - 1)
}

// Objects adds an objects node with the given entries.
func (b *Builder) Objects(kvs ...node.KeyRef) node.Ref {
	return b.Add(node.FromKeyRefs(kvs))
}

// Collection adds a collection node with the given elements.
func (b *Builder) Collection(refs ...node.Ref) node.Ref {
	return b.Add(node.FromRefs(refs...))
}

// Build returns a Memory reader over the nodes added so far.
func (b *Builder) Build(root *node.Node) *Memory {
	return NewMemory(root, b.nodes)
}

// BuildRef returns a Memory reader whose root is the node at ref.
func (b *Builder) BuildRef(ref node.Ref) *Memory {
	return NewMemory(b.nodes[ref], b.nodes)
}
