package archive

import "github.com/uyjulian/psbfile/node"

// Resolver materializes referenced nodes.
//
// Each successful Resolve hands the caller ownership of a fresh node, which
// the caller must give back with Release once it is done with it. A Ref may
// be resolved any number of times.
type Resolver interface {
	Resolve(ref node.Ref) (*node.Node, error)
	Release(n *node.Node)
}

// Reader is a parsed archive. The root node is owned by the Reader for its
// whole lifetime and must not be released.
type Reader interface {
	Resolver
	Root() *node.Node
}
