package node

import "fmt"

// Classify returns the type of n after checking that its payload can be read
// as that type.
//
// A tag outside the known set, including GenericType on its own, yields an
// *UnsupportedTypeError. A payload inconsistent with its tag yields
// ErrTypeMismatch.
func Classify(n *Node) (Type, error) {
	if n == nil {
		return 0, fmt.Errorf("%w: nil node", ErrTypeMismatch)
	}
	switch n.Type {
	case NullType, BoolType, NumberType, ArrayType, StringType, CollectionType:
		return n.Type, nil
	case ResourceType:
		if n.Length != len(n.Resource) {
			return 0, fmt.Errorf("%w: %s declares %d bytes, has %d", ErrTypeMismatch, n.Type, n.Length, len(n.Resource))
		}
		return n.Type, nil
	case ObjectsType:
		if len(n.Keys) != len(n.Refs) {
			return 0, fmt.Errorf("%w: %s has %d keys and %d refs", ErrTypeMismatch, n.Type, len(n.Keys), len(n.Refs))
		}
		return n.Type, nil
	case GenericType:
		return 0, &UnsupportedTypeError{Tag: n.Type}
	default:
		return 0, &UnsupportedTypeError{Tag: n.Type}
	}
}
