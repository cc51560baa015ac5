package node

import "slices"

// Ref is an opaque handle to a node in an archive's node storage.
type Ref uint32

// Node is one tagged value as read from an archive.
//
// Node is a tagged union: the payload fields which are meaningful depend on
// Type.
//
//   - ResourceType: Resource, Length
//   - NumberType: Subtype and one of Int, Float32, Float64
//   - ArrayType: Ints
//   - StringType: String
//   - ObjectsType: Keys and Refs, pairwise
//   - CollectionType: Refs
type Node struct {
	Type Type

	Bool     bool
	Resource []byte
	Length   int

	Subtype NumberSubtype
	Int     int64
	Float32 float32
	Float64 float64

	Ints   []int64
	String []byte
	Keys   []string
	Refs   []Ref
}

// KeyRef is one entry of an objects node.
type KeyRef struct {
	Key string
	Ref Ref
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromResource(d []byte) *Node {
	return &Node{Type: ResourceType, Resource: d, Length: len(d)}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Subtype: IntegerNumber, Int: v}
}

func FromFloat32(v float32) *Node {
	return &Node{Type: NumberType, Subtype: Float32Number, Float32: v}
}

func FromFloat64(v float64) *Node {
	return &Node{Type: NumberType, Subtype: Float64Number, Float64: v}
}

func FromInts(vs ...int64) *Node {
	return &Node{Type: ArrayType, Ints: vs}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: []byte(v)}
}

func FromStringBytes(v []byte) *Node {
	return &Node{Type: StringType, String: v}
}

func FromKeyRefs(kvs []KeyRef) *Node {
	res := &Node{
		Type: ObjectsType,
		Keys: make([]string, len(kvs)),
		Refs: make([]Ref, len(kvs)),
	}
	for i := range kvs {
		res.Keys[i] = kvs[i].Key
		res.Refs[i] = kvs[i].Ref
	}
	return res
}

func FromRefs(refs ...Ref) *Node {
	return &Node{Type: CollectionType, Refs: refs}
}

// KeyRefs returns the entries of an objects node in archive order.
func (n *Node) KeyRefs() []KeyRef {
	res := make([]KeyRef, min(len(n.Keys), len(n.Refs)))
	for i := range res {
		res[i] = KeyRef{Key: n.Keys[i], Ref: n.Refs[i]}
	}
	return res
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	res := &Node{}
	return n.CloneTo(res)
}

// CloneTo copies n into dst, sharing no memory with n, and returns dst.
func (n *Node) CloneTo(dst *Node) *Node {
	*dst = *n
	dst.Resource = slices.Clone(n.Resource)
	dst.Ints = slices.Clone(n.Ints)
	dst.String = slices.Clone(n.String)
	dst.Keys = slices.Clone(n.Keys)
	dst.Refs = slices.Clone(n.Refs)
	return dst
}

// Reset clears n so it may be reused.
func (n *Node) Reset() {
	*n = Node{}
}
