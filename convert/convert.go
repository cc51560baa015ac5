// Package convert turns archive node trees into generic values.
//
// Conversion is all or nothing: on error no value is returned, and every
// node resolved along the way has been given back to the archive.
package convert

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/uyjulian/psbfile/archive"
	"github.com/uyjulian/psbfile/debug"
	"github.com/uyjulian/psbfile/node"
	"github.com/uyjulian/psbfile/resolve"
	"github.com/uyjulian/psbfile/value"
	"github.com/uyjulian/psbfile/walk"
)

// Convert converts root, resolving its references through r. root itself
// stays owned by the caller.
func Convert(root *node.Node, r archive.Resolver, opts ...Option) (*value.Value, error) {
	o := &options{cache: true}
	for _, opt := range opts {
		opt(o)
	}
	s := resolve.New(r, resolve.WithCache(o.cache), resolve.WithLogger(o.log))
	defer s.Close()

	b := &builder{utf8: o.utf8}
	if err := walk.Walk(root, s, b, walk.WithMaxDepth(o.maxDepth)); err != nil {
		if o.log != nil {
			o.log.Debug("conversion failed", "error", err)
		}
		return nil, err
	}
	if debug.Convert() {
		debug.Logf("converted %v\n", b.res)
	}
	if o.log != nil {
		st := s.Stats()
		o.log.Debug("converted", "kind", b.res.Kind, "resolves", st.Resolves, "hits", st.Hits)
	}
	return b.res, nil
}

// ConvertReader converts the root of r.
func ConvertReader(r archive.Reader, opts ...Option) (*value.Value, error) {
	return Convert(r.Root(), r, opts...)
}

// builder is a walk.Visitor assembling a value. stack holds the open
// dictionaries and arrays, and key the key of the next dictionary entry.
type builder struct {
	utf8  UTF8Policy
	stack []*value.Value
	seen  []map[string]struct{}
	key   string
	res   *value.Value
}

func (b *builder) Leaf(t node.Type, n *node.Node) error {
	var v *value.Value
	switch t {
	case node.NullType:
		v = value.Null()
	case node.BoolType:
		v = value.FromBool(n.Bool)
	case node.ResourceType:
		v = value.FromBytes(n.Resource)
	case node.NumberType:
		switch n.Subtype {
		case node.IntegerNumber:
			v = value.FromInt(n.Int)
		case node.Float32Number:
			v = value.FromFloat32(n.Float32)
		case node.Float64Number:
			v = value.FromFloat64(n.Float64)
		default:
			return fmt.Errorf("%w: subtype %d", node.ErrInvalidNumberType, uint8(n.Subtype))
		}
	case node.ArrayType:
		v = value.FromInts(n.Ints...)
	case node.StringType:
		s, err := b.text(n.String)
		if err != nil {
			return err
		}
		v = value.FromString(s)
	default:
		return &node.UnsupportedTypeError{Tag: t}
	}
	b.attach(v)
	return nil
}

func (b *builder) BeginObjects(n *node.Node) error {
	v := value.NewDict(len(n.Keys))
	b.attach(v)
	b.stack = append(b.stack, v)
	b.seen = append(b.seen, make(map[string]struct{}, len(n.Keys)))
	return nil
}

func (b *builder) Key(k string) error {
	k, err := b.text([]byte(k))
	if err != nil {
		return err
	}
	seen := b.seen[len(b.seen)-1]
	if _, dup := seen[k]; dup {
		return fmt.Errorf("%w: duplicate key %q", node.ErrFormat, k)
	}
	seen[k] = struct{}{}
	b.key = k
	return nil
}

func (b *builder) EndObjects() error {
	b.seen[len(b.seen)-1] = nil
	b.seen = b.seen[:len(b.seen)-1]
	b.pop()
	return nil
}

func (b *builder) BeginCollection(n *node.Node) error {
	v := value.NewArray(len(n.Refs))
	b.attach(v)
	b.stack = append(b.stack, v)
	return nil
}

func (b *builder) EndCollection() error {
	b.pop()
	return nil
}

func (b *builder) attach(v *value.Value) {
	if len(b.stack) == 0 {
		b.res = v
		return
	}
	top := b.stack[len(b.stack)-1]
	if top.Kind == value.DictKind {
		top.Put(b.key, v)
		return
	}
	top.Append(v)
}

func (b *builder) pop() {
	b.stack[len(b.stack)-1] = nil
	b.stack = b.stack[:len(b.stack)-1]
}

func (b *builder) text(d []byte) (string, error) {
	if utf8.Valid(d) {
		return string(d), nil
	}
	if b.utf8 == ReplaceInvalidUTF8 {
		return strings.ToValidUTF8(string(d), string(utf8.RuneError)), nil
	}
	return "", fmt.Errorf("%w: invalid UTF-8 in %q", node.ErrEncoding, d)
}
