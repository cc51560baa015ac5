// Package dump writes a readable rendering of an archive node tree, for
// diagnosing archives which do not convert.
//
// The rendering shows node types as stored. Numbers carry their subtype, as
// in int(1), f32(1.5) and f64(1.5), and resources show only their size:
//
//	{
//	  "name": "hero",
//	  "grid": [3, 1, 2],
//	  "tags": [
//	    int(1),
//	    <invalid number 9>,
//	  ],
//	}
package dump

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/uyjulian/psbfile/archive"
	"github.com/uyjulian/psbfile/node"
	"github.com/uyjulian/psbfile/resolve"
	"github.com/uyjulian/psbfile/walk"
)

type options struct {
	indent   string
	maxDepth int
}

type Option func(*options)

// WithIndent sets the indentation of one level. The default is two spaces.
func WithIndent(s string) Option {
	return func(o *options) { o.indent = s }
}

func WithMaxDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}

// Dump writes the tree at root to w, resolving references through r.
// Numbers with an unknown subtype are shown rather than reported; any other
// malformed node stops the dump with an error.
func Dump(root *node.Node, r archive.Resolver, w io.Writer, opts ...Option) error {
	o := &options{indent: "  "}
	for _, opt := range opts {
		opt(o)
	}
	s := resolve.New(r)
	defer s.Close()

	d := &dumper{w: bufio.NewWriter(w), indent: o.indent}
	err := walk.Walk(root, s, d, walk.WithMaxDepth(o.maxDepth))
	if ferr := d.w.Flush(); err == nil {
		err = ferr
	}
	return err
}

// String returns the dump of the tree at root.
func String(root *node.Node, r archive.Resolver, opts ...Option) (string, error) {
	buf := &strings.Builder{}
	if err := Dump(root, r, buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type dumper struct {
	w      *bufio.Writer
	indent string
	depth  int
	key    *string
}

func (d *dumper) Leaf(t node.Type, n *node.Node) error {
	d.prefix()
	d.w.WriteString(Token(t, n))
	return d.suffix()
}

func (d *dumper) BeginObjects(*node.Node) error {
	return d.open('{')
}

func (d *dumper) Key(k string) error {
	d.key = &k
	return nil
}

func (d *dumper) EndObjects() error {
	return d.close('}')
}

func (d *dumper) BeginCollection(*node.Node) error {
	return d.open('[')
}

func (d *dumper) EndCollection() error {
	return d.close(']')
}

func (d *dumper) open(c byte) error {
	d.prefix()
	d.w.WriteByte(c)
	d.depth++
	_, err := d.w.WriteString("\n")
	return err
}

func (d *dumper) close(c byte) error {
	d.depth--
	d.key = nil
	d.prefix()
	d.w.WriteByte(c)
	return d.suffix()
}

func (d *dumper) prefix() {
	for range d.depth {
		d.w.WriteString(d.indent)
	}
	if d.key != nil {
		d.w.WriteString(strconv.Quote(*d.key))
		d.w.WriteString(": ")
		d.key = nil
	}
}

func (d *dumper) suffix() error {
	s := "\n"
	if d.depth > 0 {
		s = ",\n"
	}
	_, err := d.w.WriteString(s)
	return err
}

// Token returns the one line rendering of a leaf node of type t.
func Token(t node.Type, n *node.Node) string {
	switch t {
	case node.NullType:
		return "null"
	case node.BoolType:
		return strconv.FormatBool(n.Bool)
	case node.ResourceType:
		return "<resource " + strconv.Itoa(len(n.Resource)) + " bytes>"
	case node.NumberType:
		switch n.Subtype {
		case node.IntegerNumber:
			return "int(" + strconv.FormatInt(n.Int, 10) + ")"
		case node.Float32Number:
			return "f32(" + strconv.FormatFloat(float64(n.Float32), 'g', -1, 32) + ")"
		case node.Float64Number:
			return "f64(" + strconv.FormatFloat(n.Float64, 'g', -1, 64) + ")"
		default:
			return "<invalid number " + strconv.Itoa(int(n.Subtype)) + ">"
		}
	case node.ArrayType:
		buf := &strings.Builder{}
		buf.WriteByte('[')
		for i, x := range n.Ints {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(strconv.FormatInt(x, 10))
		}
		buf.WriteByte(']')
		return buf.String()
	case node.StringType:
		return strconv.Quote(string(n.String))
	default:
		return "<" + t.String() + ">"
	}
}
