package archive

import (
	"encoding/base64"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/uyjulian/psbfile/node"
)

// fixture is a textual description of a node table, in YAML or JSON:
//
//	root: 0
//	nodes:
//	- {type: objects, keys: [name, hp], refs: [1, 2]}
//	- {type: string, string: hero}
//	- {type: number, number: integer, int: 100}
//
// raw holds base64 bytes for resources and for strings which are not valid
// UTF-8. tag and subtype set raw tag values, for describing damaged archives.
type fixture struct {
	Root  int           `yaml:"root"`
	Nodes []fixtureNode `yaml:"nodes"`
}

type fixtureNode struct {
	Type    string   `yaml:"type"`
	Tag     *uint8   `yaml:"tag"`
	Bool    bool     `yaml:"bool"`
	Number  string   `yaml:"number"`
	Subtype *uint8   `yaml:"subtype"`
	Int     int64    `yaml:"int"`
	Float   float64  `yaml:"float"`
	Ints    []int64  `yaml:"ints"`
	String  *string  `yaml:"string"`
	Raw     string   `yaml:"raw"`
	Length  *int     `yaml:"length"`
	Keys    []string `yaml:"keys"`
	Refs    []uint32 `yaml:"refs"`
}

// DecodeFixture decodes a node table described in YAML or JSON.
func DecodeFixture(d []byte) (*Memory, error) {
	fx := &fixture{}
	if err := yaml.UnmarshalWithOptions(d, fx, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w: %w", node.ErrFormat, err)
	}
	if fx.Root < 0 || fx.Root >= len(fx.Nodes) {
		return nil, fmt.Errorf("%w: root %d out of range (%d nodes)", node.ErrFormat, fx.Root, len(fx.Nodes))
	}
	nodes := make([]*node.Node, len(fx.Nodes))
	for i := range fx.Nodes {
		n, err := fx.Nodes[i].node()
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		nodes[i] = n
	}
	return NewMemory(nodes[fx.Root], nodes), nil
}

func (fn *fixtureNode) node() (*node.Node, error) {
	res := &node.Node{}
	switch {
	case fn.Tag != nil:
		res.Type = node.Type(*fn.Tag)
	case fn.Type == "":
		return nil, fmt.Errorf("%w: missing type", node.ErrFormat)
	default:
		t, err := node.ParseType(fn.Type)
		if err != nil {
			return nil, err
		}
		res.Type = t
	}
	raw, err := base64.StdEncoding.DecodeString(fn.Raw)
	if err != nil {
		return nil, fmt.Errorf("%w: raw: %w", node.ErrFormat, err)
	}

	switch res.Type {
	case node.BoolType:
		res.Bool = fn.Bool
	case node.ResourceType:
		res.Resource = raw
		res.Length = len(raw)
		if fn.Length != nil {
			res.Length = *fn.Length
		}
	case node.NumberType:
		if err := fn.number(res); err != nil {
			return nil, err
		}
	case node.ArrayType:
		res.Ints = fn.Ints
	case node.StringType:
		if fn.String != nil {
			res.String = []byte(*fn.String)
		} else {
			res.String = raw
		}
	case node.ObjectsType, node.CollectionType:
		res.Keys = fn.Keys
		res.Refs = make([]node.Ref, len(fn.Refs))
		for i, r := range fn.Refs {
			res.Refs[i] = node.Ref(r)
		}
	}
	return res, nil
}

func (fn *fixtureNode) number(res *node.Node) error {
	switch {
	case fn.Subtype != nil:
		res.Subtype = node.NumberSubtype(*fn.Subtype)
	case fn.Number == "":
		res.Subtype = node.IntegerNumber
	default:
		st, err := node.ParseNumberSubtype(fn.Number)
		if err != nil {
			return err
		}
		res.Subtype = st
	}
	switch res.Subtype {
	case node.Float32Number:
		res.Float32 = float32(fn.Float)
	case node.Float64Number:
		res.Float64 = fn.Float
	default:
		res.Int = fn.Int
	}
	return nil
}
