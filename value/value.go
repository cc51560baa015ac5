package value

import (
	"fmt"
	"slices"
)

type Kind int

const (
	NullKind Kind = iota
	BoolKind
	IntKind
	Float32Kind
	Float64Kind
	BytesKind
	StringKind
	ArrayKind
	DictKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		NullKind:    "Null",
		BoolKind:    "Bool",
		IntKind:     "Int",
		Float32Kind: "Float32",
		Float64Kind: "Float64",
		BytesKind:   "Bytes",
		StringKind:  "String",
		ArrayKind:   "Array",
		DictKind:    "Dict",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := map[string]Kind{
		"Null":    NullKind,
		"Bool":    BoolKind,
		"Int":     IntKind,
		"Float32": Float32Kind,
		"Float64": Float64Kind,
		"Bytes":   BytesKind,
		"String":  StringKind,
		"Array":   ArrayKind,
		"Dict":    DictKind,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized kind %q", d)
	}
	*k = kk
	return nil
}

func Kinds() []Kind {
	return []Kind{
		NullKind,
		BoolKind,
		IntKind,
		Float32Kind,
		Float64Kind,
		BytesKind,
		StringKind,
		ArrayKind,
		DictKind,
	}
}

func (k Kind) IsLeaf() bool {
	switch k {
	case ArrayKind, DictKind:
		return false
	default:
		return true
	}
}

// Value is a generic value produced by converting an archive.
//
// For DictKind values, Fields[i] is the key of Values[i], in insertion
// order. For ArrayKind values, Values holds the elements.
type Value struct {
	Kind Kind

	Bool    bool
	Int     int64
	Float32 float32
	Float64 float64
	Bytes   []byte
	String  string

	Fields []string
	Values []*Value
}

type KeyVal struct {
	Key string
	Val *Value
}

func Null() *Value {
	return &Value{Kind: NullKind}
}

func FromBool(v bool) *Value {
	return &Value{Kind: BoolKind, Bool: v}
}

func FromInt(v int64) *Value {
	return &Value{Kind: IntKind, Int: v}
}

func FromFloat32(v float32) *Value {
	return &Value{Kind: Float32Kind, Float32: v}
}

func FromFloat64(v float64) *Value {
	return &Value{Kind: Float64Kind, Float64: v}
}

// FromBytes returns a Bytes value holding a copy of d.
func FromBytes(d []byte) *Value {
	b := make([]byte, len(d))
	copy(b, d)
	return &Value{Kind: BytesKind, Bytes: b}
}

func FromString(v string) *Value {
	return &Value{Kind: StringKind, String: v}
}

func FromSlice(vs []*Value) *Value {
	if vs == nil {
		vs = []*Value{}
	}
	return &Value{Kind: ArrayKind, Values: vs}
}

func FromInts(vs ...int64) *Value {
	res := &Value{Kind: ArrayKind, Values: make([]*Value, len(vs))}
	for i, v := range vs {
		res.Values[i] = FromInt(v)
	}
	return res
}

func FromKeyVals(kvs []KeyVal) *Value {
	res := &Value{
		Kind:   DictKind,
		Fields: make([]string, len(kvs)),
		Values: make([]*Value, len(kvs)),
	}
	for i := range kvs {
		res.Fields[i] = kvs[i].Key
		res.Values[i] = kvs[i].Val
	}
	return res
}

// NewDict returns an empty dictionary with room for n entries.
func NewDict(n int) *Value {
	return &Value{
		Kind:   DictKind,
		Fields: make([]string, 0, n),
		Values: make([]*Value, 0, n),
	}
}

// NewArray returns an empty array with room for n elements.
func NewArray(n int) *Value {
	return &Value{Kind: ArrayKind, Values: make([]*Value, 0, n)}
}

// Put appends the entry key: val to dictionary v.
// It does not check for an existing entry with the same key.
func (v *Value) Put(key string, val *Value) {
	v.Fields = append(v.Fields, key)
	v.Values = append(v.Values, val)
}

// Append appends elem to array v.
func (v *Value) Append(elem *Value) {
	v.Values = append(v.Values, elem)
}

// Get returns the value under key in dictionary v.
func (v *Value) Get(key string) (*Value, bool) {
	if v == nil || v.Kind != DictKind {
		return nil, false
	}
	i := slices.Index(v.Fields, key)
	if i < 0 {
		return nil, false
	}
	return v.Values[i], true
}

// Index returns element i of array v, or nil if out of range.
func (v *Value) Index(i int) *Value {
	if v == nil || v.Kind != ArrayKind || i < 0 || i >= len(v.Values) {
		return nil
	}
	return v.Values[i]
}

// Len returns the number of elements or entries of v, or the length of its
// string or byte payload.
func (v *Value) Len() int {
	switch v.Kind {
	case ArrayKind, DictKind:
		return len(v.Values)
	case StringKind:
		return len(v.String)
	case BytesKind:
		return len(v.Bytes)
	default:
		return 0
	}
}

func (v *Value) KeyVals() []KeyVal {
	if v.Kind != DictKind {
		return nil
	}
	res := make([]KeyVal, len(v.Fields))
	for i := range v.Fields {
		res[i] = KeyVal{Key: v.Fields[i], Val: v.Values[i]}
	}
	return res
}

func (v *Value) Clone() *Value {
	res := &Value{}
	return v.CloneTo(res)
}

func (v *Value) CloneTo(dst *Value) *Value {
	*dst = *v
	dst.Bytes = slices.Clone(v.Bytes)
	dst.Fields = slices.Clone(v.Fields)
	if v.Values != nil {
		dst.Values = make([]*Value, len(v.Values))
		for i, vv := range v.Values {
			dst.Values[i] = vv.Clone()
		}
	}
	return dst
}
