package node

import "fmt"

// Type is the tag of a node as stored in an archive.
type Type uint8

const (
	// GenericType is the base tag every node type derives from. It is never
	// valid on its own.
	GenericType Type = iota
	NullType
	BoolType
	ResourceType
	NumberType
	ArrayType
	StringType
	ObjectsType
	CollectionType
)

var typeNames = map[Type]string{
	GenericType:    "generic",
	NullType:       "null",
	BoolType:       "boolean",
	ResourceType:   "resource",
	NumberType:     "number",
	ArrayType:      "array",
	StringType:     "string",
	ObjectsType:    "objects",
	CollectionType: "collection",
}

var typesByName = func() map[string]Type {
	res := make(map[string]Type, len(typeNames))
	for t, name := range typeNames {
		res[name] = t
	}
	res["bool"] = BoolType
	res["list"] = CollectionType
	return res
}()

func (t Type) String() string {
	s, ok := typeNames[t]
	if ok {
		return s
	}
	return fmt.Sprintf("<unknown type %d>", uint8(t))
}

func (t Type) MarshalText() ([]byte, error) {
	s, ok := typeNames[t]
	if !ok {
		return nil, &UnsupportedTypeError{Tag: t}
	}
	return []byte(s), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, err := ParseType(string(d))
	if err != nil {
		return err
	}
	*t = tt
	return nil
}

// ParseType returns the type named v.
func ParseType(v string) (Type, error) {
	t, ok := typesByName[v]
	if !ok {
		return 0, fmt.Errorf("%w: unrecognized type %q", ErrUnsupportedType, v)
	}
	return t, nil
}

// Types returns the node types which may appear in a tree, in tag order.
func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		ResourceType,
		NumberType,
		ArrayType,
		StringType,
		ObjectsType,
		CollectionType,
	}
}

// IsLeaf reports whether nodes of type t carry no references.
func (t Type) IsLeaf() bool {
	switch t {
	case ObjectsType, CollectionType:
		return false
	default:
		return true
	}
}

// NumberSubtype is the subtype of a NumberType node.
type NumberSubtype uint8

const (
	IntegerNumber NumberSubtype = iota
	Float32Number
	Float64Number
)

func (n NumberSubtype) String() string {
	switch n {
	case IntegerNumber:
		return "integer"
	case Float32Number:
		return "float32"
	case Float64Number:
		return "float64"
	default:
		return fmt.Sprintf("<invalid number type %d>", uint8(n))
	}
}

// ParseNumberSubtype returns the number subtype named v.
func ParseNumberSubtype(v string) (NumberSubtype, error) {
	switch v {
	case "integer", "int":
		return IntegerNumber, nil
	case "float32", "f32", "float":
		return Float32Number, nil
	case "float64", "f64", "double":
		return Float64Number, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumberType, v)
	}
}

// NumberSubtypes returns the valid number subtypes.
func NumberSubtypes() []NumberSubtype {
	return []NumberSubtype{IntegerNumber, Float32Number, Float64Number}
}
