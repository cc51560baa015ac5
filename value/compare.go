package value

import (
	"bytes"
	"cmp"
	"math"
	"strings"
)

// Compare returns an integer comparing two values.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
//
// Values of different kinds order by kind. Float values compare by their
// bits when either is NaN, so Compare is a total order and two values
// compare equal only if they are bit for bit identical.
func Compare(a, b *Value) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if a.Kind != b.Kind {
		return cmp.Compare(a.Kind, b.Kind)
	}

	switch a.Kind {
	case BoolKind:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case IntKind:
		return cmp.Compare(a.Int, b.Int)
	case Float32Kind:
		return compareFloats(float64(a.Float32), float64(b.Float32),
			uint64(math.Float32bits(a.Float32)), uint64(math.Float32bits(b.Float32)))
	case Float64Kind:
		return compareFloats(a.Float64, b.Float64,
			math.Float64bits(a.Float64), math.Float64bits(b.Float64))
	case BytesKind:
		return bytes.Compare(a.Bytes, b.Bytes)
	case StringKind:
		return strings.Compare(a.String, b.String)
	case ArrayKind:
		return compareArrays(a, b)
	case DictKind:
		return compareDicts(a, b)
	}
	return 0
}

func Equal(a, b *Value) bool {
	return Compare(a, b) == 0
}

func compareFloats(a, b float64, abits, bbits uint64) int {
	if math.IsNaN(a) || math.IsNaN(b) || a == b {
		return cmp.Compare(abits, bbits)
	}
	return cmp.Compare(a, b)
}

func compareArrays(a, b *Value) int {
	lenA := len(a.Values)
	lenB := len(b.Values)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

// compareDicts compares entry by entry in insertion order, so two
// dictionaries holding the same entries in different orders are not equal.
func compareDicts(a, b *Value) int {
	lenA := len(a.Fields)
	lenB := len(b.Fields)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := strings.Compare(a.Fields[i], b.Fields[i]); c != 0 {
			return c
		}
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}
