package libdiff

import (
	"strconv"

	"github.com/uyjulian/psbfile/value"
)

const (
	DeleteKey     = "-"
	InsertKey     = "+"
	MovedKey      = "moved"
	StringDiffKey = "diff"
)

type DiffFunc func(from, to *value.Value) *value.Value

// Diff returns the difference from from to to, or nil if they are equal.
func Diff(from, to *value.Value) *value.Value {
	if from == nil || to == nil || from.Kind != to.Kind {
		return MakeDiff(from, to)
	}
	switch from.Kind {
	case value.DictKind:
		return DiffDict(from, to, Diff)
	case value.ArrayKind:
		return DiffArrayByIndex(from, to, Diff)
	case value.StringKind:
		return DiffString(from, to)
	default:
		if value.Equal(from, to) {
			return nil
		}
		return MakeDiff(from, to)
	}
}

// MakeDiff returns the diff replacing from with to. Either may be nil.
func MakeDiff(from, to *value.Value) *value.Value {
	if from == nil && to == nil {
		return nil
	}
	res := value.NewDict(2)
	if from != nil {
		res.Put(DeleteKey, from)
	}
	if to != nil {
		res.Put(InsertKey, to)
	}
	return res
}

// DiffArrayByIndex compares elements at equal indices, so an insertion
// shows up as a change to every later element.
func DiffArrayByIndex(from, to *value.Value, df DiffFunc) *value.Value {
	res := value.NewDict(0)
	n := max(len(from.Values), len(to.Values))
	for i := range n {
		var d *value.Value
		switch {
		case i >= len(from.Values):
			d = MakeDiff(nil, to.Values[i])
		case i >= len(to.Values):
			d = MakeDiff(from.Values[i], nil)
		default:
			d = df(from.Values[i], to.Values[i])
		}
		if d != nil {
			res.Put(IndexKey(i), d)
		}
	}
	if res.Len() == 0 {
		return nil
	}
	return res
}

// IndexKey returns the key of element i in an array diff.
func IndexKey(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
