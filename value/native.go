package value

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
)

// Native returns v as plain Go values: nil, bool, int64, float32, float64,
// []byte, string, []any and map[string]any. Dictionary order is lost.
func (v *Value) Native() any {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case BoolKind:
		return v.Bool
	case IntKind:
		return v.Int
	case Float32Kind:
		return v.Float32
	case Float64Kind:
		return v.Float64
	case BytesKind:
		return v.Bytes
	case StringKind:
		return v.String
	case ArrayKind:
		res := make([]any, len(v.Values))
		for i, elt := range v.Values {
			res[i] = elt.Native()
		}
		return res
	case DictKind:
		res := make(map[string]any, len(v.Fields))
		for i, field := range v.Fields {
			res[field] = v.Values[i].Native()
		}
		return res
	default:
		return nil
	}
}

// FromNative converts plain Go values back into a Value. Maps are
// converted with their keys sorted.
func FromNative(x any) (*Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case *Value:
		if t == nil {
			return Null(), nil
		}
		return t, nil
	case bool:
		return FromBool(t), nil
	case int:
		return FromInt(int64(t)), nil
	case int8:
		return FromInt(int64(t)), nil
	case int16:
		return FromInt(int64(t)), nil
	case int32:
		return FromInt(int64(t)), nil
	case int64:
		return FromInt(t), nil
	case uint8:
		return FromInt(int64(t)), nil
	case uint16:
		return FromInt(int64(t)), nil
	case uint32:
		return FromInt(int64(t)), nil
	case uint:
		if uint64(t) > 1<<63-1 {
			return nil, fmt.Errorf("unsigned value %d overflows int64", t)
		}
		return FromInt(int64(t)), nil
	case uint64:
		if t > 1<<63-1 {
			return nil, fmt.Errorf("unsigned value %d overflows int64", t)
		}
		return FromInt(int64(t)), nil
	case float32:
		return FromFloat32(t), nil
	case float64:
		return FromFloat64(t), nil
	case string:
		return FromString(t), nil
	case []byte:
		return FromBytes(t), nil
	case []any:
		res := NewArray(len(t))
		for i, elt := range t {
			ev, err := FromNative(elt)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			res.Append(ev)
		}
		return res, nil
	case map[string]any:
		res := NewDict(len(t))
		for _, k := range slices.Sorted(maps.Keys(t)) {
			ev, err := FromNative(t[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			res.Put(k, ev)
		}
		return res, nil
	}
	return fromReflect(reflect.ValueOf(x))
}

func fromReflect(rv reflect.Value) (*Value, error) {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		res := NewArray(rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ev, err := FromNative(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			res.Append(ev)
		}
		return res, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("cannot convert map with %s keys", rv.Type().Key())
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			switch {
			case a.String() < b.String():
				return -1
			case a.String() > b.String():
				return 1
			}
			return 0
		})
		res := NewDict(len(keys))
		for _, k := range keys {
			ev, err := FromNative(rv.MapIndex(k).Interface())
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k.String(), err)
			}
			res.Put(k.String(), ev)
		}
		return res, nil
	case reflect.String:
		return FromString(rv.String()), nil
	case reflect.Bool:
		return FromBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromInt(rv.Int()), nil
	case reflect.Float32:
		return FromFloat32(float32(rv.Float())), nil
	case reflect.Float64:
		return FromFloat64(rv.Float()), nil
	case reflect.Pointer:
		if rv.IsNil() {
			return Null(), nil
		}
		return FromNative(rv.Elem().Interface())
	}
	return nil, fmt.Errorf("cannot convert %T to a value", rv.Interface())
}
