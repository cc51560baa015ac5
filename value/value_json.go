package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MarshalJSON encodes v as JSON, keeping dictionary entries in insertion
// order. Bytes encode as base64 strings. Float32 values are printed with
// the shortest representation that round trips at 32 bits.
func (v *Value) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := writeJSON(buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v *Value) error {
	if v == nil {
		buf.WriteString("null")
		return nil
	}
	switch v.Kind {
	case NullKind:
		buf.WriteString("null")
	case BoolKind:
		buf.WriteString(strconv.FormatBool(v.Bool))
	case IntKind:
		buf.WriteString(strconv.FormatInt(v.Int, 10))
	case Float32Kind:
		s, err := FormatFloat(float64(v.Float32), 32)
		if err != nil {
			return err
		}
		buf.WriteString(s)
	case Float64Kind:
		s, err := FormatFloat(v.Float64, 64)
		if err != nil {
			return err
		}
		buf.WriteString(s)
	case BytesKind, StringKind:
		var (
			d   []byte
			err error
		)
		if v.Kind == BytesKind {
			d, err = json.Marshal(v.Bytes)
		} else {
			d, err = json.Marshal(v.String)
		}
		if err != nil {
			return err
		}
		buf.Write(d)
	case ArrayKind:
		buf.WriteByte('[')
		for i, elt := range v.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, elt); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case DictKind:
		buf.WriteByte('{')
		for i, field := range v.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			d, err := json.Marshal(field)
			if err != nil {
				return err
			}
			buf.Write(d)
			buf.WriteByte(':')
			if err := writeJSON(buf, v.Values[i]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot encode kind %s as json", v.Kind)
	}
	return nil
}

// FormatFloat formats f with the shortest representation that round trips
// at the given bit size. Non finite values have no JSON representation and
// are an error.
func FormatFloat(f float64, bitSize int) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("unsupported float value %v", f)
	}
	s := strconv.FormatFloat(f, 'g', -1, bitSize)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s, nil
}
