package encode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/uyjulian/psbfile/format"
	"github.com/uyjulian/psbfile/value"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	col           int
	depth, indent int
	brackets      bool
	wire          bool

	format format.Format

	Color func(value.Kind, ColorAttr, string) string
}

func Encode(v *value.Value, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if !es.brackets {
		es.brackets = es.format.IsJSON()
	}
	if err := encode(v, w, es, true); err != nil {
		return err
	}
	es.col = 1
	es.depth = 0
	return writeNL(w, es)
}

// Helper functions for writing
func writeNL(w io.Writer, es *EncState) error {
	if es.wire {
		return nil
	}
	if es.col == 0 {
		return nil
	}
	indentString := strings.Repeat(" ", es.indent*es.depth)
	if err := writeString(w, "\n"+indentString); err != nil {
		return err
	}
	es.col = len(indentString)
	return nil
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func put(w io.Writer, es *EncState, k value.Kind, a ColorAttr, s string) error {
	es.col += len(s)
	return writeString(w, applyColor(es, k, a, s))
}

func applyColor(es *EncState, k value.Kind, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(k, a, s)
}

func writeTag(w io.Writer, k value.Kind, tag string, es *EncState) error {
	if es.format.IsJSON() {
		return fmt.Errorf("%w: cannot encode tags in %s", ErrEncoding, es.format)
	}
	if err := put(w, es, k, TagColor, tag); err != nil {
		return err
	}
	return writeString(w, " ")
}

// Main encode function. inline means the cursor already sits where the
// first line of v belongs.

func encode(v *value.Value, w io.Writer, es *EncState, inline bool) error {
	if v == nil {
		return fmt.Errorf("%w: nil value", ErrEncoding)
	}
	switch v.Kind {
	case value.DictKind:
		if esBracket(es) || len(v.Fields) == 0 {
			return encodeBracketDict(v, w, es)
		}
		return encodeBlockDict(v, w, es, inline)
	case value.ArrayKind:
		if esBracket(es) || len(v.Values) == 0 {
			return encodeBracketArray(v, w, es)
		}
		return encodeBlockArray(v, w, es, inline)
	default:
		return encodeLeaf(v, w, es)
	}
}

// Dictionaries

func encodeBlockDict(v *value.Value, w io.Writer, es *EncState, inline bool) error {
	for i, f := range v.Fields {
		if i > 0 || !inline {
			if err := writeNL(w, es); err != nil {
				return err
			}
		}
		if err := writeField(w, f, es); err != nil {
			return err
		}
		if err := encodeBlockFieldValue(v.Values[i], w, es); err != nil {
			return err
		}
	}
	return nil
}

func encodeBlockFieldValue(v *value.Value, w io.Writer, es *EncState) error {
	switch {
	case v != nil && v.Kind == value.DictKind && len(v.Fields) != 0:
		es.depth++
		defer func() { es.depth-- }()
		return encode(v, w, es, false)
	case v != nil && v.Kind == value.ArrayKind && len(v.Values) != 0:
		// block sequences sit at the depth of their key
		return encode(v, w, es, false)
	default:
		if err := writeString(w, " "); err != nil {
			return err
		}
		es.col++
		return encode(v, w, es, true)
	}
}

func encodeBracketDict(v *value.Value, w io.Writer, es *EncState) error {
	if len(v.Fields) == 0 {
		return put(w, es, value.DictKind, SepColor, "{}")
	}
	if err := put(w, es, value.DictKind, SepColor, "{"); err != nil {
		return err
	}
	es.depth++
	for i, f := range v.Fields {
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := writeField(w, f, es); err != nil {
			return err
		}
		if !es.wire || !es.format.IsJSON() {
			if err := writeString(w, " "); err != nil {
				return err
			}
			es.col++
		}
		if err := encode(v.Values[i], w, es, true); err != nil {
			return err
		}
		if i < len(v.Fields)-1 {
			if err := writeCommaSeparator(w, es, value.DictKind); err != nil {
				return err
			}
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return put(w, es, value.DictKind, SepColor, "}")
}

// Arrays

func encodeBlockArray(v *value.Value, w io.Writer, es *EncState, inline bool) error {
	for i, elt := range v.Values {
		if i > 0 || !inline {
			if err := writeNL(w, es); err != nil {
				return err
			}
		}
		if err := put(w, es, value.ArrayKind, SepColor, "-"); err != nil {
			return err
		}
		if err := writeString(w, " "); err != nil {
			return err
		}
		es.col++
		es.depth++
		err := encode(elt, w, es, true)
		es.depth--
		if err != nil {
			return err
		}
	}
	return nil
}

func encodeBracketArray(v *value.Value, w io.Writer, es *EncState) error {
	if len(v.Values) == 0 {
		return put(w, es, value.ArrayKind, SepColor, "[]")
	}
	if err := put(w, es, value.ArrayKind, SepColor, "["); err != nil {
		return err
	}
	es.depth++
	for i, elt := range v.Values {
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encode(elt, w, es, true); err != nil {
			return err
		}
		if i < len(v.Values)-1 {
			if err := writeCommaSeparator(w, es, value.ArrayKind); err != nil {
				return err
			}
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return put(w, es, value.ArrayKind, SepColor, "]")
}

func writeCommaSeparator(w io.Writer, es *EncState, k value.Kind) error {
	sep := ","
	if es.wire && !es.format.IsJSON() {
		sep = ", "
	}
	return put(w, es, k, SepColor, sep)
}

// Leaves

func encodeLeaf(v *value.Value, w io.Writer, es *EncState) error {
	switch v.Kind {
	case value.NullKind:
		return put(w, es, v.Kind, ValueColor, "null")
	case value.BoolKind:
		return put(w, es, v.Kind, ValueColor, strconv.FormatBool(v.Bool))
	case value.IntKind:
		return put(w, es, v.Kind, ValueColor, strconv.FormatInt(v.Int, 10))
	case value.Float32Kind:
		s, err := formatFloat(float64(v.Float32), 32, es)
		if err != nil {
			return err
		}
		if es.format.IsTony() {
			if err := writeTag(w, v.Kind, "!f32", es); err != nil {
				return err
			}
		}
		return put(w, es, v.Kind, ValueColor, s)
	case value.Float64Kind:
		s, err := formatFloat(v.Float64, 64, es)
		if err != nil {
			return err
		}
		return put(w, es, v.Kind, ValueColor, s)
	case value.BytesKind:
		s := base64.StdEncoding.EncodeToString(v.Bytes)
		switch es.format {
		case format.TonyFormat:
			if err := writeTag(w, v.Kind, "!bytes", es); err != nil {
				return err
			}
		case format.YAMLFormat:
			if err := writeTag(w, v.Kind, "!!binary", es); err != nil {
				return err
			}
		}
		return put(w, es, v.Kind, ValueColor, quoteString(s, es))
	case value.StringKind:
		return put(w, es, v.Kind, ValueColor, quoteString(v.String, es))
	default:
		return fmt.Errorf("%w: unknown kind %s", ErrEncoding, v.Kind)
	}
}

func formatFloat(f float64, bitSize int, es *EncState) (string, error) {
	if !es.format.IsJSON() {
		switch {
		case math.IsNaN(f):
			return ".nan", nil
		case math.IsInf(f, 1):
			return ".inf", nil
		case math.IsInf(f, -1):
			return "-.inf", nil
		}
	}
	s, err := value.FormatFloat(f, bitSize)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return s, nil
}

// Field writing

func writeField(w io.Writer, f string, es *EncState) error {
	if es.format.IsJSON() || needsQuote(f) {
		f = quote(f)
	}
	if err := put(w, es, value.DictKind, FieldColor, f); err != nil {
		return err
	}
	return put(w, es, value.DictKind, SepColor, ":")
}

// Format check helpers

func esBracket(es *EncState) bool {
	if es.wire {
		return true
	}
	switch es.format {
	case format.JSONFormat:
		return true
	default:
		return es.brackets
	}
}
