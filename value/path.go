package value

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrPath = errors.New("bad path")

// GetPath returns the value at path p below v. Paths are written the way
// conversion errors report locations: an optional leading $, then .field,
// ["quoted field"] and [index] segments, as in $.tags[1] or $["a b"].c.
//
// GetPath returns nil and no error when the path is well formed but
// names nothing.
func (v *Value) GetPath(p string) (*Value, error) {
	p = strings.TrimPrefix(p, "$")
	cur := v
	for p != "" {
		var (
			field string
			index = -1
			err   error
		)
		field, index, p, err = nextSegment(p)
		if err != nil {
			return nil, err
		}
		if cur == nil {
			return nil, nil
		}
		if index >= 0 {
			cur = cur.Index(index)
			continue
		}
		cur, _ = cur.Get(field)
	}
	return cur, nil
}

func nextSegment(p string) (field string, index int, rest string, err error) {
	switch p[0] {
	case '.':
		p = p[1:]
		n := strings.IndexAny(p, ".[")
		if n == -1 {
			n = len(p)
		}
		if n == 0 {
			return "", 0, "", fmt.Errorf("%w: empty field in %q", ErrPath, p)
		}
		return p[:n], -1, p[n:], nil
	case '[':
		if len(p) > 1 && p[1] == '"' {
			q, err := strconv.QuotedPrefix(p[1:])
			if err != nil {
				return "", 0, "", fmt.Errorf("%w: %w", ErrPath, err)
			}
			rest := p[1+len(q):]
			if !strings.HasPrefix(rest, "]") {
				return "", 0, "", fmt.Errorf("%w: unterminated %q", ErrPath, p)
			}
			field, _ = strconv.Unquote(q)
			return field, -1, rest[1:], nil
		}
		n := strings.IndexByte(p, ']')
		if n == -1 {
			return "", 0, "", fmt.Errorf("%w: unterminated %q", ErrPath, p)
		}
		i, err := strconv.Atoi(p[1:n])
		if err != nil || i < 0 {
			return "", 0, "", fmt.Errorf("%w: bad index %q", ErrPath, p[1:n])
		}
		return "", i, p[n+1:], nil
	default:
		return "", 0, "", fmt.Errorf("%w: unexpected %q", ErrPath, p)
	}
}
