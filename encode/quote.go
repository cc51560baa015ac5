package encode

import (
	"strconv"
	"strings"
	"unicode"
)

func quoteString(v string, es *EncState) string {
	if es.format.IsJSON() || needsQuote(v) {
		return quote(v)
	}
	return v
}

// needsQuote reports whether v would not read back as the same plain
// string in Tony or YAML.
func needsQuote(v string) bool {
	if v == "" {
		return true
	}
	switch strings.ToLower(v) {
	case "true", "false", "null", "~", "yes", "no", "on", "off", "<<":
		return true
	}
	switch v[0] {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
		'-', '+', '.', '!', '&', '*', '?', '|', '>', '\'', '"', '%', '@', '`', ' ':
		return true
	}
	if v[len(v)-1] == ' ' || v[len(v)-1] == ':' {
		return true
	}
	if strings.ContainsAny(v, "{}[],#\"\\") || strings.Contains(v, ": ") {
		return true
	}
	for _, r := range v {
		if !unicode.IsPrint(r) {
			return true
		}
	}
	return false
}

// quote returns v as a double quoted string which is valid JSON, YAML and
// Tony.
func quote(v string) string {
	d := make([]byte, 1, len(v)+2)
	d[0] = '"'
	for _, r := range v {
		switch r {
		case '"':
			d = append(d, '\\', '"')
		case '\\':
			d = append(d, '\\', '\\')
		case '\b':
			d = append(d, '\\', 'b')
		case '\f':
			d = append(d, '\\', 'f')
		case '\n':
			d = append(d, '\\', 'n')
		case '\r':
			d = append(d, '\\', 'r')
		case '\t':
			d = append(d, '\\', 't')
		default:
			if r < 0x20 || r == 0x7f {
				d = append(d, `\u00`...)
				if r < 0x10 {
					d = append(d, '0')
				}
				d = strconv.AppendInt(d, int64(r), 16)
				continue
			}
			d = append(d, string(r)...)
		}
	}
	return string(append(d, '"'))
}
