package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format int

const (
	TonyFormat Format = iota
	YAMLFormat
	JSONFormat
)

var ErrBadFormat = errors.New("bad format")

var formatNames = map[string]Format{
	"t":    TonyFormat,
	"tony": TonyFormat,
	"y":    YAMLFormat,
	"yaml": YAMLFormat,
	"yml":  YAMLFormat,
	"j":    JSONFormat,
	"json": JSONFormat,
}

func ParseFormat(v string) (Format, error) {
	f, ok := formatNames[strings.ToLower(v)]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

// FromName returns the format suggested by the suffix of a file name, and
// whether the suffix named one.
func FromName(name string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if len(ext) < 2 {
		return TonyFormat, false
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return TonyFormat, false
	}
	return f, true
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case TonyFormat:
		return []byte("tony"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	case JSONFormat:
		return []byte("json"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsJSON() bool { return f == JSONFormat }
func (f Format) IsTony() bool { return f == TonyFormat }
func (f Format) IsYAML() bool { return f == YAMLFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case TonyFormat:
		return ".tony"
	case YAMLFormat:
		return ".yaml"
	case JSONFormat:
		return ".json"
	default:
		return ""
	}
}

func AllFormats() []Format {
	return []Format{TonyFormat, YAMLFormat, JSONFormat}
}
