package node

import (
	"errors"
	"fmt"
)

var (
	ErrFormat            = errors.New("format error")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrUnsupportedType   = errors.New("unsupported type")
	ErrInvalidNumberType = errors.New("invalid number type")
	ErrEncoding          = errors.New("encoding error")
)

// UnsupportedTypeError reports a node whose tag is outside the known set.
type UnsupportedTypeError struct {
	Tag Type
}

func (e *UnsupportedTypeError) Error() string {
	if e.Tag == GenericType {
		return fmt.Sprintf("%s: generic base tag %d used as a value", ErrUnsupportedType, uint8(e.Tag))
	}
	return fmt.Sprintf("%s: tag %d", ErrUnsupportedType, uint8(e.Tag))
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}
