package parse

import (
	"errors"
	"fmt"
)

var (
	ErrParse = errors.New("parse error")
	ErrEmpty = fmt.Errorf("%w: empty line", ErrParse)
	// ErrTrailing reports input left on a line after its first entry.
	ErrTrailing = fmt.Errorf("%w: trailing data", ErrParse)
)
