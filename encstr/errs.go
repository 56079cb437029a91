package encstr

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidEscape            = errors.New("invalid escape sequence")
	ErrUnexpectedEndOfHexEscape = errors.New("unexpected end of hex escape")
	ErrLoneLeadingSurrogate     = errors.New("lone leading surrogate in hex escape")
	ErrInvalidUnicodeCodePoint  = errors.New("invalid unicode code point")
)

// DecodeError reports a decoding failure at a byte offset relative to the
// start of the encoded source (including the opening quote).
type DecodeError struct {
	Err    error
	Offset int
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Err.Error(), e.Offset)
}

func decodeErr(err error, off int) error {
	return &DecodeError{Err: err, Offset: off}
}
