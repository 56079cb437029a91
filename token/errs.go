package token

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedByte    = errors.New("unexpected byte")
	ErrUnexpectedEOF     = errors.New("unexpected end of input")
	ErrUnterminated      = errors.New("unterminated string")
	ErrControlChar       = errors.New("unexpected control character")
	ErrBadEscape         = errors.New("invalid escape sequence")
	ErrBadUnicode        = errors.New("invalid unicode escape")
	ErrInvalidUTF8       = errors.New("invalid UTF-8")
	ErrNumber            = errors.New("invalid number")
	ErrNumberLeadingZero = errors.New("leading zero")
	ErrLiteral           = errors.New("invalid literal")
	ErrDepthLimit        = errors.New("depth limit exceeded")
	ErrExpectedKey       = errors.New("expected key")
	ErrExpectedValue     = errors.New("expected value")
	ErrUnexpectedToken   = errors.New("unexpected token")
	ErrUnmatched         = errors.New("unmatched bracket")
)

// Error is a lexical or grammar error located at a span of the input.
type Error struct {
	Err  error
	Span Span
}

func NewError(err error, span Span) *Error {
	return &Error{Err: err, Span: span}
}

// ErrorAt is NewError for a single byte at off.
func ErrorAt(err error, off int) *Error {
	return &Error{Err: err, Span: Span{Start: off, End: off + 1}}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Span)
}

func UnexpectedErr(t Token) error {
	return NewError(fmt.Errorf("%w %s", ErrUnexpectedToken, t.Type), t.Span)
}

// SpanOf returns the span of err when it carries one. Errors reporting
// their own span through ErrSpan take precedence over wrapped *Error values.
func SpanOf(err error) (Span, bool) {
	var sp interface{ ErrSpan() Span }
	if errors.As(err, &sp) {
		return sp.ErrSpan(), true
	}
	var te *Error
	if errors.As(err, &te) {
		return te.Span, true
	}
	return Span{}, false
}
