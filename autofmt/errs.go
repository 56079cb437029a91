package autofmt

import (
	"errors"
	"strings"

	"github.com/signadot/logv/token"
)

var (
	ErrNoFormat          = errors.New("cannot determine format")
	ErrNoCandidates      = errors.New("no candidate formats")
	ErrTooManyCandidates = errors.New("too many candidate formats")
	ErrBadCandidate      = errors.New("invalid candidate format")
)

// ExhaustedError reports an entry that no candidate could handle. Errs
// holds the error of every attempt in order; Span covers all of them.
type ExhaustedError struct {
	Span token.Span
	Errs []error
}

func newExhausted(errs []error) *ExhaustedError {
	e := &ExhaustedError{Errs: append([]error(nil), errs...)}
	first := true
	for _, err := range errs {
		sp, ok := token.SpanOf(err)
		if !ok {
			continue
		}
		if first {
			e.Span = sp
			first = false
			continue
		}
		e.Span = e.Span.Union(sp)
	}
	return e
}

func (e *ExhaustedError) Error() string {
	var sb strings.Builder
	sb.WriteString(ErrNoFormat.Error())
	sb.WriteString(" at ")
	sb.WriteString(e.Span.String())
	for i, err := range e.Errs {
		if i == 0 {
			sb.WriteString(": ")
		} else {
			sb.WriteString("; ")
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

func (e *ExhaustedError) Unwrap() []error { return e.Errs }

func (e *ExhaustedError) Is(target error) bool { return target == ErrNoFormat }

func (e *ExhaustedError) ErrSpan() token.Span { return e.Span }
