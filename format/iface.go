package format

import (
	"github.com/signadot/logv/ast"
	"github.com/signadot/logv/token"
)

// Lexer produces tokens from a byte buffer. Next returns io.EOF once the
// buffer holds no further entries.
type Lexer interface {
	Next() (token.Token, error)
	// Offset is the position of the next unread byte.
	Offset() int
	// Seek repositions the lexer at an entry boundary.
	Seek(off int)
	Reset(data []byte)
}

// Parser builds entries. ParseEntry returns io.EOF when no entry remains.
// On error the target may hold a partially built entry; callers roll it
// back using a checkpoint taken before the call.
type Parser interface {
	ParseEntry(b ast.Build) (Entry, error)
	Offset() int
	Seek(off int)
	Reset(data []byte)
}

// Entry describes one parsed entry.
type Entry struct {
	Span token.Span
}
