package jsonfmt

import (
	"bytes"
	"io"

	"github.com/signadot/logv/encstr"
	"github.com/signadot/logv/token"
)

type context uint8

const (
	ctxRoot context = iota
	ctxArrayBegin
	ctxArrayDelimiter
	ctxArrayNext
	ctxObjectBegin
	ctxObjectDelimiter
	ctxObjectNext
	ctxFieldSeparator
	ctxFieldValue
	ctxFieldEnd
)

// Lexer implements format.Lexer for JSON.
type Lexer struct {
	data  []byte
	pos   int
	ctx   context
	stack bitStack
	// span of the last value, reported by the TFieldEnd that follows it
	last token.Span

	pending [2]token.Token
	npend   int
}

func NewLexer(data []byte) *Lexer {
	return &Lexer{data: data}
}

func (l *Lexer) Reset(data []byte) {
	l.data = data
	l.Seek(0)
}

func (l *Lexer) Offset() int { return l.pos }

func (l *Lexer) Seek(off int) {
	l.pos = off
	l.ctx = ctxRoot
	l.stack.reset()
	l.npend = 0
}

// Depth returns the number of open arrays and objects.
func (l *Lexer) Depth() int { return l.stack.len() }

func (l *Lexer) Next() (token.Token, error) {
	if l.npend > 0 {
		tok := l.pending[0]
		l.pending[0] = l.pending[1]
		l.npend--
		return tok, nil
	}
	if l.ctx == ctxFieldEnd {
		l.ctx = ctxObjectDelimiter
		return token.Token{Type: token.TFieldEnd, Span: l.last}, nil
	}
	for {
		l.skipSpace()
		if l.pos == len(l.data) {
			if l.ctx == ctxRoot {
				return token.Token{}, io.EOF
			}
			return token.Token{}, token.NewError(token.ErrUnexpectedEOF, token.Span{Start: l.pos, End: l.pos})
		}
		start := l.pos
		switch c := l.data[start]; c {
		case ',':
			switch l.ctx {
			case ctxArrayDelimiter:
				l.ctx = ctxArrayNext
			case ctxObjectDelimiter:
				l.ctx = ctxObjectNext
			default:
				return l.unexpected(start, 1)
			}
			l.pos++
		case ':':
			if l.ctx != ctxFieldSeparator {
				return l.unexpected(start, 1)
			}
			l.ctx = ctxFieldValue
			l.pos++
		case '{':
			return l.open(false, start)
		case '[':
			return l.open(true, start)
		case '}':
			return l.close(false, start)
		case ']':
			return l.close(true, start)
		case '"':
			n, err := token.ScanQuoted(l.data[start:])
			if err != nil {
				return token.Token{}, token.ErrorAt(err, start+n)
			}
			l.pos += n
			return l.scalar(token.Token{Type: token.TString, Span: token.Span{Start: start, End: l.pos}, Enc: encstr.JSONEncoding})
		case 't':
			return l.literal(start, "true", token.TTrue)
		case 'f':
			return l.literal(start, "false", token.TFalse)
		case 'n':
			return l.literal(start, "null", token.TNull)
		default:
			if c != '-' && (c < '0' || c > '9') {
				return token.Token{}, token.ErrorAt(token.ErrUnexpectedByte, start)
			}
			n, _, err := token.ScanNumber(l.data[start:])
			if err != nil {
				return token.Token{}, token.ErrorAt(err, start+n)
			}
			l.pos += n
			return l.scalar(token.Token{Type: token.TNumber, Span: token.Span{Start: start, End: l.pos}})
		}
	}
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.data) {
		switch l.data[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.pos++
		default:
			return
		}
	}
}

func (l *Lexer) unexpected(start, n int) (token.Token, error) {
	return token.Token{}, token.NewError(token.ErrUnexpectedToken, token.Span{Start: start, End: start + n})
}

func (l *Lexer) literal(start int, lit string, typ token.Type) (token.Token, error) {
	if !bytes.HasPrefix(l.data[start:], []byte(lit)) {
		return token.Token{}, token.ErrorAt(token.ErrLiteral, start)
	}
	l.pos += len(lit)
	return l.scalar(token.Token{Type: typ, Span: token.Span{Start: start, End: l.pos}})
}

func (l *Lexer) scalar(tok token.Token) (token.Token, error) {
	switch l.ctx {
	case ctxArrayBegin, ctxArrayNext:
		l.ctx = ctxArrayDelimiter
		return tok, nil
	case ctxObjectBegin, ctxObjectNext:
		if tok.Type != token.TString {
			return token.Token{}, token.NewError(token.ErrExpectedKey, tok.Span)
		}
		l.ctx = ctxFieldSeparator
		tok.Type = token.TFieldBegin
		return tok, nil
	case ctxFieldValue:
		l.ctx = ctxFieldEnd
		l.last = tok.Span
		return tok, nil
	default:
		return token.Token{}, token.NewError(token.ErrUnexpectedToken, tok.Span)
	}
}

func (l *Lexer) open(array bool, start int) (token.Token, error) {
	switch l.ctx {
	case ctxRoot, ctxArrayBegin, ctxArrayNext, ctxFieldValue:
	default:
		return l.unexpected(start, 1)
	}
	if !l.stack.push(array) {
		return token.Token{}, token.ErrorAt(token.ErrDepthLimit, start)
	}
	root := l.ctx == ctxRoot
	l.pos++
	tok := token.Token{Type: token.TObjectBegin, Span: token.Span{Start: start, End: l.pos}}
	l.ctx = ctxObjectBegin
	if array {
		tok.Type = token.TArrayBegin
		l.ctx = ctxArrayBegin
	}
	if root {
		l.push(tok)
		return token.Token{Type: token.TEntryBegin, Span: tok.Span}, nil
	}
	return tok, nil
}

func (l *Lexer) close(array bool, start int) (token.Token, error) {
	if array {
		if l.ctx != ctxArrayBegin && l.ctx != ctxArrayDelimiter {
			return l.closeMismatch(start)
		}
	} else if l.ctx != ctxObjectBegin && l.ctx != ctxObjectDelimiter {
		return l.closeMismatch(start)
	}
	l.stack.pop()
	l.pos++
	tok := token.Token{Type: token.TObjectEnd, Span: token.Span{Start: start, End: l.pos}}
	if array {
		tok.Type = token.TArrayEnd
	}
	l.last = tok.Span
	outer, ok := l.stack.peek()
	switch {
	case !ok:
		l.ctx = ctxRoot
		l.push(token.Token{Type: token.TEntryEnd, Span: tok.Span})
	case outer:
		l.ctx = ctxArrayDelimiter
	default:
		l.ctx = ctxFieldEnd
	}
	return tok, nil
}

// closeMismatch reports a closing bracket that does not fit the context:
// ErrUnmatched when it closes the wrong kind of composite.
func (l *Lexer) closeMismatch(start int) (token.Token, error) {
	if _, ok := l.stack.peek(); ok {
		switch l.ctx {
		case ctxArrayBegin, ctxArrayDelimiter, ctxObjectBegin, ctxObjectDelimiter:
			return token.Token{}, token.ErrorAt(token.ErrUnmatched, start)
		}
	}
	return l.unexpected(start, 1)
}

func (l *Lexer) push(tok token.Token) {
	l.pending[l.npend] = tok
	l.npend++
}
