package logfmt

import (
	"io"

	"github.com/signadot/logv/encstr"
	"github.com/signadot/logv/token"
)

type mode uint8

const (
	modeRoot mode = iota
	modeKey
	modeValue
)

// keyBytes marks the bytes allowed in keys.
var keyBytes = func() (t [256]bool) {
	for c := 0x21; c < 256; c++ {
		t[c] = true
	}
	for _, c := range []byte("\"='(),;<>[]\\^`{}|\x7f") {
		t[c] = false
	}
	return t
}()

func isDelim(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// Lexer implements format.Lexer for logfmt. It alternates between
// expecting a key and expecting a value.
type Lexer struct {
	data []byte
	pos  int
	mode mode

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
	l.mode = modeRoot
	l.npend = 0
}

func (l *Lexer) Next() (token.Token, error) {
	if l.npend > 0 {
		tok := l.pending[0]
		l.pending[0] = l.pending[1]
		l.npend--
		return tok, nil
	}
	switch l.mode {
	case modeRoot:
		for l.pos < len(l.data) && isDelim(l.data[l.pos]) {
			l.pos++
		}
		if l.pos == len(l.data) {
			return token.Token{}, io.EOF
		}
		l.mode = modeKey
		at := token.Span{Start: l.pos, End: l.pos}
		l.push(token.Token{Type: token.TObjectBegin, Span: at})
		return token.Token{Type: token.TEntryBegin, Span: at}, nil
	case modeKey:
		return l.key()
	default:
		return l.value()
	}
}

func (l *Lexer) key() (token.Token, error) {
	for l.pos < len(l.data) && (l.data[l.pos] == ' ' || l.data[l.pos] == '\t') {
		l.pos++
	}
	if l.pos == len(l.data) || l.data[l.pos] == '\r' || l.data[l.pos] == '\n' {
		at := token.Span{Start: l.pos, End: l.pos}
		l.eol()
		l.mode = modeRoot
		l.push(token.Token{Type: token.TEntryEnd, Span: at})
		return token.Token{Type: token.TObjectEnd, Span: at}, nil
	}
	start := l.pos
	for l.pos < len(l.data) && keyBytes[l.data[l.pos]] {
		l.pos++
	}
	if l.pos == start {
		return token.Token{}, token.ErrorAt(token.ErrExpectedKey, start)
	}
	if l.pos == len(l.data) || l.data[l.pos] != '=' {
		return token.Token{}, token.NewError(token.ErrExpectedKey, token.Span{Start: start, End: l.pos})
	}
	if off := token.ScanUTF8(l.data[start:l.pos]); off >= 0 {
		return token.Token{}, token.ErrorAt(token.ErrInvalidUTF8, start+off)
	}
	key := token.Span{Start: start, End: l.pos}
	l.pos++
	l.mode = modeValue
	return token.Token{Type: token.TFieldBegin, Span: key, Enc: encstr.RawEncoding}, nil
}

func (l *Lexer) eol() {
	if l.pos == len(l.data) {
		return
	}
	if l.data[l.pos] == '\r' {
		l.pos++
		if l.pos < len(l.data) && l.data[l.pos] == '\n' {
			l.pos++
		}
		return
	}
	l.pos++
}

func (l *Lexer) value() (token.Token, error) {
	start := l.pos
	var tok token.Token
	switch {
	case l.pos == len(l.data) || isDelim(l.data[l.pos]):
		tok = token.Token{Type: token.TString, Span: token.Span{Start: start, End: start}}
	case l.data[l.pos] == '"':
		n, err := token.ScanQuoted(l.data[start:])
		if err != nil {
			return token.Token{}, token.ErrorAt(err, start+n)
		}
		l.pos += n
		if l.pos < len(l.data) && !isDelim(l.data[l.pos]) {
			return token.Token{}, token.ErrorAt(token.ErrUnexpectedByte, l.pos)
		}
		tok = token.Token{Type: token.TString, Span: token.Span{Start: start, End: l.pos}, Enc: encstr.JSONEncoding}
	default:
		for l.pos < len(l.data) && l.data[l.pos] > ' ' && l.data[l.pos] != '"' {
			l.pos++
		}
		if l.pos < len(l.data) && !isDelim(l.data[l.pos]) {
			if l.data[l.pos] == '"' {
				return token.Token{}, token.ErrorAt(token.ErrUnexpectedByte, l.pos)
			}
			return token.Token{}, token.ErrorAt(token.ErrControlChar, l.pos)
		}
		if off := token.ScanUTF8(l.data[start:l.pos]); off >= 0 {
			return token.Token{}, token.ErrorAt(token.ErrInvalidUTF8, start+off)
		}
		tok = token.Token{Type: classify(l.data[start:l.pos]), Span: token.Span{Start: start, End: l.pos}}
	}
	l.mode = modeKey
	l.push(token.Token{Type: token.TFieldEnd, Span: tok.Span})
	return tok, nil
}

// classify picks the scalar type of a bare value. Literals and numbers must
// span the whole value; anything else is a raw string.
func classify(v []byte) token.Type {
	switch string(v) {
	case "null":
		return token.TNull
	case "true":
		return token.TTrue
	case "false":
		return token.TFalse
	}
	if c := v[0]; c == '-' || (c >= '0' && c <= '9') {
		if n, _, err := token.ScanNumber(v); err == nil && n == len(v) {
			return token.TNumber
		}
	}
	return token.TString
}

func (l *Lexer) push(tok token.Token) {
	l.pending[l.npend] = tok
	l.npend++
}
