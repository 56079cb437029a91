package encstr

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

type Encoding uint8

const (
	RawEncoding Encoding = iota
	JSONEncoding
)

func (e Encoding) String() string {
	switch e {
	case RawEncoding:
		return "raw"
	case JSONEncoding:
		return "json"
	default:
		return fmt.Sprintf("<encoding %d>", e)
	}
}

// String is an immutable view of encoded source text.
type String struct {
	enc Encoding
	src string
}

// JSON wraps a double-quoted JSON string literal. The source must already
// have been validated by a lexer; passing anything that is not delimited by
// double quotes is a programming error and panics.
func JSON(src string) String {
	if len(src) < 2 || src[0] != '"' || src[len(src)-1] != '"' {
		panic(fmt.Sprintf("encstr: invalid json string source %q", src))
	}
	return String{enc: JSONEncoding, src: src}
}

// Raw wraps text that needs no decoding.
func Raw(src string) String {
	return String{enc: RawEncoding, src: src}
}

func (s String) Encoding() Encoding { return s.enc }

// Source returns the encoded bytes, including quotes for JSON strings.
func (s String) Source() string { return s.src }

// Content returns the source without JSON delimiters. Escapes are kept.
func (s String) Content() string {
	if s.enc == JSONEncoding {
		return s.src[1 : len(s.src)-1]
	}
	return s.src
}

// IsEmpty reports whether the decoded text is empty.
func (s String) IsEmpty() bool {
	return len(s.Content()) == 0
}

// Equal compares encoded bytes.
func (s String) Equal(o String) bool {
	return s == o
}

// NeedsDecoding reports whether the content contains escapes.
func (s String) NeedsDecoding() bool {
	return s.enc == JSONEncoding && strings.IndexByte(s.Content(), '\\') >= 0
}

// Text returns the decoded text. Escape-free sources are returned without
// allocating.
func (s String) Text() (string, error) {
	if !s.NeedsDecoding() {
		return s.Content(), nil
	}
	b := Builder{buf: make([]byte, 0, len(s.src))}
	if err := s.Decode(&b); err != nil {
		return b.String(), err
	}
	return b.String(), nil
}

// AppendText appends the decoded text to dst.
func (s String) AppendText(dst []byte) ([]byte, error) {
	b := Builder{buf: dst}
	err := s.Decode(&b)
	return b.buf, err
}

func (s String) String() string {
	t, err := s.Text()
	if err != nil {
		return s.src
	}
	return t
}

// Decode feeds every token to h, stopping at the first decoding or handler
// error. Whatever h received before the error is left in place.
func (s String) Decode(h Handler) error {
	ts := s.Tokens()
	for {
		tok, err := ts.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := h.Handle(tok); err != nil {
			return err
		}
	}
}

// Tokens returns a lazy token iterator over s.
func (s String) Tokens() *Tokens {
	return &Tokens{s: s}
}

// Chars returns a lazy decoded rune iterator over s.
func (s String) Chars() *Chars {
	return &Chars{tokens: Tokens{s: s}}
}

// Bytes returns a reader over the decoded UTF-8 bytes of s.
func (s String) Bytes() *Reader {
	return &Reader{tokens: Tokens{s: s}}
}

type TokenKind uint8

const (
	// Sequence is a run of bytes that appear verbatim in the decoded text.
	Sequence TokenKind = iota
	// Char is one decoded character produced by an escape.
	Char
)

type Token struct {
	Kind TokenKind
	Seq  string
	Char rune
}

func SequenceToken(s string) Token { return Token{Kind: Sequence, Seq: s} }
func CharToken(r rune) Token       { return Token{Kind: Char, Char: r} }

func (t Token) String() string {
	if t.Kind == Char {
		return fmt.Sprintf("Char(%q)", t.Char)
	}
	return fmt.Sprintf("Sequence(%q)", t.Seq)
}

// Tokens iterates over the tokens of a String. Errors are sticky: once Next
// has reported a decoding error it keeps reporting it.
type Tokens struct {
	s   String
	pos int
	err error
}

// Next returns the next token or io.EOF once the string is exhausted.
func (t *Tokens) Next() (Token, error) {
	if t.err != nil {
		return Token{}, t.err
	}
	c := t.s.Content()
	if t.pos >= len(c) {
		return Token{}, io.EOF
	}
	if t.s.enc == RawEncoding {
		t.pos = len(c)
		return SequenceToken(c), nil
	}
	if c[t.pos] != '\\' {
		n := strings.IndexByte(c[t.pos:], '\\')
		if n < 0 {
			n = len(c) - t.pos
		}
		seq := c[t.pos : t.pos+n]
		t.pos += n
		return SequenceToken(seq), nil
	}
	r, n, err := unescape(c, t.pos)
	if err != nil {
		t.err = err
		return Token{}, err
	}
	t.pos += n
	return CharToken(r), nil
}

// unescape decodes the escape starting at c[i] == '\\' and returns the
// rune and the number of source bytes consumed. Offsets in errors account
// for the opening quote.
func unescape(c string, i int) (rune, int, error) {
	if i+1 >= len(c) {
		return 0, 0, decodeErr(ErrInvalidEscape, i+1)
	}
	switch c[i+1] {
	case '"':
		return '"', 2, nil
	case '\\':
		return '\\', 2, nil
	case '/':
		return '/', 2, nil
	case 'b':
		return '\b', 2, nil
	case 'f':
		return '\f', 2, nil
	case 'n':
		return '\n', 2, nil
	case 'r':
		return '\r', 2, nil
	case 't':
		return '\t', 2, nil
	case 'u':
	default:
		return 0, 0, decodeErr(ErrInvalidEscape, i+1)
	}
	r, err := hex4(c, i+2)
	if err != nil {
		return 0, 0, err
	}
	switch {
	case r >= 0xdc00 && r <= 0xdfff:
		return 0, 0, decodeErr(ErrInvalidUnicodeCodePoint, i+1)
	case r < 0xd800 || r > 0xdbff:
		return r, 6, nil
	}
	// leading surrogate, a trailing one must follow
	if i+7 >= len(c) || c[i+6] != '\\' || c[i+7] != 'u' {
		return 0, 0, decodeErr(ErrLoneLeadingSurrogate, i+1)
	}
	lo, err := hex4(c, i+8)
	if err != nil {
		return 0, 0, err
	}
	if lo < 0xdc00 || lo > 0xdfff {
		return 0, 0, decodeErr(ErrInvalidUnicodeCodePoint, i+7)
	}
	return 0x10000 + (r-0xd800)<<10 + (lo - 0xdc00), 12, nil
}

func hex4(c string, i int) (rune, error) {
	if i+4 > len(c) {
		return 0, decodeErr(ErrUnexpectedEndOfHexEscape, len(c)+1)
	}
	var r rune
	for j := i; j < i+4; j++ {
		var v byte
		switch b := c[j]; {
		case b >= '0' && b <= '9':
			v = b - '0'
		case b >= 'a' && b <= 'f':
			v = b - 'a' + 10
		case b >= 'A' && b <= 'F':
			v = b - 'A' + 10
		default:
			return 0, decodeErr(ErrInvalidEscape, j+1)
		}
		r = r<<4 | rune(v)
	}
	return r, nil
}

// Chars yields decoded runes.
type Chars struct {
	tokens Tokens
	seq    string
}

// Next returns the next rune or io.EOF.
func (c *Chars) Next() (rune, error) {
	for len(c.seq) == 0 {
		tok, err := c.tokens.Next()
		if err != nil {
			return 0, err
		}
		if tok.Kind == Char {
			return tok.Char, nil
		}
		c.seq = tok.Seq
	}
	r, n := utf8.DecodeRuneInString(c.seq)
	c.seq = c.seq[n:]
	return r, nil
}

// Reader yields decoded bytes. It implements io.Reader and io.ByteReader.
type Reader struct {
	tokens Tokens
	seq    string
	tmp    [utf8.UTFMax]byte
	pend   []byte
}

func (r *Reader) fill() error {
	for len(r.seq) == 0 && len(r.pend) == 0 {
		tok, err := r.tokens.Next()
		if err != nil {
			return err
		}
		if tok.Kind == Char {
			r.pend = utf8.AppendRune(r.tmp[:0], tok.Char)
			continue
		}
		r.seq = tok.Seq
	}
	return nil
}

func (r *Reader) ReadByte() (byte, error) {
	if err := r.fill(); err != nil {
		return 0, err
	}
	if len(r.pend) > 0 {
		b := r.pend[0]
		r.pend = r.pend[1:]
		return b, nil
	}
	b := r.seq[0]
	r.seq = r.seq[1:]
	return b, nil
}

func (r *Reader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if err := r.fill(); err != nil {
			if n > 0 && err == io.EOF {
				return n, nil
			}
			return n, err
		}
		if len(r.pend) > 0 {
			k := copy(p[n:], r.pend)
			r.pend = r.pend[k:]
			n += k
			continue
		}
		k := copy(p[n:], r.seq)
		r.seq = r.seq[k:]
		n += k
	}
	return n, nil
}
