package encstr

import "unicode/utf8"

// Handler consumes decoded tokens.
type Handler interface {
	Handle(Token) error
}

// Builder appends decoded text to a byte buffer.
type Builder struct {
	buf []byte
}

func NewBuilder(capacity int) *Builder {
	return &Builder{buf: make([]byte, 0, capacity)}
}

func (b *Builder) Handle(t Token) error {
	if t.Kind == Char {
		b.buf = utf8.AppendRune(b.buf, t.Char)
		return nil
	}
	b.buf = append(b.buf, t.Seq...)
	return nil
}

func (b *Builder) Bytes() []byte  { return b.buf }
func (b *Builder) String() string { return string(b.buf) }
func (b *Builder) Len() int       { return len(b.buf) }
func (b *Builder) Reset()         { b.buf = b.buf[:0] }

// Ignorer drops every token. Decoding into an Ignorer only validates.
type Ignorer struct{}

func (Ignorer) Handle(Token) error { return nil }
