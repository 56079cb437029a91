package logfmt

import (
	"io"

	"github.com/signadot/logv/ast"
	"github.com/signadot/logv/format"
	"github.com/signadot/logv/token"
)

// Parser implements format.Parser for logfmt. Every entry becomes one
// object whose fields each hold a single scalar.
type Parser struct {
	lx  *Lexer
	src string
}

func NewParser(data []byte) *Parser {
	return &Parser{lx: NewLexer(data), src: token.View(data)}
}

func (p *Parser) Reset(data []byte) {
	p.lx.Reset(data)
	p.src = token.View(data)
}

func (p *Parser) Offset() int { return p.lx.Offset() }

func (p *Parser) Seek(off int) { p.lx.Seek(off) }

// ParseEntry parses the next line into b. A failed line is skipped.
func (p *Parser) ParseEntry(b ast.Build) (format.Entry, error) {
	start := p.lx.Offset()
	ent, err := p.parseEntry(b)
	if err != nil && err != io.EOF {
		p.lx.Seek(format.SkipLine(p.lx.data, start))
	}
	return ent, err
}

func (p *Parser) parseEntry(b ast.Build) (format.Entry, error) {
	begin, err := p.lx.Next()
	if err != nil {
		return format.Entry{}, err
	}
	if begin.Type != token.TEntryBegin {
		return format.Entry{}, token.UnexpectedErr(begin)
	}
	obj, err := p.expect(token.TObjectBegin)
	if err != nil {
		return format.Entry{}, err
	}
	if err := ast.BuildComposite(b, ast.Object(obj.Span), p.parseFields); err != nil {
		return format.Entry{}, err
	}
	end, err := p.expect(token.TEntryEnd)
	if err != nil {
		return format.Entry{}, err
	}
	return format.Entry{Span: begin.Span.Union(end.Span)}, nil
}

func (p *Parser) parseFields(b ast.Build) error {
	for {
		tok, err := p.lx.Next()
		if err != nil {
			return err
		}
		switch tok.Type {
		case token.TObjectEnd:
			return nil
		case token.TFieldBegin:
			if err := ast.BuildComposite(b, format.Field(tok, p.src), p.parseValue); err != nil {
				return err
			}
		default:
			return token.UnexpectedErr(tok)
		}
	}
}

func (p *Parser) parseValue(b ast.Build) error {
	tok, err := p.lx.Next()
	if err != nil {
		return err
	}
	if !tok.Type.IsScalar() {
		return token.UnexpectedErr(tok)
	}
	b.AddScalar(format.Scalar(tok, p.src))
	_, err = p.expect(token.TFieldEnd)
	return err
}

func (p *Parser) expect(typ token.Type) (token.Token, error) {
	tok, err := p.lx.Next()
	if err != nil {
		return tok, err
	}
	if tok.Type != typ {
		return tok, token.UnexpectedErr(tok)
	}
	return tok, nil
}
