package jsonfmt

import (
	"io"

	"github.com/signadot/logv/ast"
	"github.com/signadot/logv/format"
	"github.com/signadot/logv/token"
)

// Parser implements format.Parser for JSON.
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

// ParseEntry parses the next top-level value into b. After an error the
// parser resumes at the line following the failed entry's first byte.
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
	tok, err := p.next()
	if err != nil {
		return format.Entry{}, err
	}
	if err := p.parseValue(b, tok); err != nil {
		return format.Entry{}, err
	}
	end, err := p.next()
	if err != nil {
		return format.Entry{}, err
	}
	if end.Type != token.TEntryEnd {
		return format.Entry{}, token.UnexpectedErr(end)
	}
	return format.Entry{Span: begin.Span.Union(end.Span)}, nil
}

// next is Next with io.EOF turned into ErrUnexpectedEOF: inside an entry
// the input cannot end.
func (p *Parser) next() (token.Token, error) {
	tok, err := p.lx.Next()
	if err == io.EOF {
		off := p.lx.Offset()
		return tok, token.NewError(token.ErrUnexpectedEOF, token.Span{Start: off, End: off})
	}
	return tok, err
}

func (p *Parser) parseValue(b ast.Build, tok token.Token) error {
	switch tok.Type {
	case token.TObjectBegin:
		return ast.BuildComposite(b, ast.Object(tok.Span), p.parseFields)
	case token.TArrayBegin:
		return ast.BuildComposite(b, ast.Array(tok.Span), p.parseElems)
	default:
		if !tok.Type.IsScalar() {
			return token.UnexpectedErr(tok)
		}
		b.AddScalar(format.Scalar(tok, p.src))
		return nil
	}
}

func (p *Parser) parseFields(b ast.Build) error {
	for {
		tok, err := p.next()
		if err != nil {
			return err
		}
		switch tok.Type {
		case token.TObjectEnd:
			return nil
		case token.TFieldBegin:
			if err := ast.BuildComposite(b, format.Field(tok, p.src), p.parseFieldValue); err != nil {
				return err
			}
		default:
			return token.UnexpectedErr(tok)
		}
	}
}

func (p *Parser) parseFieldValue(b ast.Build) error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if err := p.parseValue(b, tok); err != nil {
		return err
	}
	end, err := p.next()
	if err != nil {
		return err
	}
	if end.Type != token.TFieldEnd {
		return token.UnexpectedErr(end)
	}
	return nil
}

func (p *Parser) parseElems(b ast.Build) error {
	for {
		tok, err := p.next()
		if err != nil {
			return err
		}
		if tok.Type == token.TArrayEnd {
			return nil
		}
		if err := p.parseValue(b, tok); err != nil {
			return err
		}
	}
}
