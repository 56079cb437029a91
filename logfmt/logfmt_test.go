package logfmt

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/logv/ast"
	"github.com/signadot/logv/encstr"
	"github.com/signadot/logv/token"
)

func sp(s, e int) token.Span { return token.Span{Start: s, End: e} }

func lexAll(in string) ([]token.Token, error) {
	lx := NewLexer([]byte(in))
	var toks []token.Token
	for {
		tok, err := lx.Next()
		if err == io.EOF {
			return toks, nil
		}
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
	}
}

func TestLexPairs(t *testing.T) {
	toks, err := lexAll(`a=1 b="x y" c= d=true`)
	if err != nil {
		t.Fatal(err)
	}
	want := []token.Token{
		{Type: token.TEntryBegin, Span: sp(0, 0)},
		{Type: token.TObjectBegin, Span: sp(0, 0)},
		{Type: token.TFieldBegin, Span: sp(0, 1)},
		{Type: token.TNumber, Span: sp(2, 3)},
		{Type: token.TFieldEnd, Span: sp(2, 3)},
		{Type: token.TFieldBegin, Span: sp(4, 5)},
		{Type: token.TString, Span: sp(6, 11), Enc: encstr.JSONEncoding},
		{Type: token.TFieldEnd, Span: sp(6, 11)},
		{Type: token.TFieldBegin, Span: sp(12, 13)},
		{Type: token.TString, Span: sp(14, 14)},
		{Type: token.TFieldEnd, Span: sp(14, 14)},
		{Type: token.TFieldBegin, Span: sp(15, 16)},
		{Type: token.TTrue, Span: sp(17, 21)},
		{Type: token.TFieldEnd, Span: sp(17, 21)},
		{Type: token.TObjectEnd, Span: sp(21, 21)},
		{Type: token.TEntryEnd, Span: sp(21, 21)},
	}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Error(diff)
	}
}

func TestClassify(t *testing.T) {
	cases := map[string]token.Type{
		"null":   token.TNull,
		"nullx":  token.TString,
		"false":  token.TFalse,
		"-1.5e3": token.TNumber,
		"12ab":   token.TString,
		"01":     token.TString,
		"a=b":    token.TString,
		"-":      token.TString,
	}
	for in, want := range cases {
		if got := classify([]byte(in)); got != want {
			t.Errorf("%q: got %s, want %s", in, got, want)
		}
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		in   string
		err  error
		span token.Span
	}{
		{`hello world`, token.ErrExpectedKey, sp(0, 5)},
		{`{"a":1}`, token.ErrExpectedKey, sp(0, 1)},
		{`a="x`, token.ErrUnterminated, sp(4, 5)},
		{`a="x"y`, token.ErrUnexpectedByte, sp(5, 6)},
		{`a=x"y"`, token.ErrUnexpectedByte, sp(3, 4)},
		{"a=\"x\xff\"", token.ErrInvalidUTF8, sp(4, 5)},
		{"a=x\xffy", token.ErrInvalidUTF8, sp(3, 4)},
		{"k\xff=1", token.ErrInvalidUTF8, sp(1, 2)},
	}
	for _, c := range cases {
		_, err := lexAll(c.in)
		if !errors.Is(err, c.err) {
			t.Errorf("%q: got %v, want %v", c.in, err, c.err)
			continue
		}
		if got, _ := token.SpanOf(err); got != c.span {
			t.Errorf("%q: span %v, want %v", c.in, got, c.span)
		}
	}
}

type field struct {
	Key   string
	Kind  ast.Kind
	Value string
	KeyAt token.Span
	ValAt token.Span
}

func fields(c *ast.Container, obj ast.Node) []field {
	var out []field
	for f := range obj.Children().All() {
		v := c.Node(f.Index() + 1).Value()
		key, _ := f.Value().Text.Text()
		val, _ := v.AsText().Text()
		out = append(out, field{key, v.Kind, val, f.Value().Span, v.Span})
	}
	return out
}

func TestParseSpans(t *testing.T) {
	c := ast.NewContainer(0)
	p := NewParser([]byte("a=1 b=2 c=3"))
	if _, err := p.ParseEntry(c.Metaroot()); err != nil {
		t.Fatal(err)
	}
	if c.Roots().Len() != 1 || c.Node(0).Value().Kind != ast.KindObject {
		t.Fatalf("roots %d", c.Roots().Len())
	}
	want := []field{
		{"a", ast.KindNumber, "1", sp(0, 1), sp(2, 3)},
		{"b", ast.KindNumber, "2", sp(4, 5), sp(6, 7)},
		{"c", ast.KindNumber, "3", sp(8, 9), sp(10, 11)},
	}
	if diff := cmp.Diff(want, fields(c, c.Node(0))); diff != "" {
		t.Error(diff)
	}
}

func TestParseLines(t *testing.T) {
	c := ast.NewContainer(0)
	p := NewParser([]byte("msg=\"hi\\tthere\" lvl=info\r\n\n  bad line\nk=v=w\n"))
	ent, err := p.ParseEntry(c.Metaroot())
	if err != nil {
		t.Fatal(err)
	}
	if ent.Span != sp(0, 24) {
		t.Errorf("entry span %v", ent.Span)
	}
	got := fields(c, c.Node(0))
	if got[0].Value != "hi\tthere" || got[1].Value != "info" {
		t.Errorf("got %+v", got)
	}
	if _, err := p.ParseEntry(ast.Discarder{}); !errors.Is(err, token.ErrExpectedKey) {
		t.Fatalf("got %v", err)
	}
	c.Clear()
	if _, err := p.ParseEntry(c.Metaroot()); err != nil {
		t.Fatal(err)
	}
	if got := fields(c, c.Node(0)); len(got) != 1 || got[0].Value != "v=w" {
		t.Errorf("got %+v", got)
	}
	if _, err := p.ParseEntry(c.Metaroot()); err != io.EOF {
		t.Errorf("got %v, want EOF", err)
	}
}
