package jsonfmt

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/logv/ast"
	"github.com/signadot/logv/encstr"
	"github.com/signadot/logv/token"
)

func lexAll(t *testing.T, in string) ([]token.Token, error) {
	t.Helper()
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

func sp(s, e int) token.Span { return token.Span{Start: s, End: e} }

func TestLexTrivialObject(t *testing.T) {
	toks, err := lexAll(t, `{"a":{"b":true}}`)
	if err != nil {
		t.Fatal(err)
	}
	want := []token.Token{
		{Type: token.TEntryBegin, Span: sp(0, 1)},
		{Type: token.TObjectBegin, Span: sp(0, 1)},
		{Type: token.TFieldBegin, Span: sp(1, 4), Enc: encstr.JSONEncoding},
		{Type: token.TObjectBegin, Span: sp(5, 6)},
		{Type: token.TFieldBegin, Span: sp(6, 9), Enc: encstr.JSONEncoding},
		{Type: token.TTrue, Span: sp(10, 14)},
		{Type: token.TFieldEnd, Span: sp(10, 14)},
		{Type: token.TObjectEnd, Span: sp(14, 15)},
		{Type: token.TFieldEnd, Span: sp(14, 15)},
		{Type: token.TObjectEnd, Span: sp(15, 16)},
		{Type: token.TEntryEnd, Span: sp(15, 16)},
	}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Error(diff)
	}
}

func types(toks []token.Token) []token.Type {
	ts := make([]token.Type, len(toks))
	for i, tok := range toks {
		ts[i] = tok.Type
	}
	return ts
}

func TestLexArrayAndEntries(t *testing.T) {
	toks, err := lexAll(t, "{\"d\":[\"e\",42,null]}\n{}")
	if err != nil {
		t.Fatal(err)
	}
	want := []token.Type{
		token.TEntryBegin, token.TObjectBegin,
		token.TFieldBegin, token.TArrayBegin, token.TString, token.TNumber, token.TNull, token.TArrayEnd, token.TFieldEnd,
		token.TObjectEnd, token.TEntryEnd,
		token.TEntryBegin, token.TObjectBegin, token.TObjectEnd, token.TEntryEnd,
	}
	if diff := cmp.Diff(want, types(toks)); diff != "" {
		t.Error(diff)
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		in   string
		err  error
		span token.Span
	}{
		{`{"a":1,}`, token.ErrUnexpectedToken, sp(7, 8)},
		{`{"a" 1}`, token.ErrUnexpectedToken, sp(5, 6)},
		{`{"a":1]`, token.ErrUnmatched, sp(6, 7)},
		{`{"a":tru}`, token.ErrLiteral, sp(5, 6)},
		{`{"a":01}`, token.ErrNumberLeadingZero, sp(6, 7)},
		{`{"a":`, token.ErrUnexpectedEOF, sp(5, 5)},
		{`{1:2}`, token.ErrExpectedKey, sp(1, 2)},
		{`k=v`, token.ErrUnexpectedByte, sp(0, 1)},
		{"{\"a\":\"\xff\"}", token.ErrInvalidUTF8, sp(6, 7)},
		{"{\"\xff\":1}", token.ErrInvalidUTF8, sp(2, 3)},
		{`"s"`, token.ErrUnexpectedToken, sp(0, 3)},
		{strings.Repeat("[", MaxDepth+1), token.ErrDepthLimit, sp(MaxDepth, MaxDepth+1)},
	}
	for _, c := range cases {
		_, err := lexAll(t, c.in)
		if !errors.Is(err, c.err) {
			t.Errorf("%q: got %v, want %v", c.in, err, c.err)
			continue
		}
		if got, _ := token.SpanOf(err); got != c.span {
			t.Errorf("%q: span %v, want %v", c.in, got, c.span)
		}
	}
}

func TestLexSeek(t *testing.T) {
	in := `{"a":1} {"b":2}`
	lx := NewLexer([]byte(in))
	lx.Next()
	lx.Next()
	lx.Seek(8)
	tok, err := lx.Next()
	if err != nil || tok.Type != token.TEntryBegin || tok.Span.Start != 8 {
		t.Errorf("got %v %v", tok, err)
	}
}

type node struct {
	Kind ast.Kind
	Text string
	Len  int
}

func dump(c *ast.Container) []node {
	var out []node
	for n := range c.Nodes().All() {
		v := n.Value()
		txt, _ := v.AsText().Text()
		if v.Kind == ast.KindField {
			txt, _ = v.Text.Text()
		}
		out = append(out, node{v.Kind, txt, n.Len()})
	}
	return out
}

func TestParseNested(t *testing.T) {
	c := ast.NewContainer(0)
	p := NewParser([]byte(`{"a":{"b":true}}`))
	ent, err := p.ParseEntry(c.Metaroot())
	if err != nil {
		t.Fatal(err)
	}
	if ent.Span != sp(0, 16) {
		t.Errorf("entry span %v", ent.Span)
	}
	want := []node{
		{ast.KindObject, "", 5},
		{ast.KindField, "a", 4},
		{ast.KindObject, "", 3},
		{ast.KindField, "b", 2},
		{ast.KindBool, "true", 1},
	}
	if diff := cmp.Diff(want, dump(c)); diff != "" {
		t.Error(diff)
	}
	if c.Roots().Len() != 1 {
		t.Errorf("roots %d", c.Roots().Len())
	}
	if _, err := p.ParseEntry(c.Metaroot()); err != io.EOF {
		t.Errorf("got %v, want EOF", err)
	}
}

func TestParseEscapes(t *testing.T) {
	c := ast.NewContainer(0)
	p := NewParser([]byte(`{"msg":"a\"b","n":[1.5,-2,false]}`))
	if _, err := p.ParseEntry(c.Metaroot()); err != nil {
		t.Fatal(err)
	}
	want := []node{
		{ast.KindObject, "", 8},
		{ast.KindField, "msg", 2},
		{ast.KindString, `a"b`, 1},
		{ast.KindField, "n", 5},
		{ast.KindArray, "", 4},
		{ast.KindNumber, "1.5", 1},
		{ast.KindNumber, "-2", 1},
		{ast.KindBool, "false", 1},
	}
	if diff := cmp.Diff(want, dump(c)); diff != "" {
		t.Error(diff)
	}
}

func TestParseRecoversAtNextLine(t *testing.T) {
	c := ast.NewContainer(0)
	p := NewParser([]byte("{\"a\":}\n{\"b\":null}\n"))
	if _, err := p.ParseEntry(c.Metaroot()); !errors.Is(err, token.ErrUnexpectedToken) {
		t.Fatalf("got %v", err)
	}
	c.Clear()
	ent, err := p.ParseEntry(c.Metaroot())
	if err != nil {
		t.Fatal(err)
	}
	if ent.Span != sp(7, 17) || c.Len() != 3 {
		t.Errorf("span %v len %d", ent.Span, c.Len())
	}
}

// skipper declines every object it is offered.
type skipper struct{ ast.Build }

func (s skipper) AddComposite(v ast.Value, f func(ast.Build) error) error {
	if v.Kind == ast.KindObject {
		return nil
	}
	return s.Build.AddComposite(v, func(b ast.Build) error { return f(skipper{b}) })
}

func TestParseDeclinedComposite(t *testing.T) {
	c := ast.NewContainer(0)
	p := NewParser([]byte(`[{"x":[1,{"y":2}]},3]`))
	if _, err := p.ParseEntry(skipper{c.Metaroot()}); err != nil {
		t.Fatal(err)
	}
	want := []node{
		{ast.KindArray, "", 2},
		{ast.KindNumber, "3", 1},
	}
	if diff := cmp.Diff(want, dump(c)); diff != "" {
		t.Error(diff)
	}
}
