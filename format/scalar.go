package format

import (
	"github.com/signadot/logv/ast"
	"github.com/signadot/logv/token"
)

// Scalar converts a scalar token of src into an AST value.
func Scalar(tok token.Token, src string) ast.Value {
	switch tok.Type {
	case token.TNull:
		return ast.Null(tok.Span)
	case token.TTrue:
		return ast.Bool(true, tok.Span)
	case token.TFalse:
		return ast.Bool(false, tok.Span)
	case token.TNumber:
		return ast.Number(src[tok.Span.Start:tok.Span.End], tok.Span)
	default:
		return ast.String(tok.Text(src), tok.Span)
	}
}

// Field converts a TFieldBegin token of src into a field value.
func Field(tok token.Token, src string) ast.Value {
	return ast.Field(tok.Text(src), tok.Span)
}
