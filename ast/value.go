package ast

import (
	"fmt"

	"github.com/signadot/logv/encstr"
	"github.com/signadot/logv/token"
)

type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindField
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindField:
		return "field"
	default:
		return fmt.Sprintf("<kind %d>", k)
	}
}

// IsScalar reports whether values of kind k are leaves.
func (k Kind) IsScalar() bool { return k <= KindString }

// Value is the payload of one tree node. Text holds the number source for
// numbers, the string for strings and the key for fields. Span locates the
// scalar, or the key of a field, in the input.
type Value struct {
	Kind Kind
	Bool bool
	Text encstr.String
	Span token.Span
}

func Null(sp token.Span) Value { return Value{Kind: KindNull, Span: sp} }

func Bool(b bool, sp token.Span) Value { return Value{Kind: KindBool, Bool: b, Span: sp} }

func Number(s string, sp token.Span) Value {
	return Value{Kind: KindNumber, Text: encstr.Raw(s), Span: sp}
}

func String(s encstr.String, sp token.Span) Value {
	return Value{Kind: KindString, Text: s, Span: sp}
}

func Array(sp token.Span) Value { return Value{Kind: KindArray, Span: sp} }

func Object(sp token.Span) Value { return Value{Kind: KindObject, Span: sp} }

func Field(key encstr.String, sp token.Span) Value {
	return Value{Kind: KindField, Text: key, Span: sp}
}

func (v Value) IsScalar() bool    { return v.Kind.IsScalar() }
func (v Value) IsComposite() bool { return !v.Kind.IsScalar() }

// Number returns the source text of a number.
func (v Value) Number() string { return v.Text.Source() }

// AsText returns the textual form of a scalar. Composites yield an empty
// raw string.
func (v Value) AsText() encstr.String {
	switch v.Kind {
	case KindNull:
		return encstr.Raw("null")
	case KindBool:
		if v.Bool {
			return encstr.Raw("true")
		}
		return encstr.Raw("false")
	case KindNumber, KindString:
		return v.Text
	default:
		return encstr.Raw("")
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindNull, KindBool, KindNumber:
		return v.AsText().Source()
	case KindString:
		return "String(" + v.Text.Source() + ")"
	case KindField:
		return "Field(" + v.Text.Source() + ")"
	default:
		return v.Kind.String()
	}
}
