package token

import (
	"fmt"

	"github.com/signadot/logv/encstr"
)

type Type int

const (
	TEntryBegin Type = iota
	TEntryEnd
	TArrayBegin
	TArrayEnd
	TObjectBegin
	TObjectEnd
	TFieldBegin
	TFieldEnd
	TNull
	TTrue
	TFalse
	TNumber
	TString
)

var typeNames = [...]string{
	TEntryBegin:  "TEntryBegin",
	TEntryEnd:    "TEntryEnd",
	TArrayBegin:  "TArrayBegin",
	TArrayEnd:    "TArrayEnd",
	TObjectBegin: "TObjectBegin",
	TObjectEnd:   "TObjectEnd",
	TFieldBegin:  "TFieldBegin",
	TFieldEnd:    "TFieldEnd",
	TNull:        "TNull",
	TTrue:        "TTrue",
	TFalse:       "TFalse",
	TNumber:      "TNumber",
	TString:      "TString",
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// IsScalar reports whether t is a leaf value.
func (t Type) IsScalar() bool {
	switch t {
	case TNull, TTrue, TFalse, TNumber, TString:
		return true
	}
	return false
}

// Span is a half-open byte range of the input.
type Span struct {
	Start, End int
}

func (s Span) Len() int { return s.End - s.Start }

// Of returns the bytes of d covered by s.
func (s Span) Of(d []byte) []byte { return d[s.Start:s.End] }

// Union returns the smallest span covering s and o.
func (s Span) Union(o Span) Span {
	return Span{Start: min(s.Start, o.Start), End: max(s.End, o.End)}
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Token is one lexical unit. Enc tells how the text of TString and
// TFieldBegin tokens is encoded.
type Token struct {
	Type Type
	Span Span
	Enc  encstr.Encoding
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%s)", t.Type, t.Span)
}

// Text returns t's part of src as an encoded string.
func (t Token) Text(src string) encstr.String {
	s := src[t.Span.Start:t.Span.End]
	if t.Enc == encstr.JSONEncoding {
		return encstr.JSON(s)
	}
	return encstr.Raw(s)
}
