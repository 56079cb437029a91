// Package token defines the token vocabulary shared by the log format
// lexers, along with spans, lexical errors and the scanners for the
// number and quoted-string grammars that several formats have in common.
//
// Every format lexes an input into the same sequence: each entry is
// bracketed by [TEntryBegin] and [TEntryEnd], composites by their begin/end
// pairs, and a field by [TFieldBegin] (whose span is the key) and
// [TFieldEnd] around exactly one value.
package token
