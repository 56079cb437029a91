// Package encstr provides strings that are still in their source encoding.
//
// A [String] wraps a slice of the original input without copying it and
// defers escape decoding until the value is consumed. Consumers either pull
// [Token]s one at a time with [String.Tokens] or push them into a [Handler]
// with [String.Decode]:
//
//	s := encstr.JSON(`"hello, \"world\"!"`)
//	var b encstr.Builder
//	if err := s.Decode(&b); err != nil {
//	    return err
//	}
//	fmt.Println(b.String()) // hello, "world"!
//
// Two encodings exist. [JSONEncoding] sources include the surrounding
// double quotes and may contain backslash escapes. [RawEncoding] sources
// are taken verbatim.
//
// Equality of two Strings compares the encoded bytes, not the decoded
// text, so String values can be used directly as map keys.
package encstr
