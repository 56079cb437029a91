// Package format names the supported log entry encodings and the lexer and
// parser contracts every encoding implements.
//
// A Lexer turns bytes into the token sequence shared by all formats:
//
//	TEntryBegin ... TEntryEnd
//
// around each entry, with TObjectBegin/TObjectEnd, TArrayBegin/TArrayEnd and
// TFieldBegin/TFieldEnd bracketing composites and scalar tokens between
// them. A Parser drives an ast.Build from such a sequence, one entry per
// ParseEntry call.
package format
