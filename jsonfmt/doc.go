// Package jsonfmt lexes and parses JSON log entries.
//
// The lexer tracks nesting in a 128-bit stack and wraps each top-level
// value in TEntryBegin/TEntryEnd, so a buffer may hold any number of
// whitespace-separated entries. Object members are reported as
// TFieldBegin (whose span is the quoted key) and TFieldEnd around the
// member value.
package jsonfmt
