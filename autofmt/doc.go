// Package autofmt detects the format of log entries among a small ordered
// list of candidates.
//
// The first candidate is tried first. When it fails on an entry, the entry
// is retried from its start with each remaining candidate in order, and the
// one that succeeds becomes the first to try for the next entry. Detection
// is therefore paid once per change of format, not once per entry.
//
// Both a Lexer and a Parser are provided. The Lexer rotates at token level:
// after a rotation it emits TEntryBegin again and consumers drop what they
// received since the previous TEntryBegin. The Parser rotates at grammar
// level and rolls its target back to a checkpoint between attempts.
package autofmt
