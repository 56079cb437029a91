package format

import "bytes"

// SkipLine returns the offset just past the line holding the first
// non-blank byte at or after off. Parsers use it to resume after an entry
// that failed to parse.
func SkipLine(data []byte, off int) int {
	for off < len(data) && isSpace(data[off]) {
		off++
	}
	i := bytes.IndexByte(data[off:], '\n')
	if i < 0 {
		return len(data)
	}
	return off + i + 1
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
