package token

import "unicode/utf8"

// ScanQuoted validates the JSON string literal at the start of d, which
// must begin with '"', and returns its length including both quotes. On
// error the returned offset points at the offending byte.
func ScanQuoted(d []byte) (int, error) {
	n := len(d)
	i := 1
	for i < n {
		c := d[i]
		switch {
		case c == '"':
			return i + 1, nil
		case c == '\\':
			if i+1 >= n {
				return i, ErrUnterminated
			}
			switch d[i+1] {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				i += 2
			case 'u':
				if i+6 > n {
					return i, ErrUnterminated
				}
				if !allHex(d[i+2 : i+6]) {
					return i, ErrBadUnicode
				}
				i += 6
			default:
				return i, ErrBadEscape
			}
		case c < 0x20:
			return i, ErrControlChar
		case c < utf8.RuneSelf:
			i++
		default:
			r, size := utf8.DecodeRune(d[i:])
			if r == utf8.RuneError && size == 1 {
				return i, ErrInvalidUTF8
			}
			i += size
		}
	}
	return n, ErrUnterminated
}

// ScanUTF8 returns the offset of the first byte of d that is not part of
// valid UTF-8, or -1.
func ScanUTF8(d []byte) int {
	for i := 0; i < len(d); {
		if d[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRune(d[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

func allHex(d []byte) bool {
	for _, c := range d {
		if c >= '0' && c <= '9' {
			continue
		}
		if c >= 'a' && c <= 'f' {
			continue
		}
		if c >= 'A' && c <= 'F' {
			continue
		}
		return false
	}
	return true
}
