package token

import "unsafe"

// View returns a string sharing d's memory. The caller must not modify d
// while the string or anything sliced from it is in use.
func View(d []byte) string {
	if len(d) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(d), len(d))
}
