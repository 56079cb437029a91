// Package logfmt lexes and parses logfmt entries: one entry per line, made
// of space-separated key=value pairs.
//
// Values are null, true, false, numbers, JSON-quoted strings or bare
// tokens running up to the next space. A key followed directly by a
// delimiter has the empty string as its value. Each line is reported as one
// object.
package logfmt
