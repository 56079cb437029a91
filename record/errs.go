package record

import "errors"

var (
	ErrNotObject  = errors.New("entry is not an object")
	ErrNoRecord   = errors.New("no record attached to build target")
	ErrBadLevel   = errors.New("bad level")
	ErrBadPattern = errors.New("bad ignore pattern")
)
