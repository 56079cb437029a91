package record

import (
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/signadot/logv/settings"
)

// DefaultMaxDepth bounds the nesting of arrays and objects kept in a
// record's container. Deeper composites are replaced by a placeholder.
const DefaultMaxDepth = 64

// Placeholder is the string stored in place of an over-deep composite.
const Placeholder = "..."

type FieldKind uint8

const (
	kindNone FieldKind = iota
	KindTime
	KindLevel
	KindMessage
	KindLogger
	KindCaller
	KindCallerFile
	KindCallerLine
	numKinds
)

func (k FieldKind) String() string {
	switch k {
	case KindTime:
		return "time"
	case KindLevel:
		return "level"
	case KindMessage:
		return "message"
	case KindLogger:
		return "logger"
	case KindCaller:
		return "caller"
	case KindCallerFile:
		return "caller-file"
	case KindCallerLine:
		return "caller-line"
	default:
		return "none"
	}
}

// entry is what a field name means within one block.
type entry struct {
	kind     FieldKind
	priority int
	// variant is the level variant of a KindLevel entry.
	variant int
	// nested is the block for the members of an object value, or -1.
	nested int
}

var noEntry = entry{nested: -1}

// block maps the field names of one object level to their entries. Block 0
// is the root object.
type block map[string]entry

type levelMap struct {
	values     map[string]Level
	def        Level
	hasDefault bool
}

// Settings is the compiled form of settings.Settings. It is immutable once
// built and may be shared between goroutines.
type Settings struct {
	blocks   []block
	levels   []levelMap
	ignore   []string
	unit     settings.UnixUnit
	maxDepth int
}

// NewSettings compiles s. Dotted names are split at every dot, so "a.b.c"
// matches a literal "a.b.c" key as well as any nesting that spells it.
func NewSettings(s *settings.Settings) (*Settings, error) {
	res := &Settings{
		blocks:   []block{{}},
		unit:     s.UnixTimestampUnit,
		maxDepth: DefaultMaxDepth,
	}
	for _, p := range s.Ignore {
		safe := globSafe(p)
		if _, err := path.Match(safe, ""); err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrBadPattern, p, err)
		}
		res.ignore = append(res.ignore, safe)
	}
	f := &s.Fields
	for _, g := range []struct {
		kind  FieldKind
		names []string
	}{
		{KindTime, f.Time.Names},
		{KindMessage, f.Message.Names},
		{KindLogger, f.Logger.Names},
		{KindCaller, f.Caller.Names},
		{KindCallerFile, f.CallerFile.Names},
		{KindCallerLine, f.CallerLine.Names},
	} {
		for i, name := range g.names {
			res.add(0, name, entry{kind: g.kind, priority: i})
		}
	}
	title := cases.Title(language.Und)
	j := 0
	for vi, v := range f.Level.Variants {
		lm := levelMap{values: map[string]Level{}}
		for name, values := range v.Values {
			lvl, err := ParseLevel(name)
			if err != nil {
				return nil, fmt.Errorf("level variant %d: %w", vi, err)
			}
			for _, val := range values {
				for _, form := range []string{val, strings.ToLower(val), strings.ToUpper(val), title.String(val)} {
					lm.values[form] = lvl
				}
			}
		}
		if v.Default != "" {
			lvl, err := ParseLevel(v.Default)
			if err != nil {
				return nil, fmt.Errorf("level variant %d default: %w", vi, err)
			}
			lm.def, lm.hasDefault = lvl, true
		}
		res.levels = append(res.levels, lm)
		for _, name := range v.Names {
			res.add(0, name, entry{kind: KindLevel, priority: j, variant: vi})
			j++
		}
	}
	return res, nil
}

// WithMaxDepth returns a copy of s with the given depth limit.
func (s *Settings) WithMaxDepth(n int) *Settings {
	c := *s
	c.maxDepth = max(n, 1)
	return &c
}

func (s *Settings) MaxDepth() int { return s.maxDepth }

func (s *Settings) UnixUnit() settings.UnixUnit { return s.unit }

// add registers name in block n and, for every dot in name, registers the
// remainder in the block nested under the prefix.
func (s *Settings) add(n int, name string, e entry) {
	cur := s.lookupOrNone(n, name)
	cur.kind, cur.priority, cur.variant = e.kind, e.priority, e.variant
	s.blocks[n][name] = cur
	for rem := name; ; {
		k := strings.LastIndexByte(rem, '.')
		if k < 0 {
			return
		}
		s.add(s.nestedBlock(n, name[:k]), name[k+1:], e)
		rem = name[:k]
	}
}

func (s *Settings) nestedBlock(n int, prefix string) int {
	cur := s.lookupOrNone(n, prefix)
	if cur.nested < 0 {
		cur.nested = len(s.blocks)
		s.blocks = append(s.blocks, block{})
		s.blocks[n][prefix] = cur
	}
	return cur.nested
}

func (s *Settings) lookupOrNone(n int, name string) entry {
	if e, ok := s.blocks[n][name]; ok {
		return e
	}
	return noEntry
}

func (s *Settings) lookup(n int, name string) (entry, bool) {
	e, ok := s.blocks[n][name]
	return e, ok
}

// globSafe hides '/' from path.Match, whose wildcards never match it.
// Field names are not paths: "k8s*" must match "k8s/pod".
func globSafe(s string) string {
	return strings.ReplaceAll(s, "/", "\x00")
}

func (s *Settings) ignored(key string) bool {
	key = globSafe(key)
	for _, p := range s.ignore {
		if ok, _ := path.Match(p, key); ok {
			return true
		}
	}
	return false
}

func (s *Settings) level(variant int, v string) (Level, bool, bool) {
	lm := &s.levels[variant]
	if lvl, ok := lm.values[v]; ok {
		return lvl, true, true
	}
	return lm.def, false, lm.hasDefault
}
