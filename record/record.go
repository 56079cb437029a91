package record

import (
	"iter"
	"slices"

	"github.com/signadot/logv/ast"
	"github.com/signadot/logv/flattree"
)

// Record indexes the predefined fields of one entry stored in a container.
// It is reset, not reallocated, between entries and borrows from the
// container and the input line.
type Record struct {
	c    *ast.Container
	root int

	ts      Timestamp
	level   Level
	message ast.Value
	logger  string
	caller  Caller

	// index holds the value node each kind was taken from, or NoIndex.
	index [numKinds]int
	// hidden holds the top-level field node claimed by each kind, or NoIndex.
	hidden [numKinds]int
	// levelDefault is set when level holds a variant default.
	levelDefault int
	// ignored holds predefined top-level fields matching an ignore pattern.
	ignored []int
	prio    PriorityController
}

func New(c *ast.Container) *Record {
	r := &Record{c: c}
	r.Reset()
	return r
}

// Reset forgets the indexed entry. The container is cleared separately.
func (r *Record) Reset() {
	*r = Record{c: r.c, root: flattree.NoIndex, levelDefault: flattree.NoIndex, ignored: r.ignored[:0]}
	for k := range r.index {
		r.index[k] = flattree.NoIndex
		r.hidden[k] = flattree.NoIndex
	}
}

func (r *Record) Container() *ast.Container { return r.c }

// Root returns the entry's root object.
func (r *Record) Root() (ast.Node, bool) {
	if r.root == flattree.NoIndex {
		return ast.Node{}, false
	}
	return r.c.Node(r.root), true
}

func (r *Record) has(k FieldKind) bool { return r.index[k] != flattree.NoIndex }

func (r *Record) Time() (Timestamp, bool) { return r.ts, r.has(KindTime) }

// Level returns the entry's level. A level found only through a variant
// default is reported too.
func (r *Record) Level() (Level, bool) {
	return r.level, r.has(KindLevel) || r.levelDefault != flattree.NoIndex
}

// Message returns the message payload. For composite messages only the
// kind and the span are meaningful; use MessageValue to read them.
func (r *Record) Message() (ast.Value, bool) { return r.message, r.has(KindMessage) }

func (r *Record) MessageValue() (Value, bool) {
	if !r.has(KindMessage) {
		return Value{}, false
	}
	return Value{node: r.c.Node(r.index[KindMessage])}, true
}

func (r *Record) Logger() (string, bool) { return r.logger, r.has(KindLogger) }

func (r *Record) Caller() (Caller, bool) { return r.caller, !r.caller.IsEmpty() }

// Hidden returns the sorted indices of the top-level field nodes claimed by
// predefined fields.
func (r *Record) Hidden() []int {
	var res []int
	for _, i := range r.hidden {
		if i != flattree.NoIndex && !slices.Contains(res, i) {
			res = append(res, i)
		}
	}
	slices.Sort(res)
	return res
}

func (r *Record) isHidden(i int) bool {
	for _, h := range r.hidden {
		if h == i {
			return true
		}
	}
	return false
}

func (r *Record) ignore(i int) {
	if i != flattree.NoIndex {
		r.ignored = append(r.ignored, i)
	}
}

// Fields iterates over the root object's fields that were not claimed by
// predefined fields.
func (r *Record) Fields() iter.Seq[Field] { return r.fields(true) }

// FieldsForSearch iterates over all of the root object's fields. Fields
// kept only because they are predefined are left out of both iterators
// when they match an ignore pattern.
func (r *Record) FieldsForSearch() iter.Seq[Field] { return r.fields(false) }

func (r *Record) fields(hide bool) iter.Seq[Field] {
	return func(yield func(Field) bool) {
		root, ok := r.Root()
		if !ok {
			return
		}
		for n := range root.Children().All() {
			if hide && r.isHidden(n.Index()) || slices.Contains(r.ignored, n.Index()) {
				continue
			}
			f, ok := fieldOf(n)
			if !ok {
				continue
			}
			if !yield(f) {
				return
			}
		}
	}
}

// apply offers v, stored at node idx, to the slot of e's kind. top is the
// top-level field the value belongs to.
func (r *Record) apply(s *Settings, e entry, v ast.Value, idx, top int) bool {
	ok := r.prio.Prioritize(e.kind, e.priority, func() bool {
		return r.set(s, e, v, idx)
	})
	if ok {
		r.index[e.kind] = idx
		r.hidden[e.kind] = top
	}
	return ok
}

func (r *Record) set(s *Settings, e entry, v ast.Value, idx int) bool {
	if e.kind == KindMessage {
		r.message = v
		return true
	}
	txt, ok := scalarText(v)
	if !ok || txt == "" {
		return false
	}
	switch e.kind {
	case KindTime:
		r.ts = Timestamp{Raw: txt, Unit: s.unit}
	case KindLevel:
		lvl, found, ok := s.level(e.variant, txt)
		if !found {
			if ok && !r.has(KindLevel) && r.levelDefault == flattree.NoIndex {
				r.level = lvl
				r.levelDefault = idx
			}
			return false
		}
		r.level = lvl
		r.levelDefault = flattree.NoIndex
	case KindLogger:
		r.logger = txt
	case KindCaller:
		r.caller.Name = txt
	case KindCallerFile:
		r.caller.File = txt
	case KindCallerLine:
		r.caller.Line = txt
	default:
		return false
	}
	return true
}

// scalarText returns the decoded text of a string or the source of a
// number. Other kinds have none.
func scalarText(v ast.Value) (string, bool) {
	switch v.Kind {
	case ast.KindString:
		s, err := v.Text.Text()
		if err != nil {
			return "", false
		}
		return s, true
	case ast.KindNumber:
		return v.Number(), true
	}
	return "", false
}

// truncate forgets slots taken from nodes at or past size.
func (r *Record) truncate(size int) {
	if r.root >= size {
		r.root = flattree.NoIndex
	}
	r.ignored = slices.DeleteFunc(r.ignored, func(i int) bool { return i >= size })
	if r.levelDefault >= size {
		r.levelDefault = flattree.NoIndex
		if !r.has(KindLevel) {
			r.level = 0
		}
	}
	for k := range numKinds {
		if r.hidden[k] >= size {
			r.hidden[k] = flattree.NoIndex
		}
		if r.index[k] < size {
			continue
		}
		r.index[k] = flattree.NoIndex
		r.prio.forget(k)
		switch k {
		case KindTime:
			r.ts = Timestamp{}
		case KindLevel:
			r.level = 0
		case KindMessage:
			r.message = ast.Value{}
		case KindLogger:
			r.logger = ""
		case KindCaller:
			r.caller.Name = ""
		case KindCallerFile:
			r.caller.File = ""
		case KindCallerLine:
			r.caller.Line = ""
		}
	}
}
