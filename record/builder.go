package record

import (
	"github.com/signadot/logv/ast"
	"github.com/signadot/logv/debug"
	"github.com/signadot/logv/encstr"
	"github.com/signadot/logv/flattree"
)

type scope uint8

const (
	// above the root object
	scopeEntry scope = iota
	// members of an object whose names are looked up in a block
	scopeObject
	// the value of a field with a settings entry
	scopeField
	// everything else
	scopeOther
)

// Builder decorates a build target, filling the Record attached to it.
// Every value reaching the target is forwarded unchanged, except that
// ignored top-level fields which are not predefined are dropped and
// over-deep composites are replaced by Placeholder.
type Builder struct {
	inner ast.Build
	rec   *Record
	s     *Settings

	scope scope
	depth int
	// block of the members, in scopeObject
	block int
	// entry of the value, in scopeField
	ent entry
	// top is the enclosing top-level field, or NoIndex at the root.
	top int
}

// NewBuilder decorates target, which must carry the *Record to fill as an
// ast.Attached value.
func NewBuilder(s *Settings, target ast.Build) (*Builder, error) {
	rec, ok := ast.AttachmentOf[*Record](target)
	if !ok {
		return nil, ErrNoRecord
	}
	return &Builder{
		inner: target,
		rec:   rec,
		s:     s,
		scope: scopeEntry,
		block: -1,
		ent:   noEntry,
		top:   flattree.NoIndex,
	}, nil
}

func (b *Builder) Unwrap() ast.Build { return b.inner }

func (b *Builder) AddScalar(v ast.Value) {
	if b.scope != scopeField || b.ent.kind == kindNone {
		b.inner.AddScalar(v)
		return
	}
	cp := b.inner.Checkpoint()
	b.inner.AddScalar(v)
	idx, ok := b.inner.FirstNodeIndex(cp)
	if !ok {
		return
	}
	if !b.rec.apply(b.s, b.ent, v, idx, b.top) && debug.Record() {
		debug.Logf("record: %s candidate %s at %s not applied", b.ent.kind, v.AsText(), v.Span)
	}
}

func (b *Builder) AddComposite(v ast.Value, f func(ast.Build) error) error {
	if v.Kind == ast.KindField {
		return b.addField(v, f)
	}
	depth := b.depth + 1
	if depth > b.s.maxDepth {
		if debug.Record() {
			debug.Logf("record: %s at %s exceeds depth %d", v.Kind, v.Span, b.s.maxDepth)
		}
		b.inner.AddScalar(ast.String(encstr.Raw(Placeholder), v.Span))
		return nil
	}
	child := *b
	child.depth = depth
	child.scope = scopeOther
	child.ent = noEntry
	if v.Kind == ast.KindObject {
		switch {
		case b.scope == scopeEntry:
			child.scope = scopeObject
			child.block = 0
		case b.scope == scopeField && b.ent.nested >= 0:
			child.scope = scopeObject
			child.block = b.ent.nested
		}
	}
	cp := b.inner.Checkpoint()
	err := b.inner.AddComposite(v, func(c ast.Build) error {
		if b.scope == scopeEntry && v.Kind == ast.KindObject && b.rec.root == flattree.NoIndex {
			b.rec.root, _ = b.inner.FirstNodeIndex(cp)
		}
		child.inner = c
		return f(&child)
	})
	if err != nil || b.scope != scopeField || b.ent.kind != KindMessage {
		return err
	}
	// messages may be composites
	if idx, ok := b.inner.FirstNodeIndex(cp); ok {
		b.rec.apply(b.s, b.ent, v, idx, b.top)
	}
	return nil
}

func (b *Builder) addField(v ast.Value, f func(ast.Build) error) error {
	key, err := v.Text.Text()
	if err != nil {
		key = v.Text.Source()
	}
	child := *b
	child.scope = scopeOther
	child.ent = noEntry
	predefined := false
	if b.scope == scopeObject {
		if e, ok := b.s.lookup(b.block, key); ok {
			child.scope = scopeField
			child.ent = e
			predefined = true
		}
	}
	atRoot := b.scope == scopeObject && b.top == flattree.NoIndex
	// Predefined fields are kept so they still fill their slots; the
	// record leaves them out of its fields instead.
	ignored := atRoot && b.s.ignored(key)
	if ignored && !predefined {
		if debug.Record() {
			debug.Logf("record: ignoring field %q at %s", key, v.Span)
		}
		return nil
	}
	cp := b.inner.Checkpoint()
	return b.inner.AddComposite(v, func(c ast.Build) error {
		if atRoot {
			child.top, _ = b.inner.FirstNodeIndex(cp)
			if ignored {
				b.rec.ignore(child.top)
			}
		}
		child.inner = c
		return f(&child)
	})
}

func (b *Builder) Checkpoint() ast.Checkpoint { return b.inner.Checkpoint() }

func (b *Builder) FirstNodeIndex(cp ast.Checkpoint) (int, bool) {
	return b.inner.FirstNodeIndex(cp)
}

// Rollback discards the inner target's nodes since cp and forgets every
// record slot taken from them.
func (b *Builder) Rollback(cp ast.Checkpoint) {
	b.inner.Rollback(cp)
	b.rec.truncate(cp.Size())
}
