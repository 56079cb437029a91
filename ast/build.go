package ast

import (
	"fmt"

	"github.com/signadot/logv/flattree"
)

type Checkpoint = flattree.Checkpoint

// Build is implemented by everything a parser can emit into: the
// Container's builders, Discarder, and decorators such as the record
// builder.
//
// AddComposite may decline to call f, for instance when a decorator decides
// to drop a subtree. Parsers go through BuildComposite so that a declined
// composite is still consumed from the input.
type Build interface {
	AddScalar(v Value)
	AddComposite(v Value, f func(Build) error) error

	Checkpoint() Checkpoint
	// FirstNodeIndex reports the first node stored since cp, if any.
	FirstNodeIndex(cp Checkpoint) (int, bool)
	// Rollback discards everything stored since cp.
	Rollback(cp Checkpoint)
}

// BuildComposite adds a composite to b and populates it with f. If b
// declines the composite, f runs against a Discarder instead so the caller
// still consumes the composite's input.
func BuildComposite(b Build, v Value, f func(Build) error) error {
	called := false
	err := b.AddComposite(v, func(c Build) error {
		called = true
		return f(c)
	})
	if err != nil || called {
		return err
	}
	return f(Discarder{})
}

// Builder stores into a Container.
type Builder struct {
	inner flattree.Builder[Value]
}

func (b Builder) AddScalar(v Value) {
	if !v.IsScalar() {
		panic(fmt.Sprintf("ast: AddScalar with %s", v.Kind))
	}
	b.inner.Push(v)
}

func (b Builder) AddComposite(v Value, f func(Build) error) error {
	if v.IsScalar() {
		panic(fmt.Sprintf("ast: AddComposite with %s", v.Kind))
	}
	return b.inner.Build(v, func(c flattree.Builder[Value]) error {
		return f(Builder{inner: c})
	})
}

func (b Builder) Checkpoint() Checkpoint {
	return b.inner.Checkpoint()
}

func (b Builder) FirstNodeIndex(cp Checkpoint) (int, bool) {
	return b.inner.FirstNodeIndex(cp)
}

func (b Builder) Rollback(cp Checkpoint) {
	b.inner.Rollback(cp)
}

// NextIndex returns the index the next stored node will get.
func (b Builder) NextIndex() int {
	return b.inner.NextIndex()
}

// Discarder accepts everything and stores nothing. Composites are still
// populated so that parsers advance through their input.
type Discarder struct{}

func (Discarder) AddScalar(Value) {}

func (d Discarder) AddComposite(_ Value, f func(Build) error) error {
	return f(d)
}

func (Discarder) Checkpoint() Checkpoint { return Checkpoint{} }

func (Discarder) FirstNodeIndex(Checkpoint) (int, bool) { return flattree.NoIndex, false }

func (Discarder) Rollback(Checkpoint) {}
