package record

import (
	"iter"

	"github.com/signadot/logv/ast"
	"github.com/signadot/logv/encstr"
)

// Field is a key and value borrowed from a record's container.
type Field struct {
	Key   encstr.String
	Value Value
	node  ast.Node
}

// Node returns the field's node in the container.
func (f Field) Node() ast.Node { return f.node }

func fieldOf(n ast.Node) (Field, bool) {
	ch := n.Children()
	v, ok := ch.Next()
	if !ok {
		return Field{}, false
	}
	return Field{Key: n.Value().Text, Value: Value{node: v}, node: n}, true
}

// Value is a view of one value node.
type Value struct {
	node ast.Node
}

func (v Value) Node() ast.Node { return v.node }

func (v Value) Kind() ast.Kind { return v.node.Value().Kind }

// Scalar returns the node's payload. For composites only the kind and the
// span are meaningful.
func (v Value) Scalar() ast.Value { return v.node.Value() }

func (v Value) Bool() bool { return v.node.Value().Bool }

func (v Value) Number() string { return v.node.Value().Number() }

func (v Value) String() encstr.String { return v.node.Value().Text }

// Elems iterates over the elements of an array.
func (v Value) Elems() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		if v.Kind() != ast.KindArray {
			return
		}
		for n := range v.node.Children().All() {
			if !yield(Value{node: n}) {
				return
			}
		}
	}
}

// Fields iterates over the members of an object.
func (v Value) Fields() iter.Seq[Field] {
	return func(yield func(Field) bool) {
		if v.Kind() != ast.KindObject {
			return
		}
		for n := range v.node.Children().All() {
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
