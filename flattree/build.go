package flattree

import "fmt"

// Builder appends nodes under a fixed parent. The zero parent (NoIndex)
// appends roots. Builders are small values; nested scopes are created by
// Build and are only valid for the duration of its callback.
type Builder[V any] struct {
	tree   *Tree[V]
	parent int
}

func (b Builder[V]) Tree() *Tree[V] { return b.tree }

// Parent returns the index of the node this builder appends under.
func (b Builder[V]) Parent() int { return b.parent }

// NextIndex returns the index the next appended node will get.
func (b Builder[V]) NextIndex() int { return len(b.tree.items) }

// Push appends a leaf and returns its index.
func (b Builder[V]) Push(v V) int {
	return b.tree.push(b.parent, v)
}

// Build appends a node, lets f populate its subtree through a nested
// builder, then records the subtree length. The error of f is returned
// unchanged; whatever f appended stays in place.
func (b Builder[V]) Build(v V, f func(Builder[V]) error) error {
	i := b.tree.push(b.parent, v)
	err := f(Builder[V]{tree: b.tree, parent: i})
	b.tree.items[i].Len = len(b.tree.items) - i
	return err
}

// Checkpoint marks the current state of the scope.
type Checkpoint struct {
	size     int
	roots    int
	children int
	parent   int
}

// Size returns the number of nodes that existed at the checkpoint.
func (c Checkpoint) Size() int { return c.size }

func (b Builder[V]) Checkpoint() Checkpoint {
	cp := Checkpoint{
		size:   len(b.tree.items),
		roots:  b.tree.roots,
		parent: b.parent,
	}
	if b.parent != NoIndex {
		cp.children = b.tree.items[b.parent].Children
	}
	return cp
}

// FirstNodeIndex returns the index of the first node appended since cp, if
// any.
func (b Builder[V]) FirstNodeIndex(cp Checkpoint) (int, bool) {
	if len(b.tree.items) > cp.size {
		return cp.size, true
	}
	return NoIndex, false
}

// Rollback discards every node appended since cp and restores the scope's
// child count. cp must have been taken from a builder with the same parent.
func (b Builder[V]) Rollback(cp Checkpoint) {
	if cp.parent != b.parent {
		panic(fmt.Sprintf("flattree: rollback of checkpoint for parent %d in scope %d", cp.parent, b.parent))
	}
	if cp.size > len(b.tree.items) {
		panic(fmt.Sprintf("flattree: rollback to %d beyond length %d", cp.size, len(b.tree.items)))
	}
	clear(b.tree.items[cp.size:])
	b.tree.items = b.tree.items[:cp.size]
	b.tree.roots = cp.roots
	if b.parent != NoIndex {
		b.tree.items[b.parent].Children = cp.children
	}
}
