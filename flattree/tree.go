// Package flattree provides an append-only tree stored in a single slice.
//
// Nodes are addressed by index. A node at index i with length L owns the
// half-open range [i, i+L): itself followed by all of its descendants in
// depth-first order. Parents are recorded by index, so a Tree holds no
// pointers between nodes and can be truncated and refilled without
// reallocating.
//
// Trees are not safe for concurrent mutation. Give each goroutine its own.
package flattree

import "slices"

// NoIndex marks the absence of a parent.
const NoIndex = -1

// Item is the stored form of a node.
type Item[V any] struct {
	Value V
	// Parent is the index of the enclosing node, or NoIndex.
	Parent int
	// Len counts the node itself and all its descendants.
	Len int
	// Children counts direct children.
	Children int
}

type Tree[V any] struct {
	items []Item[V]
	roots int
}

func New[V any](capacity int) *Tree[V] {
	return &Tree[V]{items: make([]Item[V], 0, capacity)}
}

// Len returns the total number of nodes.
func (t *Tree[V]) Len() int { return len(t.items) }

// RootCount returns the number of parentless nodes.
func (t *Tree[V]) RootCount() int { return t.roots }

// Clear removes all nodes but keeps the allocated storage.
func (t *Tree[V]) Clear() {
	clear(t.items)
	t.items = t.items[:0]
	t.roots = 0
}

func (t *Tree[V]) Reserve(n int) {
	t.items = slices.Grow(t.items, n)
}

// Item returns the stored item at index i.
func (t *Tree[V]) Item(i int) *Item[V] {
	return &t.items[i]
}

// Node returns a view of the node at index i.
func (t *Tree[V]) Node(i int) Node[V] {
	return Node[V]{tree: t, index: i}
}

// Roots iterates over parentless nodes.
func (t *Tree[V]) Roots() Siblings[V] {
	return Siblings[V]{tree: t, next: 0, end: len(t.items), n: t.roots}
}

// Nodes iterates over all nodes in storage order.
func (t *Tree[V]) Nodes() Range[V] {
	return Range[V]{tree: t, next: 0, end: len(t.items)}
}

// Metaroot returns a builder that appends parentless nodes.
func (t *Tree[V]) Metaroot() Builder[V] {
	return Builder[V]{tree: t, parent: NoIndex}
}

func (t *Tree[V]) push(parent int, v V) int {
	i := len(t.items)
	t.items = append(t.items, Item[V]{Value: v, Parent: parent, Len: 1})
	if parent == NoIndex {
		t.roots++
	} else {
		t.items[parent].Children++
	}
	return i
}
