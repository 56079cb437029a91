package flattree

import "iter"

// Node is a read-only view of one node of a Tree.
type Node[V any] struct {
	tree  *Tree[V]
	index int
}

func (n Node[V]) Index() int { return n.index }

func (n Node[V]) Value() V { return n.tree.items[n.index].Value }

// Len counts the node and all of its descendants.
func (n Node[V]) Len() int { return n.tree.items[n.index].Len }

// ChildCount returns the number of direct children.
func (n Node[V]) ChildCount() int { return n.tree.items[n.index].Children }

// End returns the index just past the node's subtree.
func (n Node[V]) End() int { return n.index + n.Len() }

func (n Node[V]) Parent() (Node[V], bool) {
	p := n.tree.items[n.index].Parent
	if p == NoIndex {
		return Node[V]{}, false
	}
	return Node[V]{tree: n.tree, index: p}, true
}

// Children iterates over direct children.
func (n Node[V]) Children() Siblings[V] {
	item := &n.tree.items[n.index]
	return Siblings[V]{tree: n.tree, next: n.index + 1, end: n.index + item.Len, n: item.Children}
}

// Descendants iterates over every node below n in storage order.
func (n Node[V]) Descendants() Range[V] {
	return Range[V]{tree: n.tree, next: n.index + 1, end: n.End()}
}

// Ancestors iterates from the parent of n up to its root.
func (n Node[V]) Ancestors() iter.Seq[Node[V]] {
	return func(yield func(Node[V]) bool) {
		for p, ok := n.Parent(); ok; p, ok = p.Parent() {
			if !yield(p) {
				return
			}
		}
	}
}

// NextSibling returns the node following n's subtree when it shares n's
// parent.
func (n Node[V]) NextSibling() (Node[V], bool) {
	next := n.End()
	if next >= len(n.tree.items) {
		return Node[V]{}, false
	}
	if n.tree.items[next].Parent != n.tree.items[n.index].Parent {
		return Node[V]{}, false
	}
	return Node[V]{tree: n.tree, index: next}, true
}

// Siblings iterates over nodes sharing a parent by skipping whole subtrees.
type Siblings[V any] struct {
	tree      *Tree[V]
	next, end int
	n         int
}

// Len returns the number of siblings not yet visited.
func (s Siblings[V]) Len() int { return s.n }

func (s *Siblings[V]) Next() (Node[V], bool) {
	if s.n == 0 || s.next >= s.end {
		return Node[V]{}, false
	}
	node := Node[V]{tree: s.tree, index: s.next}
	s.next += s.tree.items[s.next].Len
	s.n--
	return node, true
}

func (s Siblings[V]) All() iter.Seq[Node[V]] {
	return func(yield func(Node[V]) bool) {
		for {
			node, ok := s.Next()
			if !ok || !yield(node) {
				return
			}
		}
	}
}

// Range iterates over a contiguous run of nodes in storage order.
type Range[V any] struct {
	tree      *Tree[V]
	next, end int
}

func (r *Range[V]) Len() int { return r.end - r.next }

func (r *Range[V]) Next() (Node[V], bool) {
	if r.next >= r.end {
		return Node[V]{}, false
	}
	node := Node[V]{tree: r.tree, index: r.next}
	r.next++
	return node, true
}

func (r Range[V]) All() iter.Seq[Node[V]] {
	return func(yield func(Node[V]) bool) {
		for {
			node, ok := r.Next()
			if !ok || !yield(node) {
				return
			}
		}
	}
}
