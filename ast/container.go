// Package ast holds the parsed form of one log entry: a flat tree of Value
// nodes built through the Build protocol.
package ast

import "github.com/signadot/logv/flattree"

type Node = flattree.Node[Value]

// Container owns the node storage for parsed entries. Reuse one per worker
// and Clear it between entries.
type Container struct {
	tree *flattree.Tree[Value]
}

func NewContainer(capacity int) *Container {
	return &Container{tree: flattree.New[Value](capacity)}
}

// Metaroot returns a builder appending top-level nodes.
func (c *Container) Metaroot() Builder {
	return Builder{inner: c.tree.Metaroot()}
}

func (c *Container) Len() int                        { return c.tree.Len() }
func (c *Container) Node(i int) Node                 { return c.tree.Node(i) }
func (c *Container) Roots() flattree.Siblings[Value] { return c.tree.Roots() }
func (c *Container) Nodes() flattree.Range[Value]    { return c.tree.Nodes() }
func (c *Container) Clear()                          { c.tree.Clear() }
func (c *Container) Reserve(n int)                   { c.tree.Reserve(n) }
