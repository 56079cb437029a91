package flattree

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func buildRandom(r *rand.Rand, b Builder[int], depth int, next *int) {
	n := r.IntN(4)
	for range n {
		*next++
		v := *next
		if depth < 5 && r.IntN(2) == 0 {
			b.Build(v, func(c Builder[int]) error {
				buildRandom(r, c, depth+1, next)
				return nil
			})
			continue
		}
		b.Push(v)
	}
}

func checkInvariants(t *testing.T, tree *Tree[int]) {
	t.Helper()
	parentless := 0
	for i := range tree.Len() {
		node := tree.Node(i)
		if _, ok := node.Parent(); !ok {
			parentless++
		}
		sum := 1
		count := 0
		children := node.Children()
		for c, ok := children.Next(); ok; c, ok = children.Next() {
			sum += c.Len()
			count++
			if p, _ := c.Parent(); p.Index() != i {
				t.Fatalf("child %d of %d has parent %d", c.Index(), i, p.Index())
			}
			if c.Index() <= i {
				t.Fatalf("child index %d not after parent %d", c.Index(), i)
			}
		}
		if sum != node.Len() {
			t.Fatalf("node %d: children lens %d + 1 != len %d", i, sum-1, node.Len())
		}
		if count != node.ChildCount() {
			t.Fatalf("node %d: iterated %d children, count %d", i, count, node.ChildCount())
		}
		if sib, ok := node.NextSibling(); ok && sib.Index() != i+node.Len() {
			t.Fatalf("node %d: next sibling at %d, want %d", i, sib.Index(), i+node.Len())
		}
	}
	if parentless != tree.RootCount() {
		t.Fatalf("roots %d != parentless %d", tree.RootCount(), parentless)
	}
	end := 0
	roots := tree.Roots()
	for root, ok := roots.Next(); ok; root, ok = roots.Next() {
		if root.Index() != end {
			t.Fatalf("root at %d, want %d", root.Index(), end)
		}
		end = root.End()
	}
	if end != tree.Len() {
		t.Fatalf("roots cover %d of %d nodes", end, tree.Len())
	}
}

func TestTreeInvariants(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	tree := New[int](0)
	for range 200 {
		tree.Clear()
		next := 0
		for range r.IntN(3) + 1 {
			buildRandom(r, tree.Metaroot(), 0, &next)
		}
		checkInvariants(t, tree)
	}
}

func TestNested(t *testing.T) {
	tree := New[string](8)
	mr := tree.Metaroot()
	mr.Build("a", func(b Builder[string]) error {
		return b.Build("obj", func(b Builder[string]) error {
			b.Push("x")
			return b.Build("b", func(b Builder[string]) error {
				b.Push("true")
				return nil
			})
		})
	})
	got := []Item[string]{}
	for i := range tree.Len() {
		got = append(got, *tree.Item(i))
	}
	want := []Item[string]{
		{Value: "a", Parent: NoIndex, Len: 5, Children: 1},
		{Value: "obj", Parent: 0, Len: 4, Children: 2},
		{Value: "x", Parent: 1, Len: 1},
		{Value: "b", Parent: 1, Len: 2, Children: 1},
		{Value: "true", Parent: 3, Len: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error(diff)
	}
	var desc []int
	for n := range tree.Node(1).Descendants().All() {
		desc = append(desc, n.Index())
	}
	if diff := cmp.Diff([]int{2, 3, 4}, desc); diff != "" {
		t.Error(diff)
	}
	var anc []string
	for n := range tree.Node(4).Ancestors() {
		anc = append(anc, n.Value())
	}
	if diff := cmp.Diff([]string{"b", "obj", "a"}, anc); diff != "" {
		t.Error(diff)
	}
}

func TestBuildReturnsError(t *testing.T) {
	tree := New[int](0)
	boom := errors.New("boom")
	err := tree.Metaroot().Build(1, func(b Builder[int]) error {
		b.Push(2)
		return boom
	})
	if err != boom {
		t.Fatalf("got %v", err)
	}
	if tree.Node(0).Len() != 2 {
		t.Errorf("len not patched after error: %d", tree.Node(0).Len())
	}
}

func TestRollback(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	tree := New[int](0)
	for range 100 {
		tree.Clear()
		next := 0
		mr := tree.Metaroot()
		buildRandom(r, mr, 0, &next)
		size, roots := tree.Len(), tree.RootCount()
		cp := mr.Checkpoint()
		buildRandom(r, mr, 0, &next)
		first, ok := mr.FirstNodeIndex(cp)
		if ok != (tree.Len() > size) {
			t.Fatalf("FirstNodeIndex ok=%v but len %d -> %d", ok, size, tree.Len())
		}
		if ok && first != size {
			t.Fatalf("first node %d, want %d", first, size)
		}
		mr.Rollback(cp)
		if tree.Len() != size || tree.RootCount() != roots {
			t.Fatalf("rollback: len %d roots %d, want %d %d", tree.Len(), tree.RootCount(), size, roots)
		}
		checkInvariants(t, tree)
	}
}

func TestNestedRollback(t *testing.T) {
	tree := New[int](0)
	tree.Metaroot().Build(0, func(b Builder[int]) error {
		b.Push(1)
		cp := b.Checkpoint()
		b.Build(2, func(b Builder[int]) error {
			b.Push(3)
			return nil
		})
		if tree.Node(0).ChildCount() != 2 {
			t.Errorf("children before rollback: %d", tree.Node(0).ChildCount())
		}
		b.Rollback(cp)
		b.Push(4)
		return nil
	})
	checkInvariants(t, tree)
	if tree.Len() != 3 || tree.Node(0).ChildCount() != 2 || tree.Node(2).Value() != 4 {
		t.Errorf("unexpected tree after nested rollback: len=%d children=%d", tree.Len(), tree.Node(0).ChildCount())
	}
}

func TestRollbackForeignScopePanics(t *testing.T) {
	tree := New[int](0)
	mr := tree.Metaroot()
	cp := mr.Checkpoint()
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	mr.Build(0, func(b Builder[int]) error {
		b.Rollback(cp)
		return nil
	})
}

func TestClearKeepsCapacity(t *testing.T) {
	tree := New[int](0)
	for i := range 100 {
		tree.Metaroot().Push(i)
	}
	c := cap(tree.items)
	tree.Clear()
	if tree.Len() != 0 || tree.RootCount() != 0 {
		t.Fatal("clear did not reset")
	}
	if cap(tree.items) != c {
		t.Errorf("capacity changed %d -> %d", c, cap(tree.items))
	}
}
