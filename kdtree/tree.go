package kdtree

import (
	"fmt"
	"slices"
)

// Tree is a bucketed k-d tree over integer points.
type Tree struct {
	k    int
	m    int
	root *node
	size int
}

// New creates an empty tree of dimensionality k whose leaves hold at most m points.
func New(k, m int) (*Tree, error) {
	if k < 1 {
		return nil, &ErrInvalidConfig{Field: "dimension", Value: k}
	}
	if m < 1 {
		return nil, &ErrInvalidConfig{Field: "leaf capacity", Value: m}
	}
	return &Tree{k: k, m: m}, nil
}

// K returns the dimensionality of the tree.
func (t *Tree) K() int { return t.k }

// M returns the maximum number of points a leaf holds before it splits.
func (t *Tree) M() int { return t.m }

// Len returns the number of stored points.
func (t *Tree) Len() int { return t.size }

// step records an internal node visited during descent and the child slot taken.
type step struct {
	parent *node
	side   side
}

// descend walks from the root to the leaf owning point and returns the leaf
// together with the path of internal nodes above it. The path is only valid
// until the next mutation.
func (t *Tree) descend(point []int) (*node, []step) {
	var path []step
	cur := t.root
	for !cur.isLeaf() {
		s := cur.sideFor(point)
		path = append(path, step{parent: cur, side: s})
		next := cur.child(s)
		if next == nil {
			panic(fmt.Sprintf("kdtree: internal node missing child (axis=%d value=%g)", cur.splitIndex, cur.splitValue))
		}
		cur = next
	}
	return cur, path
}

// replace puts n into the slot described by the last step of path, or at the root.
func (t *Tree) replace(path []step, n *node) {
	if len(path) == 0 {
		t.root = n
		return
	}
	last := path[len(path)-1]
	last.parent.setChild(last.side, n)
}

func (t *Tree) checkPoint(point []int) error {
	if len(point) != t.k {
		return &ErrDimensionMismatch{Expected: t.k, Actual: len(point)}
	}
	return nil
}

// Insert adds a point with the given code.
//
// It returns ErrDuplicatePoint if a datum with the same coords is already
// stored. When the target leaf overflows it is split at the median of its
// max-spread axis.
func (t *Tree) Insert(point []int, code string) error {
	if err := t.checkPoint(point); err != nil {
		return err
	}
	d := newDatum(point, code)
	if t.root == nil {
		t.root = newLeaf([]Datum{d})
		t.size++
		return nil
	}

	leaf, path := t.descend(point)
	if leaf.indexOf(point) >= 0 {
		return ErrDuplicatePoint
	}
	leaf.data = append(leaf.data, d)

	if len(leaf.data) > t.m {
		n, ok := split(leaf.data, t.k, t.m)
		if !ok {
			leaf.data = leaf.data[:len(leaf.data)-1]
			return ErrDegenerateSplit
		}
		t.replace(path, n)
	}
	t.size++
	return nil
}

// Delete removes the datum with the given coords.
//
// When the owning leaf becomes empty it is removed: the tree becomes empty if
// the leaf was the root, otherwise the leaf's sibling takes its parent's place.
// The collapse does not cascade further.
func (t *Tree) Delete(point []int) error {
	if err := t.checkPoint(point); err != nil {
		return err
	}
	if t.root == nil {
		return ErrPointNotFound
	}

	leaf, path := t.descend(point)
	i := leaf.indexOf(point)
	if i < 0 {
		return ErrPointNotFound
	}
	leaf.data = slices.Delete(leaf.data, i, i+1)
	t.size--

	if len(leaf.data) > 0 {
		return nil
	}
	if len(path) == 0 {
		t.root = nil
		return nil
	}
	parent := path[len(path)-1]
	sibling := parent.parent.child(parent.side.opposite())
	t.replace(path[:len(path)-1], sibling)
	return nil
}

// Points returns every stored datum, visiting leaves left to right.
func (t *Tree) Points() []Datum {
	out := make([]Datum, 0, t.size)
	walkLeaves(t.root, func(n *node) {
		out = append(out, n.data...)
	})
	return out
}

func walkLeaves(n *node, fn func(*node)) {
	if n == nil {
		return
	}
	if n.isLeaf() {
		fn(n)
		return
	}
	walkLeaves(n.left, fn)
	walkLeaves(n.right, fn)
}
