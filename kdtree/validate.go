package kdtree

import (
	"fmt"
	"slices"
)

// Validate checks the structural invariants of the tree:
//
//   - every internal node has both children, and its split axis is in [0, k)
//   - every datum under a left child is strictly below the split value on the
//     split axis, every datum under a right child is at or above it
//   - every leaf holds between 1 and m data of dimensionality k
//   - coords are unique and the point count matches Len
//
// It returns an *ErrInvariant describing the first violation found.
func (t *Tree) Validate() error {
	if t.root == nil {
		if t.size != 0 {
			return &ErrInvariant{Path: "root", Reason: fmt.Sprintf("empty tree reports %d points", t.size)}
		}
		return nil
	}
	v := &validator{t: t, seen: make(map[string]struct{}, t.size)}
	if err := v.check(t.root, "root", nil); err != nil {
		return err
	}
	if v.count != t.size {
		return &ErrInvariant{Path: "root", Reason: fmt.Sprintf("found %d points, Len reports %d", v.count, t.size)}
	}
	return nil
}

// constraint is one split boundary inherited from an ancestor.
type constraint struct {
	axis  int
	value float64
	left  bool
}

func (c constraint) holds(d Datum) bool {
	if c.left {
		return float64(d.Coords[c.axis]) < c.value
	}
	return float64(d.Coords[c.axis]) >= c.value
}

type validator struct {
	t     *Tree
	seen  map[string]struct{}
	count int
}

func (v *validator) check(n *node, path string, cs []constraint) error {
	if n == nil {
		return &ErrInvariant{Path: path, Reason: "missing child"}
	}
	if n.isLeaf() {
		return v.checkLeaf(n, path, cs)
	}
	if n.splitIndex < 0 || n.splitIndex >= v.t.k {
		return &ErrInvariant{Path: path, Reason: fmt.Sprintf("split axis %d out of range", n.splitIndex)}
	}
	cs = slices.Clip(cs)
	if err := v.check(n.left, path+".l", append(cs, constraint{n.splitIndex, n.splitValue, true})); err != nil {
		return err
	}
	return v.check(n.right, path+".r", append(cs, constraint{n.splitIndex, n.splitValue, false}))
}

func (v *validator) checkLeaf(n *node, path string, cs []constraint) error {
	if len(n.data) == 0 {
		return &ErrInvariant{Path: path, Reason: "empty leaf"}
	}
	if len(n.data) > v.t.m {
		return &ErrInvariant{Path: path, Reason: fmt.Sprintf("leaf holds %d points, capacity %d", len(n.data), v.t.m)}
	}
	for _, d := range n.data {
		if len(d.Coords) != v.t.k {
			return &ErrInvariant{Path: path, Reason: fmt.Sprintf("datum %s has %d coords", d.Code, len(d.Coords))}
		}
		for _, c := range cs {
			if !c.holds(d) {
				side := ">="
				if c.left {
					side = "<"
				}
				return &ErrInvariant{Path: path, Reason: fmt.Sprintf("datum %s violates coords[%d] %s %g", d, c.axis, side, c.value)}
			}
		}
		key := fmt.Sprint(d.Coords)
		if _, dup := v.seen[key]; dup {
			return &ErrInvariant{Path: path, Reason: fmt.Sprintf("duplicate coords %s", key)}
		}
		v.seen[key] = struct{}{}
		v.count++
	}
	return nil
}
