package kdtree

import (
	"fmt"
	"slices"
)

// Datum is a stored point together with its unique code.
// Coords must not be modified after the datum has been inserted.
type Datum struct {
	Code   string `json:"code"`
	Coords []int  `json:"coords"`
}

// String returns a string representation of the Datum.
func (d Datum) String() string {
	return fmt.Sprintf("%s%v", d.Code, d.Coords)
}

func newDatum(point []int, code string) Datum {
	return Datum{Code: code, Coords: slices.Clone(point)}
}

type nodeKind uint8

const (
	leafNode nodeKind = iota
	internalNode
)

// node is either a leaf bucket or an internal split node, discriminated by kind.
// Only the fields of the active kind are meaningful.
type node struct {
	kind nodeKind

	// leaf
	data []Datum

	// internal
	splitIndex int
	splitValue float64
	left       *node
	right      *node
}

func newLeaf(data []Datum) *node {
	return &node{kind: leafNode, data: data}
}

func newInternal(splitIndex int, splitValue float64, left, right *node) *node {
	return &node{
		kind:       internalNode,
		splitIndex: splitIndex,
		splitValue: splitValue,
		left:       left,
		right:      right,
	}
}

func (n *node) isLeaf() bool { return n.kind == leafNode }

// side identifies which child slot of an internal node was taken.
type side uint8

const (
	sideLeft side = iota
	sideRight
)

func (s side) opposite() side {
	if s == sideLeft {
		return sideRight
	}
	return sideLeft
}

// sideFor returns the child slot a point descends into. Ties go right.
func (n *node) sideFor(point []int) side {
	if float64(point[n.splitIndex]) < n.splitValue {
		return sideLeft
	}
	return sideRight
}

func (n *node) child(s side) *node {
	if s == sideLeft {
		return n.left
	}
	return n.right
}

func (n *node) setChild(s side, c *node) {
	if s == sideLeft {
		n.left = c
	} else {
		n.right = c
	}
}

// indexOf returns the position of the datum with the given coords in a leaf, or -1.
func (n *node) indexOf(point []int) int {
	return slices.IndexFunc(n.data, func(d Datum) bool {
		return slices.Equal(d.Coords, point)
	})
}
