package kdtree

import "math"

// PointDistanceSquared returns the squared Euclidean distance between coords and point.
// Assumes both have the same length (caller's responsibility).
func PointDistanceSquared(coords, point []int) int64 {
	var sum int64
	for i := range point {
		d := int64(coords[i]) - int64(point[i])
		sum += d * d
	}
	return sum
}

// Bounds is the closed coordinate range of a box along one axis.
type Bounds struct {
	Min int
	Max int
}

// Box is an axis-aligned bounding box, one Bounds per axis.
type Box []Bounds

// DistanceSquared returns a lower bound on the squared distance from point to
// any point inside the box.
//
// An axis contributes zero only when the coordinate lies in [Min, Max).
// A coordinate equal to Max counts as outside and contributes the squared
// distance to the nearer bound, which is zero when Min == Max.
func (b Box) DistanceSquared(point []int) int64 {
	var sum int64
	for i, p := range point {
		lo, hi := b[i].Min, b[i].Max
		if p >= lo && p < hi {
			continue
		}
		dlo := int64(lo) - int64(p)
		dhi := int64(hi) - int64(p)
		sum += min(dlo*dlo, dhi*dhi)
	}
	return sum
}

// boundingBox returns the tightest box containing every datum under n.
// It returns false for a nil or empty subtree.
func boundingBox(n *node, dims int) (Box, bool) {
	if n == nil {
		return nil, false
	}
	box := make(Box, dims)
	for i := range box {
		box[i] = Bounds{Min: math.MaxInt, Max: math.MinInt}
	}
	if !extendBox(box, n) {
		return nil, false
	}
	return box, true
}

// extendBox widens box to cover every datum under n and reports whether any datum was seen.
func extendBox(box Box, n *node) bool {
	if n == nil {
		return false
	}
	if n.isLeaf() {
		for _, d := range n.data {
			for i, c := range d.Coords {
				box[i].Min = min(box[i].Min, c)
				box[i].Max = max(box[i].Max, c)
			}
		}
		return len(n.data) > 0
	}
	l := extendBox(box, n.left)
	r := extendBox(box, n.right)
	return l || r
}
