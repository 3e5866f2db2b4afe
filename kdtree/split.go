package kdtree

import (
	"cmp"
	"slices"
	"sort"
)

// maxSpreadAxis returns the axis with the largest (max - min) spread across data.
// The first axis reaching a new strict maximum wins. It returns false when every
// axis has zero spread, in which case no split can separate the data.
func maxSpreadAxis(data []Datum, dims int) (int, bool) {
	axis := -1
	var best int64
	for i := range dims {
		lo, hi := data[0].Coords[i], data[0].Coords[i]
		for _, d := range data[1:] {
			lo = min(lo, d.Coords[i])
			hi = max(hi, d.Coords[i])
		}
		if spread := int64(hi) - int64(lo); spread > best {
			best = spread
			axis = i
		}
	}
	return axis, axis >= 0
}

// median returns the average of the two central values along axis.
// For an odd count both central indices coincide.
func median(data []Datum, axis int) float64 {
	vals := make([]int, len(data))
	for i, d := range data {
		vals[i] = d.Coords[axis]
	}
	slices.Sort(vals)
	mid := len(vals) / 2
	return (float64(vals[mid]) + float64(vals[len(vals)-1-mid])) / 2
}

// split partitions an overflowing leaf's data into an internal node with two leaves.
//
// The data is stably sorted along the max-spread axis and the left leaf receives
// the first (m+1)/2 items. When repeated values along the axis would put a value
// equal to the split value on the left, the cut moves to the first item not below
// the split value; if that leaves the left side empty, the split value moves up
// to the midpoint between the last copy of the median and the next larger value.
// Both leaves are therefore non-empty and every left item is strictly below the
// split value.
func split(data []Datum, dims, m int) (*node, bool) {
	axis, ok := maxSpreadAxis(data, dims)
	if !ok {
		return nil, false
	}
	value := median(data, axis)

	sorted := slices.Clone(data)
	slices.SortStableFunc(sorted, func(a, b Datum) int {
		return cmp.Compare(a.Coords[axis], b.Coords[axis])
	})

	cut := min((m+1)/2, len(sorted)-1)
	if float64(sorted[cut-1].Coords[axis]) >= value {
		cut = sort.Search(len(sorted), func(i int) bool {
			return float64(sorted[i].Coords[axis]) >= value
		})
		if cut == 0 {
			cut = sort.Search(len(sorted), func(i int) bool {
				return float64(sorted[i].Coords[axis]) > value
			})
			value = (float64(sorted[cut-1].Coords[axis]) + float64(sorted[cut].Coords[axis])) / 2
		}
	}

	left := newLeaf(slices.Clip(sorted[:cut]))
	right := newLeaf(slices.Clone(sorted[cut:]))
	return newInternal(axis, value, left, right), true
}
