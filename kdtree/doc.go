// Package kdtree implements a mutable k-dimensional tree with bucketed leaves.
//
// Points are integer coordinate vectors tagged with a unique code. Leaves hold
// up to m points; an insert that overflows a leaf splits it at the median of
// the axis with the largest spread. A delete that empties a leaf collapses the
// leaf and its parent, promoting the sibling subtree one level.
//
// # Queries
//
// KNN performs an exact k-nearest-neighbor search using branch-and-bound over
// per-subtree bounding boxes:
//
//	t, _ := kdtree.New(2, 4)
//	_ = t.Insert([]int{0, 0}, "a")
//	_ = t.Insert([]int{10, 10}, "b")
//	res, _ := t.KNN(1, []int{1, 1})
//	fmt.Println(res.Points[0].Code, res.LeavesChecked) // a 1
//
// Results are ordered by ascending squared distance, then ascending code.
//
// # Concurrency
//
// A Tree is not safe for concurrent mutation. Concurrent KNN calls are safe as
// long as no Insert or Delete runs at the same time; the kdgo.Store facade
// provides that exclusion.
package kdtree
