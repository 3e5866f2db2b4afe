package kdtree

import "github.com/hupe1980/kdgo/internal/queue"

// Result is the outcome of a k-NN query.
type Result struct {
	// LeavesChecked is the number of leaves visited during the search.
	LeavesChecked int `json:"leaveschecked"`

	// Points are the nearest data ordered by ascending squared distance, then code.
	Points []Datum `json:"points"`
}

// Neighbor is a datum together with its squared distance to the query point.
type Neighbor struct {
	Datum
	Distance int64
}

type knnSearch struct {
	point  []int
	dims   int
	list   *queue.BoundedList[Datum]
	leaves int
}

// KNN returns the k data nearest to point.
//
// The search descends into the child whose bounding box is nearer first and
// visits the other child only while the candidate list has room or the box
// distance does not exceed the current worst distance. Ties on the box
// distance are visited, so the result always matches a brute-force scan.
func (t *Tree) KNN(k int, point []int) (Result, error) {
	list, leaves, err := t.knn(k, point)
	if err != nil {
		return Result{}, err
	}
	return Result{LeavesChecked: leaves, Points: list.Values()}, nil
}

// KNNWithDistances is like KNN but also reports each neighbor's squared distance.
func (t *Tree) KNNWithDistances(k int, point []int) ([]Neighbor, int, error) {
	list, leaves, err := t.knn(k, point)
	if err != nil {
		return nil, 0, err
	}
	out := make([]Neighbor, list.Len())
	for i, c := range list.Items() {
		out[i] = Neighbor{Datum: c.Value, Distance: c.Distance}
	}
	return out, leaves, nil
}

func (t *Tree) knn(k int, point []int) (*queue.BoundedList[Datum], int, error) {
	if k <= 0 {
		return nil, 0, ErrInvalidK
	}
	if err := t.checkPoint(point); err != nil {
		return nil, 0, err
	}
	s := &knnSearch{
		point: point,
		dims:  t.k,
		list:  queue.NewBounded[Datum](k),
	}
	if t.root != nil {
		s.visit(t.root)
	}
	return s.list, s.leaves, nil
}

func (s *knnSearch) visit(n *node) {
	if n.isLeaf() {
		s.leaves++
		for _, d := range n.data {
			s.list.Offer(queue.Candidate[Datum]{
				Value:    d,
				Distance: PointDistanceSquared(d.Coords, s.point),
				Code:     d.Code,
			})
		}
		return
	}

	leftDist, leftOK := s.boxDistance(n.left)
	rightDist, rightOK := s.boxDistance(n.right)

	var (
		other     *node
		otherDist int64
		otherOK   bool
	)
	switch {
	case leftOK && (!rightOK || leftDist <= rightDist) && s.list.Admits(leftDist):
		s.visit(n.left)
		other, otherDist, otherOK = n.right, rightDist, rightOK
	case rightOK && (!leftOK || rightDist < leftDist) && s.list.Admits(rightDist):
		s.visit(n.right)
		other, otherDist, otherOK = n.left, leftDist, leftOK
	}

	if otherOK && s.list.Admits(otherDist) {
		s.visit(other)
	}
}

// boxDistance returns the lower-bound distance to the subtree n.
// A nil or empty subtree contributes no bound and is never visited.
func (s *knnSearch) boxDistance(n *node) (int64, bool) {
	box, ok := boundingBox(n, s.dims)
	if !ok {
		return 0, false
	}
	return box.DistanceSquared(s.point), true
}
