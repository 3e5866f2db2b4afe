package kdtree

// Stats summarizes the shape of a tree.
type Stats struct {
	Points        int `json:"points"`
	Leaves        int `json:"leaves"`
	InternalNodes int `json:"internal_nodes"`
	// Depth is the number of edges on the longest root-to-leaf path.
	Depth int `json:"depth"`
	// MaxLeafSize is the size of the fullest leaf.
	MaxLeafSize int `json:"max_leaf_size"`
}

// Stats walks the tree and returns its shape.
func (t *Tree) Stats() Stats {
	var s Stats
	collectStats(t.root, 0, &s)
	return s
}

func collectStats(n *node, depth int, s *Stats) {
	if n == nil {
		return
	}
	s.Depth = max(s.Depth, depth)
	if n.isLeaf() {
		s.Leaves++
		s.Points += len(n.data)
		s.MaxLeafSize = max(s.MaxLeafSize, len(n.data))
		return
	}
	s.InternalNodes++
	collectStats(n.left, depth+1, s)
	collectStats(n.right, depth+1, s)
}
