package kdtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	build := func(t *testing.T) *Tree {
		tree := mustTree(t, 2, 1)
		require.NoError(t, tree.Insert([]int{0, 0}, "a"))
		require.NoError(t, tree.Insert([]int{10, 10}, "b"))
		require.NoError(t, tree.Validate())
		return tree
	}

	tests := []struct {
		name    string
		corrupt func(tree *Tree)
		path    string
	}{
		{"PartitionLeft", func(tree *Tree) { tree.root.left.data[0].Coords = []int{7, 0} }, "root.l"},
		{"PartitionRight", func(tree *Tree) { tree.root.right.data[0].Coords = []int{4, 10} }, "root.r"},
		{"EmptyLeaf", func(tree *Tree) { tree.root.right.data = nil }, "root.r"},
		{"MissingChild", func(tree *Tree) { tree.root.left = nil }, "root.l"},
		{"OverCapacity", func(tree *Tree) {
			tree.root.right.data = append(tree.root.right.data, Datum{Code: "c", Coords: []int{12, 12}})
		}, "root.r"},
		{"AxisOutOfRange", func(tree *Tree) { tree.root.splitIndex = 2 }, "root"},
		{"SizeMismatch", func(tree *Tree) { tree.size = 5 }, "root"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := build(t)
			tt.corrupt(tree)

			err := tree.Validate()
			var inv *ErrInvariant
			require.ErrorAs(t, err, &inv)
			assert.Equal(t, tt.path, inv.Path)
		})
	}

	t.Run("Duplicate", func(t *testing.T) {
		tree := mustTree(t, 2, 3)
		tree.root = newLeaf([]Datum{{Code: "a", Coords: []int{1, 1}}, {Code: "b", Coords: []int{1, 1}}})
		tree.size = 2
		var inv *ErrInvariant
		require.ErrorAs(t, tree.Validate(), &inv)
		assert.Contains(t, inv.Reason, "duplicate")
	})
}
