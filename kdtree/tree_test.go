package kdtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTree(t *testing.T, k, m int) *Tree {
	t.Helper()
	tree, err := New(k, m)
	require.NoError(t, err)
	return tree
}

func TestNew(t *testing.T) {
	_, err := New(0, 4)
	var cfgErr *ErrInvalidConfig
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "dimension", cfgErr.Field)

	_, err = New(2, 0)
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "leaf capacity", cfgErr.Field)

	tree := mustTree(t, 3, 5)
	assert.Equal(t, 3, tree.K())
	assert.Equal(t, 5, tree.M())
	assert.Equal(t, 0, tree.Len())
	assert.Nil(t, tree.root)
}

func TestInsert(t *testing.T) {
	t.Run("FirstPointCreatesLeaf", func(t *testing.T) {
		tree := mustTree(t, 2, 2)
		require.NoError(t, tree.Insert([]int{1, 2}, "a"))
		require.NotNil(t, tree.root)
		assert.True(t, tree.root.isLeaf())
		assert.Equal(t, []string{"a"}, leafCodes(tree.root))
	})

	t.Run("SplitOnOverflow", func(t *testing.T) {
		tree := mustTree(t, 2, 1)
		require.NoError(t, tree.Insert([]int{0, 0}, "a"))
		require.NoError(t, tree.Insert([]int{10, 10}, "b"))

		root := tree.root
		require.False(t, root.isLeaf())
		assert.Equal(t, 0, root.splitIndex)
		assert.Equal(t, 5.0, root.splitValue)
		assert.Equal(t, []string{"a"}, leafCodes(root.left))
		assert.Equal(t, []string{"b"}, leafCodes(root.right))
		require.NoError(t, tree.Validate())
	})

	t.Run("SplitReplacesChildSlot", func(t *testing.T) {
		tree := mustTree(t, 2, 1)
		require.NoError(t, tree.Insert([]int{0, 0}, "a"))
		require.NoError(t, tree.Insert([]int{10, 10}, "b"))
		require.NoError(t, tree.Insert([]int{20, 0}, "c"))

		right := tree.root.right
		require.False(t, right.isLeaf())
		assert.Equal(t, 0, right.splitIndex)
		assert.Equal(t, 15.0, right.splitValue)
		assert.Equal(t, []string{"b"}, leafCodes(right.left))
		assert.Equal(t, []string{"c"}, leafCodes(right.right))
		assert.Equal(t, 3, tree.Len())
		require.NoError(t, tree.Validate())
	})

	t.Run("TiesGoRight", func(t *testing.T) {
		tree := mustTree(t, 2, 1)
		require.NoError(t, tree.Insert([]int{0, 0}, "a"))
		require.NoError(t, tree.Insert([]int{10, 10}, "b"))
		require.NoError(t, tree.Insert([]int{5, 3}, "c"))

		// (5,3) has coords[0] == splitvalue and must land under the right child.
		right := tree.root.right
		require.False(t, right.isLeaf())
		assert.ElementsMatch(t, []string{"b", "c"}, append(leafCodes(right.left), leafCodes(right.right)...))
		require.NoError(t, tree.Validate())
	})

	t.Run("Duplicate", func(t *testing.T) {
		tree := mustTree(t, 2, 3)
		require.NoError(t, tree.Insert([]int{1, 1}, "a"))
		err := tree.Insert([]int{1, 1}, "b")
		require.ErrorIs(t, err, ErrDuplicatePoint)
		require.ErrorIs(t, err, ErrPreconditionViolation)
		assert.Equal(t, 1, tree.Len())
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		tree := mustTree(t, 2, 3)
		err := tree.Insert([]int{1, 2, 3}, "a")
		var dm *ErrDimensionMismatch
		require.ErrorAs(t, err, &dm)
		assert.Equal(t, 2, dm.Expected)
		assert.Equal(t, 3, dm.Actual)
	})

	t.Run("CoordsAreCopied", func(t *testing.T) {
		tree := mustTree(t, 2, 3)
		p := []int{4, 4}
		require.NoError(t, tree.Insert(p, "a"))
		p[0] = 99
		assert.Equal(t, []int{4, 4}, tree.Points()[0].Coords)
	})
}

func TestDelete(t *testing.T) {
	t.Run("LastPointEmptiesTree", func(t *testing.T) {
		tree := mustTree(t, 2, 2)
		require.NoError(t, tree.Insert([]int{1, 1}, "a"))
		require.NoError(t, tree.Delete([]int{1, 1}))
		assert.Nil(t, tree.root)
		assert.Equal(t, 0, tree.Len())
	})

	t.Run("NonEmptyLeafKeepsShape", func(t *testing.T) {
		tree := mustTree(t, 2, 3)
		require.NoError(t, tree.Insert([]int{1, 1}, "a"))
		require.NoError(t, tree.Insert([]int{2, 2}, "b"))
		require.NoError(t, tree.Delete([]int{1, 1}))
		assert.Equal(t, []string{"b"}, leafCodes(tree.root))
	})

	t.Run("ParentIsRootPromotesSibling", func(t *testing.T) {
		tree := mustTree(t, 2, 1)
		require.NoError(t, tree.Insert([]int{0, 0}, "a"))
		require.NoError(t, tree.Insert([]int{10, 10}, "b"))

		require.NoError(t, tree.Delete([]int{0, 0}))
		require.True(t, tree.root.isLeaf())
		assert.Equal(t, []string{"b"}, leafCodes(tree.root))
		require.NoError(t, tree.Validate())
	})

	t.Run("GrandparentSlotGetsSibling", func(t *testing.T) {
		tree := mustTree(t, 2, 1)
		require.NoError(t, tree.Insert([]int{0, 0}, "a"))
		require.NoError(t, tree.Insert([]int{10, 10}, "b"))
		require.NoError(t, tree.Insert([]int{20, 0}, "c"))

		require.NoError(t, tree.Delete([]int{20, 0}))
		root := tree.root
		require.False(t, root.isLeaf())
		assert.Equal(t, 5.0, root.splitValue)
		require.True(t, root.right.isLeaf())
		assert.Equal(t, []string{"b"}, leafCodes(root.right))
		assert.Equal(t, []string{"a"}, leafCodes(root.left))
		require.NoError(t, tree.Validate())
	})

	t.Run("CollapseDoesNotCascade", func(t *testing.T) {
		tree := mustTree(t, 1, 1)
		for i, v := range []int{0, 10, 20, 30} {
			require.NoError(t, tree.Insert([]int{v}, string(rune('a'+i))))
		}
		before := tree.Stats()
		require.NoError(t, tree.Delete([]int{30}))
		after := tree.Stats()
		assert.Equal(t, before.Leaves-1, after.Leaves)
		assert.Equal(t, before.InternalNodes-1, after.InternalNodes)
		require.NoError(t, tree.Validate())
	})

	t.Run("NotFound", func(t *testing.T) {
		tree := mustTree(t, 2, 2)
		require.ErrorIs(t, tree.Delete([]int{1, 1}), ErrPointNotFound)
		require.NoError(t, tree.Insert([]int{1, 1}, "a"))
		require.ErrorIs(t, tree.Delete([]int{1, 2}), ErrPointNotFound)
		assert.Equal(t, 1, tree.Len())
	})
}

func TestInsertDeleteRoundTrip(t *testing.T) {
	tree := mustTree(t, 2, 2)
	points := [][]int{{3, 7}, {1, 1}, {9, 4}, {6, 6}, {2, 8}, {5, 0}, {8, 8}}
	for i, p := range points {
		require.NoError(t, tree.Insert(p, string(rune('a'+i))))
	}
	before := tree.Points()

	require.NoError(t, tree.Insert([]int{4, 4}, "z"))
	require.NoError(t, tree.Delete([]int{4, 4}))

	assert.ElementsMatch(t, before, tree.Points())
	require.NoError(t, tree.Validate())
}
