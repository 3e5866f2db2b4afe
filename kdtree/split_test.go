package kdtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func data(points ...[]int) []Datum {
	out := make([]Datum, len(points))
	for i, p := range points {
		out[i] = Datum{Code: string(rune('a' + i)), Coords: p}
	}
	return out
}

func TestMaxSpreadAxis(t *testing.T) {
	t.Run("LargestSpreadWins", func(t *testing.T) {
		axis, ok := maxSpreadAxis(data([]int{0, 0, 0}, []int{1, 9, 4}, []int{2, 3, 8}), 3)
		require.True(t, ok)
		assert.Equal(t, 1, axis)
	})

	t.Run("TieKeepsFirstAxis", func(t *testing.T) {
		axis, ok := maxSpreadAxis(data([]int{0, 0}, []int{10, 10}), 2)
		require.True(t, ok)
		assert.Equal(t, 0, axis)
	})

	t.Run("ZeroSpreadAxisSkipped", func(t *testing.T) {
		axis, ok := maxSpreadAxis(data([]int{5, 1}, []int{5, 2}), 2)
		require.True(t, ok)
		assert.Equal(t, 1, axis)
	})

	t.Run("NoValidAxis", func(t *testing.T) {
		_, ok := maxSpreadAxis(data([]int{5, 1}, []int{5, 1}), 2)
		assert.False(t, ok)
	})
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		vals   []int
		expect float64
	}{
		{"Odd", []int{9, 1, 5}, 5},
		{"Even", []int{4, 1, 10, 3}, 3.5},
		{"Pair", []int{0, 10}, 5},
		{"Single", []int{7}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := make([][]int, len(tt.vals))
			for i, v := range tt.vals {
				points[i] = []int{v}
			}
			assert.Equal(t, tt.expect, median(data(points...), 0))
		})
	}
}

func leafCodes(n *node) []string {
	out := make([]string, len(n.data))
	for i, d := range n.data {
		out[i] = d.Code
	}
	return out
}

func TestSplit(t *testing.T) {
	t.Run("FloorHalfGoesLeft", func(t *testing.T) {
		// m=2: three points, the left leaf receives (m+1)/2 = 1.
		n, ok := split(data([]int{8}, []int{2}, []int{5}), 1, 2)
		require.True(t, ok)
		assert.Equal(t, 0, n.splitIndex)
		assert.Equal(t, 5.0, n.splitValue)
		assert.Equal(t, []string{"b"}, leafCodes(n.left))
		assert.Equal(t, []string{"c", "a"}, leafCodes(n.right))
	})

	t.Run("EvenCount", func(t *testing.T) {
		n, ok := split(data([]int{4, 0}, []int{1, 0}, []int{9, 1}, []int{6, 1}), 2, 3)
		require.True(t, ok)
		assert.Equal(t, 0, n.splitIndex)
		assert.Equal(t, 5.0, n.splitValue)
		assert.Equal(t, []string{"b", "a"}, leafCodes(n.left))
		assert.Equal(t, []string{"d", "c"}, leafCodes(n.right))
	})

	t.Run("RepeatedMedianMovesCut", func(t *testing.T) {
		// Values 1,2,2,3 along axis 1: median 2 equals the second item.
		n, ok := split(data([]int{0, 1}, []int{0, 2}, []int{0, 2}, []int{0, 3}), 2, 3)
		require.True(t, ok)
		require.Equal(t, 1, n.splitIndex)
		assert.Equal(t, 2.0, n.splitValue)
		assert.Equal(t, []string{"a"}, leafCodes(n.left))
		assert.Equal(t, []string{"b", "c", "d"}, leafCodes(n.right))
	})

	t.Run("MedianAtMinimumRaisesSplitValue", func(t *testing.T) {
		n, ok := split(data([]int{1}, []int{1}, []int{1}, []int{5}), 1, 3)
		require.True(t, ok)
		assert.Equal(t, 3.0, n.splitValue)
		assert.Equal(t, []string{"a", "b", "c"}, leafCodes(n.left))
		assert.Equal(t, []string{"d"}, leafCodes(n.right))
	})

	t.Run("Degenerate", func(t *testing.T) {
		_, ok := split(data([]int{1, 1}, []int{1, 1}), 2, 1)
		assert.False(t, ok)
	})
}
