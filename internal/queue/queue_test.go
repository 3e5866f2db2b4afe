package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(l *BoundedList[int]) []string {
	out := make([]string, 0, l.Len())
	for _, c := range l.Items() {
		out = append(out, c.Code)
	}
	return out
}

func TestBoundedList(t *testing.T) {
	t.Run("SortedByDistanceThenCode", func(t *testing.T) {
		l := NewBounded[int](10)
		l.Offer(Candidate[int]{Distance: 5, Code: "e"})
		l.Offer(Candidate[int]{Distance: 1, Code: "b"})
		l.Offer(Candidate[int]{Distance: 1, Code: "a"})
		l.Offer(Candidate[int]{Distance: 3, Code: "c"})

		assert.Equal(t, []string{"a", "b", "c", "e"}, codes(l))
		assert.False(t, l.Full())
	})

	t.Run("EvictsWorstWhenStrictlyBetter", func(t *testing.T) {
		l := NewBounded[int](2)
		require.True(t, l.Offer(Candidate[int]{Distance: 4, Code: "x"}))
		require.True(t, l.Offer(Candidate[int]{Distance: 2, Code: "y"}))
		require.True(t, l.Full())

		// Equal distance and larger code is not better.
		assert.False(t, l.Offer(Candidate[int]{Distance: 4, Code: "z"}))
		// Equal distance and smaller code is better.
		assert.True(t, l.Offer(Candidate[int]{Distance: 4, Code: "w"}))
		assert.Equal(t, []string{"y", "w"}, codes(l))

		assert.True(t, l.Offer(Candidate[int]{Distance: 0, Code: "q"}))
		assert.Equal(t, []string{"q", "y"}, codes(l))
	})

	t.Run("Admits", func(t *testing.T) {
		l := NewBounded[int](1)
		assert.True(t, l.Admits(100))
		l.Offer(Candidate[int]{Distance: 7, Code: "a"})
		assert.True(t, l.Admits(7))
		assert.False(t, l.Admits(8))
	})

	t.Run("ZeroCapacity", func(t *testing.T) {
		l := NewBounded[int](0)
		assert.False(t, l.Offer(Candidate[int]{Distance: 1, Code: "a"}))
		assert.Equal(t, 0, l.Len())
	})

	t.Run("ValuesAndReset", func(t *testing.T) {
		l := NewBounded[int](3)
		l.Offer(Candidate[int]{Value: 30, Distance: 3, Code: "c"})
		l.Offer(Candidate[int]{Value: 10, Distance: 1, Code: "a"})
		assert.Equal(t, []int{10, 30}, l.Values())

		w, ok := l.Worst()
		require.True(t, ok)
		assert.Equal(t, 30, w.Value)

		l.Reset(1)
		assert.Equal(t, 0, l.Len())
		assert.Equal(t, 1, l.Cap())
		_, ok = l.Worst()
		assert.False(t, ok)
	})
}
