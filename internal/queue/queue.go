// Package queue provides the bounded candidate list used by k-NN search.
package queue

import (
	"cmp"
	"slices"
)

// Candidate is an entry of a BoundedList.
// Distance is the primary sort key, Code breaks exact ties.
type Candidate[T any] struct {
	Value    T
	Distance int64
	Code     string
}

// Compare orders candidates by ascending (Distance, Code).
func Compare[T any](a, b Candidate[T]) int {
	if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
		return c
	}
	return cmp.Compare(a.Code, b.Code)
}

// BoundedList keeps at most capacity candidates sorted ascending by (Distance, Code).
// The last element is always the current worst candidate.
type BoundedList[T any] struct {
	capacity int
	items    []Candidate[T]
}

// maxPrealloc bounds the initial allocation; capacity may be far larger than
// the number of candidates ever offered.
const maxPrealloc = 256

// NewBounded creates an empty list holding at most capacity candidates.
func NewBounded[T any](capacity int) *BoundedList[T] {
	return &BoundedList[T]{
		capacity: capacity,
		items:    make([]Candidate[T], 0, min(capacity, maxPrealloc)),
	}
}

// Len returns the number of candidates in the list.
func (l *BoundedList[T]) Len() int { return len(l.items) }

// Cap returns the maximum number of candidates the list keeps.
func (l *BoundedList[T]) Cap() int { return l.capacity }

// Full reports whether the list holds capacity candidates.
func (l *BoundedList[T]) Full() bool { return len(l.items) >= l.capacity }

// Worst returns the last (worst) candidate.
func (l *BoundedList[T]) Worst() (Candidate[T], bool) {
	if len(l.items) == 0 {
		return Candidate[T]{}, false
	}
	return l.items[len(l.items)-1], true
}

// Admits reports whether a candidate at distance d could still enter the list,
// i.e. the list has room or d does not exceed the worst distance.
func (l *BoundedList[T]) Admits(d int64) bool {
	if !l.Full() {
		return true
	}
	w, ok := l.Worst()
	return !ok || d <= w.Distance
}

// Offer inserts c at its sorted position. When the list is full, the worst
// candidate is evicted first if c is strictly better; otherwise c is dropped.
// It reports whether c was kept.
func (l *BoundedList[T]) Offer(c Candidate[T]) bool {
	if l.capacity <= 0 {
		return false
	}
	if l.Full() {
		if Compare(c, l.items[len(l.items)-1]) >= 0 {
			return false
		}
		var zero Candidate[T]
		l.items[len(l.items)-1] = zero
		l.items = l.items[:len(l.items)-1]
	}
	i, _ := slices.BinarySearchFunc(l.items, c, Compare[T])
	l.items = slices.Insert(l.items, i, c)
	return true
}

// Items returns the candidates in ascending order.
// The returned slice aliases the list and is valid until the next Offer or Reset.
func (l *BoundedList[T]) Items() []Candidate[T] { return l.items }

// Values returns the candidate values in ascending order.
func (l *BoundedList[T]) Values() []T {
	out := make([]T, len(l.items))
	for i, c := range l.items {
		out[i] = c.Value
	}
	return out
}

// Reset clears the list for reuse with a new capacity.
func (l *BoundedList[T]) Reset(capacity int) {
	clear(l.items)
	l.items = l.items[:0]
	l.capacity = capacity
}
