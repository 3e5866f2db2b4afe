package testutil

import (
	"cmp"
	"fmt"
	"math/rand"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/go-faker/faker/v4"

	"github.com/hupe1980/kdgo/kdtree"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Point returns a random point with dims coordinates in [0, maxVal).
func (r *RNG) Point(dims, maxVal int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pointLocked(dims, maxVal)
}

func (r *RNG) pointLocked(dims, maxVal int) []int {
	p := make([]int, dims)
	for i := range p {
		p[i] = r.rand.Intn(maxVal)
	}
	return p
}

// UniquePoints returns num points with pairwise distinct coords in [0, maxVal).
// It panics if the grid cannot hold num distinct points.
func (r *RNG) UniquePoints(num, dims, maxVal int) [][]int {
	capacity := 1
	for range dims {
		capacity *= maxVal
		if capacity >= num {
			break
		}
	}
	if capacity < num {
		panic(fmt.Sprintf("testutil: cannot draw %d unique points from a %d^%d grid", num, maxVal, dims))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, num)
	out := make([][]int, 0, num)
	for len(out) < num {
		p := r.pointLocked(dims, maxVal)
		key := Key(p)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Data attaches a unique code to every point.
// Codes are a faker word suffixed with the point's index.
func (r *RNG) Data(points [][]int) []kdtree.Datum {
	out := make([]kdtree.Datum, len(points))
	for i, p := range points {
		out[i] = kdtree.Datum{Code: RandomCode(i), Coords: p}
	}
	return out
}

// RandomCode returns a human-readable code that is unique per index.
func RandomCode(i int) string {
	return strings.ToLower(faker.Word()) + "-" + strconv.Itoa(i)
}

// Key returns a map key for coords.
func Key(coords []int) string {
	return fmt.Sprint(coords)
}

// BruteForceKNN returns the k data nearest to query ordered by ascending
// squared distance, then ascending code.
func BruteForceKNN(data []kdtree.Datum, query []int, k int) []kdtree.Datum {
	type result struct {
		datum kdtree.Datum
		dist  int64
	}

	results := make([]result, len(data))
	for i, d := range data {
		results[i] = result{datum: d, dist: kdtree.PointDistanceSquared(d.Coords, query)}
	}

	slices.SortFunc(results, func(a, b result) int {
		if c := cmp.Compare(a.dist, b.dist); c != 0 {
			return c
		}
		return cmp.Compare(a.datum.Code, b.datum.Code)
	})

	if len(results) > k {
		results = results[:k]
	}

	out := make([]kdtree.Datum, len(results))
	for i, r := range results {
		out[i] = r.datum
	}
	return out
}
