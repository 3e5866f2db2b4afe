package kdgo

import (
	"context"
	"io"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/kdgo/codec"
	"github.com/hupe1980/kdgo/kdtree"
	"github.com/hupe1980/kdgo/resource"
)

// Store is a k-d tree guarded for concurrent use.
// Inserts and deletes are serialized; k-NN queries run concurrently with
// each other but never with a mutation.
type Store struct {
	mu     sync.RWMutex
	tree   *kdtree.Tree
	closed bool

	codec            codec.Codec
	metrics          MetricsCollector
	logger           *Logger
	rc               *resource.Controller
	batchParallelism int
}

// New creates an empty store for k-dimensional points whose leaves hold at most m points.
func New(k, m int, optFns ...Option) (*Store, error) {
	tree, err := kdtree.New(k, m)
	if err != nil {
		return nil, translateError(err)
	}

	o := applyOptions(optFns)

	parallelism := o.batchParallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	s := &Store{
		tree:             tree,
		codec:            o.codec,
		metrics:          o.metricsCollector,
		logger:           o.logger.WithDimension(k),
		rc:               resource.NewController(o.resource),
		batchParallelism: parallelism,
	}
	s.logger.Debug("store created", "leaf_capacity", m, "codec", o.codec.Name())
	return s, nil
}

// Insert adds a point with the given code.
// It returns ErrDuplicatePoint if the coords are already stored.
func (s *Store) Insert(ctx context.Context, point []int, code string) error {
	start := time.Now()
	err := s.insert(point, code)
	s.metrics.RecordInsert(time.Since(start), err)
	s.logger.LogInsert(ctx, code, point, err)
	return err
}

func (s *Store) insert(point []int, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return translateError(s.tree.Insert(point, code))
}

// Delete removes the point with the given coords.
// It returns ErrNotFound if no such point is stored.
func (s *Store) Delete(ctx context.Context, point []int) error {
	start := time.Now()
	err := s.delete(point)
	s.metrics.RecordDelete(time.Since(start), err)
	s.logger.LogDelete(ctx, point, err)
	return err
}

func (s *Store) delete(point []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return translateError(s.tree.Delete(point))
}

// KNN returns the k points nearest to point, ordered by ascending squared
// distance and then code, together with the number of leaves visited.
func (s *Store) KNN(ctx context.Context, k int, point []int) (kdtree.Result, error) {
	start := time.Now()
	res, err := s.knn(ctx, k, point)
	s.metrics.RecordSearch(k, res.LeavesChecked, time.Since(start), err)
	s.logger.LogSearch(ctx, k, len(res.Points), res.LeavesChecked, err)
	return res, err
}

func (s *Store) knn(ctx context.Context, k int, point []int) (kdtree.Result, error) {
	if err := s.rc.AcquireQuery(ctx); err != nil {
		return kdtree.Result{}, err
	}
	defer s.rc.ReleaseQuery()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return kdtree.Result{}, ErrClosed
	}
	res, err := s.tree.KNN(k, point)
	return res, translateError(err)
}

// BatchKNN runs one k-NN query per entry of queries concurrently.
// results[i] answers queries[i]. The first failing query cancels the rest.
func (s *Store) BatchKNN(ctx context.Context, k int, queries [][]int) ([]kdtree.Result, error) {
	start := time.Now()
	results, err := s.batchKNN(ctx, k, queries)
	s.metrics.RecordBatchSearch(len(queries), time.Since(start), err)
	s.logger.WithK(k).LogBatchSearch(ctx, len(queries), err)
	return results, err
}

func (s *Store) batchKNN(ctx context.Context, k int, queries [][]int) ([]kdtree.Result, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}

	results := make([]kdtree.Result, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchParallelism)

	for i, q := range queries {
		g.Go(func() error {
			res, err := s.KNN(gctx, k, q)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// KNNJSON runs a k-NN query and encodes the result as indented JSON:
//
//	{"leaveschecked": 1, "points": [{"code": "a", "coords": [0, 0]}]}
func (s *Store) KNNJSON(ctx context.Context, k int, point []int) ([]byte, error) {
	res, err := s.KNN(ctx, k, point)
	if err != nil {
		return nil, err
	}
	return codec.MarshalIndent(s.codec, res)
}

// Dump renders the whole tree as indented JSON. An empty tree renders as {}.
func (s *Store) Dump(ctx context.Context) ([]byte, error) {
	d, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	b, err := codec.MarshalIndent(s.codec, d)
	s.logger.LogDump(ctx, len(b), codec.CompressionNone.String(), err)
	return b, err
}

// DumpTo writes the indented JSON dump to w using the given compression.
// Output is throttled by WithDumpRateLimit when configured.
func (s *Store) DumpTo(ctx context.Context, w io.Writer, c codec.Compression) (err error) {
	var n int
	defer func() { s.logger.LogDump(ctx, n, c.String(), err) }()

	d, err := s.snapshot()
	if err != nil {
		return err
	}
	b, err := codec.MarshalIndent(s.codec, d)
	if err != nil {
		return err
	}

	cw, err := codec.NewCompressedWriter(resource.NewRateLimitedWriter(ctx, w, s.rc), c)
	if err != nil {
		return err
	}
	if n, err = cw.Write(b); err != nil {
		_ = cw.Close()
		return err
	}
	return cw.Close()
}

func (s *Store) snapshot() (kdtree.DumpNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return kdtree.DumpNode{}, ErrClosed
	}
	return s.tree.Dump(), nil
}

// Len returns the number of stored points.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0
	}
	return s.tree.Len()
}

// Points returns every stored point.
func (s *Store) Points() ([]kdtree.Datum, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	return s.tree.Points(), nil
}

// Stats returns the shape of the underlying tree.
func (s *Store) Stats() (kdtree.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return kdtree.Stats{}, ErrClosed
	}
	return s.tree.Stats(), nil
}

// Validate checks the structural invariants of the underlying tree.
func (s *Store) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return s.tree.Validate()
}
