// Package resource provides admission control for tree queries and dumps.
package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxConcurrentQueries is the maximum number of k-NN queries running at once.
	// If 0, concurrency is unlimited (only tracked).
	MaxConcurrentQueries int64

	// QueriesPerSec is the sustained query admission rate.
	// If 0, unlimited.
	QueriesPerSec float64

	// QueryBurst is the number of queries admitted at once above QueriesPerSec.
	// If 0, defaults to 1.
	QueryBurst int

	// DumpBytesPerSec is the maximum throughput for dump output.
	// If 0, unlimited.
	DumpBytesPerSec int64
}

// Controller manages query concurrency and throughput.
// A nil *Controller admits everything.
type Controller struct {
	cfg Config

	// Concurrency
	querySem *semaphore.Weighted // nil if unlimited
	inFlight atomic.Int64

	// Throughput
	queryLimiter *rate.Limiter
	dumpLimiter  *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.QueryBurst <= 0 {
		cfg.QueryBurst = 1
	}

	c := &Controller{cfg: cfg}

	if cfg.MaxConcurrentQueries > 0 {
		c.querySem = semaphore.NewWeighted(cfg.MaxConcurrentQueries)
	}

	if cfg.QueriesPerSec > 0 {
		c.queryLimiter = rate.NewLimiter(rate.Limit(cfg.QueriesPerSec), cfg.QueryBurst)
	}

	if cfg.DumpBytesPerSec > 0 {
		c.dumpLimiter = rate.NewLimiter(rate.Limit(cfg.DumpBytesPerSec), int(cfg.DumpBytesPerSec))
	}

	return c
}

// Config returns the limits the controller was created with.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// AcquireQuery waits for the rate limiter and a free query slot.
// It blocks until both are available or ctx is canceled.
// Every successful call must be paired with ReleaseQuery.
func (c *Controller) AcquireQuery(ctx context.Context) error {
	if c == nil {
		return ctx.Err()
	}

	if c.queryLimiter != nil {
		if err := c.queryLimiter.Wait(ctx); err != nil {
			return err
		}
	}

	if c.querySem != nil {
		if err := c.querySem.Acquire(ctx, 1); err != nil {
			return err
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}

	c.inFlight.Add(1)
	return nil
}

// TryAcquireQuery attempts to admit a query without blocking.
func (c *Controller) TryAcquireQuery() bool {
	if c == nil {
		return true
	}

	if c.queryLimiter != nil && !c.queryLimiter.Allow() {
		return false
	}

	if c.querySem != nil && !c.querySem.TryAcquire(1) {
		return false
	}

	c.inFlight.Add(1)
	return true
}

// ReleaseQuery releases a query slot.
func (c *Controller) ReleaseQuery() {
	if c == nil {
		return
	}

	if c.querySem != nil {
		c.querySem.Release(1)
	}
	c.inFlight.Add(-1)
}

// InFlight returns the number of admitted queries that have not been released.
func (c *Controller) InFlight() int64 {
	if c == nil {
		return 0
	}
	return c.inFlight.Load()
}

// AcquireDump waits until the dump limit allows the specified number of bytes.
func (c *Controller) AcquireDump(ctx context.Context, bytes int) error {
	if c == nil || c.dumpLimiter == nil {
		return nil
	}
	// WaitN rejects requests larger than the burst; feed it in burst-sized chunks.
	burst := c.dumpLimiter.Burst()
	for bytes > 0 {
		n := min(bytes, burst)
		if err := c.dumpLimiter.WaitN(ctx, n); err != nil {
			return err
		}
		bytes -= n
	}
	return nil
}
