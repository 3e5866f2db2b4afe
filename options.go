package kdgo

import (
	"log/slog"

	"github.com/hupe1980/kdgo/codec"
	"github.com/hupe1980/kdgo/resource"
)

type options struct {
	codec            codec.Codec
	metricsCollector MetricsCollector
	logger           *Logger
	resource         resource.Config
	batchParallelism int
}

// Option configures Store constructor behavior.
type Option func(*options)

// WithCodec configures the codec used for dumps and JSON results.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &kdgo.BasicMetricsCollector{}
//	s, _ := kdgo.New(2, 8, kdgo.WithMetricsCollector(metrics))
//	// ... use s ...
//	stats := metrics.GetStats()
//	fmt.Printf("Searches: %d, Avg leaves: %d\n", stats.SearchCount, stats.SearchAvgLeaves)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := kdgo.NewJSONLogger(slog.LevelInfo)
//	s, _ := kdgo.New(2, 8, kdgo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMaxConcurrentQueries bounds the number of k-NN queries running at once.
// n <= 0 means unlimited.
func WithMaxConcurrentQueries(n int64) Option {
	return func(o *options) {
		o.resource.MaxConcurrentQueries = max(n, 0)
	}
}

// WithQueryRateLimit limits query admission to qps queries per second with
// the given burst. qps <= 0 disables the limit.
func WithQueryRateLimit(qps float64, burst int) Option {
	return func(o *options) {
		o.resource.QueriesPerSec = max(qps, 0)
		o.resource.QueryBurst = burst
	}
}

// WithDumpRateLimit throttles DumpTo output to bytesPerSec.
// bytesPerSec <= 0 disables the limit.
func WithDumpRateLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.resource.DumpBytesPerSec = max(bytesPerSec, 0)
	}
}

// WithBatchParallelism sets how many queries of a BatchKNN call run concurrently.
// n <= 0 uses GOMAXPROCS.
func WithBatchParallelism(n int) Option {
	return func(o *options) {
		o.batchParallelism = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
