// Package kdgo provides a thread-safe store around a bucketed k-d tree.
//
// The tree itself lives in package kdtree and assumes exclusive access; Store
// adds a read/write lock, structured logging, metrics, query admission
// control, concurrent batch queries and JSON dumps.
//
// # Quick Start
//
//	ctx := context.Background()
//	s, _ := kdgo.New(2, 4) // 2-dimensional points, leaves of up to 4
//	defer s.Close()
//
//	_ = s.Insert(ctx, []int{0, 0}, "a")
//	_ = s.Insert(ctx, []int{10, 10}, "b")
//
//	res, _ := s.KNN(ctx, 1, []int{1, 1})
//	fmt.Println(res.Points[0].Code) // a
//
// # Batch Queries
//
// BatchKNN runs many read-only queries concurrently. Mutations wait until
// every running query has finished:
//
//	results, _ := s.BatchKNN(ctx, 5, queries)
//
// # Dumps
//
// Dump renders the tree as indented JSON. DumpTo streams the same document
// through an optional zstd or lz4 compressor:
//
//	_ = s.DumpTo(ctx, f, codec.CompressionZstd)
//
// # Observability
//
//	metrics := &kdgo.BasicMetricsCollector{}
//	s, _ := kdgo.New(3, 8,
//	    kdgo.WithLogger(kdgo.NewJSONLogger(slog.LevelDebug)),
//	    kdgo.WithMetricsCollector(metrics),
//	    kdgo.WithMaxConcurrentQueries(16),
//	)
package kdgo
