// Package testutil provides testing utilities for kdgo.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random integer points and codes, and
// for computing exact nearest neighbors by brute force.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	points := rng.UniquePoints(1000, 3, 100) // distinct coords in [0, 100)
//	data := rng.Data(points)                 // attach faker-generated codes
//
// # Exact Search (Ground Truth)
//
//	expected := testutil.BruteForceKNN(data, query, k)
package testutil
