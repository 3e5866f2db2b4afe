package prom

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/kdgo"
)

func TestCollector(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	c, err := New(reg, "kdgo")
	require.NoError(t, err)

	s, err := kdgo.New(2, 2, kdgo.WithMetricsCollector(c))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Insert(ctx, []int{0, 0}, "a"))
	require.NoError(t, s.Insert(ctx, []int{5, 5}, "b"))
	require.Error(t, s.Insert(ctx, []int{5, 5}, "c"))
	require.NoError(t, s.Delete(ctx, []int{0, 0}))
	_, err = s.KNN(ctx, 1, []int{1, 1})
	require.NoError(t, err)
	_, err = s.BatchKNN(ctx, 1, [][]int{{0, 0}, {9, 9}, {3, 3}})
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.ops.WithLabelValues("insert", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ops.WithLabelValues("insert", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ops.WithLabelValues("delete", "ok")))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.ops.WithLabelValues("search", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ops.WithLabelValues("batch_search", "ok")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.batchQueries))

	n, err := testutil.GatherAndCount(reg, "kdgo_search_leaves_checked")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNewDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg, "kdgo")
	require.NoError(t, err)

	_, err = New(reg, "kdgo")
	assert.Error(t, err)
}
