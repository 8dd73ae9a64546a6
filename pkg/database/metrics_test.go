package database

import (
	"context"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func describeNames(t *testing.T, c prometheus.Collector) []string {
	t.Helper()
	ch := make(chan *prometheus.Desc, 32)
	c.Describe(ch)
	close(ch)
	var names []string
	for d := range ch {
		names = append(names, d.String())
	}
	return names
}

func TestPostgresPoolCollector_Describe(t *testing.T) {
	// Describe never touches the pool.
	c := NewPostgresPoolCollector(nil, "storefront")
	names := describeNames(t, c)
	require.Len(t, names, 7)
	assert.Contains(t, strings.Join(names, "\n"), "db_pool_acquired_connections")
}

func TestRedisPoolCollector_Collect(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())

	c := NewRedisPoolCollector(client, "storefront")
	assert.Len(t, describeNames(t, c), 6)
	assert.Equal(t, 6, testutil.CollectAndCount(c))

	err := testutil.CollectAndCompare(c, strings.NewReader(`
# HELP redis_pool_total_connections Open connections.
# TYPE redis_pool_total_connections gauge
redis_pool_total_connections{service="storefront"} 1
`), "redis_pool_total_connections")
	assert.NoError(t, err)
}
