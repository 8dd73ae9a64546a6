package database

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

type poolMetric struct {
	desc  *prometheus.Desc
	kind  prometheus.ValueType
	value func() float64
}

// PoolCollector exports connection pool statistics read on every scrape.
type PoolCollector struct {
	service string
	metrics []poolMetric
}

func newPoolMetric(name, help string, kind prometheus.ValueType, value func() float64) poolMetric {
	return poolMetric{
		desc:  prometheus.NewDesc(name, help, []string{"service"}, nil),
		kind:  kind,
		value: value,
	}
}

// NewPostgresPoolCollector exports pgxpool stats under db_pool_*.
func NewPostgresPoolCollector(pool *pgxpool.Pool, service string) *PoolCollector {
	stat := func() *pgxpool.Stat { return pool.Stat() }
	g, c := prometheus.GaugeValue, prometheus.CounterValue
	return &PoolCollector{service: service, metrics: []poolMetric{
		newPoolMetric("db_pool_acquired_connections", "Connections currently in use.", g,
			func() float64 { return float64(stat().AcquiredConns()) }),
		newPoolMetric("db_pool_idle_connections", "Idle connections.", g,
			func() float64 { return float64(stat().IdleConns()) }),
		newPoolMetric("db_pool_total_connections", "Open connections.", g,
			func() float64 { return float64(stat().TotalConns()) }),
		newPoolMetric("db_pool_max_connections", "Configured connection limit.", g,
			func() float64 { return float64(stat().MaxConns()) }),
		newPoolMetric("db_pool_acquire_count_total", "Successful acquires.", c,
			func() float64 { return float64(stat().AcquireCount()) }),
		newPoolMetric("db_pool_acquire_duration_seconds_total", "Time spent acquiring connections.", c,
			func() float64 { return stat().AcquireDuration().Seconds() }),
		newPoolMetric("db_pool_empty_acquire_count_total", "Acquires that had to wait for a connection.", c,
			func() float64 { return float64(stat().EmptyAcquireCount()) }),
	}}
}

// NewRedisPoolCollector exports go-redis pool stats under redis_pool_*.
func NewRedisPoolCollector(client *redis.Client, service string) *PoolCollector {
	stat := func() *redis.PoolStats { return client.PoolStats() }
	g, c := prometheus.GaugeValue, prometheus.CounterValue
	return &PoolCollector{service: service, metrics: []poolMetric{
		newPoolMetric("redis_pool_total_connections", "Open connections.", g,
			func() float64 { return float64(stat().TotalConns) }),
		newPoolMetric("redis_pool_idle_connections", "Idle connections.", g,
			func() float64 { return float64(stat().IdleConns) }),
		newPoolMetric("redis_pool_hits_total", "Connections reused from the pool.", c,
			func() float64 { return float64(stat().Hits) }),
		newPoolMetric("redis_pool_misses_total", "Connections that had to be dialed.", c,
			func() float64 { return float64(stat().Misses) }),
		newPoolMetric("redis_pool_timeouts_total", "Waits for a connection that timed out.", c,
			func() float64 { return float64(stat().Timeouts) }),
		newPoolMetric("redis_pool_stale_connections_total", "Connections removed as stale.", c,
			func() float64 { return float64(stat().StaleConns) }),
	}}
}

func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, m := range c.metrics {
		ch <- m.desc
	}
}

func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	for _, m := range c.metrics {
		ch <- prometheus.MustNewConstMetric(m.desc, m.kind, m.value(), c.service)
	}
}
