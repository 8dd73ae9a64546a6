package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	snapshotWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_snapshot_writes_total",
		Help: "Snapshot writes after a mutation, by kind and result.",
	}, []string{"kind", "result"})

	snapshotLoadFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_snapshot_load_failures_total",
		Help: "Snapshots that could not be loaded and were replaced by an empty collection.",
	}, []string{"kind", "reason"})

	liveStores = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "storefront_live_stores",
		Help: "Session stores currently held in memory.",
	}, []string{"kind"})
)
