package pricing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// cacheHits counts price lookups answered from the sqlite cache
	cacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "korona_price_cache_hits_total",
			Help: "Total number of price lookups served from the cache",
		},
	)

	// cacheMisses counts price lookups that required a product fetch
	cacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "korona_price_cache_misses_total",
			Help: "Total number of price lookups not found in the cache",
		},
	)

	// resolveFailures counts lookups that degraded to the N/A sentinel
	resolveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "korona_price_resolve_failures_total",
			Help: "Total number of price resolutions that fell back to the sentinel",
		},
	)
)
