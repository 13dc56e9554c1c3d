package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CatalogEntries tracks the number of food entries in the icon index
	CatalogEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pantrypal_catalog_entries",
		Help: "Number of catalog entries eligible for ingredient icon matching",
	})

	// IconLookupsTotal tracks icon lookups by the stage that resolved them ("none" on a miss)
	IconLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pantrypal_icon_lookups_total",
		Help: "Total number of ingredient icon lookups by resolving stage",
	}, []string{"stage"})

	// IconCacheTotal tracks icon cache results
	IconCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pantrypal_icon_cache_total",
		Help: "Total number of icon cache lookups by result",
	}, []string{"result"})

	// StepsProcessedTotal tracks normalized steps by outcome
	StepsProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pantrypal_steps_processed_total",
		Help: "Total number of recipe steps processed by outcome",
	}, []string{"outcome"})

	// HTTPRequestsTotal tracks HTTP requests by path and status code
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"path", "code"})

	// CatalogFetchRetriesTotal tracks retried remote catalog requests
	CatalogFetchRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pantrypal_catalog_fetch_retries_total",
		Help: "Total number of retried remote catalog requests",
	})
)

// SetCatalogEntries records the size of the built index
func SetCatalogEntries(n int) {
	CatalogEntries.Set(float64(n))
}

// RecordIconLookup increments the lookup counter for a stage
func RecordIconLookup(stage string) {
	IconLookupsTotal.WithLabelValues(stage).Inc()
}

// RecordIconCache increments the cache counter for a result ("hit" or "miss")
func RecordIconCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	IconCacheTotal.WithLabelValues(result).Inc()
}

// RecordSteps adds the kept and dropped step counts of one normalization
func RecordSteps(kept, dropped int) {
	StepsProcessedTotal.WithLabelValues("kept").Add(float64(kept))
	StepsProcessedTotal.WithLabelValues("dropped").Add(float64(dropped))
}

// RecordHTTPRequest increments the HTTP request counter
func RecordHTTPRequest(path, code string) {
	HTTPRequestsTotal.WithLabelValues(path, code).Inc()
}

// RecordCatalogFetchRetry increments the remote catalog retry counter
func RecordCatalogFetchRetry() {
	CatalogFetchRetriesTotal.Inc()
}
