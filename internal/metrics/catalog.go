package metrics

import "github.com/prometheus/client_golang/prometheus"

// Catalog and search Prometheus metrics.
var (
	CatalogLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "logodex",
			Name:      "catalog_loads_total",
			Help:      "Index load attempts by outcome",
		},
		[]string{"status"}, // "ok" / "error"
	)

	CatalogRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "logodex",
			Name:      "catalog_records",
			Help:      "Number of records in the loaded index",
		},
	)

	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "logodex",
			Name:      "searches_total",
			Help:      "Search requests by variant",
		},
		[]string{"variant"}, // "structured" / "fuzzy" / "legacy"
	)
)

var catalogMetricsRegistered bool

// RegisterCatalogMetrics registers catalog and search metrics. Must be called once from main.
func RegisterCatalogMetrics() {
	if catalogMetricsRegistered {
		return
	}
	prometheus.MustRegister(CatalogLoadsTotal)
	prometheus.MustRegister(CatalogRecords)
	prometheus.MustRegister(SearchesTotal)
	catalogMetricsRegistered = true
}
