package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Scan pipeline metrics
	ScansTotal   *prometheus.CounterVec
	ScanDuration prometheus.Histogram
	ScanTimeouts prometheus.Counter

	// Request queue metrics
	QueueDepth     prometheus.Gauge
	QueueCooldowns prometheus.Counter

	// Cache metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	// Mutation pipeline metrics
	MintsTotal   *prometheus.CounterVec
	UploadsTotal *prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Get returns the singleton metrics instance, registering all collectors
// on first use.
func Get() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"method", "path", "status"},
			),
			ScansTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "ledger_scans_total",
					Help: "Collection scans against the ledger by outcome",
				},
				[]string{"outcome"},
			),
			ScanDuration: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "ledger_scan_duration_seconds",
					Help:    "Wall-clock duration of collection scans",
					Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15, 30},
				},
			),
			ScanTimeouts: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "ledger_scan_timeouts_total",
					Help: "Scans that exceeded the wall-clock timeout",
				},
			),
			QueueDepth: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "request_queue_depth",
					Help: "Operations waiting in the rate-limited request queue",
				},
			),
			QueueCooldowns: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "request_queue_cooldowns_total",
					Help: "Cooldown pauses triggered by rate-limit responses",
				},
			),
			CacheHits: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "content_cache_hits_total",
					Help: "Cache hits by key class",
				},
				[]string{"class"},
			),
			CacheMisses: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "content_cache_misses_total",
					Help: "Cache misses (including expired entries) by key class",
				},
				[]string{"class"},
			),
			MintsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "content_mints_total",
					Help: "Mint attempts by content kind and outcome",
				},
				[]string{"kind", "outcome"},
			),
			UploadsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "image_uploads_total",
					Help: "Image upload attempts by outcome",
				},
				[]string{"outcome"},
			),
		}
	})
	return instance
}
