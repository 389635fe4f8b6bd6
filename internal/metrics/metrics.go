package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RouteEstimates    *prometheus.CounterVec
	EstimateSeconds   prometheus.Histogram
	SnapshotRefreshes *prometheus.CounterVec
	SnapshotRegions   prometheus.Gauge
	HTTPRequests      *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RouteEstimates: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hermes_route_estimates_total",
			Help: "Total number of route estimations by outcome.",
		}, []string{"status"}),
		EstimateSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "hermes_route_estimate_duration_seconds",
			Help:    "Duration of route estimations.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
		SnapshotRefreshes: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hermes_snapshot_refreshes_total",
			Help: "Total number of traffic snapshot refreshes by outcome.",
		}, []string{"status"}),
		SnapshotRegions: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "hermes_snapshot_regions",
			Help: "Number of regions in the current traffic snapshot.",
		}),
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hermes_http_requests_total",
			Help: "Total number of HTTP requests by path and status code.",
		}, []string{"path", "code"}),
	}
}
