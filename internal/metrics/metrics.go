package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "altus_upstream_requests_total",
			Help: "Total Open-Meteo API calls",
		},
		[]string{"service", "status"},
	)

	UpstreamLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "altus_upstream_latency_seconds",
			Help:    "Open-Meteo API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)

	AlertsEvaluated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "altus_alerts_evaluated_total",
			Help: "Alert evaluations by outcome",
		},
		[]string{"type", "fired"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "altus_notifications_total",
			Help: "Alert notifications dispatched",
		},
		[]string{"type", "status"},
	)

	FavoritesChanged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "altus_favorites_changes_total",
			Help: "Favorites list mutations",
		},
		[]string{"action"},
	)
)
