package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Activity service calls by kind (watering, quiz, ...) and outcome (ok or error kind).
	Activities = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecoplay_activities_total",
			Help: "Activity service calls",
		},
		[]string{"kind", "outcome"},
	)

	PointsAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecoplay_points_awarded_total",
			Help: "Points credited to users",
		},
		[]string{"kind"},
	)

	PointsRedeemed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ecoplay_points_redeemed_total",
			Help: "Points spent on rewards",
		},
	)

	ReqCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecoplay_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ReqDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "ecoplay_http_request_duration_seconds",
			Help: "Request duration seconds",
		},
		[]string{"method", "path"},
	)
)
