package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketr_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ticketr_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	Recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketr_recommendations_total",
			Help: "Chat recommendations by outcome (matched, empty, degraded)",
		},
		[]string{"outcome"},
	)

	ChatRecordFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ticketr_chat_record_failures_total",
			Help: "Chat turns that could not be persisted",
		},
	)

	TicketEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketr_ticket_events_published_total",
			Help: "ticket.issued messages by publish result",
		},
		[]string{"result"},
	)

	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ticketr_circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)
)
