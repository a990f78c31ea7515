package pill

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricEventsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pill_events_enqueued_total",
		Help: "Total number of events buffered while waiting for the session.",
	})

	metricEventsDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pill_events_delivered_total",
		Help: "Total number of events accepted by the collector, labelled by type.",
	}, []string{"type"})

	metricEventsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pill_events_failed_total",
		Help: "Total number of event sends that failed, labelled by type.",
	}, []string{"type"})

	metricHeartbeats = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pill_heartbeats_total",
		Help: "Total number of poll heartbeats attempted.",
	})

	metricPriceFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pill_price_fetches_total",
		Help: "Total number of quote fetches, labelled by outcome (ok, missing, error).",
	}, []string{"outcome"})
)
