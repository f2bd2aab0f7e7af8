// Package observability holds the prometheus collectors shared by the server.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "octofit"

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	recomputeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "leaderboard",
		Name:      "recompute_total",
		Help:      "Leaderboard recomputations by result.",
	}, []string{"result"})
	recomputeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "leaderboard",
		Name:      "recompute_duration_seconds",
		Help:      "Time spent recomputing and persisting the leaderboard.",
		Buckets:   prometheus.DefBuckets,
	})
	leaderboardEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "leaderboard",
		Name:      "entries",
		Help:      "Entries written by the most recent recompute.",
	})

	workerBackpressure = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "worker",
		Name:      "backpressure_total",
		Help:      "Recompute tasks rejected because the queue was full.",
	})
	workerQueueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "worker",
		Name:      "queue_depth",
		Help:      "Recompute tasks waiting in the queue.",
	})

	eventsPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Domain events handed to the broker by topic and result.",
	}, []string{"topic", "result"})

	simulatedActivities = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "simulator",
		Name:      "activities_total",
		Help:      "Activities generated by the simulator.",
	})

	websocketClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "websocket",
		Name:      "clients",
		Help:      "Connected websocket clients.",
	})
)

func init() {
	prometheus.MustRegister(
		httpRequests,
		httpDuration,
		recomputeTotal,
		recomputeDuration,
		leaderboardEntries,
		workerBackpressure,
		workerQueueDepth,
		eventsPublished,
		simulatedActivities,
		websocketClients,
	)
}

// ObserveHTTPRequest records one served request
func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordRecompute records the outcome of one leaderboard recompute
func RecordRecompute(entries int, elapsed time.Duration, err error) {
	if err != nil {
		recomputeTotal.WithLabelValues("error").Inc()
		return
	}
	recomputeTotal.WithLabelValues("ok").Inc()
	recomputeDuration.Observe(elapsed.Seconds())
	leaderboardEntries.Set(float64(entries))
}

// RecordBackpressure counts a rejected recompute submission
func RecordBackpressure() {
	workerBackpressure.Inc()
}

// SetQueueDepth reports the current recompute queue length
func SetQueueDepth(n int) {
	workerQueueDepth.Set(float64(n))
}

// RecordEventPublished counts an event publish attempt
func RecordEventPublished(topic string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	eventsPublished.WithLabelValues(topic, result).Inc()
}

// RecordSimulatedActivity counts an activity created by the simulator
func RecordSimulatedActivity() {
	simulatedActivities.Inc()
}

// SetWebsocketClients reports the number of connected websocket clients
func SetWebsocketClients(n int) {
	websocketClients.Set(float64(n))
}
