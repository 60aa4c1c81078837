package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Snapshot Cache Metrics
var (
	// SnapshotFetchesTotal tracks full-collection fetches by outcome
	SnapshotFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_fetches_total",
			Help: "Total full-collection fetches from the record store by status",
		},
		[]string{"status"},
	)

	// SnapshotFetchDuration tracks fetch latency in seconds
	SnapshotFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "snapshot_fetch_duration_seconds",
			Help:    "Full-collection fetch duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	// SnapshotRefreshesCoalesced tracks triggers absorbed into an in-flight fetch
	SnapshotRefreshesCoalesced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "snapshot_refreshes_coalesced_total",
			Help: "Refresh triggers coalesced into an already in-flight fetch",
		},
	)

	// SnapshotRecords tracks the current snapshot size
	SnapshotRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_records",
			Help: "Number of feedback records in the current snapshot",
		},
	)

	// SnapshotStale indicates whether the snapshot is flagged stale (1) or fresh (0)
	SnapshotStale = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_stale",
			Help: "Whether the current snapshot is stale (1) or fresh (0)",
		},
	)
)

// Classifier Metrics
var (
	// ClassificationsTotal tracks classifier verdicts by label
	ClassificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classifications_total",
			Help: "Total classifier verdicts by sentiment label",
		},
		[]string{"label"},
	)
)

// Write Path Metrics
var (
	// FeedbackInsertsTotal tracks insert attempts by status
	FeedbackInsertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_inserts_total",
			Help: "Total feedback insert attempts by status",
		},
		[]string{"status"},
	)

	// StatusUpdatesTotal tracks resolution status updates by status
	StatusUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "status_updates_total",
			Help: "Total resolution status update attempts by status",
		},
		[]string{"status"},
	)
)

// Change Notifier Metrics
var (
	// ChangeNotificationsTotal tracks change signals received over pub/sub
	ChangeNotificationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "change_notifications_total",
			Help: "Total zero-payload change notifications received",
		},
	)
)

// WebSocket Metrics
var (
	// WebSocketConnectedClients tracks currently connected dashboard clients
	WebSocketConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connected_clients",
			Help: "Number of connected WebSocket dashboard clients",
		},
	)

	// WebSocketBroadcastsTotal tracks change events pushed to clients
	WebSocketBroadcastsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_broadcasts_total",
			Help: "Total change events broadcast to WebSocket clients",
		},
	)
)

// Circuit Breaker Metrics
var (
	// CircuitBreakerStateChanges tracks breaker transitions by new state
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)

	// CircuitBreakerState tracks current breaker state (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)
)
