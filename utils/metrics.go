package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Note cache metrics
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "note_cache_operations_total",
			Help: "Total number of note cache operations by result",
		},
		[]string{"operation", "result"}, // list/get, hit/miss
	)

	CacheErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "note_cache_errors_total",
			Help: "Total number of cache store errors absorbed at the cache boundary",
		},
	)

	// Notes metrics
	NotesOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notes_operations_total",
			Help: "Total number of note operations",
		},
		[]string{"operation"}, // create, update, delete, archive, trash
	)

	// Reminder metrics
	RemindersScheduledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reminders_scheduled_total",
			Help: "Total number of reminder jobs enqueued",
		},
	)

	RemindersDeliveredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminders_delivered_total",
			Help: "Total number of reminder delivery attempts by outcome",
		},
		[]string{"outcome"}, // delivered, skipped, failed
	)

	// Database metrics
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "collection"},
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"type"}, // db, auth, validation, cache, mail
	)
)

// TrackDBOperation tracks database operation duration
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}

// TrackNoteOperation increments the notes operation counter
func TrackNoteOperation(operation string) {
	NotesOperationsTotal.WithLabelValues(operation).Inc()
}

// TrackCacheOperation records a cache lookup outcome
func TrackCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// TrackError increments the error counter by type
func TrackError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}
