package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookmarksCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fusen_bookmarks_created_total",
		Help: "Bookmarks successfully created.",
	})

	BookmarksUpdatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fusen_bookmarks_updated_total",
		Help: "Bookmarks successfully updated.",
	})

	BookmarksDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fusen_bookmarks_deleted_total",
		Help: "Bookmarks successfully deleted.",
	})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fusen_http_request_duration_seconds",
		Help:    "Time from request receipt to response.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "status"})
)
