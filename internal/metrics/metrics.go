package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elden_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "elden_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReservationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "elden_reservations_created_total",
			Help: "Total number of reservations created in pending state",
		},
	)

	StatusTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elden_reservation_transitions_total",
			Help: "Total number of reservation status transitions",
		},
		[]string{"from", "to"},
	)

	ValidationRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elden_booking_rejections_total",
			Help: "Total number of rejected booking attempts",
		},
		[]string{"reason"},
	)

	AvailabilityResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elden_availability_resolutions_total",
			Help: "Total number of availability resolutions by cache outcome",
		},
		[]string{"cache"},
	)

	SlotsConsumedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "elden_slot_definitions_consumed_total",
			Help: "Total number of slot definitions deleted by confirmations",
		},
	)

	InconsistenciesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elden_lifecycle_inconsistencies_total",
			Help: "Total number of slot matching inconsistencies found on confirmation",
		},
		[]string{"kind"},
	)

	ReviewQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "elden_review_queue_length",
			Help: "Current length of the inconsistency review queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordReservationCreated() {
	ReservationsCreatedTotal.Inc()
}

func RecordTransition(from, to string) {
	StatusTransitionsTotal.WithLabelValues(from, to).Inc()
}

func RecordRejection(reason string) {
	ValidationRejectionsTotal.WithLabelValues(reason).Inc()
}

func RecordResolution(cache string) {
	AvailabilityResolutionsTotal.WithLabelValues(cache).Inc()
}

func RecordSlotConsumed() {
	SlotsConsumedTotal.Inc()
}

func RecordInconsistency(kind string) {
	InconsistenciesTotal.WithLabelValues(kind).Inc()
}
