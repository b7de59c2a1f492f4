package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("GET", "/facilities/:facilityID/availability", "200", 0.5)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/facilities/:facilityID/availability", "200"))
	assert.Equal(t, float64(1), count)
	assert.Equal(t, 1, testutil.CollectAndCount(HTTPRequestDuration))
}

func TestRecordHTTPRequestMultiple(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/reservations", "201", 0.1)
	RecordHTTPRequest("POST", "/reservations", "201", 0.2)
	RecordHTTPRequest("POST", "/reservations", "409", 0.05)

	assert.Equal(t, float64(2), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/reservations", "201")))
	assert.Equal(t, float64(1), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/reservations", "409")))
}

func TestRecordReservationCreated(t *testing.T) {
	testCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "elden_reservations_created_total_test",
		Help: "Total number of reservations created in pending state",
	})

	old := ReservationsCreatedTotal
	ReservationsCreatedTotal = testCounter
	defer func() { ReservationsCreatedTotal = old }()

	RecordReservationCreated()
	RecordReservationCreated()

	assert.Equal(t, float64(2), testutil.ToFloat64(testCounter))
}

func TestRecordTransition(t *testing.T) {
	StatusTransitionsTotal.Reset()

	RecordTransition("pending", "confirmed")
	RecordTransition("pending", "cancelled")
	RecordTransition("pending", "confirmed")

	assert.Equal(t, float64(2), testutil.ToFloat64(StatusTransitionsTotal.WithLabelValues("pending", "confirmed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(StatusTransitionsTotal.WithLabelValues("pending", "cancelled")))
}

func TestRecordRejection(t *testing.T) {
	ValidationRejectionsTotal.Reset()

	RecordRejection("outside_business_hours")
	RecordRejection("slot_unavailable")

	assert.Equal(t, float64(1), testutil.ToFloat64(ValidationRejectionsTotal.WithLabelValues("outside_business_hours")))
	assert.Equal(t, float64(1), testutil.ToFloat64(ValidationRejectionsTotal.WithLabelValues("slot_unavailable")))
}

func TestRecordResolution(t *testing.T) {
	AvailabilityResolutionsTotal.Reset()

	RecordResolution("hit")
	RecordResolution("miss")
	RecordResolution("hit")

	assert.Equal(t, float64(2), testutil.ToFloat64(AvailabilityResolutionsTotal.WithLabelValues("hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(AvailabilityResolutionsTotal.WithLabelValues("miss")))
}

func TestRecordInconsistency(t *testing.T) {
	InconsistenciesTotal.Reset()

	RecordInconsistency("no_match")
	RecordInconsistency("multiple_matches")

	assert.Equal(t, float64(1), testutil.ToFloat64(InconsistenciesTotal.WithLabelValues("no_match")))
	assert.Equal(t, float64(1), testutil.ToFloat64(InconsistenciesTotal.WithLabelValues("multiple_matches")))
}

func TestReviewQueueLength(t *testing.T) {
	ReviewQueueLength.Set(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(ReviewQueueLength))

	ReviewQueueLength.Set(0)
	assert.Equal(t, float64(0), testutil.ToFloat64(ReviewQueueLength))
}
