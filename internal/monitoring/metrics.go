package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_total",
			Help: "Booking attempts by outcome",
		},
		[]string{"outcome"},
	)

	seatConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seat_conflicts_total",
			Help: "Seats reported unavailable at claim time",
		},
		[]string{"event_id"},
	)

	claimDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "booking_claim_duration_seconds",
			Help:    "Time from booking request to confirmation or rejection",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
	)

	seatMapCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seatmap_cache_lookups_total",
			Help: "Seat map cache lookups by result",
		},
		[]string{"result"},
	)
)

// Booking outcomes.
const (
	OutcomeConfirmed = "confirmed"
	OutcomeConflict  = "conflict"
	OutcomeRejected  = "rejected"
	OutcomeError     = "error"
)

func RecordBooking(outcome string, took time.Duration) {
	bookingsTotal.WithLabelValues(outcome).Inc()
	claimDuration.Observe(took.Seconds())
}

func RecordSeatConflicts(eventID string, n int) {
	seatConflictsTotal.WithLabelValues(eventID).Add(float64(n))
}

func RecordCacheLookup(hit bool) {
	if hit {
		seatMapCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	seatMapCacheLookups.WithLabelValues("miss").Inc()
}
