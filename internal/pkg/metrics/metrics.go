package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rental_booking",
			Name:      "booking_transitions_total",
			Help:      "Booking lifecycle transitions by transition and outcome.",
		},
		[]string{"transition", "outcome"},
	)

	paymentEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rental_booking",
			Name:      "payment_events_total",
			Help:      "Processor notifications by category and reconciliation outcome.",
		},
		[]string{"category", "outcome"},
	)

	notificationsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rental_booking",
			Name:      "notification_jobs_published_total",
			Help:      "Outbox notification publish attempts by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingTransitions, paymentEvents, notificationsPublished)
	})
}

func IncBookingTransition(transition, outcome string) {
	bookingTransitions.WithLabelValues(transition, outcome).Inc()
}

func IncPaymentEvent(category, outcome string) {
	paymentEvents.WithLabelValues(category, outcome).Inc()
}

func IncNotificationPublished(outcome string) {
	notificationsPublished.WithLabelValues(outcome).Inc()
}
