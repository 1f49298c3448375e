package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymdesk_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReservationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_reservations_total",
			Help: "Total number of reservations created",
		},
		[]string{"membership_type"},
	)

	ReservationCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_reservation_cancellations_total",
			Help: "Total number of reservation cancellations",
		},
	)

	AttendancesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_attendances_total",
			Help: "Total number of attendances recorded",
		},
		[]string{"type"},
	)

	NoShowsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_no_shows_total",
			Help: "Total number of reservations marked as no-show",
		},
	)

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"status"},
	)

	MembershipsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_memberships_created_total",
			Help: "Total number of memberships created",
		},
		[]string{"type"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gymdesk_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordReservation(membershipType string) {
	ReservationsTotal.WithLabelValues(membershipType).Inc()
}

func RecordReservationCancellation() {
	ReservationCancellationsTotal.Inc()
}

func RecordAttendance(attendanceType string) {
	AttendancesTotal.WithLabelValues(attendanceType).Inc()
}

func RecordNoShow() {
	NoShowsTotal.Inc()
}

func RecordLogin(status string) {
	LoginsTotal.WithLabelValues(status).Inc()
}

func RecordMembership(membershipType string) {
	MembershipsCreatedTotal.WithLabelValues(membershipType).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
