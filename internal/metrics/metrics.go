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

	MembershipsSoldTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_memberships_sold_total",
			Help: "Total number of memberships sold",
		},
		[]string{"category", "payment_method"},
	)

	MembershipFreezesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_membership_freezes_total",
			Help: "Total number of membership freezes",
		},
	)

	ClassRegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_class_registrations_total",
			Help: "Total number of class registrations",
		},
		[]string{"class_type"},
	)

	AttendanceMarksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_attendance_marks_total",
			Help: "Total number of attendance marks",
		},
		[]string{"attended"},
	)

	PaymentsRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_payments_recorded_total",
			Help: "Total number of payments recorded",
		},
		[]string{"method"},
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

func RecordMembershipSale(category, paymentMethod string) {
	MembershipsSoldTotal.WithLabelValues(category, paymentMethod).Inc()
}

func RecordFreeze() {
	MembershipFreezesTotal.Inc()
}

func RecordClassRegistration(classType string) {
	ClassRegistrationsTotal.WithLabelValues(classType).Inc()
}

func RecordAttendanceMark(attended bool) {
	if attended {
		AttendanceMarksTotal.WithLabelValues("true").Inc()
	} else {
		AttendanceMarksTotal.WithLabelValues("false").Inc()
	}
}

func RecordPayment(method string) {
	PaymentsRecordedTotal.WithLabelValues(method).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func SetEmailQueueLength(length int64) {
	EmailQueueLength.Set(float64(length))
}
