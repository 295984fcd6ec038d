package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus collectors for the interview service
type Metrics struct {
	// Session lifecycle
	SessionsCreated   prometheus.Counter
	SessionFailures   prometheus.Counter
	SessionsFinalized prometheus.Counter
	SessionDuration   prometheus.Histogram
	ActiveSessions    prometheus.Gauge

	// Transcript recording
	TurnsRecorded      *prometheus.CounterVec
	TranscriptsWritten prometheus.Counter
	TranscriptFailures prometheus.Counter

	// Notifications
	NotificationsSent    prometheus.Counter
	NotificationFailures prometheus.Counter
}

// NewMetrics creates all collectors and registers them with reg. A nil
// registerer leaves the collectors unregistered, which keeps repeated
// construction safe in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Session lifecycle
		SessionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "aria_sessions_created_total",
			Help: "Total number of interview sessions created",
		}),
		SessionFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "aria_session_create_failures_total",
			Help: "Total number of failed session creation attempts",
		}),
		SessionsFinalized: factory.NewCounter(prometheus.CounterOpts{
			Name: "aria_sessions_finalized_total",
			Help: "Total number of interview sessions finalized",
		}),
		SessionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "aria_session_duration_seconds",
			Help:    "Duration of finalized interview sessions in seconds",
			Buckets: prometheus.ExponentialBuckets(15, 2, 7), // 15s to ~16 minutes
		}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "aria_active_sessions",
			Help: "Current number of unfinalized interview sessions",
		}),

		// Transcript recording
		TurnsRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aria_turns_recorded_total",
			Help: "Total number of transcript turns recorded",
		}, []string{"speaker"}),
		TranscriptsWritten: factory.NewCounter(prometheus.CounterOpts{
			Name: "aria_transcripts_written_total",
			Help: "Total number of transcript files written",
		}),
		TranscriptFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "aria_transcript_write_failures_total",
			Help: "Total number of failed transcript writes",
		}),

		// Notifications
		NotificationsSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "aria_notifications_sent_total",
			Help: "Total number of completion notifications sent",
		}),
		NotificationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "aria_notification_failures_total",
			Help: "Total number of failed completion notifications",
		}),
	}
}

// RecordSessionCreated increments the sessions created counter
func (m *Metrics) RecordSessionCreated() {
	m.SessionsCreated.Inc()
}

// RecordSessionFailure increments the session creation failures counter
func (m *Metrics) RecordSessionFailure() {
	m.SessionFailures.Inc()
}

// RecordSessionFinalized increments the finalized counter and records duration
func (m *Metrics) RecordSessionFinalized(durationSeconds float64) {
	m.SessionsFinalized.Inc()
	m.SessionDuration.Observe(durationSeconds)
}

// SetActiveSessions sets the current number of unfinalized sessions
func (m *Metrics) SetActiveSessions(count int) {
	m.ActiveSessions.Set(float64(count))
}

// RecordTurn increments the turns recorded counter for the given speaker
func (m *Metrics) RecordTurn(speaker string) {
	m.TurnsRecorded.WithLabelValues(speaker).Inc()
}

// RecordTranscriptWritten increments the transcripts written counter
func (m *Metrics) RecordTranscriptWritten() {
	m.TranscriptsWritten.Inc()
}

// RecordTranscriptFailure increments the transcript write failures counter
func (m *Metrics) RecordTranscriptFailure() {
	m.TranscriptFailures.Inc()
}

// RecordNotificationSent increments the notifications sent counter
func (m *Metrics) RecordNotificationSent() {
	m.NotificationsSent.Inc()
}

// RecordNotificationFailure increments the notification failures counter
func (m *Metrics) RecordNotificationFailure() {
	m.NotificationFailures.Inc()
}
