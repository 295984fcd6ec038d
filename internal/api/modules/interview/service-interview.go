package interview_module

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mtopaz/usc-workshop-aria/internal/interview"
	"github.com/mtopaz/usc-workshop-aria/internal/metrics"
	"github.com/mtopaz/usc-workshop-aria/internal/notify"
	"github.com/mtopaz/usc-workshop-aria/internal/realtime"
	"github.com/mtopaz/usc-workshop-aria/internal/stores/session"
	"github.com/mtopaz/usc-workshop-aria/internal/stores/transcript"
	"github.com/mtopaz/usc-workshop-aria/pkg/sdk"
	"github.com/mtopaz/usc-workshop-aria/pkg/utils"
)

// NotifyTimeout bounds a single background notification attempt
const NotifyTimeout = 30 * time.Second

// InterviewService brokers realtime sessions and records their transcripts
type InterviewService struct {
	script        *interview.Script
	realtime      *realtime.Client
	registry      *session.Registry
	store         *transcript.FileStore
	notifier      notify.Notifier
	notifyEnabled bool
	metrics       *metrics.Metrics
}

var interviewService *InterviewService

/** ---- INIT ---- */

// Init creates a new interview service
func Init(cfg *utils.Config) error {
	service, err := newService(cfg, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	interviewService = service
	return nil
}

// newService wires the service dependencies. Collectors register against reg
// so callers control the metrics namespace
func newService(cfg *utils.Config, reg prometheus.Registerer) (*InterviewService, error) {
	script, err := interview.LoadScript(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load interview script: %w", err)
	}

	client, err := realtime.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create realtime client: %w", err)
	}

	store, err := transcript.NewFileStore(cfg.GetWithDefault("TRANSCRIPT_DIR", transcript.DefaultDir))
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript store: %w", err)
	}

	notifier := notify.FromConfig(cfg)
	_, notifyEnabled := notifier.(*notify.MailNotifier)
	if !notifyEnabled {
		log.Println("[INTERVIEW]: Warning, email notifications not configured, transcripts will only be stored locally")
	}

	return &InterviewService{
		script:        script,
		realtime:      client,
		registry:      session.NewRegistry(),
		store:         store,
		notifier:      notifier,
		notifyEnabled: notifyEnabled,
		metrics:       metrics.NewMetrics(reg),
	}, nil
}

// GetService returns the interview service instance
func GetService() *InterviewService {
	if interviewService == nil {
		log.Fatal("[INTERVIEW]: Service is not initialized")
	}
	return interviewService
}

/** ---- SERVICE METHODS ---- */

// CreateSession exchanges the server credential for an ephemeral client token
// and registers a fresh session. The exchange happens first, so a provider
// failure leaves no session behind
func (s *InterviewService) CreateSession(ctx context.Context) (*sdk.CreateSessionResponse, error) {
	secret, err := s.realtime.CreateClientSecret(ctx, s.script.Instructions())
	if err != nil {
		s.metrics.RecordSessionFailure()
		return nil, fmt.Errorf("failed to create client secret: %w", err)
	}

	id := uuid.NewString()
	if _, err := s.registry.Create(id, time.Now().UTC()); err != nil {
		s.metrics.RecordSessionFailure()
		return nil, fmt.Errorf("failed to register session: %w", err)
	}

	s.metrics.RecordSessionCreated()
	s.metrics.SetActiveSessions(s.registry.Count())
	log.Printf("[INTERVIEW]: Created session %s", id)

	return &sdk.CreateSessionResponse{
		SessionID:             id,
		Token:                 secret.Value,
		ExpiresAt:             secret.ExpiresAt,
		Model:                 s.realtime.Model(),
		TargetDurationSeconds: s.script.TargetDurationSeconds,
		HardStopSeconds:       s.script.HardStopSeconds,
		WrapUpWarningSeconds:  s.script.WrapUpWarningSeconds,
	}, nil
}

// Session returns a snapshot of one active session
func (s *InterviewService) Session(id string) (*session.Session, error) {
	return s.registry.Get(id)
}

// ActiveSessions lists the in-flight sessions, newest first
func (s *InterviewService) ActiveSessions() *sdk.ListSessionsResponse {
	active := s.registry.Active()

	sessions := make([]sdk.SessionSummary, 0, len(active))
	for _, sess := range active {
		sessions = append(sessions, sdk.SessionSummary{
			SessionID: sess.ID,
			StartedAt: sess.StartedAt,
			TurnCount: len(sess.Turns),
		})
	}

	return &sdk.ListSessionsResponse{Sessions: sessions, Count: len(sessions)}
}

// AppendTurn records one transcript turn on an active session
func (s *InterviewService) AppendTurn(id string, req *sdk.AppendTurnRequest) (*sdk.AppendTurnResponse, error) {
	timestamp := time.Now().UTC()
	if req.Timestamp != nil {
		timestamp = req.Timestamp.UTC()
	}

	turn := session.Turn{
		Speaker:    session.Speaker(req.Speaker),
		Text:       req.Text,
		Timestamp:  timestamp,
		QuestionID: req.QuestionID,
		Followup:   req.Followup,
	}

	count, err := s.registry.AppendTurn(id, turn)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordTurn(req.Speaker)

	return &sdk.AppendTurnResponse{SessionID: id, TurnCount: count}, nil
}

// Complete finalizes a session. The transcript is written to the store and
// the notifier runs in the background. Only the first completion wins; later
// calls see session.ErrSessionNotFound
func (s *InterviewService) Complete(id string) (*sdk.CompleteSessionResponse, error) {
	sess, err := s.registry.Finalize(id)
	if err != nil {
		return nil, err
	}

	duration := sess.Duration()
	s.metrics.RecordSessionFinalized(duration.Seconds())
	s.metrics.SetActiveSessions(s.registry.Count())

	record := transcript.FromSession(sess)
	filename, err := s.store.Write(record)
	if err != nil {
		s.metrics.RecordTranscriptFailure()
		return nil, fmt.Errorf("failed to store transcript: %w", err)
	}
	s.metrics.RecordTranscriptWritten()
	log.Printf("[INTERVIEW]: Stored transcript %s (%d turns)", filename, len(sess.Turns))

	// Notification failures must never surface to the participant
	go s.dispatchNotification(record, filename)

	return &sdk.CompleteSessionResponse{
		SessionID:       id,
		Filename:        filename,
		TurnCount:       len(sess.Turns),
		DurationSeconds: duration.Seconds(),
	}, nil
}

// ActiveCount reports how many sessions are currently in flight
func (s *InterviewService) ActiveCount() int {
	return s.registry.Count()
}

// NotifyEnabled reports whether email notifications are configured
func (s *InterviewService) NotifyEnabled() bool {
	return s.notifyEnabled
}

/** ---- HELPERS ---- */

// dispatchNotification sends the transcript email for a finalized session.
// Errors are logged and counted, never returned
func (s *InterviewService) dispatchNotification(record *transcript.Record, filename string) {
	if !s.notifyEnabled {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), NotifyTimeout)
	defer cancel()

	if err := s.notifier.Notify(ctx, record, filename); err != nil {
		s.metrics.RecordNotificationFailure()
		log.Printf("[INTERVIEW]: Failed to send notification for %s: %v", filename, err)
		return
	}

	s.metrics.RecordNotificationSent()
	log.Printf("[INTERVIEW]: Sent transcript notification for %s", filename)
}
