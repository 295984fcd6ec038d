package sdk

import (
	"encoding/json"
	"time"

	"github.com/ethanbaker/api/pkg/api_types"
)

// ApiResponse represents a standard API response structure
type ApiResponse[T any] struct {
	Status  api_types.StatusType `json:"status"`          // Status message
	Code    int                  `json:"code"`            // Status code
	Message string               `json:"message"`         // Human-readable message
	Data    T                    `json:"data,omitempty"`  // Optional data field for successful responses
	Error   any                  `json:"error,omitempty"` // Optional errors field for error responses
}

// AsGinResponse converts the ApiResponse to a format suitable for Gin framework
func (r ApiResponse[T]) AsGinResponse() (int, any) {
	return r.Code, r
}

// AsJSON converts the ApiResponse to a format suitable for JSON responses
func (r ApiResponse[T]) AsJSON() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func NewSuccess(message string) ApiResponse[any] {
	return ApiResponse[any]{
		Status:  api_types.StatusSuccess,
		Code:    200,
		Message: message,
	}
}

func NewSuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Status:  api_types.StatusSuccess,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(code int, message string, err any) ApiResponse[any] {
	return ApiResponse[any]{
		Status:  api_types.StatusError,
		Code:    code,
		Message: message,
		Error:   err,
	}
}

/** Interview Module DTOs */

// CreateSessionResponse carries everything the browser needs to run one
// interview: the session id, the short-lived provider token, and the timing
// rules the interview script is configured with
type CreateSessionResponse struct {
	SessionID string `json:"session_id"` // Registry id for transcript reporting
	Token     string `json:"token"`      // Ephemeral client secret for the voice provider
	ExpiresAt int64  `json:"expires_at"` // Token expiry (unix seconds)
	Model     string `json:"model"`      // Realtime model to address the provider with

	TargetDurationSeconds int `json:"target_duration_seconds"` // Soft interview target
	HardStopSeconds       int `json:"hard_stop_seconds"`       // Absolute cutoff
	WrapUpWarningSeconds  int `json:"wrap_up_warning_seconds"` // Warning lead time before the target
}

// AppendTurnRequest represents one reported transcript turn
type AppendTurnRequest struct {
	Speaker    string     `json:"speaker" binding:"required"` // "interviewer" or "participant"
	Text       string     `json:"text" binding:"required"`
	Timestamp  *time.Time `json:"timestamp"` // Optional; server time when absent
	QuestionID int        `json:"question_id"`
	Followup   bool       `json:"is_followup"`
}

// AppendTurnResponse acknowledges a recorded turn
type AppendTurnResponse struct {
	SessionID string `json:"session_id"`
	TurnCount int    `json:"turn_count"`
}

// Turn is one transcript entry in session views
type Turn struct {
	Speaker    string    `json:"speaker"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
	QuestionID int       `json:"question_id,omitempty"`
	Followup   bool      `json:"is_followup,omitempty"`
}

// SessionSummary describes one active session in list views
type SessionSummary struct {
	SessionID string    `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
	TurnCount int       `json:"turn_count"`
}

// ListSessionsResponse represents the response for listing active sessions
type ListSessionsResponse struct {
	Sessions []SessionSummary `json:"sessions"`
	Count    int              `json:"count"`
}

// SessionDetail is the full live view of one active session
type SessionDetail struct {
	SessionID string    `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
	Turns     []Turn    `json:"turns"`
}

// CompleteSessionResponse reports where a finalized interview was stored
type CompleteSessionResponse struct {
	SessionID       string  `json:"session_id"`
	Filename        string  `json:"filename"`
	TurnCount       int     `json:"turn_count"`
	DurationSeconds float64 `json:"duration_seconds"`
}

/** Admin Module DTOs */

// TranscriptFile describes one stored CSV in admin listings
type TranscriptFile struct {
	Filename    string    `json:"filename"`
	SizeBytes   int64     `json:"size_bytes"`
	Modified    time.Time `json:"modified"`
	DownloadURL string    `json:"download_url"`
}

// ListTranscriptsResponse represents the response for listing stored transcripts
type ListTranscriptsResponse struct {
	TranscriptDirectory string           `json:"transcript_directory"`
	TotalFiles          int              `json:"total_files"`
	Files               []TranscriptFile `json:"files"`
}

/** Health Module DTOs */

// HealthResponse reports service status and component configuration
type HealthResponse struct {
	Status             string    `json:"status"`
	InterviewOpen      bool      `json:"interview_open"`
	ShutdownDate       time.Time `json:"shutdown_date"`
	ActiveSessions     int       `json:"active_sessions"`
	ProviderConfigured bool      `json:"provider_configured"`
	NotifyConfigured   bool      `json:"notify_configured"`
}
