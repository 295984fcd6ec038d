package session

import "time"

// Speaker identifies which side of the conversation produced a turn
type Speaker string

const (
	SpeakerInterviewer Speaker = "interviewer"
	SpeakerParticipant Speaker = "participant"
)

// Valid reports whether the speaker is one of the known roles
func (s Speaker) Valid() bool {
	return s == SpeakerInterviewer || s == SpeakerParticipant
}

// Turn is a single utterance within a session. Turns are immutable once
// appended; their order is the conversation order.
type Turn struct {
	Speaker    Speaker   `json:"speaker"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
	QuestionID int       `json:"question_id,omitempty"`
	Followup   bool      `json:"is_followup,omitempty"`
}

// Session is one end-to-end interview attempt. It is created when the voice
// provider grants a session, accumulates turns while the interview runs, and
// is finalized exactly once.
type Session struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Turns     []Turn    `json:"turns"`
	Finalized bool      `json:"finalized"`
}

// Duration is the elapsed time from session start to the last recorded turn
func (s *Session) Duration() time.Duration {
	if len(s.Turns) == 0 {
		return 0
	}
	return s.Turns[len(s.Turns)-1].Timestamp.Sub(s.StartedAt)
}

// clone returns a deep copy so callers never share turn slices with the registry
func (s *Session) clone() *Session {
	turns := make([]Turn, len(s.Turns))
	copy(turns, s.Turns)

	return &Session{
		ID:        s.ID,
		StartedAt: s.StartedAt,
		Turns:     turns,
		Finalized: s.Finalized,
	}
}
