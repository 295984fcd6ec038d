package transcript

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/mtopaz/usc-workshop-aria/internal/stores/session"
)

// Record is a finalized session rendered as tabular rows for persistence:
// one metadata header row (session, id, started-at) followed by one row per
// turn (speaker, text, timestamp). Row order is turn order.
type Record struct {
	SessionID string
	StartedAt time.Time
	Turns     []session.Turn
}

// Duration is the elapsed time from session start to the last recorded turn
func (r *Record) Duration() time.Duration {
	if len(r.Turns) == 0 {
		return 0
	}
	return r.Turns[len(r.Turns)-1].Timestamp.Sub(r.StartedAt)
}

// FromSession renders a session as a transcript record
func FromSession(sess *session.Session) *Record {
	turns := make([]session.Turn, len(sess.Turns))
	copy(turns, sess.Turns)

	return &Record{
		SessionID: sess.ID,
		StartedAt: sess.StartedAt,
		Turns:     turns,
	}
}

// Encode writes the record as CSV. Commas and quotes inside turn text are
// escaped by the csv writer, so text survives a round trip unchanged.
func (r *Record) Encode(w io.Writer) error {
	writer := csv.NewWriter(w)

	header := []string{"session", r.SessionID, r.StartedAt.Format(time.RFC3339Nano)}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, turn := range r.Turns {
		row := []string{string(turn.Speaker), turn.Text, turn.Timestamp.Format(time.RFC3339Nano)}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Decode parses a CSV transcript back into a record
func Decode(r io.Reader) (*Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse transcript: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("transcript is empty")
	}

	header := rows[0]
	if header[0] != "session" {
		return nil, fmt.Errorf("missing session header row")
	}

	startedAt, err := time.Parse(time.RFC3339Nano, header[2])
	if err != nil {
		return nil, fmt.Errorf("invalid session timestamp '%s': %w", header[2], err)
	}

	record := &Record{
		SessionID: header[1],
		StartedAt: startedAt,
	}

	for i, row := range rows[1:] {
		timestamp, err := time.Parse(time.RFC3339Nano, row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid timestamp '%s': %w", i+1, row[2], err)
		}

		record.Turns = append(record.Turns, session.Turn{
			Speaker:   session.Speaker(row[0]),
			Text:      row[1],
			Timestamp: timestamp,
		})
	}

	return record, nil
}
