package notify

import (
	"context"
	"log"

	"github.com/mtopaz/usc-workshop-aria/internal/stores/transcript"
	"github.com/mtopaz/usc-workshop-aria/pkg/utils"
)

// Notifier delivers a completed-interview notification. Implementations are
// best-effort: callers dispatch them after finalize and only log failures,
// so an error here never blocks or fails the interview flow.
type Notifier interface {
	Notify(ctx context.Context, record *transcript.Record, filename string) error
}

// NopNotifier is the notifier used when email is not configured
type NopNotifier struct{}

// Notify implements Notifier by doing nothing
func (NopNotifier) Notify(ctx context.Context, record *transcript.Record, filename string) error {
	return nil
}

// FromConfig selects the notifier: mail delivery when both the Resend key
// and a destination address are present, otherwise a no-op.
func FromConfig(cfg *utils.Config) Notifier {
	if cfg.Get("RESEND_API_KEY") == "" || cfg.Get("NOTIFY_EMAIL") == "" {
		log.Printf("[NOTIFY]: Email not configured, transcript notifications disabled")
		return NopNotifier{}
	}

	return NewMailNotifier(cfg)
}
