package interview

import (
	"fmt"
	"time"

	"github.com/mtopaz/usc-workshop-aria/pkg/utils"
)

// DefaultShutdownDate is when the interview flow stops accepting participants
const DefaultShutdownDate = "2026-02-25T23:59:59Z"

// Gate decides whether the interview flow is open against a fixed cutoff
// instant. It is read-only after construction and safe for concurrent use.
type Gate struct {
	cutoff time.Time
}

// NewGate creates a gate from SHUTDOWN_DATE (RFC3339), falling back to the
// built-in cutoff
func NewGate(cfg *utils.Config) (*Gate, error) {
	raw := cfg.GetWithDefault("SHUTDOWN_DATE", DefaultShutdownDate)

	cutoff, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_DATE '%s': %w", raw, err)
	}

	return &Gate{cutoff: cutoff}, nil
}

// Open reports whether the interview flow is open at the given instant.
// The cutoff instant itself is still open; anything after it is closed.
func (g *Gate) Open(t time.Time) bool {
	return !t.After(g.cutoff)
}

// Cutoff returns the closing instant
func (g *Gate) Cutoff() time.Time {
	return g.cutoff
}
