package interview

import (
	"fmt"
	"strings"
)

// InstructionBuilder assembles the interviewer's system instructions from a
// persona and titled sections
type InstructionBuilder struct {
	persona  string
	sections []string
}

// NewInstructionBuilder creates a builder seeded with the persona text
func NewInstructionBuilder(persona string) *InstructionBuilder {
	return &InstructionBuilder{
		persona:  persona,
		sections: make([]string, 0),
	}
}

// AddSection appends a titled section to the instructions
func (b *InstructionBuilder) AddSection(title, body string) *InstructionBuilder {
	b.sections = append(b.sections, fmt.Sprintf("## %s\n\n%s", title, body))
	return b
}

// Build constructs the final instruction text
func (b *InstructionBuilder) Build() string {
	parts := append([]string{b.persona}, b.sections...)
	return strings.Join(parts, "\n\n")
}

// Instructions renders the script as the realtime session's system
// instructions: persona, then the numbered questions with their follow-up
// rules, then the timing signals the client injects.
func (s *Script) Instructions() string {
	builder := NewInstructionBuilder(s.Persona)

	var structure strings.Builder
	fmt.Fprintf(&structure, "You have exactly %d questions to cover in about %d minutes (with a hard stop at %d minutes).\n",
		len(s.Questions), s.TargetDurationSeconds/60, s.HardStopSeconds/60)
	for _, q := range s.Questions {
		fmt.Fprintf(&structure, "\n### Question %d\n%q\n", q.ID, q.Text)
		if len(q.Signals) > 0 {
			fmt.Fprintf(&structure, "A complete answer includes: %s.\n", strings.Join(q.Signals, "; "))
		}
		if q.Followup != "" {
			fmt.Fprintf(&structure, "If the answer is thin, one follow-up: %q. Then move on.\n", q.Followup)
		} else {
			structure.WriteString("Accept any response. No follow-up needed.\n")
		}
	}
	builder.AddSection("INTERVIEW STRUCTURE", strings.TrimRight(structure.String(), "\n"))

	timing := fmt.Sprintf(`You will receive control signals over the data channel:
- TIME_WARNING arrives about %d seconds before the %d-minute mark. If you haven't asked the final question, ask it now briefly. Otherwise wrap up.
- SOFT_TIME_UP arrives at the %d-minute mark. Begin closing. Thank them and wish them a great workshop.
- HARD_STOP arrives at %d minutes. Immediately thank them and end.`,
		s.WrapUpWarningSeconds, s.TargetDurationSeconds/60,
		s.TargetDurationSeconds/60, s.HardStopSeconds/60)
	builder.AddSection("TIME MANAGEMENT", timing)

	builder.AddSection("CLOSING", `After the final question, close warmly: "Thanks so much for sharing! Your input will help make the workshop even more relevant. Enjoy the session!"`)

	return builder.Build()
}
