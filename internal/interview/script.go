package interview

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mtopaz/usc-workshop-aria/pkg/utils"
)

/* ---- DEFAULTS ---- */

const (
	DefaultTargetDurationSeconds = 300
	DefaultHardStopSeconds       = 480
	DefaultWrapUpWarningSeconds  = 60
)

const defaultPersona = `You are ARIA, a friendly and professional AI interviewer conducting a brief pre-workshop survey for the February 27, 2026 workshop "AI for Research and Teaching" at the University of South Carolina, College of Nursing.

You are gathering brief perspectives from workshop participants before the session begins. This is a quick, informal survey, not a deep research interview. The goal is to help the workshop facilitator understand participants' current experience with AI, what they hope to learn, and any specific concerns or topics they want covered.

Start with a warm, brief greeting: "Hi! I'm ARIA, an AI research assistant. Thanks for taking a couple of minutes to chat with me before the workshop. I have just three quick questions for you. Let's get started!" Then ask the first question.

Critical rules:
1. Be conversational and warm. This is a casual pre-workshop chat, not a formal interview.
2. Keep it brief and don't over-probe.
3. One follow-up maximum per question. If they give a short answer, one gentle nudge is fine, then move on.
4. Don't lecture. You're listening, not teaching.
5. Be encouraging. If they say they have no AI experience, reassure them that's totally fine and the workshop will cover all levels.
6. Keep your turns SHORT, under 10 seconds of speaking for most turns.
7. Wait patiently. Give them time to think and don't rush.

Style: warm, friendly, casual but professional. Brief acknowledgments like "That's great!" or "Got it!". One question at a time. Use their name if they share it.

Keep track silently of the current question number and whether you've already used your one follow-up on it.`

func defaultQuestions() []Question {
	return []Question{
		{
			ID:       1,
			Text:     "Can you tell me a bit about your experience with AI so far - whether in your teaching, research, clinical work, or personal life?",
			Signals:  []string{"some description of experience level", "context about where/how they've used AI"},
			Followup: "What was that experience like for you?",
		},
		{
			ID:       2,
			Text:     "Thinking about the workshop on AI for research and teaching - what are you most hoping to learn or take away?",
			Signals:  []string{"specific learning goal or interest area", "connection to their work"},
			Followup: "Is there a specific challenge in your work where you think AI might help?",
		},
		{
			ID:       3,
			Text:     "Is there anything else you'd like me to know as we prepare for the workshop? Any concerns about AI, specific topics you'd like covered, or questions you're hoping we'll address?",
			Signals:  []string{"specific concern or topic raised", "or clear indication nothing to add"},
			Followup: "",
		},
	}
}

/* ---- TYPES ---- */

// Question is one scripted interview question. Signals describe what a
// complete answer sounds like; Followup is the single allowed nudge.
type Question struct {
	ID       int      `yaml:"id" json:"id"`
	Text     string   `yaml:"question" json:"question"`
	Signals  []string `yaml:"completeness_signals" json:"completeness_signals,omitempty"`
	Followup string   `yaml:"suggested_followup" json:"suggested_followup,omitempty"`
}

// Script is the interview definition: the interviewer persona, the ordered
// questions, and the timing rules the client enforces.
type Script struct {
	Persona               string     `yaml:"persona" json:"-"`
	Questions             []Question `yaml:"questions" json:"questions"`
	TargetDurationSeconds int        `yaml:"target_duration_seconds" json:"target_duration_seconds"`
	HardStopSeconds       int        `yaml:"hard_stop_seconds" json:"hard_stop_seconds"`
	WrapUpWarningSeconds  int        `yaml:"wrap_up_warning_seconds" json:"wrap_up_warning_seconds"`
}

// DefaultScript returns the built-in pre-workshop survey script
func DefaultScript() *Script {
	return &Script{
		Persona:               defaultPersona,
		Questions:             defaultQuestions(),
		TargetDurationSeconds: DefaultTargetDurationSeconds,
		HardStopSeconds:       DefaultHardStopSeconds,
		WrapUpWarningSeconds:  DefaultWrapUpWarningSeconds,
	}
}

// LoadScript builds the interview script from configuration. A YAML file
// named by INTERVIEW_CONFIG_PATH overrides any subset of the defaults, and
// INSTRUCTIONS_PATH replaces the persona text with a prompt file.
func LoadScript(cfg *utils.Config) (*Script, error) {
	script := DefaultScript()

	if path := cfg.Get("INTERVIEW_CONFIG_PATH"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read interview config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, script); err != nil {
			return nil, fmt.Errorf("failed to parse interview config %s: %w", path, err)
		}
	}

	script.Persona = utils.LoadPromptWithFallback(cfg.Get("INSTRUCTIONS_PATH"), script.Persona)

	if len(script.Questions) == 0 {
		return nil, fmt.Errorf("interview script has no questions")
	}
	if script.TargetDurationSeconds <= 0 {
		script.TargetDurationSeconds = DefaultTargetDurationSeconds
	}
	if script.HardStopSeconds <= 0 {
		script.HardStopSeconds = DefaultHardStopSeconds
	}
	if script.WrapUpWarningSeconds <= 0 {
		script.WrapUpWarningSeconds = DefaultWrapUpWarningSeconds
	}

	return script, nil
}
