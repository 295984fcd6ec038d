package interview

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtopaz/usc-workshop-aria/pkg/utils"
)

func TestDefaultScript(t *testing.T) {
	script := DefaultScript()

	require.Len(t, script.Questions, 3)
	for i, question := range script.Questions {
		assert.Equal(t, i+1, question.ID)
		assert.NotEmpty(t, question.Text)
	}

	assert.Equal(t, DefaultTargetDurationSeconds, script.TargetDurationSeconds)
	assert.Equal(t, DefaultHardStopSeconds, script.HardStopSeconds)
	assert.Equal(t, DefaultWrapUpWarningSeconds, script.WrapUpWarningSeconds)
	assert.Contains(t, script.Persona, "ARIA")

	// The last question deliberately has no follow-up
	assert.Empty(t, script.Questions[2].Followup)
}

func TestLoadScript(t *testing.T) {
	t.Run("defaults without config", func(t *testing.T) {
		script, err := LoadScript(utils.NewConfig(nil))
		require.NoError(t, err)
		assert.Len(t, script.Questions, 3)
		assert.Equal(t, DefaultTargetDurationSeconds, script.TargetDurationSeconds)
	})

	t.Run("yaml override", func(t *testing.T) {
		content := `persona: "You are a terse interviewer."
questions:
  - id: 1
    question: "What is your role?"
    completeness_signals: ["a job title"]
    suggested_followup: "What does that involve day to day?"
  - id: 2
    question: "Anything else?"
target_duration_seconds: 120
`
		path := filepath.Join(t.TempDir(), "interview.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		script, err := LoadScript(utils.NewConfig(map[string]string{
			"INTERVIEW_CONFIG_PATH": path,
		}))
		require.NoError(t, err)

		assert.Equal(t, "You are a terse interviewer.", script.Persona)
		require.Len(t, script.Questions, 2)
		assert.Equal(t, "What is your role?", script.Questions[0].Text)
		assert.Equal(t, 120, script.TargetDurationSeconds)

		// Omitted timing values keep their defaults
		assert.Equal(t, DefaultHardStopSeconds, script.HardStopSeconds)
		assert.Equal(t, DefaultWrapUpWarningSeconds, script.WrapUpWarningSeconds)
	})

	t.Run("persona file override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "persona.txt")
		require.NoError(t, os.WriteFile(path, []byte("Custom persona text"), 0644))

		script, err := LoadScript(utils.NewConfig(map[string]string{
			"INSTRUCTIONS_PATH": path,
		}))
		require.NoError(t, err)
		assert.Equal(t, "Custom persona text", script.Persona)
		assert.Len(t, script.Questions, 3)
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := LoadScript(utils.NewConfig(map[string]string{
			"INTERVIEW_CONFIG_PATH": filepath.Join(t.TempDir(), "absent.yaml"),
		}))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("questions: [unclosed"), 0644))

		_, err := LoadScript(utils.NewConfig(map[string]string{
			"INTERVIEW_CONFIG_PATH": path,
		}))
		assert.Error(t, err)
	})

	t.Run("empty question list rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("questions: []\n"), 0644))

		_, err := LoadScript(utils.NewConfig(map[string]string{
			"INTERVIEW_CONFIG_PATH": path,
		}))
		assert.Error(t, err)
	})
}

func TestInstructionBuilder(t *testing.T) {
	got := NewInstructionBuilder("Persona line.").
		AddSection("FIRST", "first body").
		AddSection("SECOND", "second body").
		Build()

	assert.Contains(t, got, "Persona line.")
	assert.Contains(t, got, "## FIRST\n\nfirst body")
	assert.Contains(t, got, "## SECOND\n\nsecond body")

	// Persona precedes sections, sections keep insertion order
	assert.Less(t, strings.Index(got, "Persona line."), strings.Index(got, "## FIRST"))
	assert.Less(t, strings.Index(got, "## FIRST"), strings.Index(got, "## SECOND"))
}

func TestScriptInstructions(t *testing.T) {
	script := DefaultScript()
	instructions := script.Instructions()

	assert.Contains(t, instructions, "You are ARIA")
	assert.Contains(t, instructions, "exactly 3 questions")
	assert.Contains(t, instructions, "hard stop at 8 minutes")

	for _, question := range script.Questions {
		assert.Contains(t, instructions, question.Text)
		if question.Followup != "" {
			assert.Contains(t, instructions, question.Followup)
		}
	}

	assert.Contains(t, instructions, "TIME_WARNING")
	assert.Contains(t, instructions, "SOFT_TIME_UP")
	assert.Contains(t, instructions, "HARD_STOP")
	assert.Contains(t, instructions, "Thanks so much for sharing!")
}
