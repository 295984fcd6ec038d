package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpeakerValid(t *testing.T) {
	tests := []struct {
		speaker Speaker
		valid   bool
	}{
		{SpeakerInterviewer, true},
		{SpeakerParticipant, true},
		{Speaker("assistant"), false},
		{Speaker(""), false},
	}

	for _, test := range tests {
		t.Run(string(test.speaker), func(t *testing.T) {
			assert.Equal(t, test.valid, test.speaker.Valid())
		})
	}
}

func TestSessionDuration(t *testing.T) {
	start := time.Date(2026, 2, 10, 14, 0, 0, 0, time.UTC)

	t.Run("no turns", func(t *testing.T) {
		sess := &Session{ID: "a", StartedAt: start}
		assert.Equal(t, time.Duration(0), sess.Duration())
	})

	t.Run("duration to last turn", func(t *testing.T) {
		sess := &Session{
			ID:        "a",
			StartedAt: start,
			Turns: []Turn{
				{Speaker: SpeakerInterviewer, Text: "hello", Timestamp: start.Add(5 * time.Second)},
				{Speaker: SpeakerParticipant, Text: "hi", Timestamp: start.Add(95 * time.Second)},
			},
		}
		assert.Equal(t, 95*time.Second, sess.Duration())
	})
}

func TestRegistryCreate(t *testing.T) {
	registry := NewRegistry()
	start := time.Now().UTC()

	t.Run("new session", func(t *testing.T) {
		sess, err := registry.Create("session-1", start)
		require.NoError(t, err)
		assert.Equal(t, "session-1", sess.ID)
		assert.Equal(t, start, sess.StartedAt)
		assert.Empty(t, sess.Turns)
		assert.False(t, sess.Finalized)
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := registry.Create("session-1", start)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSessionExists)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := registry.Create("", start)
		assert.Error(t, err)
	})
}

func TestRegistryGet(t *testing.T) {
	registry := NewRegistry()
	start := time.Now().UTC()
	_, err := registry.Create("session-1", start)
	require.NoError(t, err)

	t.Run("existing session", func(t *testing.T) {
		sess, err := registry.Get("session-1")
		require.NoError(t, err)
		assert.Equal(t, "session-1", sess.ID)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := registry.Get("missing")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("returned session is a copy", func(t *testing.T) {
		_, err := registry.AppendTurn("session-1", Turn{
			Speaker:   SpeakerInterviewer,
			Text:      "original",
			Timestamp: start,
		})
		require.NoError(t, err)

		sess, err := registry.Get("session-1")
		require.NoError(t, err)
		sess.Turns[0].Text = "mutated"
		sess.Finalized = true

		fresh, err := registry.Get("session-1")
		require.NoError(t, err)
		assert.Equal(t, "original", fresh.Turns[0].Text)
		assert.False(t, fresh.Finalized)
	})
}

func TestRegistryAppendTurn(t *testing.T) {
	registry := NewRegistry()
	start := time.Now().UTC()
	_, err := registry.Create("session-1", start)
	require.NoError(t, err)

	t.Run("turns kept in arrival order", func(t *testing.T) {
		texts := []string{"first", "second", "third"}
		for i, text := range texts {
			count, err := registry.AppendTurn("session-1", Turn{
				Speaker:   SpeakerParticipant,
				Text:      text,
				Timestamp: start.Add(time.Duration(i) * time.Second),
			})
			require.NoError(t, err)
			assert.Equal(t, i+1, count)
		}

		sess, err := registry.Get("session-1")
		require.NoError(t, err)
		require.Len(t, sess.Turns, 3)
		for i, text := range texts {
			assert.Equal(t, text, sess.Turns[i].Text)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := registry.AppendTurn("missing", Turn{
			Speaker:   SpeakerParticipant,
			Text:      "lost",
			Timestamp: start,
		})
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("invalid speaker", func(t *testing.T) {
		_, err := registry.AppendTurn("session-1", Turn{
			Speaker:   Speaker("narrator"),
			Text:      "nope",
			Timestamp: start,
		})
		assert.Error(t, err)
	})
}

func TestRegistryFinalize(t *testing.T) {
	t.Run("returns finalized snapshot and removes session", func(t *testing.T) {
		registry := NewRegistry()
		start := time.Now().UTC()
		_, err := registry.Create("session-1", start)
		require.NoError(t, err)

		_, err = registry.AppendTurn("session-1", Turn{
			Speaker:   SpeakerInterviewer,
			Text:      "Tell me about your experience",
			Timestamp: start.Add(time.Second),
		})
		require.NoError(t, err)

		sess, err := registry.Finalize("session-1")
		require.NoError(t, err)
		assert.True(t, sess.Finalized)
		assert.Len(t, sess.Turns, 1)
		assert.Equal(t, 0, registry.Count())
	})

	t.Run("double finalize rejected", func(t *testing.T) {
		registry := NewRegistry()
		_, err := registry.Create("session-1", time.Now().UTC())
		require.NoError(t, err)

		_, err = registry.Finalize("session-1")
		require.NoError(t, err)

		_, err = registry.Finalize("session-1")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("append after finalize rejected", func(t *testing.T) {
		registry := NewRegistry()
		start := time.Now().UTC()
		_, err := registry.Create("session-1", start)
		require.NoError(t, err)

		snapshot, err := registry.Finalize("session-1")
		require.NoError(t, err)

		_, err = registry.AppendTurn("session-1", Turn{
			Speaker:   SpeakerParticipant,
			Text:      "too late",
			Timestamp: start.Add(time.Minute),
		})
		assert.ErrorIs(t, err, ErrSessionNotFound)
		assert.Empty(t, snapshot.Turns)
	})

	t.Run("concurrent finalize has exactly one winner", func(t *testing.T) {
		registry := NewRegistry()
		_, err := registry.Create("session-1", time.Now().UTC())
		require.NoError(t, err)

		const callers = 10
		var wg sync.WaitGroup
		wins := make(chan *Session, callers)

		wg.Add(callers)
		for i := 0; i < callers; i++ {
			go func() {
				defer wg.Done()
				if sess, err := registry.Finalize("session-1"); err == nil {
					wins <- sess
				}
			}()
		}
		wg.Wait()
		close(wins)

		assert.Len(t, wins, 1)
	})
}

func TestRegistryActive(t *testing.T) {
	registry := NewRegistry()
	base := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := registry.Create(fmt.Sprintf("session-%d", i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	active := registry.Active()
	require.Len(t, active, 3)

	// Most recently started first
	assert.Equal(t, "session-2", active[0].ID)
	assert.Equal(t, "session-1", active[1].ID)
	assert.Equal(t, "session-0", active[2].ID)

	_, err := registry.Finalize("session-1")
	require.NoError(t, err)

	active = registry.Active()
	require.Len(t, active, 2)
	assert.Equal(t, 2, registry.Count())
}

func TestRegistryConcurrentAppends(t *testing.T) {
	registry := NewRegistry()
	start := time.Now().UTC()
	_, err := registry.Create("session-1", start)
	require.NoError(t, err)

	const writers = 20
	const turnsPerWriter = 25

	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < turnsPerWriter; j++ {
				_, err := registry.AppendTurn("session-1", Turn{
					Speaker:   SpeakerParticipant,
					Text:      fmt.Sprintf("writer %d turn %d", id, j),
					Timestamp: time.Now().UTC(),
				})
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	sess, err := registry.Get("session-1")
	require.NoError(t, err)
	assert.Len(t, sess.Turns, writers*turnsPerWriter)
}
