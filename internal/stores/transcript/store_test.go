package transcript

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtopaz/usc-workshop-aria/internal/stores/session"
)

func testRecord(id string, start time.Time) *Record {
	return &Record{
		SessionID: id,
		StartedAt: start,
		Turns: []session.Turn{
			{Speaker: session.SpeakerInterviewer, Text: "Tell me about your experience", Timestamp: start.Add(5 * time.Second)},
			{Speaker: session.SpeakerParticipant, Text: "I've used AI in grading", Timestamp: start.Add(20 * time.Second)},
		},
	}
}

func TestNewFileStore(t *testing.T) {
	t.Run("creates directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "transcripts")
		store, err := NewFileStore(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, store.Dir())
		assert.DirExists(t, dir)
	})

	t.Run("empty directory rejected", func(t *testing.T) {
		_, err := NewFileStore("")
		assert.Error(t, err)
	})
}

func TestFileStoreWrite(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	start := time.Date(2026, 2, 10, 14, 0, 0, 0, time.UTC)
	record := testRecord("1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed", start)

	name, err := store.Write(record)
	require.NoError(t, err)

	assert.Equal(t, "interview_20260210_140000_1b9d6bcd.csv", name)
	assert.FileExists(t, filepath.Join(store.Dir(), name))

	// No staging leftovers
	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.HasSuffix(entry.Name(), ".tmp"), "leftover temp file %s", entry.Name())
	}

	t.Run("written file decodes to the same turns", func(t *testing.T) {
		content, err := store.Read(name)
		require.NoError(t, err)

		decoded, err := Decode(bytes.NewReader(content))
		require.NoError(t, err)
		require.Len(t, decoded.Turns, 2)
		assert.Equal(t, session.SpeakerInterviewer, decoded.Turns[0].Speaker)
		assert.Equal(t, "Tell me about your experience", decoded.Turns[0].Text)
		assert.Equal(t, session.SpeakerParticipant, decoded.Turns[1].Speaker)
		assert.Equal(t, "I've used AI in grading", decoded.Turns[1].Text)
	})

	t.Run("list includes the written file", func(t *testing.T) {
		files, err := store.List()
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, name, files[0].Name)
		assert.Greater(t, files[0].Size, int64(0))
	})

	t.Run("record without session id rejected", func(t *testing.T) {
		_, err := store.Write(&Record{StartedAt: start})
		assert.Error(t, err)
	})
}

func TestFileStoreList(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	t.Run("empty store", func(t *testing.T) {
		files, err := store.List()
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("sorted most recent first, non-csv ignored", func(t *testing.T) {
		base := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
		ids := []string{"aaaa1111-0000-0000-0000-000000000000", "bbbb2222-0000-0000-0000-000000000000", "cccc3333-0000-0000-0000-000000000000"}

		var names []string
		for i, id := range ids {
			name, err := store.Write(testRecord(id, base.Add(time.Duration(i)*time.Hour)))
			require.NoError(t, err)
			names = append(names, name)

			// Pin distinct modification times so ordering is deterministic
			modTime := base.Add(time.Duration(i) * time.Hour)
			require.NoError(t, os.Chtimes(filepath.Join(store.Dir(), name), modTime, modTime))
		}

		require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "notes.txt"), []byte("not a transcript"), 0644))

		files, err := store.List()
		require.NoError(t, err)
		require.Len(t, files, 3)
		assert.Equal(t, names[2], files[0].Name)
		assert.Equal(t, names[1], files[1].Name)
		assert.Equal(t, names[0], files[2].Name)
	})
}

func TestFileStoreRead(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	start := time.Date(2026, 2, 10, 14, 0, 0, 0, time.UTC)
	name, err := store.Write(testRecord("dddd4444-0000-0000-0000-000000000000", start))
	require.NoError(t, err)

	t.Run("existing file", func(t *testing.T) {
		content, err := store.Read(name)
		require.NoError(t, err)
		assert.Contains(t, string(content), "Tell me about your experience")
	})

	t.Run("unknown file", func(t *testing.T) {
		_, err := store.Read("interview_20990101_000000_deadbeef.csv")
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("path traversal rejected", func(t *testing.T) {
		outside := filepath.Join(filepath.Dir(store.Dir()), "secret.csv")
		require.NoError(t, os.WriteFile(outside, []byte("secret"), 0644))

		names := []string{
			"../secret.csv",
			"..",
			"sub/secret.csv",
			`sub\secret.csv`,
			"trick..csv",
			"",
		}

		for _, bad := range names {
			_, err := store.Read(bad)
			assert.ErrorIs(t, err, ErrInvalidName, "name %q must be rejected", bad)
		}
	})
}
