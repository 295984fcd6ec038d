package transcript

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DefaultDir is where transcripts are stored unless TRANSCRIPT_DIR overrides it
const DefaultDir = "./interview_transcripts"

var (
	// ErrInvalidName is returned for file names that could escape the store directory
	ErrInvalidName = errors.New("invalid transcript name")

	// ErrFileNotFound is returned when no stored transcript has the requested name
	ErrFileNotFound = errors.New("transcript file not found")
)

// FileInfo describes one stored transcript file
type FileInfo struct {
	Name     string    `json:"filename"`
	Size     int64     `json:"size_bytes"`
	Modified time.Time `json:"modified"`
}

// FileStore persists finished transcripts as CSV files in a single local
// directory. Uniquely derived filenames are the only collision defense; files
// are never rewritten or deleted by this process.
type FileStore struct {
	baseDir string
}

// NewFileStore creates the store, making the directory if needed
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("transcript directory cannot be empty")
	}

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create transcript directory %s: %w", baseDir, err)
	}

	return &FileStore{baseDir: baseDir}, nil
}

// Dir returns the directory transcripts are written to
func (s *FileStore) Dir() string {
	return s.baseDir
}

// Write persists a record and returns the stored filename. The file is
// staged to a temp path and renamed into place, so a name returned here
// always refers to a complete file.
func (s *FileStore) Write(record *Record) (string, error) {
	if record == nil || record.SessionID == "" {
		return "", fmt.Errorf("record must have a session id")
	}

	var buf bytes.Buffer
	if err := record.Encode(&buf); err != nil {
		return "", fmt.Errorf("failed to encode transcript: %w", err)
	}

	name := Filename(record)
	path := filepath.Join(s.baseDir, name)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write transcript %s: %w", name, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to store transcript %s: %w", name, err)
	}

	return name, nil
}

// List enumerates stored transcripts, most recently modified first
func (s *FileStore) List() ([]FileInfo, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript directory: %w", err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Name:     entry.Name(),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Modified.After(files[j].Modified)
	})

	return files, nil
}

// Read returns the raw content of one stored transcript. Names are validated
// before any filesystem access; anything that could address a path outside
// the store directory is rejected.
func (s *FileStore) Read(name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(filepath.Join(s.baseDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("'%s': %w", name, ErrFileNotFound)
		}
		return nil, fmt.Errorf("failed to read transcript %s: %w", name, err)
	}

	return content, nil
}

// Filename derives the stored name for a record from its start time and a
// fragment of its session id
func Filename(record *Record) string {
	return fmt.Sprintf("interview_%s_%s.csv",
		record.StartedAt.Format("20060102_150405"), shortID(record.SessionID))
}

// validateName rejects directory-escape sequences in requested file names
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("empty name: %w", ErrInvalidName)
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("'%s': %w", name, ErrInvalidName)
	}
	return nil
}

// shortID returns the leading fragment of a session id used in filenames
func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
