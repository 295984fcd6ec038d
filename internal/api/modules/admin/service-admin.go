package admin

import (
	"fmt"
	"log"

	"github.com/mtopaz/usc-workshop-aria/internal/stores/transcript"
	"github.com/mtopaz/usc-workshop-aria/pkg/sdk"
	"github.com/mtopaz/usc-workshop-aria/pkg/utils"
)

// DownloadPathPrefix is where the admin module serves stored transcripts
const DownloadPathPrefix = "/api/admin/transcripts/"

// AdminService reads the transcript store for the workshop facilitator
type AdminService struct {
	store *transcript.FileStore
}

var adminService *AdminService

/** ---- INIT ---- */

// Init creates a new admin service
func Init(cfg *utils.Config) error {
	store, err := transcript.NewFileStore(cfg.GetWithDefault("TRANSCRIPT_DIR", transcript.DefaultDir))
	if err != nil {
		return fmt.Errorf("failed to open transcript store: %w", err)
	}

	adminService = &AdminService{store: store}
	return nil
}

// GetService returns the admin service instance
func GetService() *AdminService {
	if adminService == nil {
		log.Fatal("[ADMIN]: Service is not initialized")
	}
	return adminService
}

/** ---- SERVICE METHODS ---- */

// ListTranscripts enumerates the stored transcripts, newest first
func (s *AdminService) ListTranscripts() (*sdk.ListTranscriptsResponse, error) {
	files, err := s.store.List()
	if err != nil {
		return nil, err
	}

	out := make([]sdk.TranscriptFile, 0, len(files))
	for _, file := range files {
		out = append(out, sdk.TranscriptFile{
			Filename:    file.Name,
			SizeBytes:   file.Size,
			Modified:    file.Modified,
			DownloadURL: DownloadPathPrefix + file.Name,
		})
	}

	return &sdk.ListTranscriptsResponse{
		TranscriptDirectory: s.store.Dir(),
		TotalFiles:          len(out),
		Files:               out,
	}, nil
}

// ReadTranscript returns the raw CSV content of one stored transcript
func (s *AdminService) ReadTranscript(name string) ([]byte, error) {
	return s.store.Read(name)
}
