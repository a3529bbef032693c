// Package media implements the audio media lifecycle: keeping blob
// identity in sync with document identity across create, copy, rename,
// and delete, plus signed direct-upload URLs.
package media

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	storage "github.com/nkowaokwu/igbo-api-admin-sub002/internal/adapter/media"
	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/config"
	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type documentChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service is the media lifecycle manager.
type Service struct {
	backend         storage.Backend
	docs            documentChecker
	mediaPath       string
	signedURLExpiry time.Duration
	logger          *slog.Logger
}

// New creates a media service on top of the given storage backend.
func New(backend storage.Backend, docs documentChecker, cfg config.StorageConfig, logger *slog.Logger) *Service {
	return &Service{
		backend:         backend,
		docs:            docs,
		mediaPath:       cfg.MediaPath,
		signedURLExpiry: cfg.SignedURLExpiry,
		logger:          logger,
	}
}

// audioKey derives the storage key for a pronunciation identity. The id is
// normalized so accented identifiers produce stable ASCII-safe keys; the
// extension records how the audio was originally encoded.
func (s *Service) audioKey(id string, lossy bool) string {
	ext := ".webm"
	if lossy {
		ext = ".mp3"
	}
	return s.mediaPath + "/" + domain.NormalizeMediaID(id) + ext
}

// mediaKey derives the storage key for non-audio media: no normalization,
// no extension mangling.
func (s *Service) mediaKey(id string) string {
	return s.mediaPath + "/" + id
}
