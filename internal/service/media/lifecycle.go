package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/domain"
)

const audioContentType = "audio/webm"

// Create decodes a base64 audio payload and uploads it under the given
// identity. After the upload a best-effort existence check confirms the
// write and measures the byte size; a failed check is advisory only and
// the upload's location is returned regardless.
func (s *Service) Create(ctx context.Context, id, base64Payload string) (string, error) {
	if id == "" {
		return "", domain.NewValidationError("id", "required")
	}

	payload, err := decodeAudioPayload(base64Payload)
	if err != nil {
		return "", domain.NewValidationError("data", "invalid base64 audio payload")
	}

	key := s.audioKey(id, false)
	url, err := s.backend.Upload(ctx, key, payload, audioContentType)
	if err != nil {
		return "", fmt.Errorf("upload audio for %s: %w", id, err)
	}

	if size, statErr := s.backend.Stat(ctx, key); statErr != nil {
		s.logger.Warn("audio upload confirmation failed",
			slog.String("key", key), slog.String("error", statErr.Error()))
	} else {
		s.logger.Info("audio uploaded",
			slog.String("key", key), slog.Int64("size_bytes", size))
	}

	return url, nil
}

// Delete removes the audio object for an identity. The lossy flag selects
// the extension the recording was originally stored under.
func (s *Service) Delete(ctx context.Context, id string, lossy bool) error {
	if id == "" {
		return domain.NewValidationError("id", "required")
	}
	return s.backend.Delete(ctx, s.audioKey(id, lossy))
}

// Copy duplicates audio from oldID to newID server-side. A failed copy is
// resolved best-effort — empty URL, nil error — with two exceptions: a
// same-id copy is inherently safe to no-op, and a copy between two
// *distinct dialectal* recordings must never fail silently, because that
// would lose a dialect recording; it escalates to ErrRerecordRequired.
func (s *Service) Copy(ctx context.Context, oldID, newID string, lossy bool) (string, error) {
	if newID == "" {
		return "", domain.NewValidationError("new_id", "required")
	}

	url, err := s.backend.Copy(ctx, s.audioKey(oldID, lossy), s.audioKey(newID, lossy))
	if err == nil {
		if _, statErr := s.backend.Stat(ctx, s.audioKey(newID, lossy)); statErr != nil {
			s.logger.Warn("audio copy confirmation failed",
				slog.String("new_id", newID), slog.String("error", statErr.Error()))
		}
		return url, nil
	}

	if oldID == newID {
		s.logger.Warn("self-copy failed, resolving as no-op",
			slog.String("id", oldID), slog.String("error", err.Error()))
		return "", nil
	}

	if domain.HasDialectMarker(oldID) && domain.HasDialectMarker(newID) {
		return "", fmt.Errorf("copy %s to %s: %w", oldID, newID, domain.ErrRerecordRequired)
	}

	s.logger.Warn("audio copy failed, resolving best-effort",
		slog.String("old_id", oldID), slog.String("new_id", newID),
		slog.String("error", err.Error()))
	return "", nil
}

// Rename moves audio from oldID to newID. An empty oldID means the
// suggestion never had audio: whatever occupies newID is deleted so the
// canonical slot ends up empty, and "" is returned. Otherwise the copy is
// attempted and its outcome observed before the source is deleted, so a
// failed copy never strands the document with neither old nor new audio.
func (s *Service) Rename(ctx context.Context, oldID, newID string, lossy bool) (string, error) {
	if newID == "" {
		return "", domain.NewValidationError("new_id", "required")
	}

	if oldID == "" {
		if err := s.backend.Delete(ctx, s.audioKey(newID, lossy)); err != nil {
			s.logger.Warn("clearing canonical audio slot failed",
				slog.String("new_id", newID), slog.String("error", err.Error()))
		}
		return "", nil
	}

	url, err := s.Copy(ctx, oldID, newID, lossy)
	if err != nil {
		return "", err
	}
	if url == "" {
		// Best-effort copy fell through: keep the source in place.
		return "", nil
	}

	if err := s.backend.Delete(ctx, s.audioKey(oldID, lossy)); err != nil {
		s.logger.Warn("deleting renamed audio source failed",
			slog.String("old_id", oldID), slog.String("error", err.Error()))
	}

	return url, nil
}

// decodeAudioPayload decodes base64 audio, tolerating a data-URI prefix
// ("data:audio/webm;base64,....") from browser recorders.
func decodeAudioPayload(payload string) ([]byte, error) {
	if payload == "" {
		return nil, fmt.Errorf("empty payload")
	}
	if i := strings.IndexByte(payload, ','); i >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[i+1:]
	}
	return base64.StdEncoding.DecodeString(payload)
}
