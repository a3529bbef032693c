// Package sampler hands out batches of suggestion documents to
// volunteers: documents needing a recording, recordings awaiting review,
// documents open for translation, and translations awaiting review.
package sampler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/config"
	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type suggestionRepo interface {
	SampleForRecording(ctx context.Context, f domain.SampleFilter) ([]domain.Suggestion, error)
	SampleForReview(ctx context.Context, f domain.SampleFilter) ([]domain.Suggestion, error)
	SampleForTranslation(ctx context.Context, f domain.SampleFilter) ([]domain.Suggestion, error)
	SampleForTranslationReview(ctx context.Context, f domain.SampleFilter) ([]domain.Suggestion, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the task sampler.
type Service struct {
	log         *slog.Logger
	suggestions suggestionRepo
	cfg         config.SamplingConfig
}

// NewService creates a new sampler service.
func NewService(logger *slog.Logger, suggestions suggestionRepo, cfg config.SamplingConfig) *Service {
	return &Service{
		log:         logger.With("service", "sampler"),
		suggestions: suggestions,
		cfg:         cfg,
	}
}

// prepare validates the filter and clamps the limit into the configured
// window. A zero limit means "use the default".
func (s *Service) prepare(f domain.SampleFilter) (domain.SampleFilter, error) {
	if err := f.Validate(); err != nil {
		return f, err
	}
	if f.Limit == 0 {
		f.Limit = s.cfg.DefaultLimit
	}
	if f.Limit > s.cfg.MaxLimit {
		f.Limit = s.cfg.MaxLimit
	}
	return f, nil
}

// RecordingTasks samples suggestions the caller can record audio for:
// not merged, below the recording cap, and not already recorded by the
// caller.
func (s *Service) RecordingTasks(ctx context.Context, f domain.SampleFilter) ([]domain.Suggestion, error) {
	f, err := s.prepare(f)
	if err != nil {
		return nil, err
	}

	out, err := s.suggestions.SampleForRecording(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("sample recording tasks: %w", err)
	}

	s.log.Debug("sampled recording tasks",
		slog.String("caller_id", f.CallerID.String()), slog.Int("count", len(out)))
	return out, nil
}

// ReviewTasks samples suggestions carrying at least one recording the
// caller can still vote on.
func (s *Service) ReviewTasks(ctx context.Context, f domain.SampleFilter) ([]domain.Suggestion, error) {
	f, err := s.prepare(f)
	if err != nil {
		return nil, err
	}

	out, err := s.suggestions.SampleForReview(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("sample review tasks: %w", err)
	}

	// Reviewable recordings are decided here rather than in SQL: the
	// query over-selects candidates and the domain predicate makes the
	// final call per recording.
	out = filterReviewable(out, f.CallerID)

	s.log.Debug("sampled review tasks",
		slog.String("caller_id", f.CallerID.String()), slog.Int("count", len(out)))
	return out, nil
}

// TranslationTasks samples suggestions with at least one requested
// language still open for the caller to translate into.
func (s *Service) TranslationTasks(ctx context.Context, f domain.SampleFilter) ([]domain.Suggestion, error) {
	f, err := s.prepare(f)
	if err != nil {
		return nil, err
	}

	out, err := s.suggestions.SampleForTranslation(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("sample translation tasks: %w", err)
	}

	s.log.Debug("sampled translation tasks",
		slog.String("caller_id", f.CallerID.String()), slog.Int("count", len(out)))
	return out, nil
}

// TranslationReviewTasks samples suggestions whose translations await a
// verdict from someone other than their author.
func (s *Service) TranslationReviewTasks(ctx context.Context, f domain.SampleFilter) ([]domain.Suggestion, error) {
	f, err := s.prepare(f)
	if err != nil {
		return nil, err
	}

	out, err := s.suggestions.SampleForTranslationReview(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("sample translation review tasks: %w", err)
	}

	s.log.Debug("sampled translation review tasks",
		slog.String("caller_id", f.CallerID.String()), slog.Int("count", len(out)))
	return out, nil
}

// filterReviewable drops suggestions with no recording the voter can act
// on, so a batch never contains a document the caller cannot progress.
func filterReviewable(suggestions []domain.Suggestion, voterID uuid.UUID) []domain.Suggestion {
	kept := suggestions[:0]
	for i := range suggestions {
		if hasReviewableRecording(&suggestions[i], voterID) {
			kept = append(kept, suggestions[i])
		}
	}
	return kept
}

func hasReviewableRecording(s *domain.Suggestion, voterID uuid.UUID) bool {
	for i := range s.Pronunciations {
		if s.Pronunciations[i].IsEligible(voterID) {
			return true
		}
	}
	for ti := range s.Translations {
		for i := range s.Translations[ti].Pronunciations {
			if s.Translations[ti].Pronunciations[i].IsEligible(voterID) {
				return true
			}
		}
	}
	return false
}
