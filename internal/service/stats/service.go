// Package stats serves read-only contributor dashboard counts.
package stats

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/domain"
)

type statsRepo interface {
	CountRecorded(ctx context.Context, userID uuid.UUID) (int, error)
	CountMergedByMonth(ctx context.Context, userID uuid.UUID) ([]domain.MonthCount, error)
	CountTranslations(ctx context.Context, userID uuid.UUID) (int, error)
}

// Service implements the stats aggregator. It never writes.
type Service struct {
	log   *slog.Logger
	stats statsRepo
}

// NewService creates a new stats service.
func NewService(logger *slog.Logger, stats statsRepo) *Service {
	return &Service{
		log:   logger.With("service", "stats"),
		stats: stats,
	}
}

// ForContributor assembles the dashboard counts for one user.
func (s *Service) ForContributor(ctx context.Context, userID uuid.UUID) (*domain.ContributorStats, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user_id", "required")
	}

	recorded, err := s.stats.CountRecorded(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count recorded for %s: %w", userID, err)
	}

	merged, err := s.stats.CountMergedByMonth(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count merged for %s: %w", userID, err)
	}

	translations, err := s.stats.CountTranslations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count translations for %s: %w", userID, err)
	}

	return &domain.ContributorStats{
		Recorded:      recorded,
		MergedByMonth: merged,
		Translations:  translations,
	}, nil
}
