package stats

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/domain"
)

type mockStatsRepo struct {
	CountRecordedFunc      func(ctx context.Context, userID uuid.UUID) (int, error)
	CountMergedByMonthFunc func(ctx context.Context, userID uuid.UUID) ([]domain.MonthCount, error)
	CountTranslationsFunc  func(ctx context.Context, userID uuid.UUID) (int, error)
}

func (m *mockStatsRepo) CountRecorded(ctx context.Context, userID uuid.UUID) (int, error) {
	return m.CountRecordedFunc(ctx, userID)
}

func (m *mockStatsRepo) CountMergedByMonth(ctx context.Context, userID uuid.UUID) ([]domain.MonthCount, error) {
	return m.CountMergedByMonthFunc(ctx, userID)
}

func (m *mockStatsRepo) CountTranslations(ctx context.Context, userID uuid.UUID) (int, error) {
	return m.CountTranslationsFunc(ctx, userID)
}

func TestForContributor(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	repo := &mockStatsRepo{
		CountRecordedFunc: func(_ context.Context, id uuid.UUID) (int, error) {
			assert.Equal(t, userID, id)
			return 12, nil
		},
		CountMergedByMonthFunc: func(context.Context, uuid.UUID) ([]domain.MonthCount, error) {
			return []domain.MonthCount{{Month: "2026-07", Count: 3}, {Month: "2026-08", Count: 1}}, nil
		},
		CountTranslationsFunc: func(context.Context, uuid.UUID) (int, error) {
			return 7, nil
		},
	}
	svc := NewService(slog.New(slog.DiscardHandler), repo)

	got, err := svc.ForContributor(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 12, got.Recorded)
	assert.Equal(t, 7, got.Translations)
	require.Len(t, got.MergedByMonth, 2)
	assert.Equal(t, domain.MonthCount{Month: "2026-07", Count: 3}, got.MergedByMonth[0])
}

func TestForContributor_NilUser(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.New(slog.DiscardHandler), &mockStatsRepo{})

	_, err := svc.ForContributor(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestForContributor_RepoError(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("connection reset")
	svc := NewService(slog.New(slog.DiscardHandler), &mockStatsRepo{
		CountRecordedFunc: func(context.Context, uuid.UUID) (int, error) {
			return 0, dbErr
		},
	})

	_, err := svc.ForContributor(context.Background(), uuid.New())
	assert.ErrorIs(t, err, dbErr)
}
