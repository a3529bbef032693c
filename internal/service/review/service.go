// Package review applies batches of per-pronunciation review verdicts.
//
// Votes are persisted as individual ballot rows, never by rewriting a
// suggestion document, so concurrent reviewers on the same suggestion
// cannot lose each other's votes.
package review

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type suggestionRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error)
	TouchPronunciation(ctx context.Context, id uuid.UUID) error
	AddInteraction(ctx context.Context, suggestionID, userID uuid.UUID) error
}

type ballotRepo interface {
	Cast(ctx context.Context, subject domain.BallotSubject, subjectID, voterID uuid.UUID, vote domain.VoteValue) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the review state aggregator.
type Service struct {
	log         *slog.Logger
	suggestions suggestionRepo
	ballots     ballotRepo
	tx          txManager
}

// NewService creates a new review service.
func NewService(logger *slog.Logger, suggestions suggestionRepo, ballots ballotRepo, tx txManager) *Service {
	return &Service{
		log:         logger.With("service", "review"),
		suggestions: suggestions,
		ballots:     ballots,
		tx:          tx,
	}
}

// Apply processes a review batch for one caller. Items are independent:
// one failing item never blocks the others, and the per-item outcome is
// reported in the same order the items came in.
func (s *Service) Apply(ctx context.Context, callerID uuid.UUID, items []BatchItem) ([]ItemResult, error) {
	if callerID == uuid.Nil {
		return nil, domain.NewValidationError("caller_id", "required")
	}

	results := make([]ItemResult, len(items))
	for i, item := range items {
		results[i] = ItemResult{SuggestionID: item.SuggestionID}
		results[i].Applied, results[i].Err = s.applyItem(ctx, callerID, item)
		if results[i].Err != nil {
			s.log.Warn("review item failed",
				slog.String("suggestion_id", item.SuggestionID.String()),
				slog.String("caller_id", callerID.String()),
				slog.String("error", results[i].Err.Error()))
		}
	}
	return results, nil
}

// applyItem handles a single batch item and returns how many verdicts
// were actually persisted.
func (s *Service) applyItem(ctx context.Context, callerID uuid.UUID, item BatchItem) (int, error) {
	if err := item.Validate(); err != nil {
		return 0, err
	}

	sugg, err := s.suggestions.GetByID(ctx, item.SuggestionID)
	if err != nil {
		return 0, fmt.Errorf("load suggestion %s: %w", item.SuggestionID, err)
	}
	if sugg.IsMerged() {
		return 0, fmt.Errorf("suggestion %s is merged: %w", item.SuggestionID, domain.ErrConflict)
	}

	reviews := item.Reviews
	if len(reviews) == 0 && item.Review != nil && len(sugg.Pronunciations) > 0 {
		// Single-slot shorthand targets the sole source recording.
		reviews = map[uuid.UUID]domain.ReviewAction{sugg.Pronunciations[0].ID: *item.Review}
	}

	// Collect the verdicts that actually need a write. Unknown
	// pronunciation ids and SKIPs fall out here without failing the item.
	type verdict struct {
		pronunciationID uuid.UUID
		vote            domain.VoteValue
	}
	var verdicts []verdict
	for pronunciationID, action := range reviews {
		if action == domain.ReviewActionSkip {
			continue
		}

		p := sugg.PronunciationByID(pronunciationID)
		if p == nil {
			s.log.Debug("ignoring verdict on unknown pronunciation",
				slog.String("suggestion_id", item.SuggestionID.String()),
				slog.String("pronunciation_id", pronunciationID.String()))
			continue
		}
		if !p.IsOpenToVoter(callerID) {
			s.log.Debug("ignoring verdict on closed pronunciation",
				slog.String("pronunciation_id", pronunciationID.String()),
				slog.String("caller_id", callerID.String()))
			continue
		}

		vote := domain.VoteApprove
		if action == domain.ReviewActionDeny {
			vote = domain.VoteDeny
		}
		verdicts = append(verdicts, verdict{pronunciationID: pronunciationID, vote: vote})
	}

	// The interaction mark is recorded even for an all-SKIP item: the
	// caller did look at this suggestion.
	if len(verdicts) == 0 {
		if err := s.suggestions.AddInteraction(ctx, item.SuggestionID, callerID); err != nil {
			return 0, fmt.Errorf("record interaction on %s: %w", item.SuggestionID, err)
		}
		return 0, nil
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, v := range verdicts {
			if err := s.ballots.Cast(ctx, domain.BallotSubjectPronunciation, v.pronunciationID, callerID, v.vote); err != nil {
				return fmt.Errorf("cast %s on pronunciation %s: %w", v.vote, v.pronunciationID, err)
			}
			if err := s.suggestions.TouchPronunciation(ctx, v.pronunciationID); err != nil {
				return fmt.Errorf("touch pronunciation %s: %w", v.pronunciationID, err)
			}
		}
		return s.suggestions.AddInteraction(ctx, item.SuggestionID, callerID)
	})
	if err != nil {
		return 0, err
	}

	return len(verdicts), nil
}
