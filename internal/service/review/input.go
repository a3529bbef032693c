package review

import (
	"github.com/google/uuid"

	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/domain"
)

// BatchItem is one suggestion's worth of review verdicts: pronunciation
// id to action. Pronunciations not named here are never touched.
type BatchItem struct {
	SuggestionID uuid.UUID
	Reviews      map[uuid.UUID]domain.ReviewAction

	// Review is the single-slot shorthand: one verdict applied to the
	// suggestion's sole source recording, for flows that never show more
	// than one audio slot. Ignored when Reviews is set.
	Review *domain.ReviewAction
}

// SingleReview builds the single-slot shorthand used by flows where a
// suggestion carries exactly one recording.
func SingleReview(suggestionID, pronunciationID uuid.UUID, action domain.ReviewAction) BatchItem {
	return BatchItem{
		SuggestionID: suggestionID,
		Reviews:      map[uuid.UUID]domain.ReviewAction{pronunciationID: action},
	}
}

// Validate fails fast on a malformed item before anything is loaded.
func (i BatchItem) Validate() error {
	var errs []domain.FieldError
	if i.SuggestionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "suggestion_id", Message: "required"})
	}
	for _, action := range i.Reviews {
		if !action.IsValid() {
			errs = append(errs, domain.FieldError{Field: "reviews", Message: "unknown action " + action.String()})
		}
	}
	if i.Review != nil && !i.Review.IsValid() {
		errs = append(errs, domain.FieldError{Field: "review", Message: "unknown action " + i.Review.String()})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ItemResult is the per-item outcome of a batch. Applied counts the
// verdicts that were persisted; Err is set when the item failed as a
// whole.
type ItemResult struct {
	SuggestionID uuid.UUID
	Applied      int
	Err          error
}
