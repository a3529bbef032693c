package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/domain"
	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/service/review"
)

// reviewService defines the minimal interface needed by ReviewHandler.
type reviewService interface {
	Apply(ctx context.Context, callerID uuid.UUID, items []review.BatchItem) ([]review.ItemResult, error)
}

// ReviewHandler serves the review-submission endpoint.
type ReviewHandler struct {
	svc reviewService
	log *slog.Logger
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(svc reviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{svc: svc, log: logger.With("handler", "review")}
}

type reviewItemRequest struct {
	SuggestionID string            `json:"suggestionId"`
	Reviews      map[string]string `json:"reviews,omitempty"`
	Review       *string           `json:"review,omitempty"`
}

type reviewItemResponse struct {
	SuggestionID string `json:"suggestionId"`
	Applied      int    `json:"applied"`
	Error        string `json:"error,omitempty"`
}

// Submit handles POST /reviews with a batch of per-suggestion verdicts.
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var req []reviewItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]review.BatchItem, 0, len(req))
	for _, it := range req {
		item, err := toBatchItem(it)
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}
		items = append(items, item)
	}

	results, err := h.svc.Apply(r.Context(), caller, items)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]reviewItemResponse, 0, len(results))
	for _, res := range results {
		item := reviewItemResponse{
			SuggestionID: res.SuggestionID.String(),
			Applied:      res.Applied,
		}
		if res.Err != nil {
			item.Error = res.Err.Error()
		}
		resp = append(resp, item)
	}

	writeJSON(w, http.StatusOK, resp)
}

func toBatchItem(req reviewItemRequest) (review.BatchItem, error) {
	suggestionID, err := uuid.Parse(req.SuggestionID)
	if err != nil {
		return review.BatchItem{}, domain.NewValidationError("suggestionId", "must be a UUID")
	}

	item := review.BatchItem{SuggestionID: suggestionID}

	if len(req.Reviews) > 0 {
		item.Reviews = make(map[uuid.UUID]domain.ReviewAction, len(req.Reviews))
		for rawID, rawAction := range req.Reviews {
			pronunciationID, err := uuid.Parse(rawID)
			if err != nil {
				return review.BatchItem{}, domain.NewValidationError("reviews", "pronunciation id must be a UUID")
			}
			item.Reviews[pronunciationID] = domain.ReviewAction(rawAction)
		}
	}

	if req.Review != nil {
		action := domain.ReviewAction(*req.Review)
		item.Review = &action
	}

	return item, nil
}
