package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/domain"
)

// statsService defines the minimal interface needed by StatsHandler.
type statsService interface {
	ForContributor(ctx context.Context, userID uuid.UUID) (*domain.ContributorStats, error)
}

// StatsHandler serves the contributor dashboard counts.
type StatsHandler struct {
	svc statsService
	log *slog.Logger
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(svc statsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, log: logger.With("handler", "stats")}
}

type monthCountResponse struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type statsResponse struct {
	Recorded      int                  `json:"recorded"`
	MergedByMonth []monthCountResponse `json:"mergedByMonth"`
	Translations  int                  `json:"translations"`
}

// Me handles GET /stats/me.
func (h *StatsHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	h.respond(w, r, caller)
}

// ByUser handles GET /stats/users/{id}.
func (h *StatsHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}

	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handleError(h.log, w, r, domain.NewValidationError("id", "must be a UUID"))
		return
	}
	h.respond(w, r, userID)
}

func (h *StatsHandler) respond(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	stats, err := h.svc.ForContributor(r.Context(), userID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := statsResponse{
		Recorded:      stats.Recorded,
		Translations:  stats.Translations,
		MergedByMonth: make([]monthCountResponse, 0, len(stats.MergedByMonth)),
	}
	for _, mc := range stats.MergedByMonth {
		resp.MergedByMonth = append(resp.MergedByMonth, monthCountResponse{Month: mc.Month, Count: mc.Count})
	}

	writeJSON(w, http.StatusOK, resp)
}
