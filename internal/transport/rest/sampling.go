package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/domain"
)

// samplingService defines the minimal interface needed by SamplingHandler.
type samplingService interface {
	RecordingTasks(ctx context.Context, f domain.SampleFilter) ([]domain.Suggestion, error)
	ReviewTasks(ctx context.Context, f domain.SampleFilter) ([]domain.Suggestion, error)
	TranslationTasks(ctx context.Context, f domain.SampleFilter) ([]domain.Suggestion, error)
	TranslationReviewTasks(ctx context.Context, f domain.SampleFilter) ([]domain.Suggestion, error)
}

// SamplingHandler serves the task-sampling endpoints.
type SamplingHandler struct {
	svc samplingService
	log *slog.Logger
}

// NewSamplingHandler creates a SamplingHandler.
func NewSamplingHandler(svc samplingService, logger *slog.Logger) *SamplingHandler {
	return &SamplingHandler{svc: svc, log: logger.With("handler", "sampling")}
}

// Recording handles GET /tasks/recording.
func (h *SamplingHandler) Recording(w http.ResponseWriter, r *http.Request) {
	h.sample(w, r, h.svc.RecordingTasks)
}

// Review handles GET /tasks/review.
func (h *SamplingHandler) Review(w http.ResponseWriter, r *http.Request) {
	h.sample(w, r, h.svc.ReviewTasks)
}

// Translation handles GET /tasks/translation.
func (h *SamplingHandler) Translation(w http.ResponseWriter, r *http.Request) {
	h.sample(w, r, h.svc.TranslationTasks)
}

// TranslationReview handles GET /tasks/translation-review.
func (h *SamplingHandler) TranslationReview(w http.ResponseWriter, r *http.Request) {
	h.sample(w, r, h.svc.TranslationReviewTasks)
}

func (h *SamplingHandler) sample(w http.ResponseWriter, r *http.Request, fn func(context.Context, domain.SampleFilter) ([]domain.Suggestion, error)) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	f, err := parseSampleFilter(r, caller)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	suggestions, err := fn(r.Context(), f)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSuggestionResponses(suggestions))
}

// parseSampleFilter reads the common sampling query parameters:
// ?project_id=<uuid>&languages=ENGLISH,FRENCH&limit=10
func parseSampleFilter(r *http.Request, caller uuid.UUID) (domain.SampleFilter, error) {
	q := r.URL.Query()

	f := domain.SampleFilter{CallerID: caller}

	if v := q.Get("project_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return f, domain.NewValidationError("project_id", "must be a UUID")
		}
		f.ProjectID = id
	}

	if v := q.Get("languages"); v != "" {
		for _, raw := range strings.Split(v, ",") {
			f.Languages = append(f.Languages, domain.LanguageCode(strings.ToUpper(strings.TrimSpace(raw))))
		}
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, domain.NewValidationError("limit", "must be an integer")
		}
		f.Limit = n
	}

	return f, nil
}

// ---------------------------------------------------------------------------
// Responses
// ---------------------------------------------------------------------------

type suggestionResponse struct {
	ID             string                  `json:"id"`
	ProjectID      string                  `json:"projectId"`
	SourceText     string                  `json:"sourceText"`
	SourceLanguage string                  `json:"sourceLanguage"`
	Origin         string                  `json:"origin"`
	Pronunciations []pronunciationResponse `json:"pronunciations"`
	Translations   []translationResponse   `json:"translations"`
	CreatedAt      time.Time               `json:"createdAt"`
	UpdatedAt      time.Time               `json:"updatedAt"`
}

type pronunciationResponse struct {
	ID        string    `json:"id"`
	Audio     string    `json:"audio"`
	SpeakerID *string   `json:"speakerId,omitempty"`
	Review    bool      `json:"review"`
	Archived  bool      `json:"archived"`
	Approvals []string  `json:"approvals"`
	Denials   []string  `json:"denials"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type translationResponse struct {
	ID             string                  `json:"id"`
	Text           string                  `json:"text"`
	Language       string                  `json:"language"`
	AuthorID       string                  `json:"authorId"`
	Approvals      []string                `json:"approvals"`
	Denials        []string                `json:"denials"`
	Pronunciations []pronunciationResponse `json:"pronunciations"`
}

func toSuggestionResponses(suggestions []domain.Suggestion) []suggestionResponse {
	out := make([]suggestionResponse, 0, len(suggestions))
	for i := range suggestions {
		out = append(out, toSuggestionResponse(&suggestions[i]))
	}
	return out
}

func toSuggestionResponse(s *domain.Suggestion) suggestionResponse {
	resp := suggestionResponse{
		ID:             s.ID.String(),
		ProjectID:      s.ProjectID.String(),
		SourceText:     s.SourceText,
		SourceLanguage: s.SourceLanguage.String(),
		Origin:         s.Origin.String(),
		Pronunciations: toPronunciationResponses(s.Pronunciations),
		Translations:   make([]translationResponse, 0, len(s.Translations)),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	for i := range s.Translations {
		t := &s.Translations[i]
		resp.Translations = append(resp.Translations, translationResponse{
			ID:             t.ID.String(),
			Text:           t.Text,
			Language:       t.Language.String(),
			AuthorID:       t.AuthorID.String(),
			Approvals:      uuidStrings(t.Approvals),
			Denials:        uuidStrings(t.Denials),
			Pronunciations: toPronunciationResponses(t.Pronunciations),
		})
	}
	return resp
}

func toPronunciationResponses(ps []domain.Pronunciation) []pronunciationResponse {
	out := make([]pronunciationResponse, 0, len(ps))
	for i := range ps {
		p := &ps[i]
		resp := pronunciationResponse{
			ID:        p.ID.String(),
			Audio:     p.Audio,
			Review:    p.Review,
			Archived:  p.Archived,
			Approvals: uuidStrings(p.Approvals),
			Denials:   uuidStrings(p.Denials),
			UpdatedAt: p.UpdatedAt,
		}
		if p.SpeakerID != nil {
			s := p.SpeakerID.String()
			resp.SpeakerID = &s
		}
		out = append(out, resp)
	}
	return out
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
