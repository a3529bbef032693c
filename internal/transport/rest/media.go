package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/domain"
	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/service/media"
)

// mediaService defines the minimal interface needed by MediaHandler.
type mediaService interface {
	Create(ctx context.Context, id, base64Payload string) (string, error)
	Delete(ctx context.Context, id string, lossy bool) error
	Rename(ctx context.Context, oldID, newID string, lossy bool) (string, error)
	GenerateSignedUpload(ctx context.Context, collection string, docID uuid.UUID, fileType string) (*media.SignedUpload, error)
}

// MediaHandler serves the audio-media endpoints.
type MediaHandler struct {
	svc mediaService
	log *slog.Logger
}

// NewMediaHandler creates a MediaHandler.
func NewMediaHandler(svc mediaService, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{svc: svc, log: logger.With("handler", "media")}
}

type createAudioRequest struct {
	ID   string `json:"id"`
	Data string `json:"data"`
}

type audioResponse struct {
	URL string `json:"url"`
}

// CreateAudio handles POST /media/audio.
func (h *MediaHandler) CreateAudio(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}

	var req createAudioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	url, err := h.svc.Create(r.Context(), req.ID, req.Data)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, audioResponse{URL: url})
}

// DeleteAudio handles DELETE /media/audio/{id}.
// ?lossy=true selects the mp3 variant.
func (h *MediaHandler) DeleteAudio(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}

	id := r.PathValue("id")
	lossy := r.URL.Query().Get("lossy") == "true"

	if err := h.svc.Delete(r.Context(), id, lossy); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type renameAudioRequest struct {
	OldID string `json:"oldId"`
	NewID string `json:"newId"`
	Lossy bool   `json:"lossy"`
}

// RenameAudio handles POST /media/audio/rename. The merge flow calls this
// to move a reviewed recording onto its canonical document identity.
func (h *MediaHandler) RenameAudio(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}

	var req renameAudioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	url, err := h.svc.Rename(r.Context(), req.OldID, req.NewID, req.Lossy)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, audioResponse{URL: url})
}

type signedUploadRequest struct {
	Collection string `json:"collection"`
	DocumentID string `json:"documentId"`
	FileType   string `json:"fileType"`
}

type signedUploadResponse struct {
	SignedUploadURL string `json:"signedUploadUrl"`
	MediaURL        string `json:"mediaUrl"`
}

// SignedUpload handles POST /media/signed-upload.
func (h *MediaHandler) SignedUpload(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}

	var req signedUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	docID, err := uuid.Parse(req.DocumentID)
	if err != nil {
		handleError(h.log, w, r, domain.NewValidationError("documentId", "must be a UUID"))
		return
	}

	upload, err := h.svc.GenerateSignedUpload(r.Context(), req.Collection, docID, req.FileType)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, signedUploadResponse{
		SignedUploadURL: upload.SignedUploadURL,
		MediaURL:        upload.MediaURL,
	})
}
