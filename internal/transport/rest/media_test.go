package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/domain"
	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/service/media"
)

type mediaServiceMock struct {
	CreateFunc               func(ctx context.Context, id, base64Payload string) (string, error)
	DeleteFunc               func(ctx context.Context, id string, lossy bool) error
	RenameFunc               func(ctx context.Context, oldID, newID string, lossy bool) (string, error)
	GenerateSignedUploadFunc func(ctx context.Context, collection string, docID uuid.UUID, fileType string) (*media.SignedUpload, error)
}

func (m *mediaServiceMock) Create(ctx context.Context, id, payload string) (string, error) {
	return m.CreateFunc(ctx, id, payload)
}

func (m *mediaServiceMock) Delete(ctx context.Context, id string, lossy bool) error {
	return m.DeleteFunc(ctx, id, lossy)
}

func (m *mediaServiceMock) Rename(ctx context.Context, oldID, newID string, lossy bool) (string, error) {
	return m.RenameFunc(ctx, oldID, newID, lossy)
}

func (m *mediaServiceMock) GenerateSignedUpload(ctx context.Context, collection string, docID uuid.UUID, fileType string) (*media.SignedUpload, error) {
	return m.GenerateSignedUploadFunc(ctx, collection, docID, fileType)
}

func TestCreateAudio_OK(t *testing.T) {
	t.Parallel()

	h := NewMediaHandler(&mediaServiceMock{
		CreateFunc: func(_ context.Context, id, payload string) (string, error) {
			if id != "doc-1" || payload != "AAAA" {
				t.Errorf("unexpected args: id=%q payload=%q", id, payload)
			}
			return "https://cdn.test/audio-pronunciations/doc-1.webm", nil
		},
	}, testLogger())

	req := newAuthedRequest(http.MethodPost, "/media/audio", `{"id": "doc-1", "data": "AAAA"}`)
	rec := httptest.NewRecorder()

	h.CreateAudio(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp audioResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.URL != "https://cdn.test/audio-pronunciations/doc-1.webm" {
		t.Errorf("unexpected url %q", resp.URL)
	}
}

func TestCreateAudio_Unauthenticated(t *testing.T) {
	t.Parallel()

	h := NewMediaHandler(&mediaServiceMock{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/media/audio", nil)
	rec := httptest.NewRecorder()

	h.CreateAudio(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestCreateAudio_ValidationTo400(t *testing.T) {
	t.Parallel()

	h := NewMediaHandler(&mediaServiceMock{
		CreateFunc: func(context.Context, string, string) (string, error) {
			return "", domain.NewValidationError("data", "must not be empty")
		},
	}, testLogger())

	req := newAuthedRequest(http.MethodPost, "/media/audio", `{"id": "doc-1", "data": ""}`)
	rec := httptest.NewRecorder()

	h.CreateAudio(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestDeleteAudio_NoContent(t *testing.T) {
	t.Parallel()

	var gotID string
	var gotLossy bool
	h := NewMediaHandler(&mediaServiceMock{
		DeleteFunc: func(_ context.Context, id string, lossy bool) error {
			gotID, gotLossy = id, lossy
			return nil
		},
	}, testLogger())

	req := newAuthedRequest(http.MethodDelete, "/media/audio/doc-1?lossy=true", "")
	req.SetPathValue("id", "doc-1")
	rec := httptest.NewRecorder()

	h.DeleteAudio(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if gotID != "doc-1" || !gotLossy {
		t.Errorf("unexpected args: id=%q lossy=%v", gotID, gotLossy)
	}
}

func TestRenameAudio_RerecordRequiredTo422(t *testing.T) {
	t.Parallel()

	h := NewMediaHandler(&mediaServiceMock{
		RenameFunc: func(context.Context, string, string, bool) (string, error) {
			return "", domain.ErrRerecordRequired
		},
	}, testLogger())

	req := newAuthedRequest(http.MethodPost, "/media/audio/rename",
		`{"oldId": "word-1-dialectA", "newId": "word-1-dialectB"}`)
	rec := httptest.NewRecorder()

	h.RenameAudio(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
}

func TestSignedUpload_OK(t *testing.T) {
	t.Parallel()

	docID := uuid.New()
	h := NewMediaHandler(&mediaServiceMock{
		GenerateSignedUploadFunc: func(_ context.Context, collection string, id uuid.UUID, fileType string) (*media.SignedUpload, error) {
			if collection != "suggestions" || id != docID || fileType != "audio/webm" {
				t.Errorf("unexpected args: %q %s %q", collection, id, fileType)
			}
			return &media.SignedUpload{
				SignedUploadURL: "https://store.test/put",
				MediaURL:        "https://cdn.test/audio-pronunciations/" + docID.String() + ".webm",
			}, nil
		},
	}, testLogger())

	body := `{"collection": "suggestions", "documentId": "` + docID.String() + `", "fileType": "audio/webm"}`
	req := newAuthedRequest(http.MethodPost, "/media/signed-upload", body)
	rec := httptest.NewRecorder()

	h.SignedUpload(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp signedUploadResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.SignedUploadURL == "" || resp.MediaURL == "" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestSignedUpload_SignatureFailureTo422(t *testing.T) {
	t.Parallel()

	h := NewMediaHandler(&mediaServiceMock{
		GenerateSignedUploadFunc: func(context.Context, string, uuid.UUID, string) (*media.SignedUpload, error) {
			return nil, domain.ErrMediaSignature
		},
	}, testLogger())

	body := `{"collection": "suggestions", "documentId": "` + uuid.NewString() + `", "fileType": "audio/webm"}`
	req := newAuthedRequest(http.MethodPost, "/media/signed-upload", body)
	rec := httptest.NewRecorder()

	h.SignedUpload(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
}

func TestSignedUpload_BadDocumentID(t *testing.T) {
	t.Parallel()

	h := NewMediaHandler(&mediaServiceMock{}, testLogger())

	req := newAuthedRequest(http.MethodPost, "/media/signed-upload",
		`{"collection": "suggestions", "documentId": "nope", "fileType": "audio/webm"}`)
	rec := httptest.NewRecorder()

	h.SignedUpload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
