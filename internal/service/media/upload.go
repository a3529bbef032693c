package media

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/domain"
)

// SignedUpload is the response to a signed-upload request: where the
// client PUTs the bytes, and where the object will be served from.
type SignedUpload struct {
	SignedUploadURL string
	MediaURL        string
}

// audioFileTypes maps accepted audio content types to the lossy flag used
// for key derivation. Anything else is treated as generic media.
var audioFileTypes = map[string]bool{
	"audio/webm": false,
	"audio/mp3":  true,
	"audio/mpeg": true,
}

// GenerateSignedUpload produces a pre-signed upload URL for media attached
// to an existing document. A missing document fails with ErrNotFound;
// a signature failure with ErrMediaSignature.
func (s *Service) GenerateSignedUpload(ctx context.Context, collection string, docID uuid.UUID, fileType string) (*SignedUpload, error) {
	if collection == "" {
		return nil, domain.NewValidationError("collection", "required")
	}
	if docID == uuid.Nil {
		return nil, domain.NewValidationError("document_id", "required")
	}
	if fileType == "" {
		return nil, domain.NewValidationError("file_type", "required")
	}

	exists, err := s.docs.Exists(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("check document %s: %w", docID, err)
	}
	if !exists {
		return nil, fmt.Errorf("document %s: %w", docID, domain.ErrNotFound)
	}

	var key string
	if lossy, ok := audioFileTypes[fileType]; ok {
		key = s.audioKey(docID.String(), lossy)
	} else {
		key = s.mediaKey(docID.String())
	}

	signedURL, err := s.backend.SignedPutURL(ctx, key, s.signedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("sign upload for %s: %w", docID, domain.ErrMediaSignature)
	}

	return &SignedUpload{
		SignedUploadURL: signedURL,
		MediaURL:        s.backend.PublicURL(key),
	}, nil
}
