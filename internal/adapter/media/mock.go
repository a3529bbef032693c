package media

import (
	"context"
	"time"
)

// mockBaseURL is the fixed host non-production URLs are built on.
const mockBaseURL = "https://igbo-api.test"

// MockBackend is the non-production backend: every operation degenerates
// to deterministic string construction with zero network I/O, and none of
// them can fail. Review and merge flows stay fully testable offline.
type MockBackend struct {
	bucket string
}

// NewMockBackend creates the deterministic offline backend.
func NewMockBackend(bucket string) *MockBackend {
	return &MockBackend{bucket: bucket}
}

func (b *MockBackend) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	return b.PublicURL(key), nil
}

func (b *MockBackend) Copy(_ context.Context, _, dstKey string) (string, error) {
	return b.PublicURL(dstKey), nil
}

func (b *MockBackend) Delete(_ context.Context, _ string) error {
	return nil
}

func (b *MockBackend) Stat(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

func (b *MockBackend) SignedPutURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return b.PublicURL(key) + "?signed=true", nil
}

func (b *MockBackend) PublicURL(key string) string {
	return mockBaseURL + "/" + b.bucket + "/" + key
}
