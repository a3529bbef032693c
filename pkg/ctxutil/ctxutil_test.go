package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestWithCallerID_And_CallerIDFromCtx(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	ctx := WithCallerID(context.Background(), id)

	got, ok := CallerIDFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true for valid UUID")
	}
	if got != id {
		t.Fatalf("expected %s, got %s", id, got)
	}
}

func TestCallerIDFromCtx_Missing(t *testing.T) {
	t.Parallel()

	got, ok := CallerIDFromCtx(context.Background())
	if ok {
		t.Fatal("expected ok=false for empty context")
	}
	if got != uuid.Nil {
		t.Fatalf("expected uuid.Nil, got %s", got)
	}
}

func TestCallerIDFromCtx_NilUUID(t *testing.T) {
	t.Parallel()

	ctx := WithCallerID(context.Background(), uuid.Nil)

	if _, ok := CallerIDFromCtx(ctx); ok {
		t.Fatal("expected ok=false for nil UUID")
	}
}

func TestRequestID_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")
	if got := RequestIDFromCtx(ctx); got != "req-123" {
		t.Fatalf("expected req-123, got %q", got)
	}
	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Fatalf("expected empty request id, got %q", got)
	}
}
