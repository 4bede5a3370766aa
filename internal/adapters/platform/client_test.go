package platform_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"staydeal/internal/adapters/platform"
)

func TestClient_GetNegotiationSettings_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(500)
		default:
			w.WriteHeader(200)
			_ = json.NewEncoder(w).Encode(map[string]any{"pixDiscountEnabled": true, "pixDiscountPercentage": 7.0})
		}
	}))
	defer ts.Close()

	cl, err := platform.New(ts.URL, "test-key", 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got, err := cl.GetNegotiationSettings(ctx, "tenant-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	pct, ok := got["pixDiscountPercentage"].(float64)
	if !ok || pct != 7.0 {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestClient_GetNegotiationSettings_404(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl, err := platform.New(ts.URL, "test-key", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err = cl.GetNegotiationSettings(ctx, "tenant-1")
	if !errors.Is(err, platform.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_RequiresAPIKey(t *testing.T) {
	if _, err := platform.New("http://localhost", "", 5); err == nil {
		t.Fatalf("expected error for empty key")
	}
}
