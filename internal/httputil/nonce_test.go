package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerateNonceShape(t *testing.T) {
	nonce := GenerateNonce()
	if nonce == "" {
		t.Fatal("expected a non-empty nonce")
	}
	// 16 random bytes, base64url without padding.
	if len(nonce) != 22 {
		t.Errorf("nonce length = %d, want 22: %q", len(nonce), nonce)
	}
}

func TestGenerateNonceIsUniquePerCall(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 8; i++ {
		n := GenerateNonce()
		if seen[n] {
			t.Fatalf("nonce %q generated twice", n)
		}
		seen[n] = true
	}
}

func TestNonceRoundTripsThroughRequestContext(t *testing.T) {
	// The security middleware stores the nonce; page handlers read it
	// back when rendering style and script tags.
	const nonce = "page-render-nonce"

	var got string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = NonceFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/watch/v1", nil)
	req = req.WithContext(ContextWithNonce(req.Context(), nonce))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != nonce {
		t.Errorf("NonceFromContext = %q, want %q", got, nonce)
	}
}

func TestNonceFromContextEmptyWhenUnset(t *testing.T) {
	if got := NonceFromContext(context.Background()); got != "" {
		t.Errorf("expected empty string for a bare context, got %q", got)
	}
}
