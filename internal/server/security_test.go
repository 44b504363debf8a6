package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/reelgrid/reelgrid/internal/httputil"
)

func applySecurity(cfg SecurityConfig, inner http.Handler) *httptest.ResponseRecorder {
	if inner == nil {
		inner = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	securityHeaders(cfg)(inner).ServeHTTP(rec, req)
	return rec
}

func TestSecurityHeaders_CSPContainsNonce(t *testing.T) {
	var capturedNonce string
	rec := applySecurity(SecurityConfig{BaseURL: "https://app.test"},
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			capturedNonce = httputil.NonceFromContext(r.Context())
		}))

	if capturedNonce == "" {
		t.Fatal("expected non-empty nonce in context")
	}
	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "'nonce-"+capturedNonce+"'") {
		t.Errorf("CSP should contain nonce, got: %s", csp)
	}
}

func TestSecurityHeaders_CSPOmitsUnsafeInline(t *testing.T) {
	rec := applySecurity(SecurityConfig{BaseURL: "https://app.test"}, nil)
	csp := rec.Header().Get("Content-Security-Policy")
	if strings.Contains(csp, "'unsafe-inline'") {
		t.Errorf("CSP should not contain 'unsafe-inline', got: %s", csp)
	}
}

func TestSecurityHeaders_CSPIncludesStorageEndpoint(t *testing.T) {
	rec := applySecurity(SecurityConfig{
		BaseURL:         "https://app.test",
		StorageEndpoint: "https://storage.example.com",
	}, nil)

	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "connect-src 'self' https://storage.example.com") {
		t.Errorf("CSP connect-src should include storage endpoint, got: %s", csp)
	}
	if !strings.Contains(csp, "media-src 'self' data: https://storage.example.com") {
		t.Errorf("CSP media-src should include storage endpoint, got: %s", csp)
	}
	if !strings.Contains(csp, "img-src 'self' data: https://img.youtube.com https://storage.example.com") {
		t.Errorf("CSP img-src should include storage endpoint, got: %s", csp)
	}
}

func TestSecurityHeaders_CSPAllowsYouTube(t *testing.T) {
	rec := applySecurity(SecurityConfig{BaseURL: "https://app.test"}, nil)

	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "img-src 'self' data: https://img.youtube.com") {
		t.Errorf("CSP img-src should allow YouTube thumbnails, got: %s", csp)
	}
	if !strings.Contains(csp, "frame-src https://www.youtube.com") {
		t.Errorf("CSP frame-src should allow YouTube embeds, got: %s", csp)
	}
}

func TestSecurityHeaders_CSPOmitsStorageWhenEmpty(t *testing.T) {
	rec := applySecurity(SecurityConfig{BaseURL: "https://app.test"}, nil)
	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "connect-src 'self';") {
		t.Errorf("CSP connect-src should be just 'self' when no storage endpoint, got: %s", csp)
	}
}

func TestSecurityHeaders_UniqueNoncePerRequest(t *testing.T) {
	var nonces []string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonces = append(nonces, httputil.NonceFromContext(r.Context()))
	})
	handler := securityHeaders(SecurityConfig{BaseURL: "https://app.test"})(inner)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	}

	if nonces[0] == nonces[1] || nonces[1] == nonces[2] {
		t.Errorf("expected unique nonces per request, got %v", nonces)
	}
}

func TestSecurityHeaders_PermissionsPolicyAllowsPlayback(t *testing.T) {
	rec := applySecurity(SecurityConfig{BaseURL: "https://app.test"}, nil)
	policy := rec.Header().Get("Permissions-Policy")
	if !strings.Contains(policy, "fullscreen=(self)") || !strings.Contains(policy, "picture-in-picture=(self)") {
		t.Errorf("Permissions-Policy should allow fullscreen and PiP, got: %s", policy)
	}
	if !strings.Contains(policy, "camera=()") {
		t.Errorf("Permissions-Policy should deny the camera, got: %s", policy)
	}
}

func TestSecurityHeaders_StrictTransportOnlyOverHTTPS(t *testing.T) {
	rec := applySecurity(SecurityConfig{BaseURL: "https://app.test"}, nil)
	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("expected HSTS header for an https base URL")
	}

	rec = applySecurity(SecurityConfig{BaseURL: "http://localhost:8080"}, nil)
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS header must not be set for a plain http base URL")
	}
}
