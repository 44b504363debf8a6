package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func captureRequestLog(t *testing.T, route string, status int, target string) string {
	t.Helper()
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	r := chi.NewRouter()
	r.Use(slogMiddleware)
	r.Get(route, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return buf.String()
}

func TestSlogMiddlewareLogsCatalogRequest(t *testing.T) {
	output := captureRequestLog(t, "/api/videos", http.StatusOK, "/api/videos")
	if output == "" {
		t.Fatal("expected a request log line")
	}

	for _, field := range []string{
		"method=GET",
		"path=/api/videos",
		"status=200",
		"remote_addr=",
		"duration_ms=",
	} {
		if !strings.Contains(output, field) {
			t.Errorf("log line missing %q: %s", field, output)
		}
	}
}

func TestSlogMiddlewareRecordsErrorStatus(t *testing.T) {
	output := captureRequestLog(t, "/watch/{id}", http.StatusNotFound, "/watch/missing")
	if !strings.Contains(output, "status=404") {
		t.Errorf("expected status=404 for an unknown video, got: %s", output)
	}
	if !strings.Contains(output, "path=/watch/missing") {
		t.Errorf("expected the requested path, got: %s", output)
	}
}

func TestSlogMiddlewareSkipsHealthProbes(t *testing.T) {
	output := captureRequestLog(t, "/api/health", http.StatusOK, "/api/health")
	if output != "" {
		t.Errorf("health probes must not be logged, got: %s", output)
	}
}
