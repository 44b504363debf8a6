package player

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
)

func newSessionRouter(t *testing.T) (*chi.Mux, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(mock.Close)

	h := NewHandler(mock, NewManager(time.Hour))
	r := chi.NewRouter()
	r.Post("/api/sessions", h.Open)
	r.Get("/api/sessions/{id}", h.Get)
	r.Post("/api/sessions/{id}/events", h.Event)
	r.Delete("/api/sessions/{id}", h.Close)
	return r, mock
}

func postJSON(t *testing.T, router http.Handler, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func openSession(t *testing.T, router http.Handler, mock pgxmock.PgxPoolIface) sessionResponse {
	t.Helper()
	mock.ExpectQuery(`SELECT url FROM videos`).
		WithArgs("vid-1").
		WillReturnRows(pgxmock.NewRows([]string{"url"}).AddRow("https://media.example.com/videos/vid-1.mp4"))

	rec := postJSON(t, router, "/api/sessions", openRequest{VideoID: "vid-1"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("open session status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp sessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestOpenSession(t *testing.T) {
	router, mock := newSessionRouter(t)
	resp := openSession(t, router, mock)

	if resp.SessionID == "" {
		t.Error("expected a session id")
	}
	if !resp.State.Playing || resp.State.Volume != DefaultVolume || resp.State.Rate != 1 {
		t.Errorf("unexpected initial state: %+v", resp.State)
	}

	var sawLoad, sawPlay bool
	for _, cmd := range resp.Commands {
		switch cmd.Type {
		case CmdLoad:
			sawLoad = true
		case CmdPlay:
			sawPlay = true
		}
	}
	if !sawLoad || !sawPlay {
		t.Errorf("expected load and play commands, got %v", resp.Commands)
	}
}

func TestOpenSessionUnknownVideo(t *testing.T) {
	router, mock := newSessionRouter(t)
	mock.ExpectQuery(`SELECT url FROM videos`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	rec := postJSON(t, router, "/api/sessions", openRequest{VideoID: "missing"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestEventTogglePlay(t *testing.T) {
	router, mock := newSessionRouter(t)
	sess := openSession(t, router, mock)

	rec := postJSON(t, router, "/api/sessions/"+sess.SessionID+"/events", event{Type: "toggle-play"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp sessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.State.Playing {
		t.Error("expected playing=false after toggle")
	}
	if len(resp.Commands) != 1 || resp.Commands[0].Type != CmdPause {
		t.Errorf("commands = %v, want a single pause", resp.Commands)
	}
}

func TestEventRejectedRateKeepsState(t *testing.T) {
	router, mock := newSessionRouter(t)
	sess := openSession(t, router, mock)

	rec := postJSON(t, router, "/api/sessions/"+sess.SessionID+"/events", event{Type: "rate", Rate: 3})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/"+sess.SessionID, nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, req)

	var resp sessionResponse
	if err := json.NewDecoder(getRec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.State.Rate != 1 {
		t.Errorf("rate = %v, want 1 after rejected event", resp.State.Rate)
	}
}

func TestEventUnknownType(t *testing.T) {
	router, mock := newSessionRouter(t)
	sess := openSession(t, router, mock)

	rec := postJSON(t, router, "/api/sessions/"+sess.SessionID+"/events", event{Type: "self-destruct"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestEventUnknownSession(t *testing.T) {
	router, _ := newSessionRouter(t)
	rec := postJSON(t, router, "/api/sessions/nope/events", event{Type: "toggle-play"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCloseSession(t *testing.T) {
	router, mock := newSessionRouter(t)
	sess := openSession(t, router, mock)

	req := httptest.NewRequest(http.MethodDelete, "/api/sessions/"+sess.SessionID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/sessions/"+sess.SessionID, nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)
	if getRec.Code != http.StatusNotFound {
		t.Errorf("get after close status = %d, want 404", getRec.Code)
	}
}

func TestFullscreenRoundTrip(t *testing.T) {
	router, mock := newSessionRouter(t)
	sess := openSession(t, router, mock)
	target := "/api/sessions/" + sess.SessionID + "/events"

	rec := postJSON(t, router, target, event{Type: "toggle-fullscreen"})
	var resp sessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.State.Fullscreen {
		t.Error("fullscreen set before the platform confirmed")
	}
	if len(resp.Commands) != 1 || resp.Commands[0].Type != CmdFsEnter {
		t.Errorf("commands = %v, want fullscreen-enter", resp.Commands)
	}

	rec = postJSON(t, router, target, event{Type: "fullscreenchange", Active: true})
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.State.Fullscreen {
		t.Error("fullscreen not set by platform notification")
	}
}
