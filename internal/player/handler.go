package player

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/reelgrid/reelgrid/internal/database"
	"github.com/reelgrid/reelgrid/internal/httputil"
)

// Handler exposes playback sessions over HTTP. The watch page forwards
// user commands and player notifications here; the response carries the
// canonical session state plus any commands for the page's player element.
type Handler struct {
	db       database.DBTX
	sessions *Manager
}

func NewHandler(db database.DBTX, sessions *Manager) *Handler {
	return &Handler{db: db, sessions: sessions}
}

type openRequest struct {
	VideoID string `json:"videoId"`
}

type sessionResponse struct {
	SessionID string    `json:"sessionId,omitempty"`
	State     Session   `json:"state"`
	Commands  []Command `json:"commands,omitempty"`
}

type event struct {
	Type     string  `json:"type"`
	Fraction float64 `json:"fraction"`
	Seconds  float64 `json:"seconds"`
	Level    float64 `json:"level"`
	Rate     float64 `json:"rate"`
	Active   bool    `json:"active"`
	Visible  bool    `json:"visible"`
}

func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.VideoID == "" {
		httputil.WriteError(w, http.StatusBadRequest, "videoId is required")
		return
	}

	var url string
	err := h.db.QueryRow(r.Context(),
		`SELECT url FROM videos WHERE id = $1`,
		req.VideoID,
	).Scan(&url)
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, "video not found")
		return
	}

	handle := h.sessions.Open(req.VideoID, url)
	httputil.WriteJSON(w, http.StatusCreated, sessionResponse{
		SessionID: handle.ID,
		State:     handle.Controller.State(),
		Commands:  handle.DrainCommands(),
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	handle, ok := h.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "session not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sessionResponse{State: handle.Controller.State()})
}

// Event applies one user command or player notification to the session.
func (h *Handler) Event(w http.ResponseWriter, r *http.Request) {
	handle, ok := h.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "session not found")
		return
	}

	var ev event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctl := handle.Controller
	switch ev.Type {
	case "toggle-play":
		ctl.TogglePlay()
	case "seek-drag":
		ctl.SeekDrag(ev.Fraction)
	case "seek-commit":
		ctl.SeekCommit(ev.Fraction)
	case "progress":
		ctl.Progress(ev.Fraction)
	case "duration":
		ctl.DurationKnown(ev.Seconds)
	case "volume":
		ctl.SetVolume(ev.Level)
	case "toggle-mute":
		ctl.ToggleMute()
	case "rate":
		if err := ctl.SetRate(ev.Rate); err != nil {
			httputil.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	case "toggle-fullscreen":
		ctl.ToggleFullscreen()
	case "fullscreenchange":
		ctl.FullscreenChanged(ev.Active)
	case "toggle-pip":
		ctl.TogglePictureInPicture()
	case "pipchange":
		handle.SetPictureInPicture(ev.Active)
	case "volume-popover":
		ctl.SetVolumePopover(ev.Visible)
	default:
		httputil.WriteError(w, http.StatusBadRequest, "unknown event type")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, sessionResponse{
		State:    ctl.State(),
		Commands: handle.DrainCommands(),
	})
}

func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	if !h.sessions.Close(chi.URLParam(r, "id")) {
		httputil.WriteError(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
