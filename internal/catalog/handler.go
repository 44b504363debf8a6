package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/reelgrid/reelgrid/internal/httputil"
	"github.com/reelgrid/reelgrid/internal/storage"
	"github.com/reelgrid/reelgrid/internal/validate"
	"github.com/reelgrid/reelgrid/internal/youtube"
)

const selectVideoColumns = `id, title, description, url, thumbnail, category, source, duration, created_at`

func scanVideo(row interface{ Scan(dest ...any) error }) (Video, error) {
	var v Video
	var thumbnail, category *string
	err := row.Scan(&v.ID, &v.Title, &v.Description, &v.URL, &thumbnail, &category, &v.Source, &v.Duration, &v.CreatedAt)
	if err != nil {
		return Video{}, err
	}
	if thumbnail != nil {
		v.Thumbnail = *thumbnail
	}
	if category != nil {
		v.Category = *category
	}
	return v, nil
}

// List returns every video, newest first. An optional q parameter applies
// the same substring filter the library page computes locally.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(r.Context(),
		`SELECT `+selectVideoColumns+` FROM videos ORDER BY created_at DESC`,
	)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "failed to list videos")
		return
	}
	defer rows.Close()

	videos := []Video{}
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			httputil.WriteError(w, http.StatusInternalServerError, "failed to read videos")
			return
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "failed to read videos")
		return
	}

	if q := r.URL.Query().Get("q"); q != "" {
		videos = Filter(videos, q)
		if videos == nil {
			videos = []Video{}
		}
	}

	httputil.WriteJSON(w, http.StatusOK, videos)
}

// Limits reports the metadata field caps and the upload size cap so the
// upload form can enforce them before submitting.
func (h *Handler) Limits(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"fields":         validate.FieldLimits(),
		"maxUploadBytes": h.maxUploadBytes,
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "id")

	v, err := scanVideo(h.db.QueryRow(r.Context(),
		`SELECT `+selectVideoColumns+` FROM videos WHERE id = $1`,
		videoID,
	))
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, "video not found")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, v)
}

// Upload accepts a multipart form with a video file plus metadata, stores
// the file, then inserts the catalog row. The two steps are transactional
// from the caller's perspective: if the insert fails, the just-uploaded
// object is deleted best-effort before the error is surfaced.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	file, header, err := r.FormFile("video")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "a video file is required")
		return
	}
	defer func() { _ = file.Close() }()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "video/") {
		httputil.WriteError(w, http.StatusBadRequest, "please select a valid video file")
		return
	}

	title := r.FormValue("title")
	description := r.FormValue("description")
	category := r.FormValue("category")
	for _, msg := range []string{
		validate.Title(title),
		validate.Description(description),
		validate.Category(category),
	} {
		if msg != "" {
			httputil.WriteError(w, http.StatusBadRequest, msg)
			return
		}
	}

	// A stalled client must not hold the upload open forever.
	ctx, cancel := context.WithTimeout(r.Context(), storage.UploadExpiry)
	defer cancel()

	key := storage.ObjectKey(header.Filename)
	if err := h.storage.Upload(ctx, key, file, contentType, header.Size); err != nil {
		slog.Error("catalog: file upload failed", "key", key, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to store video file")
		return
	}

	url := h.storage.PublicURL(key)
	v := Video{
		Title:       title,
		Description: description,
		URL:         url,
		Category:    category,
		Source:      SourceFile,
	}
	err = h.db.QueryRow(ctx,
		`INSERT INTO videos (title, description, url, category, source, file_key)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`,
		title, description, url, nullable(category), SourceFile, key,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		slog.Error("catalog: insert after upload failed, removing orphaned object", "key", key, "error", err)
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if delErr := h.storage.DeleteObject(cleanupCtx, key); delErr != nil {
			slog.Error("catalog: orphan cleanup failed", "key", key, "error", delErr)
		}
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create video")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, v)
}

type addLinkRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	URL         string `json:"url"`
}

// AddLink registers an external YouTube video. The URL must match a known
// host pattern and contain an extractable video ID; anything else is
// rejected before any storage or database call.
func (h *Handler) AddLink(w http.ResponseWriter, r *http.Request) {
	var req addLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.URL == "" {
		httputil.WriteError(w, http.StatusBadRequest, "a YouTube URL is required")
		return
	}
	for _, msg := range []string{
		validate.Title(req.Title),
		validate.Description(req.Description),
		validate.Category(req.Category),
		validate.URL(req.URL),
	} {
		if msg != "" {
			httputil.WriteError(w, http.StatusBadRequest, msg)
			return
		}
	}
	if !youtube.IsVideoURL(req.URL) {
		httputil.WriteError(w, http.StatusBadRequest, "please enter a valid YouTube URL")
		return
	}
	id, ok := youtube.ExtractID(req.URL)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "could not find a video in that URL")
		return
	}

	v := Video{
		Title:       req.Title,
		Description: req.Description,
		URL:         youtube.WatchURL(id),
		Thumbnail:   youtube.ThumbnailURL(id),
		Category:    req.Category,
		Source:      SourceYouTube,
	}
	err := h.db.QueryRow(r.Context(),
		`INSERT INTO videos (title, description, url, thumbnail, category, source)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`,
		v.Title, v.Description, v.URL, v.Thumbnail, nullable(v.Category), SourceYouTube,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create video")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, v)
}

type updateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

// Update edits metadata only. The file and source are immutable after
// creation; absent fields keep their stored values.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "id")

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == nil && req.Description == nil && req.Category == nil {
		httputil.WriteError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	if req.Title != nil {
		if msg := validate.Title(*req.Title); msg != "" {
			httputil.WriteError(w, http.StatusBadRequest, msg)
			return
		}
	}
	if req.Description != nil {
		if msg := validate.Description(*req.Description); msg != "" {
			httputil.WriteError(w, http.StatusBadRequest, msg)
			return
		}
	}
	if req.Category != nil {
		if msg := validate.Category(*req.Category); msg != "" {
			httputil.WriteError(w, http.StatusBadRequest, msg)
			return
		}
	}

	v, err := scanVideo(h.db.QueryRow(r.Context(),
		`UPDATE videos SET
		   title = COALESCE($1, title),
		   description = COALESCE($2, description),
		   category = COALESCE($3, category),
		   updated_at = now()
		 WHERE id = $4
		 RETURNING `+selectVideoColumns,
		req.Title, req.Description, req.Category, videoID,
	))
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, "video not found")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, v)
}

// Delete removes the catalog row and, for uploaded files, the stored
// object. The object delete runs asynchronously with retries so a slow
// or flaky object store cannot block the response.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "id")

	var fileKey *string
	err := h.db.QueryRow(r.Context(),
		`DELETE FROM videos WHERE id = $1 RETURNING file_key`,
		videoID,
	).Scan(&fileKey)
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, "video not found")
		return
	}

	if fileKey != nil {
		key := *fileKey
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			if err := deleteWithRetry(ctx, h.storage, key, 3, time.Second); err != nil {
				slog.Error("catalog: all object delete retries failed", "key", key, "error", err)
			}
		}()
	}

	w.WriteHeader(http.StatusNoContent)
}

func deleteWithRetry(ctx context.Context, store ObjectStorage, key string, attempts int, backoff time.Duration) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = store.DeleteObject(ctx, key); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(i+1) * backoff):
		}
	}
	return err
}

// nullable maps "" to NULL so optional columns stay NULL instead of
// accumulating empty strings.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
