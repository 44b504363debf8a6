// Package catalog implements the video catalog: CRUD over the videos
// table, file uploads into object storage, YouTube link registration, and
// the server-rendered library and watch pages.
package catalog

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/reelgrid/reelgrid/internal/database"
)

const (
	SourceFile    = "file"
	SourceYouTube = "youtube"
)

// PlaceholderThumbnail is served from the embedded static assets for
// videos without a thumbnail of their own.
const PlaceholderThumbnail = "/static/placeholder.svg"

// Video is one catalog row. Thumbnail, Category, and Duration are
// optional; Duration is never populated by this service itself.
type Video struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Category    string    `json:"category,omitempty"`
	Source      string    `json:"source"`
	Duration    *int      `json:"duration,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ThumbnailOrPlaceholder returns the thumbnail to render in the grid.
func (v Video) ThumbnailOrPlaceholder() string {
	if v.Thumbnail == "" {
		return PlaceholderThumbnail
	}
	return v.Thumbnail
}

// Filter returns the videos whose title, description, or category
// contains the query, case-insensitively. A video matches when any one
// field contains it. An empty or whitespace query returns the input
// unchanged, order preserved.
func Filter(videos []Video, query string) []Video {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return videos
	}

	var matched []Video
	for _, v := range videos {
		if strings.Contains(strings.ToLower(v.Title), q) ||
			strings.Contains(strings.ToLower(v.Description), q) ||
			strings.Contains(strings.ToLower(v.Category), q) {
			matched = append(matched, v)
		}
	}
	return matched
}

// ObjectStorage is the slice of the object store the catalog needs.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string, contentLength int64) error
	DeleteObject(ctx context.Context, key string) error
	PublicURL(key string) string
}

// Handler serves the catalog API and pages.
type Handler struct {
	db             database.DBTX
	storage        ObjectStorage
	maxUploadBytes int64
}

func NewHandler(db database.DBTX, s ObjectStorage, maxUploadBytes int64) *Handler {
	return &Handler{
		db:             db,
		storage:        s,
		maxUploadBytes: maxUploadBytes,
	}
}
