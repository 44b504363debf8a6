// Package server wires the catalog and playback handlers into one chi
// router and applies the shared middleware stack.
package server

import (
	"context"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/reelgrid/reelgrid/internal/catalog"
	"github.com/reelgrid/reelgrid/internal/database"
	"github.com/reelgrid/reelgrid/internal/player"
	"github.com/reelgrid/reelgrid/internal/ratelimit"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Config struct {
	DB               database.DBTX
	Pinger           Pinger
	Storage          catalog.ObjectStorage
	StaticFS         fs.FS
	BaseURL          string
	MaxUploadBytes   int64
	S3PublicEndpoint string
	SessionTTL       time.Duration
}

type Server struct {
	router         chi.Router
	pinger         Pinger
	catalogHandler *catalog.Handler
	playerHandler  *player.Handler
	staticFS       fs.FS
}

func New(cfg Config) *Server {
	r := chi.NewRouter()
	r.Use(slogMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders(SecurityConfig{
		BaseURL:         cfg.BaseURL,
		StorageEndpoint: cfg.S3PublicEndpoint,
	}))

	s := &Server{router: r, pinger: cfg.Pinger, staticFS: cfg.StaticFS}

	if cfg.DB != nil {
		s.catalogHandler = catalog.NewHandler(cfg.DB, cfg.Storage, cfg.MaxUploadBytes)

		ttl := cfg.SessionTTL
		if ttl == 0 {
			ttl = 2 * time.Hour
		}
		s.playerHandler = player.NewHandler(cfg.DB, player.NewManager(ttl))
	}

	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)

	if s.catalogHandler != nil {
		s.router.Get("/api/limits", s.catalogHandler.Limits)

		videoLimiter := ratelimit.NewLimiter(2, 10)
		s.router.Route("/api/videos", func(r chi.Router) {
			r.Get("/", s.catalogHandler.List)
			r.Get("/{id}", s.catalogHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(videoLimiter.Middleware)
				r.Post("/", s.catalogHandler.Upload)
				r.Post("/link", s.catalogHandler.AddLink)
				r.Patch("/{id}", s.catalogHandler.Update)
				r.Delete("/{id}", s.catalogHandler.Delete)
			})
		})

		s.router.Get("/", s.catalogHandler.LibraryPage)
		s.router.Get("/watch/{id}", s.catalogHandler.WatchPage)
	}

	if s.playerHandler != nil {
		// No rate limit here: an open watch page posts a progress
		// event every second.
		s.router.Route("/api/sessions", func(r chi.Router) {
			r.Post("/", s.playerHandler.Open)
			r.Get("/{id}", s.playerHandler.Get)
			r.Post("/{id}/events", s.playerHandler.Event)
			r.Delete("/{id}", s.playerHandler.Close)
		})
	}

	if s.staticFS != nil {
		s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(s.staticFS))))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if s.pinger != nil {
		if err := s.pinger.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unhealthy","error":"database unreachable"}`))
			return
		}
	}
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
