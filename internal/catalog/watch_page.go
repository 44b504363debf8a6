package catalog

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/reelgrid/reelgrid/internal/httputil"
	"github.com/reelgrid/reelgrid/internal/youtube"
)

var watchPageTemplate = template.Must(template.New("watch").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Video.Title}} — ReelGrid</title>
    <style nonce="{{.Nonce}}">
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            background: #0a1628;
            color: #ffffff;
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            min-height: 100vh;
            display: flex;
            flex-direction: column;
            align-items: center;
        }
        .container {
            max-width: 960px;
            width: 100%;
            padding: 2rem 1rem;
        }
        h1 {
            margin-top: 1rem;
            font-size: 1.5rem;
            font-weight: 600;
        }
        .meta {
            margin-top: 0.5rem;
            color: #94a3b8;
            font-size: 0.875rem;
        }
        .description {
            margin-top: 1rem;
            color: #cbd5e1;
            line-height: 1.5;
        }
        .back {
            display: inline-block;
            margin-bottom: 1rem;
            color: #00b67a;
            text-decoration: none;
            font-size: 0.875rem;
        }
        .back:hover { text-decoration: underline; }
        .external-frame {
            width: 100%;
            aspect-ratio: 16 / 9;
            border: 0;
            border-radius: 8px;
        }
{{.PlayerCSS}}
    </style>
</head>
<body>
    <div class="container">
        <a class="back" href="/">&#8592; Library</a>
{{if .IsExternal}}
        <iframe class="external-frame" src="{{.EmbedURL}}" title="{{.Video.Title}}"
            allow="autoplay; fullscreen; picture-in-picture" allowfullscreen></iframe>
{{else}}
        <div class="player-shell" id="player-shell">
            <video id="player" playsinline></video>
{{.ControlsHTML}}
        </div>
{{end}}
        <h1>{{.Video.Title}}</h1>
        {{if .Video.Category}}<p class="meta">{{.Video.Category}} · {{.Date}}</p>{{else}}<p class="meta">{{.Date}}</p>{{end}}
        {{if .Video.Description}}<p class="description">{{.Video.Description}}</p>{{end}}
{{if not .IsExternal}}
        <script nonce="{{.Nonce}}">
        var player = document.getElementById('player');
        var container = document.getElementById('player-shell');
        var sessionVideoId = {{.Video.ID}};
{{.PlayerJS}}
        </script>
{{end}}
    </div>
</body>
</html>`))

type watchPageData struct {
	Video        Video
	Date         string
	Nonce        string
	IsExternal   bool
	EmbedURL     string
	PlayerCSS    template.CSS
	ControlsHTML template.HTML
	PlayerJS     template.JS
}

// WatchPage renders the player for one video. Uploaded files get the
// custom transport surface backed by a playback session; YouTube entries
// embed the host's own player, which owns its transport.
func (h *Handler) WatchPage(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "id")

	v, err := scanVideo(h.db.QueryRow(r.Context(),
		`SELECT `+selectVideoColumns+` FROM videos WHERE id = $1`,
		videoID,
	))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	data := watchPageData{
		Video:        v,
		Date:         v.CreatedAt.Format("Jan 2, 2006"),
		Nonce:        httputil.NonceFromContext(r.Context()),
		PlayerCSS:    template.CSS(playerCSS),
		ControlsHTML: template.HTML(playerControlsHTML),
		PlayerJS:     template.JS(playerJS),
	}
	if v.Source == SourceYouTube {
		if id, ok := youtube.ExtractID(v.URL); ok {
			data.IsExternal = true
			data.EmbedURL = "https://www.youtube.com/embed/" + id
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := watchPageTemplate.Execute(w, data); err != nil {
		slog.Error("failed to render watch page", "video_id", videoID, "error", err)
	}
}
