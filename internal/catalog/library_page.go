package catalog

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/reelgrid/reelgrid/internal/httputil"
)

var libraryPageTemplate = template.Must(template.New("library").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>ReelGrid — Video Library</title>
    <style nonce="{{.Nonce}}">
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            background: #0a1628;
            color: #ffffff;
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            min-height: 100vh;
        }
        .container { max-width: 1100px; margin: 0 auto; padding: 2rem 1rem; }
        header { display: flex; align-items: center; gap: 1rem; margin-bottom: 1.5rem; flex-wrap: wrap; }
        header h1 { font-size: 1.5rem; font-weight: 600; margin-right: auto; }
        #search {
            background: #1e293b;
            border: 1px solid #334155;
            border-radius: 6px;
            color: #fff;
            padding: 0.5rem 0.75rem;
            min-width: 240px;
        }
        .btn {
            background: #00b67a;
            border: none;
            border-radius: 6px;
            color: #fff;
            padding: 0.5rem 1rem;
            font-weight: 600;
            cursor: pointer;
        }
        .btn:disabled { opacity: 0.5; cursor: default; }
        .btn.secondary { background: #334155; }
        .grid {
            display: grid;
            grid-template-columns: repeat(auto-fill, minmax(240px, 1fr));
            gap: 1rem;
        }
        .card {
            background: #1e293b;
            border-radius: 8px;
            overflow: hidden;
            cursor: pointer;
            transition: transform 0.15s;
        }
        .card:hover { transform: translateY(-2px); }
        .card img { width: 100%; aspect-ratio: 16 / 9; object-fit: cover; background: #0f172a; }
        .card-body { padding: 0.75rem; }
        .card-body h3 { font-size: 0.95rem; margin-bottom: 0.25rem; }
        .card-body .category { color: #00b67a; font-size: 0.75rem; }
        .card-body .desc { color: #94a3b8; font-size: 0.8rem; margin-top: 0.25rem; }
        .card-actions { display: flex; justify-content: flex-end; padding: 0 0.75rem 0.75rem; }
        .edit-btn {
            background: none;
            border: 1px solid #334155;
            border-radius: 4px;
            color: #94a3b8;
            font-size: 0.75rem;
            padding: 0.25rem 0.5rem;
            cursor: pointer;
        }
        .edit-btn:hover { color: #fff; border-color: #64748b; }
        .empty { color: #64748b; text-align: center; padding: 3rem 0; }
        .modal-backdrop {
            display: none;
            position: fixed;
            inset: 0;
            background: rgba(0, 0, 0, 0.6);
            z-index: 10;
        }
        .modal-backdrop.open { display: flex; align-items: center; justify-content: center; }
        .modal {
            background: #1e293b;
            border-radius: 8px;
            padding: 1.5rem;
            width: 100%;
            max-width: 480px;
            max-height: 90vh;
            overflow-y: auto;
        }
        .modal h2 { font-size: 1.1rem; margin-bottom: 1rem; }
        .tabs { display: flex; gap: 0.5rem; margin-bottom: 1rem; }
        .tab {
            background: none;
            border: 1px solid #334155;
            border-radius: 6px;
            color: #94a3b8;
            padding: 0.4rem 0.8rem;
            cursor: pointer;
        }
        .tab.active { color: #fff; border-color: #00b67a; }
        .tab:disabled { opacity: 0.4; cursor: default; }
        .field { margin-bottom: 0.75rem; }
        .field label { display: block; font-size: 0.8rem; color: #94a3b8; margin-bottom: 0.25rem; }
        .field input, .field textarea {
            width: 100%;
            background: #0f172a;
            border: 1px solid #334155;
            border-radius: 6px;
            color: #fff;
            padding: 0.5rem;
        }
        .progress { height: 6px; background: #334155; border-radius: 3px; overflow: hidden; margin: 0.75rem 0; display: none; }
        .progress.active { display: block; }
        .progress-fill { height: 100%; width: 0; background: #00b67a; transition: width 0.3s; }
        .form-error { color: #f87171; font-size: 0.85rem; margin-bottom: 0.75rem; display: none; }
        .form-error.visible { display: block; }
        .modal-actions { display: flex; justify-content: flex-end; gap: 0.5rem; margin-top: 1rem; }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>Video Library</h1>
            <input id="search" type="search" placeholder="Search title, description, category...">
            <button class="btn" id="add-btn">Add video</button>
        </header>
        <div class="grid" id="grid"></div>
        <p class="empty" id="empty">No videos yet. Add the first one.</p>
    </div>

    <div class="modal-backdrop" id="modal-backdrop">
        <div class="modal">
            <h2 id="modal-title">Add video</h2>
            <div class="tabs">
                <button class="tab active" id="tab-file">Upload file</button>
                <button class="tab" id="tab-youtube">YouTube link</button>
            </div>
            <p class="form-error" id="form-error"></p>
            <form id="video-form">
                <div class="field">
                    <label for="f-title">Title</label>
                    <input id="f-title" name="title" required>
                </div>
                <div class="field">
                    <label for="f-description">Description</label>
                    <textarea id="f-description" name="description" rows="3"></textarea>
                </div>
                <div class="field">
                    <label for="f-category">Category</label>
                    <input id="f-category" name="category">
                </div>
                <div class="field" id="field-file">
                    <label for="f-video">Video file</label>
                    <input id="f-video" name="video" type="file" accept="video/*">
                </div>
                <div class="field" id="field-url" hidden>
                    <label for="f-url">YouTube URL</label>
                    <input id="f-url" name="url" placeholder="https://www.youtube.com/watch?v=...">
                </div>
                <div class="progress" id="progress"><div class="progress-fill" id="progress-fill"></div></div>
                <div class="modal-actions">
                    <button type="button" class="btn secondary" id="cancel-btn">Cancel</button>
                    <button type="submit" class="btn" id="submit-btn">Save</button>
                </div>
            </form>
        </div>
    </div>

    <script nonce="{{.Nonce}}">
        var allVideos = [];
        var mode = 'file';       // 'file' | 'youtube'
        var editVideo = null;    // set while editing; editing changes metadata only
        var loading = false;     // gates re-entrancy, not just button styling

        function applyLimits() {
            fetch('/api/limits').then(function(r) { return r.json(); }).then(function(limits) {
                document.getElementById('f-title').maxLength = limits.fields.title;
                document.getElementById('f-description').maxLength = limits.fields.description;
                document.getElementById('f-category').maxLength = limits.fields.category;
                document.getElementById('f-url').maxLength = limits.fields.url;
            }).catch(function(err) { console.log('failed to load field limits:', err); });
        }

        function fetchVideos() {
            fetch('/api/videos').then(function(r) { return r.json(); }).then(function(videos) {
                allVideos = videos;
                render(filterVideos(document.getElementById('search').value));
            }).catch(function(err) { console.log('failed to load videos:', err); });
        }

        // Case-insensitive substring match against title, description, and
        // category; a video matches when any one field contains the query.
        function filterVideos(query) {
            var q = query.trim().toLowerCase();
            if (!q) return allVideos;
            return allVideos.filter(function(v) {
                return (v.title || '').toLowerCase().indexOf(q) !== -1 ||
                       (v.description || '').toLowerCase().indexOf(q) !== -1 ||
                       (v.category || '').toLowerCase().indexOf(q) !== -1;
            });
        }

        function render(videos) {
            var grid = document.getElementById('grid');
            grid.textContent = '';
            document.getElementById('empty').style.display = videos.length ? 'none' : 'block';
            videos.forEach(function(v) {
                var card = document.createElement('div');
                card.className = 'card';

                var img = document.createElement('img');
                img.src = v.thumbnail || '/static/placeholder.svg';
                img.alt = v.title;
                img.loading = 'lazy';
                card.appendChild(img);

                var body = document.createElement('div');
                body.className = 'card-body';
                var h3 = document.createElement('h3');
                h3.textContent = v.title;
                body.appendChild(h3);
                if (v.category) {
                    var cat = document.createElement('div');
                    cat.className = 'category';
                    cat.textContent = v.category;
                    body.appendChild(cat);
                }
                if (v.description) {
                    var desc = document.createElement('div');
                    desc.className = 'desc';
                    desc.textContent = v.description;
                    body.appendChild(desc);
                }
                card.appendChild(body);

                var actions = document.createElement('div');
                actions.className = 'card-actions';
                var edit = document.createElement('button');
                edit.className = 'edit-btn';
                edit.textContent = 'Edit';
                edit.addEventListener('click', function(e) {
                    e.stopPropagation(); // editing must not also select the video
                    openModal(v);
                });
                actions.appendChild(edit);
                card.appendChild(actions);

                card.addEventListener('click', function() {
                    window.location.href = '/watch/' + v.id;
                });
                grid.appendChild(card);
            });
        }

        document.getElementById('search').addEventListener('input', function(e) {
            render(filterVideos(e.target.value));
        });

        function setMode(next) {
            mode = next;
            document.getElementById('tab-file').classList.toggle('active', mode === 'file');
            document.getElementById('tab-youtube').classList.toggle('active', mode === 'youtube');
            document.getElementById('field-file').hidden = mode !== 'file';
            document.getElementById('field-url').hidden = mode !== 'youtube';
        }
        document.getElementById('tab-file').addEventListener('click', function() { if (!editVideo) setMode('file'); });
        document.getElementById('tab-youtube').addEventListener('click', function() { if (!editVideo) setMode('youtube'); });

        function openModal(video) {
            editVideo = video || null;
            document.getElementById('modal-title').textContent = editVideo ? 'Edit video' : 'Add video';
            document.getElementById('form-error').classList.remove('visible');
            var form = document.getElementById('video-form');
            form.reset();
            // Source is immutable after creation: editing offers metadata only.
            document.getElementById('tab-file').disabled = !!editVideo;
            document.getElementById('tab-youtube').disabled = !!editVideo;
            document.getElementById('field-file').hidden = !!editVideo || mode !== 'file';
            document.getElementById('field-url').hidden = !!editVideo || mode !== 'youtube';
            if (editVideo) {
                document.getElementById('f-title').value = editVideo.title;
                document.getElementById('f-description').value = editVideo.description || '';
                document.getElementById('f-category').value = editVideo.category || '';
            }
            document.getElementById('modal-backdrop').classList.add('open');
        }
        function closeModal() {
            document.getElementById('modal-backdrop').classList.remove('open');
        }
        document.getElementById('add-btn').addEventListener('click', function() { openModal(null); });
        document.getElementById('cancel-btn').addEventListener('click', closeModal);

        function showError(message) {
            var el = document.getElementById('form-error');
            el.textContent = message;
            el.classList.add('visible');
        }

        // The store API gives no byte-level upload progress, so the bar is
        // timer-driven: it advances to 90% and jumps to 100% on completion.
        var progressTimer = null;
        function startProgress() {
            var fill = document.getElementById('progress-fill');
            var pct = 0;
            fill.style.width = '0%';
            document.getElementById('progress').classList.add('active');
            progressTimer = setInterval(function() {
                if (pct >= 90) { clearInterval(progressTimer); return; }
                pct += 10;
                fill.style.width = pct + '%';
            }, 500);
        }
        function finishProgress(done) {
            clearInterval(progressTimer);
            if (done) document.getElementById('progress-fill').style.width = '100%';
            document.getElementById('progress').classList.remove('active');
        }

        document.getElementById('video-form').addEventListener('submit', function(e) {
            e.preventDefault();
            if (loading) return;

            var form = e.target;
            var request;
            if (editVideo) {
                request = fetch('/api/videos/' + editVideo.id, {
                    method: 'PATCH',
                    headers: { 'Content-Type': 'application/json' },
                    body: JSON.stringify({
                        title: form.title.value,
                        description: form.description.value,
                        category: form.category.value
                    })
                });
            } else if (mode === 'youtube') {
                request = fetch('/api/videos/link', {
                    method: 'POST',
                    headers: { 'Content-Type': 'application/json' },
                    body: JSON.stringify({
                        title: form.title.value,
                        description: form.description.value,
                        category: form.category.value,
                        url: form.url.value
                    })
                });
            } else {
                var file = form.video.files[0];
                if (!file || file.type.indexOf('video/') !== 0) {
                    showError('Please select a valid video file');
                    return;
                }
                startProgress();
                request = fetch('/api/videos', { method: 'POST', body: new FormData(form) });
            }

            loading = true;
            document.getElementById('submit-btn').disabled = true;
            document.getElementById('form-error').classList.remove('visible');

            request.then(function(r) {
                if (r.ok) {
                    finishProgress(true);
                    closeModal();
                    fetchVideos();
                    return;
                }
                return r.json().then(function(body) { throw new Error(body.error || 'request failed'); });
            }).catch(function(err) {
                finishProgress(false);
                showError(err.message);
            }).finally(function() {
                loading = false;
                document.getElementById('submit-btn').disabled = false;
            });
        });

        applyLimits();
        fetchVideos();
    </script>
</body>
</html>`))

type libraryPageData struct {
	Nonce string
}

// LibraryPage renders the searchable catalog grid. The video list is
// fetched once and re-filtered locally per keystroke.
func (h *Handler) LibraryPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := libraryPageTemplate.Execute(w, libraryPageData{
		Nonce: httputil.NonceFromContext(r.Context()),
	})
	if err != nil {
		slog.Error("failed to render library page", "error", err)
	}
}
