package catalog

// playerCSS is the shared styling for the custom transport controls on
// the watch page.
const playerCSS = `
        .player-shell {
            position: relative;
            width: 100%;
            aspect-ratio: 16 / 9;
            background: #000;
            border-radius: 8px;
            overflow: hidden;
        }
        .player-shell video { width: 100%; height: 100%; }
        .player-overlay {
            position: absolute;
            top: 0;
            left: 0;
            right: 0;
            bottom: 0;
            display: flex;
            align-items: center;
            justify-content: center;
            cursor: pointer;
            z-index: 2;
        }
        .play-overlay-btn {
            width: 64px;
            height: 64px;
            border-radius: 50%;
            background: rgba(0, 0, 0, 0.6);
            border: none;
            color: #fff;
            font-size: 28px;
            cursor: pointer;
            display: none;
            align-items: center;
            justify-content: center;
        }
        .player-overlay.paused .play-overlay-btn { display: flex; }
        .player-controls {
            position: absolute;
            bottom: 0;
            left: 0;
            right: 0;
            display: flex;
            align-items: center;
            gap: 8px;
            padding: 24px 12px 10px;
            background: linear-gradient(transparent, rgba(0, 0, 0, 0.85));
            z-index: 3;
        }
        .ctrl-btn {
            background: none;
            border: none;
            color: #fff;
            font-size: 18px;
            cursor: pointer;
            padding: 4px;
            line-height: 1;
            opacity: 0.9;
            flex-shrink: 0;
        }
        .ctrl-btn:hover { opacity: 1; }
        .ctrl-btn:focus-visible { outline: 2px solid #00b67a; outline-offset: 2px; }
        .time-display {
            font-size: 12px;
            color: #fff;
            font-family: monospace;
            white-space: nowrap;
            flex-shrink: 0;
            opacity: 0.9;
        }
        .seek-bar {
            position: relative;
            flex: 1;
            height: 20px;
            display: flex;
            align-items: center;
            cursor: pointer;
        }
        .seek-track {
            position: absolute;
            left: 0;
            right: 0;
            height: 4px;
            background: rgba(255, 255, 255, 0.2);
            border-radius: 2px;
            overflow: hidden;
        }
        .seek-progress {
            position: absolute;
            top: 0;
            left: 0;
            height: 100%;
            background: #00b67a;
            pointer-events: none;
        }
        .seek-thumb {
            position: absolute;
            width: 14px;
            height: 14px;
            background: #00b67a;
            border-radius: 50%;
            top: 50%;
            transform: translate(-50%, -50%);
            pointer-events: none;
            opacity: 0;
            transition: opacity 0.15s;
        }
        .seek-bar:hover .seek-thumb { opacity: 1; }
        .volume-group {
            position: relative;
            display: flex;
            align-items: center;
            gap: 4px;
            flex-shrink: 0;
        }
        .volume-popover {
            display: none;
            position: absolute;
            bottom: 100%;
            left: 50%;
            transform: translateX(-50%);
            margin-bottom: 8px;
            background: rgba(15, 23, 42, 0.95);
            border: 1px solid #334155;
            border-radius: 6px;
            padding: 10px 8px;
        }
        .volume-popover.open { display: block; }
        .volume-slider {
            width: 72px;
            height: 4px;
            -webkit-appearance: none;
            appearance: none;
            background: rgba(255, 255, 255, 0.3);
            border-radius: 2px;
            outline: none;
        }
        .volume-slider::-webkit-slider-thumb {
            -webkit-appearance: none;
            width: 12px;
            height: 12px;
            background: #fff;
            border-radius: 50%;
            cursor: pointer;
        }
        .volume-slider::-moz-range-thumb {
            width: 12px;
            height: 12px;
            background: #fff;
            border-radius: 50%;
            cursor: pointer;
            border: none;
        }
        .speed-dropdown {
            position: relative;
            flex-shrink: 0;
        }
        .speed-menu {
            display: none;
            position: absolute;
            bottom: 100%;
            right: 0;
            margin-bottom: 8px;
            background: rgba(15, 23, 42, 0.95);
            border: 1px solid #334155;
            border-radius: 6px;
            padding: 4px;
            min-width: 56px;
        }
        .speed-menu.open { display: block; }
        .speed-menu button {
            display: block;
            width: 100%;
            background: none;
            border: none;
            color: #e2e8f0;
            padding: 5px 10px;
            font-size: 12px;
            cursor: pointer;
            border-radius: 4px;
            text-align: center;
        }
        .speed-menu button:hover { background: rgba(255, 255, 255, 0.1); }
        .speed-menu button.active { color: #00b67a; font-weight: 600; }
`

// playerControlsHTML is the control bar markup. The <video> element stays
// in the page template.
const playerControlsHTML = `
                <div class="player-overlay" id="player-overlay">
                    <button class="play-overlay-btn" id="play-overlay-btn" aria-label="Play">&#9654;</button>
                </div>
                <div class="player-controls" id="player-controls">
                    <button class="ctrl-btn" id="play-btn" aria-label="Pause">&#9646;&#9646;</button>
                    <span class="time-display" id="time-current">0:00</span>
                    <div class="seek-bar" id="seek-bar">
                        <div class="seek-track">
                            <div class="seek-progress" id="seek-progress"></div>
                        </div>
                        <div class="seek-thumb" id="seek-thumb"></div>
                    </div>
                    <span class="time-display" id="time-duration">0:00</span>
                    <div class="volume-group" id="volume-group">
                        <button class="ctrl-btn" id="mute-btn" aria-label="Mute">&#128266;</button>
                        <div class="volume-popover" id="volume-popover">
                            <input type="range" class="volume-slider" id="volume-slider" min="0" max="100" value="70">
                        </div>
                    </div>
                    <div class="speed-dropdown" id="speed-dropdown">
                        <button class="ctrl-btn" id="speed-btn" aria-label="Playback speed">1x</button>
                        <div class="speed-menu" id="speed-menu">
                            <button data-speed="0.5">0.5x</button>
                            <button data-speed="0.75">0.75x</button>
                            <button data-speed="1" class="active">1x</button>
                            <button data-speed="1.25">1.25x</button>
                            <button data-speed="1.5">1.5x</button>
                            <button data-speed="2">2x</button>
                        </div>
                    </div>
                    <button class="ctrl-btn" id="pip-btn" aria-label="Picture in Picture">&#9114;</button>
                    <button class="ctrl-btn" id="fullscreen-btn" aria-label="Fullscreen">&#9974;</button>
                </div>
`

// playerJS drives the transport surface. The playback session on the
// server is the state authority: user input and player notifications are
// posted as events, and the returned state plus queued commands are
// applied to the <video> element. Expects player, container, sessionOpen
// (videoId) to be set up by the page before this code runs.
const playerJS = `
        var sessionId = null;
        var state = null;
        var seeking = false;

        function fmtTime(s) {
            if (!isFinite(s) || isNaN(s) || s < 0) return '0:00';
            s = Math.floor(s);
            if (s >= 3600) return Math.floor(s/3600) + ':' + ('0'+Math.floor((s%3600)/60)).slice(-2) + ':' + ('0'+(s%60)).slice(-2);
            return Math.floor(s/60) + ':' + ('0'+(s%60)).slice(-2);
        }

        function applyCommand(cmd) {
            switch (cmd.type) {
            case 'load':
                player.src = cmd.url;
                break;
            case 'play':
                player.play().catch(function(){});
                break;
            case 'pause':
                player.pause();
                break;
            case 'seek':
                if (isFinite(player.duration)) player.currentTime = cmd.fraction * player.duration;
                break;
            case 'volume':
                player.volume = cmd.level;
                break;
            case 'muted':
                player.muted = cmd.muted;
                break;
            case 'rate':
                player.playbackRate = cmd.rate;
                break;
            case 'fullscreen-enter':
                container.requestFullscreen().catch(function(err) { console.log('fullscreen denied:', err); });
                break;
            case 'fullscreen-exit':
                if (document.fullscreenElement) document.exitFullscreen().catch(function(){});
                break;
            case 'pip-enter':
                player.requestPictureInPicture().catch(function(err) { console.log('picture-in-picture denied:', err); });
                break;
            case 'pip-exit':
                if (document.pictureInPictureElement) document.exitPictureInPicture().catch(function(){});
                break;
            case 'unload':
                player.removeAttribute('src');
                player.load();
                break;
            }
        }

        function apply(resp) {
            state = resp.state;
            (resp.commands || []).forEach(applyCommand);
            render();
        }

        function render() {
            if (!state) return;
            var playBtn = document.getElementById('play-btn');
            playBtn.innerHTML = state.playing ? '&#9646;&#9646;' : '&#9654;';
            playBtn.setAttribute('aria-label', state.playing ? 'Pause' : 'Play');
            document.getElementById('player-overlay').classList.toggle('paused', !state.playing);
            var pct = (state.played * 100) + '%';
            document.getElementById('seek-progress').style.width = pct;
            document.getElementById('seek-thumb').style.left = pct;
            document.getElementById('time-current').textContent = fmtTime(state.played * state.duration);
            document.getElementById('time-duration').textContent = fmtTime(state.duration);
            var muteBtn = document.getElementById('mute-btn');
            muteBtn.innerHTML = (state.muted || state.volume === 0) ? '&#128264;' : '&#128266;';
            muteBtn.setAttribute('aria-label', state.muted ? 'Unmute' : 'Mute');
            document.getElementById('volume-slider').value = state.muted ? 0 : Math.round(state.volume * 100);
            document.getElementById('volume-popover').classList.toggle('open', state.volumePopover);
            document.getElementById('speed-btn').textContent = state.rate + 'x';
            document.querySelectorAll('#speed-menu button').forEach(function(b) {
                b.classList.toggle('active', parseFloat(b.dataset.speed) === state.rate);
            });
            var fsBtn = document.getElementById('fullscreen-btn');
            fsBtn.innerHTML = state.fullscreen ? '&#9723;' : '&#9974;';
            fsBtn.setAttribute('aria-label', state.fullscreen ? 'Exit fullscreen' : 'Fullscreen');
        }

        function sendEvent(type, extra) {
            if (!sessionId) return;
            var body = Object.assign({ type: type }, extra || {});
            fetch('/api/sessions/' + sessionId + '/events', {
                method: 'POST',
                headers: { 'Content-Type': 'application/json' },
                body: JSON.stringify(body)
            }).then(function(r) {
                if (r.ok) return r.json().then(apply);
            }).catch(function(err) { console.log('session event failed:', err); });
        }

        fetch('/api/sessions', {
            method: 'POST',
            headers: { 'Content-Type': 'application/json' },
            body: JSON.stringify({ videoId: sessionVideoId })
        }).then(function(r) { return r.json(); }).then(function(resp) {
            sessionId = resp.sessionId;
            apply(resp);
        }).catch(function(err) { console.log('session open failed:', err); });

        // Player notifications
        setInterval(function() {
            if (!seeking && isFinite(player.duration) && player.duration > 0) {
                sendEvent('progress', { fraction: player.currentTime / player.duration });
            }
        }, 1000);
        player.addEventListener('loadedmetadata', function() {
            if (isFinite(player.duration)) sendEvent('duration', { seconds: player.duration });
        });
        document.addEventListener('fullscreenchange', function() {
            sendEvent('fullscreenchange', { active: !!document.fullscreenElement });
        });
        player.addEventListener('enterpictureinpicture', function() { sendEvent('pipchange', { active: true }); });
        player.addEventListener('leavepictureinpicture', function() { sendEvent('pipchange', { active: false }); });

        // Clicking the surface toggles play/pause; the control bar keeps
        // its clicks to itself.
        document.getElementById('player-overlay').addEventListener('click', function() { sendEvent('toggle-play'); });
        document.getElementById('player-controls').addEventListener('click', function(e) { e.stopPropagation(); });
        document.getElementById('play-btn').addEventListener('click', function() { sendEvent('toggle-play'); });

        // Seek bar: drag updates position immediately, release commits.
        var seekBar = document.getElementById('seek-bar');
        function seekFraction(e) {
            var rect = seekBar.getBoundingClientRect();
            return Math.max(0, Math.min(1, (e.clientX - rect.left) / rect.width));
        }
        seekBar.addEventListener('mousedown', function(e) {
            seeking = true;
            sendEvent('seek-drag', { fraction: seekFraction(e) });
        });
        document.addEventListener('mousemove', function(e) {
            if (seeking) sendEvent('seek-drag', { fraction: seekFraction(e) });
        });
        document.addEventListener('mouseup', function(e) {
            if (!seeking) return;
            seeking = false;
            sendEvent('seek-commit', { fraction: seekFraction(e) });
        });

        // Volume
        document.getElementById('mute-btn').addEventListener('click', function() { sendEvent('toggle-mute'); });
        document.getElementById('volume-slider').addEventListener('input', function(e) {
            sendEvent('volume', { level: e.target.value / 100 });
        });
        var volumeGroup = document.getElementById('volume-group');
        volumeGroup.addEventListener('mouseenter', function() { sendEvent('volume-popover', { visible: true }); });
        volumeGroup.addEventListener('mouseleave', function() { sendEvent('volume-popover', { visible: false }); });

        // Speed
        var speedMenu = document.getElementById('speed-menu');
        document.getElementById('speed-btn').addEventListener('click', function() {
            speedMenu.classList.toggle('open');
        });
        speedMenu.addEventListener('click', function(e) {
            var btn = e.target.closest('button[data-speed]');
            if (!btn) return;
            sendEvent('rate', { rate: parseFloat(btn.dataset.speed) });
            speedMenu.classList.remove('open');
        });

        document.getElementById('fullscreen-btn').addEventListener('click', function() { sendEvent('toggle-fullscreen'); });
        document.getElementById('pip-btn').addEventListener('click', function() { sendEvent('toggle-pip'); });

        // Global shortcuts while the player is mounted. preventDefault
        // keeps Space from scrolling and F/M from triggering browser UI.
        function onKeyDown(e) {
            if (e.target.tagName === 'INPUT' || e.target.tagName === 'TEXTAREA' || e.target.isContentEditable) return;
            switch (e.key) {
            case ' ':
                sendEvent('toggle-play');
                break;
            case 'f':
            case 'F':
                sendEvent('toggle-fullscreen');
                break;
            case 'm':
            case 'M':
                sendEvent('toggle-mute');
                break;
            default:
                return;
            }
            e.preventDefault();
        }
        document.addEventListener('keydown', onKeyDown);

        // Teardown: drop the shortcuts and the server-side session.
        window.addEventListener('pagehide', function() {
            document.removeEventListener('keydown', onKeyDown);
            if (sessionId) {
                fetch('/api/sessions/' + sessionId, { method: 'DELETE', keepalive: true }).catch(function(){});
            }
        });
`
