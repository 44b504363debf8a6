package player

import "sync"

// Command is an outbound instruction for the browser-hosted player
// primitive. Commands accumulate between event posts and are drained into
// the next session response.
type Command struct {
	Type     string  `json:"type"`
	URL      string  `json:"url,omitempty"`
	Fraction float64 `json:"fraction,omitempty"`
	Level    float64 `json:"level,omitempty"`
	Muted    bool    `json:"muted,omitempty"`
	Rate     float64 `json:"rate,omitempty"`
}

// Command types understood by the watch page.
const (
	CmdLoad     = "load"
	CmdPlay     = "play"
	CmdPause    = "pause"
	CmdSeek     = "seek"
	CmdVolume   = "volume"
	CmdMuted    = "muted"
	CmdRate     = "rate"
	CmdUnload   = "unload"
	CmdFsEnter  = "fullscreen-enter"
	CmdFsExit   = "fullscreen-exit"
	CmdPiPEnter = "pip-enter"
	CmdPiPExit  = "pip-exit"
)

// relay implements Player and Platform for HTTP-driven sessions: the real
// primitive is the <video> element in the browser, so every command is
// queued for the page to apply. Platform requests cannot fail here — the
// page reports the outcome back as fullscreenchange/pipchange events.
type relay struct {
	mu      sync.Mutex
	pending []Command
	pip     bool
}

func (r *relay) push(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, cmd)
}

// drain returns the queued commands and clears the queue.
func (r *relay) drain() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	cmds := r.pending
	r.pending = nil
	return cmds
}

func (r *relay) Load(url string)            { r.push(Command{Type: CmdLoad, URL: url}) }
func (r *relay) Play()                      { r.push(Command{Type: CmdPlay}) }
func (r *relay) Pause()                     { r.push(Command{Type: CmdPause}) }
func (r *relay) SeekTo(fraction float64)    { r.push(Command{Type: CmdSeek, Fraction: fraction}) }
func (r *relay) SetVolume(level float64)    { r.push(Command{Type: CmdVolume, Level: level}) }
func (r *relay) SetMuted(muted bool)        { r.push(Command{Type: CmdMuted, Muted: muted}) }
func (r *relay) SetRate(rate float64)       { r.push(Command{Type: CmdRate, Rate: rate}) }
func (r *relay) Unload()                    { r.push(Command{Type: CmdUnload}) }

func (r *relay) EnterFullscreen() error { r.push(Command{Type: CmdFsEnter}); return nil }
func (r *relay) ExitFullscreen() error  { r.push(Command{Type: CmdFsExit}); return nil }

func (r *relay) EnterPictureInPicture() error { r.push(Command{Type: CmdPiPEnter}); return nil }
func (r *relay) ExitPictureInPicture() error  { r.push(Command{Type: CmdPiPExit}); return nil }

func (r *relay) PictureInPictureActive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pip
}

func (r *relay) setPictureInPicture(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pip = active
}
