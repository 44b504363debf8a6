package player

import (
	"errors"
	"log/slog"
	"sync"
)

// DefaultVolume is the level a session opens with, and the level restored
// when unmuting from a zero volume.
const DefaultVolume = 0.7

// Rates is the fixed set of playback rates the controller accepts.
var Rates = []float64{0.5, 0.75, 1, 1.25, 1.5, 2}

var ErrInvalidRate = errors.New("playback rate not supported")

// Session is the transport state of one open player. It is owned
// exclusively by its Controller and discarded whole on close.
type Session struct {
	VideoID       string  `json:"videoId"`
	URL           string  `json:"url"`
	Playing       bool    `json:"playing"`
	Volume        float64 `json:"volume"`
	Muted         bool    `json:"muted"`
	Played        float64 `json:"played"`   // position as a fraction of duration, 0..1
	Seeking       bool    `json:"seeking"`  // true while the user drags the seek control
	Duration      float64 `json:"duration"` // seconds, 0 until the player reports it
	Fullscreen    bool    `json:"fullscreen"`
	Rate          float64 `json:"rate"`
	VolumePopover bool    `json:"volumePopover"`
}

// Controller translates user input into commands for the player primitive
// and folds the player's asynchronous notifications back into the session
// state. While Seeking is set, periodic progress reports are ignored so a
// drag gesture can never fight a stale tick over Played.
type Controller struct {
	mu       sync.Mutex
	player   Player
	platform Platform

	s    Session
	open bool
}

func NewController(p Player, platform Platform) *Controller {
	return &Controller{player: p, platform: platform}
}

// Open initializes the session for a video and starts loading it.
// Any previous session state is discarded.
func (c *Controller) Open(videoID, url string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.s = Session{
		VideoID: videoID,
		URL:     url,
		Playing: true,
		Volume:  DefaultVolume,
		Rate:    1,
	}
	c.open = true

	c.player.Load(url)
	c.player.SetVolume(DefaultVolume)
	c.player.SetMuted(false)
	c.player.SetRate(1)
	c.player.Play()
}

// Close tears down the session. Playback state is not persisted.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return
	}
	c.open = false
	c.s = Session{}
	c.player.Unload()
}

// State returns a copy of the current session state.
func (c *Controller) State() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s
}

// TogglePlay inverts the playing flag. No-op when no video is open.
func (c *Controller) TogglePlay() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return
	}
	c.s.Playing = !c.s.Playing
	if c.s.Playing {
		c.player.Play()
	} else {
		c.player.Pause()
	}
}

// SeekDrag marks the user as actively scrubbing and seeks immediately so
// the preview tracks the pointer. The fraction is expected to already be
// clamped to [0, 1] by the slider control.
func (c *Controller) SeekDrag(fraction float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return
	}
	c.s.Seeking = true
	c.s.Played = fraction
	c.player.SeekTo(fraction)
}

// SeekCommit ends a drag gesture: the final position is written and
// progress reports take over again.
func (c *Controller) SeekCommit(fraction float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return
	}
	c.s.Played = fraction
	c.s.Seeking = false
	c.player.SeekTo(fraction)
}

// Progress is the player's periodic position report. Ignored while the
// user is seeking; the drag always wins over stale ticks.
func (c *Controller) Progress(fraction float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open || c.s.Seeking {
		return
	}
	c.s.Played = fraction
}

// DurationKnown records the total duration once the player reports it.
func (c *Controller) DurationKnown(seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return
	}
	c.s.Duration = seconds
}

// SetVolume sets the level in [0, 1]. A level of zero also mutes; any
// other level leaves the mute flag alone.
func (c *Controller) SetVolume(level float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return
	}
	c.s.Volume = level
	c.player.SetVolume(level)
	if level == 0 {
		c.s.Muted = true
		c.player.SetMuted(true)
	}
}

// ToggleMute flips the mute flag. Unmuting from a zero volume restores
// DefaultVolume so sound always comes back audible.
func (c *Controller) ToggleMute() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return
	}
	if c.s.Muted {
		c.s.Muted = false
		if c.s.Volume == 0 {
			c.s.Volume = DefaultVolume
			c.player.SetVolume(DefaultVolume)
		}
		c.player.SetMuted(false)
	} else {
		c.s.Muted = true
		c.player.SetMuted(true)
	}
}

// SetRate switches playback speed. Only values from Rates are accepted;
// anything else returns ErrInvalidRate with the state unchanged.
func (c *Controller) SetRate(rate float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return nil
	}
	valid := false
	for _, r := range Rates {
		if rate == r {
			valid = true
			break
		}
	}
	if !valid {
		return ErrInvalidRate
	}
	c.s.Rate = rate
	c.player.SetRate(rate)
	return nil
}

// ToggleFullscreen requests the platform transition. The fullscreen flag
// is not set here: it follows the platform's change notification via
// FullscreenChanged, keeping the state eventually consistent with what
// the platform actually did.
func (c *Controller) ToggleFullscreen() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return
	}
	var err error
	if c.s.Fullscreen {
		err = c.platform.ExitFullscreen()
	} else {
		err = c.platform.EnterFullscreen()
	}
	if err != nil {
		slog.Info("fullscreen request denied", "video_id", c.s.VideoID, "error", err)
	}
}

// FullscreenChanged is the platform's fullscreen-change notification and
// the only writer of the fullscreen flag.
func (c *Controller) FullscreenChanged(active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return
	}
	c.s.Fullscreen = active
}

// TogglePictureInPicture fires a picture-in-picture request at the
// platform. Denials are logged and ignored; no session field tracks
// picture-in-picture state.
func (c *Controller) TogglePictureInPicture() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return
	}
	var err error
	if c.platform.PictureInPictureActive() {
		err = c.platform.ExitPictureInPicture()
	} else {
		err = c.platform.EnterPictureInPicture()
	}
	if err != nil {
		slog.Info("picture-in-picture request denied", "video_id", c.s.VideoID, "error", err)
	}
}

// SetVolumePopover shows or hides the transient volume popover.
func (c *Controller) SetVolumePopover(visible bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return
	}
	c.s.VolumePopover = visible
}
