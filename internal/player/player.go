// Package player owns the playback session state for one open video and
// reconciles user commands with asynchronous player-driven events. The
// embedded player primitive and the host platform sit behind interfaces so
// the controller can be driven the same way by the HTTP session surface
// and by tests.
package player

// Player is the embedded playback primitive the controller issues
// commands to. Implementations must not call back into the controller.
type Player interface {
	Load(url string)
	Play()
	Pause()
	// SeekTo positions playback at a fraction of total duration in [0, 1].
	SeekTo(fraction float64)
	SetVolume(level float64)
	SetMuted(muted bool)
	SetRate(rate float64)
	Unload()
}

// Platform issues fullscreen and picture-in-picture requests to the host
// environment. Requests may be denied (user gesture required, feature
// unsupported); denials are logged and never surfaced to the user.
type Platform interface {
	EnterFullscreen() error
	ExitFullscreen() error
	EnterPictureInPicture() error
	ExitPictureInPicture() error
	PictureInPictureActive() bool
}
