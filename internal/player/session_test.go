package player

import (
	"errors"
	"testing"
)

type fakePlayer struct {
	loaded     string
	playCalls  int
	pauseCalls int
	seeks      []float64
	volume     float64
	muted      bool
	rate       float64
	unloaded   bool
}

func (f *fakePlayer) Load(url string)         { f.loaded = url }
func (f *fakePlayer) Play()                   { f.playCalls++ }
func (f *fakePlayer) Pause()                  { f.pauseCalls++ }
func (f *fakePlayer) SeekTo(fraction float64) { f.seeks = append(f.seeks, fraction) }
func (f *fakePlayer) SetVolume(level float64) { f.volume = level }
func (f *fakePlayer) SetMuted(muted bool)     { f.muted = muted }
func (f *fakePlayer) SetRate(rate float64)    { f.rate = rate }
func (f *fakePlayer) Unload()                 { f.unloaded = true }

type fakePlatform struct {
	fsEnters  int
	fsExits   int
	fsErr     error
	pipActive bool
	pipEnters int
	pipExits  int
	pipErr    error
}

func (f *fakePlatform) EnterFullscreen() error { f.fsEnters++; return f.fsErr }
func (f *fakePlatform) ExitFullscreen() error  { f.fsExits++; return f.fsErr }
func (f *fakePlatform) EnterPictureInPicture() error {
	f.pipEnters++
	if f.pipErr != nil {
		return f.pipErr
	}
	f.pipActive = true
	return nil
}
func (f *fakePlatform) ExitPictureInPicture() error {
	f.pipExits++
	if f.pipErr != nil {
		return f.pipErr
	}
	f.pipActive = false
	return nil
}
func (f *fakePlatform) PictureInPictureActive() bool { return f.pipActive }

func openController(t *testing.T) (*Controller, *fakePlayer, *fakePlatform) {
	t.Helper()
	p := &fakePlayer{}
	plat := &fakePlatform{}
	c := NewController(p, plat)
	c.Open("vid-1", "https://media.example.com/videos/vid-1.mp4")
	return c, p, plat
}

func TestOpenInitializesSession(t *testing.T) {
	c, p, _ := openController(t)

	s := c.State()
	if !s.Playing {
		t.Error("expected playing=true after open")
	}
	if s.Volume != DefaultVolume {
		t.Errorf("volume = %v, want %v", s.Volume, DefaultVolume)
	}
	if s.Muted || s.Played != 0 || s.Rate != 1 || s.Duration != 0 || s.Seeking || s.Fullscreen {
		t.Errorf("unexpected initial state: %+v", s)
	}
	if p.loaded != "https://media.example.com/videos/vid-1.mp4" {
		t.Errorf("player loaded %q", p.loaded)
	}
	if p.playCalls != 1 {
		t.Errorf("play calls = %d, want 1", p.playCalls)
	}
}

func TestTogglePlayFlipsOnlyPlaying(t *testing.T) {
	c, p, _ := openController(t)
	before := c.State()

	c.TogglePlay()
	mid := c.State()
	if mid.Playing {
		t.Error("expected playing=false after first toggle")
	}
	if p.pauseCalls != 1 {
		t.Errorf("pause calls = %d, want 1", p.pauseCalls)
	}

	c.TogglePlay()
	after := c.State()
	if !after.Playing {
		t.Error("expected playing=true after second toggle")
	}

	// Nothing but the playing flag may move.
	mid.Playing = before.Playing
	after.Playing = before.Playing
	if mid != before || after != before {
		t.Errorf("toggle mutated unrelated fields: before=%+v mid=%+v after=%+v", before, mid, after)
	}
}

func TestTogglePlayNoOpWhenClosed(t *testing.T) {
	p := &fakePlayer{}
	c := NewController(p, &fakePlatform{})

	c.TogglePlay()
	if p.playCalls != 0 || p.pauseCalls != 0 {
		t.Error("expected no player commands without an open video")
	}
}

func TestProgressIgnoredWhileSeeking(t *testing.T) {
	c, _, _ := openController(t)

	c.SeekDrag(0.4)
	c.Progress(0.1)
	if got := c.State().Played; got != 0.4 {
		t.Errorf("played = %v, want 0.4 (progress must not win during a drag)", got)
	}

	// Ignored ticks are idempotent: state is untouched entirely.
	before := c.State()
	c.Progress(0.9)
	if c.State() != before {
		t.Error("ignored progress tick mutated state")
	}
}

func TestSeekCommitWinsOverStaleProgress(t *testing.T) {
	c, p, _ := openController(t)

	c.SeekDrag(0.2)
	c.SeekCommit(0.5)

	s := c.State()
	if s.Seeking {
		t.Error("expected seeking=false after commit")
	}
	if s.Played != 0.5 {
		t.Errorf("played = %v, want 0.5", s.Played)
	}
	if len(p.seeks) != 2 || p.seeks[1] != 0.5 {
		t.Errorf("player seeks = %v, want drag then commit", p.seeks)
	}

	// A tick arriving after the commit is live again.
	c.Progress(0.51)
	if got := c.State().Played; got != 0.51 {
		t.Errorf("played = %v, want 0.51 after commit releases the guard", got)
	}
}

func TestDurationKnown(t *testing.T) {
	c, _, _ := openController(t)
	c.DurationKnown(321.5)
	if got := c.State().Duration; got != 321.5 {
		t.Errorf("duration = %v, want 321.5", got)
	}
}

func TestSetVolumeZeroMutes(t *testing.T) {
	c, p, _ := openController(t)

	c.SetVolume(0.3)
	if s := c.State(); s.Volume != 0.3 || s.Muted {
		t.Errorf("state after SetVolume(0.3): %+v", s)
	}

	c.SetVolume(0)
	if s := c.State(); !s.Muted || s.Volume != 0 {
		t.Errorf("expected muted at zero volume, got %+v", s)
	}
	if !p.muted {
		t.Error("player was not muted")
	}
}

func TestToggleMuteRestoresVolume(t *testing.T) {
	c, p, _ := openController(t)

	c.SetVolume(0)
	if !c.State().Muted {
		t.Fatal("expected muted after zero volume")
	}

	c.ToggleMute()
	s := c.State()
	if s.Muted {
		t.Error("expected unmuted after toggle")
	}
	if s.Volume != DefaultVolume {
		t.Errorf("volume = %v, want %v (never left at 0 after unmute)", s.Volume, DefaultVolume)
	}
	if p.muted {
		t.Error("player still muted")
	}
}

func TestToggleMutePreservesNonZeroVolume(t *testing.T) {
	c, _, _ := openController(t)

	c.SetVolume(0.4)
	c.ToggleMute()
	if s := c.State(); !s.Muted || s.Volume != 0.4 {
		t.Errorf("state after mute: %+v", s)
	}
	c.ToggleMute()
	if s := c.State(); s.Muted || s.Volume != 0.4 {
		t.Errorf("state after unmute: %+v", s)
	}
}

func TestSetRateRejectsUnknownValues(t *testing.T) {
	c, p, _ := openController(t)

	for _, r := range Rates {
		if err := c.SetRate(r); err != nil {
			t.Errorf("SetRate(%v) = %v, want nil", r, err)
		}
	}
	if err := c.SetRate(1.5); err != nil {
		t.Fatal(err)
	}

	before := c.State()
	for _, r := range []float64{3, -1, 0, 1.1} {
		if err := c.SetRate(r); !errors.Is(err, ErrInvalidRate) {
			t.Errorf("SetRate(%v) = %v, want ErrInvalidRate", r, err)
		}
	}
	if c.State() != before {
		t.Error("rejected rate mutated state")
	}
	if p.rate != 1.5 {
		t.Errorf("player rate = %v, want 1.5", p.rate)
	}
}

func TestFullscreenIsSetOnlyByPlatformNotification(t *testing.T) {
	c, _, plat := openController(t)

	c.ToggleFullscreen()
	if plat.fsEnters != 1 {
		t.Errorf("fullscreen enters = %d, want 1", plat.fsEnters)
	}
	if c.State().Fullscreen {
		t.Error("fullscreen flag set optimistically; must wait for the platform")
	}

	c.FullscreenChanged(true)
	if !c.State().Fullscreen {
		t.Error("fullscreen flag not set by platform notification")
	}

	c.ToggleFullscreen()
	if plat.fsExits != 1 {
		t.Errorf("fullscreen exits = %d, want 1", plat.fsExits)
	}
	c.FullscreenChanged(false)
	if c.State().Fullscreen {
		t.Error("fullscreen flag not cleared by platform notification")
	}
}

func TestFullscreenDenialLeavesStateUntouched(t *testing.T) {
	c, _, plat := openController(t)
	plat.fsErr = errors.New("user gesture required")

	before := c.State()
	c.ToggleFullscreen()
	if c.State() != before {
		t.Error("denied fullscreen request mutated state")
	}
}

func TestPictureInPictureIsFireAndForget(t *testing.T) {
	c, _, plat := openController(t)

	before := c.State()
	c.TogglePictureInPicture()
	if plat.pipEnters != 1 {
		t.Errorf("pip enters = %d, want 1", plat.pipEnters)
	}
	if c.State() != before {
		t.Error("picture-in-picture mutated tracked state")
	}

	c.TogglePictureInPicture()
	if plat.pipExits != 1 {
		t.Errorf("pip exits = %d, want 1", plat.pipExits)
	}
}

func TestPictureInPictureDenialIsSwallowed(t *testing.T) {
	c, _, plat := openController(t)
	plat.pipErr = errors.New("document not active")

	before := c.State()
	c.TogglePictureInPicture()
	if c.State() != before {
		t.Error("denied pip request mutated state")
	}
}

func TestCloseDiscardsState(t *testing.T) {
	c, p, _ := openController(t)

	c.Progress(0.8)
	c.Close()
	if !p.unloaded {
		t.Error("player was not unloaded")
	}
	if c.State() != (Session{}) {
		t.Errorf("state not discarded: %+v", c.State())
	}

	// Late events after close are dropped.
	c.Progress(0.9)
	c.DurationKnown(100)
	if c.State() != (Session{}) {
		t.Error("events applied after close")
	}
}

func TestVolumePopover(t *testing.T) {
	c, _, _ := openController(t)
	c.SetVolumePopover(true)
	if !c.State().VolumePopover {
		t.Error("popover not shown")
	}
	c.SetVolumePopover(false)
	if c.State().VolumePopover {
		t.Error("popover not hidden")
	}
}
