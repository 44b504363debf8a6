package player

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Handle pairs a session's controller with its command relay.
type Handle struct {
	ID         string
	Controller *Controller

	rel      *relay
	lastSeen time.Time
}

// DrainCommands returns the outbound commands queued since the last drain.
func (h *Handle) DrainCommands() []Command {
	return h.rel.drain()
}

// SetPictureInPicture records the platform's picture-in-picture state as
// reported by the page.
func (h *Handle) SetPictureInPicture(active bool) {
	h.rel.setPictureInPicture(active)
}

// Manager tracks open playback sessions. Each session owns its state
// exclusively; nothing is shared between sessions.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Handle
	ttl      time.Duration
}

// NewManager creates a session registry. Sessions idle longer than ttl
// are reaped; browser tabs closed without a teardown request would
// otherwise leak.
func NewManager(ttl time.Duration) *Manager {
	m := &Manager{
		sessions: make(map[string]*Handle),
		ttl:      ttl,
	}
	go m.reap()
	return m
}

// Open creates a session for a video and starts it playing.
func (m *Manager) Open(videoID, url string) *Handle {
	rel := &relay{}
	h := &Handle{
		ID:         uuid.New().String(),
		Controller: NewController(rel, rel),
		rel:        rel,
		lastSeen:   time.Now(),
	}
	h.Controller.Open(videoID, url)

	m.mu.Lock()
	m.sessions[h.ID] = h
	m.mu.Unlock()
	return h
}

// Get returns the session with the given id and marks it live.
func (m *Manager) Get(id string) (*Handle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.sessions[id]
	if ok {
		h.lastSeen = time.Now()
	}
	return h, ok
}

// Close tears down a session and forgets it.
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	h, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		h.Controller.Close()
	}
	return ok
}

func (m *Manager) reap() {
	for {
		time.Sleep(time.Minute)
		cutoff := time.Now().Add(-m.ttl)

		m.mu.Lock()
		var stale []*Handle
		for id, h := range m.sessions {
			if h.lastSeen.Before(cutoff) {
				stale = append(stale, h)
				delete(m.sessions, id)
			}
		}
		m.mu.Unlock()

		for _, h := range stale {
			h.Controller.Close()
		}
	}
}
