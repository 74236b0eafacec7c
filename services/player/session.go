// Package player tracks embed playback sessions. A session mirrors what one
// viewer's player is doing: which provider frame is mounted, whether playback
// was activated, and the transient overlay/fullscreen flags.
package player

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"reelgrid/models"
	"reelgrid/services/sources"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownSource   = errors.New("unknown source")
	ErrNotSeries       = errors.New("session is not a series")
)

type State string

const (
	// StateInactive means the provider frame is not mounted yet; the player
	// shows artwork and a play control.
	StateInactive State = "inactive"
	// StateActive means the provider frame is mounted and playing.
	StateActive State = "active"
)

// Session is a snapshot of one playback session. Mutation goes through the
// Manager; handler code only ever sees copies.
type Session struct {
	ID        string `json:"id"`
	MediaType string `json:"mediaType"`
	TitleID   int64  `json:"titleId"`
	Season    int    `json:"season,omitempty"`
	Episode   int    `json:"episode,omitempty"`

	Source         string `json:"source"`
	State          State  `json:"state"`
	Fullscreen     bool   `json:"fullscreen"`
	OverlayVisible bool   `json:"overlayVisible"`
	ErrorMessage   string `json:"errorMessage,omitempty"`

	StartedAt    time.Time `json:"startedAt"`
	LastActivity time.Time `json:"lastActivity"`
}

// FrameKey identifies the mounted provider frame. Changing the source or the
// episode produces a new key, which forces a frame remount.
func (s Session) FrameKey() string {
	return fmt.Sprintf("%s-%d-%d", s.Source, s.Season, s.Episode)
}

// EmbedURL resolves the session's current provider frame URL.
func (s Session) EmbedURL() string {
	var srcs []models.StreamSource
	if s.MediaType == models.MediaTypeSeries {
		srcs = sources.ForEpisode(s.TitleID, s.Season, s.Episode)
	} else {
		srcs = sources.ForMovie(s.TitleID)
	}
	for _, src := range srcs {
		if src.ID == s.Source {
			return src.EmbedURL
		}
	}
	return ""
}

type session struct {
	Session
	overlayTimer *time.Timer
}

// Manager owns all live sessions. Expired sessions are pruned lazily when
// new ones start.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*session

	overlayHide time.Duration
	maxIdle     time.Duration
}

func NewManager(overlayHideSeconds, maxIdleMinutes int) *Manager {
	return &Manager{
		sessions:    make(map[string]*session),
		overlayHide: time.Duration(overlayHideSeconds) * time.Second,
		maxIdle:     time.Duration(maxIdleMinutes) * time.Minute,
	}
}

// Start creates a session in the inactive state on the default source.
func (m *Manager) Start(mediaType string, titleID int64, season, episode int) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruneLocked()

	now := time.Now()
	s := &session{Session: Session{
		ID:             uuid.NewString(),
		MediaType:      mediaType,
		TitleID:        titleID,
		Season:         season,
		Episode:        episode,
		Source:         sources.DefaultID,
		State:          StateInactive,
		OverlayVisible: true,
		StartedAt:      now,
		LastActivity:   now,
	}}
	m.sessions[s.ID] = s
	return s.Session
}

func (m *Manager) Get(id string) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, false
	}
	return s.Session, true
}

// Activate mounts the provider frame. Activating an already active session
// is a no-op.
func (m *Manager) Activate(id string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, false
	}
	s.State = StateActive
	m.touchLocked(s)
	return s.Session, true
}

// SwitchSource changes the provider. The frame unmounts, so playback drops
// back to inactive and any provider error is stale and cleared.
func (m *Manager) SwitchSource(id, source string) (Session, error) {
	if !sources.IsValid(source) {
		return Session{}, fmt.Errorf("%w %q", ErrUnknownSource, source)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	s.Source = source
	s.State = StateInactive
	s.ErrorMessage = ""
	m.touchLocked(s)
	return s.Session, nil
}

// SelectEpisode retargets a series session at another episode. Same frame
// remount rules as a source switch.
func (m *Manager) SelectEpisode(id string, season, episode int) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	if s.MediaType != models.MediaTypeSeries {
		return Session{}, fmt.Errorf("session %s: %w", id, ErrNotSeries)
	}
	s.Season = season
	s.Episode = episode
	s.State = StateInactive
	s.ErrorMessage = ""
	m.touchLocked(s)
	return s.Session, nil
}

// SetFullscreen mirrors the browser fullscreen state. The flag only ever
// changes through this notification.
func (m *Manager) SetFullscreen(id string, on bool) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, false
	}
	s.Fullscreen = on
	m.touchLocked(s)
	return s.Session, true
}

// Touch records viewer activity: the overlay shows and its hide timer
// rearms.
func (m *Manager) Touch(id string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, false
	}
	m.touchLocked(s)
	return s.Session, true
}

func (m *Manager) SetError(id, message string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, false
	}
	s.ErrorMessage = message
	s.LastActivity = time.Now()
	return s.Session, true
}

// Close drops the session and cancels its overlay timer.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		if s.overlayTimer != nil {
			s.overlayTimer.Stop()
		}
		delete(m.sessions, id)
	}
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// touchLocked shows the overlay and rearms the auto-hide timer. Callers
// hold the lock.
func (m *Manager) touchLocked(s *session) {
	s.LastActivity = time.Now()
	s.OverlayVisible = true
	if s.overlayTimer != nil {
		s.overlayTimer.Stop()
	}
	id := s.ID
	s.overlayTimer = time.AfterFunc(m.overlayHide, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if cur, ok := m.sessions[id]; ok {
			cur.OverlayVisible = false
		}
	})
}

func (m *Manager) pruneLocked() {
	if m.maxIdle <= 0 {
		return
	}
	cutoff := time.Now().Add(-m.maxIdle)
	for id, s := range m.sessions {
		if s.LastActivity.Before(cutoff) {
			if s.overlayTimer != nil {
				s.overlayTimer.Stop()
			}
			delete(m.sessions, id)
		}
	}
}
