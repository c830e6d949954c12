package viewer

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dc25/photoview/internal/carousel"
)

// CollectionFetcher resolves a user name (and optional album title) to an
// ordered photo list.
type CollectionFetcher interface {
	ResolvePhotos(ctx context.Context, username, album string) ([]carousel.Photo, error)
}

// Manager tracks the live sessions of the process. Sessions exist only in
// memory; closing one, or the process, forgets it.
type Manager struct {
	logger      *slog.Logger
	collections CollectionFetcher
	captions    CaptionFetcher
	notify      Notifier

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager wires a manager over the given collaborators. notify may be
// nil when no display transport is attached.
func NewManager(logger *slog.Logger, collections CollectionFetcher, captions CaptionFetcher, notify Notifier) *Manager {
	return &Manager{
		logger:      logger,
		collections: collections,
		captions:    captions,
		notify:      notify,
		sessions:    map[string]*Session{},
	}
}

// Open creates a session and loads the requested collection into it. A fetch
// failure still yields a session — in its terminal error state — so the
// caller can surface the failure the same way as any later read.
func (m *Manager) Open(ctx context.Context, username, album string) *Session {
	s := newSession(m.logger, m.captions, m.notify)

	photos, err := m.collections.ResolvePhotos(ctx, username, album)
	if err != nil {
		m.logger.Error("collection fetch failed", "session", s.ID, "user", username, "album", album, "error", err)
	}
	s.Load(photos, err)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Info("session opened", "session", s.ID, "user", username, "album", album, "photos", len(photos))
	return s
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Close forgets a session and reports whether it existed. In-flight caption
// fetches for it run to completion and reconcile against the forgotten
// state, which nothing reads afterwards.
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}
