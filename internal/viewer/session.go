package viewer

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dc25/photoview/internal/carousel"
)

// CaptionFetcher fetches the caption text for one photo id.
type CaptionFetcher interface {
	PhotoDescription(ctx context.Context, photoID string) (string, error)
}

// Notifier receives session events for connected displays. Implementations
// must not block.
type Notifier interface {
	PhotoShown(sessionID string, photo carousel.Photo)
	CaptionApplied(sessionID, photoID, text string)
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) PhotoShown(string, carousel.Photo)     {}
func (NopNotifier) CaptionApplied(string, string, string) {}

// Session owns the viewing state of one loaded collection. All mutation —
// user-driven rotation as well as caption completions coming back from
// fetch goroutines — passes through the session mutex, so events are
// processed one at a time regardless of arrival order.
type Session struct {
	ID string

	logger   *slog.Logger
	captions CaptionFetcher
	notify   Notifier

	mu     sync.Mutex
	state  State
	epoch  uint64
	issued map[string]bool
}

func newSession(logger *slog.Logger, captions CaptionFetcher, notify Notifier) *Session {
	if notify == nil {
		notify = NopNotifier{}
	}
	return &Session{
		ID:       uuid.NewString(),
		logger:   logger,
		captions: captions,
		notify:   notify,
		issued:   map[string]bool{},
	}
}

// Load installs the outcome of one collection fetch, replacing whatever the
// session held before. The epoch bump makes caption completions issued
// under an earlier load fall on the floor. On success the shown photo's
// caption fetch is kicked off immediately.
func (s *Session) Load(photos []carousel.Photo, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	s.issued = map[string]bool{}

	if err != nil {
		s.state = failed(err)
		return
	}

	c := carousel.New(photos)
	s.state = live(c)
	if shown, ok := c.Shown(); ok {
		s.issueCaptionLocked(shown)
	}
}

// Epoch identifies the current load cycle. Caption completions are tagged
// with the epoch they were issued under.
func (s *Session) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// Err returns the terminal load failure, if the session is in one.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Err()
}

// View is the display-layer projection of a session's current state.
type View struct {
	SessionID string  `json:"sessionId"`
	Total     int     `json:"total"`
	Position  int     `json:"position"`
	PhotoID   string  `json:"photoId,omitempty"`
	URL       string  `json:"url,omitempty"`
	Caption   *string `json:"caption"`
}

// Snapshot returns the current view, or the terminal load error.
func (s *Session) Snapshot() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.state.Err(); err != nil {
		return View{}, err
	}
	return s.viewLocked(), nil
}

// Rotate moves the display one step and returns the new view. Landing on a
// photo that still lacks a caption triggers its fetch; staying on the same
// photo (single-photo collection) triggers nothing.
func (s *Session) Rotate(dir carousel.Direction) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.state.Err(); err != nil {
		return View{}, err
	}

	c := s.state.carousel
	before, had := c.Shown()
	now, ok := c.Rotate(dir)
	if ok && had && now.ID != before.ID {
		s.issueCaptionLocked(now)
		s.notify.PhotoShown(s.ID, now)
	}

	return s.viewLocked(), nil
}

// ApplyCaption reconciles one caption completion against the current state.
// A completion from an earlier load, or one whose photo id no longer exists
// in the collection, is discarded; applying the same completion twice is a
// plain overwrite with the same value.
func (s *Session) ApplyCaption(epoch uint64, photoID, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch || s.state.carousel == nil {
		return false
	}
	if !s.state.carousel.SetDescription(photoID, text) {
		return false
	}

	s.notify.CaptionApplied(s.ID, photoID, text)
	return true
}

// issueCaptionLocked starts a caption fetch for the photo unless one was
// already issued this load or the caption is already present. Failed fetches
// are never reissued.
func (s *Session) issueCaptionLocked(p carousel.Photo) {
	if p.HasDescription() || s.issued[p.ID] {
		return
	}
	s.issued[p.ID] = true

	epoch := s.epoch
	go s.fetchCaption(epoch, p.ID)
}

func (s *Session) fetchCaption(epoch uint64, photoID string) {
	text, err := s.captions.PhotoDescription(context.Background(), photoID)
	if err != nil {
		s.logger.Warn("caption fetch failed", "session", s.ID, "photo", photoID, "error", err)
		return
	}

	if !s.ApplyCaption(epoch, photoID, text) {
		s.logger.Debug("caption discarded", "session", s.ID, "photo", photoID)
	}
}

func (s *Session) viewLocked() View {
	c := s.state.carousel
	view := View{
		SessionID: s.ID,
		Total:     c.Len(),
		Position:  c.Position(),
	}
	if shown, ok := c.Shown(); ok {
		view.PhotoID = shown.ID
		view.URL = shown.SourceURL()
		view.Caption = shown.Description
	}
	return view
}
