package service

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultCelebrationDuration is how long the celebration display stays
// active before auto-dismissing.
const DefaultCelebrationDuration = 10 * time.Second

// display is one user's celebration overlay state.
type display struct {
	title string
	timer *time.Timer
}

// CelebrationService decides when the completion celebration fires. Each
// goal has a latch: crossing from below 100% to exactly 100% fires the
// celebration once and arms the latch; dropping back below 100% disarms it
// so a later crossing can fire again. The latch set lives in process memory
// only — a restart re-arms every goal.
//
// The display state auto-dismisses after a fixed duration and is held per
// user: one user's celebration is never visible to another, and a new
// celebration only restarts the dismiss timer of its own user's overlay.
type CelebrationService struct {
	mu       sync.Mutex
	latched  map[string]struct{}
	displays map[string]*display
	duration time.Duration
}

func NewCelebrationService(duration time.Duration) *CelebrationService {
	if duration <= 0 {
		duration = DefaultCelebrationDuration
	}
	return &CelebrationService{
		latched:  make(map[string]struct{}),
		displays: make(map[string]*display),
		duration: duration,
	}
}

// Observe feeds one before/after progress pair into the state machine and
// reports whether a celebration fired for the given user. Called on every
// step toggle.
func (s *CelebrationService) Observe(userID, goalID, title string, before, after int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if after < 100 {
		delete(s.latched, goalID)
		return false
	}

	if before >= 100 {
		return false
	}
	if _, ok := s.latched[goalID]; ok {
		return false
	}

	s.latched[goalID] = struct{}{}
	s.start(userID, title)
	slog.Info("celebration fired", "user_id", userID, "goal_id", goalID, "title", title)
	return true
}

// Current returns the display state the user's client should render.
func (s *CelebrationService) Current(userID string) (active bool, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.displays[userID]
	if !ok {
		return false, ""
	}
	return true, d.title
}

// Forget drops a goal's latch, e.g. when the goal is deleted.
func (s *CelebrationService) Forget(goalID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.latched, goalID)
}

// start must be called with the mutex held.
func (s *CelebrationService) start(userID, title string) {
	if d, ok := s.displays[userID]; ok {
		d.timer.Stop()
	}

	d := &display{title: title}
	d.timer = time.AfterFunc(s.duration, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// Only clear if this display is still the current one; a newer
		// celebration replaced it and owns its own timer.
		if s.displays[userID] == d {
			delete(s.displays, userID)
		}
	})
	s.displays[userID] = d
}
