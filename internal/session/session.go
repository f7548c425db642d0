// Package session holds per-user dashboard state across re-renders.
//
// Each browser session owns one State: whether a search was submitted and
// the current result set. States are created on the first visit, replaced
// wholesale on each submission, and destroyed on reset or after sitting idle
// longer than the store's TTL. Sessions never share state.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gauthierbraillon/contentmix/internal/youtube"
)

// Snapshot is a consistent read of a State.
type Snapshot struct {
	HasSubmitted bool
	Params       *youtube.SearchParameters
	Results      []youtube.VideoRecord
}

// HasResults reports whether a non-empty result set is stored.
func (s Snapshot) HasResults() bool {
	return len(s.Results) > 0
}

// State is the dashboard state of one session.
type State struct {
	mu           sync.RWMutex
	hasSubmitted bool
	params       *youtube.SearchParameters
	results      []youtube.VideoRecord
}

// Snapshot returns the current state. The result slice is never mutated after
// it is stored, so readers may share it.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		HasSubmitted: s.hasSubmitted,
		Params:       s.params,
		Results:      s.results,
	}
}

// Replace stores the result set of a successful submission, discarding the
// previous one.
func (s *State) Replace(params youtube.SearchParameters, results []youtube.VideoRecord) {
	stored := make([]youtube.VideoRecord, len(results))
	copy(stored, results)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasSubmitted = true
	s.params = &params
	s.results = stored
}

// Clear records a submission that produced no result set.
func (s *State) Clear(params youtube.SearchParameters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasSubmitted = true
	s.params = &params
	s.results = nil
}

type entry struct {
	state    *State
	lastSeen time.Time
}

// Store maps session ids to their State.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the time source (useful for testing).
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a store whose sessions expire after ttl of inactivity.
// A ttl of zero disables expiry.
func NewStore(ttl time.Duration, opts ...StoreOption) *Store {
	s := &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a new session with default state.
func (s *Store) Create() (string, *State) {
	id := uuid.NewString()
	state := &State{}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &entry{state: state, lastSeen: s.now()}
	return id, state
}

// Get returns the session's state and refreshes its idle timer. Expired
// sessions are destroyed and reported as missing.
func (s *Store) Get(id string) (*State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if s.expired(e, now) {
		delete(s.sessions, id)
		return nil, false
	}
	e.lastSeen = now
	return e.state, true
}

// Destroy ends a session.
func (s *Store) Destroy(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep destroys every expired session and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.sessions {
		if s.expired(e, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				slog.Info("session: expired sessions removed", slog.Int("count", n), slog.Int("live", s.Len()))
			}
		}
	}
}

func (s *Store) expired(e *entry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.lastSeen) > s.ttl
}
