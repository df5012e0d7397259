package domain

import (
	"sync"

	apperrors "flo8/internal/platform/errors"
)

// Session is the client's authentication snapshot. While Initializing is true
// no authorization decision may be made: consumers render a neutral loading
// state, never a redirect and never protected content.
type Session struct {
	Profile      *Profile
	Initializing bool
}

func (s Session) Authenticated() bool {
	return !s.Initializing && s.Profile != nil
}

// Store is the single source of truth for "is someone logged in". It is pure
// in-memory state; every mutation goes through one of the three operations
// below and notifies subscribers after the state has been updated.
type Store struct {
	mu          sync.Mutex
	session     Session
	resolved    bool
	subscribers map[int]func(Session)
	nextID      int
}

func NewStore() *Store {
	return &Store{
		session:     Session{Initializing: true},
		subscribers: map[int]func(Session){},
	}
}

// Snapshot returns a copy of the current session. The profile is cloned so a
// later merge cannot race a reader holding an old snapshot.
func (s *Store) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Session {
	out := Session{Initializing: s.session.Initializing}
	if s.session.Profile != nil {
		p := *s.session.Profile
		p.Goals = append([]string(nil), s.session.Profile.Goals...)
		out.Profile = &p
	}
	return out
}

// ResolveInitial completes the bootstrap exactly once: it sets the profile
// (nil meaning unauthenticated) and drops the initializing flag. A second
// call is a contract violation and leaves the state untouched.
func (s *Store) ResolveInitial(profile *Profile) error {
	s.mu.Lock()
	if s.resolved {
		s.mu.Unlock()
		return apperrors.ErrAlreadyResolved
	}
	s.resolved = true
	s.session = Session{Profile: profile, Initializing: false}
	snapshot, handlers := s.snapshotLocked(), s.handlersLocked()
	s.mu.Unlock()

	notifyAll(handlers, snapshot)
	return nil
}

// SetProfile replaces the profile wholesale; login and logout use it.
func (s *Store) SetProfile(profile *Profile) {
	s.mu.Lock()
	s.session.Profile = profile
	snapshot, handlers := s.snapshotLocked(), s.handlersLocked()
	s.mu.Unlock()

	notifyAll(handlers, snapshot)
}

// MergeProfile shallow-merges the update into the current profile. Merging
// with no profile set signals a defect and changes nothing.
func (s *Store) MergeProfile(update ProfileUpdate) error {
	s.mu.Lock()
	if s.session.Profile == nil {
		s.mu.Unlock()
		return apperrors.ErrNoProfile
	}
	merged := s.session.Profile.Apply(update)
	s.session.Profile = &merged
	snapshot, handlers := s.snapshotLocked(), s.handlersLocked()
	s.mu.Unlock()

	notifyAll(handlers, snapshot)
	return nil
}

// Subscribe registers fn for every subsequent mutation and returns an
// unsubscribe func. Handlers run outside the store's lock, after the
// mutation is visible.
func (s *Store) Subscribe(fn func(Session)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) handlersLocked() []func(Session) {
	out := make([]func(Session), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		out = append(out, fn)
	}
	return out
}

func notifyAll(handlers []func(Session), snapshot Session) {
	for _, fn := range handlers {
		fn(snapshot)
	}
}
