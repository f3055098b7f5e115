package usecase

import (
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"storeAdmin/internal/modules/dashboard/domain"
)

// SessionStore holds the AppState of every signed-in session.
type SessionStore struct {
	currency string

	mu     sync.Mutex
	states map[string]*domain.AppState
	seen   map[string]time.Time
}

// NewSessionStore creates a store whose new sessions show prices in currency.
func NewSessionStore(currency string) *SessionStore {
	if strings.TrimSpace(currency) == "" {
		currency = "$"
	}
	return &SessionStore{
		currency: currency,
		states:   make(map[string]*domain.AppState),
		seen:     make(map[string]time.Time),
	}
}

// Get returns a copy of the session's state.
func (s *SessionStore) Get(sessionID string) domain.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked(sessionID).Clone()
}

// Update mutates the session's state under the store lock and returns the result.
func (s *SessionStore) Update(sessionID string, fn func(*domain.AppState)) domain.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.stateLocked(sessionID)
	fn(state)
	return state.Clone()
}

// Forget drops the session's state.
func (s *SessionStore) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessionID = strings.TrimSpace(sessionID)
	delete(s.states, sessionID)
	delete(s.seen, sessionID)
}

// LastActive returns when each known session last read or changed its state.
func (s *SessionStore) LastActive() map[string]time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.seen)
}

// RequestDelete records ids of view as awaiting confirmation, replacing any earlier request.
func (s *SessionStore) RequestDelete(sessionID, view string, ids []string) domain.PendingDelete {
	pending := domain.PendingDelete{View: view, IDs: slices.Clone(ids)}
	s.Update(sessionID, func(state *domain.AppState) {
		state.PendingDelete = &pending
	})
	return pending
}

// TakePendingDelete consumes the pending delete of view. A second call finds nothing.
func (s *SessionStore) TakePendingDelete(sessionID, view string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.stateLocked(sessionID)
	if state.PendingDelete == nil || state.PendingDelete.View != view || len(state.PendingDelete.IDs) == 0 {
		return nil, ErrNoPendingDelete
	}
	ids := state.PendingDelete.IDs
	state.PendingDelete = nil
	return ids, nil
}

// CancelDelete drops the pending delete of view, if any.
func (s *SessionStore) CancelDelete(sessionID, view string) {
	s.Update(sessionID, func(state *domain.AppState) {
		if state.PendingDelete != nil && state.PendingDelete.View == view {
			state.PendingDelete = nil
		}
	})
}

func (s *SessionStore) stateLocked(sessionID string) *domain.AppState {
	sessionID = strings.TrimSpace(sessionID)
	s.seen[sessionID] = time.Now()
	state, ok := s.states[sessionID]
	if !ok {
		state = &domain.AppState{Currency: s.currency}
		s.states[sessionID] = state
	}
	return state
}
