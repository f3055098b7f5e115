package usecase

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"storeAdmin/internal/shared/listengine"
)

type mountedView[T any] struct {
	mu     sync.Mutex
	engine *listengine.Engine[T]
	// lastUsed is the unix nano time of the last session call.
	lastUsed atomic.Int64
}

func (v *mountedView[T]) touch() {
	v.lastUsed.Store(time.Now().UnixNano())
}

// ViewStore keeps one list engine per session for a single view. Calls against the same
// session's view are serialized.
type ViewStore[T any] struct {
	name     string
	schema   listengine.Schema[T]
	pageSize int

	mu    sync.RWMutex
	views map[string]*mountedView[T]
}

// NewViewStore creates an empty store for the named view.
func NewViewStore[T any](name string, schema listengine.Schema[T], pageSize int) *ViewStore[T] {
	return &ViewStore[T]{
		name:     name,
		schema:   schema,
		pageSize: pageSize,
		views:    make(map[string]*mountedView[T]),
	}
}

// Name is the view name.
func (s *ViewStore[T]) Name() string {
	return s.name
}

// Mount loads records into the session's engine, creating it on first mount. A remount keeps
// criteria and prunes the selection to the new records.
func (s *ViewStore[T]) Mount(sessionID string, records []T) listengine.Page[T] {
	sessionID = strings.TrimSpace(sessionID)
	s.mu.Lock()
	view, ok := s.views[sessionID]
	if !ok {
		view = &mountedView[T]{engine: listengine.New(s.schema, s.pageSize)}
		s.views[sessionID] = view
	}
	s.mu.Unlock()

	view.mu.Lock()
	defer view.mu.Unlock()
	view.engine.Load(records)
	view.touch()
	slog.Debug("view mounted", slog.String("view", s.name), slog.String("sessionId", sessionID), slog.Int("records", len(records)), slog.Bool("remount", ok))
	return view.engine.View()
}

// With runs fn against the session's engine while holding the view lock, and counts as
// activity of the session.
func (s *ViewStore[T]) With(sessionID string, fn func(*listengine.Engine[T]) error) error {
	return s.with(sessionID, true, fn)
}

func (s *ViewStore[T]) with(sessionID string, touch bool, fn func(*listengine.Engine[T]) error) error {
	s.mu.RLock()
	view, ok := s.views[strings.TrimSpace(sessionID)]
	s.mu.RUnlock()
	if !ok {
		return ErrViewNotMounted
	}
	view.mu.Lock()
	defer view.mu.Unlock()
	if touch {
		view.touch()
	}
	return fn(view.engine)
}

// Page runs fn and returns the resulting visible page.
func (s *ViewStore[T]) Page(sessionID string, fn func(*listengine.Engine[T])) (listengine.Page[T], error) {
	var page listengine.Page[T]
	err := s.With(sessionID, func(engine *listengine.Engine[T]) error {
		if fn != nil {
			fn(engine)
		}
		page = engine.View()
		return nil
	})
	return page, err
}

// Mounted reports whether the session has this view open.
func (s *ViewStore[T]) Mounted(sessionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.views[strings.TrimSpace(sessionID)]
	return ok
}

// Forget discards the session's engine.
func (s *ViewStore[T]) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.views, strings.TrimSpace(sessionID))
}

// LastActive returns, per mounted session, when the session last used this view.
func (s *ViewStore[T]) LastActive() map[string]time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]time.Time, len(s.views))
	for sessionID, view := range s.views {
		out[sessionID] = time.Unix(0, view.lastUsed.Load())
	}
	return out
}

// Sessions lists the sessions with this view mounted, sorted.
func (s *ViewStore[T]) Sessions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]string, 0, len(s.views))
	for sessionID := range s.views {
		sessions = append(sessions, sessionID)
	}
	sort.Strings(sessions)
	return sessions
}

// Each runs fn against every mounted engine, one view lock at a time. It does not count as
// session activity.
func (s *ViewStore[T]) Each(fn func(sessionID string, engine *listengine.Engine[T])) {
	for _, sessionID := range s.Sessions() {
		_ = s.with(sessionID, false, func(engine *listengine.Engine[T]) error {
			fn(sessionID, engine)
			return nil
		})
	}
}
