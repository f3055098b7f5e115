package usecase

import (
	"context"
	"log/slog"
	"sort"
	"time"
)

// ActivityTracker is per-session state that can report its last use and be dropped.
type ActivityTracker interface {
	LastActive() map[string]time.Time
	Forget(sessionID string)
}

// IdleSweeper drops the views and state of sessions that have been idle longer than ttl.
// A session's activity is the latest use across every tracker.
type IdleSweeper struct {
	ttl      time.Duration
	trackers []ActivityTracker
}

func NewIdleSweeper(ttl time.Duration, trackers ...ActivityTracker) *IdleSweeper {
	return &IdleSweeper{ttl: ttl, trackers: trackers}
}

// Sweep forgets every session idle since before now-ttl and returns their ids, sorted.
func (s *IdleSweeper) Sweep(now time.Time) []string {
	if s.ttl <= 0 {
		return nil
	}
	latest := make(map[string]time.Time)
	for _, tracker := range s.trackers {
		for sessionID, at := range tracker.LastActive() {
			if at.After(latest[sessionID]) {
				latest[sessionID] = at
			}
		}
	}

	cutoff := now.Add(-s.ttl)
	var idle []string
	for sessionID, at := range latest {
		if at.Before(cutoff) {
			idle = append(idle, sessionID)
		}
	}
	sort.Strings(idle)
	for _, sessionID := range idle {
		for _, tracker := range s.trackers {
			tracker.Forget(sessionID)
		}
	}
	if len(idle) > 0 {
		slog.Info("idle sessions evicted", slog.Int("count", len(idle)), slog.Duration("ttl", s.ttl))
	}
	return idle
}

// Run sweeps every interval until ctx is done.
func (s *IdleSweeper) Run(ctx context.Context, every time.Duration) error {
	if s.ttl <= 0 || every <= 0 {
		return nil
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			s.Sweep(now)
		}
	}
}
