package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeAdmin/internal/modules/dashboard/domain"
	products "storeAdmin/internal/modules/products/domain"
	"storeAdmin/internal/shared/listengine"
)

type fixedActivity struct {
	seen      map[string]time.Time
	forgotten []string
}

func (f *fixedActivity) LastActive() map[string]time.Time {
	return f.seen
}

func (f *fixedActivity) Forget(sessionID string) {
	f.forgotten = append(f.forgotten, sessionID)
	delete(f.seen, sessionID)
}

func TestIdleSweeperUsesLatestActivityAcrossTrackers(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	views := &fixedActivity{seen: map[string]time.Time{
		"stale":  now.Add(-2 * time.Hour),
		"mixed":  now.Add(-2 * time.Hour),
		"recent": now.Add(-time.Minute),
	}}
	state := &fixedActivity{seen: map[string]time.Time{
		"mixed":      now.Add(-5 * time.Minute),
		"state-only": now.Add(-time.Hour),
	}}

	sweeper := NewIdleSweeper(30*time.Minute, views, state)
	evicted := sweeper.Sweep(now)

	assert.Equal(t, []string{"stale", "state-only"}, evicted)
	assert.ElementsMatch(t, []string{"stale", "state-only"}, views.forgotten)
	assert.ElementsMatch(t, []string{"stale", "state-only"}, state.forgotten)
	assert.Contains(t, views.seen, "mixed")
	assert.Contains(t, views.seen, "recent")

	assert.Empty(t, NewIdleSweeper(0, views, state).Sweep(now.Add(24*time.Hour)), "zero ttl disables eviction")
}

func TestIdleSweeperEvictsMountedViewsAndState(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	productsUC, _, _, _ := newProductsFixture(t, 3)
	sessions := NewSessionStore("€")
	session := testSession(t, "sess-idle")

	_, err := productsUC.Mount(ctx, session)
	require.NoError(t, err)
	sessions.Update(session.ID(), func(state *domain.AppState) { state.Currency = "£" })

	sweeper := NewIdleSweeper(time.Minute, sessions, productsUC.Activity())
	assert.Empty(t, sweeper.Sweep(time.Now()), "fresh sessions stay")
	assert.True(t, productsUC.Mounted(session))

	evicted := sweeper.Sweep(time.Now().Add(time.Hour))
	assert.Equal(t, []string{"sess-idle"}, evicted)
	assert.False(t, productsUC.Mounted(session))
	assert.NotContains(t, sessions.LastActive(), "sess-idle")
	assert.Equal(t, "€", sessions.Get(session.ID()).Currency, "state starts over")

	store := NewViewStore("products", products.Schema(), 5)
	store.Mount("s1", catalog(2))
	before := store.LastActive()["s1"]
	store.Each(func(string, *listengine.Engine[products.Product]) {})
	assert.Equal(t, before, store.LastActive()["s1"], "change events are not activity")
}
