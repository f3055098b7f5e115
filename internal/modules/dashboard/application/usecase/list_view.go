package usecase

import (
	"log/slog"
	"maps"
	"net/url"
	"slices"
	"strings"

	"storeAdmin/internal/modules/dashboard/domain"
	"storeAdmin/internal/shared/auth"
	"storeAdmin/internal/shared/listengine"
	"storeAdmin/internal/shared/normalization"
)

// listView carries the list operations every list page shares.
type listView[T any] struct {
	store *ViewStore[T]
}

// Page returns the visible page of the session's view.
func (v listView[T]) Page(session auth.Session) (listengine.Page[T], error) {
	return v.store.Page(session.ID(), nil)
}

// Apply replaces the view criteria (search, sort, filters, page).
func (v listView[T]) Apply(session auth.Session, criteria listengine.Criteria) (listengine.Page[T], error) {
	return v.store.Page(session.ID(), func(engine *listengine.Engine[T]) {
		engine.Apply(criteria)
	})
}

// Refine merges the query parameters present in values into the current criteria. A page
// request alone keeps the search, sort and filters.
func (v listView[T]) Refine(session auth.Session, values url.Values) (listengine.Page[T], error) {
	return v.store.Page(session.ID(), func(engine *listengine.Engine[T]) {
		engine.Apply(engine.Criteria().Refine(values, engine.Schema().Facets))
	})
}

// GoToPage moves to page, clamped to the filtered bounds.
func (v listView[T]) GoToPage(session auth.Session, page int) (listengine.Page[T], error) {
	return v.store.Page(session.ID(), func(engine *listengine.Engine[T]) {
		engine.SetPage(page)
	})
}

func (v listView[T]) NextPage(session auth.Session) (listengine.Page[T], error) {
	return v.store.Page(session.ID(), func(engine *listengine.Engine[T]) {
		engine.NextPage()
	})
}

func (v listView[T]) PreviousPage(session auth.Session) (listengine.Page[T], error) {
	return v.store.Page(session.ID(), func(engine *listengine.Engine[T]) {
		engine.PreviousPage()
	})
}

// ToggleSelect flips the selection of one record.
func (v listView[T]) ToggleSelect(session auth.Session, id string) (listengine.Page[T], error) {
	return v.store.Page(session.ID(), func(engine *listengine.Engine[T]) {
		engine.ToggleSelect(strings.TrimSpace(id))
	})
}

// ToggleSelectPage selects every record on the current page, or deselects them when all
// already are.
func (v listView[T]) ToggleSelectPage(session auth.Session) (listengine.Page[T], error) {
	return v.store.Page(session.ID(), func(engine *listengine.Engine[T]) {
		engine.ToggleSelectCurrentPage()
	})
}

// ClearSelection deselects everything.
func (v listView[T]) ClearSelection(session auth.Session) (listengine.Page[T], error) {
	return v.store.Page(session.ID(), func(engine *listengine.Engine[T]) {
		engine.ClearSelection()
	})
}

// Unmount discards the session's view.
func (v listView[T]) Unmount(session auth.Session) {
	v.store.Forget(session.ID())
}

// Activity exposes the view's per-session usage to the idle sweeper.
func (v listView[T]) Activity() ActivityTracker {
	return v.store
}

// Mounted reports whether the session has the view open.
func (v listView[T]) Mounted(session auth.Session) bool {
	return v.store.Mounted(session.ID())
}

func (v listView[T]) find(session auth.Session, id string) (T, error) {
	var (
		record T
		found  bool
	)
	err := v.store.With(session.ID(), func(engine *listengine.Engine[T]) error {
		record, found = engine.Find(strings.TrimSpace(id))
		return nil
	})
	if err != nil {
		return record, err
	}
	if !found {
		return record, ErrRecordNotFound
	}
	return record, nil
}

// upsert stores record in the session's view when it is mounted.
func (v listView[T]) upsert(session auth.Session, record T) {
	_ = v.store.With(session.ID(), func(engine *listengine.Engine[T]) error {
		engine.Upsert(record)
		return nil
	})
}

// remove deletes ids from the session's view and reports the remaining item count.
func (v listView[T]) remove(session auth.Session, ids ...string) int {
	total := 0
	_ = v.store.With(session.ID(), func(engine *listengine.Engine[T]) error {
		engine.ApplyDeletion(ids...)
		total = engine.Len()
		return nil
	})
	return total
}

// deletable resolves the ids a delete request targets: explicit ids that exist in the view,
// or the current selection when none are given.
func (v listView[T]) deletable(session auth.Session, ids []string) ([]string, error) {
	var targets []string
	err := v.store.With(session.ID(), func(engine *listengine.Engine[T]) error {
		if len(ids) == 0 {
			targets = engine.Selected()
			return nil
		}
		for _, id := range ids {
			id = strings.TrimSpace(id)
			if _, ok := engine.Find(id); ok && !slices.Contains(targets, id) {
				targets = append(targets, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, ErrNothingSelected
	}
	return targets, nil
}

// applyRemoteChange applies a backend change event to every mounted view and returns the
// number of sessions touched.
func applyRemoteChange[T any](store *ViewStore[T], msg *domain.Message, normalize func(map[string]any) (T, bool)) int {
	if msg == nil {
		return 0
	}
	switch strings.ToLower(msg.Action) {
	case domain.ActionCreated, domain.ActionUpdated:
		raw := maps.Clone(normalization.MapFromPayload(msg.Data))
		if raw == nil {
			raw = make(map[string]any)
		}
		if _, ok := raw["id"]; !ok && msg.ResourceID != "" {
			raw["id"] = msg.ResourceID
		}
		record, ok := normalize(raw)
		if !ok {
			slog.Warn("change event dropped: missing id", slog.String("view", store.Name()), slog.String("topic", msg.Topic))
			return 0
		}
		touched := 0
		store.Each(func(_ string, engine *listengine.Engine[T]) {
			engine.Upsert(record)
			touched++
		})
		return touched
	case domain.ActionDeleted:
		ids := remoteIDs(msg)
		if len(ids) == 0 {
			return 0
		}
		touched := 0
		store.Each(func(_ string, engine *listengine.Engine[T]) {
			if engine.ApplyDeletion(ids...) > 0 {
				touched++
			}
		})
		return touched
	default:
		return 0
	}
}

func remoteIDs(msg *domain.Message) []string {
	var ids []string
	if id := strings.TrimSpace(msg.ResourceID); id != "" {
		ids = append(ids, id)
	}
	data := normalization.MapFromPayload(msg.Data)
	if id := normalization.AsString(data["id"]); id != "" && !slices.Contains(ids, id) {
		ids = append(ids, id)
	}
	for _, id := range normalization.AsStringSlice(data["ids"]) {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}
