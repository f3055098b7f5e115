package usecase

import (
	"bytes"
	"context"
	"fmt"

	"storeAdmin/internal/modules/dashboard/application/port"
	"storeAdmin/internal/modules/dashboard/domain"
	newsletter "storeAdmin/internal/modules/newsletter/domain"
	"storeAdmin/internal/shared/auth"
	"storeAdmin/internal/shared/listengine"
)

// NewsletterUseCase drives the subscribers view and its CSV export.
type NewsletterUseCase struct {
	listView[newsletter.Subscriber]
	backend port.Backend
	notify  *BroadcastUseCase
}

func NewNewsletterUseCase(backend port.Backend, notify *BroadcastUseCase, pageSize int) *NewsletterUseCase {
	return &NewsletterUseCase{
		listView: listView[newsletter.Subscriber]{store: NewViewStore(domain.ViewNewsletter, newsletter.Schema(), pageSize)},
		backend:  backend,
		notify:   notify,
	}
}

// Mount fetches the subscribers and (re)loads the session's view.
func (uc *NewsletterUseCase) Mount(ctx context.Context, session auth.Session) (listengine.Page[newsletter.Subscriber], error) {
	items, err := uc.backend.ListSubscribers(ctx, session.Token)
	if err != nil {
		uc.notify.Failure(ctx, session.ID(), "Failed to load subscribers", err)
		return listengine.Page[newsletter.Subscriber]{}, fmt.Errorf("list subscribers: %w", err)
	}
	return uc.store.Mount(session.ID(), items), nil
}

// ToggleSelectAllFiltered selects every subscriber matching the current search and status,
// or deselects them when all already are.
func (uc *NewsletterUseCase) ToggleSelectAllFiltered(session auth.Session) (listengine.Page[newsletter.Subscriber], error) {
	return uc.store.Page(session.ID(), func(engine *listengine.Engine[newsletter.Subscriber]) {
		engine.ToggleSelectAllVisible()
	})
}

// Export writes the selected subscribers as CSV, or every filtered subscriber when nothing
// is selected.
func (uc *NewsletterUseCase) Export(ctx context.Context, session auth.Session) ([]byte, int, error) {
	var rows []newsletter.Subscriber
	err := uc.store.With(session.ID(), func(engine *listengine.Engine[newsletter.Subscriber]) error {
		var err error
		rows, err = newsletter.ExportRows(engine.SelectedRecords(), engine.Visible())
		return err
	})
	if err != nil {
		uc.notify.Failure(ctx, session.ID(), "Failed to export subscribers", err)
		return nil, 0, err
	}
	var buf bytes.Buffer
	if err := newsletter.WriteCSV(&buf, rows); err != nil {
		uc.notify.Failure(ctx, session.ID(), "Failed to export subscribers", err)
		return nil, 0, fmt.Errorf("write subscribers csv: %w", err)
	}
	uc.notify.Success(ctx, session.ID(), fmt.Sprintf("Exported %d email(s)", len(rows)))
	return buf.Bytes(), len(rows), nil
}

// ApplyChange applies a backend change event to every mounted newsletter view.
func (uc *NewsletterUseCase) ApplyChange(_ context.Context, msg *domain.Message) int {
	return applyRemoteChange(uc.store, msg, newsletter.NormalizeSubscriber)
}
