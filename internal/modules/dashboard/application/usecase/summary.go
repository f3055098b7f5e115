package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"storeAdmin/internal/modules/dashboard/application/port"
	"storeAdmin/internal/modules/dashboard/domain"
	inventory "storeAdmin/internal/modules/inventory/domain"
	messages "storeAdmin/internal/modules/messages/domain"
	orders "storeAdmin/internal/modules/orders/domain"
	"storeAdmin/internal/shared/auth"
)

// SummaryUseCase assembles the dashboard page.
type SummaryUseCase struct {
	backend   port.Backend
	charts    func() (domain.Charts, error)
	orders    func() ([]orders.Order, error)
	inventory func() ([]inventory.Item, error)
	now       func() time.Time
}

func NewSummaryUseCase(backend port.Backend) *SummaryUseCase {
	return &SummaryUseCase{
		backend:   backend,
		charts:    domain.LoadCharts,
		orders:    orders.Fixture,
		inventory: inventory.Fixture,
		now:       time.Now,
	}
}

// Execute fetches the counters concurrently. A source that fails is listed in Partial
// instead of failing the page, unless the backend rejected the token.
func (uc *SummaryUseCase) Execute(ctx context.Context, session auth.Session, rawFilter string) (domain.Summary, error) {
	filter, err := domain.ParseTimeFilter(rawFilter)
	if err != nil {
		return domain.Summary{}, err
	}
	charts, err := uc.charts()
	if err != nil {
		return domain.Summary{}, err
	}
	summary := domain.NewSummary(charts, filter)
	now := uc.now()

	var mu sync.Mutex
	partial := func(source string, err error) error {
		if errors.Is(err, port.ErrBackendUnauthorized) {
			return err
		}
		slog.Warn("dashboard source unavailable", slog.String("source", source), slog.Any("error", err))
		mu.Lock()
		summary.Partial = append(summary.Partial, source)
		mu.Unlock()
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := uc.backend.ListProducts(gctx, session.Token)
		if err != nil {
			return partial("products", err)
		}
		outOfStock := 0
		for _, item := range items {
			if !item.InStock() {
				outOfStock++
			}
		}
		mu.Lock()
		summary.Products, summary.OutOfStock = len(items), outOfStock
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		items, err := uc.backend.ListCoupons(gctx, session.Token)
		if err != nil {
			return partial("coupons", err)
		}
		active := 0
		for _, item := range items {
			if item.IsActive && !item.Expired(now) {
				active++
			}
		}
		mu.Lock()
		summary.Coupons = active
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		items, err := uc.backend.ListSubscribers(gctx, session.Token)
		if err != nil {
			return partial("subscribers", err)
		}
		mu.Lock()
		summary.Subscribers = len(items)
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		items, err := uc.backend.ListMessages(gctx, session.Token)
		if err != nil {
			return partial("messages", err)
		}
		mu.Lock()
		summary.UnreadMessages = messages.UnreadCount(items)
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		items, err := uc.orders()
		if err != nil {
			return partial("orders", err)
		}
		mu.Lock()
		summary.Orders, summary.OrderStatuses = len(items), orders.StatusCounts(items)
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		items, err := uc.inventory()
		if err != nil {
			return partial("inventory", err)
		}
		mu.Lock()
		summary.Inventory = inventory.Summarize(items)
		mu.Unlock()
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.Summary{}, err
	}
	sort.Strings(summary.Partial)
	return summary, nil
}
