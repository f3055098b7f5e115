package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	coupons "storeAdmin/internal/modules/coupons/domain"
	"storeAdmin/internal/modules/dashboard/application/port"
	"storeAdmin/internal/modules/dashboard/domain"
	"storeAdmin/internal/shared/auth"
	"storeAdmin/internal/shared/listengine"
)

// CouponsUseCase drives the offers view.
type CouponsUseCase struct {
	listView[coupons.Coupon]
	backend  port.Backend
	sessions *SessionStore
	notify   *BroadcastUseCase
}

func NewCouponsUseCase(backend port.Backend, sessions *SessionStore, notify *BroadcastUseCase, pageSize int) *CouponsUseCase {
	return &CouponsUseCase{
		listView: listView[coupons.Coupon]{store: NewViewStore(domain.ViewCoupons, coupons.Schema(), pageSize)},
		backend:  backend,
		sessions: sessions,
		notify:   notify,
	}
}

// Mount fetches the coupons and (re)loads the session's view.
func (uc *CouponsUseCase) Mount(ctx context.Context, session auth.Session) (listengine.Page[coupons.Coupon], error) {
	items, err := uc.backend.ListCoupons(ctx, session.Token)
	if err != nil {
		uc.notify.Failure(ctx, session.ID(), "Failed to load coupons", err)
		return listengine.Page[coupons.Coupon]{}, fmt.Errorf("list coupons: %w", err)
	}
	return uc.store.Mount(session.ID(), items), nil
}

// GenerateCode proposes a random coupon code for the create form.
func (uc *CouponsUseCase) GenerateCode() string {
	return coupons.GenerateCode()
}

// Create validates the form and adds the coupon.
func (uc *CouponsUseCase) Create(ctx context.Context, session auth.Session, form coupons.CouponForm) (*coupons.Coupon, error) {
	request, err := form.Validate()
	if err != nil {
		return nil, err
	}
	created, err := uc.backend.CreateCoupon(ctx, session.Token, request)
	if err != nil {
		uc.notify.Failure(ctx, session.ID(), "Failed to create coupon", err)
		return nil, fmt.Errorf("create coupon: %w", err)
	}
	if created == nil {
		uc.notify.Success(ctx, session.ID(), fmt.Sprintf("Coupon %s created successfully", request.Code))
		if uc.Mounted(session) {
			if _, err := uc.Mount(ctx, session); err != nil {
				slog.Warn("coupons refetch after create failed", slog.String("sessionId", session.ID()), slog.Any("error", err))
			}
		}
		return nil, nil
	}
	uc.notify.Success(ctx, session.ID(), fmt.Sprintf("Coupon %s created successfully (%s)", created.Code, created.Describe(uc.sessions.Get(session.ID()).Currency)))
	uc.upsert(session, *created)
	uc.notify.ViewChanged(ctx, session.ID(), domain.ViewChange{View: domain.ViewCoupons, Reason: domain.ActionCreated, IDs: []string{created.ID}})
	return created, nil
}

// RequestDelete asks for confirmation before coupon id is deleted. The coupon must be in the
// view.
func (uc *CouponsUseCase) RequestDelete(session auth.Session, id string) (domain.PendingDelete, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.PendingDelete{}, ErrNothingSelected
	}
	if _, err := uc.find(session, id); err != nil {
		return domain.PendingDelete{}, err
	}
	return uc.sessions.RequestDelete(session.ID(), domain.ViewCoupons, []string{id}), nil
}

// CancelDelete closes the confirmation without deleting.
func (uc *CouponsUseCase) CancelDelete(session auth.Session) {
	uc.sessions.CancelDelete(session.ID(), domain.ViewCoupons)
}

// ConfirmDelete deletes the pending coupon remotely and then from the view. A second confirm
// finds nothing pending.
func (uc *CouponsUseCase) ConfirmDelete(ctx context.Context, session auth.Session) (string, error) {
	ids, err := uc.sessions.TakePendingDelete(session.ID(), domain.ViewCoupons)
	if err != nil {
		return "", err
	}
	id := ids[0]
	coupon, _ := uc.find(session, id)
	if err := uc.backend.DeleteCoupon(ctx, session.Token, id); err != nil {
		uc.notify.Failure(ctx, session.ID(), "Failed to delete coupon", err)
		return "", fmt.Errorf("delete coupon %s: %w", id, err)
	}
	remaining := uc.remove(session, id)
	message := "Coupon deleted successfully"
	if coupon.Code != "" {
		message = fmt.Sprintf("Coupon %s (%s) deleted successfully", coupon.Code, coupon.Describe(uc.sessions.Get(session.ID()).Currency))
	}
	uc.notify.Success(ctx, session.ID(), message)
	uc.notify.ViewChanged(ctx, session.ID(), domain.ViewChange{View: domain.ViewCoupons, Reason: domain.ActionDeleted, IDs: []string{id}, TotalItems: remaining})
	return id, nil
}

// ApplyChange applies a backend change event to every mounted offers view.
func (uc *CouponsUseCase) ApplyChange(_ context.Context, msg *domain.Message) int {
	return applyRemoteChange(uc.store, msg, coupons.NormalizeCoupon)
}
