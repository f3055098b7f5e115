package usecase

import (
	"context"
	"log/slog"
	"time"

	"storeAdmin/internal/modules/dashboard/application/port"
	"storeAdmin/internal/modules/dashboard/domain"
)

// BroadcastUseCase pushes toasts and view changes to websocket clients. A nil broadcaster
// turns every call into a no-op.
type BroadcastUseCase struct {
	broadcaster port.Broadcaster
	now         func() time.Time
}

func NewBroadcastUseCase(b port.Broadcaster) *BroadcastUseCase {
	return &BroadcastUseCase{broadcaster: b, now: time.Now}
}

func (uc *BroadcastUseCase) Execute(ctx context.Context, msg *domain.Message) {
	if uc == nil || uc.broadcaster == nil || msg == nil {
		return
	}
	uc.broadcaster.Broadcast(ctx, msg)
}

// Toast sends a toast to one session.
func (uc *BroadcastUseCase) Toast(ctx context.Context, sessionID string, toast domain.Toast) {
	if uc == nil {
		return
	}
	uc.Execute(ctx, domain.BuildToastMessage(sessionID, toast, uc.now()))
}

// Success sends a success toast to one session.
func (uc *BroadcastUseCase) Success(ctx context.Context, sessionID, message string) {
	uc.Toast(ctx, sessionID, domain.SuccessToast(message))
}

// Failure logs err and sends an error toast to one session.
func (uc *BroadcastUseCase) Failure(ctx context.Context, sessionID, message string, err error) {
	slog.Warn("dashboard action failed", slog.String("sessionId", sessionID), slog.String("action", message), slog.Any("error", err))
	uc.Toast(ctx, sessionID, domain.ErrorToast(message, err))
}

// ViewChanged announces a changed view. An empty sessionID reaches every client.
func (uc *BroadcastUseCase) ViewChanged(ctx context.Context, sessionID string, change domain.ViewChange) {
	if uc == nil {
		return
	}
	uc.Execute(ctx, domain.BuildViewChangedMessage(sessionID, change, uc.now()))
}
