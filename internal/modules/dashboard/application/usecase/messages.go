package usecase

import (
	"context"
	"fmt"
	"strings"

	"storeAdmin/internal/modules/dashboard/application/port"
	"storeAdmin/internal/modules/dashboard/domain"
	messages "storeAdmin/internal/modules/messages/domain"
	"storeAdmin/internal/shared/auth"
	"storeAdmin/internal/shared/listengine"
)

// MessagesUseCase drives the inbox view.
type MessagesUseCase struct {
	listView[messages.Message]
	backend  port.Backend
	sessions *SessionStore
	notify   *BroadcastUseCase
}

func NewMessagesUseCase(backend port.Backend, sessions *SessionStore, notify *BroadcastUseCase, pageSize int) *MessagesUseCase {
	return &MessagesUseCase{
		listView: listView[messages.Message]{store: NewViewStore(domain.ViewMessages, messages.Schema(), pageSize)},
		backend:  backend,
		sessions: sessions,
		notify:   notify,
	}
}

// Mount fetches the messages and (re)loads the session's view.
func (uc *MessagesUseCase) Mount(ctx context.Context, session auth.Session) (listengine.Page[messages.Message], error) {
	items, err := uc.backend.ListMessages(ctx, session.Token)
	if err != nil {
		uc.notify.Failure(ctx, session.ID(), "Failed to load messages", err)
		return listengine.Page[messages.Message]{}, fmt.Errorf("list messages: %w", err)
	}
	return uc.store.Mount(session.ID(), items), nil
}

// UnreadCount counts the unread messages of the session's inbox.
func (uc *MessagesUseCase) UnreadCount(session auth.Session) (int, error) {
	count := 0
	err := uc.store.With(session.ID(), func(engine *listengine.Engine[messages.Message]) error {
		count = messages.UnreadCount(engine.Records())
		return nil
	})
	return count, err
}

// Open shows a message, marking it read remotely first when it is unread.
func (uc *MessagesUseCase) Open(ctx context.Context, session auth.Session, id string) (messages.Message, error) {
	message, err := uc.find(session, id)
	if err != nil {
		return messages.Message{}, err
	}
	if !message.Read {
		if err := uc.backend.MarkMessageRead(ctx, session.Token, message.ID); err != nil {
			uc.notify.Failure(ctx, session.ID(), "Failed to mark message as read", err)
			return messages.Message{}, fmt.Errorf("mark message %s read: %w", message.ID, err)
		}
		message = messages.MarkRead(message)
		_ = uc.store.With(session.ID(), func(engine *listengine.Engine[messages.Message]) error {
			engine.Update(message.ID, messages.MarkRead)
			return nil
		})
		uc.notify.ViewChanged(ctx, session.ID(), domain.ViewChange{View: domain.ViewMessages, Reason: domain.ActionRead, IDs: []string{message.ID}})
	}
	uc.sessions.Update(session.ID(), func(state *domain.AppState) {
		state.OpenMessageID = message.ID
	})
	return message, nil
}

// Close returns to the inbox list.
func (uc *MessagesUseCase) Close(session auth.Session) {
	uc.sessions.Update(session.ID(), func(state *domain.AppState) {
		state.OpenMessageID = ""
	})
}

// Delete removes one message remotely and from the view, closing it when it was open.
func (uc *MessagesUseCase) Delete(ctx context.Context, session auth.Session, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNothingSelected
	}
	if err := uc.backend.DeleteMessage(ctx, session.Token, id); err != nil {
		uc.notify.Failure(ctx, session.ID(), "Failed to delete message", err)
		return fmt.Errorf("delete message %s: %w", id, err)
	}
	remaining := uc.remove(session, id)
	uc.sessions.Update(session.ID(), func(state *domain.AppState) {
		if state.OpenMessageID == id {
			state.OpenMessageID = ""
		}
	})
	uc.notify.Success(ctx, session.ID(), "Message deleted successfully")
	uc.notify.ViewChanged(ctx, session.ID(), domain.ViewChange{View: domain.ViewMessages, Reason: domain.ActionDeleted, IDs: []string{id}, TotalItems: remaining})
	return nil
}

// ApplyChange applies a backend change event to every mounted inbox.
func (uc *MessagesUseCase) ApplyChange(_ context.Context, msg *domain.Message) int {
	return applyRemoteChange(uc.store, msg, messages.NormalizeMessage)
}
