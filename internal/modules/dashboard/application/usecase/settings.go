package usecase

import (
	"context"
	"fmt"

	"storeAdmin/internal/modules/dashboard/application/port"
	"storeAdmin/internal/modules/dashboard/domain"
	settings "storeAdmin/internal/modules/settings/domain"
	"storeAdmin/internal/shared/auth"
)

// SettingsUseCase reads and saves the account profile.
type SettingsUseCase struct {
	backend  port.Backend
	sessions *SessionStore
	notify   *BroadcastUseCase
}

func NewSettingsUseCase(backend port.Backend, sessions *SessionStore, notify *BroadcastUseCase) *SettingsUseCase {
	return &SettingsUseCase{backend: backend, sessions: sessions, notify: notify}
}

// Get fetches the profile and keeps it in the session state for the header.
func (uc *SettingsUseCase) Get(ctx context.Context, session auth.Session) (settings.AccountSettings, error) {
	profile, err := uc.backend.GetAccountSettings(ctx, session.Token)
	if err != nil {
		uc.notify.Failure(ctx, session.ID(), "Failed to load settings", err)
		return settings.AccountSettings{}, fmt.Errorf("get account settings: %w", err)
	}
	uc.remember(session, profile)
	return profile, nil
}

// Update validates and saves the profile. A backend answer without a profile keeps the
// submitted values and the previous image.
func (uc *SettingsUseCase) Update(ctx context.Context, session auth.Session, update settings.Update) (settings.AccountSettings, error) {
	if err := update.Validate(); err != nil {
		return settings.AccountSettings{}, err
	}
	saved, err := uc.backend.UpdateAccountSettings(ctx, session.Token, update)
	if err != nil {
		uc.notify.Failure(ctx, session.ID(), "Failed to update settings", err)
		return settings.AccountSettings{}, fmt.Errorf("update account settings: %w", err)
	}
	if saved.Email == "" && saved.DisplayName == "" {
		saved = update.Apply(uc.sessions.Get(session.ID()).Profile)
	}
	uc.remember(session, saved)
	uc.notify.Success(ctx, session.ID(), "Settings updated successfully")
	return saved, nil
}

func (uc *SettingsUseCase) remember(session auth.Session, profile settings.AccountSettings) {
	uc.sessions.Update(session.ID(), func(state *domain.AppState) {
		state.Profile = profile
	})
}
