package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"storeAdmin/internal/modules/dashboard/application/port"
	"storeAdmin/internal/modules/dashboard/domain"
	"storeAdmin/internal/shared/auth"
	"storeAdmin/internal/shared/httputil"
)

// MinPasswordLength is enforced on registration.
const MinPasswordLength = 6

// SessionCloser releases per-session resources on sign-out.
type SessionCloser interface {
	Unmount(session auth.Session)
}

// SignInResult is a validated session ready to be stored in the cookie.
type SignInResult struct {
	Session auth.Session
	Auth    port.AuthSession
}

// AuthUseCase signs users in and out through the identity service.
type AuthUseCase struct {
	identity  port.Identity
	validator auth.TokenValidator
	sessions  *SessionStore
	closers   []SessionCloser
}

func NewAuthUseCase(identity port.Identity, validator auth.TokenValidator, sessions *SessionStore, closers ...SessionCloser) *AuthUseCase {
	return &AuthUseCase{identity: identity, validator: validator, sessions: sessions, closers: closers}
}

// SignIn exchanges email and password for an access token and validates it locally.
func (uc *AuthUseCase) SignIn(ctx context.Context, credentials port.Credentials) (SignInResult, error) {
	credentials.Email = strings.TrimSpace(credentials.Email)
	if err := validateCredentials(credentials, 1); err != nil {
		return SignInResult{}, err
	}
	issued, err := uc.identity.SignIn(ctx, credentials)
	if err != nil {
		return SignInResult{}, fmt.Errorf("sign in: %w", err)
	}
	return uc.establish(issued)
}

// Register creates an account and signs it in.
func (uc *AuthUseCase) Register(ctx context.Context, registration port.Registration) (SignInResult, error) {
	registration.Email = strings.TrimSpace(registration.Email)
	registration.DisplayName = strings.TrimSpace(registration.DisplayName)
	if err := validateCredentials(registration.Credentials, MinPasswordLength); err != nil {
		return SignInResult{}, err
	}
	issued, err := uc.identity.SignUp(ctx, registration)
	if err != nil {
		return SignInResult{}, fmt.Errorf("register: %w", err)
	}
	return uc.establish(issued)
}

// SignOut discards every view and the state of the session.
func (uc *AuthUseCase) SignOut(session auth.Session) {
	for _, closer := range uc.closers {
		closer.Unmount(session)
	}
	uc.sessions.Forget(session.ID())
	slog.Info("session signed out", slog.String("sessionId", session.ID()), slog.String("userId", session.UserID()))
}

// State returns the session's application state.
func (uc *AuthUseCase) State(session auth.Session) domain.AppState {
	return uc.sessions.Get(session.ID())
}

func (uc *AuthUseCase) establish(issued port.AuthSession) (SignInResult, error) {
	claims, err := uc.validator.Validate(issued.AccessToken)
	if err != nil {
		return SignInResult{}, fmt.Errorf("validate issued token: %w", err)
	}
	session := auth.Session{Token: issued.AccessToken, Claims: claims}
	uc.sessions.Update(session.ID(), func(state *domain.AppState) {
		if state.Profile.Email == "" {
			state.Profile.Email = claims.Email
		}
		if state.Profile.DisplayName == "" {
			state.Profile.DisplayName = claims.DisplayName()
		}
	})
	slog.Info("session signed in", slog.String("sessionId", session.ID()), slog.String("userId", session.UserID()))
	return SignInResult{Session: session, Auth: issued}, nil
}

func validateCredentials(credentials port.Credentials, minPassword int) error {
	errs := httputil.NewValidationError()
	if credentials.Email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(credentials.Email); err != nil {
		errs.Add("email", "Email is not valid")
	}
	if credentials.Password == "" {
		errs.Add("password", "Password is required")
	} else if len(credentials.Password) < minPassword {
		errs.Add("password", fmt.Sprintf("Password must be at least %d characters", minPassword))
	}
	return errs.OrNil()
}
