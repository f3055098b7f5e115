package port

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrIdentityFailure    = errors.New("identity service request failed")
)

// Credentials identify an account at the identity service.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration creates a new account.
type Registration struct {
	Credentials
	DisplayName string `json:"display_name,omitempty"`
}

// AuthSession is what the identity service returns after a successful sign-in.
type AuthSession struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
}

// Identity is the third-party authentication service.
type Identity interface {
	SignIn(ctx context.Context, credentials Credentials) (AuthSession, error)
	SignUp(ctx context.Context, registration Registration) (AuthSession, error)
}
