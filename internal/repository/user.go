package repository

import (
	"context"

	"github.com/shopglow/storefront/internal/domain"
)

// UserRepository is the persisted registered-user list, the system of
// record for registration and login checks.
type UserRepository interface {
	// FindByEmail matches exactly, case-sensitive as entered.
	// Returns domain.ErrInvalidCredentials when no account matches.
	FindByEmail(ctx context.Context, email string) (*domain.UserAccount, error)
	// Create appends the account. Returns domain.ErrDuplicateEmail when
	// the email already exists.
	Create(ctx context.Context, account *domain.UserAccount) error
	List(ctx context.Context) ([]domain.UserAccount, error)
}

// SessionRepository holds the single current session, surviving restarts.
type SessionRepository interface {
	// Current returns the persisted session, or domain.ErrNotAuthenticated.
	Current(ctx context.Context) (*domain.UserAccount, error)
	Save(ctx context.Context, account *domain.UserAccount) error
	// Clear removes the session. Clearing an anonymous session is a no-op.
	Clear(ctx context.Context) error
}
