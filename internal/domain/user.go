package domain

import (
	"errors"
	"time"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrProductNotFound    = errors.New("product not found")
)

// UserAccount is a registered account in the persisted user list.
// The Token is assigned once at creation and is opaque — it is never
// validated anywhere, it only travels with the account record.
type UserAccount struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt"`
}
