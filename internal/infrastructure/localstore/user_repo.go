// Package localstore implements the user and session repositories over
// the key-value storage port. The whole user list lives under one key
// and the current session under another, so existing stores stay readable.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/shopglow/storefront/internal/domain"
	"github.com/shopglow/storefront/internal/storage"
)

const usersKey = "registeredUsers"

type UserRepository struct {
	// mu serializes read-modify-write cycles on the user list; the
	// storage port only offers whole-value swaps.
	mu    sync.Mutex
	store storage.Store
}

func NewUserRepository(store storage.Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.UserAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}

func (r *UserRepository) Create(ctx context.Context, account *domain.UserAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Email == account.Email {
			return domain.ErrDuplicateEmail
		}
	}

	users = append(users, *account)
	return r.save(ctx, users)
}

func (r *UserRepository) List(ctx context.Context) ([]domain.UserAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *UserRepository) load(ctx context.Context) ([]domain.UserAccount, error) {
	raw, err := r.store.Get(ctx, usersKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user list: %w", err)
	}

	var users []domain.UserAccount
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("decode user list: %w", err)
	}
	return users, nil
}

func (r *UserRepository) save(ctx context.Context, users []domain.UserAccount) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode user list: %w", err)
	}
	if err := r.store.Set(ctx, usersKey, string(raw)); err != nil {
		return fmt.Errorf("save user list: %w", err)
	}
	return nil
}
