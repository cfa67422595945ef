package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopglow/storefront/internal/domain"
	"github.com/shopglow/storefront/internal/storage"
)

const sessionKey = "user"

type SessionRepository struct {
	store storage.Store
}

func NewSessionRepository(store storage.Store) *SessionRepository {
	return &SessionRepository{store: store}
}

func (r *SessionRepository) Current(ctx context.Context) (*domain.UserAccount, error) {
	raw, err := r.store.Get(ctx, sessionKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, domain.ErrNotAuthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var account domain.UserAccount
	if err := json.Unmarshal([]byte(raw), &account); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &account, nil
}

func (r *SessionRepository) Save(ctx context.Context, account *domain.UserAccount) error {
	raw, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.store.Set(ctx, sessionKey, string(raw)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
