package localstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopglow/storefront/internal/domain"
	"github.com/shopglow/storefront/internal/infrastructure/localstore"
	"github.com/shopglow/storefront/internal/storage"
)

func account(id, email string) *domain.UserAccount {
	return &domain.UserAccount{ID: id, Email: email, Password: "pw", Token: "tok"}
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := localstore.NewUserRepository(storage.NewMemoryStore())

	if err := repo.Create(ctx, account("1", "a@x.com")); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.FindByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ID != "1" {
		t.Errorf("id = %q, want 1", got.ID)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := localstore.NewUserRepository(storage.NewMemoryStore())

	repo.Create(ctx, account("1", "a@x.com"))
	err := repo.Create(ctx, account("2", "a@x.com"))
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Errorf("err = %v, want ErrDuplicateEmail", err)
	}
}

func TestUserRepository_EmailMatchIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	repo := localstore.NewUserRepository(storage.NewMemoryStore())

	repo.Create(ctx, account("1", "A@x.com"))

	if _, err := repo.FindByEmail(ctx, "a@x.com"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials (no case folding)", err)
	}
	// and the duplicate check does not fold case either
	if err := repo.Create(ctx, account("2", "a@x.com")); err != nil {
		t.Errorf("create with differently-cased email: %v", err)
	}
}

func TestUserRepository_ListPreservesOrder(t *testing.T) {
	ctx := context.Background()
	repo := localstore.NewUserRepository(storage.NewMemoryStore())

	repo.Create(ctx, account("1", "a@x.com"))
	repo.Create(ctx, account("2", "b@x.com"))

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 || users[0].ID != "1" || users[1].ID != "2" {
		t.Errorf("users = %+v", users)
	}
}

func TestSessionRepository_SaveCurrentClear(t *testing.T) {
	ctx := context.Background()
	repo := localstore.NewSessionRepository(storage.NewMemoryStore())

	if _, err := repo.Current(ctx); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Errorf("fresh store: err = %v, want ErrNotAuthenticated", err)
	}

	if err := repo.Save(ctx, account("1", "a@x.com")); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if got.Email != "a@x.com" {
		t.Errorf("email = %q", got.Email)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := repo.Current(ctx); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Errorf("after clear: err = %v, want ErrNotAuthenticated", err)
	}
}

func TestSessionRepository_SharedStoreWithUsers(t *testing.T) {
	// both repos share one store without clobbering each other's keys
	ctx := context.Background()
	store := storage.NewMemoryStore()
	users := localstore.NewUserRepository(store)
	sessions := localstore.NewSessionRepository(store)

	users.Create(ctx, account("1", "a@x.com"))
	sessions.Save(ctx, account("1", "a@x.com"))
	sessions.Clear(ctx)

	if _, err := users.FindByEmail(ctx, "a@x.com"); err != nil {
		t.Errorf("user list affected by session clear: %v", err)
	}
}
