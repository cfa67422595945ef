package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopglow/storefront/internal/domain"
	"github.com/shopglow/storefront/internal/infrastructure/localstore"
	"github.com/shopglow/storefront/internal/storage"
	"github.com/shopglow/storefront/internal/usecase"
)

// ---- fakes ----

type fakeUserRepo struct {
	findByEmail func(ctx context.Context, email string) (*domain.UserAccount, error)
	create      func(ctx context.Context, account *domain.UserAccount) error
	list        func(ctx context.Context) ([]domain.UserAccount, error)
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.UserAccount, error) {
	return r.findByEmail(ctx, email)
}

func (r *fakeUserRepo) Create(ctx context.Context, account *domain.UserAccount) error {
	return r.create(ctx, account)
}

func (r *fakeUserRepo) List(ctx context.Context) ([]domain.UserAccount, error) {
	return r.list(ctx)
}

type fakeSessionRepo struct {
	current func(ctx context.Context) (*domain.UserAccount, error)
	save    func(ctx context.Context, account *domain.UserAccount) error
	clear   func(ctx context.Context) error
}

func (r *fakeSessionRepo) Current(ctx context.Context) (*domain.UserAccount, error) {
	return r.current(ctx)
}

func (r *fakeSessionRepo) Save(ctx context.Context, account *domain.UserAccount) error {
	return r.save(ctx, account)
}

func (r *fakeSessionRepo) Clear(ctx context.Context) error {
	return r.clear(ctx)
}

// ---- helpers ----

const testJWTKey = "test-jwt-secret-at-least-32-chars!!"

func newUsecase(users *fakeUserRepo, sessions *fakeSessionRepo) *usecase.AuthUsecase {
	return usecase.NewAuthUsecase(users, sessions, []byte(testJWTKey))
}

// realUsecase wires the usecase over an in-memory store, for the
// end-to-end register/login scenarios.
func realUsecase() *usecase.AuthUsecase {
	store := storage.NewMemoryStore()
	return usecase.NewAuthUsecase(
		localstore.NewUserRepository(store),
		localstore.NewSessionRepository(store),
		[]byte(testJWTKey),
	)
}

// ---- Register ----

func TestRegister_AssignsIDAndOpaqueToken(t *testing.T) {
	var created *domain.UserAccount
	users := &fakeUserRepo{
		create: func(_ context.Context, account *domain.UserAccount) error {
			created = account
			return nil
		},
	}
	sessions := &fakeSessionRepo{
		save: func(_ context.Context, _ *domain.UserAccount) error { return nil },
	}

	account, token, err := newUsecase(users, sessions).Register(context.Background(), usecase.RegisterInput{
		Name: "A", Email: "a@x.com", Password: "pw1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created == nil || created.ID == "" {
		t.Fatal("account was not created with an id")
	}
	if account.Token == "" {
		t.Error("account token should be set")
	}
	if token == "" {
		t.Error("signed session token should be returned")
	}
}

func TestRegister_PersistsUserListThenSession(t *testing.T) {
	var order []string
	users := &fakeUserRepo{
		create: func(_ context.Context, _ *domain.UserAccount) error {
			order = append(order, "users")
			return nil
		},
	}
	sessions := &fakeSessionRepo{
		save: func(_ context.Context, _ *domain.UserAccount) error {
			order = append(order, "session")
			return nil
		},
	}

	if _, _, err := newUsecase(users, sessions).Register(context.Background(), usecase.RegisterInput{
		Name: "A", Email: "a@x.com", Password: "pw1",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(order) != 2 || order[0] != "users" || order[1] != "session" {
		t.Errorf("write order = %v, want [users session]", order)
	}
}

func TestRegister_DuplicateEmail_Propagates(t *testing.T) {
	users := &fakeUserRepo{
		create: func(_ context.Context, _ *domain.UserAccount) error {
			return domain.ErrDuplicateEmail
		},
	}
	sessions := &fakeSessionRepo{
		save: func(_ context.Context, _ *domain.UserAccount) error {
			t.Error("session must not be saved on duplicate email")
			return nil
		},
	}

	_, _, err := newUsecase(users, sessions).Register(context.Background(), usecase.RegisterInput{
		Name: "A", Email: "a@x.com", Password: "pw2",
	})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Errorf("err = %v, want ErrDuplicateEmail", err)
	}
}

func TestRegister_ReturnsValidJWT(t *testing.T) {
	users := &fakeUserRepo{
		create: func(_ context.Context, _ *domain.UserAccount) error { return nil },
	}
	sessions := &fakeSessionRepo{
		save: func(_ context.Context, _ *domain.UserAccount) error { return nil },
	}

	account, signed, err := newUsecase(users, sessions).Register(context.Background(), usecase.RegisterInput{
		Name: "A", Email: "a@x.com", Password: "pw1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, parseErr := jwt.Parse(signed, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected method")
		}
		return []byte(testJWTKey), nil
	})
	if parseErr != nil || !token.Valid {
		t.Fatalf("returned JWT is invalid: %v", parseErr)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("could not cast claims")
	}
	if claims["sub"] != account.ID {
		t.Errorf("sub = %v, want %q", claims["sub"], account.ID)
	}
	if claims["email"] != "a@x.com" {
		t.Errorf("email = %v", claims["email"])
	}
}

// ---- Login ----

func TestLogin_UnknownEmailAndWrongPassword_SameError(t *testing.T) {
	stored := &domain.UserAccount{ID: "1", Email: "a@x.com", Password: "right"}
	users := &fakeUserRepo{
		findByEmail: func(_ context.Context, email string) (*domain.UserAccount, error) {
			if email == stored.Email {
				return stored, nil
			}
			return nil, domain.ErrInvalidCredentials
		},
	}
	sessions := &fakeSessionRepo{
		save: func(_ context.Context, _ *domain.UserAccount) error { return nil },
	}
	uc := newUsecase(users, sessions)

	_, _, unknownErr := uc.Login(context.Background(), "nobody@x.com", "right")
	_, _, wrongErr := uc.Login(context.Background(), "a@x.com", "wrong")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v", unknownErr)
	}
	if !errors.Is(wrongErr, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Error("both failures must be indistinguishable")
	}
}

func TestLogin_PasswordIsCaseSensitive(t *testing.T) {
	stored := &domain.UserAccount{ID: "1", Email: "a@x.com", Password: "Secret"}
	users := &fakeUserRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.UserAccount, error) {
			return stored, nil
		},
	}
	sessions := &fakeSessionRepo{
		save: func(_ context.Context, _ *domain.UserAccount) error { return nil },
	}

	_, _, err := newUsecase(users, sessions).Login(context.Background(), "a@x.com", "secret")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_Success_SavesSession(t *testing.T) {
	stored := &domain.UserAccount{ID: "1", Email: "a@x.com", Password: "pw1"}
	var saved *domain.UserAccount
	users := &fakeUserRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.UserAccount, error) {
			return stored, nil
		},
	}
	sessions := &fakeSessionRepo{
		save: func(_ context.Context, account *domain.UserAccount) error {
			saved = account
			return nil
		},
	}

	account, token, err := newUsecase(users, sessions).Login(context.Background(), "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.ID != "1" || token == "" {
		t.Errorf("account = %+v, token = %q", account, token)
	}
	if saved == nil || saved.ID != "1" {
		t.Error("session was not persisted")
	}
}

// ---- Logout ----

func TestLogout_ClearsSessionOnly(t *testing.T) {
	cleared := false
	users := &fakeUserRepo{}
	sessions := &fakeSessionRepo{
		clear: func(_ context.Context) error {
			cleared = true
			return nil
		},
	}

	if err := newUsecase(users, sessions).Logout(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cleared {
		t.Error("session was not cleared")
	}
}

// ---- end-to-end scenario over the real repositories ----

func TestScenario_RegisterLoginLifecycle(t *testing.T) {
	ctx := context.Background()
	uc := realUsecase()

	if _, _, err := uc.Register(ctx, usecase.RegisterInput{Name: "A", Email: "a@x.com", Password: "pw1"}); err != nil {
		t.Fatalf("first register: %v", err)
	}

	if _, _, err := uc.Register(ctx, usecase.RegisterInput{Name: "B", Email: "a@x.com", Password: "pw2"}); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Errorf("second register err = %v, want ErrDuplicateEmail", err)
	}

	if _, _, err := uc.Login(ctx, "a@x.com", "pw1"); err != nil {
		t.Errorf("login with correct password: %v", err)
	}

	if _, _, err := uc.Login(ctx, "a@x.com", "pw2"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("login with wrong password err = %v, want ErrInvalidCredentials", err)
	}

	current, err := uc.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if current.Email != "a@x.com" {
		t.Errorf("current user = %+v", current)
	}

	if err := uc.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := uc.CurrentUser(ctx); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Errorf("after logout err = %v, want ErrNotAuthenticated", err)
	}

	// logout must not touch the user list
	if _, _, err := uc.Login(ctx, "a@x.com", "pw1"); err != nil {
		t.Errorf("login after logout: %v", err)
	}
}
