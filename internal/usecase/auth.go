package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopglow/storefront/internal/domain"
	"github.com/shopglow/storefront/internal/repository"
)

const defaultJWTTTL = 24 * time.Hour

type AuthUsecase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	jwtKey   []byte
	jwtTTL   time.Duration
}

func NewAuthUsecase(users repository.UserRepository, sessions repository.SessionRepository, jwtKey []byte) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		sessions: sessions,
		jwtKey:   jwtKey,
		jwtTTL:   defaultJWTTTL,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates an account unless the email is already taken
// (exact-match, case-sensitive as entered). On success the account is
// appended to the persisted user list, made the current session, and a
// signed bearer token is returned alongside it.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (*domain.UserAccount, string, error) {
	account := &domain.UserAccount{
		ID:        strconv.FormatInt(time.Now().UnixMilli(), 10),
		Name:      input.Name,
		Email:     input.Email,
		Password:  input.Password,
		Token:     opaqueToken(),
		CreatedAt: time.Now(),
	}

	if err := u.users.Create(ctx, account); err != nil {
		return nil, "", fmt.Errorf("create account: %w", err)
	}
	if err := u.sessions.Save(ctx, account); err != nil {
		return nil, "", fmt.Errorf("save session: %w", err)
	}

	signed, err := u.signJWT(account)
	if err != nil {
		return nil, "", err
	}
	return account, signed, nil
}

// Login matches email and password against the persisted user list. An
// unknown email and a wrong password both surface as
// domain.ErrInvalidCredentials, so neither leaks which field was wrong.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (*domain.UserAccount, string, error) {
	account, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}
	if !credentialsMatch(account.Password, password) {
		return nil, "", domain.ErrInvalidCredentials
	}

	if err := u.sessions.Save(ctx, account); err != nil {
		return nil, "", fmt.Errorf("save session: %w", err)
	}

	signed, err := u.signJWT(account)
	if err != nil {
		return nil, "", err
	}
	return account, signed, nil
}

// Logout clears the persisted session. The user list is untouched.
func (u *AuthUsecase) Logout(ctx context.Context) error {
	if err := u.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// CurrentUser returns the persisted session, or domain.ErrNotAuthenticated.
func (u *AuthUsecase) CurrentUser(ctx context.Context) (*domain.UserAccount, error) {
	return u.sessions.Current(ctx)
}

// credentialsMatch compares the stored password with the submitted one.
// Stored passwords are currently plaintext; keeping the comparison behind
// this one function lets a hashed scheme replace it without touching any
// call site.
func credentialsMatch(stored, submitted string) bool {
	return stored == submitted
}

// opaqueToken is the inert random string every account carries. It is
// never validated anywhere; the signed JWT is what authenticates API calls.
func opaqueToken() string {
	raw := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		// crypto/rand only fails when the platform source is broken
		panic(fmt.Sprintf("read random: %v", err))
	}
	return hex.EncodeToString(raw)
}

func (u *AuthUsecase) signJWT(account *domain.UserAccount) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   account.ID,
		"email": account.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(u.jwtTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(u.jwtKey)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}
