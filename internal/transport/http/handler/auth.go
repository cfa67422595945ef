package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopglow/storefront/internal/alert"
	"github.com/shopglow/storefront/internal/domain"
	"github.com/shopglow/storefront/internal/metrics"
	"github.com/shopglow/storefront/internal/usecase"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.UserAccount, string, error)
	Login(ctx context.Context, email, password string) (*domain.UserAccount, string, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*domain.UserAccount, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	alerts      *alert.Notifier
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, alerts *alert.Notifier, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		alerts:      alerts,
		logger:      logger.With("component", "auth_handler"),
	}
}

type registerRequest struct {
	Name     string `json:"name"     binding:"required"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type accountResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type sessionResponse struct {
	User  accountResponse `json:"user"`
	Token string          `json:"token"`
}

func toAccountResponse(a *domain.UserAccount) accountResponse {
	return accountResponse{ID: a.ID, Name: a.Name, Email: a.Email, Token: a.Token}
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, token, err := h.authUsecase.Register(c.Request.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			metrics.AuthAttemptsTotal.WithLabelValues("register", "duplicate_email").Inc()
			c.JSON(http.StatusConflict, gin.H{"error": errEmailTaken})
			return
		}
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		h.logger.Error("register", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	h.showAlert("Account created successfully!", alert.KindSuccess)
	c.JSON(http.StatusCreated, sessionResponse{User: toAccountResponse(account), Token: token})
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, token, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid_credentials").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidCredentials})
			return
		}
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		h.logger.Error("login", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	h.showAlert("Logged in successfully!", alert.KindSuccess)
	c.JSON(http.StatusOK, sessionResponse{User: toAccountResponse(account), Token: token})
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authUsecase.Logout(c.Request.Context()); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("logout", "error").Inc()
		h.logger.Error("logout", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	metrics.AuthAttemptsTotal.WithLabelValues("logout", "success").Inc()
	c.Status(http.StatusNoContent)
}

// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	account, err := h.authUsecase.CurrentUser(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": errNotAuthenticated})
			return
		}
		h.logger.Error("current user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	c.JSON(http.StatusOK, toAccountResponse(account))
}

func (h *AuthHandler) showAlert(message string, kind alert.Kind) {
	h.alerts.Show(message, kind)
	metrics.AlertsShownTotal.WithLabelValues(string(kind)).Inc()
}
