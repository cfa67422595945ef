package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopglow/storefront/internal/alert"
	"github.com/shopglow/storefront/internal/metrics"
	"github.com/shopglow/storefront/internal/usecase"
)

type contactSender interface {
	Send(ctx context.Context, input usecase.ContactInput) error
}

type ContactHandler struct {
	contact contactSender
	alerts  *alert.Notifier
	logger  *slog.Logger
}

func NewContactHandler(contact contactSender, alerts *alert.Notifier, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		contact: contact,
		alerts:  alerts,
		logger:  logger.With("component", "contact_handler"),
	}
}

type contactRequest struct {
	Name    string `json:"name"    binding:"required"`
	Email   string `json:"email"   binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// POST /contact
// Fire and forget toward the relay: one attempt, outcome surfaced as an
// alert either way.
func (h *ContactHandler) Send(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.contact.Send(c.Request.Context(), usecase.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		metrics.ContactMessagesTotal.WithLabelValues("error").Inc()
		h.logger.Error("contact relay", "error", err)
		h.alerts.Show(errContactFailed, alert.KindError)
		metrics.AlertsShownTotal.WithLabelValues(string(alert.KindError)).Inc()
		c.JSON(http.StatusBadGateway, gin.H{"error": errContactFailed})
		return
	}

	metrics.ContactMessagesTotal.WithLabelValues("success").Inc()
	h.alerts.Show("Message sent successfully!", alert.KindSuccess)
	metrics.AlertsShownTotal.WithLabelValues(string(alert.KindSuccess)).Inc()
	c.Status(http.StatusAccepted)
}
