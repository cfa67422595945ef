package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopglow/storefront/internal/alert"
)

type AlertHandler struct {
	alerts *alert.Notifier
}

func NewAlertHandler(alerts *alert.Notifier) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// GET /alert
func (h *AlertHandler) Current(c *gin.Context) {
	current, ok := h.alerts.Current()
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, current)
}

// DELETE /alert
func (h *AlertHandler) Dismiss(c *gin.Context) {
	h.alerts.Clear()
	c.Status(http.StatusNoContent)
}
