package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopglow/storefront/internal/cart"
	"github.com/shopglow/storefront/internal/domain"
	"github.com/shopglow/storefront/internal/metrics"
)

type CartHandler struct {
	carts  *cart.Carts
	logger *slog.Logger
}

func NewCartHandler(carts *cart.Carts, logger *slog.Logger) *CartHandler {
	return &CartHandler{carts: carts, logger: logger.With("component", "cart_handler")}
}

type addItemRequest struct {
	ID    int     `json:"id"    binding:"required"`
	Title string  `json:"title" binding:"required"`
	Price float64 `json:"price" binding:"required,gte=0"`
	Image string  `json:"image"`
}

type cartResponse struct {
	Items []cart.Item `json:"items"`
	Total float64     `json:"total"`
}

// GET /cart
func (h *CartHandler) Get(c *gin.Context) {
	h.respond(c, http.StatusOK)
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.ownerCart(c).Add(domain.Product{
		ID:    req.ID,
		Title: req.Title,
		Price: req.Price,
		Image: req.Image,
	})
	metrics.CartOperationsTotal.WithLabelValues("add").Inc()
	h.respond(c, http.StatusCreated)
}

// DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	h.ownerCart(c).Remove(id)
	metrics.CartOperationsTotal.WithLabelValues("remove").Inc()
	h.respond(c, http.StatusOK)
}

// POST /cart/items/:id/increase
func (h *CartHandler) IncreaseItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	h.ownerCart(c).Increase(id)
	metrics.CartOperationsTotal.WithLabelValues("increase").Inc()
	h.respond(c, http.StatusOK)
}

// POST /cart/items/:id/decrease
func (h *CartHandler) DecreaseItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	h.ownerCart(c).Decrease(id)
	metrics.CartOperationsTotal.WithLabelValues("decrease").Inc()
	h.respond(c, http.StatusOK)
}

// DELETE /cart
func (h *CartHandler) Clear(c *gin.Context) {
	h.ownerCart(c).Clear()
	metrics.CartOperationsTotal.WithLabelValues("clear").Inc()
	h.respond(c, http.StatusOK)
}

func (h *CartHandler) ownerCart(c *gin.Context) *cart.Cart {
	return h.carts.ForOwner(c.GetString("cartOwner"))
}

func (h *CartHandler) itemID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item id must be an integer"})
		return 0, false
	}
	return id, true
}

func (h *CartHandler) respond(c *gin.Context, status int) {
	items := h.ownerCart(c).Items()
	c.JSON(status, cartResponse{Items: items, Total: cart.Total(items)})
}
