package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopglow/storefront/internal/catalog"
	"github.com/shopglow/storefront/internal/domain"
)

// catalogService is the subset of catalog.Service the handler needs.
type catalogService interface {
	Featured(ctx context.Context) catalog.Snapshot[[]domain.Product]
	Products(ctx context.Context, category string) catalog.Snapshot[[]domain.Product]
	Product(ctx context.Context, id int) (catalog.Snapshot[*domain.Product], error)
	Categories(ctx context.Context) catalog.Snapshot[[]string]
}

type CatalogHandler struct {
	service catalogService
	logger  *slog.Logger
}

func NewCatalogHandler(service catalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{service: service, logger: logger.With("component", "catalog_handler")}
}

// listResponse carries a scope's payload together with its cache flags,
// so clients can tell a fresh payload from one retained across a failed
// fetch.
type listResponse[T any] struct {
	Data  T      `json:"data"`
	Error string `json:"error,omitempty"`
	Stale bool   `json:"stale,omitempty"`
}

// GET /featured
func (h *CatalogHandler) Featured(c *gin.Context) {
	snap := h.service.Featured(c.Request.Context())
	writeSnapshot(c, snap)
}

// GET /products?category=
func (h *CatalogHandler) Products(c *gin.Context) {
	snap := h.service.Products(c.Request.Context(), c.Query("category"))
	writeSnapshot(c, snap)
}

// GET /products/:id
func (h *CatalogHandler) ProductByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product id must be an integer"})
		return
	}

	snap, err := h.service.Product(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errProductNotFound})
			return
		}
		c.JSON(http.StatusBadGateway, listResponse[*domain.Product]{
			Data:  snap.Value,
			Error: snap.Err,
			Stale: snap.Stale,
		})
		return
	}
	c.JSON(http.StatusOK, listResponse[*domain.Product]{Data: snap.Value})
}

// GET /categories
func (h *CatalogHandler) Categories(c *gin.Context) {
	snap := h.service.Categories(c.Request.Context())
	writeSnapshot(c, snap)
}

// writeSnapshot maps a scope snapshot to a response: 200 with fresh
// data, 200 with stale data plus the error when an earlier payload is
// retained, 502 when there is nothing to show at all.
func writeSnapshot[T any](c *gin.Context, snap catalog.Snapshot[T]) {
	if snap.Err != "" && !snap.Populated {
		c.JSON(http.StatusBadGateway, listResponse[T]{Error: snap.Err})
		return
	}
	c.JSON(http.StatusOK, listResponse[T]{
		Data:  snap.Value,
		Error: snap.Err,
		Stale: snap.Stale,
	})
}
