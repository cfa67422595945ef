package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopglow/storefront/internal/catalog"
	"github.com/shopglow/storefront/internal/domain"
	"github.com/shopglow/storefront/internal/search"
)

type searchSourcer interface {
	SearchSource(ctx context.Context) catalog.Snapshot[[]domain.Product]
}

type SearchHandler struct {
	service searchSourcer
	state   *search.State
	logger  *slog.Logger
}

func NewSearchHandler(service searchSourcer, state *search.State, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service: service,
		state:   state,
		logger:  logger.With("component", "search_handler"),
	}
}

type searchResponse struct {
	Query   string           `json:"query"`
	Results []domain.Product `json:"results"`
	Error   string           `json:"error,omitempty"`
	Stale   bool             `json:"stale,omitempty"`
}

// GET /search?q=
func (h *SearchHandler) Search(c *gin.Context) {
	snap := h.service.SearchSource(c.Request.Context())
	if snap.Err != "" && !snap.Populated {
		c.JSON(http.StatusBadGateway, searchResponse{Query: c.Query("q"), Error: snap.Err})
		return
	}

	h.state.SetSource(snap.Value)
	results := h.state.SetQuery(c.Query("q"))
	query, _ := h.state.Results()

	c.JSON(http.StatusOK, searchResponse{
		Query:   query,
		Results: results,
		Error:   snap.Err,
		Stale:   snap.Stale,
	})
}
