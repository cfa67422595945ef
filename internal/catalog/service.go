package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopglow/storefront/internal/domain"
	"github.com/shopglow/storefront/internal/metrics"
)

// fetcher is the subset of Client the service needs. Defined here so
// tests can inject a fake upstream.
type fetcher interface {
	Products(ctx context.Context, category string) ([]domain.Product, error)
	Featured(ctx context.Context, limit int) ([]domain.Product, error)
	ProductByID(ctx context.Context, id int) (*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

// Service owns one cache per fetch scope and routes every fetch through
// it, so completions always pass the sequence guard regardless of how
// many requests overlap.
type Service struct {
	client        fetcher
	logger        *slog.Logger
	featuredLimit int

	featured     Cache[[]domain.Product]
	products     Cache[[]domain.Product]
	product      Cache[*domain.Product]
	categories   Cache[[]string]
	searchSource Cache[[]domain.Product]
}

func NewService(client fetcher, featuredLimit int, logger *slog.Logger) *Service {
	return &Service{
		client:        client,
		logger:        logger.With("component", "catalog"),
		featuredLimit: featuredLimit,
	}
}

// Featured fetches the home-page selection through its scope cache and
// returns the resulting snapshot. On failure the previous payload is
// retained and reported stale.
func (s *Service) Featured(ctx context.Context) Snapshot[[]domain.Product] {
	seq := s.featured.Begin()
	fetch(s, "featured", seq, &s.featured, func() ([]domain.Product, error) {
		return s.client.Featured(ctx, s.featuredLimit)
	})
	return s.featured.Snapshot()
}

// Products fetches the product list, optionally restricted to one
// category. All category views share the single products scope; switching
// category replaces the cached list rather than caching per category.
func (s *Service) Products(ctx context.Context, category string) Snapshot[[]domain.Product] {
	seq := s.products.Begin()
	fetch(s, "products", seq, &s.products, func() ([]domain.Product, error) {
		return s.client.Products(ctx, category)
	})
	return s.products.Snapshot()
}

// Product fetches one product into the detail scope. A missing product
// is reported via domain.ErrProductNotFound, distinct from a fetch
// failure: the scope ends up successfully loaded with an absent payload.
func (s *Service) Product(ctx context.Context, id int) (Snapshot[*domain.Product], error) {
	seq := s.product.Begin()
	start := time.Now()

	p, err := s.client.ProductByID(ctx, id)
	metrics.CatalogFetchDuration.WithLabelValues("product").Observe(time.Since(start).Seconds())

	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		metrics.CatalogFetchesTotal.WithLabelValues("product", "not_found").Inc()
		s.product.Succeed(seq, nil)
		return s.product.Snapshot(), domain.ErrProductNotFound
	case err != nil:
		metrics.CatalogFetchesTotal.WithLabelValues("product", "error").Inc()
		s.logger.Warn("product fetch failed", "product_id", id, "error", err)
		s.product.Fail(seq, err.Error())
		return s.product.Snapshot(), err
	default:
		metrics.CatalogFetchesTotal.WithLabelValues("product", "success").Inc()
		s.product.Succeed(seq, p)
		return s.product.Snapshot(), nil
	}
}

// ClearProduct resets the detail scope before navigation so a previous
// product never flashes while the next one loads.
func (s *Service) ClearProduct() {
	s.product.Clear()
}

// Categories fetches the category names through their scope cache.
func (s *Service) Categories(ctx context.Context) Snapshot[[]string] {
	seq := s.categories.Begin()
	fetch(s, "categories", seq, &s.categories, func() ([]string, error) {
		return s.client.Categories(ctx)
	})
	return s.categories.Snapshot()
}

// SearchSource returns the product list the search filter runs over. It
// is fetched at most once: a populated source is returned as-is, even if
// old. The cron refresher is the only thing that re-primes it.
func (s *Service) SearchSource(ctx context.Context) Snapshot[[]domain.Product] {
	if snap := s.searchSource.Snapshot(); snap.Populated {
		return snap
	}

	seq := s.searchSource.Begin()
	fetch(s, "search_source", seq, &s.searchSource, func() ([]domain.Product, error) {
		return s.client.Products(ctx, "")
	})
	return s.searchSource.Snapshot()
}

// RefreshSearchSource bypasses the fetch-once guard.
func (s *Service) RefreshSearchSource(ctx context.Context) {
	seq := s.searchSource.Begin()
	fetch(s, "search_source", seq, &s.searchSource, func() ([]domain.Product, error) {
		return s.client.Products(ctx, "")
	})
}

func fetch[T any](s *Service, scope string, seq uint64, cache *Cache[T], do func() (T, error)) {
	start := time.Now()
	value, err := do()
	metrics.CatalogFetchDuration.WithLabelValues(scope).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.CatalogFetchesTotal.WithLabelValues(scope, "error").Inc()
		s.logger.Warn("catalog fetch failed", "scope", scope, "error", err)
		cache.Fail(seq, err.Error())
		return
	}
	metrics.CatalogFetchesTotal.WithLabelValues(scope, "success").Inc()
	if !cache.Succeed(seq, value) {
		s.logger.Debug("dropped stale catalog response", "scope", scope, "seq", seq)
	}
}
