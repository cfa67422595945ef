// Package catalog talks to the upstream product API and caches the most
// recent result per fetch scope.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopglow/storefront/internal/domain"
)

const defaultTimeout = 10 * time.Second

// Client fetches product records from the remote catalog service.
type Client struct {
	base string
	http *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base: baseURL,
		http: &http.Client{Timeout: timeout},
	}
}

// Products returns the full product list, or the list for one category
// when category is non-empty.
func (c *Client) Products(ctx context.Context, category string) ([]domain.Product, error) {
	path := "/products"
	if category != "" {
		path = "/products/category/" + url.PathEscape(category)
	}

	var products []domain.Product
	if err := c.getJSON(ctx, path, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Featured returns the first limit products, the home-page selection.
func (c *Client) Featured(ctx context.Context, limit int) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.getJSON(ctx, "/products?limit="+strconv.Itoa(limit), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductByID returns one product. The upstream answers a missing ID
// with a null body and status 200, which maps to ErrProductNotFound —
// distinct from a fetch failure.
func (c *Client) ProductByID(ctx context.Context, id int) (*domain.Product, error) {
	var product *domain.Product
	if err := c.getJSON(ctx, "/products/"+strconv.Itoa(id), &product); err != nil {
		return nil, err
	}
	if product == nil || product.ID == 0 {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// Categories returns the category names.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.getJSON(ctx, "/products/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Ping checks that the upstream answers at all.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/products/categories", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalog upstream: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 500 {
		return fmt.Errorf("catalog upstream: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("fetch %s: status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
