// Package search derives a filtered view of a product list from a query
// string.
package search

import (
	"strings"
	"sync"

	"github.com/shopglow/storefront/internal/domain"
)

// Filter returns the products whose title contains query,
// case-insensitively, preserving the order of list. An empty query
// returns the full list.
func Filter(list []domain.Product, query string) []domain.Product {
	q := strings.ToLower(query)
	out := make([]domain.Product, 0, len(list))
	for _, p := range list {
		if strings.Contains(strings.ToLower(p.Title), q) {
			out = append(out, p)
		}
	}
	return out
}

// State holds the current query, the source list, and the filtered
// results. Results are recomputed on every query or source change so
// they can never drift out of sync with either.
type State struct {
	mu      sync.Mutex
	query   string
	source  []domain.Product
	results []domain.Product
}

func NewState() *State {
	return &State{}
}

// SetQuery lower-cases the query, recomputes the results, and returns them.
func (s *State) SetQuery(query string) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query = strings.ToLower(query)
	s.results = Filter(s.source, s.query)
	return s.results
}

// SetSource replaces the source list and recomputes the results against
// the current query.
func (s *State) SetSource(list []domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.source = list
	s.results = Filter(s.source, s.query)
}

// Results returns the current query and filtered results.
func (s *State) Results() (string, []domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query, s.results
}
