// Package cart holds a client's selected-products working set. All
// transitions are atomic with respect to the cart's in-memory state; the
// total is always derived, never stored.
package cart

import (
	"sync"

	"github.com/shopglow/storefront/internal/domain"
)

// Item is one cart line. Quantity is always >= 1; a line whose quantity
// would reach zero is removed instead.
type Item struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

// Cart is an ordered collection of items, unique by product ID.
type Cart struct {
	mu    sync.Mutex
	items []Item
}

func New() *Cart {
	return &Cart{}
}

// Add increments the quantity when the product is already in the cart,
// otherwise appends a new line with quantity 1. It never fails.
func (c *Cart) Add(p domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == p.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, Item{
		ID:       p.ID,
		Title:    p.Title,
		Price:    p.Price,
		Image:    p.Image,
		Quantity: 1,
	})
}

// Remove deletes the line with the given product ID. Removing an absent
// ID is a no-op.
func (c *Cart) Remove(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = deleteItem(c.items, id)
}

// Increase bumps the line's quantity by one. No-op when absent.
func (c *Cart) Increase(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity++
			return
		}
	}
}

// Decrease lowers the line's quantity by one; at quantity 1 the line is
// removed entirely, so a zero quantity is never stored.
func (c *Cart) Decrease(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			if c.items[i].Quantity <= 1 {
				c.items = deleteItem(c.items, id)
			} else {
				c.items[i].Quantity--
			}
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func deleteItem(items []Item, id int) []Item {
	for i := range items {
		if items[i].ID == id {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}

// Total is the derived cart total, sum of price times quantity.
func Total(items []Item) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// Carts hands out one cart per owner. Owners are authenticated user IDs
// or issued client IDs; carts live for the process lifetime only.
type Carts struct {
	mu      sync.Mutex
	byOwner map[string]*Cart
}

func NewCarts() *Carts {
	return &Carts{byOwner: make(map[string]*Cart)}
}

func (cs *Carts) ForOwner(owner string) *Cart {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	c, ok := cs.byOwner[owner]
	if !ok {
		c = New()
		cs.byOwner[owner] = c
	}
	return c
}
