package cart_test

import (
	"math"
	"testing"

	"github.com/shopglow/storefront/internal/cart"
	"github.com/shopglow/storefront/internal/domain"
)

func product(id int, price float64) domain.Product {
	return domain.Product{ID: id, Title: "p", Price: price}
}

func TestAdd_RepeatedID_IncrementsQuantity(t *testing.T) {
	c := cart.New()
	c.Add(product(1, 10))
	c.Add(product(1, 10))
	c.Add(product(1, 10))

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].Quantity != 3 {
		t.Errorf("quantity = %d, want 3", items[0].Quantity)
	}
}

func TestAdd_DistinctIDs_PreservesInsertionOrder(t *testing.T) {
	c := cart.New()
	c.Add(product(3, 1))
	c.Add(product(1, 2))
	c.Add(product(2, 3))

	items := c.Items()
	want := []int{3, 1, 2}
	if len(items) != len(want) {
		t.Fatalf("items = %d, want %d", len(items), len(want))
	}
	for i, id := range want {
		if items[i].ID != id {
			t.Errorf("items[%d].ID = %d, want %d", i, items[i].ID, id)
		}
	}
}

func TestTotal_InvariantUnderAddOrder(t *testing.T) {
	a := cart.New()
	a.Add(product(1, 10))
	a.Add(product(2, 5))
	a.Add(product(1, 10))

	b := cart.New()
	b.Add(product(2, 5))
	b.Add(product(1, 10))
	b.Add(product(1, 10))

	ta, tb := cart.Total(a.Items()), cart.Total(b.Items())
	if math.Abs(ta-tb) > 1e-9 {
		t.Errorf("totals differ: %v vs %v", ta, tb)
	}
	if math.Abs(ta-25) > 1e-9 {
		t.Errorf("total = %v, want 25", ta)
	}
}

func TestDecrease_AtQuantityOne_RemovesItem(t *testing.T) {
	c := cart.New()
	c.Add(product(1, 10))
	c.Decrease(1)

	if items := c.Items(); len(items) != 0 {
		t.Errorf("items = %v, want empty", items)
	}
}

func TestDecrease_NeverLeavesZeroQuantity(t *testing.T) {
	c := cart.New()
	c.Add(product(1, 10))
	c.Add(product(1, 10))
	c.Decrease(1)
	c.Decrease(1)
	c.Decrease(1) // beyond removal, no-op

	for _, it := range c.Items() {
		if it.Quantity <= 0 {
			t.Errorf("item %d stored with quantity %d", it.ID, it.Quantity)
		}
	}
	if items := c.Items(); len(items) != 0 {
		t.Errorf("items = %v, want empty", items)
	}
}

func TestRemove_AbsentID_IsNoOp(t *testing.T) {
	c := cart.New()
	c.Add(product(1, 10))
	c.Remove(99)

	if items := c.Items(); len(items) != 1 {
		t.Errorf("items = %d, want 1", len(items))
	}
}

func TestClear_TotalIsZero(t *testing.T) {
	c := cart.New()
	c.Add(product(1, 10))
	c.Add(product(2, 7.5))
	c.Clear()

	if total := cart.Total(c.Items()); total != 0 {
		t.Errorf("total = %v, want 0", total)
	}
}

func TestScenario_SameProductTwice(t *testing.T) {
	c := cart.New()
	c.Add(product(1, 10))
	c.Add(product(1, 10))

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", items[0].Quantity)
	}
	if total := cart.Total(items); math.Abs(total-20) > 1e-9 {
		t.Errorf("total = %v, want 20", total)
	}
}

func TestIncrease_AbsentID_IsNoOp(t *testing.T) {
	c := cart.New()
	c.Increase(42)

	if items := c.Items(); len(items) != 0 {
		t.Errorf("items = %v, want empty", items)
	}
}

func TestCarts_SeparateOwners_SeparateCarts(t *testing.T) {
	cs := cart.NewCarts()
	cs.ForOwner("a").Add(product(1, 10))

	if items := cs.ForOwner("b").Items(); len(items) != 0 {
		t.Errorf("owner b items = %v, want empty", items)
	}
	if got := cs.ForOwner("a"); got != cs.ForOwner("a") {
		t.Error("same owner should get the same cart")
	}
}
