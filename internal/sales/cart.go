// internal/sales/cart.go
package sales

import (
	"context"
	"errors"

	"jgpos/internal/catalog"
	"jgpos/internal/logger"
	"jgpos/internal/storage"
)

// ErrInsufficientStock is returned when an add would push a line past the
// product's stock snapshot taken at add time.
var ErrInsufficientStock = errors.New("not enough stock")

// CartItem is a product line in the active cart. The embedded product carries
// the stock snapshot the line was added against.
type CartItem struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// Cart is the single session's in-progress sale. Every mutation is saved back
// to storage opportunistically so the cart survives restarts; a save failure
// is logged and the in-memory state kept.
type Cart struct {
	store       storage.Store
	items       []CartItem
	lastRemoved *CartItem
}

// NewCart restores the persisted cart snapshot, starting empty when there is
// none or it cannot be read.
func NewCart(ctx context.Context, store storage.Store) *Cart {
	cart := &Cart{store: store}

	var items []CartItem
	found, err := storage.GetJSON(ctx, store, storage.KeyCart, &items)
	if err != nil {
		logger.LogWarn("Could not restore cart: %v", err)
		return cart
	}
	if found {
		cart.items = items
	}
	return cart
}

// Add puts one unit of product in the cart. Out-of-stock products are
// ignored; exceeding the stock snapshot of an existing line is an error.
func (c *Cart) Add(ctx context.Context, product catalog.Product) error {
	if product.Stock <= 0 {
		return nil
	}

	for i := range c.items {
		if c.items[i].ID != product.ID {
			continue
		}
		if c.items[i].Quantity >= product.Stock {
			return ErrInsufficientStock
		}
		c.items[i].Quantity++
		c.persist(ctx)
		return nil
	}

	c.items = append(c.items, CartItem{Product: product, Quantity: 1})
	c.persist(ctx)
	return nil
}

// Remove takes one unit off a line. The line is dropped entirely when its
// quantity reaches zero, and parked in the one-slot undo buffer. Removing an
// id that is not in the cart is a no-op.
func (c *Cart) Remove(ctx context.Context, productID string) {
	for i := range c.items {
		if c.items[i].ID != productID {
			continue
		}
		if c.items[i].Quantity == 1 {
			removed := c.items[i]
			c.lastRemoved = &removed
			c.items = append(c.items[:i], c.items[i+1:]...)
		} else {
			c.items[i].Quantity--
		}
		c.persist(ctx)
		return
	}
}

// UndoRemove re-adds the last fully removed line. The buffer is consumed
// either way, and overwritten by the next removal.
func (c *Cart) UndoRemove(ctx context.Context) error {
	if c.lastRemoved == nil {
		return nil
	}
	product := c.lastRemoved.Product
	c.lastRemoved = nil
	return c.Add(ctx, product)
}

// CanUndo reports whether the undo buffer holds a line.
func (c *Cart) CanUndo() bool {
	return c.lastRemoved != nil
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []CartItem {
	return append([]CartItem(nil), c.items...)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Totals computes the running subtotal and total. No tax is applied in the
// checkout path, so the two are always equal.
func (c *Cart) Totals() (subtotal, total float64) {
	for _, item := range c.items {
		subtotal += item.Price * float64(item.Quantity)
	}
	return subtotal, subtotal
}

// Clear empties the cart and its persisted snapshot.
func (c *Cart) Clear(ctx context.Context) {
	c.items = nil
	c.persist(ctx)
}

func (c *Cart) persist(ctx context.Context) {
	items := c.items
	if items == nil {
		items = []CartItem{}
	}
	if err := storage.SetJSON(ctx, c.store, storage.KeyCart, items); err != nil {
		logger.LogError("Error saving cart: %v", err)
	}
}
