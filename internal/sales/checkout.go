// internal/sales/checkout.go
package sales

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"jgpos/internal/catalog"
	"jgpos/internal/logger"
	"jgpos/internal/storage"
)

// ErrEmptyCart is returned when checkout is attempted with nothing in the cart.
var ErrEmptyCart = errors.New("cart is empty")

// SaleItem is one line of a recorded sale.
type SaleItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

// Sale is an append-only record of a completed checkout. Once written it is
// never edited or deleted.
type Sale struct {
	ID       string     `json:"id"`
	Items    []SaleItem `json:"items"`
	Subtotal float64    `json:"subtotal"`
	Total    float64    `json:"total"`
	Date     string     `json:"date"`
}

// LoadSales returns the full sales history, empty on absence or bad data.
func LoadSales(ctx context.Context, store storage.Store) ([]Sale, error) {
	var sales []Sale
	found, err := storage.GetJSON(ctx, store, storage.KeySales, &sales)
	if err != nil {
		if !found {
			return nil, err
		}
		logger.LogWarn("Ignoring malformed sales data: %v", err)
		return []Sale{}, nil
	}
	if !found {
		return []Sale{}, nil
	}
	return sales, nil
}

// TodayTotal sums the totals of sales whose timestamp starts with the given
// ISO date. The match is a literal string prefix, not a calendar-day range.
func TodayTotal(sales []Sale, today string) float64 {
	var total float64
	for _, sale := range sales {
		if strings.HasPrefix(sale.Date, today) {
			total += sale.Total
		}
	}
	return total
}

// Checkout converts the cart into a persisted Sale, clears the cart, and
// returns the sale together with the running total recorded today. Product
// stock is not touched; inventory only changes through stock adjustments and
// product edits.
func Checkout(ctx context.Context, store storage.Store, cart *Cart) (Sale, float64, error) {
	if cart.IsEmpty() {
		return Sale{}, 0, ErrEmptyCart
	}

	subtotal, total := cart.Totals()
	now := time.Now().UTC()

	sale := Sale{
		ID:       catalog.NewID(),
		Subtotal: subtotal,
		Total:    total,
		Date:     now.Format(time.RFC3339),
	}
	for _, item := range cart.Items() {
		sale.Items = append(sale.Items, SaleItem{
			ID:       item.ID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
			Total:    item.Price * float64(item.Quantity),
		})
	}

	history, err := LoadSales(ctx, store)
	if err != nil {
		return Sale{}, 0, err
	}
	history = append(history, sale)
	if err := storage.SetJSON(ctx, store, storage.KeySales, history); err != nil {
		return Sale{}, 0, fmt.Errorf("failed to record sale: %w", err)
	}
	if err := store.Set(ctx, storage.KeySalesUpdated, strconv.FormatInt(now.UnixMilli(), 10)); err != nil {
		logger.LogWarn("Could not write sales-updated marker: %v", err)
	}

	cart.Clear(ctx)

	today := now.Format("2006-01-02")
	todayTotal := TodayTotal(history, today)

	logger.LogInfo("Sale %s recorded: %d lines, total %.2f (today %.2f)",
		sale.ID, len(sale.Items), sale.Total, todayTotal)
	return sale, todayTotal, nil
}
