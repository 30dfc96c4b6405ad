// internal/catalog/types.go
package catalog

import (
	"strconv"
	"time"
)

// Product is a catalog record. Field names match the persisted JSON exactly;
// older records may miss price/stock/minStock/category, which are defaulted
// on load (see normalizeProduct).
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Stock    int     `json:"stock"`
	MinStock int     `json:"minStock"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Stats summarizes the catalog for the inventory reports view.
type Stats struct {
	TotalItems   int
	LowStock     int
	TotalValue   float64
	AverageStock float64
}

// NewID returns a timestamp-derived identifier. Every record id in the
// persisted data model uses this format.
func NewID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// DefaultCategory is applied when a record carries no category.
const DefaultCategory = "Uncategorized"

func normalizeProduct(p Product) Product {
	if p.Price < 0 {
		p.Price = 0
	}
	if p.Stock < 0 {
		p.Stock = 0
	}
	if p.MinStock < 0 {
		p.MinStock = 0
	}
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	return p
}
