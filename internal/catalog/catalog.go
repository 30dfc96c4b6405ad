// internal/catalog/catalog.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"jgpos/internal/logger"
	"jgpos/internal/storage"
)

var (
	// ErrMissingFields is returned when a form lacks a required field.
	ErrMissingFields = errors.New("please fill in all required fields")
	// ErrInvalidPrice is returned when the price field does not parse.
	ErrInvalidPrice = errors.New("please enter a valid price")
)

// Catalog loads and saves the product and category collections. Collections
// are always read and written whole; callers must re-load before mutating.
type Catalog struct {
	store storage.Store
}

func New(store storage.Store) *Catalog {
	return &Catalog{store: store}
}

// =============================================================================
// COLLECTION ACCESSORS
// =============================================================================

// LoadProducts returns the full product list. An absent key or malformed
// stored value yields an empty list, never an error; defensive defaulting of
// optional fields happens here and nowhere else.
func (c *Catalog) LoadProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	found, err := storage.GetJSON(ctx, c.store, storage.KeyProducts, &products)
	if err != nil {
		if !found {
			return nil, err
		}
		logger.LogWarn("Ignoring malformed product data: %v", err)
		return []Product{}, nil
	}
	if !found {
		return []Product{}, nil
	}

	for i := range products {
		products[i] = normalizeProduct(products[i])
	}
	return products, nil
}

// SaveProducts replaces the entire stored product collection.
func (c *Catalog) SaveProducts(ctx context.Context, products []Product) error {
	if products == nil {
		products = []Product{}
	}
	return storage.SetJSON(ctx, c.store, storage.KeyProducts, products)
}

// LoadCategories returns the full category list, empty on absence or bad data.
func (c *Catalog) LoadCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	found, err := storage.GetJSON(ctx, c.store, storage.KeyCategories, &categories)
	if err != nil {
		if !found {
			return nil, err
		}
		logger.LogWarn("Ignoring malformed category data: %v", err)
		return []Category{}, nil
	}
	if !found {
		return []Category{}, nil
	}
	return categories, nil
}

// SaveCategories replaces the entire stored category collection.
func (c *Catalog) SaveCategories(ctx context.Context, categories []Category) error {
	if categories == nil {
		categories = []Category{}
	}
	return storage.SetJSON(ctx, c.store, storage.KeyCategories, categories)
}

// =============================================================================
// PRODUCT OPERATIONS
// =============================================================================

// ProductForm carries raw user input for a product create/edit.
type ProductForm struct {
	ID       string
	Name     string
	Price    string
	Category string
	Stock    string
	MinStock string
}

// ParseProductForm validates and converts raw form input. Name and price are
// required; stock and minStock default to 0 when absent or unparseable.
func ParseProductForm(form ProductForm) (Product, error) {
	if form.Name == "" || form.Price == "" {
		return Product{}, ErrMissingFields
	}

	price, err := strconv.ParseFloat(form.Price, 64)
	if err != nil || price < 0 {
		return Product{}, ErrInvalidPrice
	}

	stock, _ := strconv.Atoi(form.Stock)
	if stock < 0 {
		stock = 0
	}
	minStock, _ := strconv.Atoi(form.MinStock)
	if minStock < 0 {
		minStock = 0
	}

	id := form.ID
	if id == "" {
		id = NewID()
	}

	return Product{
		ID:       id,
		Name:     form.Name,
		Price:    price,
		Category: form.Category,
		Stock:    stock,
		MinStock: minStock,
	}, nil
}

// UpsertProduct replaces the record with a matching id, or appends the
// product when no record matches.
func (c *Catalog) UpsertProduct(ctx context.Context, product Product) error {
	products, err := c.LoadProducts(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range products {
		if products[i].ID == product.ID {
			products[i] = product
			replaced = true
			break
		}
	}
	if !replaced {
		products = append(products, product)
	}

	if err := c.SaveProducts(ctx, products); err != nil {
		return fmt.Errorf("failed to save products: %w", err)
	}
	return nil
}

// DeleteProduct removes the record with the given id. Deleting an id that no
// longer exists is a no-op. Adjustment-log cascade is handled by the
// inventory service that wraps this call.
func (c *Catalog) DeleteProduct(ctx context.Context, productID string) error {
	products, err := c.LoadProducts(ctx)
	if err != nil {
		return err
	}

	kept := products[:0]
	for _, p := range products {
		if p.ID != productID {
			kept = append(kept, p)
		}
	}

	return c.SaveProducts(ctx, kept)
}

// =============================================================================
// CATEGORY OPERATIONS
// =============================================================================

// UpsertCategory creates or renames a category. The name must be non-empty
// after trimming.
func (c *Catalog) UpsertCategory(ctx context.Context, category Category) error {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return ErrMissingFields
	}
	if category.ID == "" {
		category.ID = NewID()
	}

	categories, err := c.LoadCategories(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range categories {
		if categories[i].ID == category.ID {
			categories[i] = category
			replaced = true
			break
		}
	}
	if !replaced {
		categories = append(categories, category)
	}

	return c.SaveCategories(ctx, categories)
}

// DeleteCategory removes a category by id. Products referencing it keep their
// now-dangling category value; no referential integrity is enforced.
func (c *Catalog) DeleteCategory(ctx context.Context, categoryID string) error {
	categories, err := c.LoadCategories(ctx)
	if err != nil {
		return err
	}

	kept := categories[:0]
	for _, cat := range categories {
		if cat.ID != categoryID {
			kept = append(kept, cat)
		}
	}

	return c.SaveCategories(ctx, kept)
}

// =============================================================================
// PURE HELPERS (search, sort, stats)
// =============================================================================

// FilterProducts reproduces the product search: case-insensitive substring
// match on name or category, with an optional exact category filter.
func FilterProducts(products []Product, query, category string) []Product {
	query = strings.ToLower(query)

	var matched []Product
	for _, p := range products {
		matchesSearch := query == "" ||
			strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Category), query)
		matchesCategory := category == "" || p.Category == category
		if matchesSearch && matchesCategory {
			matched = append(matched, p)
		}
	}
	return matched
}

// SortByName returns a copy ordered by name.
func SortByName(products []Product) []Product {
	sorted := append([]Product(nil), products...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

// SortByStock returns a copy ordered by stock level, lowest first.
func SortByStock(products []Product) []Product {
	sorted := append([]Product(nil), products...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Stock < sorted[j].Stock
	})
	return sorted
}

// ComputeStats summarizes the catalog: item count, low-stock count
// (stock at or below minStock), total stock value, and average stock.
func ComputeStats(products []Product) Stats {
	stats := Stats{TotalItems: len(products)}

	totalStock := 0
	for _, p := range products {
		if p.Stock <= p.MinStock {
			stats.LowStock++
		}
		stats.TotalValue += float64(p.Stock) * p.Price
		totalStock += p.Stock
	}

	if stats.TotalItems > 0 {
		stats.AverageStock = float64(totalStock) / float64(stats.TotalItems)
	}
	return stats
}
