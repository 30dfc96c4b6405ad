// internal/inventory/inventory.go
package inventory

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"jgpos/internal/catalog"
	"jgpos/internal/logger"
	"jgpos/internal/storage"
)

// Adjustment directions. Direction is carried by the type, never by the sign
// of the quantity.
const (
	TypeAdd    = "add"
	TypeRemove = "remove"
)

var (
	// ErrMissingFields is returned when product, quantity, or reason is absent.
	ErrMissingFields = errors.New("please fill in all fields")
	// ErrInvalidQuantity is returned when the quantity is not a positive integer.
	ErrInvalidQuantity = errors.New("please enter a valid quantity")
	// ErrInvalidType is returned for an adjustment type other than add/remove.
	ErrInvalidType = errors.New("unknown adjustment type")
)

// Adjustment is one append-only audit record of a stock change.
type Adjustment struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Type      string `json:"type"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
	Date      string `json:"date"`
}

// Service applies stock adjustments: it rewrites the product collection and
// appends to the adjustment log. The two writes are not transactional; a
// crash between them leaves one side updated without the other.
type Service struct {
	store   storage.Store
	catalog *catalog.Catalog
}

func NewService(store storage.Store, cat *catalog.Catalog) *Service {
	return &Service{store: store, catalog: cat}
}

// LoadAdjustments returns the full adjustment log, empty on absence or bad data.
func (s *Service) LoadAdjustments(ctx context.Context) ([]Adjustment, error) {
	var adjustments []Adjustment
	found, err := storage.GetJSON(ctx, s.store, storage.KeyAdjustments, &adjustments)
	if err != nil {
		if !found {
			return nil, err
		}
		logger.LogWarn("Ignoring malformed adjustment data: %v", err)
		return []Adjustment{}, nil
	}
	if !found {
		return []Adjustment{}, nil
	}
	return adjustments, nil
}

func (s *Service) saveAdjustments(ctx context.Context, adjustments []Adjustment) error {
	if adjustments == nil {
		adjustments = []Adjustment{}
	}
	return storage.SetJSON(ctx, s.store, storage.KeyAdjustments, adjustments)
}

// AdjustmentsFor filters the log down to a single product's history.
func (s *Service) AdjustmentsFor(ctx context.Context, productID string) ([]Adjustment, error) {
	adjustments, err := s.LoadAdjustments(ctx)
	if err != nil {
		return nil, err
	}

	var matched []Adjustment
	for _, adj := range adjustments {
		if adj.ProductID == productID {
			matched = append(matched, adj)
		}
	}
	return matched, nil
}

// AdjustStock validates the request, appends an audit record, and rewrites
// the product list with the new stock level. Removal clamps at zero. A
// product id that matches nothing leaves the product list untouched, but the
// audit record is still appended, matching the order the register has always
// written in.
func (s *Service) AdjustStock(ctx context.Context, productID, adjustmentType, quantityText, reason string) (Adjustment, error) {
	if productID == "" || quantityText == "" || reason == "" {
		return Adjustment{}, ErrMissingFields
	}
	if adjustmentType != TypeAdd && adjustmentType != TypeRemove {
		return Adjustment{}, ErrInvalidType
	}

	quantity, err := strconv.Atoi(quantityText)
	if err != nil || quantity <= 0 {
		return Adjustment{}, ErrInvalidQuantity
	}

	adjustment := Adjustment{
		ID:        catalog.NewID(),
		ProductID: productID,
		Type:      adjustmentType,
		Quantity:  quantity,
		Reason:    reason,
		Date:      time.Now().UTC().Format(time.RFC3339),
	}

	adjustments, err := s.LoadAdjustments(ctx)
	if err != nil {
		return Adjustment{}, err
	}
	if err := s.saveAdjustments(ctx, append(adjustments, adjustment)); err != nil {
		return Adjustment{}, fmt.Errorf("failed to record adjustment: %w", err)
	}

	products, err := s.catalog.LoadProducts(ctx)
	if err != nil {
		return Adjustment{}, err
	}
	for i := range products {
		if products[i].ID != productID {
			continue
		}
		if adjustmentType == TypeAdd {
			products[i].Stock += quantity
		} else {
			products[i].Stock -= quantity
			if products[i].Stock < 0 {
				products[i].Stock = 0
			}
		}
		break
	}
	if err := s.catalog.SaveProducts(ctx, products); err != nil {
		return Adjustment{}, fmt.Errorf("failed to save adjusted stock: %w", err)
	}

	logger.LogInfo("Stock adjusted: product=%s type=%s quantity=%d reason=%q",
		productID, adjustmentType, quantity, reason)
	return adjustment, nil
}

// DeleteProduct removes a product and cascades to its adjustment records.
func (s *Service) DeleteProduct(ctx context.Context, productID string) error {
	if err := s.catalog.DeleteProduct(ctx, productID); err != nil {
		return err
	}

	adjustments, err := s.LoadAdjustments(ctx)
	if err != nil {
		return err
	}

	kept := adjustments[:0]
	for _, adj := range adjustments {
		if adj.ProductID != productID {
			kept = append(kept, adj)
		}
	}

	return s.saveAdjustments(ctx, kept)
}
