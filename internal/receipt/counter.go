// internal/receipt/counter.go
package receipt

import (
	"context"
	"fmt"
	"strconv"

	"jgpos/internal/logger"
	"jgpos/internal/storage"
)

// Counter is the persisted receipt number. The caller renders and shares a
// receipt first and calls Advance only on success, so a failed share reuses
// the same number: numbering is at-least-once, never skipping ahead.
type Counter struct {
	store storage.Store
}

func NewCounter(store storage.Store) *Counter {
	return &Counter{store: store}
}

// Current returns the next receipt number to print, starting at 1.
func (c *Counter) Current(ctx context.Context) (int, error) {
	raw, found, err := c.store.Get(ctx, storage.KeyReceiptNumber)
	if err != nil {
		return 0, err
	}
	if !found {
		return 1, nil
	}

	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		logger.LogWarn("Resetting malformed receipt number %q", raw)
		return 1, nil
	}
	return number, nil
}

// Advance persists the increment after a successful render/share.
func (c *Counter) Advance(ctx context.Context) error {
	current, err := c.Current(ctx)
	if err != nil {
		return err
	}
	if err := c.store.Set(ctx, storage.KeyReceiptNumber, strconv.Itoa(current+1)); err != nil {
		return fmt.Errorf("failed to save receipt number: %w", err)
	}
	return nil
}
