// internal/storage/storage.go
package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// =============================================================================
// STORAGE KEYS
// =============================================================================

// Every persisted collection lives under a single string key holding a JSON
// value. The key names are part of the on-device data format and must not
// change between releases.
const (
	KeyProducts      = "@products"
	KeyCategories    = "@categories"
	KeyAdjustments   = "stockAdjustments"
	KeySales         = "sales"
	KeyCart          = "@cart"
	KeyReceiptNumber = "@receiptNumber"
	KeySalesUpdated  = "salesUpdated"
	KeyUserSession   = "@user_session"
	KeyUserToken     = "@user_token"
	KeyUserData      = "@user_data"
	KeyDeviceID      = "@device_id"
)

// Store is the narrow surface every feature talks to: opaque string keys,
// opaque string values. Implementations must treat a missing key as
// (found=false, nil error), never as a failure.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// =============================================================================
// JSON CODEC HELPERS
// =============================================================================

// GetJSON reads key and unmarshals it into v. Returns found=false when the
// key is absent; malformed stored JSON is a real error and is left to the
// caller to default away.
func GetJSON(ctx context.Context, s Store, key string, v interface{}) (bool, error) {
	raw, found, err := s.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("failed to unmarshal %q: %w", key, err)
	}
	return true, nil
}

// SetJSON marshals v and stores it under key, replacing any previous value.
func SetJSON(ctx context.Context, s Store, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %q: %w", key, err)
	}
	if err := s.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}
