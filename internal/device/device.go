// internal/device/device.go
package device

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"jgpos/internal/logger"
	"jgpos/internal/storage"
)

// Ensure returns this register's persistent identifier, generating and
// storing one on first boot. The id tags log lines and report footers so
// exported documents can be traced back to the device that produced them.
func Ensure(ctx context.Context, store storage.Store) (string, error) {
	id, found, err := store.Get(ctx, storage.KeyDeviceID)
	if err != nil {
		return "", fmt.Errorf("failed to read device id: %w", err)
	}
	if found && id != "" {
		return id, nil
	}

	id = uuid.NewString()
	if err := store.Set(ctx, storage.KeyDeviceID, id); err != nil {
		return "", fmt.Errorf("failed to persist device id: %w", err)
	}
	logger.LogInfo("Generated register id %s", id)
	return id, nil
}
