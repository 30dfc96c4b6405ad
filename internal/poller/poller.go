// internal/poller/poller.go
package poller

import (
	"context"
	"time"

	"jgpos/internal/catalog"
	"jgpos/internal/logger"
)

// Watch re-reads the product collection on a fixed interval and hands each
// fresh snapshot to fn, until ctx is done. There is no overlap guard and no
// backpressure: a slow fn simply delays the next tick's delivery, and a read
// racing a writer in the same process can observe either side of the write.
// Read errors are logged and the tick skipped.
func Watch(ctx context.Context, cat *catalog.Catalog, interval time.Duration, fn func([]catalog.Product)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.LogInfo("Product refresh polling every %v", interval)
	for {
		select {
		case <-ticker.C:
			products, err := cat.LoadProducts(ctx)
			if err != nil {
				logger.LogWarn("Product refresh failed: %v", err)
				continue
			}
			fn(products)
		case <-ctx.Done():
			logger.LogInfo("Product refresh stopped")
			return
		}
	}
}
