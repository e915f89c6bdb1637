package cache

import (
	"context"
	"log/slog"
)

// SafeDelete deletes keys and logs, rather than returns, a failure.
func SafeDelete(ctx context.Context, logger *slog.Logger, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		logger.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"count", len(keys))
	}
}
