package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// InvalidateDocument drops the cached copy of one document and any existence
// marker for it.
func InvalidateDocument(ctx context.Context, cm *CacheManager, collection, docID string) {
	SafeDelete(ctx, cm.Document, fmt.Sprintf("%s:%s", collection, docID))
	SafeDelete(ctx, cm.Exists, fmt.Sprintf("%s:%s", collection, docID))
}
