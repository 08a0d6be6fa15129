package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*CacheManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCacheManager(client), mr
}

type cachedDoc struct {
	Title   string `json:"title"`
	Version int    `json:"version"`
}

func TestCacheHelper_SetGet(t *testing.T) {
	ctx := context.Background()
	cm, _ := newTestCache(t)

	want := cachedDoc{Title: "Mock 1", Version: 3}
	if err := cm.Document.Set(ctx, "testBatches:batch-1", want, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got cachedDoc
	if err := cm.Document.Get(ctx, "testBatches:batch-1", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCacheHelper_GetMissing(t *testing.T) {
	cm, _ := newTestCache(t)

	var got cachedDoc
	err := cm.Document.Get(context.Background(), "testBatches:missing", &got)
	if !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("err = %v, want ErrCacheNotFound", err)
	}
}

func TestCacheHelper_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	cm, mr := newTestCache(t)

	if err := cm.Exists.Set(ctx, "organizer:ssc_cgl", true, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	var got bool
	err := cm.Exists.Get(ctx, "organizer:ssc_cgl", &got)
	if !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("err after expiry = %v, want ErrCacheNotFound", err)
	}
}

func TestCacheHelper_PrefixIsolation(t *testing.T) {
	ctx := context.Background()
	cm, _ := newTestCache(t)

	if err := cm.Document.Set(ctx, "key", cachedDoc{Title: "doc"}, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got cachedDoc
	err := cm.User.Get(ctx, "key", &got)
	if !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("user cache sees document entry: err = %v", err)
	}
}

func TestInvalidateDocument(t *testing.T) {
	ctx := context.Background()
	cm, _ := newTestCache(t)

	if err := cm.Document.Set(ctx, "testBatches:batch-1", cachedDoc{Title: "Mock 1"}, time.Minute); err != nil {
		t.Fatalf("Set document: %v", err)
	}
	if err := cm.Exists.Set(ctx, "testBatches:batch-1", true, time.Minute); err != nil {
		t.Fatalf("Set exists: %v", err)
	}

	InvalidateDocument(ctx, cm, "testBatches", "batch-1")

	var doc cachedDoc
	if err := cm.Document.Get(ctx, "testBatches:batch-1", &doc); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("document still cached: err = %v", err)
	}
	var exists bool
	if err := cm.Exists.Get(ctx, "testBatches:batch-1", &exists); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("exists marker still cached: err = %v", err)
	}
}

func TestCacheHelper_NilClientDegradesGracefully(t *testing.T) {
	ctx := context.Background()
	cm := NewCacheManager(nil)

	if err := cm.Document.Set(ctx, "key", cachedDoc{}, time.Minute); err != nil {
		t.Errorf("Set with nil client: %v", err)
	}
	var got cachedDoc
	if err := cm.Document.Get(ctx, "key", &got); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("Get with nil client: err = %v, want ErrCacheNotAvailable", err)
	}
	if err := cm.Document.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete with nil client: %v", err)
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	ctx := context.Background()
	cm, _ := newTestCache(t)

	for _, key := range []string{"organizer:a", "organizer:b", "testBatches:a"} {
		if err := cm.Document.Set(ctx, key, cachedDoc{Title: key}, time.Minute); err != nil {
			t.Fatalf("Set %s: %v", key, err)
		}
	}

	if err := cm.Document.InvalidatePattern(ctx, "organizer:*"); err != nil {
		t.Fatalf("InvalidatePattern: %v", err)
	}

	var got cachedDoc
	if err := cm.Document.Get(ctx, "organizer:a", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("organizer:a survived invalidation: err = %v", err)
	}
	if err := cm.Document.Get(ctx, "testBatches:a", &got); err != nil {
		t.Errorf("testBatches:a dropped by unrelated invalidation: %v", err)
	}
}
