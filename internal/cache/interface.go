package cache

import (
	"context"
	"strconv"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

func Key(prefix string, parts ...string) string {
	key := prefix
	for _, p := range parts {
		key += ":" + p
	}

	return key
}

const (
	ProductKeyPrefix    = "product"
	CollectionKeyPrefix = "collection"
)

// ProductIDKey and ProductSlugKey address the same cached product by its two identifiers.
func ProductIDKey(id int64) string {
	return Key(ProductKeyPrefix, "id", strconv.FormatInt(id, 10))
}

func ProductSlugKey(slug string) string {
	return Key(ProductKeyPrefix, "slug", slug)
}

func CollectionListKey() string {
	return Key(CollectionKeyPrefix, "all")
}
