// pkg/memcache/search_cache.go
package mem

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"tripmate/internal/models/domain_models"
)

// SearchResultStore caches raw provider results per provider and query.
// Implementations return copies so callers may mutate what they get.
type SearchResultStore interface {
	Get(ctx context.Context, provider, query string) ([]domain_models.RawPlace, bool)
	Set(ctx context.Context, provider, query string, places []domain_models.RawPlace, ttl time.Duration)
}

type SearchCache struct {
	store *gocache.Cache
}

func NewSearchCache(defaultTTL time.Duration) *SearchCache {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	return &SearchCache{
		store: gocache.New(defaultTTL, 2*defaultTTL),
	}
}

func cacheKey(provider, query string) string {
	return "search:" + provider + ":" + strings.ToLower(strings.TrimSpace(query))
}

func (c *SearchCache) Set(_ context.Context, provider, query string, places []domain_models.RawPlace, ttl time.Duration) {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.store.Set(cacheKey(provider, query), copyPlaces(places), ttl)
}

func (c *SearchCache) Get(_ context.Context, provider, query string) ([]domain_models.RawPlace, bool) {
	v, ok := c.store.Get(cacheKey(provider, query))
	if !ok {
		return nil, false
	}
	places, ok := v.([]domain_models.RawPlace)
	if !ok {
		return nil, false
	}
	return copyPlaces(places), true
}

func (c *SearchCache) ItemCount() int {
	return c.store.ItemCount()
}

func copyPlaces(in []domain_models.RawPlace) []domain_models.RawPlace {
	out := make([]domain_models.RawPlace, len(in))
	for i, p := range in {
		if p.Rating != nil {
			r := *p.Rating
			p.Rating = &r
		}
		out[i] = p
	}
	return out
}
