package services

import (
	"context"
	"time"

	"tripmate/internal/models/domain_models"
	mem "tripmate/pkg/memcache"
)

// CachedProvider serves repeated queries from a SearchResultStore. Failed
// searches are not cached.
type CachedProvider struct {
	inner PlaceSearchProvider
	cache mem.SearchResultStore
	ttl   time.Duration
}

func NewCachedProvider(inner PlaceSearchProvider, cache mem.SearchResultStore, ttl time.Duration) *CachedProvider {
	return &CachedProvider{inner: inner, cache: cache, ttl: ttl}
}

func (p *CachedProvider) Name() string { return p.inner.Name() }

func (p *CachedProvider) Search(ctx context.Context, query string) ([]domain_models.RawPlace, error) {
	if places, ok := p.cache.Get(ctx, p.inner.Name(), query); ok {
		return places, nil
	}
	places, err := p.inner.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	p.cache.Set(ctx, p.inner.Name(), query, places, p.ttl)
	return places, nil
}
