package memcache_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripmate/pkg/config"
	mem "tripmate/pkg/memcache"
)

var Module = fx.Provide(provideSearchResultStore)

func provideSearchResultStore(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (mem.SearchResultStore, error) {
	if cfg.Providers.RedisURL == "" {
		return mem.NewSearchCache(cfg.Providers.SearchCacheTTL), nil
	}

	client, err := mem.NewRedisClient(cfg.Providers.RedisURL)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				log.Warn("redis unreachable, search cache will miss", zap.Error(err))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	log.Info("using redis search cache")
	return mem.NewRedisSearchCache(client, cfg.Providers.SearchCacheTTL, log), nil
}
