package places_fx

import (
	"errors"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripmate/internal/infra"
	"tripmate/internal/services"
	"tripmate/pkg/config"
	mem "tripmate/pkg/memcache"
)

var Module = fx.Options(
	fx.Provide(services.DefaultRecommendationTables),
	fx.Provide(provideProviders),
	fx.Provide(services.NewPlaceSearchService),
	fx.Provide(services.NewDiscoveryService),
)

// provideProviders wires every provider whose credentials are configured, in
// the order their results are merged.
func provideProviders(cfg *config.Config, cache mem.SearchResultStore, log *zap.Logger) ([]services.PlaceSearchProvider, error) {
	p := cfg.Providers
	var providers []services.PlaceSearchProvider

	if p.KakaoEnabled() {
		providers = append(providers, infra.NewKakaoLocalClient(p.KakaoRestAPIKey, p.HTTPTimeout, log).WithMaxAttempts(p.MaxAttempts))
	}
	if p.NaverEnabled() {
		providers = append(providers, infra.NewNaverLocalClient(p.NaverClientID, p.NaverClientSecret, p.HTTPTimeout, log).WithMaxAttempts(p.MaxAttempts))
	}
	if p.FixtureEnabled() {
		static, err := infra.NewStaticPlaceProviderFromFile(p.FixturePath)
		if err != nil {
			return nil, err
		}
		providers = append(providers, static)
	}
	if len(providers) == 0 {
		return nil, errors.New("no place provider configured: set KAKAO_REST_API_KEY, NAVER_CLIENT_ID/NAVER_CLIENT_SECRET or PLACES_FIXTURE_PATH")
	}

	cached := make([]services.PlaceSearchProvider, 0, len(providers))
	for _, provider := range providers {
		cached = append(cached, services.NewCachedProvider(provider, cache, p.SearchCacheTTL))
		log.Info("place provider enabled", zap.String("provider", provider.Name()))
	}
	return cached, nil
}
