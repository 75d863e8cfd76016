package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Providers ProvidersConfig
	Mapbox    MapboxConfig
	Planner   PlannerConfig
	Logger    LoggerConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	URL string
}

type ProvidersConfig struct {
	KakaoRestAPIKey   string
	NaverClientID     string
	NaverClientSecret string
	FixturePath       string
	SearchCacheTTL    time.Duration
	HTTPTimeout       time.Duration
	// MaxAttempts is per provider call; 1 disables retries.
	MaxAttempts       int
	// RedisURL switches the search cache from in-process to redis.
	RedisURL          string
}

type MapboxConfig struct {
	AccessToken string
}

type PlannerConfig struct {
	DefaultTransport string
}

type LoggerConfig struct {
	Level string
}

// KakaoEnabled and the sibling helpers decide which providers get wired.
func (p ProvidersConfig) KakaoEnabled() bool   { return p.KakaoRestAPIKey != "" }
func (p ProvidersConfig) NaverEnabled() bool   { return p.NaverClientID != "" && p.NaverClientSecret != "" }
func (p ProvidersConfig) FixtureEnabled() bool { return p.FixturePath != "" }

func Load() (*Config, error) {
	// .env is optional; plain environment variables work for containers.
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	cacheTTL, err := getEnvInt("SEARCH_CACHE_TTL", 600)
	if err != nil {
		return nil, err
	}
	httpTimeout, err := getEnvInt("HTTP_TIMEOUT", 10)
	if err != nil {
		return nil, err
	}
	maxAttempts, err := getEnvInt("PROVIDER_MAX_ATTEMPTS", 1)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: getEnv("POSTGRES_URL", ""),
		},
		Providers: ProvidersConfig{
			KakaoRestAPIKey:   getEnv("KAKAO_REST_API_KEY", ""),
			NaverClientID:     getEnv("NAVER_CLIENT_ID", ""),
			NaverClientSecret: getEnv("NAVER_CLIENT_SECRET", ""),
			FixturePath:       getEnv("PLACES_FIXTURE_PATH", ""),
			SearchCacheTTL:    time.Duration(cacheTTL) * time.Second,
			HTTPTimeout:       time.Duration(httpTimeout) * time.Second,
			MaxAttempts:       maxAttempts,
			RedisURL:          getEnv("REDIS_URL", ""),
		},
		Mapbox: MapboxConfig{
			AccessToken: getEnv("MAPBOX_ACCESS_TOKEN", ""),
		},
		Planner: PlannerConfig{
			DefaultTransport: getEnv("DEFAULT_TRANSPORT", "walking"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("config: %s must be a non-negative integer, got %q", key, raw)
	}
	return v, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
