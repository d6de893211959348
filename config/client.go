package config

import (
	"github.com/sirupsen/logrus"

	"storefront.GO/api"
	"storefront.GO/core/cache"
)

// NewAPIClient builds the backend client from AppConfig. A non-empty baseURL
// overrides API_BASE_URL.
func NewAPIClient(logger *logrus.Logger, baseURL string) *api.Client {
	LoadAppConfig()
	if baseURL == "" {
		baseURL = AppConfig.APIBaseURL
	}
	return api.New(baseURL,
		api.WithTimeout(AppConfig.APITimeout),
		api.WithRateLimit(AppConfig.APIRateLimit),
		api.WithSessionCookie(AppConfig.SessionCookie),
		api.WithLogger(logger),
	)
}

const optionsCacheTag = "catalog:options"

// NewOptionsStore returns the cache for filter options: Redis when RedisClient is
// set (call InitRedis and PingRedis first), the process cache otherwise. purge
// drops the process-local entries and is nil for Redis, where entries expire by
// TTL.
func NewOptionsStore() (store cache.Store, purge func()) {
	if RedisClient != nil {
		return cache.NewRedisStore(RedisClient, "storefront:"), nil
	}
	mem := cache.NewMemoryStore(cache.GetInstance(), optionsCacheTag)
	return mem, mem.Purge
}
