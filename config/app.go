package config

import (
	"sync"
	"time"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName string
	Port    string
	Env     string
	Debug   bool

	// Backend REST contract
	APIBaseURL    string
	APITimeout    time.Duration
	APIRateLimit  int // requests per second, 0 disables throttling
	SessionCookie string

	// Catalog view
	SearchDebounce  time.Duration
	PageSize        int
	MaxVisiblePages int

	// Background work
	CartRefreshSchedule    string
	OptionsRefreshSchedule string
	OptionsCacheTTL        time.Duration
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName: GetEnv("APP_NAME", "storefront.GO"),
			Port:    GetEnv("PORT", "3000"),
			Env:     GetEnv("APP_ENV", "prod"),
			Debug:   GetEnv("DEBUG", "") == "true",

			APIBaseURL:    GetEnv("API_BASE_URL", "http://localhost:8080/api"),
			APITimeout:    GetEnvDuration("API_TIMEOUT", 10*time.Second),
			APIRateLimit:  GetEnvInt("API_RATE_LIMIT", 0),
			SessionCookie: GetEnv("API_SESSION_COOKIE", ""),

			SearchDebounce:  GetEnvDuration("SEARCH_DEBOUNCE", 500*time.Millisecond),
			PageSize:        GetEnvInt("PAGE_SIZE", 12),
			MaxVisiblePages: GetEnvInt("MAX_VISIBLE_PAGES", 5),

			CartRefreshSchedule:    GetEnv("CART_REFRESH_SCHEDULE", "@every 30s"),
			OptionsRefreshSchedule: GetEnv("OPTIONS_REFRESH_SCHEDULE", ""),
			OptionsCacheTTL:        GetEnvDuration("OPTIONS_CACHE_TTL", 300*time.Second),
		}
	})
}
