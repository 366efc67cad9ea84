package config

import "time"

type Config struct {
	Environment string
	Port        string

	// access control
	AccessMode     string // gated | unrestricted
	FreeTierLimit  uint
	TierCacheTTL   time.Duration
	UpgradeURL     string
	JWTSecret      string // optional; when empty the raw bearer token is the identity
	StateBackend   string // memory | redis
	RedisURL       string
	RateLimit      string // ulule/limiter formatted rate, e.g. "60-M"
	AllowedOrigins []string

	// billing
	StripeSecretKey     string
	StripeWebhookSecret string

	GenerationTimeout time.Duration
	SwaggerEnabled    bool
}

// flags for the tokengen command
type TokenFlags struct {
	CustomerID string
	TTL        time.Duration
}

const (
	StateBackendMemory = "memory"
	StateBackendRedis  = "redis"
)
