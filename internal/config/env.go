package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort              = "8080"
	defaultFreeTierLimit     = 3
	defaultTierCacheTTL      = 30 * time.Minute
	defaultGenerationTimeout = 60 * time.Second
	defaultRateLimit         = "60-M"
	defaultUpgradeURL        = "/pricing"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	return FromEnvironment()
}

// builds configuration from the current environment without touching .env
func FromEnvironment() (*Config, error) {
	environment := getEnv("ENVIRONMENT", "development")

	freeTierLimit, err := getUint("FREE_TIER_LIMIT", defaultFreeTierLimit)
	if err != nil {
		return nil, err
	}

	tierCacheTTL, err := getDuration("TIER_CACHE_TTL", defaultTierCacheTTL)
	if err != nil {
		return nil, err
	}

	generationTimeout, err := getDuration("GENERATION_TIMEOUT", defaultGenerationTimeout)
	if err != nil {
		return nil, err
	}

	accessMode := getEnv("ACCESS_MODE", "gated")
	if accessMode != "gated" && accessMode != "unrestricted" {
		return nil, fmt.Errorf("ACCESS_MODE must be gated or unrestricted, got %q", accessMode)
	}

	stateBackend := getEnv("STATE_BACKEND", StateBackendMemory)
	redisURL := os.Getenv("REDIS_URL")

	switch stateBackend {
	case StateBackendMemory:
	case StateBackendRedis:
		if redisURL == "" {
			return nil, fmt.Errorf("REDIS_URL environment variable is required when STATE_BACKEND=redis")
		}
	default:
		return nil, fmt.Errorf("STATE_BACKEND must be memory or redis, got %q", stateBackend)
	}

	stripeWebhookSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if environment == "production" && stripeWebhookSecret == "" {
		return nil, fmt.Errorf("STRIPE_WEBHOOK_SECRET environment variable is required in production")
	}

	return &Config{
		Environment:         environment,
		Port:                getEnv("PORT", defaultPort),
		AccessMode:          accessMode,
		FreeTierLimit:       freeTierLimit,
		TierCacheTTL:        tierCacheTTL,
		UpgradeURL:          getEnv("UPGRADE_URL", defaultUpgradeURL),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		StateBackend:        stateBackend,
		RedisURL:            redisURL,
		RateLimit:           getEnv("RATE_LIMIT", defaultRateLimit),
		AllowedOrigins:      splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: stripeWebhookSecret,
		GenerationTimeout:   generationTimeout,
		SwaggerEnabled:      os.Getenv("SWAGGER_ENABLED") == "true",
	}, nil
}

func getEnv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}

	return fallback
}

func getUint(key string, fallback uint) (uint, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}

	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s must be a non-negative integer: %w", key, err)
	}

	return uint(val), nil
}

// accepts Go durations ("45s", "30m") or a bare number of seconds
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}

	if seconds, err := strconv.Atoi(raw); err == nil {
		if seconds <= 0 {
			return 0, fmt.Errorf("%s must be positive", key)
		}

		return time.Duration(seconds) * time.Second, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}

	if val <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}

	return val, nil
}

func splitList(raw string) []string {
	var out []string

	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
