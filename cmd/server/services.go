package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/lessonplanner/server/internal/access"
	"codeberg.org/lessonplanner/server/internal/agent"
	"codeberg.org/lessonplanner/server/internal/billing"
	"codeberg.org/lessonplanner/server/internal/config"
	"codeberg.org/lessonplanner/server/internal/llm"
	"codeberg.org/lessonplanner/server/internal/logger"
	"codeberg.org/lessonplanner/server/internal/usage"
	"github.com/redis/go-redis/v9"
)

// wires the lesson pipeline around a text generator. rdb selects the Redis-backed
// tier cache and usage store; nil keeps both in process memory
func InitializeServices(cfg *config.Config, generator llm.TextGenerator, agentConfig agent.Config, rdb *redis.Client) (*Services, error) {
	mode, err := access.ParseMode(cfg.AccessMode)
	if err != nil {
		return nil, err
	}

	var lookup billing.SubscriptionLookup
	if cfg.StripeSecretKey != "" {
		lookup = billing.NewStripeLookup(cfg.StripeSecretKey)
	} else {
		logger.Warn("STRIPE_SECRET_KEY not set, using static subscription lookup")
		lookup = billing.NewStaticLookup()
	}

	var (
		tierCache  billing.TierCache
		usageStore usage.Store
	)

	if rdb != nil {
		tierCache = billing.NewRedisTierCache(rdb)
		usageStore = usage.NewRedisStore(rdb)
	} else {
		tierCache = billing.NewMemoryTierCache()
		usageStore = usage.NewMemoryStore()
	}

	if agentConfig.AttemptTimeout == 0 {
		agentConfig.AttemptTimeout = cfg.GenerationTimeout
	}

	resolver := billing.NewResolver(lookup, tierCache, cfg.TierCacheTTL)
	ledger := usage.NewLedger(usageStore, cfg.FreeTierLimit)

	return &Services{
		Agent:    agent.New(generator, agentConfig),
		Resolver: resolver,
		Ledger:   ledger,
		Gate:     access.NewGate(mode, resolver, ledger),
	}, nil
}

// builds the configured model provider from the environment
func InitializeGenerator() (llm.TextGenerator, agent.Config, error) {
	generator, llmConfig, err := llm.NewGenerator()
	if err != nil {
		return nil, agent.Config{}, fmt.Errorf("failed to create generator: %w", err)
	}

	return generator, agent.Config{
		PrimaryModel:   llmConfig.PrimaryModel,
		SecondaryModel: llmConfig.SecondaryModel,
		MaxTokens:      llmConfig.MaxTokens,
	}, nil
}

// connects to Redis when the redis state backend is selected
func InitializeRedis(cfg *config.Config) (*redis.Client, error) {
	if cfg.StateBackend != config.StateBackendRedis {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}
