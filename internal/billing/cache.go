package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

const keyTier = "lessonplanner:tier:%s"

// backing store for resolved tiers
type TierCache interface {
	Get(ctx context.Context, identity string) (TierRecord, bool, error)
	Set(ctx context.Context, identity string, record TierRecord) error
}

// implements TierCache with a mutex-guarded map. entries are only replaced,
// never purged
type MemoryTierCache struct {
	mu      sync.RWMutex
	records map[string]TierRecord
}

func NewMemoryTierCache() *MemoryTierCache {
	return &MemoryTierCache{records: make(map[string]TierRecord)}
}

func (c *MemoryTierCache) Get(_ context.Context, identity string) (TierRecord, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	record, ok := c.records[identity]
	return record, ok, nil
}

func (c *MemoryTierCache) Set(_ context.Context, identity string, record TierRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records[identity] = record
	return nil
}

// implements TierCache using Redis; keys expire with the record's TTL
type RedisTierCache struct {
	client *redis.Client
}

func NewRedisTierCache(client *redis.Client) *RedisTierCache {
	return &RedisTierCache{client: client}
}

func (c *RedisTierCache) Get(ctx context.Context, identity string) (TierRecord, bool, error) {
	raw, err := c.client.Get(ctx, fmt.Sprintf(keyTier, identity)).Bytes()
	if errors.Is(err, redis.Nil) {
		return TierRecord{}, false, nil
	}

	if err != nil {
		return TierRecord{}, false, fmt.Errorf("failed to read tier: %w", err)
	}

	var record TierRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return TierRecord{}, false, fmt.Errorf("failed to decode tier record: %w", err)
	}

	return record, true, nil
}

func (c *RedisTierCache) Set(ctx context.Context, identity string, record TierRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode tier record: %w", err)
	}

	if err := c.client.Set(ctx, fmt.Sprintf(keyTier, identity), raw, record.TTL).Err(); err != nil {
		return fmt.Errorf("failed to write tier: %w", err)
	}

	return nil
}
