package usage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

const keyUsage = "lessonplanner:usage:%s"

// persists per-identity generation counters
type Store interface {
	Count(ctx context.Context, identity string) (uint, error)
	Increment(ctx context.Context, identity string) (uint, error)
	// increments only while the counter is below limit, as one atomic step
	IncrementIfBelow(ctx context.Context, identity string, limit uint) (uint, bool, error)
	// decrements a counter that is above zero
	Decrement(ctx context.Context, identity string) (uint, error)
}

// implements Store with a mutex-guarded map; state is lost on restart
type MemoryStore struct {
	mu     sync.Mutex
	counts map[string]uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counts: make(map[string]uint)}
}

func (s *MemoryStore) Count(_ context.Context, identity string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.counts[identity], nil
}

func (s *MemoryStore) Increment(_ context.Context, identity string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counts[identity]++
	return s.counts[identity], nil
}

func (s *MemoryStore) IncrementIfBelow(_ context.Context, identity string, limit uint) (uint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := s.counts[identity]
	if count >= limit {
		return count, false, nil
	}

	s.counts[identity] = count + 1
	return count + 1, true, nil
}

func (s *MemoryStore) Decrement(_ context.Context, identity string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.counts[identity] > 0 {
		s.counts[identity]--
	}

	return s.counts[identity], nil
}

// returns {count, 1} after incrementing, {count, 0} when the limit is reached
var incrementIfBelowScript = redis.NewScript(`
local current = tonumber(redis.call("GET", KEYS[1]) or "0")
if current >= tonumber(ARGV[1]) then
  return {current, 0}
end
return {redis.call("INCR", KEYS[1]), 1}
`)

var decrementScript = redis.NewScript(`
local current = tonumber(redis.call("GET", KEYS[1]) or "0")
if current <= 0 then
  return 0
end
return redis.call("DECR", KEYS[1])
`)

// implements Store using Redis INCR and Lua scripts for the conditional updates
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Count(ctx context.Context, identity string) (uint, error) {
	n, err := s.client.Get(ctx, fmt.Sprintf(keyUsage, identity)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	if err != nil {
		return 0, fmt.Errorf("failed to read usage: %w", err)
	}

	return uint(n), nil
}

func (s *RedisStore) Increment(ctx context.Context, identity string) (uint, error) {
	n, err := s.client.Incr(ctx, fmt.Sprintf(keyUsage, identity)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment usage: %w", err)
	}

	return uint(n), nil
}

func (s *RedisStore) IncrementIfBelow(ctx context.Context, identity string, limit uint) (uint, bool, error) {
	vals, err := incrementIfBelowScript.Run(ctx, s.client, []string{fmt.Sprintf(keyUsage, identity)}, limit).Int64Slice()
	if err != nil {
		return 0, false, fmt.Errorf("failed to reserve usage: %w", err)
	}

	if len(vals) < 2 {
		return 0, false, fmt.Errorf("unexpected reserve result %v", vals)
	}

	return uint(vals[0]), vals[1] == 1, nil
}

func (s *RedisStore) Decrement(ctx context.Context, identity string) (uint, error) {
	n, err := decrementScript.Run(ctx, s.client, []string{fmt.Sprintf(keyUsage, identity)}).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to release usage: %w", err)
	}

	return uint(n), nil
}
