package billing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// counts lookups and answers from a fixed map
type countingLookup struct {
	calls  atomic.Int32
	active map[string]bool
	err    error
	delay  time.Duration
}

func (l *countingLookup) HasActiveSubscription(_ context.Context, customerID string) (bool, error) {
	l.calls.Add(1)

	if l.delay > 0 {
		time.Sleep(l.delay)
	}

	if l.err != nil {
		return false, l.err
	}

	return l.active[customerID], nil
}

// manually advanced clock
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func TestResolver_CachesWithinTTL(t *testing.T) {
	lookup := &countingLookup{active: map[string]bool{"cus_pro": true}}
	clock := newClock()
	resolver := NewResolver(lookup, NewMemoryTierCache(), 30*time.Minute, WithClock(clock.Now))
	ctx := context.Background()

	assert.Equal(t, TierPro, resolver.Resolve(ctx, "cus_pro"))
	clock.Advance(29 * time.Minute)
	assert.Equal(t, TierPro, resolver.Resolve(ctx, "cus_pro"))
	assert.Equal(t, int32(1), lookup.calls.Load())

	// expiry is inclusive of the TTL boundary
	clock.Advance(time.Minute)
	assert.Equal(t, TierPro, resolver.Resolve(ctx, "cus_pro"))
	assert.Equal(t, int32(2), lookup.calls.Load())
}

func TestResolver_LookupErrorFailsOpenToFreeAndCaches(t *testing.T) {
	lookup := &countingLookup{err: errors.New("stripe unreachable")}
	clock := newClock()
	resolver := NewResolver(lookup, nil, time.Minute, WithClock(clock.Now))
	ctx := context.Background()

	assert.Equal(t, TierFree, resolver.Resolve(ctx, "cus_1"))
	assert.Equal(t, TierFree, resolver.Resolve(ctx, "cus_1"))
	assert.Equal(t, int32(1), lookup.calls.Load())
}

func TestResolver_InactiveIsFree(t *testing.T) {
	lookup := &countingLookup{active: map[string]bool{}}
	resolver := NewResolver(lookup, nil, 0)

	assert.Equal(t, TierFree, resolver.Resolve(context.Background(), "cus_none"))
	assert.Equal(t, DefaultTierTTL, resolver.ttl)
}

func TestResolver_ConcurrentMissesShareOneLookup(t *testing.T) {
	lookup := &countingLookup{active: map[string]bool{"cus_pro": true}, delay: 50 * time.Millisecond}
	resolver := NewResolver(lookup, NewMemoryTierCache(), time.Minute)

	var wg sync.WaitGroup
	results := make([]Tier, 20)

	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = resolver.Resolve(context.Background(), "cus_pro")
		}(i)
	}

	wg.Wait()

	for _, tier := range results {
		assert.Equal(t, TierPro, tier)
	}

	assert.Equal(t, int32(1), lookup.calls.Load())
}

// answers after a delay unless its context ends first
type slowLookup struct {
	calls  atomic.Int32
	active bool
	delay  time.Duration
}

func (l *slowLookup) HasActiveSubscription(ctx context.Context, _ string) (bool, error) {
	l.calls.Add(1)

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-time.After(l.delay):
		return l.active, nil
	}
}

func TestResolver_CallerCancellationDoesNotDemote(t *testing.T) {
	lookup := &slowLookup{active: true, delay: 50 * time.Millisecond}
	resolver := NewResolver(lookup, NewMemoryTierCache(), 30*time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	assert.Equal(t, TierPro, resolver.Resolve(ctx, "cus_pro"))
	assert.Equal(t, TierPro, resolver.Resolve(context.Background(), "cus_pro"))
	assert.Equal(t, int32(1), lookup.calls.Load())
}

func TestResolver_CancelledLookupIsNotCached(t *testing.T) {
	lookup := &countingLookup{err: context.Canceled}
	resolver := NewResolver(lookup, NewMemoryTierCache(), 30*time.Minute)
	ctx := context.Background()

	assert.Equal(t, TierFree, resolver.Resolve(ctx, "cus_pro"))

	lookup.err = nil
	lookup.active = map[string]bool{"cus_pro": true}

	assert.Equal(t, TierPro, resolver.Resolve(ctx, "cus_pro"))
	assert.Equal(t, int32(2), lookup.calls.Load())
}

func TestResolver_IdentitiesAreIndependent(t *testing.T) {
	lookup := &countingLookup{active: map[string]bool{"a": true}}
	resolver := NewResolver(lookup, nil, time.Minute)
	ctx := context.Background()

	assert.Equal(t, TierPro, resolver.Resolve(ctx, "a"))
	assert.Equal(t, TierFree, resolver.Resolve(ctx, "b"))
	assert.Equal(t, int32(2), lookup.calls.Load())
}

func TestRedisTierCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close() //nolint:errcheck

	cache := NewRedisTierCache(rdb)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "cus_1")
	require.NoError(t, err)
	assert.False(t, ok)

	record := TierRecord{Tier: TierPro, ResolvedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), TTL: time.Minute}
	require.NoError(t, cache.Set(ctx, "cus_1", record))

	got, ok, err := cache.Get(ctx, "cus_1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, record.Tier, got.Tier)
	assert.True(t, record.ResolvedAt.Equal(got.ResolvedAt))

	assert.Equal(t, time.Minute, mr.TTL("lessonplanner:tier:cus_1"))

	mr.FastForward(2 * time.Minute)

	_, ok, err = cache.Get(ctx, "cus_1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolver_WithRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close() //nolint:errcheck

	lookup := &countingLookup{active: map[string]bool{"cus_pro": true}}
	resolver := NewResolver(lookup, NewRedisTierCache(rdb), time.Minute)
	ctx := context.Background()

	assert.Equal(t, TierPro, resolver.Resolve(ctx, "cus_pro"))
	assert.Equal(t, TierPro, resolver.Resolve(ctx, "cus_pro"))
	assert.Equal(t, int32(1), lookup.calls.Load())
}

func TestStaticLookup(t *testing.T) {
	lookup := NewStaticLookup()

	active, err := lookup.HasActiveSubscription(context.Background(), "paid_teacher")
	require.NoError(t, err)
	assert.True(t, active)

	active, err = lookup.HasActiveSubscription(context.Background(), "teacher")
	require.NoError(t, err)
	assert.False(t, active)
}

func newStripeTestLookup(t *testing.T, handler http.HandlerFunc) *StripeLookup {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(server.URL),
		MaxNetworkRetries: stripe.Int64(0),
	})

	sc := client.New("sk_test_123", &stripe.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	})

	return NewStripeLookupWithClient(sc)
}

func TestStripeLookup(t *testing.T) {
	testCases := []struct {
		name   string
		status string
		want   bool
	}{
		{"active", "active", true},
		{"trialing", "trialing", false},
		{"canceled", "canceled", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lookup := newStripeTestLookup(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/subscriptions", r.URL.Path)
				assert.Equal(t, "cus_123", r.URL.Query().Get("customer"))
				assert.Equal(t, "all", r.URL.Query().Get("status"))

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"object":"list","url":"/v1/subscriptions","has_more":false,"data":[{"id":"sub_1","object":"subscription","status":"` + tc.status + `"}]}`)) //nolint:errcheck
			})

			active, err := lookup.HasActiveSubscription(context.Background(), "cus_123")

			require.NoError(t, err)
			assert.Equal(t, tc.want, active)
		})
	}
}

func TestStripeLookup_Error(t *testing.T) {
	lookup := newStripeTestLookup(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Invalid API Key provided"}}`)) //nolint:errcheck
	})

	_, err := lookup.HasActiveSubscription(context.Background(), "cus_123")

	assert.Error(t, err)
}
