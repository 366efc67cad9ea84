package billing

import (
	"context"
	"errors"
	"time"

	"codeberg.org/lessonplanner/server/internal/logger"
	"codeberg.org/lessonplanner/server/internal/metrics"
	"golang.org/x/sync/singleflight"
)

// bounds one subscription lookup, independent of the request that triggered it
const lookupTimeout = 10 * time.Second

// resolves tiers through a SubscriptionLookup with a TTL cache in front.
// concurrent misses for the same identity share one lookup
type Resolver struct {
	lookup SubscriptionLookup
	cache  TierCache
	ttl    time.Duration
	group  singleflight.Group
	now    func() time.Time
}

type ResolverOption func(*Resolver)

// overrides the clock (tests)
func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) {
		r.now = now
	}
}

func NewResolver(lookup SubscriptionLookup, cache TierCache, ttl time.Duration, opts ...ResolverOption) *Resolver {
	if ttl <= 0 {
		ttl = DefaultTierTTL
	}

	if cache == nil {
		cache = NewMemoryTierCache()
	}

	r := &Resolver{
		lookup: lookup,
		cache:  cache,
		ttl:    ttl,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// never fails: lookup errors resolve to Free, and that result is cached too.
// the shared lookup ignores the caller's cancellation and runs under lookupTimeout
func (r *Resolver) Resolve(ctx context.Context, identity string) Tier {
	if record, ok := r.cached(ctx, identity); ok {
		metrics.RecordTierLookup("cache_hit")
		return record.Tier
	}

	result, _, _ := r.group.Do(identity, func() (any, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lookupTimeout)
		defer cancel()

		// another caller may have refreshed while we waited on the group
		if record, ok := r.cached(lookupCtx, identity); ok {
			return record.Tier, nil
		}

		tier, cacheable := r.lookupTier(lookupCtx, identity)
		if !cacheable {
			return tier, nil
		}

		record := TierRecord{Tier: tier, ResolvedAt: r.now(), TTL: r.ttl}
		if err := r.cache.Set(lookupCtx, identity, record); err != nil {
			logger.Warn("failed to cache tier", "identity", identity, "error", err)
		}

		return tier, nil
	})

	return result.(Tier)
}

func (r *Resolver) cached(ctx context.Context, identity string) (TierRecord, bool) {
	record, ok, err := r.cache.Get(ctx, identity)
	if err != nil {
		logger.Warn("failed to read tier cache", "identity", identity, "error", err)
		return TierRecord{}, false
	}

	if !ok || !record.Fresh(r.now()) {
		return TierRecord{}, false
	}

	return record, true
}

// a cancelled lookup is answered with Free but not cached
func (r *Resolver) lookupTier(ctx context.Context, identity string) (Tier, bool) {
	active, err := r.lookup.HasActiveSubscription(ctx, identity)
	if err != nil {
		metrics.RecordTierLookup("lookup_error")
		logger.Warn("subscription lookup failed, treating as free",
			"identity", identity,
			"error", err,
		)

		return TierFree, !errors.Is(err, context.Canceled)
	}

	metrics.RecordTierLookup("lookup")

	if active {
		return TierPro, true
	}

	return TierFree, true
}
