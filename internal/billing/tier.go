package billing

import (
	"context"
	"time"
)

// subscription level of an identity
type Tier string

const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
)

const DefaultTierTTL = 30 * time.Minute

func (t Tier) Valid() bool {
	return t == TierFree || t == TierPro
}

func (t Tier) String() string {
	return string(t)
}

// a cached tier resolution
type TierRecord struct {
	Tier       Tier          `json:"tier"`
	ResolvedAt time.Time     `json:"resolved_at"`
	TTL        time.Duration `json:"ttl"`
}

// reports whether the record can still be served at now
func (r TierRecord) Fresh(now time.Time) bool {
	return now.Before(r.ResolvedAt.Add(r.TTL))
}

// answers whether a billing customer currently pays for Pro
type SubscriptionLookup interface {
	HasActiveSubscription(ctx context.Context, customerID string) (bool, error)
}

// maps identities to tiers
type TierResolver interface {
	Resolve(ctx context.Context, identity string) Tier
}
