package usage

import (
	"context"

	"codeberg.org/lessonplanner/server/internal/billing"
)

const DefaultFreeLimit = 3

// counts completed generations and enforces the free-tier limit
type Ledger struct {
	store     Store
	freeLimit uint
}

func NewLedger(store Store, freeLimit uint) *Ledger {
	if store == nil {
		store = NewMemoryStore()
	}

	return &Ledger{
		store:     store,
		freeLimit: freeLimit,
	}
}

func (l *Ledger) FreeLimit() uint {
	return l.freeLimit
}

// Pro always admits; Free admits while its count is below the limit
func (l *Ledger) CanGenerate(ctx context.Context, identity string, tier billing.Tier) (bool, error) {
	if tier == billing.TierPro {
		return true, nil
	}

	count, err := l.store.Count(ctx, identity)
	if err != nil {
		return false, err
	}

	return count < l.freeLimit, nil
}

func (l *Ledger) Remaining(ctx context.Context, identity string, tier billing.Tier) (Remaining, error) {
	if tier == billing.TierPro {
		return Unlimited(), nil
	}

	count, err := l.store.Count(ctx, identity)
	if err != nil {
		return Remaining{}, err
	}

	return Count(l.remainingAfter(count)), nil
}

// increments the identity's counter once and returns the new count
func (l *Ledger) RecordUsage(ctx context.Context, identity string) (uint, error) {
	return l.store.Increment(ctx, identity)
}

// takes one generation slot up front. Free is refused once the limit is reached;
// Pro is always counted and reported as unlimited
func (l *Ledger) Reserve(ctx context.Context, identity string, tier billing.Tier) (Remaining, bool, error) {
	if tier == billing.TierPro {
		if _, err := l.store.Increment(ctx, identity); err != nil {
			return Remaining{}, false, err
		}

		return Unlimited(), true, nil
	}

	count, ok, err := l.store.IncrementIfBelow(ctx, identity, l.freeLimit)
	if err != nil {
		return Remaining{}, false, err
	}

	return Count(l.remainingAfter(count)), ok, nil
}

// gives back a slot taken by Reserve for a call that must not count
func (l *Ledger) Release(ctx context.Context, identity string, tier billing.Tier) (Remaining, error) {
	count, err := l.store.Decrement(ctx, identity)
	if err != nil {
		return Remaining{}, err
	}

	if tier == billing.TierPro {
		return Unlimited(), nil
	}

	return Count(l.remainingAfter(count)), nil
}

// free generations left once count have been used
func (l *Ledger) remainingAfter(count uint) uint {
	if count >= l.freeLimit {
		return 0
	}

	return l.freeLimit - count
}
