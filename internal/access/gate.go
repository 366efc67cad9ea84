package access

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/lessonplanner/server/internal/billing"
	"codeberg.org/lessonplanner/server/internal/usage"
)

// controls whether the gate consults tiers and quotas at all
type Mode string

const (
	ModeGated        Mode = "gated"
	ModeUnrestricted Mode = "unrestricted" // everyone is Pro, nothing is counted
)

var ErrQuotaExceeded = errors.New("free tier generation limit reached")

// outcome of an admission check
type Decision struct {
	Allowed   bool
	Tier      billing.Tier
	Remaining usage.Remaining
}

// combines tier resolution and usage accounting into one admission check
type Gate struct {
	mode     Mode
	resolver billing.TierResolver
	ledger   *usage.Ledger
}

func NewGate(mode Mode, resolver billing.TierResolver, ledger *usage.Ledger) *Gate {
	if mode == "" {
		mode = ModeGated
	}

	return &Gate{
		mode:     mode,
		resolver: resolver,
		ledger:   ledger,
	}
}

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeGated:
		return ModeGated, nil
	case ModeUnrestricted:
		return ModeUnrestricted, nil
	default:
		return "", fmt.Errorf("unknown access mode %q (expected %q or %q)", s, ModeGated, ModeUnrestricted)
	}
}

func (g *Gate) Mode() Mode {
	return g.mode
}

// resolves the tier and reserves one generation slot. a denied decision is
// returned together with ErrQuotaExceeded. every admitted decision must end in
// either Record or Release
func (g *Gate) Admit(ctx context.Context, identity string) (Decision, error) {
	if g.mode == ModeUnrestricted {
		return Decision{Allowed: true, Tier: billing.TierPro, Remaining: usage.Unlimited()}, nil
	}

	tier := g.resolver.Resolve(ctx, identity)

	remaining, allowed, err := g.ledger.Reserve(ctx, identity, tier)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to reserve usage: %w", err)
	}

	decision := Decision{Allowed: allowed, Tier: tier, Remaining: remaining}
	if !allowed {
		return decision, ErrQuotaExceeded
	}

	return decision, nil
}

// keeps the slot reserved at admission for a completed generation and returns the
// remaining allowance to report back to the caller
func (g *Gate) Record(_ context.Context, identity string, decision Decision) (usage.Remaining, error) {
	if !decision.Allowed {
		return usage.Remaining{}, fmt.Errorf("cannot record usage for %s: not admitted", identity)
	}

	if g.mode == ModeUnrestricted {
		return usage.Unlimited(), nil
	}

	return decision.Remaining, nil
}

// returns the slot reserved at admission for a call that does not count
func (g *Gate) Release(ctx context.Context, identity string, decision Decision) (usage.Remaining, error) {
	if !decision.Allowed {
		return usage.Remaining{}, fmt.Errorf("cannot release usage for %s: not admitted", identity)
	}

	if g.mode == ModeUnrestricted {
		return usage.Unlimited(), nil
	}

	remaining, err := g.ledger.Release(ctx, identity, decision.Tier)
	if err != nil {
		return usage.Remaining{}, fmt.Errorf("failed to release usage: %w", err)
	}

	return remaining, nil
}
