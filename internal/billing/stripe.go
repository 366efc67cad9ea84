package billing

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// checks subscriptions through the Stripe API
type StripeLookup struct {
	client *client.API
}

func NewStripeLookup(secretKey string) *StripeLookup {
	return &StripeLookup{client: client.New(secretKey, nil)}
}

// creates a lookup around a preconfigured client (custom backends in tests)
func NewStripeLookupWithClient(sc *client.API) *StripeLookup {
	return &StripeLookup{client: sc}
}

// only subscriptions in status "active" count; trialing and past_due do not
func (l *StripeLookup) HasActiveSubscription(ctx context.Context, customerID string) (bool, error) {
	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String("all"),
	}
	params.Context = ctx

	iter := l.client.Subscriptions.List(params)
	for iter.Next() {
		if iter.Subscription().Status == stripe.SubscriptionStatusActive {
			return true, nil
		}
	}

	if err := iter.Err(); err != nil {
		return false, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	return false, nil
}
