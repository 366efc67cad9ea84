package webhooks

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"codeberg.org/lessonplanner/server/internal/errors"
	"codeberg.org/lessonplanner/server/internal/logger"
	"codeberg.org/lessonplanner/server/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

type handler struct {
	secret string
}

// StripeHandler godoc
// @Summary Receive Stripe events
// @Description Verifies the Stripe-Signature header and records subscription lifecycle events
// @Tags webhooks
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Stripe signature"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Router /webhooks/stripe [post]
func (h *handler) StripeHandler(c *gin.Context) {
	if h.secret == "" {
		errors.BadRequest(c, "webhooks are not configured", nil)
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		errors.BadRequest(c, "invalid payload", err)
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		errors.BadRequest(c, "invalid signature", err)
		return
	}

	if err := handleEvent(event); err != nil {
		errors.BadRequest(c, "invalid payload", err)
		return
	}

	metrics.RecordWebhookEvent(string(event.Type))

	c.JSON(http.StatusOK, Response{Status: "success"})
}

// tier changes take effect when the cached record expires
func handleEvent(event stripe.Event) error {
	if event.Data == nil {
		return fmt.Errorf("event %s has no data", event.ID)
	}

	switch event.Type {
	case eventCheckoutCompleted:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return fmt.Errorf("failed to parse checkout session: %w", err)
		}

		logger.Info("checkout completed",
			"event_id", event.ID,
			"session_id", session.ID,
			"customer", customerID(session.Customer),
		)

	case eventSubscriptionDeleted:
		var subscription stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &subscription); err != nil {
			return fmt.Errorf("failed to parse subscription: %w", err)
		}

		logger.Info("subscription canceled",
			"event_id", event.ID,
			"subscription_id", subscription.ID,
			"customer", customerID(subscription.Customer),
		)

	default:
		logger.Debug("ignoring stripe event", "event_id", event.ID, "type", event.Type)
	}

	return nil
}

func customerID(customer *stripe.Customer) string {
	if customer == nil {
		return ""
	}

	return customer.ID
}
