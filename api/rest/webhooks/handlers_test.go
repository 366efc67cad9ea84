package webhooks

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v76/webhook"
)

const testSecret = "whsec_test_secret"

const checkoutEvent = `{
	"id": "evt_checkout",
	"object": "event",
	"type": "checkout.session.completed",
	"data": {"object": {"id": "cs_test_1", "object": "checkout.session", "customer": "cus_123"}}
}`

const subscriptionDeletedEvent = `{
	"id": "evt_deleted",
	"object": "event",
	"type": "customer.subscription.deleted",
	"data": {"object": {"id": "sub_1", "object": "subscription", "customer": "cus_123", "status": "canceled"}}
}`

func newWebhookRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	RegisterRoutes(router, secret)

	return router
}

func postSigned(router *gin.Engine, payload string, secret string) *httptest.ResponseRecorder {
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    secret,
		Timestamp: time.Now(),
	})

	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", bytes.NewReader(signed.Payload))
	req.Header.Set("Stripe-Signature", signed.Header)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestStripeHandler_HandledEvents(t *testing.T) {
	router := newWebhookRouter(testSecret)

	for _, payload := range []string{checkoutEvent, subscriptionDeletedEvent} {
		w := postSigned(router, payload, testSecret)

		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"status":"success"}`, w.Body.String())
	}
}

func TestStripeHandler_UnhandledEventIsAcknowledged(t *testing.T) {
	router := newWebhookRouter(testSecret)

	w := postSigned(router, `{"id":"evt_other","object":"event","type":"invoice.paid","data":{"object":{"id":"in_1"}}}`, testSecret)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStripeHandler_RecordsEventType(t *testing.T) {
	router := newWebhookRouter(testSecret)

	before := webhookEventCount(t, "customer.subscription.deleted")
	postSigned(router, subscriptionDeletedEvent, testSecret)

	assert.Equal(t, before+1, webhookEventCount(t, "customer.subscription.deleted"))
}

func TestStripeHandler_RejectsBadSignature(t *testing.T) {
	router := newWebhookRouter(testSecret)

	w := postSigned(router, checkoutEvent, "whsec_other")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", bytes.NewBufferString(checkoutEvent))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStripeHandler_RejectsMalformedPayload(t *testing.T) {
	router := newWebhookRouter(testSecret)

	w := postSigned(router, `{"id":"evt_bad","object":"event","type":"checkout.session.completed","data":{"object":{"id":42}}}`, testSecret)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postSigned(router, `not json`, testSecret)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStripeHandler_Unconfigured(t *testing.T) {
	router := newWebhookRouter("")

	w := postSigned(router, checkoutEvent, testSecret)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func webhookEventCount(t *testing.T, eventType string) float64 {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != "stripe_webhook_events_total" {
			continue
		}

		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "type" && label.GetValue() == eventType {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}

	return 0
}
