package webhooks

// maximum webhook body accepted, matching Stripe's own guidance
const maxBodyBytes = int64(65536)

const (
	eventCheckoutCompleted   = "checkout.session.completed"
	eventSubscriptionDeleted = "customer.subscription.deleted"
)

type Response struct {
	Status string `json:"status" example:"success"`
}
