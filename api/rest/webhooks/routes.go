package webhooks

import "github.com/gin-gonic/gin"

func RegisterRoutes(router gin.IRoutes, webhookSecret string) {
	h := &handler{secret: webhookSecret}

	router.POST("/webhooks/stripe", h.StripeHandler)
}
