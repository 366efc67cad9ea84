package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// gin context key holding the caller's identity
const ContextKeyIdentity = "identity"

// represents JWT claims
type Claims struct {
	CustomerID string `json:"customer_id,omitempty"` // billing customer id
	jwt.RegisteredClaims
}

// the billing identity carried by the token: customer_id, falling back to sub
func (c *Claims) Identity() string {
	if c.CustomerID != "" {
		return c.CustomerID
	}

	return c.Subject
}
