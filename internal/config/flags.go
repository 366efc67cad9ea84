package config

import (
	"flag"
	"time"
)

// parses CLI flags for the tokengen command
func ParseTokenFlags(args []string) (TokenFlags, error) {
	fs := flag.NewFlagSet("tokengen", flag.ContinueOnError)
	customerID := fs.String("customer", "", "billing customer id to embed in the token")
	ttl := fs.Duration("ttl", 30*24*time.Hour, "token lifetime")

	if err := fs.Parse(args); err != nil {
		return TokenFlags{}, err
	}

	return TokenFlags{CustomerID: *customerID, TTL: *ttl}, nil
}
