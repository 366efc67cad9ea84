package main

import (
	"fmt"
	"os"

	"codeberg.org/lessonplanner/server/internal/auth"
	"codeberg.org/lessonplanner/server/internal/config"
	"github.com/joho/godotenv"
)

// issues a signed identity token for a billing customer
func main() {
	_ = godotenv.Load() //nolint:errcheck // .env is optional

	flags, err := config.ParseTokenFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if flags.CustomerID == "" {
		fmt.Fprintln(os.Stderr, "usage: tokengen -customer <customer id> [-ttl 720h]")
		os.Exit(2)
	}

	token, err := auth.GenerateJWT(flags.CustomerID, os.Getenv("JWT_SECRET"), flags.TTL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
