package main

import (
	"context"
	"fmt"
	"log"

	"github.com/icy-r/portfolio/auth"
)

func main() {
	authn, err := auth.New(auth.Config{
		AdminEmail: "admin@example.com",
		Secret:     "my-secret-key-12345",
		Store:      auth.NewMemoryStore(),
	})
	if err != nil {
		log.Fatalf("Failed to create authenticator: %v", err)
	}

	ctx := context.Background()

	token, err := authn.Issue()
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}

	fmt.Printf("Issued login token:\n")
	fmt.Printf("  Token: %s\n", token)
	fmt.Printf("\nEmbed it in a link like:\n")
	fmt.Printf("  http://localhost:8080/api/auth/verify-login?token=%s\n\n", token)

	email, err := authn.Verify(ctx, token)
	if err != nil {
		log.Fatalf("Failed to verify token: %v", err)
	}
	fmt.Printf("Token verified for: %s\n", email)
	fmt.Printf("Recently verified: %v\n", authn.IsRecentlyVerified(ctx, email))

	// Login links stay redeemable for their whole validity window, so a
	// second redemption also succeeds.
	if _, err := authn.Verify(ctx, token); err != nil {
		log.Fatalf("Second verification failed: %v", err)
	}
	fmt.Printf("Second verification of the same link also succeeds.\n")
}
