// Command gen-token prints a bearer token for the move endpoint.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/config"

	"github.com/google/uuid"
)

func main() {
	cfg := config.Load()

	userID := flag.String("user", "", "user UUID to put in the token (random if empty)")
	ttl := flag.Duration("ttl", time.Duration(cfg.JWTExpiryHours)*time.Hour, "token lifetime")
	flag.Parse()

	if cfg.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is not set")
		os.Exit(1)
	}
	if *userID == "" {
		*userID = uuid.NewString()
	} else if _, err := uuid.Parse(*userID); err != nil {
		fmt.Fprintf(os.Stderr, "user id must be a UUID: %v\n", err)
		os.Exit(1)
	}

	token, err := auth.GenerateToken(cfg.JWTSecret, *userID, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
