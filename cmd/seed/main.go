// Command seed creates the admin accounts allowed to log in. Only
// seeded emails can request an OTP, so run this once against a fresh
// environment before starting the API.
package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/hrms-lite/api/internal/config"
	"github.com/hrms-lite/api/internal/domain"
	"github.com/hrms-lite/api/internal/infrastructure/dynamo"
	"github.com/hrms-lite/api/internal/pkg/id"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	if len(cfg.SeedAdminEmails) == 0 {
		log.Fatal("SEED_ADMIN_EMAILS is empty, nothing to seed")
	}

	ctx := context.Background()
	client := dynamo.NewClient(cfg)
	dynamo.Bootstrap(ctx, client, cfg.DynamoTables)

	users := dynamo.NewUserRepo(client, cfg.DynamoTables.Users)

	for _, email := range cfg.SeedAdminEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			continue
		}

		if existing, err := users.GetByEmail(ctx, email); err == nil && existing != nil {
			log.Printf("skip %s: already exists", email)
			continue
		}

		now := time.Now().UTC()
		u := &domain.User{
			UserID:    id.New(),
			Email:     email,
			Role:      domain.RoleAdmin,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := users.Put(ctx, u); err != nil {
			log.Fatalf("seed %s: %v", email, err)
		}
		log.Printf("seeded %s (%s)", email, u.UserID)
	}
}
