package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/fixlocal/fixlocal-api/config"
	"github.com/fixlocal/fixlocal-api/pkg/helpers"
)

// Seeds a demo provider with one listed service and a demo user, for
// local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	hash, err := helpers.HashPassword("password123")
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var providerID string
	err = db.QueryRow(`
		INSERT INTO accounts (name, email, password_hash, role, business_name, services_offered)
		VALUES ($1, $2, $3, 'provider', $4, $5)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, "Demo Provider", "provider@fixlocal.dev", hash, "Demo Cleaning Co", []string{"Cleaning", "Plumbing"}).Scan(&providerID)
	if err != nil {
		log.Fatalf("failed to seed provider: %v", err)
	}
	fmt.Printf("seeded provider: id=%s email=provider@fixlocal.dev password=password123\n", providerID)

	var userID string
	err = db.QueryRow(`
		INSERT INTO accounts (name, email, password_hash, role)
		VALUES ($1, $2, $3, 'user')
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, "Demo User", "user@fixlocal.dev", hash).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=user@fixlocal.dev password=password123\n", userID)

	var serviceID string
	err = db.QueryRow(`
		INSERT INTO services (provider_id, name, category, price, description, location)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, providerID, "Deep Home Cleaning", "Cleaning", 120.00, "Full house deep clean, supplies included", "New York, NY").Scan(&serviceID)
	if err != nil {
		log.Fatalf("failed to seed service: %v", err)
	}
	fmt.Printf("seeded service: id=%s\n", serviceID)
}
