package seeders

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func seedAdminUser(ctx context.Context, db *pgxpool.Pool) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
		log.Println("  ADMIN_PASSWORD not set, using default; change it after first login")
	}

	var existing uint64
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&existing)
	if err == nil {
		log.Println("  admin user already exists, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = db.Exec(ctx,
		`INSERT INTO users (email, password_hash, full_name, role) VALUES ($1, $2, $3, 'admin')`,
		email, string(hash), "Administrator")
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	log.Printf("  admin user %s created", email)
	return nil
}
