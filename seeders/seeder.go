package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedAdmin creates the bootstrap admin account if none exists.
func SeedAdmin(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("seeding admin user...")
	if err := seedAdminUser(ctx, db); err != nil {
		log.Fatalf("admin seeder failed: %v", err)
	}
	log.Println("admin seeder done")
}

// SeedDemoData loads a small demo company with clients and products so the
// board has cards to show on a fresh install.
func SeedDemoData(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("seeding demo data...")
	if err := seedDemoCompany(ctx, db); err != nil {
		log.Fatalf("demo seeder failed: %v", err)
	}
	log.Println("demo seeder done")
}
