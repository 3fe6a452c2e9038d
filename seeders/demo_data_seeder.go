package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedDemoCompany(ctx context.Context, db *pgxpool.Pool) error {
	var companyID uint64
	err := db.QueryRow(ctx, "SELECT id FROM companies WHERE short_code = 'DEMO'").Scan(&companyID)
	if err == nil {
		log.Println("  demo company already exists, skipping")
		return nil
	}

	err = db.QueryRow(ctx,
		`INSERT INTO companies (name, short_code, email, phone)
		 VALUES ('Demo Garments Pvt Ltd', 'DEMO', 'hello@demogarments.example', '+919800000000')
		 RETURNING id`).Scan(&companyID)
	if err != nil {
		return fmt.Errorf("insert demo company: %w", err)
	}

	var clientID uint64
	err = db.QueryRow(ctx,
		`INSERT INTO clients (company_id, name, email, city)
		 VALUES ($1, 'Urban Threads Retail', 'orders@urbanthreads.example', 'Mumbai')
		 RETURNING id`, companyID).Scan(&clientID)
	if err != nil {
		return fmt.Errorf("insert demo client: %w", err)
	}

	products := []struct {
		name, sku, fabric string
		price             float64
	}{
		{"Classic Polo Shirt", "POLO-CL-01", "Pique Cotton", 450},
		{"Oxford Dress Shirt", "SHRT-OX-02", "Oxford Cotton", 780},
		{"Fleece Hoodie", "HOOD-FL-03", "Cotton Fleece", 950},
	}
	for _, p := range products {
		_, err := db.Exec(ctx,
			`INSERT INTO products (company_id, name, sku, fabric, unit_price)
			 VALUES ($1, $2, $3, $4, $5)`,
			companyID, p.name, p.sku, p.fabric, p.price)
		if err != nil {
			return fmt.Errorf("insert demo product %s: %w", p.sku, err)
		}
	}

	log.Printf("  demo company %d with client %d and %d products created", companyID, clientID, len(products))
	return nil
}
