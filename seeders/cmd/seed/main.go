package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"garment-oms/pkg/config"
	"garment-oms/pkg/database/postgresql"
	"garment-oms/seeders"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found")
	}
	cfg := config.New()

	runAdmin := flag.Bool("admin", false, "create the bootstrap admin user")
	runDemo := flag.Bool("demo", false, "load demo company, client and products")
	runAll := flag.Bool("all", false, "run every seeder")
	flag.Parse()

	if !*runAdmin && !*runDemo && !*runAll {
		log.Println("no seeder selected")
		flag.PrintDefaults()
		return
	}

	db, err := postgresql.Connect(context.Background(), cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	if *runAdmin || *runAll {
		seeders.SeedAdmin(db)
	}
	if *runDemo || *runAll {
		seeders.SeedDemoData(db)
	}
}
