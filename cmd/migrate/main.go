package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"storefront-events/config"
	"storefront-events/internal/domain/audit"
	"storefront-events/internal/repository"
	"storefront-events/pkg/database"
)

const usage = `
Storefront Events - Audit Database CLI Tool

Usage:
  migrate [command]

Commands:
  up          Create the audit_records table and indexes
  down        Drop the audit_records table (DANGEROUS)
  status      Show database connection status and record counts

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go status
`

func main() {
	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg := config.LoadConfig()
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer db.Close()

	switch command {
	case "up":
		log.Println("🚀 Applying audit schema...")
		if err := repository.InitSchema(ctx, db); err != nil {
			log.Fatalf("❌ Migration failed: %v", err)
		}
		log.Println("✅ Audit schema is up to date!")
	case "down":
		log.Println("⚠️  Dropping audit_records...")
		if err := repository.DropSchema(ctx, db); err != nil {
			log.Fatalf("❌ Rollback failed: %v", err)
		}
		log.Println("✅ Audit schema dropped")
	case "status":
		log.Println("🔍 Checking database status...")
		if err := database.HealthCheck(ctx, db); err != nil {
			log.Fatalf("❌ Database connection failed: %v", err)
		}
		log.Println("✅ Database connection: OK")

		repo := repository.NewAuditRepository(db)
		for _, partition := range []string{audit.PartitionOrderProcess, audit.PartitionStockAudit, audit.PartitionImageProcess} {
			count, err := repo.CountByPartition(ctx, partition)
			if err != nil {
				log.Printf("⚠️  Error counting %s: %v", partition, err)
				continue
			}
			log.Printf("✅ Partition %-14s %d records", partition, count)
		}
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}
