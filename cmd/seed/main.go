// Package main provides a CLI tool for applying migrations and seeding
// demo data.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"

	"medikos/internal/core/types"
	"medikos/internal/domain/catalog"
	"medikos/internal/domain/inventory"
	"medikos/internal/domain/shipment"
	"medikos/internal/infrastructure/storage/postgres"
	"medikos/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	migrationsDir := os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}
	if err := applyMigrations(ctx, pool, migrationsDir, log); err != nil {
		log.Fatalw("failed to apply migrations", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

// applyMigrations executes every .sql file in the directory in name order.
// Statements are idempotent (IF NOT EXISTS), so re-running is safe.
func applyMigrations(ctx context.Context, pool *postgres.Pool, dir string, log *logger.Logger) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		sql, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply %s: %w", file, err)
		}
		log.Infow("migration applied", "file", filepath.Base(file))
	}
	return nil
}

// seedDemoData records a small shipment batch through the real services so
// the catalog, the lots and the shipment ledger all line up.
func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	txManager := postgres.NewTxManager(pool)
	catalogService := catalog.NewService(postgres.NewItemRepo(txManager))
	inventoryService := inventory.NewService(postgres.NewLotRepo(txManager))
	shipmentService := shipment.NewService(
		postgres.NewShipmentRepo(txManager),
		catalogService,
		inventoryService,
		txManager,
	)

	bonus := int64(1)
	lines := []shipment.Input{
		{
			InvoiceNo: "INV-DEMO-1",
			Quantity:  10,
			PackOf:    10,
			Item:      "paracetamol 500mg",
			MRP:       types.MustMoney("21.00"),
			Rate:      types.MustMoney("15.00"),
		},
		{
			InvoiceNo: "INV-DEMO-1",
			Quantity:  5,
			Bonus:     &bonus,
			PackOf:    6,
			Item:      "amoxicillin 250mg",
			MRP:       types.MustMoney("48.00"),
			Rate:      types.MustMoney("36.00"),
		},
		{
			InvoiceNo: "INV-DEMO-2",
			Quantity:  20,
			PackOf:    1,
			Item:      "bandage roll",
			MRP:       types.MustMoney("8.00"),
			Rate:      types.MustMoney("5.00"),
		},
	}

	result, err := shipmentService.RecordBatch(ctx, lines)
	if err != nil {
		return err
	}

	log.Infow("demo shipments recorded",
		"success", len(result.Success),
		"warnings", len(result.Warnings),
		"errors", len(result.Errors),
	)
	return nil
}
