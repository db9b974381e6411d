// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"printledger/internal/core/id"
	"printledger/internal/infrastructure/storage/postgres"
	"printledger/pkg/logger"
)

func main() {
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

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedAdminUser(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@printledger.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	var existingID id.ID
	err := pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, name, role, is_active, version)
		VALUES ($1, $2, $3, 'System Admin', 'admin', true, 1)
	`, userID, adminEmail, string(passwordHash))
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created", "email", adminEmail, "user_id", userID)
	return nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	log.Info("seeding demo data...")

	// 1. Branch
	branchID := id.New()
	branchName := "Main Street"
	tag, err := pool.Exec(ctx, `
		INSERT INTO branches (id, name, address, version, deletion_mark, is_active)
		VALUES ($1, $2, '12 Main Street', 1, false, true)
		ON CONFLICT (name) WHERE deletion_mark = FALSE DO NOTHING
	`, branchID, branchName)
	if err != nil {
		return fmt.Errorf("seed branch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		err = pool.QueryRow(ctx,
			`SELECT id FROM branches WHERE name = $1 AND deletion_mark = FALSE`,
			branchName,
		).Scan(&branchID)
		if err != nil {
			return fmt.Errorf("fetch existing branch: %w", err)
		}
	}

	// 2. Printers with standard tier price lists
	type printerSeed struct {
		name   string
		device string
		prices string
	}
	printers := []printerSeed{
		{"Xerox WorkCentre", "XRX-01", `[
			{"sizeTier":"total_large","unitPrice":"5"},
			{"sizeTier":"total_small","unitPrice":"2"},
			{"sizeTier":"bw_scan","unitPrice":"3"},
			{"sizeTier":"colour_scan","unitPrice":"10"},
			{"sizeTier":"long_sheet","unitPrice":"8"}
		]`},
		{"Canon imageRUNNER", "CNR-01", `[
			{"sizeTier":"total_large","unitPrice":"5"},
			{"sizeTier":"total_small","unitPrice":"2"},
			{"sizeTier":"bw_scan","unitPrice":"3"},
			{"sizeTier":"colour_scan","unitPrice":"12"},
			{"sizeTier":"long_sheet","unitPrice":"8"}
		]`},
	}
	for _, p := range printers {
		_, err := pool.Exec(ctx, `
			INSERT INTO printers (id, name, device_code, branch_id, prices, version, deletion_mark, is_active)
			VALUES ($1, $2, $3, $4, $5::jsonb, 1, false, true)
			ON CONFLICT (branch_id, device_code) WHERE deletion_mark = FALSE DO NOTHING
		`, id.New(), p.name, p.device, branchID, p.prices)
		if err != nil {
			return fmt.Errorf("seed printer %s: %w", p.device, err)
		}
	}

	// 3. Stock items
	type itemSeed struct {
		name  string
		price string
	}
	items := []itemSeed{
		{"Lamination pouch A4", "30"},
		{"Spiral binding 12mm", "40"},
		{"Photo paper glossy", "15"},
		{"CD-R", "25"},
	}
	for _, it := range items {
		_, err := pool.Exec(ctx, `
			INSERT INTO stock_items (id, name, branch_id, unit_price, version, deletion_mark, is_active)
			VALUES ($1, $2, $3, $4, 1, false, true)
			ON CONFLICT (branch_id, name) WHERE deletion_mark = FALSE DO NOTHING
		`, id.New(), it.name, branchID, it.price)
		if err != nil {
			return fmt.Errorf("seed stock item %s: %w", it.name, err)
		}
	}

	log.Infow("demo data seeded", "branch_id", branchID)
	return nil
}
