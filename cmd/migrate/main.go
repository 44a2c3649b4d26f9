package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get database URL
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	// Get command
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}

	command := os.Args[1]

	// Connect to database
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("✅ All tables dropped successfully")

	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("✅ All tables created successfully")

	case "seed":
		if err := seedData(ctx, conn); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Println("✅ Data seeded successfully")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func dropTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`DROP TABLE IF EXISTS free_vote_quota CASCADE`,
		`DROP TABLE IF EXISTS purchases CASCADE`,
		`DROP TABLE IF EXISTS votes CASCADE`,
		`DROP TABLE IF EXISTS submissions CASCADE`,
		`DROP TABLE IF EXISTS contestants CASCADE`,
		`DROP TABLE IF EXISTS competitions CASCADE`,
		`DROP TABLE IF EXISTS hosting_tiers CASCADE`,
		`DROP TABLE IF EXISTS platform_settings CASCADE`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		fmt.Printf("  Dropped: %s\n", getTableName(query))
	}

	return nil
}

func createTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		// Hosting tiers sold to competition hosts
		`CREATE TABLE IF NOT EXISTS hosting_tiers (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			price_cents BIGINT NOT NULL DEFAULT 0,
			max_contestants INTEGER NOT NULL DEFAULT 0,
			revenue_share_percent INTEGER NOT NULL CHECK (revenue_share_percent BETWEEN 0 AND 100),
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		// Competitions
		`CREATE TABLE IF NOT EXISTS competitions (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(100),
			status VARCHAR(20) NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'active', 'completed')),
			owner_id VARCHAR(255) NOT NULL,
			start_date TIMESTAMPTZ,
			end_date TIMESTAMPTZ,
			max_votes_per_day INTEGER NOT NULL DEFAULT 0 CHECK (max_votes_per_day >= 0),
			online_vote_weight INTEGER NOT NULL DEFAULT 100 CHECK (online_vote_weight BETWEEN 1 AND 100),
			in_person_only BOOLEAN NOT NULL DEFAULT false,
			expected_contestants INTEGER NOT NULL DEFAULT 0,
			tier_id UUID REFERENCES hosting_tiers(id),
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		// Contestant entries, one row per talent per competition
		`CREATE TABLE IF NOT EXISTS contestants (
			id UUID PRIMARY KEY,
			competition_id UUID NOT NULL REFERENCES competitions(id) ON DELETE CASCADE,
			talent_profile_id VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL,
			application_status VARCHAR(20) NOT NULL DEFAULT 'pending' CHECK (application_status IN ('pending', 'approved', 'rejected')),
			applied_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(competition_id, talent_profile_id)
		)`,

		// Append-only vote ledger
		`CREATE TABLE IF NOT EXISTS votes (
			id BIGSERIAL PRIMARY KEY,
			vote_id VARCHAR(64) UNIQUE NOT NULL,
			competition_id UUID NOT NULL REFERENCES competitions(id) ON DELETE CASCADE,
			contestant_id UUID NOT NULL REFERENCES contestants(id) ON DELETE CASCADE,
			source VARCHAR(20) NOT NULL CHECK (source IN ('online_free', 'online_purchased', 'in_person_qr')),
			voter_identity VARCHAR(255),
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			transaction_id VARCHAR(255),
			vote_day DATE NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		// Per-voter daily free-vote quota, conditionally upserted in the same
		// transaction as the ledger append
		`CREATE TABLE IF NOT EXISTS free_vote_quota (
			voter_identity VARCHAR(255) NOT NULL,
			competition_id UUID NOT NULL REFERENCES competitions(id) ON DELETE CASCADE,
			vote_day DATE NOT NULL,
			used INTEGER NOT NULL DEFAULT 0 CHECK (used >= 0),
			PRIMARY KEY (voter_identity, competition_id, vote_day)
		)`,

		// Settled vote purchases, idempotent on transaction_id
		`CREATE TABLE IF NOT EXISTS purchases (
			id BIGSERIAL PRIMARY KEY,
			transaction_id VARCHAR(255) UNIQUE NOT NULL,
			competition_id UUID NOT NULL REFERENCES competitions(id) ON DELETE CASCADE,
			contestant_id UUID NOT NULL REFERENCES contestants(id) ON DELETE CASCADE,
			vote_count INTEGER NOT NULL CHECK (vote_count > 0),
			bonus_votes INTEGER NOT NULL DEFAULT 0 CHECK (bonus_votes >= 0),
			amount_cents BIGINT NOT NULL CHECK (amount_cents >= 0),
			purchased_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		// Join/host/nomination intake
		`CREATE TABLE IF NOT EXISTS submissions (
			id UUID PRIMARY KEY,
			kind VARCHAR(20) NOT NULL CHECK (kind IN ('join', 'host', 'nomination')),
			competition_id UUID REFERENCES competitions(id) ON DELETE SET NULL,
			full_name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected')),
			nomination_status VARCHAR(20) CHECK (nomination_status IN ('pending', 'joined', 'unsure', 'not_interested')),
			nominator_name VARCHAR(255),
			nominator_email VARCHAR(255),
			non_profit BOOLEAN NOT NULL DEFAULT false,
			amount_paid_cents BIGINT NOT NULL DEFAULT 0,
			transaction_id VARCHAR(255),
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		// Platform settings singleton
		`CREATE TABLE IF NOT EXISTS platform_settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			sales_tax_percent INTEGER NOT NULL DEFAULT 0 CHECK (sales_tax_percent BETWEEN 0 AND 100),
			free_votes_per_day INTEGER NOT NULL DEFAULT 3 CHECK (free_votes_per_day >= 0),
			vote_price_cents BIGINT NOT NULL DEFAULT 100,
			platform_fee_percent INTEGER NOT NULL DEFAULT 30 CHECK (platform_fee_percent BETWEEN 0 AND 100),
			nomination_fee_cents BIGINT NOT NULL DEFAULT 0,
			entry_fee_cents BIGINT NOT NULL DEFAULT 0,
			vote_packages JSONB NOT NULL DEFAULT '[]',
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_votes_competition_id ON votes(competition_id)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_contestant_id ON votes(contestant_id)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_competition_source ON votes(competition_id, source)`,
		`CREATE INDEX IF NOT EXISTS idx_contestants_competition_id ON contestants(competition_id)`,
		`CREATE INDEX IF NOT EXISTS idx_purchases_competition_id ON purchases(competition_id)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_competition_id ON submissions(competition_id)`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w\nQuery: %s", err, query)
		}
		fmt.Printf("  Created: %s\n", getTableName(query))
	}

	return nil
}

func seedData(ctx context.Context, conn *pgx.Conn) error {
	// Seed the settings singleton
	settingsQuery := `
		INSERT INTO platform_settings (id, sales_tax_percent, free_votes_per_day, vote_price_cents, platform_fee_percent, nomination_fee_cents, entry_fee_cents, vote_packages)
		VALUES (1, 5, 3, 100, 30, 500, 1000, '[{"votes":10,"bonus_votes":2,"price_cents":900},{"votes":50,"bonus_votes":15,"price_cents":4000}]')
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := conn.Exec(ctx, settingsQuery); err != nil {
		return fmt.Errorf("failed to seed platform settings: %w", err)
	}
	fmt.Println("  Seeded platform settings")

	// Seed hosting tiers
	tiersQuery := `
		INSERT INTO hosting_tiers (name, price_cents, max_contestants, revenue_share_percent)
		SELECT * FROM (VALUES
			('Starter', 0::bigint, 10, 25),
			('Standard', 9900::bigint, 50, 35),
			('Premium', 29900::bigint, 200, 50)
		) AS t(name, price_cents, max_contestants, revenue_share_percent)
		WHERE NOT EXISTS (SELECT 1 FROM hosting_tiers)
	`
	if _, err := conn.Exec(ctx, tiersQuery); err != nil {
		return fmt.Errorf("failed to seed hosting tiers: %w", err)
	}
	fmt.Println("  Seeded hosting tiers")

	return nil
}

// getTableName extracts a readable object name from a DDL statement
func getTableName(query string) string {
	fields := strings.Fields(query)
	for i, f := range fields {
		upper := strings.ToUpper(f)
		if upper == "TABLE" || upper == "INDEX" {
			for j := i + 1; j < len(fields); j++ {
				switch strings.ToUpper(fields[j]) {
				case "IF", "NOT", "EXISTS":
					continue
				}
				return strings.TrimSuffix(fields[j], "(")
			}
		}
	}
	return "statement"
}
