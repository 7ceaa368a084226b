// Package seed fills a freshly migrated database with the admin user and the
// default rate table. Every step is idempotent, so it runs on each startup.
package seed

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/sentratech/roi-engine/internal/roi"
)

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string
	Rates         roi.RateTable
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way. Rows that already exist are
// left untouched so rates edited in the database survive restarts.
func Run(ctx context.Context, db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := seedAdmin(ctx, tx, cfg.AdminEmail, cfg.AdminPassword, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureRateConfig(ctx, tx, cfg.Rates.AICostPerAgent(), &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureCountryRates(ctx, tx, cfg.Rates, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

// HashPassword is the stored form of an admin password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func seedAdmin(ctx context.Context, tx *sql.Tx, email, password string, stats *Stats) error {
	if email == "" || password == "" {
		return nil
	}

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = ? LIMIT 1)`, email).Scan(&exists); err != nil {
		return fmt.Errorf("check admin user existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO users (email, password_hash) VALUES (?, ?)`, email, HashPassword(password)); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureRateConfig(ctx context.Context, tx *sql.Tx, aiCostPerAgent float64, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM rate_config WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check rate config existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO rate_config (id, ai_cost_per_agent) VALUES (1, ?)`, aiCostPerAgent); err != nil {
		return fmt.Errorf("insert rate config singleton: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureCountryRates(ctx context.Context, tx *sql.Tx, rates roi.RateTable, stats *Stats) error {
	for _, country := range rates.Countries() {
		rate, _ := rates.Lookup(country)

		res, err := tx.ExecContext(ctx, `
			INSERT INTO country_rates (country, bpo_per_minute, base_cost_per_agent, active)
			VALUES (?, ?, ?, 1)
			ON CONFLICT(country) DO NOTHING
		`, country, rate.BPOPerMinute, rate.BaseCostPerAgent)
		if err != nil {
			return fmt.Errorf("insert country rate %q: %w", country, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("count inserted country rate %q: %w", country, err)
		}
		stats.Inserts += int(n)
	}
	return nil
}

// LoadRates reads the active country rates and the AI cost per agent back into a
// rate table for the engine.
func LoadRates(ctx context.Context, db *sql.DB) (roi.RateTable, error) {
	var aiCostPerAgent float64
	err := db.QueryRowContext(ctx, `SELECT ai_cost_per_agent FROM rate_config WHERE id = 1`).Scan(&aiCostPerAgent)
	if err != nil {
		return roi.RateTable{}, fmt.Errorf("query rate config: %w", err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT country, bpo_per_minute, base_cost_per_agent
		FROM country_rates
		WHERE active = 1
		ORDER BY country
	`)
	if err != nil {
		return roi.RateTable{}, fmt.Errorf("query country rates: %w", err)
	}
	defer rows.Close()

	countries := make(map[string]roi.CountryRate)
	for rows.Next() {
		var (
			name string
			rate roi.CountryRate
		)
		if err := rows.Scan(&name, &rate.BPOPerMinute, &rate.BaseCostPerAgent); err != nil {
			return roi.RateTable{}, fmt.Errorf("scan country rate: %w", err)
		}
		countries[name] = rate
	}
	if err := rows.Err(); err != nil {
		return roi.RateTable{}, fmt.Errorf("iterate country rates: %w", err)
	}

	return roi.NewRateTable(countries, aiCostPerAgent), nil
}
