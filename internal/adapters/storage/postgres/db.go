// Package postgres is the durable storage adapter, built on database/sql
// with the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open dials a pooled connection and verifies it with a short ping.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS owners (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		password_hash TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS owners_email_unique ON owners (lower(email))`,
	`CREATE TABLE IF NOT EXISTS pets (
		id BIGSERIAL PRIMARY KEY,
		owner_id BIGINT NOT NULL REFERENCES owners(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		breed TEXT NOT NULL,
		weight DOUBLE PRECISION NOT NULL,
		weight_type TEXT NOT NULL,
		date_of_birth DATE NOT NULL,
		activity_level TEXT NOT NULL,
		photo_url TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS pets_owner_idx ON pets (owner_id)`,
	`CREATE TABLE IF NOT EXISTS medications (
		id BIGSERIAL PRIMARY KEY,
		pet_id BIGINT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		dosage_amount DOUBLE PRECISION NOT NULL,
		dosage_unit TEXT NOT NULL,
		frequency TEXT NOT NULL,
		time_to_administer TEXT NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE
	)`,
	`CREATE INDEX IF NOT EXISTS medications_pet_idx ON medications (pet_id)`,
	`CREATE TABLE IF NOT EXISTS feeding_schedules (
		id BIGSERIAL PRIMARY KEY,
		pet_id BIGINT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
		feed_time TEXT NOT NULL,
		food_type TEXT NOT NULL,
		quantity DOUBLE PRECISION NOT NULL,
		quantity_unit TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS feeding_schedules_pet_idx ON feeding_schedules (pet_id)`,
	`CREATE TABLE IF NOT EXISTS vet_visits (
		id BIGSERIAL PRIMARY KEY,
		pet_id BIGINT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
		visit_date DATE NOT NULL,
		next_visit_date DATE,
		vet_name TEXT NOT NULL,
		reason_for_visit TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS vet_visits_pet_idx ON vet_visits (pet_id)`,
}

// EnsureSchema creates the tables on startup; every statement is
// idempotent.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
