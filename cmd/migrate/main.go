package main

import (
	"database/sql"
	"flag"
	"log"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"drivesync-backend/internal/config"
	"drivesync-backend/internal/logger"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            SERIAL PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name          TEXT NOT NULL DEFAULT '',
		phone         TEXT NOT NULL DEFAULT '',
		address       TEXT NOT NULL DEFAULT '',
		email         TEXT NOT NULL DEFAULT '',
		role          TEXT NOT NULL DEFAULT 'user',
		created_on    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS cars (
		id                SERIAL PRIMARY KEY,
		name              TEXT NOT NULL,
		hourly_rate_cents INTEGER NOT NULL,
		condition         TEXT NOT NULL DEFAULT '',
		status            TEXT NOT NULL DEFAULT 'Available',
		image_url         TEXT NOT NULL DEFAULT '',
		created_on        TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS rentals (
		id                 SERIAL PRIMARY KEY,
		user_id            INTEGER NOT NULL REFERENCES users(id),
		car_id             INTEGER NOT NULL REFERENCES cars(id),
		start_time         TIMESTAMPTZ NOT NULL,
		end_time           TIMESTAMPTZ NOT NULL,
		hours_rented       INTEGER NOT NULL,
		mode               TEXT NOT NULL,
		delivery_location  TEXT NOT NULL DEFAULT '',
		delivery_fee_cents INTEGER NOT NULL DEFAULT 0,
		total_cost_cents   INTEGER NOT NULL,
		status             TEXT NOT NULL DEFAULT 'Active',
		created_on         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_on         TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id           SERIAL PRIMARY KEY,
		rental_id    INTEGER NOT NULL REFERENCES rentals(id),
		reference    TEXT NOT NULL UNIQUE,
		amount_cents INTEGER NOT NULL,
		payment_time TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS car_change_requests (
		id         SERIAL PRIMARY KEY,
		user_id    INTEGER NOT NULL REFERENCES users(id),
		rental_id  INTEGER NOT NULL REFERENCES rentals(id),
		old_car_id INTEGER NOT NULL REFERENCES cars(id),
		new_car_id INTEGER NOT NULL REFERENCES cars(id),
		status     TEXT NOT NULL DEFAULT 'Pending',
		created_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_rentals_user ON rentals(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_rentals_car_status ON rentals(car_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_change_requests_rental_status ON car_change_requests(rental_id, status)`,
}

type seedCar struct {
	name      string
	rateCents int32
	condition string
}

var seedCars = []seedCar{
	{"Toyota Vios", 5000, "Good"},
	{"Honda Civic", 8000, "Excellent"},
	{"Mitsubishi Mirage", 4500, "Good"},
	{"Toyota Fortuner", 12000, "Excellent"},
	{"Suzuki Ertiga", 7000, "Good"},
	{"Nissan Almera", 5500, "Good"},
	{"Ford Ranger", 11000, "Fair"},
	{"Hyundai Accent", 5000, "Good"},
}

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	seed := flag.Bool("seed", true, "Seed the admin account and car catalog")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Running migrations...", "database", cfg.Database.Database)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
	}
	logger.Info("Schema migrated")

	if *seed {
		if err := seedData(db); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		logger.Info("Seed data inserted")
	}
}

func seedData(db *sql.DB) error {
	// Default admin account; change the password after first login.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, err := db.Exec(
		`INSERT INTO users (username, password_hash, name, role)
		 VALUES ($1, $2, $3, 'admin')
		 ON CONFLICT (username) DO NOTHING`,
		"admin", string(hash), "Administrator"); err != nil {
		return err
	}

	for _, c := range seedCars {
		if _, err := db.Exec(
			`INSERT INTO cars (name, hourly_rate_cents, condition, status)
			 SELECT $1, $2, $3, 'Available'
			 WHERE NOT EXISTS (SELECT 1 FROM cars WHERE name = $1)`,
			c.name, c.rateCents, c.condition); err != nil {
			return err
		}
	}
	return nil
}
