package main

import (
	"context"
	"log"
	"time"

	"github.com/leanlee/shopchat/pkg/config"
	"github.com/leanlee/shopchat/pkg/logger"
	"github.com/leanlee/shopchat/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Seeds a development database: creates the backing tables when absent and
// loads demo patterns, answers, products and orders so both entry points are
// usable out of the box.

var schema = []string{
	`CREATE TABLE IF NOT EXISTS patterns (
		id BIGSERIAL PRIMARY KEY,
		intent TEXT NOT NULL,
		kind TEXT NOT NULL CHECK (kind IN ('keyword', 'regex')),
		pattern TEXT NOT NULL,
		weight DOUBLE PRECISION NOT NULL DEFAULT 1.0
	)`,
	`CREATE TABLE IF NOT EXISTS answers (
		intent TEXT PRIMARY KEY,
		answer TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		sku TEXT NOT NULL,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		price DOUBLE PRECISION,
		sale_price DOUBLE PRECISION,
		is_trending BOOLEAN NOT NULL DEFAULT FALSE,
		is_on_sale BOOLEAN NOT NULL DEFAULT FALSE,
		sizes TEXT,
		colors TEXT,
		material TEXT,
		description TEXT,
		stock_qty INTEGER,
		shipping_note TEXT,
		return_note TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS user_profile (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		customer_id BIGINT NOT NULL REFERENCES user_profile(id),
		order_number TEXT NOT NULL,
		placed_at TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL,
		shipping_carrier TEXT,
		tracking_number TEXT,
		eta_date TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL REFERENCES orders(id),
		sku TEXT NOT NULL,
		name TEXT NOT NULL,
		qty INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS feedback (
		id UUID PRIMARY KEY,
		user_id BIGINT,
		user_email TEXT,
		rating INTEGER NOT NULL,
		category TEXT NOT NULL,
		comment TEXT,
		created_at TIMESTAMPTZ NOT NULL
	)`,
}

type patternRow struct {
	intent  string
	kind    string
	pattern string
	weight  float64
}

var patterns = []patternRow{
	{"greet", "keyword", "hello", 1.0},
	{"greet", "keyword", "hi", 1.0},
	{"greet", "keyword", "good morning", 1.0},
	{"goodbye", "keyword", "bye", 1.0},
	{"goodbye", "keyword", "goodbye", 1.5},
	{"goodbye", "keyword", "see you", 1.0},
	{"thanks", "keyword", "thank", 1.0},
	{"thanks", "keyword", "thanks", 1.0},
	{"affirm", "keyword", "yes", 1.0},
	{"affirm", "keyword", "yeah", 1.0},
	{"affirm", "keyword", "sure", 1.0},
	{"deny", "keyword", "no", 1.0},
	{"deny", "keyword", "nope", 1.0},
	{"track_order", "keyword", "track order", 2.0},
	{"track_order", "keyword", "where order", 1.5},
	{"track_order", "keyword", "order status", 1.5},
	{"track_order", "regex", `\b(\d{5,})\b`, 1.0},
	{"product", "keyword", "show products", 1.5},
	{"product", "keyword", "browse", 1.0},
	{"return_policy", "keyword", "return policy", 2.0},
	{"return_policy", "keyword", "refund", 1.5},
	{"create_account", "keyword", "create account", 2.0},
	{"create_account", "keyword", "sign up", 1.5},
	{"package_lost_damaged", "keyword", "damage", 1.5},
	{"package_lost_damaged", "keyword", "lost package", 2.0},
	{"contact_customer_support", "keyword", "contact support", 2.0},
	{"contact_customer_support", "keyword", "speak agent", 1.5},
}

var answers = map[string]string{
	"greet":                    "Hello! How can I assist you today?",
	"goodbye":                  "Goodbye! Have a great day!",
	"thanks":                   "You're welcome!",
	"fallback":                 "Sorry, I couldn't understand your request. Please choose an option:",
	"return_policy":            "You can return any item within 30 days of delivery. Keep the tags on and the receipt handy.",
	"create_account":           "You can create an account at https://your.site/signup — it only takes a minute.",
	"package_lost_damaged":     "So sorry about that! Please share a photo of the damaged package with our support team and we'll sort it out.",
	"contact_customer_support": "You can reach us here: https://example.com/support-form",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	appLogger.Info("Starting database seeding...")

	for _, ddl := range schema {
		if _, err := db.Exec(ctx, ddl); err != nil {
			appLogger.Fatal("Failed to create table", zap.Error(err))
		}
	}

	if err := seedPatterns(ctx, db); err != nil {
		appLogger.Fatal("Failed to seed patterns", zap.Error(err))
	}
	if err := seedAnswers(ctx, db); err != nil {
		appLogger.Fatal("Failed to seed answers", zap.Error(err))
	}
	if err := seedCatalogAndOrders(ctx, db); err != nil {
		appLogger.Fatal("Failed to seed catalog", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!")
}

func seedPatterns(ctx context.Context, db *pgxpool.Pool) error {
	var count int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM patterns").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	insert := squirrel.Insert("patterns").
		Columns("intent", "kind", "pattern", "weight").
		PlaceholderFormat(squirrel.Dollar)
	for _, p := range patterns {
		insert = insert.Values(p.intent, p.kind, p.pattern, p.weight)
	}

	sql, args, err := insert.ToSql()
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, sql, args...)
	return err
}

func seedAnswers(ctx context.Context, db *pgxpool.Pool) error {
	for intent, answer := range answers {
		sql, args, err := squirrel.Insert("answers").
			Columns("intent", "answer").
			Values(intent, answer).
			Suffix("ON CONFLICT (intent) DO NOTHING").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := db.Exec(ctx, sql, args...); err != nil {
			return err
		}
	}
	return nil
}

func seedCatalogAndOrders(ctx context.Context, db *pgxpool.Pool) error {
	var count int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := squirrel.Insert("products").
		Columns("sku", "name", "category", "price", "sale_price", "is_trending", "is_on_sale",
			"sizes", "colors", "material", "description", "stock_qty", "shipping_note", "return_note").
		Values("TS-001", "Classic Tee", "men", 49.90, 39.90, true, true,
			"S, M, L, XL", "Black, White", "Cotton", "Everyday crew-neck tee.", 120, "Ships in 2 days", "30-day returns").
		Values("DR-010", "Summer Dress", "women", 129.00, nil, true, false,
			"XS, S, M, L", "Floral, Navy", "Linen blend", "Light dress for warm days.", 45, "Ships in 3 days", "30-day returns").
		Values("AC-100", "Canvas Tote", "accessories", 35.00, 25.00, false, true,
			"", "Beige", "Canvas", "Roomy tote for daily errands.", 200, "Ships in 2 days", "14-day returns").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := products.ToSql()
	if err != nil {
		return err
	}
	if _, err := db.Exec(ctx, sql, args...); err != nil {
		return err
	}

	var userID int64
	if err := db.QueryRow(ctx,
		"INSERT INTO user_profile (name, email) VALUES ($1, $2) ON CONFLICT (email) DO UPDATE SET name = user_profile.name RETURNING id",
		"Jane Doe", "jane@example.com").Scan(&userID); err != nil {
		return err
	}

	now := time.Now()
	eta := now.Add(4 * 24 * time.Hour)
	var orderID int64
	if err := db.QueryRow(ctx,
		`INSERT INTO orders (customer_id, order_number, placed_at, status, shipping_carrier, tracking_number, eta_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		userID, "184533", now.Add(-3*24*time.Hour), "in_transit", "DHL", "DHLMY0012345", eta).Scan(&orderID); err != nil {
		return err
	}
	if _, err := db.Exec(ctx,
		"INSERT INTO order_items (order_id, sku, name, qty) VALUES ($1, $2, $3, $4), ($1, $5, $6, $7)",
		orderID, "TS-001", "Classic Tee", 2, "AC-100", "Canvas Tote", 1); err != nil {
		return err
	}

	if err := db.QueryRow(ctx,
		`INSERT INTO orders (customer_id, order_number, placed_at, status)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		userID, "184790", now.Add(-24*time.Hour), "processing").Scan(&orderID); err != nil {
		return err
	}
	_, err = db.Exec(ctx,
		"INSERT INTO order_items (order_id, sku, name, qty) VALUES ($1, $2, $3, $4)",
		orderID, "DR-010", "Summer Dress", 1)
	return err
}
