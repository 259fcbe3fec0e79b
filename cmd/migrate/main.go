package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"server/internal/catalog"
)

// schema is idempotent: every statement guards with IF NOT EXISTS so the
// binary can run on each deploy.
const schema = `
CREATE TABLE IF NOT EXISTS profiles (
    id                 TEXT PRIMARY KEY,
    name               TEXT NOT NULL,
    gender             TEXT NOT NULL DEFAULT '',
    age                TEXT NOT NULL DEFAULT '',
    weight             TEXT NOT NULL DEFAULT '',
    height             TEXT NOT NULL DEFAULT '',
    target_weight      TEXT NOT NULL DEFAULT '',
    body_fat           TEXT NOT NULL DEFAULT '',
    body_type          TEXT NOT NULL DEFAULT '',
    activity_level     TEXT NOT NULL DEFAULT '',
    sleep_quality      TEXT NOT NULL DEFAULT '',
    diet_preference    TEXT NOT NULL DEFAULT '',
    level              TEXT NOT NULL DEFAULT '',
    injuries           TEXT NOT NULL DEFAULT '',
    equipment          TEXT NOT NULL DEFAULT '',
    days_per_week      TEXT NOT NULL DEFAULT '',
    session_duration   TEXT NOT NULL DEFAULT '',
    focus_area         TEXT NOT NULL DEFAULT '',
    points             INTEGER NOT NULL DEFAULT 0,
    completed_workouts INTEGER NOT NULL DEFAULT 0,
    gems               INTEGER NOT NULL DEFAULT 0,
    updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS plans (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL,
    sport      TEXT NOT NULL,
    plan_json  JSONB NOT NULL,
    active     BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_plans_user ON plans (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS jobs (
    id            TEXT PRIMARY KEY,
    user_id       TEXT NOT NULL,
    type          TEXT NOT NULL,
    status        TEXT NOT NULL,
    prompt_json   JSONB NOT NULL,
    result_json   JSONB,
    aspect_ratio  TEXT NOT NULL DEFAULT '',
    error_message TEXT,
    error_kind    TEXT,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_jobs_claim ON jobs (type, status, created_at);
CREATE INDEX IF NOT EXISTS idx_jobs_user ON jobs (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS assets (
    id          TEXT PRIMARY KEY,
    user_id     TEXT NOT NULL,
    job_id      TEXT NOT NULL,
    kind        TEXT NOT NULL,
    storage_key TEXT NOT NULL,
    url         TEXT NOT NULL DEFAULT '',
    mime_type   TEXT NOT NULL DEFAULT '',
    bytes       INTEGER NOT NULL DEFAULT 0,
    source_uri  TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_assets_job ON assets (job_id, created_at);

CREATE TABLE IF NOT EXISTS workout_logs (
    id               TEXT PRIMARY KEY,
    user_id          TEXT NOT NULL,
    exercise_id      TEXT NOT NULL,
    logged_on        TEXT NOT NULL,
    duration_minutes INTEGER NOT NULL DEFAULT 0,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_workout_logs_user ON workout_logs (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS products (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    price       DOUBLE PRECISION NOT NULL,
    currency    TEXT NOT NULL DEFAULT 'EGP',
    image       TEXT NOT NULL DEFAULT '',
    category    TEXT NOT NULL DEFAULT '',
    stock       INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS orders (
    id             TEXT PRIMARY KEY,
    user_id        TEXT NOT NULL,
    product_id     TEXT NOT NULL REFERENCES products (id),
    payment_method TEXT NOT NULL DEFAULT '',
    status         TEXT NOT NULL,
    total          DOUBLE PRECISION NOT NULL DEFAULT 0,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_orders_user ON orders (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS chat_messages (
    id         BIGSERIAL PRIMARY KEY,
    user_id    TEXT NOT NULL,
    role       TEXT NOT NULL,
    text       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_chat_messages_user ON chat_messages (user_id, id);

CREATE TABLE IF NOT EXISTS integration_tokens (
    provider   TEXT PRIMARY KEY,
    token      TEXT NOT NULL,
    active     BOOLEAN NOT NULL DEFAULT TRUE,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

const seedProduct = `
INSERT INTO products (id, name, description, price, currency, image, category, stock)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    currency = EXCLUDED.currency,
    image = EXCLUDED.image,
    category = EXCLUDED.category;
`

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "migrate: DATABASE_URL is required")
		os.Exit(1)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "migrate: open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: ping database: %v\n", err)
		os.Exit(1)
	}

	if _, err := db.Exec(schema); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: apply schema: %v\n", err)
		os.Exit(1)
	}

	// Seed the store catalog. Stock is only set on first insert so restocks
	// survive re-runs.
	for _, p := range catalog.Products() {
		if _, err := db.Exec(seedProduct,
			p.ID, p.Name, p.Description, p.Price, p.Currency, p.Image, p.Category, p.Stock,
		); err != nil {
			fmt.Fprintf(os.Stderr, "migrate: seed product %s: %v\n", p.ID, err)
			os.Exit(1)
		}
	}

	fmt.Println("migrate: schema applied")
}
