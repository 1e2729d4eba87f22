package provision

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// schemaSQL is the Vitrine base schema. Content tables are created empty;
// the admin surface fills them after first login.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
	id            SERIAL PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'admin',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS settings (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS categories (
	id   SERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	slug TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS posts (
	id           SERIAL PRIMARY KEY,
	category_id  INTEGER REFERENCES categories(id),
	title        TEXT NOT NULL,
	slug         TEXT NOT NULL UNIQUE,
	body         TEXT NOT NULL DEFAULT '',
	published_at TIMESTAMPTZ,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS galleries (
	id         SERIAL PRIMARY KEY,
	title      TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS apps (
	id          SERIAL PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	url         TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS consultations (
	id         SERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	topic      TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL DEFAULT 'new',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS contact_messages (
	id         SERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	body       TEXT NOT NULL,
	read       BOOLEAN NOT NULL DEFAULT false,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Postgres provisions a PostgreSQL database via lib/pq.
type Postgres struct {
	log *zap.Logger
}

// NewPostgres creates a Postgres provisioner.
func NewPostgres(log *zap.Logger) *Postgres {
	if log == nil {
		log = zap.NewNop()
	}
	return &Postgres{log: log}
}

// Probe opens a connection with the supplied credentials and pings it.
func (p *Postgres) Probe(ctx context.Context, target Target) error {
	db, err := sql.Open("postgres", target.DSN())
	if err != nil {
		return fmt.Errorf("open connection: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		p.log.Info("connection probe failed",
			zap.String("host", target.Host),
			zap.String("database", target.Database),
			zap.Error(err))
		return err
	}

	p.log.Info("connection probe succeeded",
		zap.String("host", target.Host),
		zap.String("database", target.Database))
	return nil
}

// Install provisions the schema, admin account, and application settings in
// a single transaction.
func (p *Postgres) Install(ctx context.Context, req Request) error {
	if err := req.validate(); err != nil {
		return err
	}

	db, err := sql.Open("postgres", req.Target.DSN())
	if err != nil {
		return fmt.Errorf("open connection: %w", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(req.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, role) VALUES ($1, $2, $3, 'admin')",
		req.AdminUsername, req.AdminEmail, string(hash),
	); err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}

	settings := map[string]string{
		"app_name":     req.AppName,
		"company_name": req.CompanyName,
		"timezone":     req.Timezone,
	}
	for key, value := range settings {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO settings (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()",
			key, value,
		); err != nil {
			return fmt.Errorf("write setting %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit installation: %w", err)
	}

	p.log.Info("installation completed",
		zap.String("host", req.Target.Host),
		zap.String("database", req.Target.Database),
		zap.String("admin", req.AdminUsername))
	return nil
}
