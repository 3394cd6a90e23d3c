package db

import (
	"context"
	"database/sql"
)

const authMigration = `
CREATE EXTENSION IF NOT EXISTS "pgcrypto";

CREATE TABLE IF NOT EXISTS users (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    email text NOT NULL,
    nickname text NOT NULL,
    password_hash text NOT NULL,
    external_key text NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS users_external_key_unique
ON users (external_key);

CREATE UNIQUE INDEX IF NOT EXISTS users_nickname_unique
ON users (nickname);
`

func RunAuthMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, authMigration)
	return err
}
