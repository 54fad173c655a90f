// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// driverNames maps DATABASE_TYPE values to registered database/sql drivers.
var driverNames = map[string]string{
	"sqlite":   "sqlite",
	"postgres": "postgres",
	"pgx":      "pgx",
}

// Open connects to the database and verifies the connection.
func Open(ctx context.Context, dbType, dsn string) (*sql.DB, error) {
	driver, ok := driverNames[dbType]
	if !ok {
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == "sqlite" {
		// SQLite allows a single writer; one connection avoids SQLITE_BUSY
		// and keeps :memory: databases alive across queries.
		conn.SetMaxOpenConns(1)
		if _, err := conn.ExecContext(ctx, `PRAGMA busy_timeout = 5000;`); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to configure sqlite: %w", err)
		}
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// The statements stay within the SQL subset shared by Postgres and SQLite:
// TEXT ids, options as JSON text, timestamps written by the application.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS questions (
		id TEXT PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		text TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'radio',
		options TEXT NOT NULL DEFAULT '[]',
		in_bank BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS responses (
		id TEXT PRIMARY KEY,
		question_id TEXT NOT NULL,
		answer TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_responses_question_id ON responses(question_id)`,

	`CREATE TABLE IF NOT EXISTS suggestions (
		id TEXT PRIMARY KEY,
		text TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'none' CHECK (status IN ('none', 'red', 'green')),
		question_id TEXT,
		question_code TEXT,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_suggestions_question_code ON suggestions(question_code)`,
	`CREATE INDEX IF NOT EXISTS idx_suggestions_created_at ON suggestions(created_at)`,

	`CREATE TABLE IF NOT EXISTS submission_log (
		id TEXT PRIMARY KEY,
		created_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS question_bank (
		id TEXT PRIMARY KEY,
		question_text TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'radio',
		options TEXT NOT NULL DEFAULT '[]',
		created_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS version_history (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		data TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_version_history_created_at ON version_history(created_at)`,
}
