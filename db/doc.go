// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connecting

Open picks the database/sql driver from the configured type and pings:

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)

Supported types:

  - sqlite: modernc.org/sqlite (pure Go, default; single connection)
  - postgres: github.com/lib/pq
  - pgx: github.com/jackc/pgx/v5/stdlib

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - questions: survey questions keyed by a unique code
  - responses: one row per choice answer
  - suggestions: free-text feedback and moderation status
  - submission_log: one row per completed form (counted, never updated)
  - question_bank: reusable question templates
  - version_history: named snapshots of the aggregation state (JSON)

# Relationships

	questions 1──* responses     (responses.question_id)
	questions 1──* suggestions   (suggestions.question_id, optional)

There are no foreign keys: rows are removed one at a time through the admin
delete endpoint and orphaned responses simply stop being counted.
*/
package db
