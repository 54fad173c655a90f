// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first (via godotenv). Values
already present in the environment are not overwritten by the file.

# Config Fields

  - Port: Server listen port (default: 8081)
  - DatabaseType: sqlite (default), postgres (lib/pq) or pgx
  - DatabaseURL: connection string (default for sqlite: file:surveyly.db)
  - StaticDir: directory served at / (default: .)
  - AdminPassword: shared secret for POST /admin/delete (optional)
  - SupabaseURL, SupabaseAnonKey: public client config served at /env.json
  - Verbose: debug logging

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	-s                Static directory
	-v                Debug logging
	--admin-password  Admin password

# Environment Variables

	PORT              → -p
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	STATIC_DIR        → -s
	LOG_LEVEL=debug   → -v
	ADMIN_PASSWORD    → --admin-password
	SUPABASE_URL
	SUPABASE_ANON_KEY

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - PORT is not a number
  - DATABASE_TYPE is not one of sqlite, postgres, pgx
  - a Postgres type is selected without a DATABASE_URL

An empty ADMIN_PASSWORD is not an error; the admin endpoint then refuses
every request.
*/
package cliparse
