// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the surveyly server.

surveyly runs a single-page survey: browsers fetch questions, submit
multiple-choice and free-text answers, and watch bar-chart results update
live. The server keeps an in-memory tally hydrated from the database and
pushes changes to connected browsers over a websocket.

# Starting the Server

With no configuration the server uses a local SQLite file:

	go run .

Against Postgres:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run .

Or with flags:

	go run . -p 8081 -t pgx -d "postgres://..." -s ./public

# Configuration

Settings come from flags, then environment variables, then a .env file:

  - PORT (-p): Server port (default: 8081)
  - DATABASE_TYPE (-t): sqlite, postgres or pgx (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: file:surveyly.db)
  - STATIC_DIR (-s): Directory served at / (default: .)
  - ADMIN_PASSWORD (--admin-password): Enables POST /admin/delete
  - SUPABASE_URL, SUPABASE_ANON_KEY: Public values served at /env.json
  - LOG_LEVEL=debug (-v): Debug logging

# Architecture

  - survey: question registry, response tally, realtime synchronizer
  - store: database access; announces inserts on a realtime broker
  - realtime: change events, in-process and Postgres LISTEN/NOTIFY brokers
  - handlers: HTTP and websocket handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - auth: Admin password check and question codes
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
