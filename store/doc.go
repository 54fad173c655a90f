// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the Remote Store: every read and write of survey rows goes
through it.

	st := store.New(conn, broker)

All methods take a context and use $N placeholders, which both lib/pq, pgx
and modernc.org/sqlite accept. Point lookups return ErrNotFound when no row
matches; Delete also returns ErrInvalidEntity for tables outside the admin
allow-list.

# Change notifications

InsertResponse, InsertSuggestion and LogSubmission publish a realtime event
after the row is written. A failed publish is logged and does not fail the
insert: the row is the source of truth and the next hydration picks it up.
*/
package store
