// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the surveyly server.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, session, syncer, cfg)

# Endpoints

Health and config:

	GET  /health   - Database ping
	GET  /env.json - Public client config

Admin (password in body):

	POST /admin/delete - Delete one row from an allow-listed table

Survey:

	GET  /api/questions        - Registered questions
	POST /api/questions        - Add a question
	GET  /api/results/{code}   - Tally for one question
	POST /api/refresh          - Rebuild from the database
	POST /api/submissions      - Submit the form
	GET  /api/stats            - Submission counter

Feedback:

	GET  /api/suggestions                - All suggestions, newest first
	GET  /api/questions/{code}/feedback  - Answers to a free-text question
	POST /api/suggestions/{id}/status    - Moderate

Bank and versions:

	GET  /api/bank          - Question bank
	POST /api/bank          - Save a question to the bank
	POST /api/bank/{id}/use - Add a bank question to the form
	GET  /api/versions      - Saved versions
	POST /api/versions      - Save a version
	GET  /api/versions/{id} - One version with its data

Live updates:

	GET /api/realtime - Websocket

Everything else is served from the static directory, falling back to
index.html.
*/
package router
