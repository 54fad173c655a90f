// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP and websocket handlers for the surveyly server.

# Handler Types

Each handler is a struct holding the survey session or the config it needs:

  - SurveyHandler: Questions, submissions, results and the counter
  - FeedbackHandler: Suggestions and their moderation status
  - ArchiveHandler: Question bank and saved versions
  - AdminHandler: Password-gated row deletion
  - ConfigHandler: /env.json and static files
  - RealtimeHandler: Live updates over a websocket

Handlers are created via constructor functions:

	surveyHandler := handlers.NewSurveyHandler(session)

# Reads and Writes

Reads are served from the session's in-memory state. Writes go straight to
the store; the cached tallies change when the realtime synchronizer sees the
insert, so a submit response does not carry updated results. POST
/api/refresh rebuilds everything from the store when realtime is down.

# Admin Gateway

POST /admin/delete takes a JSON body:

	{"entity_type": "suggestions", "id": "...", "admin_password": "..."}

Checks run in this order: server has a password configured (500), body
parses (400), both fields present (400), password matches (403), entity
is allow-listed (400), row exists (404). Responses are {"success": true}
or {"error": "..."}.

# Realtime Protocol

Clients connect to GET /api/realtime and send:

	{"type": "show", "question": "age"}
	{"type": "feedback", "question": "comments"}

The server replies with the current state and then pushes updates:

	{"type": "results", "question": "age", "results": {...}}
	{"type": "counter", "count": 1204, "label": "Forms filled: 1,204"}
	{"type": "suggestion", "suggestion": {...}}
	{"type": "feedback", "question": "comments", "feedback": [...]}

# Error Handling

Errors use the standard response format:

	{"error": "Not Found", "message": "Question not found"}

Validation failures return the user-facing message as 400.
*/
package handlers
