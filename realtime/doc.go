// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package realtime carries insert notifications from the store to the
synchronizer.

# Events

Three typed events, one per watched table:

  - ResponseInserted: a choice answer was stored
  - SuggestionInserted: feedback was stored (general or per question)
  - SubmissionInserted: a form was completed

Encode and Decode convert events to and from a JSON envelope:

	{"table": "responses", "record": {"id": "...", "question_id": "...", "answer": "20-40"}}

# Brokers

LocalBroker delivers events inside one process. Publish waits while a
subscriber's buffer is full, so a subscriber that falls behind (for example
while a hydration holds the session) slows writers down instead of losing
increments. A publish only gives up when its own context ends or the
subscriber has gone away.

PGBroker uses Postgres LISTEN/NOTIFY on the surveyly_changes channel (via
lib/pq), so every server process attached to the same database observes
the same stream. Subscribe makes exactly one attempt; once listening, the
pq.Listener keeps the session alive across dropped connections.
*/
package realtime
