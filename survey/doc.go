// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package survey holds the in-memory survey state and keeps it in step with
the store.

# Session

A Session is the explicit context object for one running server. It owns:

  - a Registry mapping question code to question, with a reverse index from
    backend id to code
  - an Aggregator holding the per-option response Tally
  - the feedback list (newest first) and the submission count

All of it sits behind one mutex. Hydration runs as a critical section, so a
realtime event can never interleave with a rebuild.

	session := survey.NewSession(st)
	if err := session.Bootstrap(ctx, survey.DefaultSeeds); err != nil {
		slog.Warn("Starting with partial state", "error", err)
	}

# Hydration

Hydrate lists every question and recomputes each choice question's tally
from its raw answers. Answers are trimmed; blank answers are not counted.
Declared options always appear, with zero counts when unanswered. If one
question's answers cannot be fetched its previous counts are kept and the
rest of the rebuild continues.

# Realtime

A Synchronizer subscribes to a realtime.Subscriber once:

	syncer := survey.NewSynchronizer(session, broker)
	if err := syncer.Start(ctx); err != nil {
		// degraded: state only changes on explicit refresh
	}

Its state moves Unsubscribed -> Subscribing -> Active. There is no retry.
Response inserts are mapped back to a question code and added to the tally.
Submission inserts re-count the submission log. Suggestion inserts are
prepended to the feedback list.

Clients attach as Viewers and receive Updates: results only for the
question they are showing, feedback only for the panel they have open,
counter and suggestion updates always.

# Chart Steps

TickStep picks the Y-axis step for a results chart:

	total <= 10   step 1
	total <= 30   step 2
	total <= 100  step 5
	otherwise     step 10
*/
package survey
