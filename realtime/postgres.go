// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"
)

// Channel is the Postgres NOTIFY channel carrying encoded events.
const Channel = "surveyly_changes"

// PGBroker publishes with pg_notify and subscribes with LISTEN, so every
// server process attached to the same database sees every insert.
type PGBroker struct {
	db     *sql.DB
	dsn    string
	buffer int
}

func NewPGBroker(db *sql.DB, dsn string) *PGBroker {
	return &PGBroker{db: db, dsn: dsn, buffer: 64}
}

func (b *PGBroker) Publish(ctx context.Context, e Event) error {
	payload, err := Encode(e)
	if err != nil {
		return err
	}

	if _, err := b.db.ExecContext(ctx, `SELECT pg_notify($1, $2)`, Channel, string(payload)); err != nil {
		return fmt.Errorf("failed to notify %s: %w", e.Table(), err)
	}
	return nil
}

func (b *PGBroker) Subscribe(ctx context.Context) (<-chan Event, error) {
	// pq.Listener connects in the background and would hide an unreachable
	// server, so check reachability first.
	if err := b.db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to reach postgres for LISTEN: %w", err)
	}

	listener := pq.NewListener(b.dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			slog.Warn("postgres listener event", "event", int(ev), "error", err)
		}
	})

	if err := listener.Listen(Channel); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to listen on %s: %w", Channel, err)
	}

	out := make(chan Event, b.buffer)
	go func() {
		defer close(out)
		defer listener.Close()

		ping := time.NewTicker(90 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ping.C:
				go listener.Ping()
			case n, ok := <-listener.Notify:
				if !ok {
					return
				}
				// nil is sent after the listener re-establishes its connection
				if n == nil {
					continue
				}
				ev, err := Decode([]byte(n.Extra))
				if err != nil {
					slog.Warn("dropping undecodable notification", "error", err)
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
