// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shivakumar4147/surveyly/realtime"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidEntity = errors.New("invalid entity type")
)

// Store is the system of record. Inserts into watched tables are announced
// on the publisher after they succeed.
type Store struct {
	db  *sql.DB
	pub realtime.Publisher
}

// New returns a Store; pub may be nil when nobody listens for changes.
func New(db *sql.DB, pub realtime.Publisher) *Store {
	return &Store{db: db, pub: pub}
}

// DB exposes the underlying handle for health checks and tests.
func (s *Store) DB() *sql.DB {
	return s.db
}

// publish announces a committed insert. The row is already written, so a
// caller that goes away must not take the event with it.
func (s *Store) publish(ctx context.Context, e realtime.Event) {
	if s.pub == nil {
		return
	}
	if err := s.pub.Publish(context.WithoutCancel(ctx), e); err != nil {
		slog.Warn("failed to publish change", "table", e.Table(), "error", err)
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func newID() string {
	return uuid.NewString()
}

func now() time.Time {
	return time.Now().UTC()
}

func encodeOptions(options []string) (string, error) {
	if options == nil {
		options = []string{}
	}
	b, err := json.Marshal(options)
	if err != nil {
		return "", fmt.Errorf("failed to encode options: %w", err)
	}
	return string(b), nil
}

func decodeOptions(raw string) ([]string, error) {
	options := []string{}
	if raw == "" {
		return options, nil
	}
	if err := json.Unmarshal([]byte(raw), &options); err != nil {
		return nil, fmt.Errorf("failed to decode options: %w", err)
	}
	return options, nil
}

func nullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
