// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shivakumar4147/surveyly/cliparse"
	"github.com/shivakumar4147/surveyly/models"
	"github.com/shivakumar4147/surveyly/realtime"
	"github.com/shivakumar4147/surveyly/store"
	"github.com/shivakumar4147/surveyly/survey"
	"github.com/shivakumar4147/surveyly/testutil"
)

var testSeeds = []models.QuestionSeed{
	{Code: "age", Text: "What is your age group?", Type: models.TypeChoice, Options: []string{"10-20", "20-40", "40-60", "60+"}},
	{Code: "comments", Text: "Anything else to tell us?", Type: models.TypeText},
}

// testEnv is a bootstrapped session over a private SQLite database.
// No synchronizer runs unless a test starts one, so inserts only reach the
// caches through an explicit refresh.
type testEnv struct {
	db      *sql.DB
	store   *store.Store
	broker  *realtime.LocalBroker
	session *survey.Session
	cfg     cliparse.Config
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })

	broker := realtime.NewLocalBroker(0)
	st := store.New(conn, broker)
	session := survey.NewSession(st)
	if err := session.Bootstrap(context.Background(), testSeeds); err != nil {
		t.Fatalf("Failed to bootstrap session: %v", err)
	}

	return &testEnv{
		db:      conn,
		store:   st,
		broker:  broker,
		session: session,
		cfg:     testutil.GetTestConfig(),
	}
}

// questionID returns the stored id of a registered question.
func (e *testEnv) questionID(t *testing.T, code string) string {
	t.Helper()
	q, ok := e.session.Resolve(context.Background(), code)
	if !ok {
		t.Fatalf("Question %s is not registered", code)
	}
	return q.ID
}

func (e *testEnv) refresh(t *testing.T) {
	t.Helper()
	if err := e.session.Refresh(context.Background()); err != nil {
		t.Fatalf("Failed to refresh session: %v", err)
	}
}
