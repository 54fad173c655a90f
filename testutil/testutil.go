// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shivakumar4147/surveyly/cliparse"
	"github.com/shivakumar4147/surveyly/db"
	"github.com/shivakumar4147/surveyly/models"
)

// TestAdminPassword is the admin password in GetTestConfig
const TestAdminPassword = "test-admin-password"

// SetupTestDB opens a private in-memory SQLite database with the full schema.
// db.Open pins SQLite to one connection, so the database lives until Close.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	conn, err := db.Open(ctx, "sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(ctx, conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            8081,
		DatabaseType:    "sqlite",
		DatabaseURL:     ":memory:",
		StaticDir:       ".",
		AdminPassword:   TestAdminPassword,
		SupabaseURL:     "https://test.supabase.co",
		SupabaseAnonKey: "test-anon-key",
	}
}

// CreateTestQuestion inserts a question row directly and returns it
func CreateTestQuestion(t *testing.T, db *sql.DB, code, qType string, options ...string) models.Question {
	t.Helper()

	if options == nil {
		options = []string{}
	}
	raw, _ := json.Marshal(options)

	q := models.Question{
		ID:        uuid.NewString(),
		Code:      code,
		Text:      "Question " + code,
		Type:      qType,
		Options:   options,
		CreatedAt: time.Now().UTC(),
	}
	_, err := db.Exec(`
		INSERT INTO questions (id, code, text, type, options, in_bank, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, q.ID, q.Code, q.Text, q.Type, string(raw), false, q.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	return q
}

// CreateTestResponse inserts a response row directly (no change event)
func CreateTestResponse(t *testing.T, db *sql.DB, questionID, answer string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO responses (id, question_id, answer, created_at)
		VALUES ($1, $2, $3, $4)
	`, id, questionID, answer, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test response: %v", err)
	}

	return id
}

// CountRows returns how many rows of table have the given id
func CountRows(t *testing.T, db *sql.DB, table, id string) int {
	t.Helper()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE id = $1`, id).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s rows: %v", table, err)
	}
	return n
}

// CountTable returns the number of rows in table
func CountTable(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s rows: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
