// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shivakumar4147/surveyly/auth"
	"github.com/shivakumar4147/surveyly/models"
	"github.com/shivakumar4147/surveyly/testutil"
)

func TestQuestionBank(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewArchiveHandler(env.session)

	// Step 1: Save a form question to the bank
	req := testutil.MakeRequest("POST", "/api/bank", models.SaveToBankRequest{Code: "age"}, nil)
	w := httptest.NewRecorder()
	handler.SaveToBank(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var saved models.BankQuestion
	testutil.AssertJSON(t, w, &saved)
	if saved.Text != "What is your age group?" || len(saved.Options) != 4 {
		t.Fatalf("Unexpected bank question: %+v", saved)
	}

	// Step 2: Saving the same text again is a conflict
	req = testutil.MakeRequest("POST", "/api/bank", models.SaveToBankRequest{Code: "age"}, nil)
	w = httptest.NewRecorder()
	handler.SaveToBank(w, req)

	testutil.AssertStatus(t, w, http.StatusConflict)

	// Step 3: List the bank
	req = testutil.MakeRequest("GET", "/api/bank", nil, nil)
	w = httptest.NewRecorder()
	handler.ListBank(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var bank []models.BankQuestion
	testutil.AssertJSON(t, w, &bank)
	if len(bank) != 1 || bank[0].ID != saved.ID {
		t.Fatalf("Expected bank with saved question, got %+v", bank)
	}

	// Step 4: Put the bank question back on the form
	req = testutil.MakeRequest("POST", "/api/bank/"+saved.ID+"/use", nil, nil)
	req.SetPathValue("id", saved.ID)
	w = httptest.NewRecorder()
	handler.UseBankQuestion(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var q models.Question
	testutil.AssertJSON(t, w, &q)
	if !strings.HasPrefix(q.Code, auth.CustomCodePrefix) {
		t.Errorf("Expected custom code, got %q", q.Code)
	}
	if q.Text != saved.Text {
		t.Errorf("Expected text %q, got %q", saved.Text, q.Text)
	}
	if got := len(env.session.Questions()); got != 3 {
		t.Errorf("Expected 3 questions on the form, got %d", got)
	}
}

func TestQuestionBankErrors(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewArchiveHandler(env.session)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{"missing code", models.SaveToBankRequest{}, http.StatusBadRequest},
		{"unknown code", models.SaveToBankRequest{Code: "nope"}, http.StatusNotFound},
		{"invalid json", []string{"age"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/bank", tt.body, nil)
			w := httptest.NewRecorder()
			handler.SaveToBank(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	req := testutil.MakeRequest("POST", "/api/bank/missing/use", nil, nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()
	handler.UseBankQuestion(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestVersions(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewArchiveHandler(env.session)

	testutil.CreateTestResponse(t, env.db, env.questionID(t, "age"), "60+")
	env.refresh(t)

	// An empty body gets a generated name
	req := testutil.MakeRequest("POST", "/api/versions", nil, nil)
	w := httptest.NewRecorder()
	handler.SaveVersion(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var first models.Version
	testutil.AssertJSON(t, w, &first)
	if !strings.HasPrefix(first.Name, "Version 1 - ") {
		t.Errorf("Expected generated name, got %q", first.Name)
	}

	req = testutil.MakeRequest("POST", "/api/versions", models.SaveVersionRequest{Name: "  Launch  "}, nil)
	w = httptest.NewRecorder()
	handler.SaveVersion(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var second models.Version
	testutil.AssertJSON(t, w, &second)
	if second.Name != "Launch" {
		t.Errorf("Expected name Launch, got %q", second.Name)
	}

	req = testutil.MakeRequest("GET", "/api/versions", nil, nil)
	w = httptest.NewRecorder()
	handler.ListVersions(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var summaries []models.VersionSummary
	testutil.AssertJSON(t, w, &summaries)
	if len(summaries) != 2 {
		t.Fatalf("Expected 2 versions, got %d", len(summaries))
	}
	for _, s := range summaries {
		if s.Age == "" {
			t.Errorf("Expected humanized age for %s", s.ID)
		}
	}

	req = testutil.MakeRequest("GET", "/api/versions/"+first.ID, nil, nil)
	req.SetPathValue("id", first.ID)
	w = httptest.NewRecorder()
	handler.GetVersion(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var loaded models.Version
	testutil.AssertJSON(t, w, &loaded)
	if loaded.Data.Tallies["age"]["60+"] != 1 {
		t.Errorf("Expected stored tally 60+ = 1, got %v", loaded.Data.Tallies["age"])
	}
	if len(loaded.Data.Questions) != 2 {
		t.Errorf("Expected 2 questions in snapshot, got %d", len(loaded.Data.Questions))
	}

	req = testutil.MakeRequest("GET", "/api/versions/missing", nil, nil)
	req.SetPathValue("id", "missing")
	w = httptest.NewRecorder()
	handler.GetVersion(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}
