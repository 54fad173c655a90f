// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shivakumar4147/surveyly/models"
	"github.com/shivakumar4147/surveyly/realtime"
)

// AnswersForQuestion returns the raw answer of every response row for a
// question, untrimmed.
func (s *Store) AnswersForQuestion(ctx context.Context, questionID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT answer FROM responses WHERE question_id = $1`, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}
	defer rows.Close()

	answers := []string{}
	for rows.Next() {
		var answer sql.NullString
		if err := rows.Scan(&answer); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		answers = append(answers, answer.String)
	}
	return answers, rows.Err()
}

func (s *Store) InsertResponse(ctx context.Context, questionID, answer string) (models.Response, error) {
	r := models.Response{
		ID:         newID(),
		QuestionID: questionID,
		Answer:     answer,
		CreatedAt:  now(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO responses (id, question_id, answer, created_at)
		VALUES ($1, $2, $3, $4)
	`, r.ID, r.QuestionID, r.Answer, r.CreatedAt)
	if err != nil {
		return models.Response{}, fmt.Errorf("failed to insert response: %w", err)
	}

	s.publish(ctx, realtime.ResponseInserted{Response: r})
	return r, nil
}

const suggestionColumns = `id, text, status, question_id, question_code, created_at`

func scanSuggestion(row scanner) (models.Suggestion, error) {
	var sg models.Suggestion
	var qid, qcode sql.NullString
	if err := row.Scan(&sg.ID, &sg.Text, &sg.Status, &qid, &qcode, &sg.CreatedAt); err != nil {
		return models.Suggestion{}, err
	}
	sg.QuestionID = nullable(qid)
	sg.QuestionCode = nullable(qcode)
	return sg, nil
}

func (s *Store) querySuggestions(ctx context.Context, query string, args ...any) ([]models.Suggestion, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query suggestions: %w", err)
	}
	defer rows.Close()

	suggestions := []models.Suggestion{}
	for rows.Next() {
		sg, err := scanSuggestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		suggestions = append(suggestions, sg)
	}
	return suggestions, rows.Err()
}

// InsertSuggestion stores sg (status defaults to none) and returns the
// stored record.
func (s *Store) InsertSuggestion(ctx context.Context, sg models.Suggestion) (models.Suggestion, error) {
	sg.ID = newID()
	sg.CreatedAt = now()
	if sg.Status == "" {
		sg.Status = models.StatusNone
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO suggestions (id, text, status, question_id, question_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, sg.ID, sg.Text, sg.Status, sg.QuestionID, sg.QuestionCode, sg.CreatedAt)
	if err != nil {
		return models.Suggestion{}, fmt.Errorf("failed to insert suggestion: %w", err)
	}

	s.publish(ctx, realtime.SuggestionInserted{Suggestion: sg})
	return sg, nil
}

// ListSuggestions returns all suggestions, newest first.
func (s *Store) ListSuggestions(ctx context.Context) ([]models.Suggestion, error) {
	return s.querySuggestions(ctx, `SELECT `+suggestionColumns+` FROM suggestions ORDER BY created_at DESC, id`)
}

// SuggestionsForQuestion returns feedback attached to one question, newest first.
func (s *Store) SuggestionsForQuestion(ctx context.Context, code string) ([]models.Suggestion, error) {
	return s.querySuggestions(ctx, `
		SELECT `+suggestionColumns+` FROM suggestions
		WHERE question_code = $1
		ORDER BY created_at DESC, id
	`, code)
}

func (s *Store) UpdateSuggestionStatus(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE suggestions SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update suggestion: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update suggestion: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// LogSubmission appends one row to submission_log.
func (s *Store) LogSubmission(ctx context.Context) (models.Submission, error) {
	sub := models.Submission{ID: newID(), CreatedAt: now()}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO submission_log (id, created_at) VALUES ($1, $2)
	`, sub.ID, sub.CreatedAt)
	if err != nil {
		return models.Submission{}, fmt.Errorf("failed to log submission: %w", err)
	}

	s.publish(ctx, realtime.SubmissionInserted{Submission: sub})
	return sub, nil
}

func (s *Store) CountSubmissions(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM submission_log`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	return count, nil
}
