// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shivakumar4147/surveyly/models"
)

const questionColumns = `id, code, text, type, options, in_bank, created_at`

func scanQuestion(row scanner) (models.Question, error) {
	var q models.Question
	var options string
	if err := row.Scan(&q.ID, &q.Code, &q.Text, &q.Type, &options, &q.InBank, &q.CreatedAt); err != nil {
		return models.Question{}, err
	}
	opts, err := decodeOptions(options)
	if err != nil {
		return models.Question{}, err
	}
	q.Options = opts
	return q, nil
}

// QuestionByCode returns ErrNotFound when no question has the code.
func (s *Store) QuestionByCode(ctx context.Context, code string) (models.Question, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+questionColumns+` FROM questions WHERE code = $1`, code)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Question{}, ErrNotFound
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to query question %q: %w", code, err)
	}
	return q, nil
}

// QuestionByID returns ErrNotFound when no question has the id.
func (s *Store) QuestionByID(ctx context.Context, id string) (models.Question, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = $1`, id)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Question{}, ErrNotFound
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to query question id %s: %w", id, err)
	}
	return q, nil
}

// ListQuestions returns every question, oldest first.
func (s *Store) ListQuestions(ctx context.Context) ([]models.Question, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+questionColumns+` FROM questions ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// InsertQuestion stores q with a fresh id and creation time and returns the
// stored record.
func (s *Store) InsertQuestion(ctx context.Context, q models.Question) (models.Question, error) {
	options, err := encodeOptions(q.Options)
	if err != nil {
		return models.Question{}, err
	}

	q.ID = newID()
	q.CreatedAt = now()
	if q.Options == nil {
		q.Options = []string{}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO questions (id, code, text, type, options, in_bank, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, q.ID, q.Code, q.Text, q.Type, options, q.InBank, q.CreatedAt)
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to insert question %q: %w", q.Code, err)
	}

	return q, nil
}
