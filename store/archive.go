// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shivakumar4147/surveyly/models"
)

func scanBankQuestion(row scanner) (models.BankQuestion, error) {
	var bq models.BankQuestion
	var options string
	if err := row.Scan(&bq.ID, &bq.Text, &bq.Type, &options, &bq.CreatedAt); err != nil {
		return models.BankQuestion{}, err
	}
	opts, err := decodeOptions(options)
	if err != nil {
		return models.BankQuestion{}, err
	}
	bq.Options = opts
	return bq, nil
}

func (s *Store) InsertBankQuestion(ctx context.Context, bq models.BankQuestion) (models.BankQuestion, error) {
	options, err := encodeOptions(bq.Options)
	if err != nil {
		return models.BankQuestion{}, err
	}

	bq.ID = newID()
	bq.CreatedAt = now()
	if bq.Options == nil {
		bq.Options = []string{}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO question_bank (id, question_text, type, options, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, bq.ID, bq.Text, bq.Type, options, bq.CreatedAt)
	if err != nil {
		return models.BankQuestion{}, fmt.Errorf("failed to insert bank question: %w", err)
	}
	return bq, nil
}

func (s *Store) ListBank(ctx context.Context) ([]models.BankQuestion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question_text, type, options, created_at
		FROM question_bank
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query question bank: %w", err)
	}
	defer rows.Close()

	bank := []models.BankQuestion{}
	for rows.Next() {
		bq, err := scanBankQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank question: %w", err)
		}
		bank = append(bank, bq)
	}
	return bank, rows.Err()
}

func (s *Store) BankQuestionByID(ctx context.Context, id string) (models.BankQuestion, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, question_text, type, options, created_at
		FROM question_bank WHERE id = $1
	`, id)
	bq, err := scanBankQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.BankQuestion{}, ErrNotFound
	}
	if err != nil {
		return models.BankQuestion{}, fmt.Errorf("failed to query bank question: %w", err)
	}
	return bq, nil
}

// InsertVersion stores a named snapshot.
func (s *Store) InsertVersion(ctx context.Context, name string, data models.SnapshotData) (models.Version, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return models.Version{}, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	v := models.Version{ID: newID(), Name: name, Data: data, CreatedAt: now()}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO version_history (id, name, data, created_at)
		VALUES ($1, $2, $3, $4)
	`, v.ID, v.Name, string(payload), v.CreatedAt)
	if err != nil {
		return models.Version{}, fmt.Errorf("failed to insert version: %w", err)
	}
	return v, nil
}

// ListVersions returns id, name and time of every version, newest first.
// Snapshot data is not loaded.
func (s *Store) ListVersions(ctx context.Context) ([]models.Version, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at FROM version_history
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query versions: %w", err)
	}
	defer rows.Close()

	versions := []models.Version{}
	for rows.Next() {
		var v models.Version
		if err := rows.Scan(&v.ID, &v.Name, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func (s *Store) VersionByID(ctx context.Context, id string) (models.Version, error) {
	var v models.Version
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, data, created_at FROM version_history WHERE id = $1
	`, id).Scan(&v.ID, &v.Name, &payload, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Version{}, ErrNotFound
	}
	if err != nil {
		return models.Version{}, fmt.Errorf("failed to query version: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), &v.Data); err != nil {
		return models.Version{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return v, nil
}

func (s *Store) CountVersions(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM version_history`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count versions: %w", err)
	}
	return count, nil
}

// Delete removes one row by id from an allow-listed table.
func (s *Store) Delete(ctx context.Context, entity, id string) error {
	if !models.IsEntity(entity) {
		return fmt.Errorf("%w: %q", ErrInvalidEntity, entity)
	}

	// entity is one of the fixed table names above, never caller text
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+entity+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", entity, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", entity, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
