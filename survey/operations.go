// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/shivakumar4147/surveyly/auth"
	"github.com/shivakumar4147/surveyly/models"
)

// VersionTimeLayout formats the timestamp in default version names.
const VersionTimeLayout = "2006-01-02 15:04:05"

// Submit stores one completed form: an optional general suggestion, one
// row per answer, and a submission log entry. Unknown question codes and
// blank answers are skipped. Caches catch up through the realtime path.
func (s *Session) Submit(ctx context.Context, req models.SubmitRequest) (models.SubmitResponse, error) {
	var resp models.SubmitResponse

	codes := make([]string, 0, len(req.Answers))
	for code := range req.Answers {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	s.mu.Lock()
	questions := make(map[string]models.Question, len(codes))
	for _, code := range codes {
		if q, ok := s.registry.Resolve(ctx, code); ok {
			questions[code] = q
		} else {
			slog.Warn("Skipping answer for unknown question", "code", code)
		}
	}
	s.mu.Unlock()

	if text := strings.TrimSpace(req.Suggestion); text != "" {
		if _, err := s.store.InsertSuggestion(ctx, models.Suggestion{Text: text}); err != nil {
			return resp, fmt.Errorf("failed to save suggestion: %w", err)
		}
		resp.Suggestions++
	}

	for _, code := range codes {
		q, ok := questions[code]
		if !ok {
			continue
		}
		answer := strings.TrimSpace(req.Answers[code])
		if answer == "" {
			continue
		}

		if !q.IsChoice() {
			id, qcode := q.ID, q.Code
			if _, err := s.store.InsertSuggestion(ctx, models.Suggestion{
				Text:         answer,
				QuestionID:   &id,
				QuestionCode: &qcode,
			}); err != nil {
				return resp, fmt.Errorf("failed to save feedback for %s: %w", code, err)
			}
			resp.Suggestions++
			continue
		}

		if _, err := s.store.InsertResponse(ctx, q.ID, answer); err != nil {
			return resp, fmt.Errorf("failed to save response for %s: %w", code, err)
		}
		resp.Responses++
	}

	if _, err := s.store.LogSubmission(ctx); err != nil {
		return resp, fmt.Errorf("failed to log submission: %w", err)
	}

	slog.Info("Form submitted", "responses", resp.Responses, "suggestions", resp.Suggestions)
	s.autoSaveVersion(ctx)
	return resp, nil
}

// AddQuestion validates and creates a user-authored question on the form,
// in the bank, or both. Validation happens before any write.
func (s *Session) AddQuestion(ctx context.Context, req models.AddQuestionRequest) (models.AddQuestionResponse, error) {
	var resp models.AddQuestionResponse

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return resp, invalid("Please enter a question.")
	}

	qType := req.Type
	if qType == "" {
		qType = models.TypeChoice
	}
	if qType != models.TypeChoice && qType != models.TypeText {
		return resp, invalid("Question type must be radio or text.")
	}

	var options []string
	if qType == models.TypeChoice {
		seen := make(map[string]bool)
		for _, opt := range req.Options {
			opt = strings.TrimSpace(opt)
			if opt == "" || seen[opt] {
				continue
			}
			seen[opt] = true
			options = append(options, opt)
		}
		if len(options) < 2 {
			return resp, invalid("Please provide at least 2 options for multiple choice questions.")
		}
	}

	dest := req.Destination
	if dest == "" {
		dest = models.DestinationForm
	}
	if dest != models.DestinationForm && dest != models.DestinationBank {
		return resp, invalid("Destination must be form or bank.")
	}
	toBank := dest == models.DestinationBank || req.AddToBank

	if dest == models.DestinationForm {
		q, err := s.store.InsertQuestion(ctx, models.Question{
			Code:    auth.NewQuestionCode(),
			Text:    text,
			Type:    qType,
			Options: options,
			InBank:  toBank,
		})
		if err != nil {
			return resp, fmt.Errorf("failed to create question: %w", err)
		}
		s.registerQuestion(q)
		resp.Question = &q
		slog.Info("Question added", "code", q.Code, "type", q.Type)
	}

	if toBank {
		bq, err := s.store.InsertBankQuestion(ctx, models.BankQuestion{
			Text:    text,
			Type:    qType,
			Options: options,
		})
		if err != nil {
			return resp, fmt.Errorf("failed to save to bank: %w", err)
		}
		resp.BankQuestion = &bq
	}

	return resp, nil
}

// SetSuggestionStatus moderates one suggestion.
func (s *Session) SetSuggestionStatus(ctx context.Context, id, status string) error {
	if !models.IsStatus(status) {
		return invalid("Status must be none, red or green.")
	}
	if err := s.store.UpdateSuggestionStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update suggestion %s: %w", id, err)
	}
	s.setFeedbackStatus(id, status)
	return nil
}

// SaveToBank copies a registered question into the bank unless a bank entry
// with the same text already exists.
func (s *Session) SaveToBank(ctx context.Context, code string) (models.BankQuestion, error) {
	q, ok := s.Resolve(ctx, code)
	if !ok {
		return models.BankQuestion{}, fmt.Errorf("%w: %s", ErrUnknownQuestion, code)
	}

	bank, err := s.store.ListBank(ctx)
	if err != nil {
		return models.BankQuestion{}, fmt.Errorf("failed to list bank: %w", err)
	}
	for _, bq := range bank {
		if strings.EqualFold(strings.TrimSpace(bq.Text), strings.TrimSpace(q.Text)) {
			return models.BankQuestion{}, ErrAlreadyInBank
		}
	}

	bq, err := s.store.InsertBankQuestion(ctx, models.BankQuestion{
		Text:    q.Text,
		Type:    q.Type,
		Options: q.Options,
	})
	if err != nil {
		return models.BankQuestion{}, fmt.Errorf("failed to save to bank: %w", err)
	}
	return bq, nil
}

func (s *Session) Bank(ctx context.Context) ([]models.BankQuestion, error) {
	bank, err := s.store.ListBank(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank: %w", err)
	}
	return bank, nil
}

// UseBankQuestion puts a bank entry on the form as a new question.
func (s *Session) UseBankQuestion(ctx context.Context, id string) (models.Question, error) {
	bq, err := s.store.BankQuestionByID(ctx, id)
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to load bank question %s: %w", id, err)
	}

	resp, err := s.AddQuestion(ctx, models.AddQuestionRequest{
		Text:        bq.Text,
		Type:        bq.Type,
		Options:     bq.Options,
		Destination: models.DestinationForm,
	})
	if err != nil {
		return models.Question{}, err
	}
	return *resp.Question, nil
}

// SaveVersion stores a point-in-time copy of the aggregation state. A blank
// name becomes "Version N - <time>".
func (s *Session) SaveVersion(ctx context.Context, name string) (models.Version, error) {
	return s.saveVersion(ctx, name, s.Snapshot())
}

func (s *Session) saveVersion(ctx context.Context, name string, data models.SnapshotData) (models.Version, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		n, err := s.store.CountVersions(ctx)
		if err != nil {
			return models.Version{}, fmt.Errorf("failed to count versions: %w", err)
		}
		name = fmt.Sprintf("Version %d - %s", n+1, time.Now().Format(VersionTimeLayout))
	}

	v, err := s.store.InsertVersion(ctx, name, data)
	if err != nil {
		return models.Version{}, fmt.Errorf("failed to save version: %w", err)
	}
	slog.Info("Version saved", "id", v.ID, "name", v.Name)
	return v, nil
}

// ensureInitialVersion saves the first version when auto-versioning is on
// and the history is empty.
func (s *Session) ensureInitialVersion(ctx context.Context) {
	if !s.autoVersioning() {
		return
	}
	n, err := s.store.CountVersions(ctx)
	if err != nil {
		slog.Warn("Failed to check version history", "error", err)
		return
	}
	if n > 0 {
		return
	}
	if _, err := s.saveVersion(ctx, "", s.Snapshot()); err != nil {
		slog.Warn("Failed to save initial version", "error", err)
	}
}

// autoSaveVersion records the state after a submission. Nothing is saved
// until the history has at least one version.
func (s *Session) autoSaveVersion(ctx context.Context) {
	if !s.autoVersioning() {
		return
	}
	n, err := s.store.CountVersions(ctx)
	if err != nil {
		slog.Warn("Failed to check version history", "error", err)
		return
	}
	if n == 0 {
		return
	}

	data, err := s.storeSnapshot(ctx)
	if err != nil {
		slog.Warn("Skipping automatic version", "error", err)
		return
	}
	if _, err := s.saveVersion(ctx, "", data); err != nil {
		slog.Warn("Failed to save automatic version", "error", err)
	}
}

// storeSnapshot builds the aggregation state straight from the store. The
// cached tally may not have seen this process's own inserts yet.
func (s *Session) storeSnapshot(ctx context.Context) (models.SnapshotData, error) {
	reg := NewRegistry(s.store)
	agg := NewAggregator(s.store)
	if err := agg.Hydrate(ctx, reg); err != nil {
		return models.SnapshotData{}, err
	}
	n, err := s.store.CountSubmissions(ctx)
	if err != nil {
		return models.SnapshotData{}, fmt.Errorf("failed to count submissions: %w", err)
	}
	return models.SnapshotData{
		Tallies:     agg.Snapshot(),
		Questions:   reg.Questions(),
		Submissions: n,
	}, nil
}

// Versions lists saved versions newest first, without their data.
func (s *Session) Versions(ctx context.Context) ([]models.VersionSummary, error) {
	versions, err := s.store.ListVersions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}

	out := make([]models.VersionSummary, 0, len(versions))
	for _, v := range versions {
		out = append(out, models.VersionSummary{
			ID:        v.ID,
			Name:      v.Name,
			CreatedAt: v.CreatedAt,
			Age:       humanize.Time(v.CreatedAt),
		})
	}
	return out, nil
}

func (s *Session) Version(ctx context.Context, id string) (models.Version, error) {
	v, err := s.store.VersionByID(ctx, id)
	if err != nil {
		return models.Version{}, fmt.Errorf("failed to load version %s: %w", id, err)
	}
	return v, nil
}
