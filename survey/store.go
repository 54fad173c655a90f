// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"context"

	"github.com/shivakumar4147/surveyly/models"
)

// QuestionStore is what the registry needs from the Remote Store. Point
// lookups return store.ErrNotFound for missing rows.
type QuestionStore interface {
	QuestionByCode(ctx context.Context, code string) (models.Question, error)
	QuestionByID(ctx context.Context, id string) (models.Question, error)
	InsertQuestion(ctx context.Context, q models.Question) (models.Question, error)
	ListQuestions(ctx context.Context) ([]models.Question, error)
}

// ResponseStore is what hydration needs beyond the question list.
type ResponseStore interface {
	ListQuestions(ctx context.Context) ([]models.Question, error)
	AnswersForQuestion(ctx context.Context, questionID string) ([]string, error)
}

type FeedbackStore interface {
	InsertSuggestion(ctx context.Context, s models.Suggestion) (models.Suggestion, error)
	ListSuggestions(ctx context.Context) ([]models.Suggestion, error)
	SuggestionsForQuestion(ctx context.Context, code string) ([]models.Suggestion, error)
	UpdateSuggestionStatus(ctx context.Context, id, status string) error
}

type SubmissionStore interface {
	InsertResponse(ctx context.Context, questionID, answer string) (models.Response, error)
	LogSubmission(ctx context.Context) (models.Submission, error)
	CountSubmissions(ctx context.Context) (int, error)
}

type ArchiveStore interface {
	InsertBankQuestion(ctx context.Context, bq models.BankQuestion) (models.BankQuestion, error)
	ListBank(ctx context.Context) ([]models.BankQuestion, error)
	BankQuestionByID(ctx context.Context, id string) (models.BankQuestion, error)
	InsertVersion(ctx context.Context, name string, data models.SnapshotData) (models.Version, error)
	ListVersions(ctx context.Context) ([]models.Version, error)
	VersionByID(ctx context.Context, id string) (models.Version, error)
	CountVersions(ctx context.Context) (int, error)
}

// Store is the full Remote Store surface used by a Session; *store.Store
// satisfies it.
type Store interface {
	QuestionStore
	ResponseStore
	FeedbackStore
	SubmissionStore
	ArchiveStore
}
