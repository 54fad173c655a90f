// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/shivakumar4147/surveyly/models"
)

// Session owns the process-local survey state: the question registry, the
// response tally, the feedback list and the submission count. Every method
// takes the session lock, so hydration and realtime updates never
// interleave.
type Session struct {
	mu             sync.Mutex
	store          Store
	registry       *Registry
	agg            *Aggregator
	feedback       []models.Suggestion // newest first
	feedbackLoaded bool
	submissions    int
	autoVersion    bool
}

func NewSession(st Store) *Session {
	return &Session{
		store:    st,
		registry: NewRegistry(st),
		agg:      NewAggregator(st),
	}
}

// SetAutoVersion turns on automatic versions: an initial one when the
// history is empty at bootstrap, and one after every submission once any
// version exists.
func (s *Session) SetAutoVersion(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoVersion = on
}

func (s *Session) autoVersioning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoVersion
}

// Bootstrap seeds the base questionnaire and loads everything else from the
// store. Seed failures are logged and do not stop the load.
func (s *Session) Bootstrap(ctx context.Context, seeds []models.QuestionSeed) error {
	s.mu.Lock()
	if err := s.registry.EnsureSeedSet(ctx, seeds); err != nil {
		slog.Warn("Some seed questions are unavailable", "error", err)
	}
	s.mu.Unlock()

	if err := s.Refresh(ctx); err != nil {
		return err
	}
	s.ensureInitialVersion(ctx)
	return nil
}

// Refresh rebuilds tallies, the feedback list and the submission count in
// one critical section. Realtime events that arrive meanwhile wait and are
// applied on top of the rebuilt state.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.agg.Hydrate(ctx, s.registry); err != nil {
		return err
	}
	if err := s.loadFeedback(ctx); err != nil {
		return err
	}
	if _, err := s.loadSubmissionCount(ctx); err != nil {
		return err
	}
	return nil
}

// Hydrate rebuilds the registry and tallies from the store.
func (s *Session) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agg.Hydrate(ctx, s.registry)
}

func (s *Session) LoadFeedback(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadFeedback(ctx)
}

// loadFeedback must be called with s.mu held.
func (s *Session) loadFeedback(ctx context.Context) error {
	list, err := s.store.ListSuggestions(ctx)
	if err != nil {
		slog.Error("Failed to load suggestions", "error", err)
		return fmt.Errorf("failed to load suggestions: %w", err)
	}
	s.feedback = list
	s.feedbackLoaded = true
	return nil
}

// RefreshSubmissionCount re-counts submission rows. The counter is never
// incremented locally.
func (s *Session) RefreshSubmissionCount(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadSubmissionCount(ctx)
}

// loadSubmissionCount must be called with s.mu held.
func (s *Session) loadSubmissionCount(ctx context.Context) (int, error) {
	n, err := s.store.CountSubmissions(ctx)
	if err != nil {
		slog.Error("Failed to count submissions", "error", err)
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	s.submissions = n
	return n, nil
}

func (s *Session) Resolve(ctx context.Context, code string) (models.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Resolve(ctx, code)
}

func (s *Session) Questions() []models.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Questions()
}

// Results builds the results panel for code. It returns ErrUnknownQuestion
// when the code cannot be resolved.
func (s *Session) Results(ctx context.Context, code string) (models.ResultView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.registry.Resolve(ctx, code)
	if !ok {
		return models.ResultView{}, fmt.Errorf("%w: %s", ErrUnknownQuestion, code)
	}
	if q.IsChoice() {
		s.agg.Register(q)
	}
	return s.resultView(ctx, q), nil
}

// resultView must be called with s.mu held.
func (s *Session) resultView(ctx context.Context, q models.Question) models.ResultView {
	view := models.ResultView{Question: q}
	if !q.IsChoice() {
		view.Feedback = s.questionFeedback(ctx, q.Code)
		view.Total = len(view.Feedback)
		return view
	}

	view.Counts = orderedCounts(q, s.agg.Counts(q.Code))
	for _, c := range view.Counts {
		view.Total += c.Count
	}
	view.Step = TickStep(view.Total)
	return view
}

// orderedCounts lists declared options first, then any other answers
// alphabetically.
func orderedCounts(q models.Question, counts map[string]int) []models.OptionCount {
	out := make([]models.OptionCount, 0, len(counts))
	declared := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		label := strings.TrimSpace(opt)
		if label == "" || declared[label] {
			continue
		}
		declared[label] = true
		out = append(out, models.OptionCount{Label: label, Count: counts[label]})
	}

	var extras []string
	for label := range counts {
		if !declared[label] {
			extras = append(extras, label)
		}
	}
	sort.Strings(extras)
	for _, label := range extras {
		out = append(out, models.OptionCount{Label: label, Count: counts[label]})
	}
	return out
}

// Snapshot returns an independent copy of the aggregation state.
func (s *Session) Snapshot() models.SnapshotData {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.SnapshotData{
		Tallies:     s.agg.Snapshot(),
		Questions:   s.registry.Questions(),
		Submissions: s.submissions,
	}
}

func (s *Session) SubmissionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submissions
}

// Feedback returns a copy of every suggestion, newest first.
func (s *Session) Feedback() []models.Suggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Suggestion(nil), s.feedback...)
}

// QuestionFeedback returns the suggestions attached to one question.
func (s *Session) QuestionFeedback(ctx context.Context, code string) []models.Suggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questionFeedback(ctx, code)
}

// questionFeedback filters the cached list. Until the list has loaded it
// asks the store for the one question instead.
func (s *Session) questionFeedback(ctx context.Context, code string) []models.Suggestion {
	if !s.feedbackLoaded {
		list, err := s.store.SuggestionsForQuestion(ctx, code)
		if err != nil {
			slog.Warn("Failed to load question feedback", "code", code, "error", err)
			return nil
		}
		return list
	}

	var out []models.Suggestion
	for _, sg := range s.feedback {
		if sg.QuestionCode != nil && *sg.QuestionCode == code {
			out = append(out, sg)
		}
	}
	return out
}

// applyResponse folds one inserted response into the tally. It returns the
// refreshed view of the affected question, or false if the event was
// dropped.
func (s *Session) applyResponse(ctx context.Context, r models.Response) (models.ResultView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.registry.ReverseLookup(ctx, r.QuestionID)
	if !ok {
		slog.Debug("Dropping response for unknown question", "question_id", r.QuestionID)
		return models.ResultView{}, false
	}
	q, _ := s.registry.Lookup(code)
	if !q.IsChoice() {
		return models.ResultView{}, false
	}
	s.agg.Register(q)
	if !s.agg.ApplyIncrement(code, r.Answer) {
		return models.ResultView{}, false
	}
	return s.resultView(ctx, q), true
}

// prependFeedback adds an inserted suggestion to the front of the list.
// Empty texts and ids already present are ignored.
func (s *Session) prependFeedback(sg models.Suggestion) bool {
	if strings.TrimSpace(sg.Text) == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.feedback {
		if existing.ID == sg.ID {
			return false
		}
	}
	s.feedback = append([]models.Suggestion{sg}, s.feedback...)
	return true
}

// setFeedbackStatus mirrors a moderation change into the cached list.
func (s *Session) setFeedbackStatus(id, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.feedback {
		if s.feedback[i].ID == id {
			s.feedback[i].Status = status
			return
		}
	}
}

// registerQuestion caches a question created by this process.
func (s *Session) registerQuestion(q models.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.registry.Put(q)
	s.agg.Register(q)
}

// CounterLabel renders the submission counter shown above the form.
func CounterLabel(n int) string {
	return "Forms filled: " + humanize.Comma(int64(n))
}
