// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shivakumar4147/surveyly/models"
)

// Tally maps question code to option label to response count.
type Tally map[string]map[string]int

// Clone returns a deep copy of t.
func (t Tally) Clone() Tally {
	out := make(Tally, len(t))
	for code, counts := range t {
		out[code] = cloneCounts(counts)
	}
	return out
}

// Total sums the counts for one question.
func (t Tally) Total(code string) int {
	total := 0
	for _, n := range t[code] {
		total += n
	}
	return total
}

func cloneCounts(counts map[string]int) map[string]int {
	out := make(map[string]int, len(counts))
	for label, n := range counts {
		out[label] = n
	}
	return out
}

// Aggregator is the in-memory response tally. Hydrate rebuilds it from the
// store; ApplyIncrement keeps it current between hydrations. It is not safe
// for concurrent use; Session serializes access.
type Aggregator struct {
	store ResponseStore
	tally Tally
}

func NewAggregator(st ResponseStore) *Aggregator {
	return &Aggregator{store: st, tally: make(Tally)}
}

// Hydrate lists every question, refreshes reg with them, and recomputes
// each choice question's tally from its raw answers. A failed per-question
// fetch keeps that question's previous counts; a failed question list
// leaves everything untouched.
func (a *Aggregator) Hydrate(ctx context.Context, reg *Registry) error {
	questions, err := a.store.ListQuestions(ctx)
	if err != nil {
		slog.Error("Failed to list questions for hydration", "error", err)
		return fmt.Errorf("failed to list questions: %w", err)
	}
	reg.replaceAll(questions)

	next := make(Tally, len(questions))
	failed := 0
	for _, q := range questions {
		if !q.IsChoice() {
			continue
		}

		answers, err := a.store.AnswersForQuestion(ctx, q.ID)
		if err != nil {
			slog.Error("Failed to fetch responses", "code", q.Code, "error", err)
			failed++
			if prev, ok := a.tally[q.Code]; ok {
				next[q.Code] = cloneCounts(prev)
			} else {
				next[q.Code] = zeroCounts(q)
			}
			continue
		}

		counts := zeroCounts(q)
		for _, raw := range answers {
			if label := strings.TrimSpace(raw); label != "" {
				counts[label]++
			}
		}
		next[q.Code] = counts
	}

	a.tally = next
	slog.Debug("Hydrated tallies", "questions", len(questions), "failed", failed)
	return nil
}

// Register adds a zero-filled tally for a new choice question. Existing
// counts are kept.
func (a *Aggregator) Register(q models.Question) {
	if !q.IsChoice() {
		return
	}
	counts, ok := a.tally[q.Code]
	if !ok {
		a.tally[q.Code] = zeroCounts(q)
		return
	}
	for _, opt := range q.Options {
		if label := strings.TrimSpace(opt); label != "" {
			if _, seen := counts[label]; !seen {
				counts[label] = 0
			}
		}
	}
}

// ApplyIncrement adds one response for label. It reports false when the
// trimmed label is empty and nothing changed.
func (a *Aggregator) ApplyIncrement(code, label string) bool {
	label = strings.TrimSpace(label)
	if label == "" {
		return false
	}
	counts, ok := a.tally[code]
	if !ok {
		counts = make(map[string]int)
		a.tally[code] = counts
	}
	counts[label]++
	return true
}

// Snapshot returns an independent copy of the whole tally.
func (a *Aggregator) Snapshot() Tally {
	return a.tally.Clone()
}

// Counts returns a copy of one question's counts, or nil if it has none.
func (a *Aggregator) Counts(code string) map[string]int {
	counts, ok := a.tally[code]
	if !ok {
		return nil
	}
	return cloneCounts(counts)
}

func zeroCounts(q models.Question) map[string]int {
	counts := make(map[string]int, len(q.Options))
	for _, opt := range q.Options {
		if label := strings.TrimSpace(opt); label != "" {
			counts[label] = 0
		}
	}
	return counts
}
