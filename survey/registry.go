// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shivakumar4147/surveyly/models"
	"github.com/shivakumar4147/surveyly/store"
)

// Registry caches question metadata by code, with a reverse index from
// backend id to code. It is not safe for concurrent use; Session
// serializes access.
type Registry struct {
	store    QuestionStore
	byCode   map[string]models.Question
	idToCode map[string]string
}

func NewRegistry(st QuestionStore) *Registry {
	return &Registry{
		store:    st,
		byCode:   make(map[string]models.Question),
		idToCode: make(map[string]string),
	}
}

// Put caches q under its code and id.
func (r *Registry) Put(q models.Question) {
	if old, ok := r.byCode[q.Code]; ok && old.ID != q.ID {
		delete(r.idToCode, old.ID)
	}
	r.byCode[q.Code] = q
	if q.ID != "" {
		r.idToCode[q.ID] = q.Code
	}
}

// Lookup reads the cache only.
func (r *Registry) Lookup(code string) (models.Question, bool) {
	q, ok := r.byCode[code]
	return q, ok
}

// Resolve returns the cached question for code, querying the store on a
// miss. Not-found and backend errors both yield false.
func (r *Registry) Resolve(ctx context.Context, code string) (models.Question, bool) {
	if q, ok := r.byCode[code]; ok {
		return q, true
	}

	q, err := r.store.QuestionByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Error("Failed to resolve question", "code", code, "error", err)
		}
		return models.Question{}, false
	}

	r.Put(q)
	return q, true
}

// ReverseLookup maps a backend question id to its code, falling back to a
// point query on a cache miss.
func (r *Registry) ReverseLookup(ctx context.Context, id string) (string, bool) {
	if code, ok := r.idToCode[id]; ok {
		return code, true
	}

	q, err := r.store.QuestionByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Error("Failed to reverse lookup question", "id", id, "error", err)
		}
		return "", false
	}

	r.Put(q)
	return q.Code, true
}

// EnsureSeedSet fetches or creates every seed by code. Existing rows are
// cached as they are, never rewritten. A failing seed is logged and skipped;
// all failures are returned together.
func (r *Registry) EnsureSeedSet(ctx context.Context, seeds []models.QuestionSeed) error {
	var errs []error
	for _, seed := range seeds {
		q, err := r.ensureSeed(ctx, seed)
		if err != nil {
			slog.Error("Failed to ensure seed question", "code", seed.Code, "error", err)
			errs = append(errs, err)
			continue
		}
		r.Put(q)
	}
	return errors.Join(errs...)
}

func (r *Registry) ensureSeed(ctx context.Context, seed models.QuestionSeed) (models.Question, error) {
	existing, err := r.store.QuestionByCode(ctx, seed.Code)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.Question{}, fmt.Errorf("lookup %s: %w", seed.Code, err)
	}

	created, err := r.store.InsertQuestion(ctx, models.Question{
		Code:    seed.Code,
		Text:    seed.Text,
		Type:    seed.Type,
		Options: seed.Options,
		InBank:  true,
	})
	if err != nil {
		// Another process may have inserted the same code in between.
		if again, lookupErr := r.store.QuestionByCode(ctx, seed.Code); lookupErr == nil {
			return again, nil
		}
		return models.Question{}, fmt.Errorf("insert %s: %w", seed.Code, err)
	}

	slog.Info("Seeded question", "code", created.Code, "id", created.ID)
	return created, nil
}

// Questions returns the cached questions oldest first.
func (r *Registry) Questions() []models.Question {
	out := make([]models.Question, 0, len(r.byCode))
	for _, q := range r.byCode {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Code < out[j].Code
	})
	return out
}

func (r *Registry) Len() int {
	return len(r.byCode)
}

// replaceAll swaps the cache for exactly qs.
func (r *Registry) replaceAll(qs []models.Question) {
	r.byCode = make(map[string]models.Question, len(qs))
	r.idToCode = make(map[string]string, len(qs))
	for _, q := range qs {
		r.Put(q)
	}
}
