// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shivakumar4147/surveyly/models"
	"github.com/shivakumar4147/surveyly/realtime"
	"github.com/shivakumar4147/surveyly/store"
)

var errBackend = errors.New("backend unavailable")

// memStore is an in-memory Store with switchable failures. Inserts into
// watched tables are published like the SQL store does.
type memStore struct {
	mu          sync.Mutex
	pub         realtime.Publisher
	seq         int
	clock       time.Time
	questions   []models.Question
	responses   []models.Response
	suggestions []models.Suggestion
	submissions int
	bank        []models.BankQuestion
	versions    []models.Version

	failList             bool
	failQuestionFeedback bool
	failInsert           bool
	failCount            bool
	failAnswers          map[string]bool
	byCodeCalls          int
	byIDCalls            int
}

func newMemStore() *memStore {
	return &memStore{
		clock:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		failAnswers: make(map[string]bool),
	}
}

func (m *memStore) next() (string, time.Time) {
	m.seq++
	m.clock = m.clock.Add(time.Second)
	return fmt.Sprintf("id-%d", m.seq), m.clock
}

func (m *memStore) publish(e realtime.Event) {
	if m.pub != nil {
		m.pub.Publish(context.Background(), e)
	}
}

func (m *memStore) QuestionByCode(_ context.Context, code string) (models.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byCodeCalls++
	for _, q := range m.questions {
		if q.Code == code {
			return q, nil
		}
	}
	return models.Question{}, store.ErrNotFound
}

func (m *memStore) QuestionByID(_ context.Context, id string) (models.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byIDCalls++
	for _, q := range m.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return models.Question{}, store.ErrNotFound
}

func (m *memStore) InsertQuestion(_ context.Context, q models.Question) (models.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failInsert {
		return models.Question{}, errBackend
	}
	for _, existing := range m.questions {
		if existing.Code == q.Code {
			return models.Question{}, errors.New("duplicate code")
		}
	}
	q.ID, q.CreatedAt = m.next()
	m.questions = append(m.questions, q)
	return q, nil
}

func (m *memStore) ListQuestions(context.Context) ([]models.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failList {
		return nil, errBackend
	}
	return append([]models.Question(nil), m.questions...), nil
}

func (m *memStore) AnswersForQuestion(_ context.Context, questionID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAnswers[questionID] {
		return nil, errBackend
	}
	var out []string
	for _, r := range m.responses {
		if r.QuestionID == questionID {
			out = append(out, r.Answer)
		}
	}
	return out, nil
}

func (m *memStore) InsertResponse(_ context.Context, questionID, answer string) (models.Response, error) {
	m.mu.Lock()
	if m.failInsert {
		m.mu.Unlock()
		return models.Response{}, errBackend
	}
	id, at := m.next()
	r := models.Response{ID: id, QuestionID: questionID, Answer: answer, CreatedAt: at}
	m.responses = append(m.responses, r)
	m.mu.Unlock()

	m.publish(realtime.ResponseInserted{Response: r})
	return r, nil
}

func (m *memStore) InsertSuggestion(_ context.Context, sg models.Suggestion) (models.Suggestion, error) {
	m.mu.Lock()
	if m.failInsert {
		m.mu.Unlock()
		return models.Suggestion{}, errBackend
	}
	sg.ID, sg.CreatedAt = m.next()
	if sg.Status == "" {
		sg.Status = models.StatusNone
	}
	m.suggestions = append(m.suggestions, sg)
	m.mu.Unlock()

	m.publish(realtime.SuggestionInserted{Suggestion: sg})
	return sg, nil
}

func (m *memStore) ListSuggestions(context.Context) ([]models.Suggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failList {
		return nil, errBackend
	}
	out := append([]models.Suggestion(nil), m.suggestions...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) SuggestionsForQuestion(_ context.Context, code string) ([]models.Suggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failQuestionFeedback {
		return nil, errBackend
	}
	var out []models.Suggestion
	for i := len(m.suggestions) - 1; i >= 0; i-- {
		sg := m.suggestions[i]
		if sg.QuestionCode != nil && *sg.QuestionCode == code {
			out = append(out, sg)
		}
	}
	return out, nil
}

func (m *memStore) UpdateSuggestionStatus(_ context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.suggestions {
		if m.suggestions[i].ID == id {
			m.suggestions[i].Status = status
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memStore) LogSubmission(context.Context) (models.Submission, error) {
	m.mu.Lock()
	if m.failInsert {
		m.mu.Unlock()
		return models.Submission{}, errBackend
	}
	id, at := m.next()
	m.submissions++
	m.mu.Unlock()

	sub := models.Submission{ID: id, CreatedAt: at}
	m.publish(realtime.SubmissionInserted{Submission: sub})
	return sub, nil
}

func (m *memStore) CountSubmissions(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCount {
		return 0, errBackend
	}
	return m.submissions, nil
}

func (m *memStore) InsertBankQuestion(_ context.Context, bq models.BankQuestion) (models.BankQuestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bq.ID, bq.CreatedAt = m.next()
	m.bank = append(m.bank, bq)
	return bq, nil
}

func (m *memStore) ListBank(context.Context) ([]models.BankQuestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.BankQuestion(nil), m.bank...), nil
}

func (m *memStore) BankQuestionByID(_ context.Context, id string) (models.BankQuestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, bq := range m.bank {
		if bq.ID == id {
			return bq, nil
		}
	}
	return models.BankQuestion{}, store.ErrNotFound
}

func (m *memStore) InsertVersion(_ context.Context, name string, data models.SnapshotData) (models.Version, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, at := m.next()
	v := models.Version{ID: id, Name: name, Data: data, CreatedAt: at}
	m.versions = append(m.versions, v)
	return v, nil
}

func (m *memStore) ListVersions(context.Context) ([]models.Version, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Version, 0, len(m.versions))
	for i := len(m.versions) - 1; i >= 0; i-- {
		v := m.versions[i]
		v.Data = models.SnapshotData{}
		out = append(out, v)
	}
	return out, nil
}

func (m *memStore) VersionByID(_ context.Context, id string) (models.Version, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.versions {
		if v.ID == id {
			return v, nil
		}
	}
	return models.Version{}, store.ErrNotFound
}

func (m *memStore) CountVersions(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.versions), nil
}

// addResponse writes a response row without publishing, as if another
// client had submitted while this process was not listening.
func (m *memStore) addResponse(questionID, answer string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, at := m.next()
	m.responses = append(m.responses, models.Response{ID: id, QuestionID: questionID, Answer: answer, CreatedAt: at})
}

// addSuggestion writes a suggestion row without publishing.
func (m *memStore) addSuggestion(sg models.Suggestion) models.Suggestion {
	m.mu.Lock()
	defer m.mu.Unlock()
	sg.ID, sg.CreatedAt = m.next()
	if sg.Status == "" {
		sg.Status = models.StatusNone
	}
	m.suggestions = append(m.suggestions, sg)
	return sg
}

// failingSubscriber never subscribes.
type failingSubscriber struct{}

func (failingSubscriber) Subscribe(context.Context) (<-chan realtime.Event, error) {
	return nil, errBackend
}

var ageSeed = models.QuestionSeed{
	Code:    "age",
	Text:    "What is your age group?",
	Type:    models.TypeChoice,
	Options: []string{"10-20", "20-40", "40-60", "60+"},
}

// racingStore runs a hook once, right after a store read returns and while
// the caller still holds whatever it held for the read.
type racingStore struct {
	*memStore
	afterList  func()
	afterCount func()
}

func (r *racingStore) ListSuggestions(ctx context.Context) ([]models.Suggestion, error) {
	list, err := r.memStore.ListSuggestions(ctx)
	if hook := r.afterList; hook != nil {
		r.afterList = nil
		hook()
	}
	return list, err
}

func (r *racingStore) CountSubmissions(ctx context.Context) (int, error) {
	n, err := r.memStore.CountSubmissions(ctx)
	if hook := r.afterCount; hook != nil {
		r.afterCount = nil
		hook()
	}
	return n, err
}
