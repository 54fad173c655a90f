// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/shivakumar4147/surveyly/models"
	"github.com/shivakumar4147/surveyly/realtime"
)

// State is the synchronizer's subscription state.
type State int32

const (
	Unsubscribed State = iota
	Subscribing
	Active
)

func (s State) String() string {
	switch s {
	case Unsubscribed:
		return "unsubscribed"
	case Subscribing:
		return "subscribing"
	case Active:
		return "active"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Update kinds pushed to viewers
const (
	UpdateResults    = "results"
	UpdateCounter    = "counter"
	UpdateSuggestion = "suggestion"
	UpdateFeedback   = "feedback"
)

// Update is one refresh pushed to a viewer.
type Update struct {
	Kind       string              `json:"type"`
	Question   string              `json:"question,omitempty"`
	Results    *models.ResultView  `json:"results,omitempty"`
	Count      int                 `json:"count,omitempty"`
	Label      string              `json:"label,omitempty"`
	Suggestion *models.Suggestion  `json:"suggestion,omitempty"`
	Feedback   []models.Suggestion `json:"feedback,omitempty"`
}

const viewerBuffer = 16

// Viewer is one connected client. It receives results for the question it
// is showing, feedback for the panel it has open, and every counter and
// suggestion update.
type Viewer struct {
	mu       sync.Mutex
	question string
	panel    string
	updates  chan Update
}

// Show sets the question on screen; "" clears it.
func (v *Viewer) Show(code string) {
	v.mu.Lock()
	v.question = code
	v.mu.Unlock()
}

// OpenFeedback sets the question whose feedback panel is open; "" closes it.
func (v *Viewer) OpenFeedback(code string) {
	v.mu.Lock()
	v.panel = code
	v.mu.Unlock()
}

func (v *Viewer) Showing() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.question
}

func (v *Viewer) feedbackOpen(code string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.panel == code || v.question == code
}

// Updates is closed when the viewer is detached.
func (v *Viewer) Updates() <-chan Update {
	return v.updates
}

// Synchronizer consumes insert events and applies them to a Session, then
// tells interested viewers. It subscribes once; a failed subscription
// leaves the session served from its last hydration.
type Synchronizer struct {
	session *Session
	sub     realtime.Subscriber
	state   atomic.Int32
	started atomic.Bool
	done    chan struct{}

	mu      sync.Mutex
	viewers map[*Viewer]struct{}
}

func NewSynchronizer(session *Session, sub realtime.Subscriber) *Synchronizer {
	return &Synchronizer{
		session: session,
		sub:     sub,
		done:    make(chan struct{}),
		viewers: make(map[*Viewer]struct{}),
	}
}

func (s *Synchronizer) State() State {
	return State(s.state.Load())
}

// Start makes a single subscribe attempt. On success events are handled in
// the background until ctx is cancelled or the stream ends.
func (s *Synchronizer) Start(ctx context.Context) error {
	if s.started.Load() || !s.state.CompareAndSwap(int32(Unsubscribed), int32(Subscribing)) {
		return ErrAlreadyStarted
	}

	events, err := s.sub.Subscribe(ctx)
	if err != nil {
		s.state.Store(int32(Unsubscribed))
		slog.Error("Realtime subscription failed; serving last hydrated state", "error", err)
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	s.started.Store(true)
	s.state.Store(int32(Active))
	slog.Info("Realtime subscription active")
	go s.run(ctx, events)
	return nil
}

// Done is closed once the event loop started by Start exits.
func (s *Synchronizer) Done() <-chan struct{} {
	return s.done
}

func (s *Synchronizer) run(ctx context.Context, events <-chan realtime.Event) {
	defer close(s.done)
	defer s.state.Store(int32(Unsubscribed))

	for ev := range events {
		s.Handle(ctx, ev)
	}
	slog.Info("Realtime subscription ended")
}

// Handle applies one event. Unresolvable events are dropped.
func (s *Synchronizer) Handle(ctx context.Context, ev realtime.Event) {
	switch e := ev.(type) {
	case realtime.ResponseInserted:
		view, ok := s.session.applyResponse(ctx, e.Response)
		if !ok {
			return
		}
		code := view.Question.Code
		s.broadcast(func(v *Viewer) bool { return v.Showing() == code }, Update{
			Kind:     UpdateResults,
			Question: code,
			Results:  &view,
		})

	case realtime.SubmissionInserted:
		n, err := s.session.RefreshSubmissionCount(ctx)
		if err != nil {
			return
		}
		s.broadcast(nil, Update{Kind: UpdateCounter, Count: n, Label: CounterLabel(n)})

	case realtime.SuggestionInserted:
		sg := e.Suggestion
		if !s.session.prependFeedback(sg) {
			return
		}
		s.broadcast(nil, Update{Kind: UpdateSuggestion, Suggestion: &sg})

		if sg.QuestionCode == nil {
			return
		}
		code := *sg.QuestionCode
		list := s.session.QuestionFeedback(ctx, code)
		s.broadcast(func(v *Viewer) bool { return v.feedbackOpen(code) }, Update{
			Kind:     UpdateFeedback,
			Question: code,
			Feedback: list,
		})

	default:
		slog.Debug("Ignoring realtime event", "table", ev.Table())
	}
}

// Attach registers a new viewer.
func (s *Synchronizer) Attach() *Viewer {
	v := &Viewer{updates: make(chan Update, viewerBuffer)}

	s.mu.Lock()
	s.viewers[v] = struct{}{}
	s.mu.Unlock()
	return v
}

// Detach unregisters v and closes its update channel.
func (s *Synchronizer) Detach(v *Viewer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.viewers[v]; !ok {
		return
	}
	delete(s.viewers, v)
	close(v.updates)
}

func (s *Synchronizer) Viewers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.viewers)
}

// broadcast sends u to every viewer accepted by match (all when nil).
// Viewers with a full buffer miss the update.
func (s *Synchronizer) broadcast(match func(*Viewer) bool, u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for v := range s.viewers {
		if match != nil && !match(v) {
			continue
		}
		select {
		case v.updates <- u:
		default:
			slog.Warn("Viewer too slow, dropping update", "type", u.Kind)
		}
	}
}
