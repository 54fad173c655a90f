// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shivakumar4147/surveyly/models"
)

var ErrUnknownTable = errors.New("unknown change table")

// Event is an insert notification for one watched table.
type Event interface {
	Table() string
}

type ResponseInserted struct {
	Response models.Response
}

type SuggestionInserted struct {
	Suggestion models.Suggestion
}

type SubmissionInserted struct {
	Submission models.Submission
}

func (ResponseInserted) Table() string   { return models.EntityResponses }
func (SuggestionInserted) Table() string { return models.EntitySuggestions }
func (SubmissionInserted) Table() string { return models.EntitySubmissionLog }

// Publisher announces committed inserts.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Subscriber delivers events until ctx is cancelled, then closes the channel.
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan Event, error)
}

type Broker interface {
	Publisher
	Subscriber
}

type envelope struct {
	Table  string          `json:"table"`
	Record json.RawMessage `json:"record"`
}

// Encode serializes e as {"table": ..., "record": ...}.
func Encode(e Event) ([]byte, error) {
	var record any
	switch ev := e.(type) {
	case ResponseInserted:
		record = ev.Response
	case SuggestionInserted:
		record = ev.Suggestion
	case SubmissionInserted:
		record = ev.Submission
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownTable, e)
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s record: %w", e.Table(), err)
	}
	return json.Marshal(envelope{Table: e.Table(), Record: raw})
}

// Decode is the inverse of Encode.
func Decode(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode change envelope: %w", err)
	}

	switch env.Table {
	case models.EntityResponses:
		var r models.Response
		if err := json.Unmarshal(env.Record, &r); err != nil {
			return nil, fmt.Errorf("failed to decode response record: %w", err)
		}
		return ResponseInserted{Response: r}, nil
	case models.EntitySuggestions:
		var s models.Suggestion
		if err := json.Unmarshal(env.Record, &s); err != nil {
			return nil, fmt.Errorf("failed to decode suggestion record: %w", err)
		}
		return SuggestionInserted{Suggestion: s}, nil
	case models.EntitySubmissionLog:
		var s models.Submission
		if err := json.Unmarshal(env.Record, &s); err != nil {
			return nil, fmt.Errorf("failed to decode submission record: %w", err)
		}
		return SubmissionInserted{Submission: s}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, env.Table)
	}
}
