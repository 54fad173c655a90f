// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import "errors"

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation      = errors.New("validation failed")
	ErrUnknownQuestion = errors.New("unknown question")
	ErrAlreadyInBank   = errors.New("question is already in the bank")
	ErrAlreadyStarted  = errors.New("synchronizer already started")
)

// ValidationError is a user-facing rejection raised before any write.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}
