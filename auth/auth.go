// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// CustomCodePrefix marks questions authored through the add-question flow.
const CustomCodePrefix = "custom_"

var (
	ErrAdminNotConfigured   = errors.New("admin password not configured")
	ErrInvalidAdminPassword = errors.New("invalid admin password")
)

// ValidateAdminPassword compares the submitted password with the configured
// secret. An empty secret disables the admin gateway entirely.
func ValidateAdminPassword(provided, configured string) error {
	if configured == "" {
		return ErrAdminNotConfigured
	}
	// Digests have a fixed length, so the comparison time does not leak the
	// secret's length.
	got := sha256.Sum256([]byte(provided))
	want := sha256.Sum256([]byte(configured))
	if !hmac.Equal(got[:], want[:]) {
		return ErrInvalidAdminPassword
	}
	return nil
}

// NewQuestionCode returns a fresh code for a user-authored question
func NewQuestionCode() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return CustomCodePrefix + id[:12]
}
