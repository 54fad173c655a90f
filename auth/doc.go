// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the admin gateway password check and question code
generation.

# Admin Password

The admin delete endpoint is guarded by a single shared secret read from the
ADMIN_PASSWORD environment variable:

	err := auth.ValidateAdminPassword(req.AdminPassword, cfg.AdminPassword)

The result is nil on a match, ErrInvalidAdminPassword on a mismatch, and
ErrAdminNotConfigured when no secret is set. The comparison runs in constant
time over SHA-256 digests. There is no rate limiting, lockout or stored hash;
the gateway only blocks casual deletion.

# Question Codes

User-authored questions get a stable code when they are created:

	code := auth.NewQuestionCode() // "custom_" + 12 hex characters

Codes are derived from a random UUID and never change once stored.
*/
package auth
