// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SubmitRequest: answers (code -> value), suggestion
  - AddQuestionRequest: text, type, options, destination, add_to_bank
  - SetStatusRequest: status
  - SaveVersionRequest: name
  - AdminDeleteRequest: entity_type, id, admin_password

# Response Types

Types for JSON responses:

  - SubmitResponse: responses, suggestions
  - AddQuestionResponse: question, bank_question
  - StatsResponse: count, label
  - AdminDeleteResponse: success or error
  - PublicConfig: SUPABASE_URL, SUPABASE_ANON_KEY
  - ResultView: question, counts, total, step, feedback
  - ErrorResponse: error, message

# Domain Types

  - Question: survey question (code is the stable key)
  - Response: one answer row for a choice question
  - Suggestion: free-text feedback, optionally tied to a question
  - Submission: one completed form
  - BankQuestion: reusable question template
  - Version: named snapshot of the aggregation state

# Constants

Question types:

	TypeChoice = "radio"
	TypeText   = "text"

Suggestion status:

	StatusNone     = "none"
	StatusFlagged  = "red"
	StatusApproved = "green"

Admin-deletable entities are listed in Entities.
*/
package models
