// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/shivakumar4147/surveyly/middleware"
	"github.com/shivakumar4147/surveyly/models"
	"github.com/shivakumar4147/surveyly/survey"
)

type FeedbackHandler struct {
	session *survey.Session
}

func NewFeedbackHandler(session *survey.Session) *FeedbackHandler {
	return &FeedbackHandler{session: session}
}

// ListSuggestions handles GET /api/suggestions
func (h *FeedbackHandler) ListSuggestions(w http.ResponseWriter, r *http.Request) {
	list := h.session.Feedback()
	if list == nil {
		list = []models.Suggestion{}
	}
	middleware.JSONResponse(w, http.StatusOK, list)
}

// QuestionFeedback handles GET /api/questions/{code}/feedback
func (h *FeedbackHandler) QuestionFeedback(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if _, ok := h.session.Resolve(r.Context(), code); !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}

	list := h.session.QuestionFeedback(r.Context(), code)
	if list == nil {
		list = []models.Suggestion{}
	}
	middleware.JSONResponse(w, http.StatusOK, list)
}

// SetStatus handles POST /api/suggestions/{id}/status
func (h *FeedbackHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req models.SetStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.session.SetSuggestionStatus(r.Context(), id, req.Status); err != nil {
		writeSessionError(w, err, "Failed to update suggestion")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"id": id, "status": req.Status})
}
