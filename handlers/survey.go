// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/shivakumar4147/surveyly/middleware"
	"github.com/shivakumar4147/surveyly/models"
	"github.com/shivakumar4147/surveyly/store"
	"github.com/shivakumar4147/surveyly/survey"
)

type SurveyHandler struct {
	session *survey.Session
}

func NewSurveyHandler(session *survey.Session) *SurveyHandler {
	return &SurveyHandler{session: session}
}

// ListQuestions handles GET /api/questions
func (h *SurveyHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.session.Questions())
}

// AddQuestion handles POST /api/questions
func (h *SurveyHandler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	var req models.AddQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := h.session.AddQuestion(r.Context(), req)
	if err != nil {
		writeSessionError(w, err, "Failed to add question")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// GetResults handles GET /api/results/{code}
func (h *SurveyHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}

	view, err := h.session.Results(r.Context(), code)
	if err != nil {
		writeSessionError(w, err, "Failed to load results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

// Refresh handles POST /api/refresh
func (h *SurveyHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Refresh(r.Context()); err != nil {
		slog.Error("manual refresh failed", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Failed to refresh from store")
		return
	}

	n := h.session.SubmissionCount()
	middleware.JSONResponse(w, http.StatusOK, models.StatsResponse{
		Count: n,
		Label: survey.CounterLabel(n),
	})
}

// Submit handles POST /api/submissions
func (h *SurveyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Answers) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Please answer at least one question.")
		return
	}

	resp, err := h.session.Submit(r.Context(), req)
	if err != nil {
		writeSessionError(w, err, "Failed to submit form")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// GetStats handles GET /api/stats
func (h *SurveyHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	n := h.session.SubmissionCount()
	middleware.JSONResponse(w, http.StatusOK, models.StatsResponse{
		Count: n,
		Label: survey.CounterLabel(n),
	})
}

// writeSessionError maps session errors to status codes. Anything
// unrecognised is logged and reported as a 500 with fallback.
func writeSessionError(w http.ResponseWriter, err error, fallback string) {
	var verr *survey.ValidationError
	switch {
	case errors.As(err, &verr):
		middleware.ErrorResponse(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, survey.ErrUnknownQuestion):
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
	case errors.Is(err, survey.ErrAlreadyInBank):
		middleware.ErrorResponse(w, http.StatusConflict, "This question is already in the bank.")
	default:
		slog.Error(fallback, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, fallback)
	}
}
