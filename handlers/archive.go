// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/shivakumar4147/surveyly/middleware"
	"github.com/shivakumar4147/surveyly/models"
	"github.com/shivakumar4147/surveyly/survey"
)

// ArchiveHandler serves the question bank and version history.
type ArchiveHandler struct {
	session *survey.Session
}

func NewArchiveHandler(session *survey.Session) *ArchiveHandler {
	return &ArchiveHandler{session: session}
}

// ListBank handles GET /api/bank
func (h *ArchiveHandler) ListBank(w http.ResponseWriter, r *http.Request) {
	bank, err := h.session.Bank(r.Context())
	if err != nil {
		writeSessionError(w, err, "Failed to load question bank")
		return
	}
	if bank == nil {
		bank = []models.BankQuestion{}
	}
	middleware.JSONResponse(w, http.StatusOK, bank)
}

// SaveToBank handles POST /api/bank
func (h *ArchiveHandler) SaveToBank(w http.ResponseWriter, r *http.Request) {
	var req models.SaveToBankRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}

	bq, err := h.session.SaveToBank(r.Context(), req.Code)
	if err != nil {
		writeSessionError(w, err, "Failed to save to bank")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, bq)
}

// UseBankQuestion handles POST /api/bank/{id}/use
func (h *ArchiveHandler) UseBankQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := h.session.UseBankQuestion(r.Context(), r.PathValue("id"))
	if err != nil {
		writeSessionError(w, err, "Failed to add bank question")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, q)
}

// ListVersions handles GET /api/versions
func (h *ArchiveHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := h.session.Versions(r.Context())
	if err != nil {
		writeSessionError(w, err, "Failed to load versions")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, versions)
}

// SaveVersion handles POST /api/versions. An empty body saves with a
// generated name.
func (h *ArchiveHandler) SaveVersion(w http.ResponseWriter, r *http.Request) {
	var req models.SaveVersionRequest
	if r.ContentLength != 0 {
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
	}

	v, err := h.session.SaveVersion(r.Context(), req.Name)
	if err != nil {
		writeSessionError(w, err, "Failed to save version")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, v)
}

// GetVersion handles GET /api/versions/{id}
func (h *ArchiveHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	v, err := h.session.Version(r.Context(), r.PathValue("id"))
	if err != nil {
		writeSessionError(w, err, "Failed to load version")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, v)
}
