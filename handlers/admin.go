// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shivakumar4147/surveyly/auth"
	"github.com/shivakumar4147/surveyly/cliparse"
	"github.com/shivakumar4147/surveyly/middleware"
	"github.com/shivakumar4147/surveyly/models"
	"github.com/shivakumar4147/surveyly/store"
)

// Deleter removes one row from an allow-listed table.
type Deleter interface {
	Delete(ctx context.Context, entity, id string) error
}

// Refresher rebuilds cached state after rows disappear.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type AdminHandler struct {
	store     Deleter
	refresher Refresher
	cfg       cliparse.Config
}

// NewAdminHandler returns the admin gateway; refresher may be nil.
func NewAdminHandler(st Deleter, refresher Refresher, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{store: st, refresher: refresher, cfg: cfg}
}

// Delete handles POST /admin/delete. Responses are {"success":true} or
// {"error":"..."}.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.cfg.AdminPassword == "" {
		adminError(w, http.StatusInternalServerError, "Admin client not configured")
		return
	}

	var req models.AdminDeleteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		adminError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.EntityType == "" || req.ID == "" {
		adminError(w, http.StatusBadRequest, "Missing entity_type or id")
		return
	}

	if err := auth.ValidateAdminPassword(req.AdminPassword, h.cfg.AdminPassword); err != nil {
		slog.Warn("admin delete rejected", "entity_type", req.EntityType, "remote", middleware.GetClientIP(r))
		adminError(w, http.StatusForbidden, "Invalid admin password")
		return
	}

	if !models.IsEntity(req.EntityType) {
		adminError(w, http.StatusBadRequest, "Invalid entity_type")
		return
	}

	err := h.store.Delete(r.Context(), req.EntityType, req.ID)
	if errors.Is(err, store.ErrNotFound) {
		adminError(w, http.StatusNotFound, "Record not found")
		return
	}
	if err != nil {
		slog.Error("admin delete failed", "entity_type", req.EntityType, "id", req.ID, "error", err)
		adminError(w, http.StatusInternalServerError, err.Error())
		return
	}

	slog.Info("admin delete", "entity_type", req.EntityType, "id", req.ID)

	// Inserts arrive through realtime; deletions only show up on a rebuild.
	if h.refresher != nil {
		if err := h.refresher.Refresh(r.Context()); err != nil {
			slog.Warn("refresh after delete failed", "error", err)
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdminDeleteResponse{Success: true})
}

func adminError(w http.ResponseWriter, status int, msg string) {
	middleware.JSONResponse(w, status, models.AdminDeleteResponse{Error: msg})
}
