// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/shivakumar4147/surveyly/cliparse"
	"github.com/shivakumar4147/surveyly/middleware"
	"github.com/shivakumar4147/surveyly/models"
)

// ConfigHandler serves public client configuration and static assets.
type ConfigHandler struct {
	cfg   cliparse.Config
	files http.Handler
}

func NewConfigHandler(cfg cliparse.Config) *ConfigHandler {
	return &ConfigHandler{
		cfg:   cfg,
		files: http.FileServer(http.Dir(cfg.StaticDir)),
	}
}

// Env handles GET /env.json. Only public values are exposed.
func (h *ConfigHandler) Env(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.PublicConfig{
		SupabaseURL:     h.cfg.SupabaseURL,
		SupabaseAnonKey: h.cfg.SupabaseAnonKey,
	})
}

// Static handles every other GET. Paths that do not name a file get
// index.html so client-side routes still load.
func (h *ConfigHandler) Static(w http.ResponseWriter, r *http.Request) {
	clean := path.Clean("/" + r.URL.Path)
	if strings.Contains(clean, "/.") {
		http.NotFound(w, r)
		return
	}

	name := filepath.Join(h.cfg.StaticDir, filepath.FromSlash(clean))
	info, err := os.Stat(name)
	if err == nil && info.IsDir() {
		_, err = os.Stat(filepath.Join(name, "index.html"))
	}
	if errors.Is(err, fs.ErrNotExist) {
		index := filepath.Join(h.cfg.StaticDir, "index.html")
		if _, err := os.Stat(index); err != nil {
			http.NotFound(w, r)
			return
		}
		middleware.NoCache(w)
		http.ServeFile(w, r, index)
		return
	}

	h.files.ServeHTTP(w, r)
}
