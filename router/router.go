// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/shivakumar4147/surveyly/cliparse"
	"github.com/shivakumar4147/surveyly/handlers"
	"github.com/shivakumar4147/surveyly/middleware"
	"github.com/shivakumar4147/surveyly/store"
	"github.com/shivakumar4147/surveyly/survey"
)

func NewRouter(st *store.Store, session *survey.Session, syncer *survey.Synchronizer, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	surveyHandler := handlers.NewSurveyHandler(session)
	feedbackHandler := handlers.NewFeedbackHandler(session)
	archiveHandler := handlers.NewArchiveHandler(session)
	adminHandler := handlers.NewAdminHandler(st, session, cfg)
	configHandler := handlers.NewConfigHandler(cfg)
	realtimeHandler := handlers.NewRealtimeHandler(session, syncer)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := st.DB().PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("store unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Public client config and admin gateway
	mux.HandleFunc("GET /env.json", configHandler.Env)
	mux.HandleFunc("POST /admin/delete", middleware.WithLogging(adminHandler.Delete))

	// Survey form and results
	mux.HandleFunc("GET /api/questions", middleware.WithLogging(surveyHandler.ListQuestions))
	mux.HandleFunc("POST /api/questions", middleware.WithLogging(surveyHandler.AddQuestion))
	mux.HandleFunc("GET /api/results/{code}", middleware.WithLogging(surveyHandler.GetResults))
	mux.HandleFunc("POST /api/refresh", middleware.WithLogging(surveyHandler.Refresh))
	mux.HandleFunc("POST /api/submissions", middleware.WithLogging(surveyHandler.Submit))
	mux.HandleFunc("GET /api/stats", middleware.WithLogging(surveyHandler.GetStats))

	// Feedback and moderation
	mux.HandleFunc("GET /api/suggestions", middleware.WithLogging(feedbackHandler.ListSuggestions))
	mux.HandleFunc("GET /api/questions/{code}/feedback", middleware.WithLogging(feedbackHandler.QuestionFeedback))
	mux.HandleFunc("POST /api/suggestions/{id}/status", middleware.WithLogging(feedbackHandler.SetStatus))

	// Question bank and version history
	mux.HandleFunc("GET /api/bank", middleware.WithLogging(archiveHandler.ListBank))
	mux.HandleFunc("POST /api/bank", middleware.WithLogging(archiveHandler.SaveToBank))
	mux.HandleFunc("POST /api/bank/{id}/use", middleware.WithLogging(archiveHandler.UseBankQuestion))
	mux.HandleFunc("GET /api/versions", middleware.WithLogging(archiveHandler.ListVersions))
	mux.HandleFunc("POST /api/versions", middleware.WithLogging(archiveHandler.SaveVersion))
	mux.HandleFunc("GET /api/versions/{id}", middleware.WithLogging(archiveHandler.GetVersion))

	// Live updates
	mux.HandleFunc("GET /api/realtime", middleware.WithLogging(realtimeHandler.Connect))

	// Static assets with index fallback
	mux.HandleFunc("GET /", configHandler.Static)

	return mux
}
