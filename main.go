package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/shivakumar4147/surveyly/cliparse"
	"github.com/shivakumar4147/surveyly/db"
	"github.com/shivakumar4147/surveyly/middleware"
	"github.com/shivakumar4147/surveyly/realtime"
	"github.com/shivakumar4147/surveyly/router"
	"github.com/shivakumar4147/surveyly/store"
	"github.com/shivakumar4147/surveyly/survey"
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
	setupLogging(cfg.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the database
	dbConn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(ctx, dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Postgres shares one change stream across processes; SQLite is
	// single-process, so changes stay in memory.
	var broker realtime.Broker
	if cfg.IsPostgres() {
		broker = realtime.NewPGBroker(dbConn, cfg.DatabaseURL)
	} else {
		broker = realtime.NewLocalBroker(0)
	}

	st := store.New(dbConn, broker)
	session := survey.NewSession(st)
	session.SetAutoVersion(cfg.AutoVersion)
	if err := session.Bootstrap(ctx, survey.DefaultSeeds); err != nil {
		slog.Warn("initial hydration failed; serving partial state", "error", err)
	}
	slog.Info("Survey state loaded",
		"questions", len(session.Questions()),
		"submissions", session.SubmissionCount(),
	)

	syncer := survey.NewSynchronizer(session, broker)
	if err := syncer.Start(ctx); err != nil {
		slog.Warn("running without realtime updates; use POST /api/refresh", "error", err)
	}

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(router.NewRouter(st, session, syncer, cfg)),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "static", cfg.StaticDir)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server closed")
}

// setupLogging uses readable text on a terminal and JSON otherwise.
func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
