package cliparse

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseType    string
	StaticDir       string
	AdminPassword   string
	SupabaseURL     string
	SupabaseAnonKey string
	AutoVersion     bool
	Verbose         bool
}

// ParseFlags loads .env (if present), parses flags, and falls back to env vars
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	// Missing .env is fine; real env vars always win over the file
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	fs := flag.NewFlagSet("surveyly", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres or pgx)")
	fs.StringVar(&cfg.StaticDir, "s", "", "Directory of static assets")
	fs.BoolVar(&cfg.Verbose, "v", false, "Debug logging")
	fs.BoolVar(&cfg.AutoVersion, "auto-version", true, "Save versions automatically after submissions")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Admin password for deletes (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8081
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	switch cfg.DatabaseType {
	case "sqlite", "postgres", "pgx":
	default:
		return Config{}, errors.New("DATABASE_TYPE must be sqlite, postgres or pgx")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != "sqlite" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "file:surveyly.db"
	}

	if cfg.StaticDir == "" {
		cfg.StaticDir = os.Getenv("STATIC_DIR")
		if cfg.StaticDir == "" {
			cfg.StaticDir = "."
		}
	}

	if cfg.AdminPassword == "" {
		cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	}

	autoVersionSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "auto-version" {
			autoVersionSet = true
		}
	})
	if v := os.Getenv("AUTO_VERSION"); v != "" && !autoVersionSet {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, errors.New("invalid AUTO_VERSION env variable")
		}
		cfg.AutoVersion = on
	}

	cfg.SupabaseURL = os.Getenv("SUPABASE_URL")
	cfg.SupabaseAnonKey = os.Getenv("SUPABASE_ANON_KEY")

	if !cfg.Verbose {
		cfg.Verbose = strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug")
	}

	return cfg, nil
}

// IsPostgres reports whether the configured database speaks the Postgres protocol
func (c Config) IsPostgres() bool {
	return c.DatabaseType == "postgres" || c.DatabaseType == "pgx"
}
