// Package config handles loading runtime configuration for the Patient
// Management System API. Configuration values (like the database URL and API
// port) are read from environment variables rather than being hardcoded. This
// follows the "12-factor app" methodology: the same binary runs in dev,
// staging, and production — just swap the environment variables.
package config

import (
	"os"

	// godotenv reads a .env file and loads its key=value pairs into the process
	// environment. Convenient in development: put DATABASE_URL in a .env file
	// and it's automatically available. In production, real env vars are used.
	"github.com/joho/godotenv"
)

// Storage backends the registry can run on. "memory" needs no external
// services and loses all records on restart; "postgres" persists them.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds all runtime configuration values for the application.
type Config struct {
	Port           string // The TCP port the HTTP server will listen on (e.g., "8080")
	DatabaseURL    string // PostgreSQL connection string; required only for the postgres backend
	StorageBackend string // "memory" or "postgres"
	Env            string // The runtime environment: "development", "staging", or "production"
}

// Load reads configuration from environment variables and returns a populated
// Config. It first tries to load a .env file for local development; the error
// from godotenv.Load is intentionally ignored because a missing .env is normal
// in production, where real environment variables are already set.
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		// Default to port 8080 — the standard for HTTP dev servers
		port = "8080"
	}

	env := os.Getenv("ENV")
	if env == "" {
		// Default to "development" so local runs don't accidentally behave like production
		env = "development"
	}

	databaseURL := os.Getenv("DATABASE_URL")

	// STORAGE_BACKEND picks the registry implementation explicitly. When it's
	// unset, infer a sensible default: use postgres if a DATABASE_URL was
	// provided, otherwise fall back to the zero-setup in-memory store.
	storage := os.Getenv("STORAGE_BACKEND")
	if storage == "" {
		if databaseURL != "" {
			storage = StoragePostgres
		} else {
			storage = StorageMemory
		}
	}

	return &Config{
		Port:           port,
		DatabaseURL:    databaseURL,
		StorageBackend: storage,
		Env:            env,
	}
}
