// cmd/server/main.go
// This is the entry point for the Patient Management System API server.
// The "cmd/server" directory follows a common Go convention: the cmd/ folder
// holds executable binaries, and internal/ holds reusable packages that are
// not meant to be imported by other projects.
//
// Startup order: load config → build the logger → pick a storage backend
// (in-memory or Postgres + migrations) → register routes → listen.
package main

import (
	"log"

	// fiber is a fast HTTP web framework inspired by Express.js
	"github.com/gofiber/fiber/v2"
	// cors handles Cross-Origin Resource Sharing — allows browser frontends on
	// other origins to talk to the API. Wide open here; lock it down in production.
	"github.com/gofiber/fiber/v2/middleware/cors"
	// logger prints request details (method, path, status, duration) to stdout
	"github.com/gofiber/fiber/v2/middleware/logger"
	// zap is the structured application logger — request logging is handled by
	// the fiber middleware above; zap covers everything else (startup, storage
	// failures) with leveled, structured output.
	"go.uber.org/zap"

	// Internal packages — our own code, imported by module path
	"github.com/Utkarshnirmal11/Patient-Management-System-API/internal/config"
	"github.com/Utkarshnirmal11/Patient-Management-System-API/internal/database"
	"github.com/Utkarshnirmal11/Patient-Management-System-API/internal/handlers"
	"github.com/Utkarshnirmal11/Patient-Management-System-API/internal/registry"
)

func main() {
	// Load configuration from environment variables (and optionally a .env file).
	cfg := config.Load()

	// Build the zap logger. Development mode gives human-readable console
	// output; production mode gives JSON lines for log aggregators.
	zlog, err := buildLogger(cfg.Env)
	if err != nil {
		// zap isn't available yet, so this one failure path uses the stdlib logger.
		log.Fatal("failed to build logger: ", err)
	}
	defer zlog.Sync() //nolint:errcheck // best-effort flush on shutdown

	// Pick the registry implementation. The registry is constructed HERE, once,
	// and injected into every handler — it is the sole owner of the patient
	// collection, never ambient global state.
	reg, err := buildRegistry(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to initialise storage", zap.Error(err))
	}

	// Create a new Fiber app (our HTTP server).
	app := fiber.New(fiber.Config{
		AppName: "Patient Management System API",
	})

	// --- Global middleware ---
	// These run on every request before any route handler.
	app.Use(logger.New())
	app.Use(cors.New())

	// --- Informational routes ---
	app.Get("/", handlers.Root)
	app.Get("/about", handlers.About)
	app.Get("/health", handlers.HealthCheck)

	// --- Patient routes ---
	// POST   /patients      — create a record; responds 201 with computed bmi/verdict
	// GET    /patients      — list all records (optional ?sort_by=height|weight|bmi&order=asc|desc)
	// GET    /patients/:id  — fetch one record
	// PUT    /patients/:id  — partial update (merge provided fields, re-validate)
	// PATCH  /patients/:id  — same as PUT
	// DELETE /patients/:id  — remove a record
	app.Post("/patients", handlers.CreatePatient(reg, zlog))
	app.Get("/patients", handlers.GetPatients(reg, zlog))
	app.Get("/patients/:id", handlers.GetPatient(reg))
	app.Put("/patients/:id", handlers.UpdatePatient(reg, zlog))
	app.Patch("/patients/:id", handlers.UpdatePatient(reg, zlog))
	app.Delete("/patients/:id", handlers.DeletePatient(reg, zlog))

	// Start listening for HTTP connections on the configured port.
	// ":" + cfg.Port produces a string like ":8080" — listen on all interfaces.
	zlog.Info("starting server",
		zap.String("port", cfg.Port),
		zap.String("storage", cfg.StorageBackend),
		zap.String("env", cfg.Env),
	)
	zlog.Fatal("server stopped", zap.Error(app.Listen(":"+cfg.Port)))
}

// buildLogger constructs the zap logger appropriate for the environment.
func buildLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// buildRegistry constructs the configured storage backend.
//   - "memory":   zero-setup, records live only as long as the process
//   - "postgres": connects via GORM and runs pending SQL migrations so the
//     schema is always in sync when the server starts
func buildRegistry(cfg *config.Config, zlog *zap.Logger) (registry.Registry, error) {
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, err
		}
		return registry.NewPostgres(db), nil
	default:
		zlog.Warn("using in-memory storage; records are lost on restart")
		return registry.NewMemory(), nil
	}
}
