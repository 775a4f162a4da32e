package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/Harshitk-cp/cogspace/internal/api/handlers"
	mw "github.com/Harshitk-cp/cogspace/internal/api/middleware"
	"github.com/Harshitk-cp/cogspace/internal/buildconfig"
	"github.com/Harshitk-cp/cogspace/internal/config"
	"github.com/Harshitk-cp/cogspace/internal/domain"
	"github.com/Harshitk-cp/cogspace/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the router and the counters reported on /metrics.
type App struct {
	Router        *chi.Mux
	Space         domain.AtomSpace
	startTime     time.Time
	requestCount  atomic.Int64
	errorCount    atomic.Int64
	mutationCount atomic.Int64
}

// Options carries the settings NewApp otherwise reads from config.
// A zero RateLimitRPS disables rate limiting.
type Options struct {
	APIKey         string
	MaxOutgoing    int
	RateLimitRPS   float64
	RateLimitBurst int
}

func optionsFromConfig() Options {
	return Options{
		APIKey:         config.APIKey(),
		MaxOutgoing:    config.MaxOutgoing(),
		RateLimitRPS:   config.RateLimitRPS(),
		RateLimitBurst: config.RateLimitBurst(),
	}
}

func NewApp(space domain.AtomSpace, logger *zap.Logger) *App {
	return NewAppWithOptions(space, logger, optionsFromConfig())
}

func NewAppWithOptions(space domain.AtomSpace, logger *zap.Logger, opts Options) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Services
	atomSvc := service.NewAtomSpaceService(space, opts.MaxOutgoing, logger)

	// Handlers
	atomHandler := handlers.NewAtomHandler(atomSvc)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		Space:     space,
		startTime: time.Now(),
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount, &app.mutationCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	if opts.RateLimitRPS > 0 {
		r.Use(mw.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))
	}

	// Unauthenticated
	r.Get("/health", app.healthHandler())
	r.Get("/metrics", app.metricsHandler())
	r.Get("/version", versionHandler)

	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(opts.APIKey))

		r.Get("/types", atomHandler.ListTypes)
		r.Get("/stats", atomHandler.Stats)

		r.Route("/atoms", func(r chi.Router) {
			r.Get("/", atomHandler.ListAtoms)
			r.Delete("/", atomHandler.Clear)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", atomHandler.GetAtom)
				r.Delete("/", atomHandler.DeleteAtom)
				r.Get("/incoming", atomHandler.GetIncoming)
			})
		})

		r.Route("/nodes", func(r chi.Router) {
			r.Get("/", atomHandler.ListNodes)
			r.Post("/", atomHandler.CreateNode)
			r.Get("/lookup", atomHandler.LookupNode)
		})

		r.Route("/links", func(r chi.Router) {
			r.Get("/", atomHandler.ListLinks)
			r.Post("/", atomHandler.CreateLink)
		})
	})

	return app
}

func (app *App) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "ok",
			"atoms":  app.Space.Size(),
		})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)
		stats := app.Space.Stats()

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"mutation_count": app.mutationCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"atomspace": map[string]any{
				"atoms": stats.Atoms,
				"nodes": stats.Nodes,
				"links": stats.Links,
			},
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func versionHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(buildconfig.VersionInfo())
}
