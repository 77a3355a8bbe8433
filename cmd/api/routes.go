package main

import (
	"log/slog"
	"net/http"

	httphandlers "wisewallet/internal/interfaces/http"
	"wisewallet/internal/shared/config"
	"wisewallet/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health checks
	mux.HandleFunc("GET /api/health", deps.HealthHandler.HandleHealth)
	mux.HandleFunc("GET /api/ready", deps.HealthHandler.HandleReady)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT)

	registerRecordRoutes(mux, "/api/income", deps.IncomeHandler, authMiddleware)
	registerRecordRoutes(mux, "/api/expense", deps.ExpenseHandler, authMiddleware)
	mux.Handle("GET /api/summary", authMiddleware(http.HandlerFunc(deps.SummaryHandler.HandleOverview)))

	// Apply global middleware
	handler := middleware.CORS(cfg.Server.CORSOrigins)(mux)
	handler = middleware.Logging(logger)(handler)
	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(cfg.Telemetry.ServiceName)(handler)
	}
	handler = middleware.Recover(logger)(handler)

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(handler)
		logger.Info("TLS security middleware enabled (HSTS)")
	}

	return handler
}

func registerRecordRoutes(mux *http.ServeMux, base string, h *httphandlers.RecordHandler, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("GET "+base, authMiddleware(http.HandlerFunc(h.HandleList)))
	mux.Handle("POST "+base, authMiddleware(http.HandlerFunc(h.HandleCreate)))
	mux.Handle("GET "+base+"/stats", authMiddleware(http.HandlerFunc(h.HandleStats)))
	mux.Handle("DELETE "+base+"/{id}", authMiddleware(http.HandlerFunc(h.HandleDelete)))
}
