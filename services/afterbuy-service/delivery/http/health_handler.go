package http

import (
	"context"
	"net/http"
	"time"

	"github.com/ahhussein/afterbuy-sdk/pkg/api"
	"github.com/ahhussein/afterbuy-sdk/pkg/logger"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is a dependency whose reachability is reported by the health check
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles HTTP requests for health check operations
type HealthHandler struct {
	// Checks maps a dependency name to the client used to reach it
	Checks map[string]Pinger
	// Logger is used for logging operations within the handler
	Logger logger.LoggerInterface
	// API provides standardized API response patterns
	API api.Api
}

// NewHealthHandler creates a new instance of HealthHandler
func NewHealthHandler(checks map[string]Pinger, appLogger logger.LoggerInterface) *HealthHandler {
	return &HealthHandler{
		Checks: checks,
		Logger: appLogger,
		API:    api.New(),
	}
}

// HealthCheckHandler pings every dependency
// Returns a 200 status code when all are reachable, 503 otherwise
func (h *HealthHandler) HealthCheckHandler(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string, len(h.Checks))
	var failed []api.ErrorDetail
	for name, pinger := range h.Checks {
		if err := pinger.Ping(ctx); err != nil {
			h.Logger.WarnContext(ctx, "Health check failed", "dependency", name, "error", err)
			checks[name] = "unreachable"
			failed = append(failed, api.ErrorDetail{Field: name, Message: err.Error()})
			continue
		}
		checks[name] = "ok"
	}

	if len(failed) > 0 {
		h.API.Error(ctx, w, http.StatusServiceUnavailable, &api.Error{
			Code:    api.CodeServiceUnavailable,
			Message: "Service is degraded",
			Details: failed,
		})
		return
	}

	h.API.Success(ctx, w, map[string]any{
		"status":       "healthy",
		"message":      "Service is running",
		"dependencies": checks,
	})
}
