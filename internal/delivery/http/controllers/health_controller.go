package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"reservationportal/internal/delivery/http/helpers"
)

// Pinger reports whether a backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// HealthController serves the liveness probe.
type HealthController struct {
	Logger *slog.Logger
	DB     Pinger
}

func NewHealthController(logger *slog.Logger, db Pinger) *HealthController {
	return &HealthController{Logger: logger, DB: db}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status is ok"
// @Failure 503 {object} helpers.APIResponse "error.code: internal_error"
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if c.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := c.DB.PingContext(ctx); err != nil {
			c.Logger.ErrorContext(r.Context(), "health check failed", "err", err)
			helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeInternalError, "database unavailable")
			return
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, HealthResponse{Status: "ok"})
}
