package controllers

import (
	"log/slog"
	"net/http"

	"reservationportal/internal/delivery/http/helpers"
)

// writeServiceError maps err to the response envelope. Unexpected errors are logged and hidden.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status, code, message, ok := helpers.ErrorFor(err)
	if !ok {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	helpers.WriteJSONError(w, status, code, message)
}
