package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"wisewallet/internal/domain/record"
)

const maxBodyBytes = 1 << 20

type messageResponse struct {
	Message string `json:"message"`
}

type validationResponse struct {
	Errors record.ValidationErrors `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// writeDomainError maps service errors to responses. Unknown errors are
// logged and reported as a generic 500 so storage details never leak.
func writeDomainError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, kind record.Kind, err error) {
	var verrs record.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, validationResponse{Errors: verrs})
	case errors.Is(err, record.ErrNotFound):
		writeMessage(w, http.StatusNotFound, kind.Label+" not found")
	case errors.Is(err, record.ErrForbidden):
		// Kept as 401 for existing clients.
		writeMessage(w, http.StatusUnauthorized, "Not authorized")
	case errors.Is(err, record.ErrUnauthenticated):
		writeMessage(w, http.StatusUnauthorized, "Authentication required")
	default:
		logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
	}
}
