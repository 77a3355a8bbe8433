package http

import (
	"log/slog"
	"net/http"

	"wisewallet/internal/domain/summary"
	"wisewallet/internal/shared/middleware"
)

type SummaryHandler struct {
	svc    *summary.Service
	logger *slog.Logger
}

func NewSummaryHandler(svc *summary.Service, logger *slog.Logger) *SummaryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryHandler{svc: svc, logger: logger}
}

// HandleOverview returns the caller's dashboard overview.
func (h *SummaryHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if userID == "" {
		writeMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	overview, err := h.svc.Overview(r.Context(), userID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to build overview", "user", userID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, overview)
}
