package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"wisewallet/internal/domain/record"
	"wisewallet/internal/shared/middleware"
)

// RecordHandler serves the list/create/delete/stats endpoints of one record
// kind. Income and expense each get their own instance.
type RecordHandler struct {
	svc    *record.Service
	logger *slog.Logger
}

func NewRecordHandler(svc *record.Service, logger *slog.Logger) *RecordHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordHandler{svc: svc, logger: logger.With("kind", svc.Kind().Name)}
}

type deleteResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// HandleList returns the caller's records, newest first.
func (h *RecordHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if userID == "" {
		writeMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	records, err := h.svc.List(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, h.logger, h.svc.Kind(), err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// HandleCreate validates the payload and stores it for the caller.
func (h *RecordHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if userID == "" {
		writeMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req record.RawInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logger.DebugContext(r.Context(), "invalid create payload", "error", err)
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.svc.Create(r.Context(), userID, req)
	if err != nil {
		writeDomainError(w, r, h.logger, h.svc.Kind(), err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

// HandleDelete removes one of the caller's records.
func (h *RecordHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if userID == "" {
		writeMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	rec, err := h.svc.Delete(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, h.logger, h.svc.Kind(), err)
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{
		Message: h.svc.Kind().Label + " removed",
		ID:      rec.ID,
	})
}

func (h *RecordHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if userID == "" {
		writeMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	stats, err := h.svc.Stats(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, h.logger, h.svc.Kind(), err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
