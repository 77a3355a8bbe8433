package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseWriter_WriteHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	wrapped := wrapResponseWriter(rr)

	wrapped.WriteHeader(http.StatusNotFound)

	if wrapped.Status() != http.StatusNotFound {
		t.Errorf("Status() = %d, want %d", wrapped.Status(), http.StatusNotFound)
	}
}

func TestResponseWriter_WriteHeaderIdempotent(t *testing.T) {
	rr := httptest.NewRecorder()
	wrapped := wrapResponseWriter(rr)

	wrapped.WriteHeader(http.StatusNotFound)
	wrapped.WriteHeader(http.StatusOK) // should be ignored

	if wrapped.Status() != http.StatusNotFound {
		t.Errorf("Status() = %d, want %d (second WriteHeader should be ignored)", wrapped.Status(), http.StatusNotFound)
	}
}

func TestResponseWriter_DefaultStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	wrapped := wrapResponseWriter(rr)

	if wrapped.Status() != 0 {
		t.Errorf("Status() = %d before any write, want 0", wrapped.Status())
	}

	wrapped.Write([]byte("ok"))
	if wrapped.Status() != http.StatusOK {
		t.Errorf("Status() = %d after Write, want %d", wrapped.Status(), http.StatusOK)
	}
}

func TestLogging(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		status    int
		wantLevel string
	}{
		{
			name: "explicit status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
			},
			status:    http.StatusCreated,
			wantLevel: "INFO",
		},
		{
			name: "implicit 200",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("ok"))
			},
			status:    http.StatusOK,
			wantLevel: "INFO",
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			status:    http.StatusInternalServerError,
			wantLevel: "ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			handler := Logging(logger)(tt.handler)

			req := httptest.NewRequest(http.MethodGet, "/api/expense", nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != tt.status {
				t.Errorf("handler returned wrong status code: got %d want %d", rr.Code, tt.status)
			}

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
			}
			if entry["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %s", entry["level"], tt.wantLevel)
			}
			if entry["method"] != http.MethodGet || entry["path"] != "/api/expense" {
				t.Errorf("method/path = %v %v", entry["method"], entry["path"])
			}
			if entry["status"] != float64(tt.status) {
				t.Errorf("status = %v, want %d", entry["status"], tt.status)
			}
			if _, ok := entry["duration_ms"]; !ok {
				t.Error("duration_ms missing from log line")
			}
		})
	}
}
