package api

import (
	"encoding/json"
	"net/http"

	"github.com/fhuszti/way2enjoy-go/internal/logger"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError answers with {"error": msg}. Server-side failures are logged as
// errors, client mistakes as warnings, both with the request's job and caller.
func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	ctx := r.Context()
	switch {
	case status >= http.StatusInternalServerError && err != nil:
		logger.Errorf(ctx, "❌  %s: %v", msg, err)
	case status >= http.StatusInternalServerError:
		logger.Error(ctx, "❌  "+msg)
	case err != nil:
		logger.Warnf(ctx, "⚠️  %s %s answered %d (%s): %v", r.Method, r.URL.Path, status, msg, err)
	default:
		logger.Warnf(ctx, "⚠️  %s %s answered %d (%s)", r.Method, r.URL.Path, status, msg)
	}
	w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
	RespondJSON(w, r, status, ErrorResponse{Error: msg})
}

func RespondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf(r.Context(), "❌  Failed to encode JSON response: %v", err)
	}
}

func RespondRawJSON(w http.ResponseWriter, r *http.Request, status int, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(raw); err != nil {
		logger.Errorf(r.Context(), "❌  Failed to write JSON payload: %v", err)
	}
}
