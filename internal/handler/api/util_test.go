package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fhuszti/way2enjoy-go/internal/api_context"
	"github.com/fhuszti/way2enjoy-go/internal/logger"
	"github.com/google/uuid"
)

func TestWriteError_LogsWithRequestContext(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "info")
	buf := &bytes.Buffer{}
	logger.InitWriter(buf)
	t.Cleanup(func() { logger.InitWriter(io.Discard) })

	id := uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")

	tests := []struct {
		name      string
		status    int
		err       error
		wantLevel string
	}{
		{"server failure", http.StatusInternalServerError, errors.New("db down"), "ERROR"},
		{"client mistake", http.StatusNotFound, nil, "WARN"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf.Reset()
			req := httptest.NewRequest(http.MethodGet, "/compressions/"+id.String(), nil)
			req = req.WithContext(api_context.WithAuth(api_context.WithJobID(req.Context(), id), "user-123", nil))
			rec := httptest.NewRecorder()

			WriteError(rec, req, tc.status, "could not get job details", tc.err)

			if rec.Code != tc.status {
				t.Fatalf("status = %d; want %d", rec.Code, tc.status)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Error != "could not get job details" {
				t.Errorf("body = %q (%v)", rec.Body.String(), err)
			}
			if cc := rec.Header().Get("Cache-Control"); !strings.Contains(cc, "no-store") {
				t.Errorf("Cache-Control = %q; want no-store", cc)
			}

			var line map[string]any
			if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
				t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
			}
			if line["level"] != tc.wantLevel {
				t.Errorf("level = %v; want %s", line["level"], tc.wantLevel)
			}
			if line["job"] != id.String() || line["uid"] != "user-123" {
				t.Errorf("job/uid = %v/%v; want request attrs", line["job"], line["uid"])
			}
		})
	}
}
