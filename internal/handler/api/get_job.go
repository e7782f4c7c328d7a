package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"net/http"

	"github.com/fhuszti/way2enjoy-go/internal/api_context"
	"github.com/fhuszti/way2enjoy-go/internal/logger"
	"github.com/fhuszti/way2enjoy-go/internal/port"
	"github.com/fhuszti/way2enjoy-go/internal/usecase/compression"
)

// GetJobHandler returns the job as JSON along with an ETag derived from it.
// A matching If-None-Match answers 304 so pollers skip unchanged bodies.
func GetJobHandler(svc port.JobGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.JobIDFromContext(r.Context())
		if !ok {
			WriteError(w, r, http.StatusBadRequest, "ID is required", nil)
			return
		}

		job, err := svc.GetJob(r.Context(), id)
		if err != nil {
			if errors.Is(err, compression.ErrJobNotFound) {
				WriteError(w, r, http.StatusNotFound, fmt.Sprintf("job #%s not found", id), nil)
				return
			}
			WriteError(w, r, http.StatusInternalServerError, "could not get job details", err)
			return
		}

		raw, err := json.Marshal(job)
		if err != nil {
			WriteError(w, r, http.StatusInternalServerError, "could not encode job details", err)
			return
		}
		etag := jobETag(raw)

		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("ETag", etag)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		RespondRawJSON(w, r, http.StatusOK, raw)
		logger.Infof(r.Context(), "✅  Successfully returned details for job #%s", id)
	}
}

func jobETag(raw []byte) string {
	return fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(raw))
}
