package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fhuszti/way2enjoy-go/internal/logger"
	"github.com/fhuszti/way2enjoy-go/internal/model"
	"github.com/fhuszti/way2enjoy-go/internal/port"
	"github.com/fhuszti/way2enjoy-go/internal/usecase/compression"
	"github.com/fhuszti/way2enjoy-go/internal/validation"
)

type CreateJobRequest struct {
	Bucket    string        `json:"bucket" validate:"required"`
	ObjectKey string        `json:"object_key" validate:"required"`
	Resize    *model.Resize `json:"resize,omitempty" validate:"omitempty"`
}

// CreateJobHandler registers a compression job for an object already stored
// in one of the allowed buckets. An empty allow-list accepts any bucket.
func CreateJobHandler(svc port.JobCreator, allowedBuckets []string) http.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedBuckets))
	for _, b := range allowedBuckets {
		allowed[b] = struct{}{}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateJobRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, http.StatusBadRequest, "invalid request payload", err)
			return
		}

		if errs := validation.ValidateStruct(req); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(w, r, http.StatusInternalServerError, "failed to encode validation errors", err)
				return
			}
			RespondRawJSON(w, r, http.StatusBadRequest, []byte(errsJSON))
			logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
			return
		}

		if len(allowed) > 0 {
			if _, ok := allowed[req.Bucket]; !ok {
				WriteError(w, r, http.StatusBadRequest, fmt.Sprintf("bucket %q does not exist", req.Bucket), nil)
				return
			}
		}

		out, err := svc.CreateJob(r.Context(), port.CreateJobInput{
			Bucket:    req.Bucket,
			ObjectKey: req.ObjectKey,
			Resize:    req.Resize,
		})
		if err != nil {
			if errors.Is(err, compression.ErrObjectNotFound) {
				WriteError(w, r, http.StatusNotFound, fmt.Sprintf("object %q not found in bucket %q", req.ObjectKey, req.Bucket), nil)
				return
			}
			WriteError(w, r, http.StatusInternalServerError, "could not create compression job", err)
			return
		}

		RespondJSON(w, r, http.StatusAccepted, out)
		logger.Infof(r.Context(), "✅  Successfully queued compression job #%s", out.ID)
	}
}
