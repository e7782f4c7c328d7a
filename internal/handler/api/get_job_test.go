package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fhuszti/way2enjoy-go/internal/api_context"
	"github.com/fhuszti/way2enjoy-go/internal/mock"
	"github.com/fhuszti/way2enjoy-go/internal/model"
	"github.com/fhuszti/way2enjoy-go/internal/usecase/compression"
	"github.com/google/uuid"
)

func TestGetJobHandler(t *testing.T) {
	id := uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")
	outKey := "optimised/cat.png"
	job := &model.Job{
		ID:        id,
		Bucket:    "images",
		ObjectKey: "cat.png",
		OutputKey: &outKey,
		Status:    model.JobStatusCompleted,
	}

	tests := []struct {
		name            string
		ctxID           bool
		svcOut          *model.Job
		svcErr          error
		wantStatus      int
		wantBodyContain string
	}{
		{
			name:            "missing ID",
			wantStatus:      http.StatusBadRequest,
			wantBodyContain: "ID is required",
		},
		{
			name:            "not found",
			ctxID:           true,
			svcErr:          compression.ErrJobNotFound,
			wantStatus:      http.StatusNotFound,
			wantBodyContain: "not found",
		},
		{
			name:            "service error",
			ctxID:           true,
			svcErr:          errors.New("db down"),
			wantStatus:      http.StatusInternalServerError,
			wantBodyContain: "could not get job details",
		},
		{
			name:       "happy path",
			ctxID:      true,
			svcOut:     job,
			wantStatus: http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mock.MockJobGetter{Out: tc.svcOut, Err: tc.svcErr}
			h := GetJobHandler(svc)

			req := httptest.NewRequest(http.MethodGet, "/compressions/"+id.String(), nil)
			if tc.ctxID {
				req = req.WithContext(api_context.WithJobID(req.Context(), id))
			}
			rec := httptest.NewRecorder()

			h(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d", rec.Code, tc.wantStatus)
			}

			body := rec.Body.Bytes()
			if tc.wantBodyContain != "" {
				var resp ErrorResponse
				if err := json.Unmarshal(body, &resp); err != nil {
					t.Fatalf("invalid JSON error body: %v; body=%s", err, body)
				}
				if !strings.Contains(resp.Error, tc.wantBodyContain) {
					t.Errorf("body = %q; want to contain %q", body, tc.wantBodyContain)
				}
				return
			}

			if svc.ID != id {
				t.Errorf("service got id %s; want %s", svc.ID, id)
			}
			var got model.Job
			if err := json.Unmarshal(body, &got); err != nil {
				t.Fatalf("invalid JSON body: %v; body=%s", err, body)
			}
			if got.ID != id || got.Status != model.JobStatusCompleted {
				t.Errorf("got %+v", got)
			}
			if got.OutputKey == nil || *got.OutputKey != outKey {
				t.Errorf("output_key = %v; want %q", got.OutputKey, outKey)
			}
		})
	}
}

func TestGetJobHandler_ETag(t *testing.T) {
	id := uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")
	svc := &mock.MockJobGetter{Out: &model.Job{ID: id, Bucket: "images", ObjectKey: "cat.png", Status: model.JobStatusPending}}
	h := GetJobHandler(svc)

	newReq := func(ifNoneMatch string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/compressions/"+id.String(), nil)
		if ifNoneMatch != "" {
			req.Header.Set("If-None-Match", ifNoneMatch)
		}
		return req.WithContext(api_context.WithJobID(req.Context(), id))
	}

	rec := httptest.NewRecorder()
	h(rec, newReq(""))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	etag := rec.Header().Get("ETag")
	if want := jobETag(rec.Body.Bytes()); etag != want {
		t.Fatalf("ETag = %q; want %q", etag, want)
	}

	rec = httptest.NewRecorder()
	h(rec, newReq(etag))
	if rec.Code != http.StatusNotModified {
		t.Errorf("status = %d; want 304", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("304 body = %q; want empty", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h(rec, newReq(`"00000000"`))
	if rec.Code != http.StatusOK {
		t.Errorf("stale etag status = %d; want 200", rec.Code)
	}
}
