package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// FakeAPI mimics the compression API: uploads are "compressed" by keeping
// every other byte, and the result is served back under /result/<n>.
type FakeAPI struct {
	*httptest.Server

	mu      sync.Mutex
	results map[string][]byte
	reject  int
	resizes []string
}

func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{results: make(map[string][]byte)}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

// UploadURL is the endpoint to configure the client with.
func (f *FakeAPI) UploadURL() string {
	return f.URL + "/upload"
}

// RejectUploads makes every following upload answer with status.
func (f *FakeAPI) RejectUploads(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reject = status
}

// Resizes returns the JSON bodies posted to result URLs so far.
func (f *FakeAPI) Resizes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.resizes...)
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.Header.Get("Authorization"), "Basic ") {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"Unauthorized","message":"missing credentials"}`)
		return
	}
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.URL.Path == "/upload":
		if f.reject != 0 {
			w.WriteHeader(f.reject)
			_, _ = io.WriteString(w, `{"error":"TooManyRequests","message":"monthly limit reached"}`)
			return
		}
		out := make([]byte, 0, len(body)/2+1)
		for i := 0; i < len(body); i += 2 {
			out = append(out, body[i])
		}
		key := "/result/" + strings.Repeat("r", len(f.results)+1)
		f.results[key] = out
		ratio := 0.0
		if len(body) > 0 {
			ratio = float64(len(out)) / float64(len(body))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"input":  map[string]any{"size": len(body), "type": "image/png"},
			"output": map[string]any{"size": len(out), "type": "image/png", "width": 10, "height": 10, "ratio": ratio, "url": f.URL + key},
		})
	default:
		data, ok := f.results[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"NotFound","message":"result expired"}`)
			return
		}
		if r.Method == http.MethodPost {
			f.resizes = append(f.resizes, string(body))
			// resizing halves again
			data = data[:len(data)/2]
		}
		_, _ = w.Write(data)
	}
}
