package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fhuszti/way2enjoy-go/internal/client"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing input", []string{"-out", "x"}, "-in is required"},
		{"unknown method", []string{"-in", "a.png", "-method", "stretch", "-width", "1"}, "unknown resize method"},
		{"negative width", []string{"-in", "a.png", "-width", "-1"}, "must not be negative"},
		{"method without size", []string{"-in", "a.png", "-method", "fit"}, "needs -width or -height"},
		{"plain upload", []string{"-in", "a.png"}, ""},
		{"scale by width", []string{"-in", "a.png", "-method", "scale", "-width", "150"}, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o, err := parseFlags(tc.args)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if o.in != "a.png" {
					t.Errorf("in = %q", o.in)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v; want it to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestOptionsStore(t *testing.T) {
	if (&options{}).store() != nil {
		t.Error("expected no store target without a bucket path")
	}
	st := (&options{s3Path: "b/p.png", s3Region: "eu-west-1", s3Key: "k", s3Secret: "s"}).store()
	if st == nil || st.Service != "s3" || st.Path != "b/p.png" || st.Region != "eu-west-1" {
		t.Fatalf("store() = %+v", st)
	}
}

type apiCall struct {
	method string
	path   string
	body   string
}

func newFakeAPI(t *testing.T) (*httptest.Server, *[]apiCall) {
	t.Helper()
	var calls []apiCall
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		calls = append(calls, apiCall{r.Method, r.URL.Path, string(b)})
		switch {
		case r.URL.Path == "/upload":
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"input":{"size":10,"type":"image/png"},"output":{"size":5,"type":"image/png","width":4,"height":4,"ratio":0.5,"url":"`+srv.URL+`/result/abc"}}`)
		case r.URL.Path == "/result/abc" && r.Method == http.MethodGet:
			_, _ = io.WriteString(w, "small")
		case r.URL.Path == "/result/abc":
			_, _ = io.WriteString(w, "resized")
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestRun_PlainUploadWithStore(t *testing.T) {
	srv, calls := newFakeAPI(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	if err := os.WriteFile(in, []byte("0123456789"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := client.New("key", client.WithEndpoint(srv.URL+"/upload"))
	rep, err := run(context.Background(), c, &options{in: in, out: out, s3Path: "bucket/out.png", s3Region: "r"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(*calls) != 3 {
		t.Fatalf("expected upload, store and download, got %+v", *calls)
	}
	if (*calls)[1].method != http.MethodPost || !strings.Contains((*calls)[1].body, `"store"`) {
		t.Errorf("second call = %+v; want the store request", (*calls)[1])
	}
	if rep.Store == nil || rep.Store.Code != 200 || rep.Download == nil || rep.Download.Code != 200 {
		t.Errorf("statuses = %+v", rep)
	}
	got, err := os.ReadFile(out)
	if err != nil || string(got) != "small" {
		t.Fatalf("output = %q, %v", got, err)
	}
	if rep.Written != 5 {
		t.Errorf("Written = %d; want 5", rep.Written)
	}
}

func TestRun_Transform(t *testing.T) {
	srv, calls := newFakeAPI(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "thumb.png")
	if err := os.WriteFile(in, []byte("0123456789"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := client.New("key", client.WithEndpoint(srv.URL+"/upload"))
	rep, err := run(context.Background(), c, &options{in: in, out: out, method: "cover", width: 100, height: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(*calls) != 2 {
		t.Fatalf("expected upload and transform only, got %+v", *calls)
	}
	if want := `{"resize":{"method":"cover","width":100,"height":50}}`; (*calls)[1].body != want {
		t.Errorf("transform body = %s; want %s", (*calls)[1].body, want)
	}
	if rep.Transform == nil || rep.Transform.Code != 200 {
		t.Errorf("Transform = %+v", rep.Transform)
	}
	got, err := os.ReadFile(out)
	if err != nil || string(got) != "resized" {
		t.Fatalf("output = %q, %v", got, err)
	}

	var buf bytes.Buffer
	if err := writeReport(&buf, rep); err != nil {
		t.Fatalf("writeReport: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("report is not JSON: %v", err)
	}
	if _, ok := decoded["transform"]; !ok {
		t.Errorf("report misses the transform status: %s", buf.String())
	}
}
