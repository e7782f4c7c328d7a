package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fhuszti/way2enjoy-go/internal/api_context"
	"github.com/fhuszti/way2enjoy-go/internal/handler/api"
	"github.com/golang-jwt/jwt/v4"
)

func newKeyPair(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	return key, string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"iss":   "core",
		"aud":   "way2enjoy",
		"exp":   time.Now().Add(time.Minute).Unix(),
		"iat":   time.Now().Unix(),
		"sub":   "user-123",
		"roles": []any{"admin", "uploader"},
	}
}

func TestWithJWTAuth(t *testing.T) {
	key, pubPEM := newKeyPair(t)
	otherKey, _ := newKeyPair(t)

	rs256 := func(k *rsa.PrivateKey) func(jwt.MapClaims) string {
		return func(c jwt.MapClaims) string {
			s, err := jwt.NewWithClaims(jwt.SigningMethodRS256, c).SignedString(k)
			if err != nil {
				t.Fatalf("sign token: %v", err)
			}
			return "Bearer " + s
		}
	}
	hs256 := func(c jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("secret"))
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		return "Bearer " + s
	}

	tests := []struct {
		name       string
		header     func() string
		wantStatus int
		wantError  string
	}{
		{"missing header", func() string { return "" }, http.StatusUnauthorized, "missing bearer token"},
		{"wrong prefix", func() string { return "Token abc" }, http.StatusUnauthorized, "missing bearer token"},
		{"garbage token", func() string { return "Bearer abc.def" }, http.StatusUnauthorized, "unauthorized"},
		{"foreign key", func() string { return rs256(otherKey)(validClaims()) }, http.StatusUnauthorized, "unauthorized"},
		{"hmac token", func() string { return hs256(validClaims()) }, http.StatusUnauthorized, "unauthorized"},
		{"bad issuer", func() string {
			c := validClaims()
			c["iss"] = "other"
			return rs256(key)(c)
		}, http.StatusUnauthorized, "bad issuer"},
		{"bad audience", func() string {
			c := validClaims()
			c["aud"] = "other"
			return rs256(key)(c)
		}, http.StatusUnauthorized, "bad audience"},
		{"expired", func() string {
			c := validClaims()
			c["exp"] = time.Now().Add(-time.Minute).Unix()
			return rs256(key)(c)
		}, http.StatusUnauthorized, "token expired"},
		{"iat far in the future", func() string {
			c := validClaims()
			c["iat"] = time.Now().Add(time.Minute).Unix()
			return rs256(key)(c)
		}, http.StatusUnauthorized, "invalid iat"},
		{"iat within skew", func() string {
			c := validClaims()
			c["iat"] = time.Now().Add(10 * time.Second).Unix()
			return rs256(key)(c)
		}, http.StatusNoContent, ""},
		{"missing sub", func() string {
			c := validClaims()
			delete(c, "sub")
			return rs256(key)(c)
		}, http.StatusUnauthorized, "missing sub"},
		{"valid token", func() string { return rs256(key)(validClaims()) }, http.StatusNoContent, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotSub string
			var gotRoles []string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotSub, _ = api_context.AuthUserIDFromContext(r.Context())
				gotRoles, _ = api_context.AuthRolesFromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if h := tc.header(); h != "" {
				req.Header.Set("Authorization", h)
			}
			rec := httptest.NewRecorder()
			WithJWTAuth(pubPEM)(next).ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d (body %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if tc.wantError != "" {
				var resp api.ErrorResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("invalid JSON error body: %v", err)
				}
				if resp.Error != tc.wantError {
					t.Errorf("error = %q; want %q", resp.Error, tc.wantError)
				}
				return
			}
			if gotSub != "user-123" {
				t.Errorf("sub = %q; want user-123", gotSub)
			}
			if strings.Join(gotRoles, ",") != "admin,uploader" {
				t.Errorf("roles = %v; want [admin uploader]", gotRoles)
			}
		})
	}
}

func TestWithJWTAuth_NoKeyPassthrough(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	WithJWTAuth("")(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if !called || rec.Code != http.StatusNoContent {
		t.Fatalf("called = %v, status = %d; want passthrough", called, rec.Code)
	}
}

func TestWithJWTAuth_InvalidKeyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a broken public key")
		}
	}()
	WithJWTAuth("not a pem")
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		roles      []string
		auth       bool
		wantStatus int
	}{
		{"auth disabled", nil, false, http.StatusNoContent},
		{"holds role", []string{"reader", "uploader"}, true, http.StatusNoContent},
		{"lacks role", []string{"reader"}, true, http.StatusForbidden},
		{"no roles at all", []string{}, true, http.StatusForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodPost, "/compressions", nil)
			if tc.auth {
				req = req.WithContext(api_context.WithAuth(req.Context(), "user-123", tc.roles))
			}
			rec := httptest.NewRecorder()
			RequireRole("admin", "uploader")(next).ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d; want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}
