package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fhuszti/way2enjoy-go/internal/api_context"
	"github.com/fhuszti/way2enjoy-go/internal/handler/api"
	"github.com/golang-jwt/jwt/v4"
)

const (
	tokenIssuer   = "core"
	tokenAudience = "way2enjoy"
	// maxClockSkew tolerates an iat slightly in the future.
	maxClockSkew = 30 * time.Second
)

var (
	errMissingToken   = errors.New("missing bearer token")
	errTokenExpired   = errors.New("token expired")
	errFutureIssuedAt = errors.New("invalid iat")
	errBadIssuer      = errors.New("bad issuer")
	errBadAudience    = errors.New("bad audience")
	errMissingSubject = errors.New("missing sub")
)

// accessClaims is the token minted by core for calls to this service.
type accessClaims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

func (c accessClaims) Valid() error {
	now := time.Now()
	switch {
	case !c.VerifyExpiresAt(now, true):
		return errTokenExpired
	case !c.VerifyIssuedAt(now.Add(maxClockSkew), false):
		return errFutureIssuedAt
	case !c.VerifyIssuer(tokenIssuer, true):
		return errBadIssuer
	case !c.VerifyAudience(tokenAudience, true):
		return errBadAudience
	case c.Subject == "":
		return errMissingSubject
	}
	return nil
}

// WithJWTAuth validates a short-lived RS256 Bearer JWT issued by core and
// stores its subject and roles in the request context. An empty key disables
// authentication.
func WithJWTAuth(jwtPublicKeyPEM string) func(http.Handler) http.Handler {
	if jwtPublicKeyPEM == "" {
		return func(next http.Handler) http.Handler { return next }
	}

	pubKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(jwtPublicKeyPEM))
	if err != nil {
		panic(fmt.Sprintf("invalid core RSA public key: %v", err))
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name}))
	keyFunc := func(*jwt.Token) (interface{}, error) { return pubKey, nil }

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := parseBearer(parser, keyFunc, r.Header.Get("Authorization"))
			if err != nil {
				api.WriteError(w, r, http.StatusUnauthorized, rejectionReason(err), err)
				return
			}

			next.ServeHTTP(w, r.WithContext(api_context.WithAuth(r.Context(), claims.Subject, claims.Roles)))
		})
	}
}

func parseBearer(parser *jwt.Parser, keyFunc jwt.Keyfunc, header string) (*accessClaims, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return nil, errMissingToken
	}

	claims := &accessClaims{}
	if _, err := parser.ParseWithClaims(raw, claims, keyFunc); err != nil {
		return nil, err
	}
	return claims, nil
}

// rejectionReason picks the message sent back to the caller.
func rejectionReason(err error) string {
	for _, known := range []error{errMissingToken, errTokenExpired, errFutureIssuedAt, errBadIssuer, errBadAudience, errMissingSubject} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "unauthorized"
}

// RequireRole lets the request through when the caller holds one of roles.
// Requests that went through a disabled WithJWTAuth carry no roles and are
// let through as well.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			held, authenticated := api_context.AuthRolesFromContext(r.Context())
			if !authenticated {
				next.ServeHTTP(w, r)
				return
			}
			for _, h := range held {
				for _, want := range roles {
					if h == want {
						next.ServeHTTP(w, r)
						return
					}
				}
			}
			api.WriteError(w, r, http.StatusForbidden, "forbidden", nil)
		})
	}
}
