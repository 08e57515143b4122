// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/carterperez-dev/garage-saas/internal/core"
)

type contextKey string

const (
	IdentityKey  contextKey = "tenant_identity"
	RequestIDKey contextKey = "request_id"
)

// Identity is the tenant a verified session token belongs to.
type Identity struct {
	GarageID   int64
	Email      string
	GarageName string
}

type TokenVerifier interface {
	VerifySessionToken(ctx context.Context, token string) (*Identity, error)
}

// Authenticator verifies the bearer token on every request and stores the
// tenant identity in the request context. It never touches the database.
func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ExtractToken(r)
			if err != nil {
				core.JSONError(w, err)
				return
			}

			identity, err := verifier.VerifySessionToken(r.Context(), token)
			if err != nil {
				slog.DebugContext(r.Context(), "session token rejected",
					"error", err,
					"request_id", GetRequestID(r.Context()),
				)
				core.JSONError(w, core.TokenInvalidError())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// ExtractToken reads "Authorization: Bearer <token>". A missing header and a
// header that does not carry a bearer token are reported differently.
func ExtractToken(r *http.Request) (string, error) {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if authHeader == "" {
		return "", core.TokenMissingError()
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", core.TokenMalformedError()
	}

	return parts[1], nil
}

func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

func GetIdentity(ctx context.Context) *Identity {
	if identity, ok := ctx.Value(IdentityKey).(*Identity); ok {
		return identity
	}
	return nil
}

// GetGarageID returns 0 when the request is not authenticated.
func GetGarageID(ctx context.Context) int64 {
	if identity := GetIdentity(ctx); identity != nil {
		return identity.GarageID
	}
	return 0
}

func IsAuthenticated(ctx context.Context) bool {
	return GetGarageID(ctx) != 0
}
