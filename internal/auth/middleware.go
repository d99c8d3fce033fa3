package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/saulo-duarte/socrates-lambda/internal/config"
)

type ctxKey struct{}

const CookieName = "jwt"

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "bearer") {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

func withClaims(r *http.Request, claims *Claims) *http.Request {
	ctx := context.WithValue(r.Context(), ctxKey{}, claims)
	ctx = config.WithUserID(ctx, claims.UserID)
	return r.WithContext(ctx)
}

// AuthMiddleware rejects requests without a valid token.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			config.Error(w, http.StatusUnauthorized, "missing token")
			return
		}

		claims, err := ValidateJWT(token)
		if err != nil {
			config.WithContext(r.Context()).WithError(err).Warn("Invalid token")
			config.Error(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, withClaims(r, claims))
	})
}

// OptionalAuthMiddleware lets anonymous requests through but still rejects a bad token.
func OptionalAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := ValidateJWT(token)
		if err != nil {
			config.WithContext(r.Context()).WithError(err).Warn("Invalid token")
			config.Error(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, withClaims(r, claims))
	})
}

func GetUserClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(ctxKey{}).(*Claims)
	if !ok || claims == nil {
		return nil, ErrUnauthenticated
	}
	return claims, nil
}

// UserIDFromContext returns the caller's id, or "" for anonymous requests.
func UserIDFromContext(ctx context.Context) string {
	claims, err := GetUserClaimsFromContext(ctx)
	if err != nil {
		return ""
	}
	return claims.UserID
}
