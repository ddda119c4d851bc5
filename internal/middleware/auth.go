package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mindspace-app/mindspace-backend/internal/services"
)

// AuthHeader is the custom header carrying the signed token.
const AuthHeader = "x-auth-token"

type contextKey string

const claimsContextKey contextKey = "tokenClaims"

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// RequireAuth verifies the x-auth-token header and puts the embedded
// identity into the request context. Missing and invalid credentials both
// get 401, with distinct messages. The gate trusts the claims as issued; it
// never re-reads the user collection.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(r.Header.Get(AuthHeader))
		if token == "" {
			writeAuthError(w, "No token, authorization denied")
			return
		}

		claims, err := services.VerifyToken(token)
		if err != nil {
			writeAuthError(w, "Token is not valid")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromContext returns the authenticated identity set by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*services.TokenClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*services.TokenClaims)
	return claims, ok
}
