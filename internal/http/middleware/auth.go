package middleware

import (
	"net/http"

	"github.com/rogerio-castellano/furniture-storefront/internal/auth"
)

// Authenticate attaches the caller's identity when a valid bearer token is present.
// Requests without one pass through anonymously.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := auth.BearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}
		claims, err := auth.ParseToken(token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := auth.WithIdentity(r.Context(), auth.IdentityFromClaims(claims))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.IdentityFrom(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "missing or invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin answers 401 for anonymous callers and 403 for authenticated non-admins.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.IdentityFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing or invalid token")
			return
		}
		if !id.IsAdmin() {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}
