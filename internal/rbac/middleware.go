package rbac

import (
	"context"
	"net/http"
	"strings"

	"log/slog"
)

// Verifier resolves a bearer token to the principal it was issued for.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
}

// Middleware wires capability authorization helpers for HTTP handlers.
type Middleware struct {
	Verifier Verifier
	Logger   *slog.Logger
}

// Authenticate attaches the principal for a valid bearer token, if any.
// Requests without credentials pass through unauthenticated; capability
// checks happen at Require.
func (m Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" || m.Verifier == nil {
			next.ServeHTTP(w, r)
			return
		}
		principal, err := m.Verifier.Verify(r.Context(), token)
		if err != nil {
			if m.Logger != nil {
				m.Logger.Warn("rbac verify token", slog.Any("error", err))
			}
			next.ServeHTTP(w, r)
			return
		}
		ctx := ContextWithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Require ensures the current principal has at least one of the capabilities.
func (m Middleware) Require(caps ...Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(caps) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			principal := PrincipalFromContext(r.Context())
			if principal == nil {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			for _, c := range caps {
				if principal.Can(c) {
					next.ServeHTTP(w, r)
					return
				}
			}
			if m.Logger != nil {
				m.Logger.Warn("rbac capability denied",
					slog.String("handle", principal.Handle),
					slog.String("role", string(principal.Role)),
					slog.String("path", r.URL.Path))
			}
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
