package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"clinic-records/internal/auth"
	"clinic-records/internal/model"
)

type contextKey string

const principalContextKey contextKey = "principal"

// AuthMiddleware establishes identity with a Resolver and enforces role
// requirements fixed at route registration.
type AuthMiddleware struct {
	resolver auth.Resolver
}

func NewAuthMiddleware(resolver auth.Resolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := m.resolver.Resolve(r.Context(), r)
		if err != nil {
			if auth.IsUnauthenticated(err) {
				slog.Warn("authentication failed", "request_id", RequestIDFromContext(r.Context()), "reason", err.Error())
				writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
				return
			}

			slog.Error("identity resolution failed", "request_id", RequestIDFromContext(r.Context()), "error", err)
			writeAuthError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected server error")
			return
		}

		ctx := context.WithValue(r.Context(), principalContextKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles must run after RequireAuth. The role set is copied once here.
func (m *AuthMiddleware) RequireRoles(allowedRoles ...model.Role) func(http.Handler) http.Handler {
	required := append([]model.Role(nil), allowedRoles...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
				return
			}

			if _, err := auth.Authorize(principal, required...); err != nil {
				slog.Warn("authorization denied",
					"request_id", RequestIDFromContext(r.Context()),
					"identifier", principal.Identifier,
					"role", principal.Role,
					"required", required,
				)
				writeAuthError(w, http.StatusForbidden, "FORBIDDEN", err.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func PrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(model.Principal)
	return principal, ok
}

func writeAuthError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    code,
			Message: message,
		},
	})
}
