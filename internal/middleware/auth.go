package middleware

import (
	"net/http"

	"github.com/foracure/backend/internal/auth"
	"github.com/foracure/backend/internal/telemetry/tracing"
	"github.com/foracure/backend/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

type sessionChecker interface {
	Verify(token string) (*auth.Claims, error)
}

// AdminGuard lets a request through only when it carries a valid admin session cookie.
// Preflight requests are answered before the session is checked.
func AdminGuard(checker sessionChecker) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.admin-guard")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			token := auth.TokenFromRequest(r)
			if token == "" {
				log.Tracef("[missing token] [admin guard] unauthorized => %s", r.URL.Path)
				pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-session-token")
				return
			}

			if _, err := checker.Verify(token); err != nil {
				log.Tracef("[invalid token] [admin guard] unauthorized => %s: %s", r.URL.Path, err)
				pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-session-token")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
