package middlewares

import (
	"context"
	"medplus-service/internal/pkg/constvars"
	"medplus-service/internal/pkg/exceptions"
	"medplus-service/internal/pkg/utils"
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// Authenticate resolves the bearer token to a live session and stores the
// session data in the request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimPrefix(authHeader, bearerPrefix)
		session, err := m.SessionService.ParseSessionToken(r.Context(), token)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_DATA_KEY, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
