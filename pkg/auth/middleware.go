package auth

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/beanbridge/pkg/httpx"
	"github.com/ghuser/beanbridge/pkg/logger"
)

const sessionName = "beanbridge_admin"
const sessionAdminKey = "admin"

// RequireAdmin is a chi middleware that guards back-office routes via session
// cookies. It reads the session, extracts the admin username, and injects it
// into the request context. Returns 401 Unauthorized if the session is
// missing, invalid, or lacks an admin identity.
//
// After this middleware, handlers can safely call auth.AdminFromCtx(r.Context()).
func RequireAdmin(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			if session.IsNew {
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			admin, ok := session.Values[sessionAdminKey].(string)
			if !ok || admin == "" {
				log.WarnContext(r.Context(), "session missing admin identity")
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			ctx := WithAdmin(r.Context(), admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
