package middleware

import (
	"net/http"

	"github.com/Sammk21/ecommerce-admin/internal/auth"
)

// LoginPath is where unauthenticated admin requests get redirected.
const LoginPath = "/auth/login"

// RequireSession returns middleware that reads the session cookie, verifies
// the signed credential, and injects it into the request context. A missing,
// invalid, or expired credential redirects to the login page — no downstream
// handler (and therefore no catalog call) runs.
func RequireSession(svc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.CookieName)
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}

			if err := svc.Verify(cookie.Value); err != nil {
				// Stale or tampered cookie: clear it before redirecting.
				http.SetCookie(w, svc.ExpiredCookie())
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}

			ctx := auth.WithCredential(r.Context(), auth.Credential(cookie.Value))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
