package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"worktrack/internal/models"
	"worktrack/internal/session"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*session.Session, error)
}

// Session поднимает сессию из cookie. Без неё GET уводит на loginPath,
// остальные методы получают 401.
func Session(a Authenticator, cookie, loginPath string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(cookie)
			if err == nil && c.Value != "" {
				s, err := a.Authenticate(r.Context(), c.Value)
				if err == nil {
					remember(r.Context(), s)
					next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), s)))
					return
				}
				http.SetCookie(w, &http.Cookie{Name: cookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
			}
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}
			models.WriteProblem(w, http.StatusUnauthorized, "Unauthorized", "sign in required", nil)
		})
	}
}

// RequireAdmin: 403 для всех, кроме admin.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.FromContext(r.Context())
		if !s.IsAdmin() {
			models.WriteProblem(w, http.StatusForbidden, "Forbidden", "admin role required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
