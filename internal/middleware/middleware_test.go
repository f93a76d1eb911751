package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktrack/internal/session"
)

type stubAuth map[string]*session.Session

func (a stubAuth) Authenticate(_ context.Context, tok string) (*session.Session, error) {
	if s, ok := a[tok]; ok {
		return s, nil
	}
	return nil, errors.New("bad token")
}

func whoami(w http.ResponseWriter, r *http.Request) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	_, _ = w.Write([]byte(s.Role.String()))
}

func TestSessionMiddleware(t *testing.T) {
	auth := stubAuth{
		"u": {UserID: uuid.New(), Role: session.RoleUser},
		"a": {UserID: uuid.New(), Role: session.RoleAdmin},
	}
	h := Session(auth, "wt_session", "/auth")(http.HandlerFunc(whoami))

	cases := []struct {
		name, method, token string
		code                int
		body                string
	}{
		{"no cookie get", http.MethodGet, "", http.StatusFound, ""},
		{"no cookie post", http.MethodPost, "", http.StatusUnauthorized, ""},
		{"bad token", http.MethodGet, "zzz", http.StatusFound, ""},
		{"user", http.MethodGet, "u", http.StatusOK, "user"},
		{"admin", http.MethodPost, "a", http.StatusOK, "admin"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/", nil)
			if tc.token != "" {
				req.AddCookie(&http.Cookie{Name: "wt_session", Value: tc.token})
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.code, rec.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, rec.Body.String())
			}
			if tc.code == http.StatusFound {
				assert.Equal(t, "/auth", rec.Header().Get("Location"))
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	h := RequireAdmin(http.HandlerFunc(whoami))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req = req.WithContext(session.NewContext(req.Context(), &session.Session{Role: session.RoleUser}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/users", nil)
	req = req.WithContext(session.NewContext(req.Context(), &session.Session{Role: session.RoleAdmin}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDAndRecoverer(t *testing.T) {
	var seen string
	h := RequestID(LoggerMW(Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r)
		panic("boom")
	}))))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "req-1")
	rec := httptest.NewRecorder()
	require.NotPanics(t, func() { h.ServeHTTP(rec, req) })

	assert.Equal(t, "req-1", seen)
	assert.Equal(t, "req-1", rec.Header().Get("X-Request-Id"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "problem+json")
}
