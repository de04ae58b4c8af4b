package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/logger"
)

type stubSessions map[string]string

func (s stubSessions) Verify(token string) (string, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return "", domain.ErrUnauthenticated
}

type stubActors map[string]domain.Actor

func (s stubActors) Actor(_ context.Context, id string) (domain.Actor, error) {
	a, ok := s[id]
	if !ok {
		return domain.Actor{}, domain.ErrUnauthenticated
	}
	if a.Status != domain.UserStatusActive {
		return domain.Actor{}, domain.ErrForbidden
	}
	return a, nil
}

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	l, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	require.NoError(t, err)
	return l
}

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	sessions := stubSessions{"good": "u1", "pending": "u2", "orphan": "ghost"}
	actors := stubActors{
		"u1": {ID: "u1", Role: domain.RoleCustomer, Status: domain.UserStatusActive},
		"u2": {ID: "u2", Role: domain.RoleProvider, Status: domain.UserStatusPending},
	}

	r := ginext.New("test")
	r.Use(RequestID(), RequestLogger(newTestLogger(t)), Recovery(newTestLogger(t)))
	r.GET("/me", Auth("session", sessions, actors), func(c *ginext.Context) {
		actor, ok := ActorFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, ginext.H{"id": actor.ID})
	})
	r.GET("/panic", func(c *ginext.Context) { panic("boom") })
	return r
}

func TestAuth(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name   string
		cookie string
		bearer string
		want   int
	}{
		{name: "cookie", cookie: "good", want: http.StatusOK},
		{name: "bearer", bearer: "good", want: http.StatusOK},
		{name: "missing", want: http.StatusUnauthorized},
		{name: "bad token", cookie: "forged", want: http.StatusUnauthorized},
		{name: "unknown user", cookie: "orphan", want: http.StatusUnauthorized},
		{name: "pending provider", cookie: "pending", want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "session", Value: tt.cookie})
			}
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}
