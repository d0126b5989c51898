package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shopfront/config"
	deliverycontext "shopfront/internal/delivery/context"
	"shopfront/internal/delivery/http/session"
	"shopfront/internal/domain/entity"
	"shopfront/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessions(t *testing.T) *session.Manager {
	t.Helper()

	cfg := &config.Config{Session: &config.SessionConfig{
		CookieName:         "sid",
		RememberCookieName: "remember",
		RememberDuration:   time.Hour,
	}}
	cfg.SecretKey.Session = "session-secret-for-tests"
	cfg.SecretKey.Remember = "remember-secret-for-tests"

	remember, err := auth.NewRememberTokenService(cfg)
	require.NoError(t, err)
	sessions, err := session.NewManager(cfg, remember)
	require.NoError(t, err)

	return sessions
}

func principalOf(role entity.Role) *entity.Principal {
	return &entity.Principal{Account: &entity.Account{ID: uuid.New(), Role: role}}
}

func TestAccessMiddleware_RequireRole(t *testing.T) {
	gate := NewAccessMiddleware(newSessions(t), slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		name      string
		required  entity.Role
		principal *entity.Principal
		status    int
		location  string
	}{
		{name: "anonymous viewer page", required: entity.RoleViewer, status: http.StatusSeeOther, location: "/login/viewer"},
		{name: "anonymous admin page", required: entity.RoleAdmin, status: http.StatusSeeOther, location: "/login/admin"},
		{name: "viewer on admin page", required: entity.RoleAdmin, principal: principalOf(entity.RoleViewer), status: http.StatusSeeOther, location: "/"},
		{name: "admin on viewer page", required: entity.RoleViewer, principal: principalOf(entity.RoleAdmin), status: http.StatusSeeOther, location: "/"},
		{name: "matching role", required: entity.RoleAdmin, principal: principalOf(entity.RoleAdmin), status: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/page", nil), rec)
			if tt.principal != nil {
				deliverycontext.SetPrincipal(c, tt.principal)
			}

			err := gate.RequireRole(tt.required)(func(c echo.Context) error {
				return c.NoContent(http.StatusNoContent)
			})(c)

			require.NoError(t, err)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get(echo.HeaderLocation))
		})
	}
}

func TestForbiddenNotice(t *testing.T) {
	assert.Equal(t, "You need an admin account to access this page.", ForbiddenNotice(entity.RoleAdmin))
	assert.Equal(t, "You need a viewer account to access this page.", ForbiddenNotice(entity.RoleViewer))
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "/login/admin", LoginPath(entity.RoleAdmin))
	assert.Equal(t, "/dashboard/viewer", DashboardPath(entity.RoleViewer))
}
