package context

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopfront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestBindRequest(t *testing.T) {
	var buf bytes.Buffer
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Empty(t, GetRequestID(c))
	assert.Nil(t, GetLogger(c.Request().Context()))

	BindRequest(c, "req-1", slog.New(slog.NewTextHandler(&buf, nil)))

	assert.Equal(t, "req-1", GetRequestID(c))
	assert.Equal(t, "req-1", GetRequestIDFromContext(c.Request().Context()))

	GetLoggerOrDefault(c.Request().Context(), slog.Default()).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestPrincipalTagsLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithLogger(req.Context(), logger))
	c := echo.New().NewContext(req, httptest.NewRecorder())

	assert.Nil(t, GetPrincipal(c))

	principal := &entity.Principal{Account: &entity.Account{ID: uuid.New(), Role: entity.RoleViewer}}
	SetPrincipal(c, principal)
	assert.Same(t, principal, GetPrincipal(c))

	GetLoggerOrDefault(c.Request().Context(), slog.Default()).Info("hello")
	assert.Contains(t, buf.String(), "account_id="+principal.AccountID().String())
}
