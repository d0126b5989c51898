package context

import (
	"log/slog"

	"shopfront/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyPrincipal is the echo.Context key of the account bound to the request.
const KeyPrincipal ContextKey = "principal"

// GetPrincipal returns the principal resolved for this request, or nil for
// an anonymous request.
func GetPrincipal(c echo.Context) *entity.Principal {
	principal, _ := c.Get(string(KeyPrincipal)).(*entity.Principal)

	return principal
}

// SetPrincipal binds the principal to the request and tags the request-scoped
// logger with its account id.
func SetPrincipal(c echo.Context, principal *entity.Principal) {
	c.Set(string(KeyPrincipal), principal)

	ctx := c.Request().Context()
	if logger := GetLogger(ctx); logger != nil {
		ctx = WithLogger(ctx, logger.With(slog.String("account_id", principal.AccountID().String())))
		c.SetRequest(c.Request().WithContext(ctx))
	}
}
