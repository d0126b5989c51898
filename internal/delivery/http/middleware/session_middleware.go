package middleware

import (
	"log/slog"

	deliverycontext "shopfront/internal/delivery/context"
	"shopfront/internal/delivery/http/response"
	"shopfront/internal/delivery/http/session"
	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/errors"
	"shopfront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SessionMiddleware resolves the session or remember cookie to a principal.
type SessionMiddleware struct {
	sessions *session.Manager
	accounts usecase.AccountUsecase
	logger   *slog.Logger
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(sessions *session.Manager, accounts usecase.AccountUsecase, logger *slog.Logger) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions, accounts: accounts, logger: logger}
}

// LoadPrincipal reloads the signed-in account from the store on every
// request. Anonymous requests pass through without a principal.
func (m *SessionMiddleware) LoadPrincipal(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		accountID, ok := m.sessions.AccountID(c)
		remembered := false
		if !ok {
			accountID, ok = m.sessions.RememberedAccountID(c)
			remembered = ok
		}
		if !ok {
			return next(c)
		}

		ctx := c.Request().Context()
		principal, err := m.accounts.GetPrincipal(ctx, accountID)
		switch {
		case errors.Is(err, domainerrors.ErrNotFound):
			deliverycontext.GetLoggerOrDefault(ctx, m.logger).Info("Session refers to a missing account", slog.Any("accountID", accountID))
			if err := m.sessions.Logout(c); err != nil {
				return err
			}

			return next(c)
		case err != nil:
			return err
		}

		deliverycontext.SetPrincipal(c, principal)

		if remembered {
			err = m.sessions.Restore(c, accountID)
		} else {
			err = m.sessions.Refresh(c, accountID)
		}
		if err != nil {
			return err
		}

		return next(c)
	}
}

// RequireSession only asks for a signed-in account of any role.
func (m *SessionMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if deliverycontext.GetPrincipal(c) != nil {
			return next(c)
		}

		if err := m.sessions.AddNotice(c, session.CategoryInfo, domainerrors.ErrUnauthenticated.Message()); err != nil {
			return err
		}

		return response.Redirect(c, LoginPath(entity.RoleViewer))
	}
}

// LoginPath is the login entry point of a role.
func LoginPath(role entity.Role) string {
	return "/login/" + role.String()
}

// DashboardPath is the landing page of a role.
func DashboardPath(role entity.Role) string {
	return "/dashboard/" + role.String()
}
