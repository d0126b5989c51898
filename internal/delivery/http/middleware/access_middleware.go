package middleware

import (
	"fmt"
	"log/slog"
	"strings"

	deliverycontext "shopfront/internal/delivery/context"
	"shopfront/internal/delivery/http/response"
	"shopfront/internal/delivery/http/session"
	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/policy"

	"github.com/labstack/echo/v4"
)

// AccessMiddleware gates routes by role.
type AccessMiddleware struct {
	sessions *session.Manager
	logger   *slog.Logger
}

// NewAccessMiddleware is the constructor for AccessMiddleware.
func NewAccessMiddleware(sessions *session.Manager, logger *slog.Logger) *AccessMiddleware {
	return &AccessMiddleware{sessions: sessions, logger: logger}
}

// RequireRole must run after SessionMiddleware.LoadPrincipal. An anonymous
// request goes to the role's login page, a request by another role goes to
// the landing page.
func (m *AccessMiddleware) RequireRole(role entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := policy.Authorize(role, deliverycontext.GetPrincipal(c))

			switch decision.Outcome {
			case policy.OutcomeOK:
				return next(c)
			case policy.OutcomeUnauthenticated:
				if err := m.sessions.AddNotice(c, session.CategoryInfo, domainerrors.ErrUnauthenticated.Message()); err != nil {
					return err
				}

				return response.Redirect(c, LoginPath(role))
			default:
				deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Info("Access denied",
					slog.String("required", role.String()),
					slog.String("path", c.Request().URL.Path),
				)
				if err := m.sessions.AddNotice(c, session.CategoryWarning, ForbiddenNotice(role)); err != nil {
					return err
				}

				return response.Redirect(c, "/")
			}
		}
	}
}

// ForbiddenNotice names the role a page requires.
func ForbiddenNotice(role entity.Role) string {
	article := "a"
	if strings.ContainsRune("aeiou", rune(role.String()[0])) {
		article = "an"
	}

	return fmt.Sprintf("You need %s %s account to access this page.", article, role)
}
