// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "shopfront/internal/delivery/context"
	"shopfront/internal/delivery/http/response"
	"shopfront/internal/delivery/http/session"
	domainerrors "shopfront/internal/domain/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// Pages renders page models and turns form outcomes into redirects with notices.
type Pages struct {
	sessions *session.Manager
	logger   *slog.Logger
}

// NewPages is the constructor for Pages.
func NewPages(sessions *session.Manager, logger *slog.Logger) *Pages {
	return &Pages{sessions: sessions, logger: logger}
}

// render writes the page model together with pending notices and the form
// stashed for this path.
func (p *Pages) render(c echo.Context, page string, data any, defaults map[string]string) error {
	notices, err := p.sessions.PopNotices(c)
	if err != nil {
		return err
	}

	form, err := p.sessions.PopForm(c, c.Request().URL.Path)
	if err != nil {
		return err
	}
	if form == nil {
		form = defaults
	}

	token, _ := c.Get(echomiddleware.DefaultCSRFConfig.ContextKey).(string)

	return response.Page(c, http.StatusOK, &response.PageBody{
		Page:      page,
		Notices:   notices,
		Form:      form,
		Data:      data,
		CSRFToken: token,
	})
}

func (p *Pages) redirect(c echo.Context, path string, category session.Category, message string) error {
	if err := p.sessions.AddNotice(c, category, message); err != nil {
		return err
	}

	return response.Redirect(c, path)
}

// fail sends the user back to path with a notice for err, keeping form for
// the next render. Unexpected errors are logged and shown generically.
func (p *Pages) fail(c echo.Context, err error, path string, form map[string]string) error {
	category, message, expected := response.Notice(err)
	if !expected {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), p.logger).Error("Request failed",
			slog.String("path", c.Request().URL.Path),
			slog.Any("error", err),
		)
	}

	if form != nil {
		if err := p.sessions.StashForm(c, path, form); err != nil {
			return err
		}
	}

	return p.redirect(c, path, category, message)
}

// bindForm binds and validates a submitted form.
func bindForm(c echo.Context, form any) error {
	if err := c.Bind(form); err != nil {
		return domainerrors.ErrInvalidInput.WithDetails("The form could not be read.")
	}

	return c.Validate(form)
}
