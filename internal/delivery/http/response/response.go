// Package response writes page models, redirects and JSON errors.
package response

import (
	"net/http"

	deliverycontext "shopfront/internal/delivery/context"
	"shopfront/internal/delivery/http/session"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/errors"

	"github.com/labstack/echo/v4"
)

// PageBody is the model of a GET page. The presentation layer renders it.
type PageBody struct {
	Page      string                 `json:"page"`
	Notices   []session.Notice       `json:"notices"`
	Form      map[string]string      `json:"form,omitempty"`
	Data      any                    `json:"data,omitempty"`
	CSRFToken string                 `json:"csrfToken,omitempty"`
	Meta      *domainerrors.MetaInfo `json:"meta"`
}

// Page writes a page model.
func Page(c echo.Context, statusCode int, body *PageBody) error {
	if body.Notices == nil {
		body.Notices = []session.Notice{}
	}
	body.Meta = &domainerrors.MetaInfo{RequestID: deliverycontext.GetRequestID(c)}

	return c.JSON(statusCode, body)
}

// Redirect answers a form post with 303 See Other.
func Redirect(c echo.Context, path string) error {
	return c.Redirect(http.StatusSeeOther, path)
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	// Details should not be included for 5xx errors or authentication/authorization errors
	if statusCode >= 500 || statusCode == 401 || statusCode == 403 {
		details = nil
	}

	return c.JSON(statusCode, domainerrors.ErrorResponse{
		Error: &domainerrors.ErrorInfo{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
		Meta: &domainerrors.MetaInfo{
			RequestID: deliverycontext.GetRequestID(c),
		},
	})
}

// Notice turns an error into the flash notice shown to the user. The boolean
// is false for unexpected errors, which get a generic text.
func Notice(err error) (session.Category, string, bool) {
	appErr, ok := domainerrors.AsAppError(err)
	if !ok || appErr.HTTPCode() >= http.StatusInternalServerError {
		return session.CategoryDanger, domainerrors.ErrInternalError.Message(), false
	}

	return categoryOf(err), noticeText(appErr), true
}

func categoryOf(err error) session.Category {
	switch {
	case errors.Is(err, domainerrors.ErrUnauthenticated):
		return session.CategoryInfo
	case errors.Is(err, domainerrors.ErrDuplicateIdentity),
		errors.Is(err, domainerrors.ErrNotFound),
		errors.Is(err, domainerrors.ErrForbidden):
		return session.CategoryWarning
	default:
		return session.CategoryDanger
	}
}

func noticeText(appErr domainerrors.AppError) string {
	switch {
	case appErr.Details() == "":
		return appErr.Message()
	case appErr.Message() == domainerrors.ErrInvalidInput.Message():
		return appErr.Details()
	default:
		return appErr.Message() + " " + appErr.Details()
	}
}
