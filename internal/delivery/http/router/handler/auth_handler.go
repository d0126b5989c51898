package handler

import (
	"strings"
	"time"

	deliverycontext "shopfront/internal/delivery/context"
	"shopfront/internal/delivery/http/middleware"
	"shopfront/internal/delivery/http/session"
	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/errors"
	"shopfront/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	forgotPasswordPath = "/forgotpassword"
	registerViewerPath = "/register/viewer"
	registerSellerPath = "/register/admin"

	invalidLoginMessage = "Invalid email or password."
)

type loginForm struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
	Remember string `form:"remember"`
}

// AccountForm holds the fields both registration forms share. It is exported
// so the binder can fill it when embedded.
type AccountForm struct {
	Email           string `form:"email" validate:"required,email,max=120"`
	Password        string `form:"password" validate:"required"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
	FirstName       string `form:"first_name" validate:"required,max=50"`
	LastName        string `form:"last_name" validate:"required,max=50"`
	Address         string `form:"address" validate:"required,max=255"`
	Phone           string `form:"phone" validate:"required,phone"`
}

type viewerForm struct {
	AccountForm
	Birthday string `form:"birthday" validate:"required,datetime=2006-01-02"`
}

type sellerForm struct {
	AccountForm
	ShopName string `form:"shopname" validate:"required,max=100"`
}

type forgotPasswordForm struct {
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

// AuthHandler serves login, registration, logout and password reset.
type AuthHandler struct {
	pages    *Pages
	sessions *session.Manager
	accounts usecase.AccountUsecase
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(pages *Pages, sessions *session.Manager, accounts usecase.AccountUsecase) *AuthHandler {
	return &AuthHandler{pages: pages, sessions: sessions, accounts: accounts}
}

// LoginPage shows the login form of one role.
func (h *AuthHandler) LoginPage(role entity.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h.pages.render(c, "login/"+role.String(), nil, nil)
	}
}

// Login signs in an account of the given role. Unknown emails, accounts of
// the other role and wrong passwords get the same notice.
func (h *AuthHandler) Login(role entity.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		back := middleware.LoginPath(role)

		form := new(loginForm)
		if err := bindForm(c, form); err != nil {
			return h.pages.fail(c, err, back, map[string]string{"email": form.Email})
		}

		principal, err := h.accounts.Login(c.Request().Context(), &usecase.LoginInput{
			Role:     role,
			Email:    strings.TrimSpace(form.Email),
			Password: form.Password,
		})
		if errors.IsAny(err, domainerrors.ErrNotFound, domainerrors.ErrInvalidCredential) {
			if err := h.sessions.StashForm(c, back, map[string]string{"email": form.Email}); err != nil {
				return err
			}

			return h.pages.redirect(c, back, session.CategoryDanger, invalidLoginMessage)
		}
		if err != nil {
			return h.pages.fail(c, err, back, map[string]string{"email": form.Email})
		}

		if err := h.sessions.Login(c, principal.AccountID(), form.Remember != ""); err != nil {
			return err
		}
		deliverycontext.SetPrincipal(c, principal)

		message := "Login successful!"
		if role == entity.RoleAdmin {
			message = "Seller login successful!"
		}

		return h.pages.redirect(c, middleware.DashboardPath(role), session.CategorySuccess, message)
	}
}

// RegisterViewerPage shows the viewer registration form.
func (h *AuthHandler) RegisterViewerPage(c echo.Context) error {
	return h.pages.render(c, "register/viewer", nil, nil)
}

// RegisterViewer creates a viewer account.
func (h *AuthHandler) RegisterViewer(c echo.Context) error {
	form := new(viewerForm)
	if err := bindForm(c, form); err != nil {
		return h.pages.fail(c, err, registerViewerPath, form.keep())
	}

	input := form.AccountForm.input()
	birthday, _ := time.Parse(time.DateOnly, form.Birthday)
	input.Birthday = &birthday

	if _, err := h.accounts.RegisterViewer(c.Request().Context(), input); err != nil {
		return h.registrationFailed(c, err, entity.RoleViewer, registerViewerPath, form.keep())
	}

	return h.pages.redirect(c, middleware.LoginPath(entity.RoleViewer), session.CategorySuccess,
		"Registration successful! Please log in.")
}

// RegisterSellerPage shows the seller registration form.
func (h *AuthHandler) RegisterSellerPage(c echo.Context) error {
	return h.pages.render(c, "register/admin", nil, nil)
}

// RegisterSeller creates an admin account together with its shop profile.
func (h *AuthHandler) RegisterSeller(c echo.Context) error {
	form := new(sellerForm)
	if err := bindForm(c, form); err != nil {
		return h.pages.fail(c, err, registerSellerPath, form.keep())
	}

	input := &usecase.RegisterSellerInput{
		RegisterAccountInput: *form.AccountForm.input(),
		ShopName:             strings.TrimSpace(form.ShopName),
	}
	if _, err := h.accounts.RegisterSeller(c.Request().Context(), input); err != nil {
		return h.registrationFailed(c, err, entity.RoleAdmin, registerSellerPath, form.keep())
	}

	return h.pages.redirect(c, middleware.LoginPath(entity.RoleAdmin), session.CategorySuccess,
		"Seller registration successful! Please log in.")
}

// registrationFailed sends a taken email to the login page and anything else
// back to the form.
func (h *AuthHandler) registrationFailed(c echo.Context, err error, role entity.Role, back string, form map[string]string) error {
	if errors.Is(err, domainerrors.ErrDuplicateIdentity) {
		return h.pages.redirect(c, middleware.LoginPath(role), session.CategoryWarning,
			"Email already exists. Please log in instead.")
	}

	return h.pages.fail(c, err, back, form)
}

// Logout ends the session and forgets the remember cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Logout(c); err != nil {
		return err
	}

	return h.pages.redirect(c, "/", session.CategoryInfo, "You have been logged out.")
}

// ForgotPasswordPage shows the reset form.
func (h *AuthHandler) ForgotPasswordPage(c echo.Context) error {
	return h.pages.render(c, "forgotpassword", nil, nil)
}

// ForgotPassword replaces the password of the account with the given email.
// Knowing the email is enough.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	form := new(forgotPasswordForm)
	if err := c.Bind(form); err != nil {
		return h.pages.fail(c, domainerrors.ErrInvalidInput.WithDetails("The form could not be read."), forgotPasswordPath, nil)
	}
	keep := map[string]string{"email": form.Email}

	err := h.accounts.ResetPassword(c.Request().Context(), &usecase.ResetPasswordInput{
		Email:           strings.TrimSpace(form.Email),
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
	})
	if err != nil {
		return h.pages.fail(c, err, forgotPasswordPath, keep)
	}

	return h.pages.redirect(c, middleware.LoginPath(entity.RoleViewer), session.CategorySuccess,
		"Password successfully updated! Please log in.")
}

func (f *AccountForm) input() *usecase.RegisterAccountInput {
	address := strings.TrimSpace(f.Address)

	return &usecase.RegisterAccountInput{
		Email:           strings.TrimSpace(f.Email),
		Password:        f.Password,
		ConfirmPassword: f.ConfirmPassword,
		FirstName:       strings.TrimSpace(f.FirstName),
		LastName:        strings.TrimSpace(f.LastName),
		Address:         &address,
		Phone:           strings.TrimSpace(f.Phone),
	}
}

// keep returns the fields worth refilling; passwords are never stashed.
func (f *AccountForm) keep() map[string]string {
	return map[string]string{
		"email":      f.Email,
		"first_name": f.FirstName,
		"last_name":  f.LastName,
		"address":    f.Address,
		"phone":      f.Phone,
	}
}

func (f *viewerForm) keep() map[string]string {
	form := f.AccountForm.keep()
	form["birthday"] = f.Birthday

	return form
}

func (f *sellerForm) keep() map[string]string {
	form := f.AccountForm.keep()
	form["shopname"] = f.ShopName

	return form
}
