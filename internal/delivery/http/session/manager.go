// Package session keeps the signed-in account, flash notices and the last
// rejected form in a gorilla/sessions cookie, next to a separate JWT
// "remember me" cookie.
package session

import (
	"encoding/json"
	"net/http"
	"time"

	"shopfront/config"
	"shopfront/internal/domain/service"
	"shopfront/internal/errors"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

// Category classifies a flash notice.
type Category string

const (
	CategorySuccess Category = "success"
	CategoryInfo    Category = "info"
	CategoryWarning Category = "warning"
	CategoryDanger  Category = "danger"
)

var categories = []Category{CategorySuccess, CategoryInfo, CategoryWarning, CategoryDanger}

const (
	keyAccountID = "account_id"
	keyForm      = "form"
	keyFormPage  = "form_page"
)

// Notice is a one-shot message shown on the next page.
type Notice struct {
	Category Category `json:"category"`
	Message  string   `json:"message"`
}

// Manager reads and writes the session of an echo request.
type Manager struct {
	store              *sessions.CookieStore
	name               string
	remember           service.RememberTokenService
	rememberCookie     string
	refreshEachRequest bool
	secure             bool
}

// NewManager signs the session cookie with secretKey.session.
func NewManager(cfg *config.Config, remember service.RememberTokenService) (*Manager, error) {
	if len(cfg.SecretKey.Session) < 16 {
		return nil, errors.New("secretKey.session must be at least 16 characters")
	}

	store := sessions.NewCookieStore([]byte(cfg.SecretKey.Session))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	// Browser-session cookie; persistence across restarts is the remember cookie's job.
	store.MaxAge(0)

	return &Manager{
		store:              store,
		name:               cfg.Session.CookieName,
		remember:           remember,
		rememberCookie:     cfg.Session.RememberCookieName,
		refreshEachRequest: cfg.Session.RememberRefreshEachRequest,
		secure:             cfg.Session.Secure,
	}, nil
}

// get never fails: an unreadable cookie yields a fresh session.
func (m *Manager) get(c echo.Context) *sessions.Session {
	sess, err := m.store.Get(c.Request(), m.name)
	if err != nil {
		sess, _ = m.store.New(c.Request(), m.name)
	}

	return sess
}

func (m *Manager) save(c echo.Context, sess *sessions.Session) error {
	return errors.Wrap(sess.Save(c.Request(), c.Response()), "failed to save session")
}

// AccountID returns the account signed in through the session cookie.
func (m *Manager) AccountID(c echo.Context) (uuid.UUID, bool) {
	raw, ok := m.get(c).Values[keyAccountID].(string)
	if !ok {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)

	return id, err == nil
}

// RememberedAccountID verifies the remember cookie.
func (m *Manager) RememberedAccountID(c echo.Context) (uuid.UUID, bool) {
	cookie, err := c.Cookie(m.rememberCookie)
	if err != nil || cookie.Value == "" {
		return uuid.Nil, false
	}

	id, err := m.remember.Verify(cookie.Value)
	if err != nil {
		m.clearRememberCookie(c)

		return uuid.Nil, false
	}

	return id, true
}

// Login binds the account to the session and, when asked, issues the
// remember cookie.
func (m *Manager) Login(c echo.Context, accountID uuid.UUID, remember bool) error {
	sess := m.get(c)
	delete(sess.Values, keyForm)
	delete(sess.Values, keyFormPage)
	sess.Values[keyAccountID] = accountID.String()
	if err := m.save(c, sess); err != nil {
		return err
	}

	if remember {
		return m.issueRememberCookie(c, accountID)
	}

	return nil
}

// Restore re-binds a remembered account to a new session cookie.
func (m *Manager) Restore(c echo.Context, accountID uuid.UUID) error {
	sess := m.get(c)
	sess.Values[keyAccountID] = accountID.String()

	return m.save(c, sess)
}

// Refresh extends the remember cookie when configured to do so on every request.
func (m *Manager) Refresh(c echo.Context, accountID uuid.UUID) error {
	if !m.refreshEachRequest {
		return nil
	}
	if _, err := c.Cookie(m.rememberCookie); err != nil {
		return nil
	}

	return m.issueRememberCookie(c, accountID)
}

// Logout forgets the account and deletes the remember cookie. Pending
// notices survive so the next page can still show them.
func (m *Manager) Logout(c echo.Context) error {
	sess := m.get(c)
	delete(sess.Values, keyAccountID)
	delete(sess.Values, keyForm)
	delete(sess.Values, keyFormPage)
	m.clearRememberCookie(c)

	return m.save(c, sess)
}

func (m *Manager) issueRememberCookie(c echo.Context, accountID uuid.UUID) error {
	token, expiresAt, err := m.remember.Issue(accountID)
	if err != nil {
		return errors.Wrap(err, "failed to issue remember token")
	}

	c.SetCookie(&http.Cookie{
		Name:     m.rememberCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

func (m *Manager) clearRememberCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     m.rememberCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// AddNotice queues a flash notice for the next page.
func (m *Manager) AddNotice(c echo.Context, category Category, message string) error {
	sess := m.get(c)
	sess.AddFlash(message, string(category))

	return m.save(c, sess)
}

// PopNotices returns and clears the queued notices, grouped by category.
func (m *Manager) PopNotices(c echo.Context) ([]Notice, error) {
	sess := m.get(c)

	var notices []Notice
	for _, category := range categories {
		for _, flash := range sess.Flashes(string(category)) {
			if message, ok := flash.(string); ok {
				notices = append(notices, Notice{Category: category, Message: message})
			}
		}
	}
	if len(notices) == 0 {
		return nil, nil
	}

	return notices, m.save(c, sess)
}

// StashForm keeps the submitted fields of a rejected form for the page that
// redisplays it. Secret fields must be left out by the caller.
func (m *Manager) StashForm(c echo.Context, page string, form map[string]string) error {
	encoded, err := json.Marshal(form)
	if err != nil {
		return errors.Wrap(err, "failed to encode form")
	}

	sess := m.get(c)
	sess.Values[keyForm] = string(encoded)
	sess.Values[keyFormPage] = page

	return m.save(c, sess)
}

// PopForm returns the stashed form if it belongs to page, and clears it.
func (m *Manager) PopForm(c echo.Context, page string) (map[string]string, error) {
	sess := m.get(c)
	raw, ok := sess.Values[keyForm].(string)
	if !ok {
		return nil, nil
	}
	owner, _ := sess.Values[keyFormPage].(string)

	delete(sess.Values, keyForm)
	delete(sess.Values, keyFormPage)
	if err := m.save(c, sess); err != nil {
		return nil, err
	}
	if owner != page {
		return nil, nil
	}

	form := map[string]string{}
	if err := json.Unmarshal([]byte(raw), &form); err != nil {
		return nil, nil
	}

	return form, nil
}
