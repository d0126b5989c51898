package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shopfront/config"
	"shopfront/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, refresh bool) *Manager {
	t.Helper()

	cfg := &config.Config{
		Session: &config.SessionConfig{
			CookieName:                 "sid",
			RememberCookieName:         "remember",
			RememberDuration:           time.Hour,
			RememberRefreshEachRequest: refresh,
		},
	}
	cfg.SecretKey.Session = "session-secret-for-tests"
	cfg.SecretKey.Remember = "remember-secret-for-tests"

	remember, err := auth.NewRememberTokenService(cfg)
	require.NoError(t, err)

	m, err := NewManager(cfg, remember)
	require.NoError(t, err)

	return m
}

// roundTrip runs fn on a request carrying cookies and returns the cookies it set.
func roundTrip(t *testing.T, cookies []*http.Cookie, fn func(c echo.Context)) []*http.Cookie {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	fn(echo.New().NewContext(req, rec))

	// Keep the last value per name, as a browser would.
	latest := map[string]*http.Cookie{}
	for _, cookie := range rec.Result().Cookies() {
		latest[cookie.Name] = cookie
	}
	merged := map[string]*http.Cookie{}
	for _, cookie := range cookies {
		merged[cookie.Name] = cookie
	}
	for name, cookie := range latest {
		if cookie.MaxAge < 0 {
			delete(merged, name)
			continue
		}
		merged[name] = cookie
	}

	out := make([]*http.Cookie, 0, len(merged))
	for _, cookie := range merged {
		out = append(out, &http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}

	return out
}

func TestNewManager_RequiresSecret(t *testing.T) {
	cfg := &config.Config{Session: &config.SessionConfig{}}
	_, err := NewManager(cfg, nil)
	assert.Error(t, err)
}

func TestManager_LoginAndLogout(t *testing.T) {
	m := newManager(t, false)
	accountID := uuid.New()

	cookies := roundTrip(t, nil, func(c echo.Context) {
		require.NoError(t, m.Login(c, accountID, false))
	})

	roundTrip(t, cookies, func(c echo.Context) {
		got, ok := m.AccountID(c)
		require.True(t, ok)
		assert.Equal(t, accountID, got)

		_, remembered := m.RememberedAccountID(c)
		assert.False(t, remembered)
	})

	cookies = roundTrip(t, cookies, func(c echo.Context) {
		require.NoError(t, m.Logout(c))
	})

	roundTrip(t, cookies, func(c echo.Context) {
		_, ok := m.AccountID(c)
		assert.False(t, ok)
	})
}

func TestManager_RememberCookieOutlivesSession(t *testing.T) {
	m := newManager(t, false)
	accountID := uuid.New()

	cookies := roundTrip(t, nil, func(c echo.Context) {
		require.NoError(t, m.Login(c, accountID, true))
	})

	// Drop the session cookie, as a browser restart would.
	var rememberOnly []*http.Cookie
	for _, cookie := range cookies {
		if cookie.Name == "remember" {
			rememberOnly = append(rememberOnly, cookie)
		}
	}
	require.Len(t, rememberOnly, 1)

	roundTrip(t, rememberOnly, func(c echo.Context) {
		_, ok := m.AccountID(c)
		assert.False(t, ok)

		got, ok := m.RememberedAccountID(c)
		require.True(t, ok)
		assert.Equal(t, accountID, got)
	})
}

func TestManager_TamperedRememberCookieIsCleared(t *testing.T) {
	m := newManager(t, false)

	cookies := roundTrip(t, []*http.Cookie{{Name: "remember", Value: "not-a-token"}}, func(c echo.Context) {
		_, ok := m.RememberedAccountID(c)
		assert.False(t, ok)
	})

	for _, cookie := range cookies {
		assert.NotEqual(t, "remember", cookie.Name)
	}
}

func TestManager_NoticesAreOneShot(t *testing.T) {
	m := newManager(t, false)

	cookies := roundTrip(t, nil, func(c echo.Context) {
		require.NoError(t, m.AddNotice(c, CategoryWarning, "careful"))
		require.NoError(t, m.AddNotice(c, CategorySuccess, "done"))
	})

	cookies = roundTrip(t, cookies, func(c echo.Context) {
		notices, err := m.PopNotices(c)
		require.NoError(t, err)
		assert.Equal(t, []Notice{
			{Category: CategorySuccess, Message: "done"},
			{Category: CategoryWarning, Message: "careful"},
		}, notices)
	})

	roundTrip(t, cookies, func(c echo.Context) {
		notices, err := m.PopNotices(c)
		require.NoError(t, err)
		assert.Empty(t, notices)
	})
}

func TestManager_FormStashBelongsToOnePage(t *testing.T) {
	m := newManager(t, false)

	cookies := roundTrip(t, nil, func(c echo.Context) {
		require.NoError(t, m.StashForm(c, "/register/viewer", map[string]string{"email": "a@x.com"}))
	})

	roundTrip(t, cookies, func(c echo.Context) {
		form, err := m.PopForm(c, "/register/viewer")
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", form["email"])
	})

	roundTrip(t, cookies, func(c echo.Context) {
		form, err := m.PopForm(c, "/login/viewer")
		require.NoError(t, err)
		assert.Nil(t, form)
	})
}
