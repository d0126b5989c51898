package auth

import (
	"testing"
	"time"

	"shopfront/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRememberConfig(secret string, duration time.Duration) *config.Config {
	cfg := &config.Config{Session: &config.SessionConfig{RememberDuration: duration}}
	cfg.SecretKey.Remember = secret
	cfg.Env.ServiceName = "shopfront-test"

	return cfg
}

func TestRememberTokenService_RoundTrip(t *testing.T) {
	svc, err := NewRememberTokenService(newRememberConfig("test_remember_secret", 24*time.Hour))
	require.NoError(t, err)

	accountID := uuid.New()
	token, expiresAt, err := svc.Issue(accountID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, accountID, got)
	assert.Equal(t, 24*time.Hour, svc.Duration())
}

func TestRememberTokenService_RejectsTamperedAndForeignTokens(t *testing.T) {
	svc, err := NewRememberTokenService(newRememberConfig("test_remember_secret", time.Hour))
	require.NoError(t, err)
	other, err := NewRememberTokenService(newRememberConfig("another_secret", time.Hour))
	require.NoError(t, err)

	token, _, err := other.Issue(uuid.New())
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidRememberToken)

	_, err = svc.Verify("clearly-not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidRememberToken)
}

func TestRememberTokenService_RejectsExpiredToken(t *testing.T) {
	svc, err := NewRememberTokenService(newRememberConfig("test_remember_secret", time.Hour))
	require.NoError(t, err)

	impl, ok := svc.(*rememberTokenService)
	require.True(t, ok)
	impl.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := impl.Issue(uuid.New())
	require.NoError(t, err)
	impl.now = time.Now

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidRememberToken)
}

func TestRememberTokenService_RejectsOtherTokenTypes(t *testing.T) {
	svc, err := NewRememberTokenService(newRememberConfig("test_remember_secret", time.Hour))
	require.NoError(t, err)

	claims := rememberClaims{
		Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test_remember_secret"))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidRememberToken)
}

func TestNewRememberTokenService_RequiresSecret(t *testing.T) {
	_, err := NewRememberTokenService(newRememberConfig("", time.Hour))
	assert.Error(t, err)

	_, err = NewRememberTokenService(newRememberConfig("secret", 0))
	assert.Error(t, err)
}
