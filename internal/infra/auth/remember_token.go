package auth

import (
	"time"

	"shopfront/config"
	"shopfront/internal/domain/service"
	"shopfront/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const rememberTokenType = "remember"

// ErrInvalidRememberToken covers malformed, tampered and expired tokens.
var ErrInvalidRememberToken = errors.New("invalid remember token")

type rememberClaims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

type rememberTokenService struct {
	secret   []byte
	issuer   string
	duration time.Duration
	now      func() time.Time
}

// NewRememberTokenService signs remember-me tokens with secretKey.remember
// for session.rememberDuration.
func NewRememberTokenService(cfg *config.Config) (service.RememberTokenService, error) {
	if cfg.SecretKey.Remember == "" {
		return nil, errors.New("remember token secret must be provided")
	}
	if cfg.Session == nil || cfg.Session.RememberDuration <= 0 {
		return nil, errors.New("remember duration must be positive")
	}

	return &rememberTokenService{
		secret:   []byte(cfg.SecretKey.Remember),
		issuer:   cfg.Env.ServiceName,
		duration: cfg.Session.RememberDuration,
		now:      time.Now,
	}, nil
}

func (s *rememberTokenService) Issue(accountID uuid.UUID) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.duration)
	claims := rememberClaims{
		Type: rememberTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "sign remember token")
	}

	return signed, expiresAt, nil
}

func (s *rememberTokenService) Verify(token string) (uuid.UUID, error) {
	claims := &rememberClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return uuid.Nil, errors.Join(ErrInvalidRememberToken, err)
	}
	if claims.Type != rememberTokenType {
		return uuid.Nil, ErrInvalidRememberToken
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errors.Join(ErrInvalidRememberToken, err)
	}

	return accountID, nil
}

func (s *rememberTokenService) Duration() time.Duration {
	return s.duration
}
