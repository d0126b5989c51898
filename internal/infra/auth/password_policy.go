package auth

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"shopfront/config"
	domainerrors "shopfront/internal/domain/errors"
)

// bcryptMaxPasswordBytes is the longest input bcrypt accepts.
const bcryptMaxPasswordBytes = 72

// PasswordPolicy checks new passwords against passwordStrength. The zero
// value only enforces a non-empty password within bcrypt's input limit.
type PasswordPolicy struct {
	cfg config.PasswordStrengthConfig
}

// NewPasswordPolicy reads the passwordStrength section, which may be absent.
func NewPasswordPolicy(cfg *config.Config) *PasswordPolicy {
	policy := &PasswordPolicy{}
	if cfg != nil && cfg.PasswordStrength != nil {
		policy.cfg = *cfg.PasswordStrength
	}

	return policy
}

// Validate returns ErrPasswordStrength with the first unmet rule as details.
func (p *PasswordPolicy) Validate(password string) error {
	if password == "" {
		return domainerrors.ErrPasswordStrength.WithDetails("Password is required.")
	}
	if len(password) > bcryptMaxPasswordBytes {
		return domainerrors.ErrPasswordStrength.WithDetails("Password must be at most 72 bytes long.")
	}

	length := utf8.RuneCountInString(password)
	switch {
	case p.cfg.MinLength > 0 && length < p.cfg.MinLength:
		return domainerrors.ErrPasswordStrength.WithDetails("Password is too short.")
	case p.cfg.MaxLength > 0 && length > p.cfg.MaxLength:
		return domainerrors.ErrPasswordStrength.WithDetails("Password is too long.")
	case p.cfg.RequireUppercase && !strings.ContainsFunc(password, unicode.IsUpper):
		return domainerrors.ErrPasswordStrength.WithDetails("Password must contain an uppercase letter.")
	case p.cfg.RequireLowercase && !strings.ContainsFunc(password, unicode.IsLower):
		return domainerrors.ErrPasswordStrength.WithDetails("Password must contain a lowercase letter.")
	case p.cfg.RequireNumbers && !strings.ContainsFunc(password, unicode.IsDigit):
		return domainerrors.ErrPasswordStrength.WithDetails("Password must contain a number.")
	case p.cfg.RequireSpecial && !strings.ContainsFunc(password, isSpecial):
		return domainerrors.ErrPasswordStrength.WithDetails("Password must contain a special character.")
	}

	return nil
}

func isSpecial(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
