package postgres

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueConstraintViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: constraintAccountsEmail}

	ok, constraint := isUniqueConstraintViolation(fmt.Errorf("insert: %w", pgErr))
	assert.True(t, ok)
	assert.Equal(t, constraintAccountsEmail, constraint)

	ok, constraint = isUniqueConstraintViolation(errors.Wrap(gorm.ErrDuplicatedKey, "create"))
	assert.True(t, ok)
	assert.Empty(t, constraint)

	ok, _ = isUniqueConstraintViolation(&pgconn.PgError{Code: pgForeignKeyViolation})
	assert.False(t, ok)
}

func TestOtherConstraintViolations(t *testing.T) {
	assert.True(t, isForeignKeyConstraintViolation(&pgconn.PgError{Code: pgForeignKeyViolation}))
	assert.True(t, isForeignKeyConstraintViolation(gorm.ErrForeignKeyViolated))
	assert.True(t, isNotNullConstraintViolation(&pgconn.PgError{Code: pgNotNullViolation}))
	assert.True(t, isCheckConstraintViolation(&pgconn.PgError{Code: pgCheckViolation}))
	assert.True(t, isCheckConstraintViolation(gorm.ErrCheckConstraintViolated))

	plain := errors.New("connection refused")
	assert.False(t, isForeignKeyConstraintViolation(plain))
	assert.False(t, isNotNullConstraintViolation(plain))
	assert.False(t, isCheckConstraintViolation(plain))
}
