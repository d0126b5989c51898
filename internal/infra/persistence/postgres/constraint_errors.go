package postgres

import (
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// Names of constraints created by the migration.
const (
	constraintAccountsEmail         = "uq_accounts_email"
	constraintShopProfilesAccountID = "uq_shop_profiles_account_id"
)

func pgErrorCode(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}

	return "", ""
}

// isUniqueConstraintViolation also reports the violated constraint name when
// the driver exposes it.
func isUniqueConstraintViolation(err error) (bool, string) {
	if code, constraint := pgErrorCode(err); code == pgUniqueViolation {
		return true, constraint
	}

	return errors.Is(err, gorm.ErrDuplicatedKey), ""
}

func isForeignKeyConstraintViolation(err error) bool {
	if code, _ := pgErrorCode(err); code == pgForeignKeyViolation {
		return true
	}

	return errors.Is(err, gorm.ErrForeignKeyViolated)
}

func isNotNullConstraintViolation(err error) bool {
	code, _ := pgErrorCode(err)

	return code == pgNotNullViolation
}

func isCheckConstraintViolation(err error) bool {
	if code, _ := pgErrorCode(err); code == pgCheckViolation {
		return true
	}

	return errors.Is(err, gorm.ErrCheckConstraintViolated)
}
