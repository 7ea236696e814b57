package repository

import (
	"errors"
	"fmt"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/tnqbao/gau-sequia-service/domain"
	"gorm.io/gorm"
)

// translateError maps storage failures onto the domain error kinds, keeping
// the original error in the chain.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: %w", domain.ErrIntegrity, err)
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %w", domain.ErrConflict, err)
	default:
		return err
	}
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		// 1451: parent row still referenced, 1452: child row points nowhere
		return myErr.Number == 1451 || myErr.Number == 1452
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		if liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
			return true
		}
		// ON DELETE RESTRICT is enforced as a trigger
		return liteErr.ExtendedCode == sqlite3.ErrConstraintTrigger &&
			strings.Contains(liteErr.Error(), "FOREIGN KEY constraint failed")
	}
	return false
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
