package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ecommerce/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Save evaluates the result of a create, update or delete statement. gorm
// commits each statement in its own transaction, so the outcome is final here:
// true iff at least one row was affected. Constraint violations are ordinary
// failures (false, nil); any other store error is a persistence failure.
func Save(op string, res *gorm.DB) (bool, error) {
	if res.Error == nil {
		return res.RowsAffected > 0, nil
	}
	if isConstraintViolation(res.Error) {
		return false, nil
	}
	return false, persistenceError(op, res.Error)
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", models.ErrPersistenceFailure, op, err)
}

func exists(ctx context.Context, db *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func isConstraintViolation(err error) bool {
	return isUniqueViolation(err) || isForeignKeyViolation(err) || isCheckViolation(err)
}

// isUniqueViolation covers gorm's translated error, postgres 23505 and sqlite.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return hasPgCode(err, "23505") || strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return hasPgCode(err, "23503") || strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isCheckViolation(err error) bool {
	return hasPgCode(err, "23514") || strings.Contains(err.Error(), "CHECK constraint failed")
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
