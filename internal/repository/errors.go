package repository

import (
	"errors"
	"fmt"
	"strings"

	domainRepo "salon-booking/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// isUniqueViolation recognises unique index failures from postgres and sqlite,
// with or without gorm error translation enabled.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func translateWriteError(err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", domainRepo.ErrUniqueViolation, err)
	}
	return err
}
