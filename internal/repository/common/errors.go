package common

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/lib/pq"

	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
)

// Коды PostgreSQL, которые различает классификатор.
const (
	pqUniqueViolation      = "23505"
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
	pqAdminShutdown        = "57P01"
	pqClassConnection      = "08"
)

// Classify переводит ошибку драйвера в таксономию apperror.
// Уже классифицированные ошибки возвращаются как есть.
func Classify(err error, op string) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.Wrap(err, apperror.ErrCodeTransient, apperror.ErrStorageTimeout.Message)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return apperror.Wrap(err, apperror.ErrCodeTransient, apperror.ErrStorageUnavailable.Message)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == pqUniqueViolation:
			return apperror.Wrap(err, apperror.ErrCodeConflict, "запись уже существует")
		case pqErr.Code == pqSerializationFailure, pqErr.Code == pqDeadlockDetected, pqErr.Code == pqAdminShutdown:
			return apperror.Wrap(err, apperror.ErrCodeTransient, apperror.ErrStorageUnavailable.Message)
		case string(pqErr.Code.Class()) == pqClassConnection:
			return apperror.Wrap(err, apperror.ErrCodeTransient, apperror.ErrStorageUnavailable.Message)
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return apperror.Wrap(err, apperror.ErrCodeTransient, apperror.ErrStorageUnavailable.Message)
	}

	return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "repository: "+op)
}

// IsUniqueViolation проверяет нарушение уникального индекса с заданным именем.
// Пустое имя совпадает с любым индексом.
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != pqUniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
