package common

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// GetByID читает одну строку таблицы по первичному ключу.
// q может быть как *sqlx.DB, так и *sqlx.Tx.
func GetByID[T any](ctx context.Context, q sqlx.QueryerContext, table string, id interface{}, notFoundErr error) (*T, error) {
	return GetByField[T](ctx, q, table, "id", id, notFoundErr)
}

// GetByField читает одну строку по значению поля. sql.ErrNoRows
// заменяется на notFoundErr, остальные ошибки проходят через Classify.
func GetByField[T any](ctx context.Context, q sqlx.QueryerContext, table, field string, value interface{}, notFoundErr error) (*T, error) {
	var row T
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = $1", table, field)

	if err := sqlx.GetContext(ctx, q, &row, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFoundErr
		}
		return nil, Classify(err, fmt.Sprintf("get %s by %s", table, field))
	}

	return &row, nil
}

// WithTransaction выполняет fn в транзакции. Ошибка fn или паника
// откатывают транзакцию, ошибка коммита классифицируется.
func WithTransaction(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return Classify(err, "begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return Classify(err, "commit transaction")
	}
	return nil
}
