// Package store contains the SQL queries for every entity. Functions take a
// sqlx.ExtContext so that they run against either a *sqlx.DB or a *sqlx.Tx.
// Queries are written with ? placeholders and rebound for the driver.
package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

func get(ctx context.Context, db sqlx.ExtContext, dest any, query string, args ...any) error {
	return sqlx.GetContext(ctx, db, dest, db.Rebind(query), args...)
}

func selectAll(ctx context.Context, db sqlx.ExtContext, dest any, query string, args ...any) error {
	return sqlx.SelectContext(ctx, db, dest, db.Rebind(query), args...)
}

func exec(ctx context.Context, db sqlx.ExtContext, query string, args ...any) (sql.Result, error) {
	return db.ExecContext(ctx, db.Rebind(query), args...)
}

// insert runs an INSERT and returns the new row's id.
func insert(ctx context.Context, db sqlx.ExtContext, query string, args ...any) (int64, error) {
	var id int64
	err := db.QueryRowxContext(ctx, db.Rebind(query+" RETURNING id"), args...).Scan(&id)
	return id, err
}

// in expands a query with an IN (?) clause for the given slice.
func in(db sqlx.ExtContext, query string, args ...any) (string, []any, error) {
	q, a, err := sqlx.In(query, args...)
	if err != nil {
		return "", nil, err
	}
	return db.Rebind(q), a, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
