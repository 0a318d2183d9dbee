package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/erazemk/reviewit/internal/model"
)

const userColumns = `id, name, email, phone, password_hash, created_at`

// CreateUser creates a new user.
func CreateUser(ctx context.Context, db sqlx.ExtContext, name, email string, phone *string, passwordHash string) (*model.User, error) {
	id, err := insert(ctx, db,
		`INSERT INTO users (name, email, phone, password_hash) VALUES (?, ?, ?, ?)`,
		name, email, phone, passwordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return GetUser(ctx, db, id)
}

// GetUser returns a user by ID.
func GetUser(ctx context.Context, db sqlx.ExtContext, id int64) (*model.User, error) {
	u := &model.User{}
	err := get(ctx, db, u, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// GetUserByEmail returns a user by email address.
func GetUserByEmail(ctx context.Context, db sqlx.ExtContext, email string) (*model.User, error) {
	u := &model.User{}
	err := get(ctx, db, u, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return u, nil
}

// PhoneInUse reports whether any user registered with the given phone.
func PhoneInUse(ctx context.Context, db sqlx.ExtContext, phone string) (bool, error) {
	var count int
	if err := get(ctx, db, &count, `SELECT COUNT(*) FROM users WHERE phone = ?`, phone); err != nil {
		return false, fmt.Errorf("checking phone: %w", err)
	}
	return count > 0, nil
}

// UserNames resolves display names for the given user IDs.
func UserNames(ctx context.Context, db sqlx.ExtContext, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	query, args, err := in(db, `SELECT id, name FROM users WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("building user name query: %w", err)
	}

	var rows []struct {
		ID   int64  `db:"id"`
		Name string `db:"name"`
	}
	if err := sqlx.SelectContext(ctx, db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("listing user names: %w", err)
	}
	for _, r := range rows {
		names[r.ID] = r.Name
	}
	return names, nil
}
