package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/erazemk/reviewit/internal/model"
)

const categoryQuery = `
SELECT c.id, c.name, c.slug, c.icon,
       (SELECT COUNT(*) FROM items i WHERE i.category_id = c.id) AS item_count
FROM categories c`

// ListCategories returns all categories with their item counts.
func ListCategories(ctx context.Context, db sqlx.ExtContext) ([]model.Category, error) {
	var categories []model.Category
	if err := selectAll(ctx, db, &categories, categoryQuery+` ORDER BY c.id`); err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return categories, nil
}

// GetCategory returns a category by ID.
func GetCategory(ctx context.Context, db sqlx.ExtContext, id int64) (*model.Category, error) {
	c := &model.Category{}
	err := get(ctx, db, c, categoryQuery+` WHERE c.id = ?`, id)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting category: %w", err)
	}
	return c, nil
}

// CreateCategory creates a new category.
func CreateCategory(ctx context.Context, db sqlx.ExtContext, name, slug string, icon *string) (*model.Category, error) {
	id, err := insert(ctx, db,
		`INSERT INTO categories (name, slug, icon) VALUES (?, ?, ?)`,
		name, slug, icon,
	)
	if err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}
	return GetCategory(ctx, db, id)
}
