package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/erazemk/reviewit/internal/model"
)

// CreateItem creates a new item.
func CreateItem(ctx context.Context, db sqlx.ExtContext, name string, description, imageURL *string, categoryID, userID int64) (*model.ItemDetail, error) {
	id, err := insert(ctx, db,
		`INSERT INTO items (name, description, image_url, category_id, created_by_user_id) VALUES (?, ?, ?, ?, ?)`,
		name, description, imageURL, categoryID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item with its category, creator and rating totals.
func GetItem(ctx context.Context, db sqlx.ExtContext, id int64) (*model.ItemDetail, error) {
	item := &model.ItemDetail{}
	err := get(ctx, db, item, `
		SELECT i.id, i.name, i.description, i.image_url, i.category_id, i.created_by_user_id, i.created_at,
		       c.name AS category_name, u.name AS created_by_user_name,
		       (SELECT COUNT(*) FROM reviews r WHERE r.item_id = i.id) AS review_count,
		       (SELECT COALESCE(SUM(r.stars), 0) FROM reviews r WHERE r.item_id = i.id) AS stars_total
		FROM items i
		JOIN categories c ON c.id = i.category_id
		JOIN users u ON u.id = i.created_by_user_id
		WHERE i.id = ?`, id)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	item.AverageStars = model.AverageStars(item.StarsTotal, item.ReviewCount)
	return item, nil
}

// ListItems returns all items matching the filter with rating totals and
// averages filled in. Ordering is left to the caller.
func ListItems(ctx context.Context, db sqlx.ExtContext, filter model.ItemFilter) ([]model.ItemSummary, error) {
	var (
		where []string
		args  []any
	)
	if filter.CategoryID != nil {
		where = append(where, `i.category_id = ?`)
		args = append(args, *filter.CategoryID)
	}

	query := `
		SELECT i.id, i.name, i.description, i.image_url, i.created_at,
		       c.name AS category_name,
		       COUNT(r.id) AS review_count,
		       COALESCE(SUM(r.stars), 0) AS stars_total
		FROM items i
		JOIN categories c ON c.id = i.category_id
		LEFT JOIN reviews r ON r.item_id = i.id`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` GROUP BY i.id, i.name, i.description, i.image_url, i.created_at, c.name`

	var items []model.ItemSummary
	if err := selectAll(ctx, db, &items, query, args...); err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(filter.Search))
	matched := items[:0]
	for _, it := range items {
		if needle != "" && !matchesSearch(it, needle) {
			continue
		}
		it.AverageStars = model.AverageStars(it.StarsTotal, it.ReviewCount)
		matched = append(matched, it)
	}
	return matched, nil
}

// matchesSearch folds in Go since SQLite's LOWER only handles ASCII.
func matchesSearch(it model.ItemSummary, needle string) bool {
	if strings.Contains(strings.ToLower(it.Name), needle) {
		return true
	}
	return it.Description != nil && strings.Contains(strings.ToLower(*it.Description), needle)
}

// NewestReviewContent returns the content of the most recent review for each
// of the given items. Items without reviews are absent from the map.
func NewestReviewContent(ctx context.Context, db sqlx.ExtContext, itemIDs []int64) (map[int64]string, error) {
	out := make(map[int64]string, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}

	query, args, err := in(db,
		`SELECT item_id, content FROM reviews WHERE item_id IN (?) ORDER BY created_at DESC, id DESC`,
		itemIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("building review content query: %w", err)
	}

	var rows []struct {
		ItemID  int64  `db:"item_id"`
		Content string `db:"content"`
	}
	if err := sqlx.SelectContext(ctx, db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("listing newest reviews: %w", err)
	}
	for _, r := range rows {
		if _, ok := out[r.ItemID]; !ok {
			out[r.ItemID] = r.Content
		}
	}
	return out, nil
}

// SetItemImage stores an image for an item and points image_url at it.
func SetItemImage(ctx context.Context, db sqlx.ExtContext, id int64, data []byte, mime, url string) error {
	_, err := exec(ctx, db,
		`UPDATE items SET image = ?, image_mime = ?, image_url = ? WHERE id = ?`,
		data, mime, url, id,
	)
	if err != nil {
		return fmt.Errorf("setting item image: %w", err)
	}
	return nil
}

// GetItemImage returns the stored image for an item. Data is nil when the
// item has no uploaded image.
func GetItemImage(ctx context.Context, db sqlx.ExtContext, id int64) ([]byte, string, error) {
	var row struct {
		Image []byte  `db:"image"`
		MIME  *string `db:"image_mime"`
	}
	err := get(ctx, db, &row, `SELECT image, image_mime FROM items WHERE id = ?`, id)
	if isNoRows(err) || (err == nil && (row.Image == nil || row.MIME == nil)) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item image: %w", err)
	}
	return row.Image, *row.MIME, nil
}
