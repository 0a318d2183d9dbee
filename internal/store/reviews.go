package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/erazemk/reviewit/internal/model"
)

// reviewCardQuery selects review cards with counts. The first argument is
// the viewing user's ID (0 when anonymous).
const reviewCardQuery = `
SELECT r.id, r.item_id, r.user_id, u.name AS user_name, r.stars, r.content, r.created_at,
       (SELECT COUNT(*) FROM review_reactions x WHERE x.review_id = r.id AND x.is_up) AS thumbs_up,
       (SELECT COUNT(*) FROM review_reactions x WHERE x.review_id = r.id AND NOT x.is_up) AS thumbs_down,
       (SELECT COUNT(*) FROM comments c WHERE c.review_id = r.id) AS comment_count,
       (SELECT CASE WHEN x.is_up THEN 1 ELSE -1 END
          FROM review_reactions x WHERE x.review_id = r.id AND x.user_id = ?) AS current_user_reaction
FROM reviews r
JOIN users u ON u.id = r.user_id`

// CreateReview creates a new review.
func CreateReview(ctx context.Context, db sqlx.ExtContext, itemID, userID int64, stars int, content string) (*model.Review, error) {
	id, err := insert(ctx, db,
		`INSERT INTO reviews (item_id, user_id, stars, content) VALUES (?, ?, ?, ?)`,
		itemID, userID, stars, content,
	)
	if err != nil {
		return nil, fmt.Errorf("creating review: %w", err)
	}

	return GetReview(ctx, db, id)
}

// GetReview returns a review by ID.
func GetReview(ctx context.Context, db sqlx.ExtContext, id int64) (*model.Review, error) {
	r := &model.Review{}
	err := get(ctx, db, r,
		`SELECT id, item_id, user_id, stars, content, created_at FROM reviews WHERE id = ?`, id)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting review: %w", err)
	}
	return r, nil
}

// GetReviewCard returns a single review card as seen by viewerID.
func GetReviewCard(ctx context.Context, db sqlx.ExtContext, id, viewerID int64) (*model.ReviewCard, error) {
	card := &model.ReviewCard{}
	err := get(ctx, db, card, reviewCardQuery+` WHERE r.id = ?`, viewerID, id)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting review card: %w", err)
	}
	return card, nil
}

// ListReviewCards returns the review cards of an item in insertion order.
func ListReviewCards(ctx context.Context, db sqlx.ExtContext, itemID, viewerID int64) ([]model.ReviewCard, error) {
	var cards []model.ReviewCard
	if err := selectAll(ctx, db, &cards, reviewCardQuery+` WHERE r.item_id = ? ORDER BY r.id`, viewerID, itemID); err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}
	return cards, nil
}

// ReviewItemIDs maps review IDs to the items they belong to.
func ReviewItemIDs(ctx context.Context, db sqlx.ExtContext, reviewIDs []int64) (map[int64]int64, error) {
	out := make(map[int64]int64, len(reviewIDs))
	if len(reviewIDs) == 0 {
		return out, nil
	}

	query, args, err := in(db, `SELECT id, item_id FROM reviews WHERE id IN (?)`, reviewIDs)
	if err != nil {
		return nil, fmt.Errorf("building review item query: %w", err)
	}

	var rows []struct {
		ID     int64 `db:"id"`
		ItemID int64 `db:"item_id"`
	}
	if err := sqlx.SelectContext(ctx, db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("listing review items: %w", err)
	}
	for _, r := range rows {
		out[r.ID] = r.ItemID
	}
	return out, nil
}
