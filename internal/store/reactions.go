package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/erazemk/reviewit/internal/model"
)

// GetReaction returns a user's reaction on a review, or nil if none exists.
func GetReaction(ctx context.Context, db sqlx.ExtContext, reviewID, userID int64) (*model.Reaction, error) {
	r := &model.Reaction{}
	err := get(ctx, db, r,
		`SELECT id, review_id, user_id, is_up FROM review_reactions WHERE review_id = ? AND user_id = ?`,
		reviewID, userID,
	)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting reaction: %w", err)
	}
	return r, nil
}

// CreateReaction adds a reaction. The (review, user) unique index rejects
// a second row for the same pair.
func CreateReaction(ctx context.Context, db sqlx.ExtContext, reviewID, userID int64, isUp bool) error {
	_, err := exec(ctx, db,
		`INSERT INTO review_reactions (review_id, user_id, is_up) VALUES (?, ?, ?)`,
		reviewID, userID, isUp,
	)
	if err != nil {
		return fmt.Errorf("creating reaction: %w", err)
	}
	return nil
}

// SetReactionDirection flips an existing reaction.
func SetReactionDirection(ctx context.Context, db sqlx.ExtContext, id int64, isUp bool) error {
	_, err := exec(ctx, db, `UPDATE review_reactions SET is_up = ? WHERE id = ?`, isUp, id)
	if err != nil {
		return fmt.Errorf("updating reaction: %w", err)
	}
	return nil
}

// DeleteReaction removes a reaction.
func DeleteReaction(ctx context.Context, db sqlx.ExtContext, id int64) error {
	_, err := exec(ctx, db, `DELETE FROM review_reactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting reaction: %w", err)
	}
	return nil
}

// CountReactions returns the thumbs up and down totals for a review.
func CountReactions(ctx context.Context, db sqlx.ExtContext, reviewID int64) (model.ReactionCounts, error) {
	var c model.ReactionCounts
	err := get(ctx, db, &c, `
		SELECT COALESCE(SUM(CASE WHEN is_up THEN 1 ELSE 0 END), 0) AS thumbs_up,
		       COALESCE(SUM(CASE WHEN is_up THEN 0 ELSE 1 END), 0) AS thumbs_down
		FROM review_reactions WHERE review_id = ?`, reviewID)
	if err != nil {
		return c, fmt.Errorf("counting reactions: %w", err)
	}
	return c, nil
}
