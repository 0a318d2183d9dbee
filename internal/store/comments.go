package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/erazemk/reviewit/internal/model"
)

const commentQuery = `
SELECT c.id, c.review_id, c.user_id, u.name AS user_name, c.content, c.created_at
FROM comments c
JOIN users u ON u.id = c.user_id`

// CreateComment creates a comment on a review.
func CreateComment(ctx context.Context, db sqlx.ExtContext, reviewID, userID int64, content string) (*model.Comment, error) {
	id, err := insert(ctx, db,
		`INSERT INTO comments (review_id, user_id, content) VALUES (?, ?, ?)`,
		reviewID, userID, content,
	)
	if err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	return GetComment(ctx, db, id)
}

// GetComment returns a comment by ID.
func GetComment(ctx context.Context, db sqlx.ExtContext, id int64) (*model.Comment, error) {
	c := &model.Comment{}
	err := get(ctx, db, c, commentQuery+` WHERE c.id = ?`, id)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting comment: %w", err)
	}
	return c, nil
}

// ListComments returns a review's comments, oldest first.
func ListComments(ctx context.Context, db sqlx.ExtContext, reviewID int64) ([]model.Comment, error) {
	var comments []model.Comment
	err := selectAll(ctx, db, &comments, commentQuery+` WHERE c.review_id = ? ORDER BY c.created_at, c.id`, reviewID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return comments, nil
}
