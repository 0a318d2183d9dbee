package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/erazemk/reviewit/internal/model"
	"github.com/erazemk/reviewit/internal/store"
)

// ReviewService handles reviews and their comments.
type ReviewService struct {
	DB            *sqlx.DB
	Notifications *NotificationService
}

// ReviewQuery holds the listing parameters for an item's reviews. ViewerID
// is 0 for anonymous callers.
type ReviewQuery struct {
	ItemID   int64
	ViewerID int64
	Sort     string
	Page     int
	PageSize int
}

// List returns a sorted page of review cards for an item.
func (s *ReviewService) List(ctx context.Context, q ReviewQuery) ([]model.ReviewCard, error) {
	cards, err := store.ListReviewCards(ctx, s.DB, q.ItemID, q.ViewerID)
	if err != nil {
		return nil, err
	}
	model.SortReviews(cards, q.Sort)
	return model.Paginate(cards, q.Page, q.PageSize), nil
}

// Create posts a review on an item.
func (s *ReviewService) Create(ctx context.Context, userID, itemID int64, stars int, content string) (*model.ReviewCard, error) {
	if !model.ValidStars(stars) {
		return nil, ErrInvalidStars
	}

	item, err := store.GetItem(ctx, s.DB, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	review, err := store.CreateReview(ctx, s.DB, itemID, userID, stars, strings.TrimSpace(content))
	if err != nil {
		return nil, err
	}
	return store.GetReviewCard(ctx, s.DB, review.ID, userID)
}

// Comments lists the comments on a review, oldest first.
func (s *ReviewService) Comments(ctx context.Context, reviewID int64) ([]model.Comment, error) {
	return store.ListComments(ctx, s.DB, reviewID)
}

// Comment adds a comment to a review and notifies the review's author.
func (s *ReviewService) Comment(ctx context.Context, userID, reviewID int64, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, validation("Content is required.")
	}

	review, err := store.GetReview(ctx, s.DB, reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}

	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning comment: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	comment, err := store.CreateComment(ctx, tx, reviewID, userID, content)
	if err != nil {
		return nil, err
	}
	notification, err := s.Notifications.NotifyCommentOnReview(ctx, tx, review.UserID, userID, reviewID, comment.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing comment: %w", err)
	}
	s.Notifications.Publish(ctx, notification)
	return comment, nil
}
