package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/erazemk/reviewit/internal/metrics"
	"github.com/erazemk/reviewit/internal/model"
	"github.com/erazemk/reviewit/internal/store"
)

// ReactionAction is what a toggle does to the stored reaction.
type ReactionAction int

// Reaction actions.
const (
	ReactionCreate ReactionAction = iota + 1
	ReactionRemove
	ReactionFlip
)

func (a ReactionAction) String() string {
	switch a {
	case ReactionCreate:
		return "create"
	case ReactionRemove:
		return "remove"
	case ReactionFlip:
		return "flip"
	}
	return "unknown"
}

// NextReaction decides what a toggle does given the user's existing
// reaction (nil when none) and the requested direction. Every action except
// ReactionRemove notifies the review's author.
func NextReaction(existing *bool, isUp bool) ReactionAction {
	switch {
	case existing == nil:
		return ReactionCreate
	case *existing == isUp:
		return ReactionRemove
	default:
		return ReactionFlip
	}
}

// ReactionService toggles thumbs on reviews.
type ReactionService struct {
	DB            *sqlx.DB
	Notifications *NotificationService
}

// Toggle applies the user's reaction to a review and returns the new counts.
// The reaction change and its notification commit together.
func (s *ReactionService) Toggle(ctx context.Context, userID, reviewID int64, isUp bool) (model.ReactionCounts, error) {
	var counts model.ReactionCounts

	review, err := store.GetReview(ctx, s.DB, reviewID)
	if err != nil {
		return counts, err
	}
	if review == nil {
		return counts, ErrReviewNotFound
	}

	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return counts, fmt.Errorf("beginning reaction toggle: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := store.GetReaction(ctx, tx, reviewID, userID)
	if err != nil {
		return counts, err
	}

	var current *bool
	if existing != nil {
		current = &existing.IsUp
	}
	action := NextReaction(current, isUp)

	switch action {
	case ReactionCreate:
		err = store.CreateReaction(ctx, tx, reviewID, userID, isUp)
	case ReactionRemove:
		err = store.DeleteReaction(ctx, tx, existing.ID)
	case ReactionFlip:
		err = store.SetReactionDirection(ctx, tx, existing.ID, isUp)
	}
	if err != nil {
		return counts, err
	}

	var notification *model.Notification
	if action != ReactionRemove {
		if isUp {
			notification, err = s.Notifications.NotifyThumbUp(ctx, tx, review.UserID, userID, reviewID)
		} else {
			notification, err = s.Notifications.NotifyThumbDown(ctx, tx, review.UserID, userID, reviewID)
		}
		if err != nil {
			return counts, err
		}
	}

	counts, err = store.CountReactions(ctx, tx, reviewID)
	if err != nil {
		return counts, err
	}
	counts.Removed = action == ReactionRemove

	if err := tx.Commit(); err != nil {
		return counts, fmt.Errorf("committing reaction toggle: %w", err)
	}
	metrics.ReactionTransitions.WithLabelValues(action.String()).Inc()
	s.Notifications.Publish(ctx, notification)

	slog.Info("reaction toggled", "review_id", reviewID, "user_id", userID, "action", action.String())
	return counts, nil
}
