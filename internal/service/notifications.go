package service

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/erazemk/reviewit/internal/metrics"
	"github.com/erazemk/reviewit/internal/model"
	"github.com/erazemk/reviewit/internal/store"
)

// Publisher is told about every stored notification so it can be pushed to
// connected clients.
type Publisher interface {
	PublishNotification(recipientID int64, n model.NotificationView)
}

// NotificationService turns interactions into notification rows and serves
// the recipient's notification list.
type NotificationService struct {
	DB        *sqlx.DB
	Publisher Publisher
}

// NotifyCommentOnReview stores a notification telling a review's author
// about a new comment. Call it with the transaction that creates the comment
// and Publish the result after commit.
func (s *NotificationService) NotifyCommentOnReview(ctx context.Context, db sqlx.ExtContext, reviewAuthorID, fromUserID, reviewID, commentID int64) (*model.Notification, error) {
	return s.notify(ctx, db, model.CommentOnReview(reviewAuthorID, fromUserID, reviewID, commentID))
}

// NotifyThumbUp stores a notification about an upvote.
func (s *NotificationService) NotifyThumbUp(ctx context.Context, db sqlx.ExtContext, reviewAuthorID, fromUserID, reviewID int64) (*model.Notification, error) {
	return s.notify(ctx, db, model.ThumbUp(reviewAuthorID, fromUserID, reviewID))
}

// NotifyThumbDown stores a notification about a downvote.
func (s *NotificationService) NotifyThumbDown(ctx context.Context, db sqlx.ExtContext, reviewAuthorID, fromUserID, reviewID int64) (*model.Notification, error) {
	return s.notify(ctx, db, model.ThumbDown(reviewAuthorID, fromUserID, reviewID))
}

// notify stores n unless the recipient triggered it themselves, in which
// case it returns nil.
func (s *NotificationService) notify(ctx context.Context, db sqlx.ExtContext, n model.Notification) (*model.Notification, error) {
	if n.FromUserID != nil && *n.FromUserID == n.UserID {
		metrics.NotificationsSuppressed.Inc()
		return nil, nil
	}
	return store.CreateNotification(ctx, db, n)
}

// Publish records a committed notification and pushes it to the recipient's
// open streams. A nil notification is ignored.
func (s *NotificationService) Publish(ctx context.Context, n *model.Notification) {
	if n == nil {
		return
	}
	metrics.NotificationsCreated.WithLabelValues(string(n.Type)).Inc()
	slog.Info("notification created", "id", n.ID, "type", n.Type, "recipient", n.UserID)

	if s.Publisher == nil {
		return
	}
	views, err := s.views(ctx, []model.Notification{*n})
	if err != nil {
		slog.Warn("resolving notification for push", "id", n.ID, "error", err)
		return
	}
	s.Publisher.PublishNotification(n.UserID, views[0])
}

// List returns the user's newest notifications with item ids and actor
// names resolved.
func (s *NotificationService) List(ctx context.Context, userID int64, unreadOnly bool) ([]model.NotificationView, error) {
	list, err := store.ListNotifications(ctx, s.DB, userID, unreadOnly, model.NotificationListLimit)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, list)
}

func (s *NotificationService) views(ctx context.Context, list []model.Notification) ([]model.NotificationView, error) {
	var fromIDs, reviewIDs []int64
	for _, n := range list {
		if n.FromUserID != nil {
			fromIDs = append(fromIDs, *n.FromUserID)
		}
		if n.RelatedReviewID != nil {
			reviewIDs = append(reviewIDs, *n.RelatedReviewID)
		}
	}

	names, err := store.UserNames(ctx, s.DB, dedupe(fromIDs))
	if err != nil {
		return nil, err
	}
	itemIDs, err := store.ReviewItemIDs(ctx, s.DB, dedupe(reviewIDs))
	if err != nil {
		return nil, err
	}

	views := make([]model.NotificationView, 0, len(list))
	for _, n := range list {
		v := model.NotificationView{
			ID:              n.ID,
			Type:            n.Type,
			RelatedReviewID: n.RelatedReviewID,
			IsRead:          n.IsRead,
			CreatedAt:       n.CreatedAt,
		}
		if n.RelatedReviewID != nil {
			if itemID, ok := itemIDs[*n.RelatedReviewID]; ok {
				v.RelatedItemID = &itemID
			}
		}
		if n.FromUserID != nil {
			if name, ok := names[*n.FromUserID]; ok {
				v.FromUserName = &name
			}
		}
		views = append(views, v)
	}
	return views, nil
}

// MarkRead marks one notification read. Notifications that don't exist or
// belong to someone else are reported as not found.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id int64) error {
	owned, err := store.NotificationOwnedBy(ctx, s.DB, id, userID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrNotificationNotFound
	}
	return store.MarkNotificationRead(ctx, s.DB, id, userID)
}

// MarkAllRead marks every notification of the user read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	_, err := store.MarkAllNotificationsRead(ctx, s.DB, userID)
	return err
}

// DeleteSelected deletes the given notifications owned by the user and
// returns how many were removed.
func (s *NotificationService) DeleteSelected(ctx context.Context, userID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrNoIDs
	}
	return store.DeleteNotifications(ctx, s.DB, userID, dedupe(ids))
}

// UnreadCount returns the number of unread notifications.
func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return store.CountUnreadNotifications(ctx, s.DB, userID)
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
