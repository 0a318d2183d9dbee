package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/erazemk/reviewit/internal/model"
)

const notificationColumns = `id, user_id, type, related_review_id, related_comment_id, from_user_id, is_read, created_at`

// CreateNotification stores a notification.
func CreateNotification(ctx context.Context, db sqlx.ExtContext, n model.Notification) (*model.Notification, error) {
	id, err := insert(ctx, db,
		`INSERT INTO notifications (user_id, type, related_review_id, related_comment_id, from_user_id, is_read)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		n.UserID, string(n.Type), n.RelatedReviewID, n.RelatedCommentID, n.FromUserID, false,
	)
	if err != nil {
		return nil, fmt.Errorf("creating notification: %w", err)
	}

	out := &model.Notification{}
	if err := get(ctx, db, out, `SELECT `+notificationColumns+` FROM notifications WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("getting notification: %w", err)
	}
	return out, nil
}

// ListNotifications returns a user's notifications, newest first.
func ListNotifications(ctx context.Context, db sqlx.ExtContext, userID int64, unreadOnly bool, limit int) ([]model.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = ?`
	if unreadOnly {
		query += ` AND NOT is_read`
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`

	var list []model.Notification
	if err := selectAll(ctx, db, &list, query, userID, limit); err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	return list, nil
}

// NotificationOwnedBy reports whether the notification exists and belongs
// to the user.
func NotificationOwnedBy(ctx context.Context, db sqlx.ExtContext, id, userID int64) (bool, error) {
	var count int
	err := get(ctx, db, &count,
		`SELECT COUNT(*) FROM notifications WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("checking notification owner: %w", err)
	}
	return count > 0, nil
}

// MarkNotificationRead marks one of the user's notifications as read.
func MarkNotificationRead(ctx context.Context, db sqlx.ExtContext, id, userID int64) error {
	_, err := exec(ctx, db,
		`UPDATE notifications SET is_read = ? WHERE id = ? AND user_id = ?`, true, id, userID)
	if err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}
	return nil
}

// MarkAllNotificationsRead marks every notification of the user as read.
func MarkAllNotificationsRead(ctx context.Context, db sqlx.ExtContext, userID int64) (int64, error) {
	res, err := exec(ctx, db,
		`UPDATE notifications SET is_read = ? WHERE user_id = ? AND NOT is_read`, true, userID)
	if err != nil {
		return 0, fmt.Errorf("marking notifications read: %w", err)
	}
	return res.RowsAffected()
}

// DeleteNotifications removes the given notifications that belong to the
// user. IDs owned by others are ignored.
func DeleteNotifications(ctx context.Context, db sqlx.ExtContext, userID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := in(db, `DELETE FROM notifications WHERE user_id = ? AND id IN (?)`, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("building notification delete: %w", err)
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting notifications: %w", err)
	}
	return res.RowsAffected()
}

// CountUnreadNotifications returns how many unread notifications a user has.
func CountUnreadNotifications(ctx context.Context, db sqlx.ExtContext, userID int64) (int, error) {
	var count int
	err := get(ctx, db, &count,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND NOT is_read`, userID)
	if err != nil {
		return 0, fmt.Errorf("counting unread notifications: %w", err)
	}
	return count, nil
}
