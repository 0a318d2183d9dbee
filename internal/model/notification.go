package model

import "time"

// NotificationType is the closed set of interaction events.
type NotificationType string

// Notification types.
const (
	NotificationCommentOnReview NotificationType = "comment-on-review"
	NotificationThumbUp         NotificationType = "thumb-up"
	NotificationThumbDown       NotificationType = "thumb-down"
	NotificationReplyOnComment  NotificationType = "reply-on-comment"
)

// Valid reports whether t is one of the known notification types.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationCommentOnReview, NotificationThumbUp, NotificationThumbDown, NotificationReplyOnComment:
		return true
	}
	return false
}

// NotificationListLimit caps how many notifications a listing returns.
const NotificationListLimit = 50

// Notification is a stored notification row. UserID is the recipient.
type Notification struct {
	ID               int64            `db:"id"`
	UserID           int64            `db:"user_id"`
	Type             NotificationType `db:"type"`
	RelatedReviewID  *int64           `db:"related_review_id"`
	RelatedCommentID *int64           `db:"related_comment_id"`
	FromUserID       *int64           `db:"from_user_id"`
	IsRead           bool             `db:"is_read"`
	CreatedAt        time.Time        `db:"created_at"`
}

// CommentOnReview builds the notification sent to a review's author when
// someone comments on it.
func CommentOnReview(recipient, from, reviewID, commentID int64) Notification {
	return Notification{
		UserID:           recipient,
		Type:             NotificationCommentOnReview,
		RelatedReviewID:  &reviewID,
		RelatedCommentID: &commentID,
		FromUserID:       &from,
	}
}

// ThumbUp builds the notification for an upvote on a review.
func ThumbUp(recipient, from, reviewID int64) Notification {
	return Notification{
		UserID:          recipient,
		Type:            NotificationThumbUp,
		RelatedReviewID: &reviewID,
		FromUserID:      &from,
	}
}

// ThumbDown builds the notification for a downvote on a review.
func ThumbDown(recipient, from, reviewID int64) Notification {
	return Notification{
		UserID:          recipient,
		Type:            NotificationThumbDown,
		RelatedReviewID: &reviewID,
		FromUserID:      &from,
	}
}

// NotificationView is the API representation of a notification.
type NotificationView struct {
	ID              int64            `json:"id"`
	Type            NotificationType `json:"type"`
	RelatedReviewID *int64           `json:"relatedReviewId"`
	RelatedItemID   *int64           `json:"relatedItemId"`
	FromUserName    *string          `json:"fromUserName"`
	IsRead          bool             `json:"isRead"`
	CreatedAt       time.Time        `json:"createdAt"`
}
