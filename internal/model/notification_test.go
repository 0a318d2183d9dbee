package model

import "testing"

func TestNotificationConstructors(t *testing.T) {
	n := CommentOnReview(1, 2, 3, 4)
	if n.Type != NotificationCommentOnReview || n.UserID != 1 || *n.FromUserID != 2 || *n.RelatedReviewID != 3 || *n.RelatedCommentID != 4 {
		t.Errorf("unexpected comment notification: %+v", n)
	}

	up := ThumbUp(1, 2, 3)
	if up.Type != NotificationThumbUp || up.RelatedCommentID != nil {
		t.Errorf("unexpected thumb-up notification: %+v", up)
	}

	down := ThumbDown(1, 2, 3)
	if down.Type != NotificationThumbDown || *down.RelatedReviewID != 3 {
		t.Errorf("unexpected thumb-down notification: %+v", down)
	}
}

func TestNotificationTypeValid(t *testing.T) {
	for _, typ := range []NotificationType{NotificationCommentOnReview, NotificationThumbUp, NotificationThumbDown, NotificationReplyOnComment} {
		if !typ.Valid() {
			t.Errorf("expected %q to be valid", typ)
		}
	}
	if NotificationType("mention").Valid() {
		t.Error("expected unknown type to be invalid")
	}
}
