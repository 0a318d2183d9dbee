package model

import "time"

// Comment is a reply to a review, with the author's display name resolved.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	ReviewID  int64     `db:"review_id" json:"reviewId"`
	UserID    int64     `db:"user_id" json:"userId"`
	UserName  string    `db:"user_name" json:"userName"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
