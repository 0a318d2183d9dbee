package model

import (
	"sort"
	"strings"
	"time"
)

// Review sort keys.
const (
	ReviewSortLatest     = "latest"
	ReviewSortOldest     = "oldest"
	ReviewSortBest       = "best"
	ReviewSortWorst      = "worst"
	ReviewSortThumbs     = "thumbs"
	ReviewSortMostThumbs = "mostthumbs"
)

// Star bounds.
const (
	MinStars = 0
	MaxStars = 5
)

// Review is a stored review row.
type Review struct {
	ID        int64     `db:"id"`
	ItemID    int64     `db:"item_id"`
	UserID    int64     `db:"user_id"`
	Stars     int       `db:"stars"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

// ReviewCard is a review with its reaction and comment counts.
// CurrentUserReaction is 1 or -1 for the caller's own reaction, nil otherwise.
type ReviewCard struct {
	ID                  int64     `db:"id" json:"id"`
	ItemID              int64     `db:"item_id" json:"itemId"`
	UserID              int64     `db:"user_id" json:"userId"`
	UserName            string    `db:"user_name" json:"userName"`
	Stars               int       `db:"stars" json:"stars"`
	Content             string    `db:"content" json:"content"`
	CreatedAt           time.Time `db:"created_at" json:"createdAt"`
	ThumbsUp            int       `db:"thumbs_up" json:"thumbsUp"`
	ThumbsDown          int       `db:"thumbs_down" json:"thumbsDown"`
	CommentCount        int       `db:"comment_count" json:"commentCount"`
	CurrentUserReaction *int      `db:"current_user_reaction" json:"currentUserReaction"`
}

// Reaction is one user's thumbs up or down on a review.
type Reaction struct {
	ID       int64 `db:"id"`
	ReviewID int64 `db:"review_id"`
	UserID   int64 `db:"user_id"`
	IsUp     bool  `db:"is_up"`
}

// ReactionCounts is the result of toggling a reaction.
type ReactionCounts struct {
	ThumbsUp   int  `db:"thumbs_up" json:"thumbsUp"`
	ThumbsDown int  `db:"thumbs_down" json:"thumbsDown"`
	Removed    bool `db:"-" json:"removed"`
}

// ValidStars reports whether stars is within the allowed rating range.
func ValidStars(stars int) bool {
	return stars >= MinStars && stars <= MaxStars
}

// SortReviews orders review cards in place. Unknown keys sort by net thumbs.
func SortReviews(cards []ReviewCard, key string) {
	newer := func(a, b ReviewCard) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	}

	var less func(a, b ReviewCard) bool
	switch strings.ToLower(key) {
	case ReviewSortLatest:
		less = newer
	case ReviewSortOldest:
		less = func(a, b ReviewCard) bool { return newer(b, a) }
	case ReviewSortBest:
		less = func(a, b ReviewCard) bool {
			if a.Stars != b.Stars {
				return a.Stars > b.Stars
			}
			return a.ThumbsUp > b.ThumbsUp
		}
	case ReviewSortWorst:
		less = func(a, b ReviewCard) bool {
			if a.Stars != b.Stars {
				return a.Stars < b.Stars
			}
			return a.ThumbsDown < b.ThumbsDown
		}
	default:
		less = func(a, b ReviewCard) bool {
			return a.ThumbsUp-a.ThumbsDown > b.ThumbsUp-b.ThumbsDown
		}
	}

	sort.SliceStable(cards, func(i, j int) bool { return less(cards[i], cards[j]) })
}
