package model

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Item sort keys.
const (
	ItemSortLatest      = "latest"
	ItemSortBest        = "best"
	ItemSortWorst       = "worst"
	ItemSortMostReviews = "mostreviews"
)

// SnippetLength is the number of characters kept from the newest review.
const SnippetLength = 100

// ItemSummary is one entry of the item listing. StarsTotal is only used to
// derive AverageStars and is not serialized.
type ItemSummary struct {
	ID                       int64     `db:"id" json:"id"`
	Name                     string    `db:"name" json:"name"`
	Description              *string   `db:"description" json:"description"`
	ImageURL                 *string   `db:"image_url" json:"imageUrl"`
	CategoryName             string    `db:"category_name" json:"categoryName"`
	AverageStars             float64   `db:"-" json:"averageStars"`
	ReviewCount              int       `db:"review_count" json:"reviewCount"`
	StarsTotal               int64     `db:"stars_total" json:"-"`
	MostPopularReviewSnippet *string   `db:"-" json:"mostPopularReviewSnippet"`
	CreatedAt                time.Time `db:"created_at" json:"createdAt"`
}

// ItemDetail is the full view of a single item.
type ItemDetail struct {
	ID                int64     `db:"id" json:"id"`
	Name              string    `db:"name" json:"name"`
	Description       *string   `db:"description" json:"description"`
	ImageURL          *string   `db:"image_url" json:"imageUrl"`
	CategoryName      string    `db:"category_name" json:"categoryName"`
	CategoryID        int64     `db:"category_id" json:"categoryId"`
	AverageStars      float64   `db:"-" json:"averageStars"`
	ReviewCount       int       `db:"review_count" json:"reviewCount"`
	StarsTotal        int64     `db:"stars_total" json:"-"`
	CreatedByUserID   int64     `db:"created_by_user_id" json:"-"`
	CreatedByUserName string    `db:"created_by_user_name" json:"createdByUserName"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
}

// ItemFilter narrows the item listing.
type ItemFilter struct {
	CategoryID *int64
	Search     string
}

// AverageStars returns the mean rating rounded half to even at one decimal,
// or 0 when there are no reviews.
func AverageStars(total int64, count int) float64 {
	if count == 0 {
		return 0
	}
	avg := float64(total) / float64(count)
	return math.RoundToEven(avg*10) / 10
}

// Snippet truncates review content for list views. Returns nil for nil input.
func Snippet(content *string) *string {
	if content == nil {
		return nil
	}
	runes := []rune(*content)
	if len(runes) <= SnippetLength {
		s := *content
		return &s
	}
	s := string(runes[:SnippetLength]) + "..."
	return &s
}

// SortItems orders summaries in place by the given key. Unknown keys sort by
// creation time, newest first. Ties keep the newest id first.
func SortItems(items []ItemSummary, key string) {
	newer := func(a, b ItemSummary) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	}

	var less func(a, b ItemSummary) bool
	switch strings.ToLower(key) {
	case ItemSortBest:
		less = func(a, b ItemSummary) bool {
			if a.AverageStars != b.AverageStars {
				return a.AverageStars > b.AverageStars
			}
			if a.ReviewCount != b.ReviewCount {
				return a.ReviewCount > b.ReviewCount
			}
			return newer(a, b)
		}
	case ItemSortWorst:
		less = func(a, b ItemSummary) bool {
			if a.AverageStars != b.AverageStars {
				return a.AverageStars < b.AverageStars
			}
			if a.ReviewCount != b.ReviewCount {
				return a.ReviewCount > b.ReviewCount
			}
			return newer(a, b)
		}
	case ItemSortMostReviews:
		less = func(a, b ItemSummary) bool {
			if a.ReviewCount != b.ReviewCount {
				return a.ReviewCount > b.ReviewCount
			}
			return newer(a, b)
		}
	default:
		less = newer
	}

	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}
