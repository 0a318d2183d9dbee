package model

import (
	"testing"
	"time"
)

func TestValidStars(t *testing.T) {
	for stars := -2; stars <= 7; stars++ {
		want := stars >= 0 && stars <= 5
		if got := ValidStars(stars); got != want {
			t.Errorf("ValidStars(%d) = %v, want %v", stars, got, want)
		}
	}
}

func TestSortReviews(t *testing.T) {
	now := time.Now()
	base := func() []ReviewCard {
		return []ReviewCard{
			{ID: 1, Stars: 5, ThumbsUp: 1, ThumbsDown: 0, CreatedAt: now.Add(-3 * time.Hour)},
			{ID: 2, Stars: 5, ThumbsUp: 4, ThumbsDown: 3, CreatedAt: now.Add(-2 * time.Hour)},
			{ID: 3, Stars: 1, ThumbsUp: 6, ThumbsDown: 1, CreatedAt: now.Add(-1 * time.Hour)},
			{ID: 4, Stars: 1, ThumbsUp: 0, ThumbsDown: 0, CreatedAt: now},
		}
	}

	tests := []struct {
		key  string
		want []int64
	}{
		{ReviewSortLatest, []int64{4, 3, 2, 1}},
		{ReviewSortOldest, []int64{1, 2, 3, 4}},
		{ReviewSortBest, []int64{2, 1, 3, 4}},
		{ReviewSortWorst, []int64{4, 3, 1, 2}},
		{ReviewSortThumbs, []int64{3, 1, 2, 4}},
		{ReviewSortMostThumbs, []int64{3, 1, 2, 4}},
		{"unknown", []int64{3, 1, 2, 4}},
	}

	for _, tt := range tests {
		cards := base()
		SortReviews(cards, tt.key)
		for i, id := range tt.want {
			if cards[i].ID != id {
				t.Errorf("sort %q: position %d expected id %d, got %d", tt.key, i, id, cards[i].ID)
			}
		}
	}
}
