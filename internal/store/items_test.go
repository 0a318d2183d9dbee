package store

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/erazemk/reviewit/internal/db"
	"github.com/erazemk/reviewit/internal/model"
)

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	f := newFixture(t, database)

	item, err := CreateItem(ctx, database, "1984", strPtr("Dystopian novel"), nil, f.category.ID, f.alice.ID)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.CategoryName != "Book" {
		t.Errorf("expected category 'Book', got %q", item.CategoryName)
	}
	if item.CreatedByUserName != "Alice" {
		t.Errorf("expected creator 'Alice', got %q", item.CreatedByUserName)
	}
	if item.ReviewCount != 0 || item.AverageStars != 0 {
		t.Errorf("expected no reviews, got count=%d avg=%v", item.ReviewCount, item.AverageStars)
	}

	missing, err := GetItem(ctx, database, 999)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing item")
	}
}

func TestCreateItemInvalidCategory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	f := newFixture(t, database)

	if _, err := CreateItem(ctx, database, "x", nil, nil, 999, f.alice.ID); err == nil {
		t.Error("expected foreign key violation for missing category")
	}
}

func TestItemAverageStars(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	f := newFixture(t, database)

	item, _ := CreateItem(ctx, database, "Sushi", nil, nil, f.category.ID, f.alice.ID)
	for _, stars := range []int{3, 4, 5} {
		if _, err := CreateReview(ctx, database, item.ID, f.bob.ID, stars, "ok"); err != nil {
			t.Fatalf("CreateReview: %v", err)
		}
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got.AverageStars != 4.0 {
		t.Errorf("expected average 4.0, got %v", got.AverageStars)
	}
	if got.ReviewCount != 3 {
		t.Errorf("expected 3 reviews, got %d", got.ReviewCount)
	}

	items, err := ListItems(ctx, database, model.ItemFilter{})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 1 || items[0].AverageStars != 4.0 {
		t.Errorf("expected one item with average 4.0, got %+v", items)
	}
}

func TestListItemsFilters(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	f := newFixture(t, database)

	other, _ := CreateCategory(ctx, database, "Food", "food", nil)
	CreateItem(ctx, database, "The Great Gatsby", strPtr("A novel"), nil, f.category.ID, f.alice.ID)
	CreateItem(ctx, database, "Pizza", strPtr("Italian NOVEL-shaped food"), nil, other.ID, f.alice.ID)
	CreateItem(ctx, database, "100% Juice", nil, nil, other.ID, f.alice.ID)
	CreateItem(ctx, database, "Éclair", strPtr("Pâte à choux"), nil, other.ID, f.alice.ID)

	tests := []struct {
		name   string
		filter model.ItemFilter
		want   int
	}{
		{"all", model.ItemFilter{}, 4},
		{"category", model.ItemFilter{CategoryID: &other.ID}, 3},
		{"search name case-insensitive", model.ItemFilter{Search: "gatsby"}, 1},
		{"search description", model.ItemFilter{Search: "novel"}, 2},
		{"search and category", model.ItemFilter{Search: "novel", CategoryID: &other.ID}, 1},
		{"percent is literal", model.ItemFilter{Search: "0%"}, 1},
		{"non-ascii name folded", model.ItemFilter{Search: "éclair"}, 1},
		{"non-ascii description folded", model.ItemFilter{Search: "PÂTE"}, 1},
		{"blank search ignored", model.ItemFilter{Search: "   "}, 4},
		{"no match", model.ItemFilter{Search: "zzz"}, 0},
	}

	for _, tt := range tests {
		items, err := ListItems(ctx, database, tt.filter)
		if err != nil {
			t.Fatalf("%s: ListItems: %v", tt.name, err)
		}
		if len(items) != tt.want {
			t.Errorf("%s: expected %d items, got %d", tt.name, tt.want, len(items))
		}
	}
}

func TestNewestReviewContent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	f := newFixture(t, database)

	a, _ := CreateItem(ctx, database, "A", nil, nil, f.category.ID, f.alice.ID)
	b, _ := CreateItem(ctx, database, "B", nil, nil, f.category.ID, f.alice.ID)
	for i := range 3 {
		CreateReview(ctx, database, a.ID, f.bob.ID, 4, fmt.Sprintf("review %d", i))
	}

	got, err := NewestReviewContent(ctx, database, []int64{a.ID, b.ID})
	if err != nil {
		t.Fatalf("NewestReviewContent: %v", err)
	}
	if got[a.ID] != "review 2" {
		t.Errorf("expected newest review 'review 2', got %q", got[a.ID])
	}
	if _, ok := got[b.ID]; ok {
		t.Error("expected no entry for item without reviews")
	}
}

func TestItemImage(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	f := newFixture(t, database)

	item, _ := CreateItem(ctx, database, "A", nil, nil, f.category.ID, f.alice.ID)

	data, _, err := GetItemImage(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItemImage: %v", err)
	}
	if data != nil {
		t.Error("expected no image before upload")
	}

	url := fmt.Sprintf("/api/items/%d/image", item.ID)
	if err := SetItemImage(ctx, database, item.ID, []byte("jpegdata"), "image/jpeg", url); err != nil {
		t.Fatalf("SetItemImage: %v", err)
	}

	data, mime, err := GetItemImage(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItemImage: %v", err)
	}
	if string(data) != "jpegdata" || mime != "image/jpeg" {
		t.Errorf("unexpected image: %q %q", data, mime)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got.ImageURL == nil || !strings.HasSuffix(*got.ImageURL, "/image") {
		t.Errorf("expected image_url to point at the upload, got %v", got.ImageURL)
	}
}
