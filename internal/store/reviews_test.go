package store

import (
	"context"
	"testing"

	"github.com/erazemk/reviewit/internal/db"
)

func TestReviewCards(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	f := newFixture(t, database)

	item, _ := CreateItem(ctx, database, "A", nil, nil, f.category.ID, f.alice.ID)
	review, err := CreateReview(ctx, database, item.ID, f.alice.ID, 4, "nice")
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}

	CreateReaction(ctx, database, review.ID, f.bob.ID, false)
	CreateComment(ctx, database, review.ID, f.bob.ID, "disagree")

	// Anonymous viewer sees counts but no own reaction.
	cards, err := ListReviewCards(ctx, database, item.ID, 0)
	if err != nil {
		t.Fatalf("ListReviewCards: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}
	c := cards[0]
	if c.UserName != "Alice" || c.ThumbsUp != 0 || c.ThumbsDown != 1 || c.CommentCount != 1 {
		t.Errorf("unexpected card: %+v", c)
	}
	if c.CurrentUserReaction != nil {
		t.Errorf("expected nil reaction for anonymous viewer, got %d", *c.CurrentUserReaction)
	}

	// Bob sees his downvote.
	card, err := GetReviewCard(ctx, database, review.ID, f.bob.ID)
	if err != nil {
		t.Fatalf("GetReviewCard: %v", err)
	}
	if card.CurrentUserReaction == nil || *card.CurrentUserReaction != -1 {
		t.Errorf("expected -1 for bob, got %v", card.CurrentUserReaction)
	}

	// Alice has not reacted.
	card, _ = GetReviewCard(ctx, database, review.ID, f.alice.ID)
	if card.CurrentUserReaction != nil {
		t.Errorf("expected nil for alice, got %d", *card.CurrentUserReaction)
	}
}

func TestReviewStarsConstraint(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	f := newFixture(t, database)

	item, _ := CreateItem(ctx, database, "A", nil, nil, f.category.ID, f.alice.ID)
	if _, err := CreateReview(ctx, database, item.ID, f.alice.ID, 6, "too many"); err == nil {
		t.Error("expected check constraint violation for 6 stars")
	}
	if _, err := CreateReview(ctx, database, item.ID, f.alice.ID, 0, "zero is fine"); err != nil {
		t.Errorf("expected 0 stars to be accepted: %v", err)
	}
}

func TestReactionLifecycle(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	f := newFixture(t, database)

	item, _ := CreateItem(ctx, database, "A", nil, nil, f.category.ID, f.alice.ID)
	review, _ := CreateReview(ctx, database, item.ID, f.alice.ID, 4, "nice")

	if r, _ := GetReaction(ctx, database, review.ID, f.bob.ID); r != nil {
		t.Fatal("expected no reaction initially")
	}

	if err := CreateReaction(ctx, database, review.ID, f.bob.ID, true); err != nil {
		t.Fatalf("CreateReaction: %v", err)
	}
	if err := CreateReaction(ctx, database, review.ID, f.bob.ID, false); err == nil {
		t.Error("expected second reaction by the same user to be rejected")
	}

	r, _ := GetReaction(ctx, database, review.ID, f.bob.ID)
	if r == nil || !r.IsUp {
		t.Fatalf("expected up reaction, got %+v", r)
	}

	if err := SetReactionDirection(ctx, database, r.ID, false); err != nil {
		t.Fatalf("SetReactionDirection: %v", err)
	}
	counts, _ := CountReactions(ctx, database, review.ID)
	if counts.ThumbsUp != 0 || counts.ThumbsDown != 1 {
		t.Errorf("expected 0 up / 1 down, got %+v", counts)
	}

	if err := DeleteReaction(ctx, database, r.ID); err != nil {
		t.Fatalf("DeleteReaction: %v", err)
	}
	counts, _ = CountReactions(ctx, database, review.ID)
	if counts.ThumbsUp != 0 || counts.ThumbsDown != 0 {
		t.Errorf("expected no reactions, got %+v", counts)
	}
}

func TestListComments(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	f := newFixture(t, database)

	item, _ := CreateItem(ctx, database, "A", nil, nil, f.category.ID, f.alice.ID)
	review, _ := CreateReview(ctx, database, item.ID, f.alice.ID, 4, "nice")

	first, _ := CreateComment(ctx, database, review.ID, f.bob.ID, "first")
	CreateComment(ctx, database, review.ID, f.alice.ID, "second")

	if first.UserName != "Bob" {
		t.Errorf("expected author 'Bob', got %q", first.UserName)
	}

	comments, err := ListComments(ctx, database, review.ID)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	if comments[0].Content != "first" || comments[1].Content != "second" {
		t.Errorf("expected oldest first, got %q then %q", comments[0].Content, comments[1].Content)
	}
}

func TestReviewItemIDs(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	f := newFixture(t, database)

	item, _ := CreateItem(ctx, database, "A", nil, nil, f.category.ID, f.alice.ID)
	review, _ := CreateReview(ctx, database, item.ID, f.alice.ID, 4, "nice")

	got, err := ReviewItemIDs(ctx, database, []int64{review.ID, 999})
	if err != nil {
		t.Fatalf("ReviewItemIDs: %v", err)
	}
	if got[review.ID] != item.ID {
		t.Errorf("expected item %d, got %d", item.ID, got[review.ID])
	}
	if len(got) != 1 {
		t.Errorf("expected 1 entry, got %d", len(got))
	}
}
