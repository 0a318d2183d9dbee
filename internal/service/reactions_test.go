package service

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/reviewit/internal/model"
	"github.com/erazemk/reviewit/internal/store"
)

func TestNextReaction(t *testing.T) {
	up, down := true, false

	tests := []struct {
		name     string
		existing *bool
		isUp     bool
		want     ReactionAction
	}{
		{"none up", nil, true, ReactionCreate},
		{"none down", nil, false, ReactionCreate},
		{"up up", &up, true, ReactionRemove},
		{"down down", &down, false, ReactionRemove},
		{"down up", &down, true, ReactionFlip},
		{"up down", &up, false, ReactionFlip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextReaction(tt.existing, tt.isUp); got != tt.want {
				t.Errorf("NextReaction = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToggleReaction(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	alice := s.register(t, "Alice", "alice@example.com")
	bob := s.register(t, "Bob", "bob@example.com")
	item := s.item(t, alice.ID, s.category(t), "Dune")
	review := s.review(t, alice.ID, item.ID, 4)

	steps := []struct {
		isUp          bool
		up, down      int
		removed       bool
		notifications int
	}{
		{true, 1, 0, false, 1},
		{true, 0, 0, true, 1},
		{true, 1, 0, false, 2}, // re-added after removal
		{false, 0, 1, false, 3},
		{true, 1, 0, false, 4},
		{false, 0, 1, false, 5},
		{false, 0, 0, true, 5},
	}

	for i, step := range steps {
		counts, err := s.reactions.Toggle(ctx, bob.ID, review.ID, step.isUp)
		if err != nil {
			t.Fatalf("step %d: Toggle: %v", i, err)
		}
		if counts.ThumbsUp != step.up || counts.ThumbsDown != step.down || counts.Removed != step.removed {
			t.Errorf("step %d: got %+v, want up=%d down=%d removed=%v", i, counts, step.up, step.down, step.removed)
		}

		var rows int
		if err := s.db.Get(&rows, `SELECT COUNT(*) FROM review_reactions WHERE review_id = ?`, review.ID); err != nil {
			t.Fatalf("counting reactions: %v", err)
		}
		if rows > 1 {
			t.Errorf("step %d: expected at most one reaction row, got %d", i, rows)
		}

		list, err := s.notifications.List(ctx, alice.ID, false)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(list) != step.notifications {
			t.Errorf("step %d: expected %d notifications, got %d", i, step.notifications, len(list))
		}
	}

	list, _ := s.notifications.List(ctx, alice.ID, false)
	if list[0].Type != model.NotificationThumbDown || list[1].Type != model.NotificationThumbUp {
		t.Errorf("unexpected notification types: %s, %s", list[0].Type, list[1].Type)
	}
}

func TestToggleReactionOwnReview(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	alice := s.register(t, "Alice", "alice@example.com")
	item := s.item(t, alice.ID, s.category(t), "Dune")
	review := s.review(t, alice.ID, item.ID, 4)

	counts, err := s.reactions.Toggle(ctx, alice.ID, review.ID, true)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if counts.ThumbsUp != 1 {
		t.Errorf("expected own reaction to count, got %+v", counts)
	}

	n, _ := store.CountUnreadNotifications(ctx, s.db, alice.ID)
	if n != 0 {
		t.Errorf("expected no self notification, got %d", n)
	}
}

func TestToggleReactionMissingReview(t *testing.T) {
	s := newServices(t)
	alice := s.register(t, "Alice", "alice@example.com")

	_, err := s.reactions.Toggle(context.Background(), alice.ID, 999, true)
	if !errors.Is(err, ErrReviewNotFound) {
		t.Errorf("expected ErrReviewNotFound, got %v", err)
	}
}
