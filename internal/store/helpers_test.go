package store

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/erazemk/reviewit/internal/model"
)

// fixture holds rows most store tests need.
type fixture struct {
	alice    *model.User
	bob      *model.User
	category *model.Category
}

func newFixture(t *testing.T, database *sqlx.DB) fixture {
	t.Helper()
	ctx := context.Background()

	alice, err := CreateUser(ctx, database, "Alice", "alice@example.com", nil, "hash")
	if err != nil {
		t.Fatalf("CreateUser alice: %v", err)
	}
	bob, err := CreateUser(ctx, database, "Bob", "bob@example.com", nil, "hash")
	if err != nil {
		t.Fatalf("CreateUser bob: %v", err)
	}
	icon := "📚"
	category, err := CreateCategory(ctx, database, "Book", "book", &icon)
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	return fixture{alice: alice, bob: bob, category: category}
}

func strPtr(s string) *string { return &s }
