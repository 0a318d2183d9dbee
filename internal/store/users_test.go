package store

import (
	"context"
	"testing"

	"github.com/erazemk/reviewit/internal/db"
)

func TestCreateAndGetUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, err := CreateUser(ctx, database, "Test User", "test@example.com", strPtr("+38640123456"), "hash123")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Name != "Test User" {
		t.Errorf("expected name 'Test User', got %q", user.Name)
	}
	if user.Phone == nil || *user.Phone != "+38640123456" {
		t.Errorf("expected phone to be stored, got %v", user.Phone)
	}

	got, err := GetUser(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Email != "test@example.com" {
		t.Errorf("expected email 'test@example.com', got %q", got.Email)
	}
	if got.PasswordHash != "hash123" {
		t.Errorf("expected password hash 'hash123', got %q", got.PasswordHash)
	}
}

func TestGetUserByEmail(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateUser(ctx, database, "Alice", "alice@example.com", nil, "hash")

	user, err := GetUserByEmail(ctx, database, "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}
	if user.Phone != nil {
		t.Errorf("expected nil phone, got %q", *user.Phone)
	}

	missing, err := GetUserByEmail(ctx, database, "bob@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing user")
	}
}

func TestDuplicateEmailRejected(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateUser(ctx, database, "A", "a@x.com", nil, "hash"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := CreateUser(ctx, database, "B", "a@x.com", nil, "hash"); err == nil {
		t.Error("expected unique violation for duplicate email")
	}
}

func TestPhoneInUse(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateUser(ctx, database, "A", "a@x.com", strPtr("+1"), "hash")
	// Several users without a phone are allowed.
	CreateUser(ctx, database, "B", "b@x.com", nil, "hash")
	if _, err := CreateUser(ctx, database, "C", "c@x.com", nil, "hash"); err != nil {
		t.Fatalf("second user without phone: %v", err)
	}

	used, err := PhoneInUse(ctx, database, "+1")
	if err != nil {
		t.Fatalf("PhoneInUse: %v", err)
	}
	if !used {
		t.Error("expected phone to be in use")
	}

	used, _ = PhoneInUse(ctx, database, "+2")
	if used {
		t.Error("expected phone not to be in use")
	}
}

func TestUserNames(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	f := newFixture(t, database)

	names, err := UserNames(ctx, database, []int64{f.alice.ID, f.bob.ID, 999})
	if err != nil {
		t.Fatalf("UserNames: %v", err)
	}
	if names[f.alice.ID] != "Alice" || names[f.bob.ID] != "Bob" {
		t.Errorf("unexpected names: %v", names)
	}
	if _, ok := names[999]; ok {
		t.Error("expected unknown id to be absent")
	}

	empty, err := UserNames(ctx, database, nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("expected empty map for no ids, got %v, %v", empty, err)
	}
}
