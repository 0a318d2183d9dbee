package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// Demo account created by Seed.
const (
	DemoEmail    = "demo@reviewit.com"
	DemoPassword = "Demo123!"
	demoPhone    = "+1234567890"
	demoName     = "Demo User"
)

var seedCategories = []struct{ name, slug, icon string }{
	{"People", "people", "👤"},
	{"Product", "product", "📦"},
	{"Book", "book", "📚"},
	{"Food", "food", "🍽️"},
	{"Movie", "movie", "🎬"},
	{"Character", "character", "🦸"},
	{"Place", "place", "📍"},
	{"Game", "game", "🎮"},
}

var seedItems = []struct{ name, description, slug, imageURL string }{
	{"Pizza Margherita", "Classic Italian pizza with tomato and mozzarella.", "food", "https://images.unsplash.com/photo-1574071318508-1cdbab80d002?w=400"},
	{"The Great Gatsby", "A novel by F. Scott Fitzgerald.", "book", "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=400"},
	{"iPhone 15", "Latest Apple smartphone.", "product", "https://images.unsplash.com/photo-1592750475338-74b7b21085ab?w=400"},
	{"Inception", "Mind-bending sci-fi film by Christopher Nolan.", "movie", "https://images.unsplash.com/photo-1536440136628-849c177e76a1?w=400"},
	{"Sherlock Holmes", "Famous detective character by Arthur Conan Doyle.", "character", "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400"},
	{"Sushi", "Japanese cuisine with vinegared rice and seafood.", "food", "https://images.unsplash.com/photo-1579871494447-9811cf80d66c?w=400"},
	{"1984", "Dystopian novel by George Orwell.", "book", "https://images.unsplash.com/photo-1589998059171-988d887df646?w=400"},
	{"Tokyo", "Capital of Japan, vibrant megacity.", "place", "https://images.unsplash.com/photo-1540959733332-eab4deabeeaf?w=400"},
}

// sampleStars are the ratings of the demo reviews on the first items.
var sampleStars = []int{5, 4, 3, 5}

const sampleReview = "This is a sample review. Really enjoyed it!"

// Seed populates an empty database with categories, a demo user, items and
// a few reviews. It does nothing if any category exists.
func Seed(ctx context.Context, db *sqlx.DB) (bool, error) {
	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM categories`); err != nil {
		return false, fmt.Errorf("counting categories: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hashing demo password: %w", err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insertID := func(query string, args ...any) (int64, error) {
		var id int64
		err := tx.QueryRowxContext(ctx, tx.Rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}

	catIDs := make(map[string]int64, len(seedCategories))
	for _, c := range seedCategories {
		id, err := insertID(`INSERT INTO categories (name, slug, icon) VALUES (?, ?, ?)`, c.name, c.slug, c.icon)
		if err != nil {
			return false, fmt.Errorf("seeding category %s: %w", c.slug, err)
		}
		catIDs[c.slug] = id
	}

	userID, err := insertID(
		`INSERT INTO users (name, email, phone, password_hash) VALUES (?, ?, ?, ?)`,
		demoName, DemoEmail, demoPhone, string(hash),
	)
	if err != nil {
		return false, fmt.Errorf("seeding demo user: %w", err)
	}

	now := time.Now().UTC()
	itemIDs := make([]int64, 0, len(seedItems))
	for i, it := range seedItems {
		id, err := insertID(
			`INSERT INTO items (name, description, image_url, category_id, created_by_user_id, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			it.name, it.description, it.imageURL, catIDs[it.slug], userID, now.Add(time.Duration(i)*time.Second),
		)
		if err != nil {
			return false, fmt.Errorf("seeding item %q: %w", it.name, err)
		}
		itemIDs = append(itemIDs, id)
	}

	for i, stars := range sampleStars {
		createdAt := now.AddDate(0, 0, -(i + 1))
		if _, err := tx.ExecContext(ctx, tx.Rebind(
			`INSERT INTO reviews (item_id, user_id, stars, content, created_at) VALUES (?, ?, ?, ?, ?)`),
			itemIDs[i], userID, stars, sampleReview, createdAt,
		); err != nil {
			return false, fmt.Errorf("seeding review: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing seed: %w", err)
	}
	return true, nil
}
