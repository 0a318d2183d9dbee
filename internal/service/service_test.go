package service

import (
	"context"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/reviewit/internal/auth"
	"github.com/erazemk/reviewit/internal/db"
	"github.com/erazemk/reviewit/internal/model"
	"github.com/erazemk/reviewit/internal/store"
)

type recordingPublisher struct {
	mu     sync.Mutex
	pushed map[int64][]model.NotificationView
}

func (p *recordingPublisher) PublishNotification(recipientID int64, n model.NotificationView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pushed == nil {
		p.pushed = make(map[int64][]model.NotificationView)
	}
	p.pushed[recipientID] = append(p.pushed[recipientID], n)
}

type services struct {
	db            *sqlx.DB
	auth          *AuthService
	catalog       *CatalogService
	reviews       *ReviewService
	reactions     *ReactionService
	notifications *NotificationService
	publisher     *recordingPublisher
}

func newServices(t *testing.T) *services {
	t.Helper()
	database := db.NewTestDB(t)
	pub := &recordingPublisher{}
	notifications := &NotificationService{DB: database, Publisher: pub}
	return &services{
		db: database,
		auth: &AuthService{
			DB:         database,
			Tokens:     auth.Config{Secret: "test-secret", Issuer: "reviewit", Audience: "reviewit"},
			BcryptCost: bcrypt.MinCost,
		},
		catalog:       &CatalogService{DB: database},
		reviews:       &ReviewService{DB: database, Notifications: notifications},
		reactions:     &ReactionService{DB: database, Notifications: notifications},
		notifications: notifications,
		publisher:     pub,
	}
}

func (s *services) register(t *testing.T, name, email string) *model.User {
	t.Helper()
	u, err := s.auth.Register(context.Background(), name, email, "", "password123")
	if err != nil {
		t.Fatalf("Register %s: %v", email, err)
	}
	return u
}

func (s *services) category(t *testing.T) int64 {
	t.Helper()
	c, err := store.CreateCategory(context.Background(), s.db, "Book", "book", nil)
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	return c.ID
}

func (s *services) item(t *testing.T, userID, categoryID int64, name string) *model.ItemDetail {
	t.Helper()
	item, err := s.catalog.CreateItem(context.Background(), userID, name, nil, nil, categoryID)
	if err != nil {
		t.Fatalf("CreateItem %s: %v", name, err)
	}
	return item
}

func (s *services) review(t *testing.T, userID, itemID int64, stars int) *model.ReviewCard {
	t.Helper()
	r, err := s.reviews.Create(context.Background(), userID, itemID, stars, "review text")
	if err != nil {
		t.Fatalf("Create review: %v", err)
	}
	return r
}
