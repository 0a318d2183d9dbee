package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/reviewit/internal/auth"
	"github.com/erazemk/reviewit/internal/metrics"
	"github.com/erazemk/reviewit/internal/model"
	"github.com/erazemk/reviewit/internal/store"
)

// AuthService registers users, checks credentials and issues tokens.
type AuthService struct {
	DB           *sqlx.DB
	Tokens       auth.Config
	RequirePhone bool
	BcryptCost   int
}

// dummyHash is compared against when the email is unknown so both login
// failures cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("reviewit-dummy-password"), bcrypt.DefaultCost)

func (s *AuthService) cost() int {
	if s.BcryptCost == 0 {
		return bcrypt.DefaultCost
	}
	return s.BcryptCost
}

// Register creates a new account. Email must be unused; phone is optional
// unless RequirePhone is set, and must be unused when given.
func (s *AuthService) Register(ctx context.Context, name, email, phone, password string) (*model.User, error) {
	email = model.NormalizeEmail(email)
	phonePtr := model.NormalizePhone(phone)
	name = strings.TrimSpace(name)

	if name == "" || email == "" || password == "" {
		return nil, validation("Name, email and password are required.")
	}
	if phonePtr == nil && s.RequirePhone {
		return nil, ErrPhoneRequired
	}

	existing, err := store.GetUserByEmail(ctx, s.DB, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	if phonePtr != nil {
		used, err := store.PhoneInUse(ctx, s.DB, *phonePtr)
		if err != nil {
			return nil, err
		}
		if used {
			return nil, ErrPhoneTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost())
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user, err := store.CreateUser(ctx, s.DB, name, email, phonePtr, string(hash))
	if err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login verifies credentials. Unknown email and wrong password both return
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := store.GetUserByEmail(ctx, s.DB, model.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		metrics.LoginFailures.Inc()
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.LoginFailures.Inc()
		slog.Warn("login failed", "email", user.Email)
		return nil, ErrInvalidCredentials
	}

	slog.Info("user logged in", "user_id", user.ID)
	return user, nil
}

// IssueToken signs a bearer token for the user.
func (s *AuthService) IssueToken(user *model.User) (string, error) {
	return auth.GenerateToken(s.Tokens, user.ID, user.Email, user.Name)
}

// Authenticate validates a bearer token and rejects revoked ones. Bad tokens
// return ErrInvalidToken; storage failures are returned as is.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := auth.ValidateToken(s.Tokens, token)
	if err != nil {
		slog.Debug("token rejected", "error", err)
		return nil, ErrInvalidToken
	}

	revoked, err := store.IsTokenRevoked(ctx, s.DB, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Logout revokes the token the claims came from until it would have expired.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims.ExpiresAt == nil {
		return fmt.Errorf("token has no expiry")
	}
	if err := store.RevokeToken(ctx, s.DB, claims.ID, claims.ExpiresAt.Time); err != nil {
		return err
	}
	slog.Info("user logged out", "user_id", claims.UserID)
	return nil
}
