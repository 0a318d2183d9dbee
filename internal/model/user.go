package model

import (
	"strings"
	"time"
)

// User is a registered account. Phone is optional unless the server
// requires it at registration.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// NormalizeEmail trims surrounding whitespace. Case is preserved so that
// lookups match what the user registered with.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// NormalizePhone trims the phone number and returns nil when it is blank.
func NormalizePhone(phone string) *string {
	p := strings.TrimSpace(phone)
	if p == "" {
		return nil
	}
	return &p
}
