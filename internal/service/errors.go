package service

import "errors"

// Kind classifies domain errors for the API boundary.
type Kind int

// Error kinds.
const (
	KindValidation Kind = iota + 1
	KindUnauthorized
	KindNotFound
	KindConflict
)

// Error is a domain error carrying a user-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// KindOf returns the kind of a domain error, or 0 for any other error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }
func notFound(msg string) *Error   { return &Error{Kind: KindNotFound, Message: msg} }
func conflict(msg string) *Error   { return &Error{Kind: KindConflict, Message: msg} }

// Sentinel errors.
var (
	ErrInvalidCredentials   = &Error{Kind: KindUnauthorized, Message: "Invalid email or password."}
	ErrTokenRevoked         = &Error{Kind: KindUnauthorized, Message: "Token has been revoked."}
	ErrInvalidToken         = &Error{Kind: KindUnauthorized, Message: "invalid token"}
	ErrEmailTaken           = conflict("Email already registered.")
	ErrPhoneTaken           = conflict("This phone number is already in use. Please use a different number.")
	ErrPhoneRequired        = validation("Phone number is required.")
	ErrInvalidCategory      = validation("Invalid category.")
	ErrInvalidStars         = validation("Stars must be between 0 and 5.")
	ErrNoIDs                = validation("At least one id is required.")
	ErrItemNotFound         = notFound("Item not found.")
	ErrReviewNotFound       = notFound("Review not found.")
	ErrCategoryNotFound     = notFound("Category not found.")
	ErrNotificationNotFound = notFound("Notification not found.")
)
