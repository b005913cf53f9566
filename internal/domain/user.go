package domain

import (
	"context"
	"time"
)

// User represents a registered user of the application.
type User struct {
	ID              string
	Username        string
	PasswordHash    string
	Email           string // optional; unique when set
	FirstName       string
	LastName        string
	ProfileImageURL string
	CreatedAt       time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts a new user. Returns ErrDuplicateUsername or
	// ErrDuplicateEmail on a uniqueness collision.
	Create(ctx context.Context, user *User) error

	// Upsert inserts a new user, or if a user with the same email already
	// exists, updates only the display attributes (first name, last name,
	// profile image URL) of the existing row and loads it into user.
	// ID, username and password hash of an existing row are never altered.
	Upsert(ctx context.Context, user *User) error

	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Delete removes a user; owned calculations are cascade-deleted.
	Delete(ctx context.Context, id string) error
}
