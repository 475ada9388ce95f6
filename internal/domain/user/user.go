package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned by repositories when no user matches.
	ErrNotFound = errors.New("user not found")

	// ErrInvalidUser means the id or username of a user is unusable.
	ErrInvalidUser = errors.New("invalid user")
)

// User is the local replica of an account owned by the user service. Only
// identity is kept here.
type User struct {
	id        uuid.UUID
	username  string
	createdAt time.Time
}

// NewUser validates and creates a User.
func NewUser(id uuid.UUID, username string) (*User, error) {
	username = strings.TrimSpace(username)
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidUser)
	}
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidUser)
	}
	return &User{id: id, username: username, createdAt: time.Now().UTC()}, nil
}

// Reconstruct rebuilds a User from persistence.
func Reconstruct(id uuid.UUID, username string, createdAt time.Time) *User {
	return &User{id: id, username: username, createdAt: createdAt}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Username() string     { return u.username }
func (u *User) CreatedAt() time.Time { return u.createdAt }
