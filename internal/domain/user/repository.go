package user

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository is the read/write surface of the user replica.
type UserRepository interface {
	// FindByUsername returns ErrNotFound when no user has that username.
	FindByUsername(ctx context.Context, username string) (*User, error)
	// Upsert inserts u or updates the username of an existing id. A
	// different user still holding u's username is purged first and its id
	// returned as displaced; displaced is uuid.Nil otherwise.
	Upsert(ctx context.Context, u *User) (displaced uuid.UUID, err error)
}

// PurgeResult counts the rows removed by a purge.
type PurgeResult struct {
	ReviewsDeleted       int64
	SubscriptionsDeleted int64
}

// Purger removes everything a user owns or is referenced by, and the user
// itself, atomically.
type Purger interface {
	PurgeUser(ctx context.Context, userID uuid.UUID) (PurgeResult, error)
}
