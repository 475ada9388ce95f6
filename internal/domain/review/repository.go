package review

import (
	"context"

	"github.com/google/uuid"
)

// ReviewRepository is the query surface over the reviews table. Bulk deletes
// return the number of rows removed; zero is not an error.
type ReviewRepository interface {
	Save(ctx context.Context, r *Review) error
	DeleteAllByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
	DeleteAllByAuthorAndTarget(ctx context.Context, authorID, targetID uuid.UUID) (int64, error)
	FindAllByTarget(ctx context.Context, targetID uuid.UUID) ([]*Review, error)
}
