package subscription

import (
	"context"
)

// SubscriptionRepository defines persistence operations for subscriptions.
type SubscriptionRepository interface {
	// Save inserts s; saving a key that already exists is a no-op.
	Save(ctx context.Context, s *Subscription) error
	// DeleteByID removes the row for id; a missing row is not an error.
	DeleteByID(ctx context.Context, id SubscriptionID) error
	ExistsByID(ctx context.Context, id SubscriptionID) (bool, error)
}
