package subscription

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionID is the composite key of a subscription. It is comparable,
// so two ids are equal exactly when both users match, and it can be used
// directly as a map key.
type SubscriptionID struct {
	Subscriber   uuid.UUID
	SubscribedTo uuid.UUID
}

// NewSubscriptionID builds the key for subscriber following subscribedTo.
func NewSubscriptionID(subscriber, subscribedTo uuid.UUID) SubscriptionID {
	return SubscriptionID{Subscriber: subscriber, SubscribedTo: subscribedTo}
}

// IsSelf reports whether a user is subscribing to themselves.
func (id SubscriptionID) IsSelf() bool {
	return id.Subscriber == id.SubscribedTo
}

// String renders the key as "subscriber:subscribedTo".
func (id SubscriptionID) String() string {
	return id.Subscriber.String() + ":" + id.SubscribedTo.String()
}

// Less orders keys by subscriber, then subscribedTo.
func (id SubscriptionID) Less(other SubscriptionID) bool {
	if id.Subscriber != other.Subscriber {
		return id.Subscriber.String() < other.Subscriber.String()
	}
	return id.SubscribedTo.String() < other.SubscribedTo.String()
}

// Subscription records that one user follows another. It carries no payload
// beyond its key.
type Subscription struct {
	id        SubscriptionID
	createdAt time.Time
}

// NewSubscription creates a subscription for id.
func NewSubscription(id SubscriptionID) *Subscription {
	return &Subscription{id: id, createdAt: time.Now().UTC()}
}

// Reconstruct rebuilds a Subscription from persistence.
func Reconstruct(id SubscriptionID, createdAt time.Time) *Subscription {
	return &Subscription{id: id, createdAt: createdAt}
}

func (s *Subscription) ID() SubscriptionID   { return s.id }
func (s *Subscription) CreatedAt() time.Time { return s.createdAt }
