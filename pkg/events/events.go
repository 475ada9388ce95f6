// Package events holds the topics, event types and payloads exchanged over
// Kafka with other services.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics.
const (
	TopicUserEvents   = "user.events"
	TopicSocialEvents = "social.events"
)

// Source is the CloudEvents source of everything this service publishes.
const Source = "service-social"

// Event types consumed from the user service.
const (
	UserCreated = "user.created"
	UserUpdated = "user.updated"
	UserDeleted = "user.deleted"
)

// Event types published by this service.
const (
	SubscriptionCreated = "social.subscription.created"
	SubscriptionDeleted = "social.subscription.deleted"
	ReviewCreated       = "social.review.created"
	ReviewsWithdrawn    = "social.review.withdrawn"
	UserPurged          = "social.user.purged"
)

// UserEvent is the payload of every user.* event.
type UserEvent struct {
	UserID     uuid.UUID `json:"user_id"`
	Username   string    `json:"username"`
	OccurredAt time.Time `json:"occurred_at"`
}

// SubscriptionEvent is published after a subscription row is written or removed.
type SubscriptionEvent struct {
	SubscriberID         uuid.UUID `json:"subscriber_id"`
	SubscriberUsername   string    `json:"subscriber_username"`
	SubscribedToID       uuid.UUID `json:"subscribed_to_id"`
	SubscribedToUsername string    `json:"subscribed_to_username"`
	OccurredAt           time.Time `json:"occurred_at"`
}

// ReviewCreatedEvent is published after a review is stored.
type ReviewCreatedEvent struct {
	ReviewID   uuid.UUID `json:"review_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	TargetID   uuid.UUID `json:"target_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ReviewsWithdrawnEvent is published after an author removes their reviews of a target.
type ReviewsWithdrawnEvent struct {
	AuthorID   uuid.UUID `json:"author_id"`
	TargetID   uuid.UUID `json:"target_id"`
	Deleted    int64     `json:"deleted"`
	OccurredAt time.Time `json:"occurred_at"`
}

// UserPurgedEvent is published after a deleted user's data is removed.
type UserPurgedEvent struct {
	UserID               uuid.UUID `json:"user_id"`
	ReviewsDeleted       int64     `json:"reviews_deleted"`
	SubscriptionsDeleted int64     `json:"subscriptions_deleted"`
	OccurredAt           time.Time `json:"occurred_at"`
}
