package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	subDomain "github.com/onlyfin/service-social/internal/domain/subscription"
	userDomain "github.com/onlyfin/service-social/internal/domain/user"
	"github.com/onlyfin/service-social/pkg/events"
)

// SubscriptionStatusDTO reports whether the caller follows a user.
type SubscriptionStatusDTO struct {
	TargetUsername string `json:"target_username"`
	Subscribed     bool   `json:"subscribed"`
}

// SubscriptionService handles subscription use cases.
type SubscriptionService struct {
	users     *UserService
	repo      subDomain.SubscriptionRepository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(users *UserService, repo subDomain.SubscriptionRepository, publisher EventPublisher, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{users: users, repo: repo, publisher: publisher, logger: logger}
}

// Subscribe makes the acting user a subscriber of targetUsername. Repeating
// it for an existing pair succeeds without changing anything.
func (s *SubscriptionService) Subscribe(ctx context.Context, actingUsername, targetUsername string) error {
	acting, target, err := s.users.ResolvePair(ctx, actingUsername, targetUsername)
	if err != nil {
		return err
	}

	id := subDomain.NewSubscriptionID(acting.ID(), target.ID())
	if id.IsSelf() {
		s.logger.Warn("user subscribing to themselves", zap.String("username", acting.Username()))
	}

	if err := s.repo.Save(ctx, subDomain.NewSubscription(id)); err != nil {
		return fmt.Errorf("failed to save subscription: %w", err)
	}

	s.logger.Info("subscription created",
		zap.String("subscriber", acting.Username()),
		zap.String("subscribed_to", target.Username()),
	)
	publishEvent(ctx, s.publisher, s.logger, events.SubscriptionCreated, id.String(), toSubscriptionEvent(acting, target))
	return nil
}

// Unsubscribe removes the acting user's subscription to targetUsername.
// Removing a subscription that does not exist succeeds.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, actingUsername, targetUsername string) error {
	acting, target, err := s.users.ResolvePair(ctx, actingUsername, targetUsername)
	if err != nil {
		return err
	}

	id := subDomain.NewSubscriptionID(acting.ID(), target.ID())
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	s.logger.Info("subscription removed",
		zap.String("subscriber", acting.Username()),
		zap.String("subscribed_to", target.Username()),
	)
	publishEvent(ctx, s.publisher, s.logger, events.SubscriptionDeleted, id.String(), toSubscriptionEvent(acting, target))
	return nil
}

// GetStatus reports whether the acting user is subscribed to targetUsername.
func (s *SubscriptionService) GetStatus(ctx context.Context, actingUsername, targetUsername string) (*SubscriptionStatusDTO, error) {
	acting, target, err := s.users.ResolvePair(ctx, actingUsername, targetUsername)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByID(ctx, subDomain.NewSubscriptionID(acting.ID(), target.ID()))
	if err != nil {
		return nil, fmt.Errorf("failed to check subscription: %w", err)
	}
	return &SubscriptionStatusDTO{TargetUsername: target.Username(), Subscribed: exists}, nil
}

func toSubscriptionEvent(subscriber, target *userDomain.User) events.SubscriptionEvent {
	return events.SubscriptionEvent{
		SubscriberID:         subscriber.ID(),
		SubscriberUsername:   subscriber.Username(),
		SubscribedToID:       target.ID(),
		SubscribedToUsername: target.Username(),
		OccurredAt:           time.Now().UTC(),
	}
}
