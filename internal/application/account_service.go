package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	reviewDomain "github.com/onlyfin/service-social/internal/domain/review"
	userDomain "github.com/onlyfin/service-social/internal/domain/user"
	"github.com/onlyfin/service-social/pkg/events"
)

// AccountService reacts to account lifecycle changes owned by the user
// service and exposes the admin purge.
type AccountService struct {
	users     *UserService
	reviews   reviewDomain.ReviewRepository
	purger    userDomain.Purger
	publisher EventPublisher
	logger    *zap.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(users *UserService, reviews reviewDomain.ReviewRepository, purger userDomain.Purger, publisher EventPublisher, logger *zap.Logger) *AccountService {
	return &AccountService{users: users, reviews: reviews, purger: purger, publisher: publisher, logger: logger}
}

// HandleUserUpserted mirrors a created or renamed user.
func (s *AccountService) HandleUserUpserted(ctx context.Context, event events.UserEvent) error {
	return s.users.SyncUser(ctx, event.UserID, event.Username)
}

// HandleUserDeleted removes the user's reviews and subscriptions, then the
// user itself.
func (s *AccountService) HandleUserDeleted(ctx context.Context, event events.UserEvent) error {
	res, err := s.purger.PurgeUser(ctx, event.UserID)
	if err != nil {
		return fmt.Errorf("failed to purge user %s: %w", event.UserID, err)
	}

	s.logger.Info("user purged",
		zap.String("user_id", event.UserID.String()),
		zap.Int64("reviews_deleted", res.ReviewsDeleted),
		zap.Int64("subscriptions_deleted", res.SubscriptionsDeleted),
	)
	publishEvent(ctx, s.publisher, s.logger, events.UserPurged, event.UserID.String(), events.UserPurgedEvent{
		UserID:               event.UserID,
		ReviewsDeleted:       res.ReviewsDeleted,
		SubscriptionsDeleted: res.SubscriptionsDeleted,
		OccurredAt:           time.Now().UTC(),
	})
	return nil
}

// PurgeAuthoredReviews deletes every review written by username.
func (s *AccountService) PurgeAuthoredReviews(ctx context.Context, username string) (*DeletedDTO, error) {
	author, ok, err := s.users.FindUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}

	deleted, err := s.reviews.DeleteAllByAuthor(ctx, author.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to delete reviews: %w", err)
	}

	s.logger.Info("authored reviews purged", zap.String("author", author.Username()), zap.Int64("deleted", deleted))
	return &DeletedDTO{Deleted: deleted}, nil
}
