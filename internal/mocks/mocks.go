// Package mocks provides testify mocks of the repository and publisher ports.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	reviewDomain "github.com/onlyfin/service-social/internal/domain/review"
	subDomain "github.com/onlyfin/service-social/internal/domain/subscription"
	userDomain "github.com/onlyfin/service-social/internal/domain/user"
	"github.com/onlyfin/service-social/pkg/kafka"
)

// UserRepository mocks userDomain.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) FindByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *UserRepository) Upsert(ctx context.Context, u *userDomain.User) (uuid.UUID, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// SubscriptionRepository mocks subDomain.SubscriptionRepository.
type SubscriptionRepository struct {
	mock.Mock
}

func (m *SubscriptionRepository) Save(ctx context.Context, s *subDomain.Subscription) error {
	return m.Called(ctx, s).Error(0)
}

func (m *SubscriptionRepository) DeleteByID(ctx context.Context, id subDomain.SubscriptionID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *SubscriptionRepository) ExistsByID(ctx context.Context, id subDomain.SubscriptionID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// ReviewRepository mocks reviewDomain.ReviewRepository.
type ReviewRepository struct {
	mock.Mock
}

func (m *ReviewRepository) Save(ctx context.Context, r *reviewDomain.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *ReviewRepository) DeleteAllByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ReviewRepository) DeleteAllByAuthorAndTarget(ctx context.Context, authorID, targetID uuid.UUID) (int64, error) {
	args := m.Called(ctx, authorID, targetID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ReviewRepository) FindAllByTarget(ctx context.Context, targetID uuid.UUID) ([]*reviewDomain.Review, error) {
	args := m.Called(ctx, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reviewDomain.Review), args.Error(1)
}

// Purger mocks userDomain.Purger.
type Purger struct {
	mock.Mock
}

func (m *Purger) PurgeUser(ctx context.Context, userID uuid.UUID) (userDomain.PurgeResult, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(userDomain.PurgeResult), args.Error(1)
}

// EventPublisher mocks application.EventPublisher.
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishEvent(ctx context.Context, topic string, ce kafka.CloudEvent) error {
	return m.Called(ctx, topic, ce).Error(0)
}

var (
	_ userDomain.UserRepository        = (*UserRepository)(nil)
	_ subDomain.SubscriptionRepository = (*SubscriptionRepository)(nil)
	_ reviewDomain.ReviewRepository    = (*ReviewRepository)(nil)
	_ userDomain.Purger                = (*Purger)(nil)
)
