package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	subDomain "github.com/onlyfin/service-social/internal/domain/subscription"
)

// SubscriptionModel is the GORM model for the subscriptions table. The
// primary key is the (subscriber_id, subscribed_to_id) pair.
type SubscriptionModel struct {
	SubscriberID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	SubscribedToID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt      time.Time `gorm:"not null"`
}

// TableName sets the table name.
func (SubscriptionModel) TableName() string { return "subscriptions" }

// GormSubscriptionRepository implements SubscriptionRepository using GORM.
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository.
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// Save inserts the subscription, leaving an existing row for the same key untouched.
func (r *GormSubscriptionRepository) Save(ctx context.Context, s *subDomain.Subscription) error {
	model := toSubModel(s)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subscriber_id"}, {Name: "subscribed_to_id"}},
			DoNothing: true,
		}).
		Create(&model).Error
}

// DeleteByID removes the subscription with the given key, if present.
func (r *GormSubscriptionRepository) DeleteByID(ctx context.Context, id subDomain.SubscriptionID) error {
	return r.db.WithContext(ctx).
		Where("subscriber_id = ? AND subscribed_to_id = ?", id.Subscriber, id.SubscribedTo).
		Delete(&SubscriptionModel{}).Error
}

// ExistsByID reports whether a subscription with the given key exists.
func (r *GormSubscriptionRepository) ExistsByID(ctx context.Context, id subDomain.SubscriptionID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&SubscriptionModel{}).
		Where("subscriber_id = ? AND subscribed_to_id = ?", id.Subscriber, id.SubscribedTo).
		Count(&count).Error
	return count > 0, err
}

// deleteAllInvolving removes every subscription where userID is on either side.
func (r *GormSubscriptionRepository) deleteAllInvolving(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("subscriber_id = ? OR subscribed_to_id = ?", userID, userID).
		Delete(&SubscriptionModel{})
	return result.RowsAffected, result.Error
}

func toSubModel(s *subDomain.Subscription) SubscriptionModel {
	return SubscriptionModel{
		SubscriberID:   s.ID().Subscriber,
		SubscribedToID: s.ID().SubscribedTo,
		CreatedAt:      s.CreatedAt(),
	}
}
