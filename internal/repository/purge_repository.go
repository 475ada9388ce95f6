package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userDomain "github.com/onlyfin/service-social/internal/domain/user"
)

// GormPurgeRepository removes a user and everything that references them in
// a single transaction.
type GormPurgeRepository struct {
	db *gorm.DB
}

// NewGormPurgeRepository creates a new GormPurgeRepository.
func NewGormPurgeRepository(db *gorm.DB) *GormPurgeRepository {
	return &GormPurgeRepository{db: db}
}

// PurgeUser deletes reviews written by or about the user, subscriptions on
// either side, and finally the replica row.
func (r *GormPurgeRepository) PurgeUser(ctx context.Context, userID uuid.UUID) (userDomain.PurgeResult, error) {
	var res userDomain.PurgeResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		res, err = purgeUserTx(ctx, tx, userID)
		return err
	})
	return res, err
}

func purgeUserTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (userDomain.PurgeResult, error) {
	var res userDomain.PurgeResult
	reviews := NewGormReviewRepository(tx)
	authored, err := reviews.DeleteAllByAuthor(ctx, userID)
	if err != nil {
		return res, err
	}
	received, err := reviews.deleteAllByTarget(ctx, userID)
	if err != nil {
		return res, err
	}
	res.ReviewsDeleted = authored + received

	res.SubscriptionsDeleted, err = NewGormSubscriptionRepository(tx).deleteAllInvolving(ctx, userID)
	if err != nil {
		return res, err
	}

	return res, tx.Where("id = ?", userID).Delete(&UserModel{}).Error
}
