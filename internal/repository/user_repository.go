package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	userDomain "github.com/onlyfin/service-social/internal/domain/user"
)

// UserModel is the GORM model for the users replica table.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"type:varchar(100);uniqueIndex:idx_users_username;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName sets the table name.
func (UserModel) TableName() string { return "users" }

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByUsername returns the user with the exact username.
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userDomain.ErrNotFound
		}
		return nil, err
	}
	return userDomain.Reconstruct(model.ID, model.Username, model.CreatedAt), nil
}

// Upsert inserts the user or renames an existing one. A different id still
// holding the username is a replica row whose delete or rename was never
// seen; it is purged in the same transaction and its id returned.
func (r *GormUserRepository) Upsert(ctx context.Context, u *userDomain.User) (uuid.UUID, error) {
	model := UserModel{
		ID:        u.ID(),
		Username:  u.Username(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: time.Now().UTC(),
	}

	var displaced uuid.UUID
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stale UserModel
		err := tx.Where("username = ? AND id <> ?", model.Username, model.ID).Take(&stale).Error
		switch {
		case err == nil:
			if _, err := purgeUserTx(ctx, tx, stale.ID); err != nil {
				return err
			}
			displaced = stale.ID
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "updated_at"}),
		}).Create(&model).Error
	})
	if err != nil {
		return uuid.Nil, err
	}
	return displaced, nil
}
