package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	reviewDomain "github.com/onlyfin/service-social/internal/domain/review"
)

// ReviewModel is the GORM model for the reviews table.
type ReviewModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	TargetID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName sets the table name.
func (ReviewModel) TableName() string { return "reviews" }

// GormReviewRepository implements ReviewRepository using GORM.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository.
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Save persists a new review.
func (r *GormReviewRepository) Save(ctx context.Context, rv *reviewDomain.Review) error {
	model := toReviewModel(rv)
	return r.db.WithContext(ctx).Create(&model).Error
}

// DeleteAllByAuthor removes every review written by authorID.
func (r *GormReviewRepository) DeleteAllByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("author_id = ?", authorID).Delete(&ReviewModel{})
	return result.RowsAffected, result.Error
}

// DeleteAllByAuthorAndTarget removes reviews matching both author and target.
func (r *GormReviewRepository) DeleteAllByAuthorAndTarget(ctx context.Context, authorID, targetID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("author_id = ? AND target_id = ?", authorID, targetID).
		Delete(&ReviewModel{})
	return result.RowsAffected, result.Error
}

// FindAllByTarget returns every review about targetID, oldest first.
func (r *GormReviewRepository) FindAllByTarget(ctx context.Context, targetID uuid.UUID) ([]*reviewDomain.Review, error) {
	var models []ReviewModel
	if err := r.db.WithContext(ctx).
		Where("target_id = ?", targetID).
		Order("created_at ASC, id ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	reviews := make([]*reviewDomain.Review, len(models))
	for i := range models {
		reviews[i] = toReviewDomain(&models[i])
	}
	return reviews, nil
}

func (r *GormReviewRepository) deleteAllByTarget(ctx context.Context, targetID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("target_id = ?", targetID).Delete(&ReviewModel{})
	return result.RowsAffected, result.Error
}

func toReviewModel(rv *reviewDomain.Review) ReviewModel {
	return ReviewModel{
		ID:        rv.ID(),
		AuthorID:  rv.AuthorID(),
		TargetID:  rv.TargetID(),
		Content:   rv.Content(),
		CreatedAt: rv.CreatedAt(),
	}
}

func toReviewDomain(m *ReviewModel) *reviewDomain.Review {
	return reviewDomain.Reconstruct(m.ID, m.AuthorID, m.TargetID, m.Content, m.CreatedAt)
}
