package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	reviewDomain "github.com/onlyfin/service-social/internal/domain/review"
	"github.com/onlyfin/service-social/pkg/apperror"
	"github.com/onlyfin/service-social/pkg/events"
)

// CreateReviewRequest holds data to write a review.
type CreateReviewRequest struct {
	TargetUsername string `json:"target_username" binding:"required"`
	Content        string `json:"content" binding:"required"`
}

// ReviewDTO is the API response for a review.
type ReviewDTO struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"author_id"`
	TargetID  uuid.UUID `json:"target_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// DeletedDTO reports how many rows a bulk delete removed.
type DeletedDTO struct {
	Deleted int64 `json:"deleted"`
}

// ReviewService handles review use cases.
type ReviewService struct {
	users     *UserService
	repo      reviewDomain.ReviewRepository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewReviewService creates a new ReviewService.
func NewReviewService(users *UserService, repo reviewDomain.ReviewRepository, publisher EventPublisher, logger *zap.Logger) *ReviewService {
	return &ReviewService{users: users, repo: repo, publisher: publisher, logger: logger}
}

// CreateReview stores a review by the acting user about req.TargetUsername.
func (s *ReviewService) CreateReview(ctx context.Context, actingUsername string, req CreateReviewRequest) (*ReviewDTO, error) {
	author, target, err := s.users.ResolvePair(ctx, actingUsername, req.TargetUsername)
	if err != nil {
		return nil, err
	}

	rv, err := reviewDomain.NewReview(author.ID(), target.ID(), req.Content)
	if err != nil {
		if errors.Is(err, reviewDomain.ErrEmptyContent) ||
			errors.Is(err, reviewDomain.ErrContentTooLong) ||
			errors.Is(err, reviewDomain.ErrSelfReview) {
			return nil, apperror.Wrap(apperror.KindBadRequest, err.Error(), err)
		}
		return nil, err
	}

	if err := s.repo.Save(ctx, rv); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	s.logger.Info("review created",
		zap.String("review_id", rv.ID().String()),
		zap.String("author", author.Username()),
		zap.String("target", target.Username()),
	)
	publishEvent(ctx, s.publisher, s.logger, events.ReviewCreated, rv.ID().String(), events.ReviewCreatedEvent{
		ReviewID:   rv.ID(),
		AuthorID:   rv.AuthorID(),
		TargetID:   rv.TargetID(),
		OccurredAt: rv.CreatedAt(),
	})
	return toReviewDTO(rv), nil
}

// GetReviewsForTarget lists every review about targetUsername.
func (s *ReviewService) GetReviewsForTarget(ctx context.Context, targetUsername string) ([]*ReviewDTO, error) {
	target, ok, err := s.users.FindUser(ctx, targetUsername)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTargetNotFound
	}

	reviews, err := s.repo.FindAllByTarget(ctx, target.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	dtos := make([]*ReviewDTO, len(reviews))
	for i, rv := range reviews {
		dtos[i] = toReviewDTO(rv)
	}
	return dtos, nil
}

// WithdrawReviews removes the acting user's reviews of targetUsername.
func (s *ReviewService) WithdrawReviews(ctx context.Context, actingUsername, targetUsername string) (*DeletedDTO, error) {
	author, target, err := s.users.ResolvePair(ctx, actingUsername, targetUsername)
	if err != nil {
		return nil, err
	}

	deleted, err := s.repo.DeleteAllByAuthorAndTarget(ctx, author.ID(), target.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to withdraw reviews: %w", err)
	}

	s.logger.Info("reviews withdrawn",
		zap.String("author", author.Username()),
		zap.String("target", target.Username()),
		zap.Int64("deleted", deleted),
	)
	if deleted > 0 {
		publishEvent(ctx, s.publisher, s.logger, events.ReviewsWithdrawn, author.ID().String(), events.ReviewsWithdrawnEvent{
			AuthorID:   author.ID(),
			TargetID:   target.ID(),
			Deleted:    deleted,
			OccurredAt: time.Now().UTC(),
		})
	}
	return &DeletedDTO{Deleted: deleted}, nil
}

func toReviewDTO(rv *reviewDomain.Review) *ReviewDTO {
	return &ReviewDTO{
		ID:        rv.ID(),
		AuthorID:  rv.AuthorID(),
		TargetID:  rv.TargetID(),
		Content:   rv.Content(),
		CreatedAt: rv.CreatedAt(),
	}
}
