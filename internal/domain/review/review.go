package review

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxContentLength bounds the review text, in characters.
const MaxContentLength = 2000

var (
	ErrEmptyContent   = errors.New("review content is required")
	ErrContentTooLong = fmt.Errorf("review content exceeds %d characters", MaxContentLength)
	ErrSelfReview     = errors.New("users cannot review themselves")
)

// Review is one user's written opinion about another user.
type Review struct {
	id        uuid.UUID
	authorID  uuid.UUID
	targetID  uuid.UUID
	content   string
	createdAt time.Time
}

// NewReview validates and creates a Review.
func NewReview(authorID, targetID uuid.UUID, content string) (*Review, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if len([]rune(content)) > MaxContentLength {
		return nil, ErrContentTooLong
	}
	if authorID == targetID {
		return nil, ErrSelfReview
	}

	return &Review{
		id:        uuid.New(),
		authorID:  authorID,
		targetID:  targetID,
		content:   content,
		createdAt: time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Review from persistence.
func Reconstruct(id, authorID, targetID uuid.UUID, content string, createdAt time.Time) *Review {
	return &Review{id: id, authorID: authorID, targetID: targetID, content: content, createdAt: createdAt}
}

// Getters.
func (r *Review) ID() uuid.UUID        { return r.id }
func (r *Review) AuthorID() uuid.UUID  { return r.authorID }
func (r *Review) TargetID() uuid.UUID  { return r.targetID }
func (r *Review) Content() string      { return r.content }
func (r *Review) CreatedAt() time.Time { return r.createdAt }
