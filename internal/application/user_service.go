package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	userDomain "github.com/onlyfin/service-social/internal/domain/user"
)

// UserService resolves usernames against the local user replica.
type UserService struct {
	repo   userDomain.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo userDomain.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// GetUser resolves a username that is expected to exist, such as the
// authenticated principal. Absence is an error.
func (s *UserService) GetUser(ctx context.Context, username string) (*userDomain.User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user %q: %w", username, err)
	}
	return u, nil
}

// FindUser resolves a username that may legitimately be unknown. The bool is
// false when no such user exists; err is reserved for lookup failures.
func (s *UserService) FindUser(ctx context.Context, username string) (*userDomain.User, bool, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, userDomain.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up user %q: %w", username, err)
	}
	return u, true, nil
}

// ResolvePair resolves the acting principal and a target username. An
// unknown target yields ErrTargetNotFound; an unknown principal is an
// internal error since the caller has already been authenticated.
func (s *UserService) ResolvePair(ctx context.Context, actingUsername, targetUsername string) (*userDomain.User, *userDomain.User, error) {
	acting, err := s.GetUser(ctx, actingUsername)
	if err != nil {
		return nil, nil, fmt.Errorf("acting user: %w", err)
	}

	target, ok, err := s.FindUser(ctx, targetUsername)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrTargetNotFound
	}
	return acting, target, nil
}

// SyncUser records a user announced by the user service.
func (s *UserService) SyncUser(ctx context.Context, id uuid.UUID, username string) error {
	u, err := userDomain.NewUser(id, username)
	if err != nil {
		return err
	}
	displaced, err := s.repo.Upsert(ctx, u)
	if err != nil {
		return fmt.Errorf("failed to sync user: %w", err)
	}
	if displaced != uuid.Nil {
		s.logger.Warn("purged stale user holding the synced username",
			zap.String("user_id", id.String()),
			zap.String("displaced_user_id", displaced.String()),
			zap.String("username", u.Username()),
		)
	}
	s.logger.Debug("user synced", zap.String("user_id", id.String()), zap.String("username", u.Username()))
	return nil
}
