package application

import "github.com/onlyfin/service-social/pkg/apperror"

var (
	// ErrTargetNotFound means the username a caller asked to act on does not
	// exist. It is an expected outcome, not a failure.
	ErrTargetNotFound = apperror.NotFound("target user not found")

	ErrUserNotFound = apperror.NotFound("user not found")
)
