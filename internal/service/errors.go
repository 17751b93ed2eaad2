package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("admin access required")
	ErrNotFound     = errors.New("not found")
	ErrInternal     = errors.New("internal server error")
	ErrUpstream     = errors.New("upstream service unavailable")

	ErrTitleRequired         = fmt.Errorf("%w: title cannot be empty", ErrValidation)
	ErrContentRequired       = fmt.Errorf("%w: content cannot be empty", ErrValidation)
	ErrNothingToUpdate       = fmt.Errorf("%w: no fields to update", ErrValidation)
	ErrPublishedDateRequired = fmt.Errorf("%w: published date cannot be empty", ErrValidation)
	ErrCommentRequired       = fmt.Errorf("%w: comment cannot be empty", ErrValidation)
	ErrCommentTooLong        = fmt.Errorf("%w: comment is too long", ErrValidation)
	ErrUserIDTooLong         = fmt.Errorf("%w: user id is too long", ErrValidation)
	ErrUserNameTooLong       = fmt.Errorf("%w: user name is too long", ErrValidation)
	ErrPostNotFound          = fmt.Errorf("post %w", ErrNotFound)
	ErrContentNotFound       = fmt.Errorf("post content %w", ErrNotFound)
	ErrInvalidSession        = fmt.Errorf("%w: invalid session", ErrUnauthorized)
	ErrOAuthStateDenied      = fmt.Errorf("%w: oauth state mismatch", ErrUnauthorized)
)
