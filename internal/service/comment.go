package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rayspace/blog-service/internal/model"
	"github.com/rayspace/blog-service/internal/repository"
	"github.com/rayspace/blog-service/pkg/utils"
	"go.uber.org/zap"
)

const MAX_COMMENT_FIELD_LENGTH = 255

type commentService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	sanitize func(string) string
}

func newCommentService(logger *zap.Logger, repo *repository.Repository) Comment {
	return &commentService{
		logger:   logger,
		repo:     repo,
		sanitize: utils.SanitizeComment,
	}
}

func tooLong(s string) bool {
	return utf8.RuneCountInString(s) > MAX_COMMENT_FIELD_LENGTH
}

// Append validates lengths on the raw input; oversized fields are rejected,
// never truncated.
func (s *commentService) Append(ctx context.Context, principal model.Principal, text string) (*model.Comment, error) {
	if !principal.IsAuthenticated() {
		return nil, ErrUnauthorized
	}

	switch {
	case tooLong(principal.UserID):
		return nil, ErrUserIDTooLong
	case tooLong(principal.DisplayName):
		return nil, ErrUserNameTooLong
	case tooLong(text):
		return nil, ErrCommentTooLong
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrCommentRequired
	}

	clean := s.sanitize(text)
	if clean == "" {
		return nil, ErrCommentRequired
	}

	comment, err := s.repo.Postgres.Comment.Create(ctx, model.Comment{
		UserID:  principal.UserID,
		Name:    principal.DisplayName,
		Comment: clean,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to create comment of user(%s): %s", principal.UserID, err.Error())
		return nil, ErrInternal
	}

	return comment, nil
}

// Recent returns at most limit comments, newest first. No comments is an
// empty list, not an error.
func (s *commentService) Recent(ctx context.Context, limit int) ([]*model.Comment, error) {
	maxLimit(&limit)

	comments, err := s.repo.Postgres.Comment.FindRecent(ctx, limit)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find recent comments: %s", err.Error())
		return nil, ErrInternal
	}

	return comments, nil
}
