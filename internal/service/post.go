package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rayspace/blog-service/internal/dto"
	"github.com/rayspace/blog-service/internal/model"
	"github.com/rayspace/blog-service/internal/repository"
	"github.com/rayspace/blog-service/internal/repository/filestore"
	"github.com/rayspace/blog-service/internal/repository/postgres"
	"github.com/rayspace/blog-service/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// postService keeps a post's metadata row and its rendered content file in
// step. The row is authoritative; the two sinks share no transaction, so a
// failed second write leaves the first in place and is reported as ErrInternal.
type postService struct {
	logger  *zap.Logger
	repo    *repository.Repository
	listTTL time.Duration
	now     func() time.Time
}

func newPostService(logger *zap.Logger, repo *repository.Repository, listTTL time.Duration, now func() time.Time) Post {
	return &postService{
		logger:  logger,
		repo:    repo,
		listTTL: listTTL,
		now:     now,
	}
}

func requireAdmin(principal model.Principal) error {
	if principal.IsAdmin() {
		return nil
	}
	if principal.IsAuthenticated() {
		return ErrForbidden
	}
	return ErrUnauthorized
}

func (s *postService) Create(ctx context.Context, principal model.Principal, req dto.CreatePostRequest) (*model.Post, error) {
	if err := requireAdmin(principal); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrContentRequired
	}

	publishedDate := model.NewDate(s.now())
	if req.PublishedDate != nil && !req.PublishedDate.IsZero() {
		publishedDate = *req.PublishedDate
	}

	post, err := s.repo.Postgres.Post.Create(ctx, title, publishedDate)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create post metadata: %s", err.Error())
		return nil, ErrInternal
	}
	s.invalidateList(ctx)

	if err := s.writeContent(ctx, post.ID, title, req.Content); err != nil {
		s.logger.Sugar().Errorf("post(%d) metadata was saved but content was not, row is orphaned: %s", post.ID, err.Error())
		return nil, ErrInternal
	}

	return post, nil
}

// Update applies title, date and content in that order. A failing write stops
// the remaining ones without reverting those already applied.
func (s *postService) Update(ctx context.Context, principal model.Principal, id int64, req dto.UpdatePostRequest) error {
	if err := requireAdmin(principal); err != nil {
		return err
	}
	if req.Empty() {
		return ErrNothingToUpdate
	}

	var title string
	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
		if title == "" {
			return ErrTitleRequired
		}
	}
	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		return ErrContentRequired
	}
	if req.PublishedDate != nil && req.PublishedDate.IsZero() {
		return ErrPublishedDateRequired
	}

	defer s.invalidateList(ctx)

	if req.Title != nil {
		if err := s.repo.Postgres.Post.UpdateTitle(ctx, id, title); err != nil {
			return s.postStoreError(id, "title", err)
		}
	}

	if req.PublishedDate != nil {
		if err := s.repo.Postgres.Post.UpdatePublishedDate(ctx, id, *req.PublishedDate); err != nil {
			return s.postStoreError(id, "published date", err)
		}
	}

	if req.Content != nil {
		if req.Title == nil {
			post, err := s.repo.Postgres.Post.FindByID(ctx, id)
			if err != nil {
				return s.postStoreError(id, "title lookup", err)
			}
			title = post.Title
		}

		if err := s.writeContent(ctx, id, title, *req.Content); err != nil {
			s.logger.Sugar().Errorf("failed to write post(%d) content: %s", id, err.Error())
			return ErrInternal
		}
		return nil
	}

	if req.Title != nil {
		return s.retitleContent(ctx, id, title)
	}

	return nil
}

// retitleContent re-renders the stored content file so its embedded title
// follows the metadata row.
func (s *postService) retitleContent(ctx context.Context, id int64, title string) error {
	rendered, err := s.repo.Content.Read(ctx, id)
	if err != nil {
		if errors.Is(err, filestore.ErrContentNotFound) {
			s.logger.Sugar().Warnf("post(%d) has no content file, title updated in metadata only", id)
			return nil
		}
		s.logger.Sugar().Errorf("failed to read post(%d) content: %s", id, err.Error())
		return ErrInternal
	}

	body, err := extractPostBody(rendered)
	if err != nil {
		s.logger.Sugar().Errorf("failed to extract post(%d) body: %s", id, err.Error())
		return ErrInternal
	}

	if err := s.writeContent(ctx, id, title, body); err != nil {
		s.logger.Sugar().Errorf("failed to re-render post(%d) content: %s", id, err.Error())
		return ErrInternal
	}

	return nil
}

func (s *postService) Delete(ctx context.Context, principal model.Principal, id int64) error {
	if err := requireAdmin(principal); err != nil {
		return err
	}

	deleted, err := s.repo.Postgres.Post.Delete(ctx, id)
	if err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%d) metadata: %s", id, err.Error())
		return ErrInternal
	}
	s.invalidateList(ctx)

	if err := s.repo.Content.Delete(ctx, id); err != nil {
		if !errors.Is(err, filestore.ErrContentNotFound) {
			s.logger.Sugar().Errorf("post(%d) metadata was deleted but content was not: %s", id, err.Error())
			return ErrInternal
		}
		if !deleted {
			return ErrPostNotFound
		}
		s.logger.Sugar().Warnf("post(%d) had no content file to delete", id)
		return nil
	}

	if !deleted {
		s.logger.Sugar().Warnf("deleted orphaned content file of post(%d) without metadata", id)
	}

	return nil
}

func (s *postService) Get(ctx context.Context, id int64) (string, error) {
	content, err := s.repo.Content.Read(ctx, id)
	if err != nil {
		if errors.Is(err, filestore.ErrContentNotFound) {
			return "", ErrContentNotFound
		}
		s.logger.Sugar().Errorf("failed to read post(%d) content: %s", id, err.Error())
		return "", ErrInternal
	}

	return content, nil
}

// List serves the cached list of the current version. A write between the
// postgres read and the cache fill bumps the version, so the filled entry is
// never read.
func (s *postService) List(ctx context.Context) ([]*model.Post, error) {
	version, err := redisrepo.GetVersion(s.repo.Redis.Default, ctx, redisrepo.PostsListVersionKey())
	if err != nil {
		s.logger.Sugar().Errorf("failed to get posts list version from redis: %s", err.Error())
		return s.findAll(ctx)
	}

	cachedPosts, err := redisrepo.GetMany[model.Post](s.repo.Redis.Default, ctx, redisrepo.PostsListKey(version))
	if err == nil {
		return cachedPosts, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get posts list from redis: %s", err.Error())
	}

	posts, err := s.findAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.PostsListKey(version), posts, s.listTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set posts list in redis: %s", err.Error())
	}

	return posts, nil
}

func (s *postService) findAll(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.repo.Postgres.Post.FindAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts in postgres: %s", err.Error())
		return nil, ErrInternal
	}

	return posts, nil
}

func (s *postService) AdminList(ctx context.Context, principal model.Principal) ([]*model.Post, error) {
	if err := requireAdmin(principal); err != nil {
		return nil, err
	}

	return s.findAll(ctx)
}

// FindOrphans lists metadata rows whose content file is missing.
func (s *postService) FindOrphans(ctx context.Context, principal model.Principal) ([]*model.Post, error) {
	posts, err := s.AdminList(ctx, principal)
	if err != nil {
		return nil, err
	}

	orphans := make([]*model.Post, 0)
	for _, post := range posts {
		exists, err := s.repo.Content.Exists(ctx, post.ID)
		if err != nil {
			s.logger.Sugar().Errorf("failed to check post(%d) content: %s", post.ID, err.Error())
			return nil, ErrInternal
		}
		if !exists {
			orphans = append(orphans, post)
		}
	}

	return orphans, nil
}

// FindTitleMismatches lists rows whose content file carries a different title,
// as left behind by a title update whose re-render failed. Rows without a
// content file are reported by FindOrphans instead.
func (s *postService) FindTitleMismatches(ctx context.Context, principal model.Principal) ([]*model.Post, error) {
	posts, err := s.AdminList(ctx, principal)
	if err != nil {
		return nil, err
	}

	mismatches := make([]*model.Post, 0)
	for _, post := range posts {
		rendered, err := s.repo.Content.Read(ctx, post.ID)
		if err != nil {
			if errors.Is(err, filestore.ErrContentNotFound) {
				continue
			}
			s.logger.Sugar().Errorf("failed to read post(%d) content: %s", post.ID, err.Error())
			return nil, ErrInternal
		}

		title, err := extractPostTitle(rendered)
		if err != nil {
			s.logger.Sugar().Warnf("post(%d) content has no title heading: %s", post.ID, err.Error())
			mismatches = append(mismatches, post)
			continue
		}
		if title != post.Title {
			mismatches = append(mismatches, post)
		}
	}

	return mismatches, nil
}

func (s *postService) IncrementViews(ctx context.Context, id int64) error {
	if err := s.repo.Postgres.Post.IncrViews(ctx, id); err != nil {
		s.logger.Sugar().Errorf("failed to increment views for post(%d): %s", id, err.Error())
		return ErrInternal
	}

	return nil
}

func (s *postService) writeContent(ctx context.Context, id int64, title, body string) error {
	rendered, err := renderPost(title, body)
	if err != nil {
		return err
	}
	return s.repo.Content.Write(ctx, id, rendered)
}

func (s *postService) postStoreError(id int64, field string, err error) error {
	if errors.Is(err, postgres.ErrPostNotFound) {
		return ErrPostNotFound
	}
	s.logger.Sugar().Errorf("failed to update post(%d) %s: %s", id, field, err.Error())
	return ErrInternal
}

func (s *postService) invalidateList(ctx context.Context) {
	if err := s.repo.Redis.Default.Incr(ctx, redisrepo.PostsListVersionKey()).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to bump posts list version in redis: %s", err.Error())
	}
}
