package service

import (
	"context"
	"net/http"
	"time"

	"github.com/rayspace/blog-service/internal/config"
	"github.com/rayspace/blog-service/internal/dto"
	"github.com/rayspace/blog-service/internal/model"
	"github.com/rayspace/blog-service/internal/repository"
	"go.uber.org/zap"
)

const MAX_COMMENTS_LIMIT = 100

func maxLimit(limit *int) {
	if *limit <= 0 || *limit > MAX_COMMENTS_LIMIT {
		*limit = MAX_COMMENTS_LIMIT
	}
}

type Auth interface {
	Classify(identity *model.SessionIdentity) model.Principal
	EncodeSession(identity model.SessionIdentity) (string, error)
	DecodeSession(token string) (*model.SessionIdentity, error)
}

type OAuth interface {
	AuthorizeURL(state string) string
	Exchange(ctx context.Context, code string) (*model.SessionIdentity, error)
}

type Post interface {
	Create(ctx context.Context, principal model.Principal, req dto.CreatePostRequest) (*model.Post, error)
	Update(ctx context.Context, principal model.Principal, id int64, req dto.UpdatePostRequest) error
	Delete(ctx context.Context, principal model.Principal, id int64) error
	Get(ctx context.Context, id int64) (string, error)
	List(ctx context.Context) ([]*model.Post, error)
	AdminList(ctx context.Context, principal model.Principal) ([]*model.Post, error)
	FindOrphans(ctx context.Context, principal model.Principal) ([]*model.Post, error)
	FindTitleMismatches(ctx context.Context, principal model.Principal) ([]*model.Post, error)
	IncrementViews(ctx context.Context, id int64) error
}

type Comment interface {
	Append(ctx context.Context, principal model.Principal, text string) (*model.Comment, error)
	Recent(ctx context.Context, limit int) ([]*model.Comment, error)
}

type Stars interface {
	Read(ctx context.Context) (int64, error)
}

type Options struct {
	AdminUserID string
	Session     config.SessionConfig
	OAuth       config.OAuthConfig
	Stars       config.StarsConfig
	Content     config.ContentConfig
	Now         func() time.Time
}

type Service struct {
	Auth
	OAuth
	Post
	Comment
	Stars
}

func New(logger *zap.Logger, repo *repository.Repository, opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Service{
		Auth:    newAuthService(opts.AdminUserID, opts.Session, opts.Now),
		OAuth:   newOAuthService(logger, opts.OAuth, &http.Client{Timeout: opts.OAuth.Timeout}),
		Post:    newPostService(logger, repo, opts.Content.PostsListTTL, opts.Now),
		Comment: newCommentService(logger, repo),
		Stars:   newStarsService(logger, newGithubStarsFetcher(opts.Stars), opts.Stars.TTL, opts.Now),
	}
}
