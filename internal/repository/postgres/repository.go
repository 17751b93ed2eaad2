package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rayspace/blog-service/internal/model"
)

var ErrPostNotFound = errors.New("post not found")

type Post interface {
	Create(ctx context.Context, title string, publishedDate model.Date) (*model.Post, error)
	FindByID(ctx context.Context, id int64) (*model.Post, error)
	FindAll(ctx context.Context) ([]*model.Post, error)
	UpdateTitle(ctx context.Context, id int64, title string) error
	UpdatePublishedDate(ctx context.Context, id int64, date model.Date) error
	Delete(ctx context.Context, id int64) (bool, error)
	IncrViews(ctx context.Context, id int64) error
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (*model.Comment, error)
	// FindRecent expects a limit already bounded by the caller.
	FindRecent(ctx context.Context, limit int) ([]*model.Comment, error)
}

type PostgresRepository struct {
	Post
	Comment
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		Post:    newPostRepo(db),
		Comment: newCommentRepo(db),
	}
}

func DB(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 10
	cfg.MaxConnIdleTime = 5 * time.Minute

	return pgxpool.NewWithConfig(ctx, cfg)
}
