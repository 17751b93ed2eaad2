package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rayspace/blog-service/internal/repository/filestore"
	"github.com/rayspace/blog-service/internal/repository/postgres"
	"github.com/rayspace/blog-service/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
)

type Repository struct {
	Postgres *postgres.PostgresRepository
	Redis    *redisrepo.RedisRepository
	Content  filestore.Content
}

func New(db *pgxpool.Pool, rdb *redis.Client, contentDir string) *Repository {
	return &Repository{
		Postgres: postgres.New(db),
		Redis:    redisrepo.New(rdb),
		Content:  filestore.New(contentDir),
	}
}
