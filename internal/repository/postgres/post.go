package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rayspace/blog-service/internal/model"
)

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, title string, publishedDate model.Date) (*model.Post, error) {
	post := model.Post{
		Title:         title,
		PublishedDate: publishedDate,
		Views:         0,
	}
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO posts(title, published_date, views) VALUES($1, $2, $3) RETURNING id",
		post.Title,
		post.PublishedDate.Time,
		post.Views,
	).Scan(&post.ID); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	var (
		post          model.Post
		publishedDate time.Time
	)
	if err := r.db.QueryRow(
		ctx,
		"SELECT id, title, published_date, views FROM posts WHERE id = $1",
		id,
	).Scan(
		&post.ID,
		&post.Title,
		&publishedDate,
		&post.Views,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	post.PublishedDate = model.NewDate(publishedDate)

	return &post, nil
}

func (r *postRepo) FindAll(ctx context.Context) ([]*model.Post, error) {
	rows, err := r.db.Query(ctx, "SELECT id, title, published_date, views FROM posts ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]*model.Post, 0)
	for rows.Next() {
		var (
			post          model.Post
			publishedDate time.Time
		)
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&publishedDate,
			&post.Views,
		); err != nil {
			return nil, err
		}
		post.PublishedDate = model.NewDate(publishedDate)

		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepo) UpdateTitle(ctx context.Context, id int64, title string) error {
	tag, err := r.db.Exec(ctx, "UPDATE posts SET title = $1 WHERE id = $2", title, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *postRepo) UpdatePublishedDate(ctx context.Context, id int64, date model.Date) error {
	tag, err := r.db.Exec(ctx, "UPDATE posts SET published_date = $1 WHERE id = $2", date.Time, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Delete reports whether a row was removed.
func (r *postRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// IncrViews is a no-op for unknown ids.
func (r *postRepo) IncrViews(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, "UPDATE posts SET views = views + 1 WHERE id = $1", id)
	return err
}
