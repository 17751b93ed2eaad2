package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rayspace/blog-service/internal/model"
)

type commentRepo struct {
	db *pgxpool.Pool
}

func newCommentRepo(db *pgxpool.Pool) Comment {
	return &commentRepo{
		db: db,
	}
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO comments(userid, name, comment) VALUES($1, $2, $3) RETURNING id, timestamp",
		comment.UserID,
		comment.Name,
		comment.Comment,
	).Scan(&comment.ID, &comment.Timestamp); err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *commentRepo) FindRecent(ctx context.Context, limit int) ([]*model.Comment, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, userid, name, comment, timestamp
		FROM comments
		ORDER BY timestamp DESC, id DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]*model.Comment, 0)
	for rows.Next() {
		var comment model.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.UserID,
			&comment.Name,
			&comment.Comment,
			&comment.Timestamp,
		); err != nil {
			return nil, err
		}

		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}
