package dto

import "github.com/rayspace/blog-service/internal/model"

type CreatePostRequest struct {
	Title         string      `json:"title"`
	Content       string      `json:"content"`
	PublishedDate *model.Date `json:"published_date"`
}

// UpdatePostRequest carries only the fields that should change.
type UpdatePostRequest struct {
	Title         *string     `json:"title"`
	Content       *string     `json:"content"`
	PublishedDate *model.Date `json:"published_date"`
}

func (r UpdatePostRequest) Empty() bool {
	return r.Title == nil && r.Content == nil && r.PublishedDate == nil
}
