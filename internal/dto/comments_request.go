package dto

type CreateCommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}
