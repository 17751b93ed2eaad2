package dto

type PostContent struct {
	Content string `json:"content"`
}
