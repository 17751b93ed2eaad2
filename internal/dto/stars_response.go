package dto

type Stars struct {
	Stars int64 `json:"stars"`
}
