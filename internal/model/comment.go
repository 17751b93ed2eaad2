package model

import "time"

type Comment struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userid"`
	Name      string    `json:"name"`
	Comment   string    `json:"comment"`
	Timestamp time.Time `json:"timestamp"`
}
