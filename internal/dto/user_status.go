package dto

import "github.com/rayspace/blog-service/internal/model"

type UserStatus struct {
	Authenticated bool   `json:"authenticated"`
	IsAdmin       bool   `json:"is_admin"`
	UserName      string `json:"user_name,omitempty"`
}

func NewUserStatus(p model.Principal) UserStatus {
	return UserStatus{
		Authenticated: p.IsAuthenticated(),
		IsAdmin:       p.IsAdmin(),
		UserName:      p.DisplayName,
	}
}
