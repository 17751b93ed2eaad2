package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rayspace/blog-service/internal/config"
	"github.com/rayspace/blog-service/internal/model"
	"github.com/rayspace/blog-service/pkg/utils"
)

type authService struct {
	adminUserID string
	session     config.SessionConfig
	now         func() time.Time
}

func newAuthService(adminUserID string, session config.SessionConfig, now func() time.Time) Auth {
	return &authService{
		adminUserID: strings.TrimSpace(adminUserID),
		session:     session,
		now:         now,
	}
}

// Classify never fails: a missing user id or display name yields Anonymous.
func (s *authService) Classify(identity *model.SessionIdentity) model.Principal {
	if identity == nil || identity.UserID == "" || identity.DisplayName == "" {
		return model.AnonymousPrincipal()
	}

	kind := model.Authenticated
	if s.adminUserID != "" && identity.UserID == s.adminUserID {
		kind = model.Administrator
	}

	return model.Principal{
		Kind:        kind,
		UserID:      identity.UserID,
		DisplayName: identity.DisplayName,
	}
}

func (s *authService) EncodeSession(identity model.SessionIdentity) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id":   identity.UserID,
		"user_name": identity.DisplayName,
		"iat":       now.Unix(),
	}
	if s.session.TTL > 0 {
		claims["exp"] = now.Add(s.session.TTL).Unix()
	}

	return utils.EncodeJWT(claims, s.session.Secret)
}

func (s *authService) DecodeSession(token string) (*model.SessionIdentity, error) {
	claims, err := utils.DecodeJWT(token, s.session.Secret)
	if err != nil {
		return nil, ErrInvalidSession
	}

	userID, _ := claims["user_id"].(string)
	userName, _ := claims["user_name"].(string)
	if userID == "" || userName == "" {
		return nil, ErrInvalidSession
	}

	return &model.SessionIdentity{
		UserID:      userID,
		DisplayName: userName,
	}, nil
}
