package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rayspace/blog-service/internal/config"
	"github.com/rayspace/blog-service/internal/model"
	"go.uber.org/zap"
)

type oauthService struct {
	logger     *zap.Logger
	cfg        config.OAuthConfig
	httpClient *http.Client
}

func newOAuthService(logger *zap.Logger, cfg config.OAuthConfig, httpClient *http.Client) OAuth {
	return &oauthService{
		logger:     logger,
		cfg:        cfg,
		httpClient: httpClient,
	}
}

type githubAccessToken struct {
	AccessToken string `json:"access_token"`
	Error       string `json:"error"`
}

type githubUser struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
}

func (s *oauthService) AuthorizeURL(state string) string {
	params := url.Values{}
	params.Set("client_id", s.cfg.ClientID)
	params.Set("state", state)
	if s.cfg.RedirectURL != "" {
		params.Set("redirect_uri", s.cfg.RedirectURL)
	}
	return s.cfg.AuthorizeURL + "?" + params.Encode()
}

func (s *oauthService) Exchange(ctx context.Context, code string) (*model.SessionIdentity, error) {
	token, err := s.exchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	user, err := s.fetchUser(ctx, token)
	if err != nil {
		return nil, err
	}

	displayName := user.Login
	if displayName == "" {
		displayName = user.Name
	}

	return &model.SessionIdentity{
		UserID:      strconv.FormatInt(user.ID, 10),
		DisplayName: displayName,
	}, nil
}

func (s *oauthService) exchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", s.cfg.ClientID)
	form.Set("client_secret", s.cfg.ClientSecret)
	form.Set("code", code)
	if s.cfg.RedirectURL != "" {
		form.Set("redirect_uri", s.cfg.RedirectURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		s.logger.Sugar().Errorf("failed to create github token request: %s", err.Error())
		return "", ErrInternal
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	body, err := s.do(req, "token")
	if err != nil {
		return "", err
	}

	var token githubAccessToken
	if err := json.Unmarshal(body, &token); err != nil {
		s.logger.Sugar().Errorf("failed to decode github token response: %s", err.Error())
		return "", ErrUpstream
	}
	if token.AccessToken == "" {
		s.logger.Sugar().Warnf("github refused the oauth code: %s", token.Error)
		return "", ErrUnauthorized
	}

	return token.AccessToken, nil
}

func (s *oauthService) fetchUser(ctx context.Context, accessToken string) (*githubUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.APIURL+"/user", nil)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create github user request: %s", err.Error())
		return nil, ErrInternal
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github+json")

	body, err := s.do(req, "user")
	if err != nil {
		return nil, err
	}

	var user githubUser
	if err := json.Unmarshal(body, &user); err != nil {
		s.logger.Sugar().Errorf("failed to decode github user response: %s", err.Error())
		return nil, ErrUpstream
	}
	if user.ID == 0 {
		s.logger.Sugar().Errorf("github user response has no id")
		return nil, ErrUpstream
	}

	return &user, nil
}

func (s *oauthService) do(req *http.Request, endpoint string) ([]byte, error) {
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Sugar().Errorf("failed to send github %s request: %s", endpoint, err.Error())
		return nil, ErrUpstream
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Sugar().Errorf("failed to read github %s response: %s", endpoint, err.Error())
		return nil, ErrUpstream
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.Sugar().Errorf("ERROR from github %s endpoint, code(%d), body: %s", endpoint, resp.StatusCode, string(body))
		return nil, ErrUpstream
	}

	return body, nil
}
