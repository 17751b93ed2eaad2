package config

import (
	"encoding/hex"
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

var ErrSecretKeyMissing = errors.New("SECRET_KEY must be set")

func SetDefaults() {
	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "production")
	viper.SetDefault("client.origin", "http://localhost:3000")
	viper.SetDefault("content.dir", "./posts")
	viper.SetDefault("cache.posts_ttl", 30*time.Second)
	viper.SetDefault("session.cookie", "AdminUser")
	viper.SetDefault("session.ttl", 7*24*time.Hour)
	viper.SetDefault("session.secure", false)
	viper.SetDefault("stars.api", "https://api.github.com")
	viper.SetDefault("stars.ttl", 15*time.Minute)
	viper.SetDefault("stars.timeout", 5*time.Second)
	viper.SetDefault("oauth.authorize_url", "https://github.com/login/oauth/authorize")
	viper.SetDefault("oauth.token_url", "https://github.com/login/oauth/access_token")
	viper.SetDefault("oauth.api", "https://api.github.com")
	viper.SetDefault("oauth.timeout", 10*time.Second)
	viper.SetDefault("migrations.enabled", true)
}

func DB() DBConfig {
	return DBConfig{
		Username: os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		DBName:   os.Getenv("POSTGRES_DATABASE"),
		SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
	}
}

// Session decodes SECRET_KEY from hex; a non-hex value is used as raw bytes.
func Session() (SessionConfig, error) {
	raw := os.Getenv("SECRET_KEY")
	if raw == "" {
		return SessionConfig{}, ErrSecretKeyMissing
	}
	secret, err := hex.DecodeString(raw)
	if err != nil {
		secret = []byte(raw)
	}

	return SessionConfig{
		CookieName: viper.GetString("session.cookie"),
		Secret:     secret,
		TTL:        viper.GetDuration("session.ttl"),
		Secure:     viper.GetBool("session.secure"),
	}, nil
}

func Stars() StarsConfig {
	return StarsConfig{
		APIURL:  viper.GetString("stars.api"),
		Owner:   viper.GetString("stars.owner"),
		Repo:    viper.GetString("stars.repo"),
		Token:   os.Getenv("GITHUB_TOKEN"),
		TTL:     viper.GetDuration("stars.ttl"),
		Timeout: viper.GetDuration("stars.timeout"),
	}
}

func OAuth() OAuthConfig {
	return OAuthConfig{
		ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		RedirectURL:  viper.GetString("oauth.redirect_url"),
		AuthorizeURL: viper.GetString("oauth.authorize_url"),
		TokenURL:     viper.GetString("oauth.token_url"),
		APIURL:       viper.GetString("oauth.api"),
		Timeout:      viper.GetDuration("oauth.timeout"),
	}
}

func Content() ContentConfig {
	return ContentConfig{
		Dir:          viper.GetString("content.dir"),
		PostsListTTL: viper.GetDuration("cache.posts_ttl"),
	}
}
