package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT(t *testing.T) {
	secret := []byte("secret")

	t.Run("round trip", func(t *testing.T) {
		token, err := EncodeJWT(jwt.MapClaims{"user_id": "42"}, secret)
		require.NoError(t, err)

		claims, err := DecodeJWT(token, secret)
		require.NoError(t, err)
		assert.Equal(t, "42", claims["user_id"])
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := EncodeJWT(jwt.MapClaims{"user_id": "42"}, secret)
		require.NoError(t, err)

		_, err = DecodeJWT(token, []byte("other"))
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := EncodeJWT(jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()}, secret)
		require.NoError(t, err)

		_, err = DecodeJWT(token, secret)
		assert.Error(t, err)
	})
}

func TestSanitizeComment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "hello there", "hello there"},
		{"script removed", `hi<script>alert(1)</script>`, "hi"},
		{"handler removed", `<b onclick="steal()">bold</b>`, "<b>bold</b>"},
		{"only script", `<script>alert(1)</script>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeComment(tt.input))
		})
	}
}
