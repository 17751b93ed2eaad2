package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rayspace/blog-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCommentService(t *testing.T, clock *fakeClock) (*commentService, *fakes) {
	t.Helper()
	f := newFakes(clock.Now)
	svc := newCommentService(zap.NewNop(), f.repo).(*commentService)
	return svc, f
}

func TestCommentAppend(t *testing.T) {
	ctx := context.Background()

	t.Run("stores sanitized comment with author", func(t *testing.T) {
		svc, _ := newTestCommentService(t, newFakeClock(testNow))

		comment, err := svc.Append(ctx, userPrincipal, `nice site<script>alert(1)</script>`)
		require.NoError(t, err)
		assert.Equal(t, int64(1), comment.ID)
		assert.Equal(t, "7", comment.UserID)
		assert.Equal(t, "guest", comment.Name)
		assert.Equal(t, "nice site", comment.Comment)
		assert.Equal(t, testNow, comment.Timestamp)
	})

	t.Run("requires authentication", func(t *testing.T) {
		svc, f := newTestCommentService(t, newFakeClock(testNow))

		_, err := svc.Append(ctx, anonPrincipal, "hello")
		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.Empty(t, f.comments.comments)
	})

	t.Run("admin may comment", func(t *testing.T) {
		svc, _ := newTestCommentService(t, newFakeClock(testNow))

		_, err := svc.Append(ctx, adminPrincipal, "hello")
		assert.NoError(t, err)
	})

	t.Run("length bounds", func(t *testing.T) {
		long := strings.Repeat("a", MAX_COMMENT_FIELD_LENGTH+1)
		exact := strings.Repeat("é", MAX_COMMENT_FIELD_LENGTH)
		tests := []struct {
			name      string
			principal model.Principal
			text      string
			errIs     error
		}{
			{"text too long", userPrincipal, long, ErrCommentTooLong},
			{"user id too long", model.Principal{Kind: model.Authenticated, UserID: long, DisplayName: "n"}, "hi", ErrUserIDTooLong},
			{"name too long", model.Principal{Kind: model.Authenticated, UserID: "1", DisplayName: long}, "hi", ErrUserNameTooLong},
			{"exactly at bound", userPrincipal, exact, nil},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc, f := newTestCommentService(t, newFakeClock(testNow))
				before := f.comments.count()

				_, err := svc.Append(ctx, tt.principal, tt.text)
				after := f.comments.count()

				if tt.errIs == nil {
					assert.NoError(t, err)
					assert.Equal(t, before+1, after)
					return
				}
				assert.ErrorIs(t, err, tt.errIs)
				assert.ErrorIs(t, err, ErrValidation)
				assert.Equal(t, before, after)
			})
		}
	})

	t.Run("empty after sanitizing", func(t *testing.T) {
		svc, f := newTestCommentService(t, newFakeClock(testNow))

		_, err := svc.Append(ctx, userPrincipal, "   ")
		assert.ErrorIs(t, err, ErrCommentRequired)

		_, err = svc.Append(ctx, userPrincipal, "<script>alert(1)</script>")
		assert.ErrorIs(t, err, ErrCommentRequired)
		assert.Empty(t, f.comments.comments)
	})

	t.Run("store failure", func(t *testing.T) {
		svc, f := newTestCommentService(t, newFakeClock(testNow))
		f.comments.err = errBoom

		_, err := svc.Append(ctx, userPrincipal, "hello")
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestCommentRecent(t *testing.T) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		svc, _ := newTestCommentService(t, newFakeClock(testNow))

		comments, err := svc.Recent(ctx, MAX_COMMENTS_LIMIT)
		require.NoError(t, err)
		assert.NotNil(t, comments)
		assert.Empty(t, comments)
	})

	t.Run("capped and newest first", func(t *testing.T) {
		clock := newFakeClock(testNow)
		svc, _ := newTestCommentService(t, clock)
		for i := 0; i < 120; i++ {
			_, err := svc.Append(ctx, userPrincipal, "comment")
			require.NoError(t, err)
			if i%3 == 0 {
				clock.Advance(time.Second)
			}
		}

		for _, limit := range []int{0, -1, 100, 500} {
			comments, err := svc.Recent(ctx, limit)
			require.NoError(t, err)
			assert.Len(t, comments, MAX_COMMENTS_LIMIT)
			for i := 1; i < len(comments); i++ {
				assert.False(t, comments[i].Timestamp.After(comments[i-1].Timestamp))
			}
		}

		comments, err := svc.Recent(ctx, 5)
		require.NoError(t, err)
		assert.Len(t, comments, 5)
		assert.Equal(t, int64(120), comments[0].ID)
	})
}
