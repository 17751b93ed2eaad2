package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Write and Read", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "posts")
		store := New(dir)

		require.NoError(t, store.Write(ctx, 1, "<p>hello</p>"))

		content, err := store.Read(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "<p>hello</p>", content)

		_, err = os.Stat(filepath.Join(dir, "1.html"))
		assert.NoError(t, err)
	})

	t.Run("Write overwrites", func(t *testing.T) {
		store := New(t.TempDir())

		require.NoError(t, store.Write(ctx, 7, "first"))
		require.NoError(t, store.Write(ctx, 7, "second"))

		content, err := store.Read(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "second", content)
	})

	t.Run("Read missing", func(t *testing.T) {
		store := New(t.TempDir())

		_, err := store.Read(ctx, 42)
		assert.ErrorIs(t, err, ErrContentNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		store := New(t.TempDir())
		require.NoError(t, store.Write(ctx, 3, "body"))

		require.NoError(t, store.Delete(ctx, 3))

		exists, err := store.Exists(ctx, 3)
		require.NoError(t, err)
		assert.False(t, exists)

		assert.ErrorIs(t, store.Delete(ctx, 3), ErrContentNotFound)
	})

	t.Run("No temp files left behind", func(t *testing.T) {
		dir := t.TempDir()
		store := New(dir)
		require.NoError(t, store.Write(ctx, 1, "a"))
		require.NoError(t, store.Write(ctx, 2, "b"))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})
}
